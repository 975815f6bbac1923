package domain

// Category is a spending or income category. An empty UserID marks a global
// category shared by all users.
type Category struct {
	ID        string
	Name      string
	Type      TransactionType
	Icon      string
	Color     string
	UserID    string
	IsDefault bool
}

// VisibleTo reports whether the category can be used by the given user:
// either it is global or it belongs to them.
func (c Category) VisibleTo(userID string) bool {
	return c.UserID == "" || c.UserID == userID
}
