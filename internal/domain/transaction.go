package domain

import (
	"time"
)

// TransactionType distinguishes money leaving the account from money entering it.
type TransactionType string

const (
	TypeExpense TransactionType = "expense"
	TypeIncome  TransactionType = "income"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TypeExpense || t == TypeIncome
}

// Transaction is the read model the engine consumes. The writing layer owns
// validation (amount > 0, type agreeing with the category); the engine trusts
// what it reads.
type Transaction struct {
	ID            string
	UserID        string
	Type          TransactionType
	Amount        Money
	CategoryID    string
	Description   string
	Date          time.Time
	Tags          []string
	PaymentMethod string
	Location      string
}
