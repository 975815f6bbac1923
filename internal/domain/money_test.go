package domain

import (
	"encoding/json"
	"math/big"
	"testing"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in      string
		want    Money
		wantErr bool
	}{
		{"1234.50", 123450, false},
		{"4.50", 450, false},
		{"10", 1000, false},
		{"0", 0, false},
		{"-25.99", -2599, false},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseMoney(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMoney(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseMoney(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestMoneyFromFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want Money
	}{
		{4.50, 450},
		{0, 0},
		{1234.56, 123456},
		{-12.34, -1234},
	}

	for _, tt := range tests {
		if got := MoneyFromFloat(tt.in); got != tt.want {
			t.Errorf("MoneyFromFloat(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestMoneyDivRound(t *testing.T) {
	tests := []struct {
		m    Money
		n    int64
		want Money
	}{
		{600_00, 6, 100_00},
		{100_01, 6, 16_67},  // 1666.83 cents rounds up
		{100_00, 6, 16_67},  // 1666.66 cents rounds up
		{100_02, 6, 16_67},  // 1667.0 exact
		{-100_01, 6, -16_67},
		{1, 2, 1}, // half rounds away from zero
		{0, 6, 0},
	}

	for _, tt := range tests {
		if got := tt.m.DivRound(tt.n); got != tt.want {
			t.Errorf("Money(%d).DivRound(%d) = %d, want %d", tt.m, tt.n, got, tt.want)
		}
	}
}

func TestMoneyFromRat(t *testing.T) {
	tests := []struct {
		name string
		in   *big.Rat
		want Money
	}{
		{"nil", nil, 0},
		{"whole", big.NewRat(1234, 1), 123400},
		{"half dollar", big.NewRat(9, 2), 450},
		{"negative", big.NewRat(-9, 2), -450},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MoneyFromRat(tt.in); got != tt.want {
				t.Errorf("MoneyFromRat(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestMoneyRatRoundTrip(t *testing.T) {
	m := Money(123450)
	if got := MoneyFromRat(m.Rat()); got != m {
		t.Errorf("round trip = %d, want %d", got, m)
	}
}

func TestMoneyString(t *testing.T) {
	tests := []struct {
		in   Money
		want string
	}{
		{123450, "1234.50"},
		{450, "4.50"},
		{5, "0.05"},
		{0, "0.00"},
		{-2599, "-25.99"},
	}

	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("Money(%d).String() = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMoneyAbs(t *testing.T) {
	if got := Money(-450).Abs(); got != 450 {
		t.Errorf("Abs(-450) = %d, want 450", got)
	}
	if got := Money(450).Abs(); got != 450 {
		t.Errorf("Abs(450) = %d, want 450", got)
	}
}

func TestMoneyJSON(t *testing.T) {
	type payload struct {
		Amount Money `json:"amount"`
	}

	out, err := json.Marshal(payload{Amount: 450})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(out) != `{"amount":4.50}` {
		t.Errorf("Marshal = %s, want {\"amount\":4.50}", out)
	}

	var p payload
	if err := json.Unmarshal([]byte(`{"amount":12.34}`), &p); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if p.Amount != 1234 {
		t.Errorf("Unmarshal amount = %d, want 1234", p.Amount)
	}

	if err := json.Unmarshal([]byte(`{"amount":"56.78"}`), &p); err != nil {
		t.Fatalf("Unmarshal quoted failed: %v", err)
	}
	if p.Amount != 5678 {
		t.Errorf("Unmarshal quoted amount = %d, want 5678", p.Amount)
	}
}
