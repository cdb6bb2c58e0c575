package movements

import "time"

// Type discriminates a financial movement.
type Type string

// Movement types as stored and served on the wire.
const (
	TypeIncome  Type = "INCOME"
	TypeExpense Type = "EXPENSE"
)

// ValidType reports whether t is a known movement type.
func ValidType(t Type) bool {
	return t == TypeIncome || t == TypeExpense
}

// Movement is a single financial movement. UserID is nil for rows
// created before creator tracking existed.
type Movement struct {
	ID        string
	Concept   string
	Amount    float64
	Date      time.Time
	Type      Type
	UserID    *string
	CreatedAt time.Time
}

// ListItem is a movement joined with its creator's display name.
type ListItem struct {
	ID       string
	Concept  string
	Amount   float64
	Date     time.Time
	Type     Type
	UserName *string
}

// Summary aggregates all movements. Balance is always
// TotalIncomes - TotalExpenses.
type Summary struct {
	TotalIncomes  float64 `json:"totalIncomes"`
	TotalExpenses float64 `json:"totalExpenses"`
	Balance       float64 `json:"balance"`
}
