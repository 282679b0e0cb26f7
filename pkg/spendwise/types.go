package spendwise

import (
	"encoding/json"
	"time"
)

// Session represents an authenticated session
type Session struct {
	Token    string    `json:"token"`
	UserID   int64     `json:"userId"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Currency string    `json:"currency"`
	SavedAt  time.Time `json:"savedAt"`
}

// User represents the account profile carried in a session.
// Currency is a display label only, never a conversion target.
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Currency string `json:"currency"`
}

// Category represents a spending category. Categories are supplied by
// the server and consumed read-only by the aggregation logic.
type Category struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type,omitempty"`
	Color string `json:"color,omitempty"`
}

// Expense represents a single expense record
type Expense struct {
	ID          int64     `json:"id"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description,omitempty"`
	Date        Date      `json:"date"`
	Category    *Category `json:"category,omitempty"`
}

// Budget represents a spending ceiling for a (month, scope) pair.
// A nil Category means the budget covers the whole month.
type Budget struct {
	ID          int64
	LimitAmount float64
	Month       MonthKey
	Category    *Category
}

// budgetJSON covers both wire shapes the /budgets endpoints expose:
// the category-scoped form carries "limitAmount", the whole-month
// form carries "amount".
type budgetJSON struct {
	ID          int64     `json:"id"`
	LimitAmount *float64  `json:"limitAmount"`
	Amount      *float64  `json:"amount"`
	Month       MonthKey  `json:"month"`
	Category    *Category `json:"category"`
}

// UnmarshalJSON normalizes the two budget wire shapes into one model
func (b *Budget) UnmarshalJSON(data []byte) error {
	var raw budgetJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	b.ID = raw.ID
	b.Month = raw.Month
	b.Category = raw.Category
	switch {
	case raw.LimitAmount != nil:
		b.LimitAmount = *raw.LimitAmount
	case raw.Amount != nil:
		b.LimitAmount = *raw.Amount
	}
	return nil
}

// MarshalJSON writes the canonical category-scoped shape
func (b Budget) MarshalJSON() ([]byte, error) {
	limit := b.LimitAmount
	return json.Marshal(budgetJSON{
		ID:          b.ID,
		LimitAmount: &limit,
		Month:       b.Month,
		Category:    b.Category,
	})
}

// IsGlobal reports whether the budget covers the whole month
// rather than a single category.
func (b *Budget) IsGlobal() bool {
	return b.Category == nil
}

// CreateExpenseParams describes a new expense
type CreateExpenseParams struct {
	Amount      float64
	Description string
	Date        Date
	CategoryID  int64 // 0 leaves the expense uncategorized
}

// UpdateExpenseParams describes a partial expense update.
// Nil fields are left unchanged on the server.
type UpdateExpenseParams struct {
	Amount      *float64
	Description *string
	Date        *Date
	CategoryID  *int64
}

// SetBudgetParams describes a budget upsert. The server matches on
// (month, scope) and creates or replaces; the client never reconciles.
type SetBudgetParams struct {
	CategoryID  int64 // 0 targets the whole-month scope
	LimitAmount float64
	Month       MonthKey
}

// SignupParams describes a new account
type SignupParams struct {
	Name     string
	Email    string
	Password string
	Currency string
}
