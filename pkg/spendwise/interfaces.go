package spendwise

import (
	"context"
)

// AuthService handles authentication and session lifecycle
type AuthService interface {
	// SignIn exchanges credentials for a session
	SignIn(ctx context.Context, email, password string) (*Session, error)

	// SignUp creates a new account; a fresh sign-in is still required
	SignUp(ctx context.Context, params *SignupParams) error

	// Session returns the current session
	Session() (*Session, error)

	// SaveSession persists the session to a file
	SaveSession(path string) error

	// LoadSession restores a persisted session
	LoadSession(path string) error
}

// CategoryService handles the category registry
type CategoryService interface {
	// List retrieves the user's categories in server order
	List(ctx context.Context) ([]*Category, error)

	// Create creates a new category
	Create(ctx context.Context, name, color string) (*Category, error)
}

// ExpenseService handles expense records
type ExpenseService interface {
	// List retrieves all expenses for the current user
	List(ctx context.Context) ([]*Expense, error)

	// Create creates a new expense
	Create(ctx context.Context, params *CreateExpenseParams) (*Expense, error)

	// Update updates an existing expense; nil fields are left unchanged
	Update(ctx context.Context, expenseID int64, params *UpdateExpenseParams) (*Expense, error)

	// Delete deletes an expense
	Delete(ctx context.Context, expenseID int64) error
}

// BudgetService handles budget limits
type BudgetService interface {
	// List retrieves the budgets for a month
	List(ctx context.Context, month MonthKey) ([]*Budget, error)

	// Set creates or replaces the budget for a (month, scope) pair.
	// Matching is done server-side.
	Set(ctx context.Context, params *SetBudgetParams) (*Budget, error)
}
