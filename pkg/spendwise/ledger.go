package spendwise

import (
	"context"
)

// Ledger is the in-memory expense collection backing one view
// activation. The server stays authoritative: create and update go to
// the server first and trigger a wholesale re-fetch, delete removes
// locally only after the server acknowledges. A failed fetch leaves
// the last-known-good collection untouched.
type Ledger struct {
	client   *Client
	expenses []*Expense
}

// NewLedger creates a ledger bound to the client
func NewLedger(client *Client) *Ledger {
	return &Ledger{client: client}
}

// Refresh replaces the collection wholesale from the server
func (l *Ledger) Refresh(ctx context.Context) error {
	expenses, err := l.client.Expenses.List(ctx)
	if err != nil {
		return err
	}
	l.expenses = expenses
	return nil
}

// ReplaceAll swaps in an already-fetched collection
func (l *Ledger) ReplaceAll(expenses []*Expense) {
	l.expenses = expenses
}

// Expenses returns the current collection in server order
func (l *Ledger) Expenses() []*Expense {
	return l.expenses
}

// Len returns the number of records held
func (l *Ledger) Len() int {
	return len(l.expenses)
}

// Add creates an expense on the server, then re-fetches the whole
// collection so the ledger reflects canonical server state
func (l *Ledger) Add(ctx context.Context, params *CreateExpenseParams) error {
	if _, err := l.client.Expenses.Create(ctx, params); err != nil {
		return err
	}
	return l.Refresh(ctx)
}

// Update edits an expense on the server, then re-fetches
func (l *Ledger) Update(ctx context.Context, expenseID int64, params *UpdateExpenseParams) error {
	if _, err := l.client.Expenses.Update(ctx, expenseID, params); err != nil {
		return err
	}
	return l.Refresh(ctx)
}

// Delete removes an expense on the server and, only once the server
// acknowledges, drops it locally. On failure the collection is left
// untouched.
func (l *Ledger) Delete(ctx context.Context, expenseID int64) error {
	if err := l.client.Expenses.Delete(ctx, expenseID); err != nil {
		return err
	}
	l.remove(expenseID)
	return nil
}

// remove drops an expense from the in-memory collection. The filtered
// slice is freshly allocated so snapshots handed out by Expenses stay
// intact.
func (l *Ledger) remove(expenseID int64) {
	kept := make([]*Expense, 0, len(l.expenses))
	for _, e := range l.expenses {
		if e.ID != expenseID {
			kept = append(kept, e)
		}
	}
	l.expenses = kept
}

// Total sums the held expenses
func (l *Ledger) Total() (float64, error) {
	return ComputeTotal(l.expenses)
}

// Breakdown groups the held expenses by category
func (l *Ledger) Breakdown(categories []*Category) []*CategoryTotal {
	return CategoryBreakdown(l.expenses, categories)
}
