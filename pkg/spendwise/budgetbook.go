package spendwise

import (
	"context"
	"strconv"
	"strings"
)

// BudgetBook holds the budgets fetched for one month. Upserts are
// delegated to the server and followed by a full re-fetch, so the
// book is always a direct reflection of server state, never a local
// reconciliation. Callers must serialize edits for the same
// (month, scope) pair; concurrent upserts have undefined ordering.
type BudgetBook struct {
	client  *Client
	month   MonthKey
	budgets []*Budget
}

// NewBudgetBook creates a budget book scoped to a month
func NewBudgetBook(client *Client, month MonthKey) *BudgetBook {
	return &BudgetBook{client: client, month: month}
}

// Month returns the month the book is scoped to
func (b *BudgetBook) Month() MonthKey {
	return b.month
}

// Refresh replaces the collection wholesale from the server.
// On failure the last-known-good collection is kept.
func (b *BudgetBook) Refresh(ctx context.Context) error {
	budgets, err := b.client.Budgets.List(ctx, b.month)
	if err != nil {
		return err
	}
	b.budgets = budgets
	return nil
}

// Budgets returns the current collection
func (b *BudgetBook) Budgets() []*Budget {
	return b.budgets
}

// Upsert creates or replaces the budget for a scope in this month,
// then re-fetches the month's budgets for the authoritative state.
// categoryID 0 targets the whole-month scope.
func (b *BudgetBook) Upsert(ctx context.Context, categoryID int64, limitAmount float64) error {
	_, err := b.client.Budgets.Set(ctx, &SetBudgetParams{
		CategoryID:  categoryID,
		LimitAmount: limitAmount,
		Month:       b.month,
	})
	if err != nil {
		return err
	}
	return b.Refresh(ctx)
}

// UpsertInput is the blur-to-save entry point: a blank or non-numeric
// limit is a no-op, so an empty input field never clears an existing
// budget. No request is sent and the book is left unchanged.
func (b *BudgetBook) UpsertInput(ctx context.Context, categoryID int64, raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	limit, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return b.Upsert(ctx, categoryID, limit)
}

// FindForCategory looks up the budget for a category scope
func (b *BudgetBook) FindForCategory(categoryID int64) (*Budget, bool) {
	for _, budget := range b.budgets {
		if budget.Category != nil && budget.Category.ID == categoryID {
			return budget, true
		}
	}
	return nil, false
}

// FindGlobal looks up the whole-month budget
func (b *BudgetBook) FindGlobal() (*Budget, bool) {
	for _, budget := range b.budgets {
		if budget.IsGlobal() {
			return budget, true
		}
	}
	return nil, false
}

// Progress derives budget consumption for a scope. A missing budget
// behaves as limit 0: always 0% and ok.
func (b *BudgetBook) Progress(total float64, categoryID int64) Progress {
	var budget *Budget
	var ok bool
	if categoryID == 0 {
		budget, ok = b.FindGlobal()
	} else {
		budget, ok = b.FindForCategory(categoryID)
	}
	if !ok {
		return BudgetProgress(total, 0)
	}
	return BudgetProgress(total, budget.LimitAmount)
}
