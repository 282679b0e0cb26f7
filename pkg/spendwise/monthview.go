package spendwise

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// recentLimit caps the recent-activity slice in a summary
const recentLimit = 5

// MonthView bundles the collections one dashboard activation needs:
// the category registry, the expense ledger, and the month's budgets.
// Load fetches them as an unordered concurrent group; a failed fetch
// degrades that collection without blocking the others, so expenses
// still render with the Uncategorized fallback when categories could
// not be loaded.
type MonthView struct {
	client *Client
	month  MonthKey

	Ledger  *Ledger
	Budgets *BudgetBook

	categories []*Category
	catErr     error
	expErr     error
	budErr     error
}

// NewMonthView creates a view scoped to a month
func NewMonthView(client *Client, month MonthKey) *MonthView {
	return &MonthView{
		client:  client,
		month:   month,
		Ledger:  NewLedger(client),
		Budgets: NewBudgetBook(client, month),
	}
}

// Month returns the month the view is scoped to
func (v *MonthView) Month() MonthKey {
	return v.month
}

// Load fetches categories, expenses, and budgets concurrently. Each
// fetch records its own failure; Load returns an error only when every
// collection failed, since nothing at all could be rendered then.
func (v *MonthView) Load(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		categories, err := v.client.Categories.List(gctx)
		v.catErr = err
		if err == nil {
			v.categories = categories
		}
		return nil
	})

	g.Go(func() error {
		v.expErr = v.Ledger.Refresh(gctx)
		return nil
	})

	g.Go(func() error {
		v.budErr = v.Budgets.Refresh(gctx)
		return nil
	})

	// Goroutines never return errors, so Wait only observes ctx
	_ = g.Wait()

	if v.catErr != nil && v.expErr != nil && v.budErr != nil {
		return errors.Join(v.catErr, v.expErr, v.budErr)
	}
	return nil
}

// Categories returns the loaded registry, nil when its fetch failed
func (v *MonthView) Categories() []*Category {
	return v.categories
}

// Err reports any partial fetch failures from the last Load
func (v *MonthView) Err() error {
	return errors.Join(v.catErr, v.expErr, v.budErr)
}

// Summary is the derived month overview a dashboard renders
type Summary struct {
	Month     MonthKey         `json:"month"`
	Total     float64          `json:"total"`
	Breakdown []*CategoryTotal `json:"breakdown"`

	// Progress tracks the whole-month budget
	Progress Progress `json:"progress"`

	// CategoryProgress tracks category-scoped budgets, keyed by
	// category identifier, for categories that have spend
	CategoryProgress map[int64]Progress `json:"categoryProgress"`

	// Count and Recent feed the activity card
	Count  int        `json:"count"`
	Recent []*Expense `json:"recent"`
}

// Summary derives the month overview from the loaded collections
func (v *MonthView) Summary() (*Summary, error) {
	total, err := v.Ledger.Total()
	if err != nil {
		return nil, err
	}

	breakdown := v.Ledger.Breakdown(v.categories)

	categoryProgress := make(map[int64]Progress)
	for _, bucket := range breakdown {
		if bucket.CategoryID == nil {
			continue
		}
		if _, ok := v.Budgets.FindForCategory(*bucket.CategoryID); ok {
			categoryProgress[*bucket.CategoryID] = v.Budgets.Progress(bucket.Total, *bucket.CategoryID)
		}
	}

	recent := v.Ledger.Expenses()
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}

	return &Summary{
		Month:            v.month,
		Total:            total,
		Breakdown:        breakdown,
		Progress:         v.Budgets.Progress(total, 0),
		CategoryProgress: categoryProgress,
		Count:            v.Ledger.Len(),
		Recent:           recent,
	}, nil
}
