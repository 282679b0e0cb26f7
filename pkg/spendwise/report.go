package spendwise

import (
	"math"
)

// UncategorizedName labels the bucket collecting expenses whose
// category reference is absent or does not resolve against the registry.
const UncategorizedName = "Uncategorized"

// uncategorizedColor is the fallback swatch for the Uncategorized bucket
const uncategorizedColor = "#cbd5e1"

// BudgetStatus classifies consumption of a budget limit
type BudgetStatus string

const (
	// BudgetStatusOK means at most 80% of the limit is spent
	BudgetStatusOK BudgetStatus = "ok"

	// BudgetStatusWarning means more than 80% but at most 100% is spent
	BudgetStatusWarning BudgetStatus = "warning"

	// BudgetStatusOver means the limit is exceeded
	BudgetStatusOver BudgetStatus = "over"
)

// Progress is the derived consumption of a budget limit
type Progress struct {
	Percent float64      `json:"percent"`
	Status  BudgetStatus `json:"status"`
}

// CategoryTotal is one bucket of a category breakdown. CategoryID is
// nil for the Uncategorized bucket.
type CategoryTotal struct {
	CategoryID *int64  `json:"categoryId"`
	Name       string  `json:"name"`
	Color      string  `json:"color"`
	Total      float64 `json:"total"`
}

// ComputeTotal sums the amounts of the given expenses. The ledger
// should never contain a NaN, infinite, or negative amount, but a bad
// record must fail loudly rather than silently poison the sum.
func ComputeTotal(expenses []*Expense) (float64, error) {
	var total float64
	for _, e := range expenses {
		if math.IsNaN(e.Amount) || math.IsInf(e.Amount, 0) || e.Amount < 0 {
			return 0, ErrInvalidAmount
		}
		total += e.Amount
	}
	return total, nil
}

// CategoryBreakdown groups expenses by resolved category, accumulating
// totals. Bucket order follows first occurrence in the expense
// collection; the chart legend renders it as-is. Expenses whose
// category reference is missing or does not resolve against the
// registry collapse into a single Uncategorized bucket.
func CategoryBreakdown(expenses []*Expense, categories []*Category) []*CategoryTotal {
	registry := make(map[int64]*Category, len(categories))
	for _, c := range categories {
		registry[c.ID] = c
	}

	var buckets []*CategoryTotal
	index := make(map[int64]*CategoryTotal)
	var uncategorized *CategoryTotal

	for _, e := range expenses {
		var resolved *Category
		if e.Category != nil {
			resolved = registry[e.Category.ID]
		}

		if resolved == nil {
			if uncategorized == nil {
				uncategorized = &CategoryTotal{
					Name:  UncategorizedName,
					Color: uncategorizedColor,
				}
				buckets = append(buckets, uncategorized)
			}
			uncategorized.Total += e.Amount
			continue
		}

		bucket, ok := index[resolved.ID]
		if !ok {
			id := resolved.ID
			bucket = &CategoryTotal{
				CategoryID: &id,
				Name:       resolved.Name,
				Color:      resolved.Color,
			}
			if bucket.Color == "" {
				bucket.Color = uncategorizedColor
			}
			index[resolved.ID] = bucket
			buckets = append(buckets, bucket)
		}
		bucket.Total += e.Amount
	}

	return buckets
}

// BudgetProgress derives percent-of-limit consumed and its status
// classification. A non-positive limit always yields 0% and ok;
// there is no error case.
func BudgetProgress(total, limit float64) Progress {
	if limit <= 0 {
		return Progress{Percent: 0, Status: BudgetStatusOK}
	}

	percent := (total / limit) * 100

	status := BudgetStatusOK
	switch {
	case percent > 100:
		status = BudgetStatusOver
	case percent > 80:
		status = BudgetStatusWarning
	}

	return Progress{Percent: percent, Status: status}
}
