package spendwise

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
)

// budgetService implements the BudgetService interface
type budgetService struct {
	client *Client
}

// List retrieves the budgets for a month. Whole-month and
// category-scoped records come back through the same endpoint;
// Budget.UnmarshalJSON normalizes the two wire shapes.
func (s *budgetService) List(ctx context.Context, month MonthKey) ([]*Budget, error) {
	if !month.Valid() {
		return nil, ErrInvalidMonth
	}

	query := url.Values{}
	query.Set("month", month.String())

	var result []*Budget
	if err := s.client.execute(ctx, http.MethodGet, "/budgets", query, nil, &result); err != nil {
		return nil, errors.Wrap(err, "failed to get budgets")
	}

	return result, nil
}

// Set creates or replaces the budget for a (month, scope) pair.
// The server does the matching; callers re-fetch for the
// authoritative month state.
func (s *budgetService) Set(ctx context.Context, params *SetBudgetParams) (*Budget, error) {
	if !params.Month.Valid() {
		return nil, ErrInvalidMonth
	}
	if err := validateAmount("limitAmount", params.LimitAmount); err != nil {
		return nil, err
	}

	// The whole-month scope travels as {amount, month}; the
	// category scope as {category:{id}, limitAmount, month}.
	var body map[string]interface{}
	if params.CategoryID == 0 {
		body = map[string]interface{}{
			"amount": params.LimitAmount,
			"month":  params.Month.String(),
		}
	} else {
		body = map[string]interface{}{
			"category":    map[string]interface{}{"id": params.CategoryID},
			"limitAmount": params.LimitAmount,
			"month":       params.Month.String(),
		}
	}

	var result Budget
	if err := s.client.execute(ctx, http.MethodPost, "/budgets", nil, body, &result); err != nil {
		return nil, errors.Wrap(err, "failed to set budget")
	}

	return &result, nil
}
