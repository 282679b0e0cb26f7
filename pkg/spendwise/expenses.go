package spendwise

import (
	"context"
	"fmt"
	"math"
	"net/http"

	"github.com/pkg/errors"
)

// expenseService implements the ExpenseService interface
type expenseService struct {
	client *Client
}

// List retrieves all expenses for the current user, newest first
func (s *expenseService) List(ctx context.Context) ([]*Expense, error) {
	var result []*Expense

	if err := s.client.execute(ctx, http.MethodGet, "/expenses", nil, nil, &result); err != nil {
		return nil, errors.Wrap(err, "failed to get expenses")
	}

	return result, nil
}

// Create creates a new expense
func (s *expenseService) Create(ctx context.Context, params *CreateExpenseParams) (*Expense, error) {
	if err := validateAmount("amount", params.Amount); err != nil {
		return nil, err
	}
	if params.Amount == 0 {
		return nil, &ValidationError{Field: "amount", Message: "amount must be positive", Value: params.Amount}
	}

	body := map[string]interface{}{
		"amount":      params.Amount,
		"description": params.Description,
		"date":        params.Date.String(),
	}
	if params.CategoryID != 0 {
		body["category"] = map[string]interface{}{"id": params.CategoryID}
	} else {
		body["category"] = nil
	}

	var result Expense
	if err := s.client.execute(ctx, http.MethodPost, "/expenses", nil, body, &result); err != nil {
		return nil, errors.Wrap(err, "failed to create expense")
	}

	return &result, nil
}

// Update updates an existing expense; only the fields set in params
// are sent, the server merges the rest
func (s *expenseService) Update(ctx context.Context, expenseID int64, params *UpdateExpenseParams) (*Expense, error) {
	body := map[string]interface{}{}

	if params.Amount != nil {
		if err := validateAmount("amount", *params.Amount); err != nil {
			return nil, err
		}
		if *params.Amount == 0 {
			return nil, &ValidationError{Field: "amount", Message: "amount must be positive", Value: *params.Amount}
		}
		body["amount"] = *params.Amount
	}
	if params.Description != nil {
		body["description"] = *params.Description
	}
	if params.Date != nil {
		body["date"] = params.Date.String()
	}
	if params.CategoryID != nil {
		body["category"] = map[string]interface{}{"id": *params.CategoryID}
	}

	var result Expense
	path := fmt.Sprintf("/expenses/%d", expenseID)
	if err := s.client.execute(ctx, http.MethodPut, path, nil, body, &result); err != nil {
		return nil, errors.Wrap(err, "failed to update expense")
	}

	return &result, nil
}

// Delete deletes an expense
func (s *expenseService) Delete(ctx context.Context, expenseID int64) error {
	path := fmt.Sprintf("/expenses/%d", expenseID)
	if err := s.client.execute(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return errors.Wrap(err, "failed to delete expense")
	}

	return nil
}

// validateAmount rejects NaN, infinities, and negative values before
// any request is sent
func validateAmount(field string, amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return &ValidationError{Field: field, Message: "amount must be a finite non-negative number", Value: amount}
	}
	return nil
}
