package spendwise

import (
	"context"
	"math"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestExpenseService_List(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	mockResponse := `[
		{"id": 10, "amount": 42.50, "description": "Groceries", "date": "2025-08-12",
		 "category": {"id": 1, "name": "Food & Dining", "color": "#ef4444"}},
		{"id": 11, "amount": 12.00, "description": "Bus pass", "date": [2025, 8, 10]}
	]`

	mockTransport.On("Execute",
		mock.Anything,
		http.MethodGet,
		"/expenses",
		mock.Anything,
		mock.Anything,
		mock.Anything,
	).Return(mockResponse, nil)

	expenses, err := client.Expenses.List(context.Background())

	require.NoError(t, err)
	require.Len(t, expenses, 2)
	assert.Equal(t, 42.50, expenses[0].Amount)
	assert.Equal(t, "Food & Dining", expenses[0].Category.Name)
	// Java LocalDate array form
	assert.Equal(t, "2025-08-10", expenses[1].Date.String())
	assert.Nil(t, expenses[1].Category)
}

func TestExpenseService_Create(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	mockResponse := `{"id": 20, "amount": 15.75, "description": "Lunch", "date": "2025-08-14",
		"category": {"id": 1, "name": "Food & Dining"}}`

	mockTransport.On("Execute",
		mock.Anything,
		http.MethodPost,
		"/expenses",
		mock.Anything,
		mock.MatchedBy(func(body interface{}) bool {
			m, ok := body.(map[string]interface{})
			if !ok || m["amount"] != 15.75 || m["date"] != "2025-08-14" {
				return false
			}
			category, ok := m["category"].(map[string]interface{})
			return ok && category["id"] == int64(1)
		}),
		mock.Anything,
	).Return(mockResponse, nil)

	expense, err := client.Expenses.Create(context.Background(), &CreateExpenseParams{
		Amount:      15.75,
		Description: "Lunch",
		Date:        NewDate(2025, 8, 14),
		CategoryID:  1,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(20), expense.ID)

	mockTransport.AssertExpectations(t)
}

func TestExpenseService_Create_NoCategory(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	mockResponse := `{"id": 21, "amount": 5, "date": "2025-08-14"}`

	mockTransport.On("Execute",
		mock.Anything,
		http.MethodPost,
		"/expenses",
		mock.Anything,
		mock.MatchedBy(func(body interface{}) bool {
			m, ok := body.(map[string]interface{})
			return ok && m["category"] == nil
		}),
		mock.Anything,
	).Return(mockResponse, nil)

	expense, err := client.Expenses.Create(context.Background(), &CreateExpenseParams{
		Amount: 5,
		Date:   NewDate(2025, 8, 14),
	})

	require.NoError(t, err)
	assert.Nil(t, expense.Category)
}

func TestExpenseService_Create_InvalidAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
	}{
		{"zero", 0},
		{"negative", -10},
		{"NaN", math.NaN()},
		{"positive infinity", math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockTransport := new(MockTransport)
			client := newTestClient(mockTransport)

			expense, err := client.Expenses.Create(context.Background(), &CreateExpenseParams{
				Amount: tt.amount,
				Date:   NewDate(2025, 8, 14),
			})

			assert.Nil(t, expense)
			assert.True(t, IsValidationError(err))
			mockTransport.AssertNotCalled(t, "Execute")
		})
	}
}

func TestExpenseService_Update_PartialFields(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	mockResponse := `{"id": 10, "amount": 50, "description": "Groceries", "date": "2025-08-12"}`

	mockTransport.On("Execute",
		mock.Anything,
		http.MethodPut,
		"/expenses/10",
		mock.Anything,
		mock.MatchedBy(func(body interface{}) bool {
			m, ok := body.(map[string]interface{})
			if !ok {
				return false
			}
			// Only the set field travels; the server merges the rest
			_, hasAmount := m["amount"]
			_, hasDescription := m["description"]
			_, hasDate := m["date"]
			return hasAmount && !hasDescription && !hasDate
		}),
		mock.Anything,
	).Return(mockResponse, nil)

	amount := 50.0
	expense, err := client.Expenses.Update(context.Background(), 10, &UpdateExpenseParams{
		Amount: &amount,
	})

	require.NoError(t, err)
	assert.Equal(t, 50.0, expense.Amount)

	mockTransport.AssertExpectations(t)
}

func TestExpenseService_Delete(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	mockTransport.On("Execute",
		mock.Anything,
		http.MethodDelete,
		"/expenses/10",
		mock.Anything,
		mock.Anything,
		mock.Anything,
	).Return(nil, nil)

	err := client.Expenses.Delete(context.Background(), 10)

	assert.NoError(t, err)
	mockTransport.AssertExpectations(t)
}
