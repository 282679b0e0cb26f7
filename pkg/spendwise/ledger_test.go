package spendwise

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLedger_Refresh(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)
	ledger := NewLedger(client)

	mockResponse := `[
		{"id": 1, "amount": 50, "date": "2025-08-10", "category": {"id": 1, "name": "Food"}},
		{"id": 2, "amount": 20, "date": "2025-08-11"}
	]`

	mockTransport.On("Execute",
		mock.Anything, http.MethodGet, "/expenses",
		mock.Anything, mock.Anything, mock.Anything,
	).Return(mockResponse, nil)

	err := ledger.Refresh(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, ledger.Len())
}

func TestLedger_Refresh_FailureKeepsLastKnownGood(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)
	ledger := NewLedger(client)

	ledger.ReplaceAll([]*Expense{
		{ID: 1, Amount: 50},
		{ID: 2, Amount: 20},
	})

	mockTransport.On("Execute",
		mock.Anything, http.MethodGet, "/expenses",
		mock.Anything, mock.Anything, mock.Anything,
	).Return(nil, ErrServerError)

	err := ledger.Refresh(context.Background())

	assert.Error(t, err)
	// A failed fetch never clears previously loaded data
	assert.Equal(t, 2, ledger.Len())
	assert.Equal(t, int64(1), ledger.Expenses()[0].ID)
}

func TestLedger_Delete_RemovesLocallyAfterAck(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)
	ledger := NewLedger(client)

	ledger.ReplaceAll([]*Expense{
		{ID: 1, Amount: 50},
		{ID: 2, Amount: 20},
	})

	mockTransport.On("Execute",
		mock.Anything, http.MethodDelete, "/expenses/1",
		mock.Anything, mock.Anything, mock.Anything,
	).Return(nil, nil)

	err := ledger.Delete(context.Background(), 1)

	require.NoError(t, err)
	require.Equal(t, 1, ledger.Len())
	assert.Equal(t, int64(2), ledger.Expenses()[0].ID)
}

func TestLedger_Delete_FailureLeavesLedgerUntouched(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)
	ledger := NewLedger(client)

	ledger.ReplaceAll([]*Expense{
		{ID: 1, Amount: 50},
		{ID: 2, Amount: 20},
	})

	mockTransport.On("Execute",
		mock.Anything, http.MethodDelete, "/expenses/1",
		mock.Anything, mock.Anything, mock.Anything,
	).Return(nil, ErrServerError)

	err := ledger.Delete(context.Background(), 1)

	assert.Error(t, err)
	// The expense stays until the server acknowledges the delete
	assert.Equal(t, 2, ledger.Len())
}

func TestLedger_Delete_LeavesEarlierSnapshotsIntact(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)
	ledger := NewLedger(client)

	ledger.ReplaceAll([]*Expense{
		{ID: 1, Amount: 50},
		{ID: 2, Amount: 20},
		{ID: 3, Amount: 10},
	})
	snapshot := ledger.Expenses()

	mockTransport.On("Execute",
		mock.Anything, http.MethodDelete, "/expenses/1",
		mock.Anything, mock.Anything, mock.Anything,
	).Return(nil, nil)

	require.NoError(t, ledger.Delete(context.Background(), 1))
	require.Equal(t, 2, ledger.Len())

	// A slice handed out before the delete still sees the old state
	require.Len(t, snapshot, 3)
	assert.Equal(t, int64(1), snapshot[0].ID)
	assert.Equal(t, int64(2), snapshot[1].ID)
	assert.Equal(t, int64(3), snapshot[2].ID)
}

func TestLedger_Add_RefetchesAfterCreate(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)
	ledger := NewLedger(client)

	createResponse := `{"id": 3, "amount": 10, "date": "2025-08-14"}`
	listResponse := `[
		{"id": 3, "amount": 10, "date": "2025-08-14"},
		{"id": 1, "amount": 50, "date": "2025-08-10"}
	]`

	mockTransport.On("Execute",
		mock.Anything, http.MethodPost, "/expenses",
		mock.Anything, mock.Anything, mock.Anything,
	).Return(createResponse, nil)
	mockTransport.On("Execute",
		mock.Anything, http.MethodGet, "/expenses",
		mock.Anything, mock.Anything, mock.Anything,
	).Return(listResponse, nil)

	err := ledger.Add(context.Background(), &CreateExpenseParams{
		Amount: 10,
		Date:   NewDate(2025, 8, 14),
	})

	require.NoError(t, err)
	// The ledger reflects the canonical server state, not a local merge
	assert.Equal(t, 2, ledger.Len())
	assert.Equal(t, int64(3), ledger.Expenses()[0].ID)

	mockTransport.AssertExpectations(t)
}

func TestLedger_TotalAndBreakdown(t *testing.T) {
	client := newTestClient(new(MockTransport))
	ledger := NewLedger(client)

	food := &Category{ID: 1, Name: "Food"}
	ledger.ReplaceAll([]*Expense{
		{ID: 1, Amount: 50, Category: food},
		{ID: 2, Amount: 20},
	})

	total, err := ledger.Total()
	require.NoError(t, err)
	assert.InDelta(t, 70, total, epsilon)

	breakdown := ledger.Breakdown([]*Category{food})
	require.Len(t, breakdown, 2)
	assert.Equal(t, "Food", breakdown[0].Name)
	assert.Equal(t, UncategorizedName, breakdown[1].Name)
}
