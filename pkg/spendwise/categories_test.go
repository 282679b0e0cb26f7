package spendwise

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	internalTypes "github.com/spendwise/spendwise-go/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockTransport mocks the HTTP transport for service tests
type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Execute(ctx context.Context, method, path string, query url.Values, body, result interface{}) error {
	args := m.Called(ctx, method, path, query, body, result)

	// If mock provides result data, unmarshal it
	if args.Get(0) != nil {
		resultJSON := args.Get(0).(string)
		if result != nil {
			if err := json.Unmarshal([]byte(resultJSON), result); err != nil {
				return err
			}
		}
	}

	return args.Error(1)
}

func (m *MockTransport) SetAuth(token string) {
	m.Called(token)
}

func (m *MockTransport) SetSession(session *internalTypes.Session) {
	m.Called(session)
}

// newTestClient wires a client around a transport double
func newTestClient(transport Transport) *Client {
	c := &Client{
		transport:   transport,
		options:     &ClientOptions{},
		baseURL:     "https://api.test.com",
		invalidated: make(chan struct{}),
	}
	c.initServices()
	return c
}

func TestCategoryService_List(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	mockResponse := `[
		{"id": 1, "name": "Food & Dining", "type": "EXPENSE", "color": "#ef4444"},
		{"id": 2, "name": "Transportation", "type": "EXPENSE", "color": "#3b82f6"}
	]`

	mockTransport.On("Execute",
		mock.Anything,
		http.MethodGet,
		"/categories",
		mock.Anything,
		mock.Anything,
		mock.Anything,
	).Return(mockResponse, nil)

	categories, err := client.Categories.List(context.Background())

	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, int64(1), categories[0].ID)
	assert.Equal(t, "Food & Dining", categories[0].Name)
	assert.Equal(t, "#3b82f6", categories[1].Color)

	mockTransport.AssertExpectations(t)
}

func TestCategoryService_List_Error(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	mockTransport.On("Execute",
		mock.Anything,
		http.MethodGet,
		"/categories",
		mock.Anything,
		mock.Anything,
		mock.Anything,
	).Return(nil, ErrServerError)

	categories, err := client.Categories.List(context.Background())

	assert.Error(t, err)
	assert.Nil(t, categories)
}

func TestCategoryService_Create(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	mockResponse := `{"id": 9, "name": "Travel", "type": "EXPENSE", "color": "#0ea5e9"}`

	mockTransport.On("Execute",
		mock.Anything,
		http.MethodPost,
		"/categories",
		mock.Anything,
		mock.MatchedBy(func(body interface{}) bool {
			m, ok := body.(map[string]interface{})
			return ok && m["name"] == "Travel" && m["color"] == "#0ea5e9"
		}),
		mock.Anything,
	).Return(mockResponse, nil)

	category, err := client.Categories.Create(context.Background(), "Travel", "#0ea5e9")

	require.NoError(t, err)
	assert.Equal(t, int64(9), category.ID)
	assert.Equal(t, "Travel", category.Name)

	mockTransport.AssertExpectations(t)
}

func TestCategoryService_Create_EmptyName(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	category, err := client.Categories.Create(context.Background(), "", "#fff")

	assert.Nil(t, category)
	assert.True(t, IsValidationError(err))
	// Validation failures block submission before any request is sent
	mockTransport.AssertNotCalled(t, "Execute")
}
