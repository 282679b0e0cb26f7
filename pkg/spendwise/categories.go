package spendwise

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
)

// categoryService implements the CategoryService interface
type categoryService struct {
	client *Client
}

// List retrieves the user's categories in server order
func (s *categoryService) List(ctx context.Context) ([]*Category, error) {
	var result []*Category

	if err := s.client.execute(ctx, http.MethodGet, "/categories", nil, nil, &result); err != nil {
		return nil, errors.Wrap(err, "failed to get categories")
	}

	return result, nil
}

// Create creates a new category
func (s *categoryService) Create(ctx context.Context, name, color string) (*Category, error) {
	if name == "" {
		return nil, &ValidationError{Field: "name", Message: "name is required"}
	}

	body := map[string]interface{}{
		"name":  name,
		"color": color,
		"type":  "EXPENSE",
	}

	var result Category
	if err := s.client.execute(ctx, http.MethodPost, "/categories", nil, body, &result); err != nil {
		return nil, errors.Wrap(err, "failed to create category")
	}

	return &result, nil
}
