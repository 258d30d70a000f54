// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/budget-ledger/backend/internal/domain/entity"
)

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=100"`
	ShortCode string `json:"short_code" binding:"required,min=1,max=10"`
}

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ShortCode string    `json:"short_code"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToCategoryResponse converts a domain Category entity to a CategoryResponse DTO.
func ToCategoryResponse(category *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:        category.ID.String(),
		Name:      category.Name,
		ShortCode: category.ShortCode,
		Active:    category.Active,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}

// ToCategoryListResponse converts a list of categories to a CategoryListResponse.
func ToCategoryListResponse(categories []*entity.Category) CategoryListResponse {
	responses := make([]CategoryResponse, len(categories))
	for i, category := range categories {
		responses[i] = ToCategoryResponse(category)
	}
	return CategoryListResponse{
		Categories: responses,
	}
}
