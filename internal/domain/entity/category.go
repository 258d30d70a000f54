// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Category represents a top-level budget classification such as income or
// expense. Its short code is the prefix used when generating budget item
// codes and must stay stable once items reference it.
type Category struct {
	ID        uuid.UUID
	Name      string
	ShortCode string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCategory creates a new Category entity.
func NewCategory(name, shortCode string) *Category {
	now := time.Now().UTC()

	return &Category{
		ID:        uuid.New(),
		Name:      name,
		ShortCode: shortCode,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
