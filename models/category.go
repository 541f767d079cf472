package models

import (
	"time"

	"github.com/google/uuid"
)

// Category represents a subject/topic grouping for resources and posts
type Category struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	Icon        *string   `json:"icon,omitempty" db:"icon"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new Category instance
func NewCategory(name string, description, icon *string) *Category {
	return &Category{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Icon:        icon,
		CreatedAt:   time.Now(),
	}
}

// CategoryWithCount is a category joined with its resource count
type CategoryWithCount struct {
	Category
	ResourceCount int `json:"resource_count" db:"resource_count"`
}
