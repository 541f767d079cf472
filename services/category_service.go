package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/studentlms/backend/models"
	"github.com/studentlms/backend/repositories"
	"github.com/studentlms/backend/validation"
	"go.uber.org/zap"
)

// CreateCategoryInput carries the fields accepted when creating a category
type CreateCategoryInput struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
}

// CategoryService handles subject category management
type CategoryService struct {
	categories repositories.CategoryRepository
	logger     *zap.Logger
}

// NewCategoryService creates a new CategoryService instance
func NewCategoryService(categories repositories.CategoryRepository, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		categories: categories,
		logger:     logger,
	}
}

// Create validates and persists a new category
func (s *CategoryService) Create(ctx context.Context, input CreateCategoryInput) (*models.Category, error) {
	name := validation.SanitizeTitle(input.Name)
	if name == "" {
		return nil, NewDomainError(ErrorTypeValidation, "category name is required", nil)
	}

	var description *string
	if input.Description != nil {
		d := validation.SanitizeText(*input.Description)
		description = &d
	}
	var icon *string
	if input.Icon != nil {
		i := validation.SanitizeString(*input.Icon, 100, false)
		icon = &i
	}

	category := models.NewCategory(name, description, icon)
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info("category created", zap.String("category_id", category.ID.String()), zap.String("name", name))
	return category, nil
}

// GetByID retrieves a single category
func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	return s.categories.GetByID(ctx, id)
}

// List retrieves all categories ordered by name
func (s *CategoryService) List(ctx context.Context) ([]*models.Category, error) {
	return s.categories.List(ctx)
}

// ListWithCounts retrieves all categories with their resource counts
func (s *CategoryService) ListWithCounts(ctx context.Context) ([]*models.CategoryWithCount, error) {
	return s.categories.ListWithCounts(ctx)
}
