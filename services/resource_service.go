package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/studentlms/backend/models"
	"github.com/studentlms/backend/repositories"
	"github.com/studentlms/backend/validation"
	"go.uber.org/zap"
)

// CreateResourceInput carries the fields accepted when sharing a resource
type CreateResourceInput struct {
	Title       string   `json:"title" validate:"required"`
	Description *string  `json:"description,omitempty"`
	CategoryID  string   `json:"category_id" validate:"required"`
	FileURL     *string  `json:"file_url,omitempty"`
	FileType    *string  `json:"file_type,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// UpdateResourceInput carries the optional fields of a resource update
type UpdateResourceInput struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	FileURL     *string   `json:"file_url,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
}

// SearchFilters narrows a resource search
type SearchFilters struct {
	CategoryID *string
	FileType   *string
}

// ResourceService handles shared learning resources
type ResourceService struct {
	resources  repositories.ResourceRepository
	categories repositories.CategoryRepository
	logger     *zap.Logger
}

// NewResourceService creates a new ResourceService instance
func NewResourceService(resources repositories.ResourceRepository, categories repositories.CategoryRepository, logger *zap.Logger) *ResourceService {
	return &ResourceService{
		resources:  resources,
		categories: categories,
		logger:     logger,
	}
}

// Create validates and persists a new resource
func (s *ResourceService) Create(ctx context.Context, input CreateResourceInput, authorID uuid.UUID) (*models.Resource, error) {
	title := validation.SanitizeTitle(input.Title)
	if title == "" {
		return nil, NewDomainError(ErrorTypeValidation, "title is required", nil)
	}

	categoryIDStr, err := validation.ValidateUUID("category_id", input.CategoryID)
	if err != nil {
		return nil, validationError(err)
	}
	categoryID, err := uuid.Parse(categoryIDStr)
	if err != nil {
		return nil, validationError(err)
	}

	// Reject dangling category references up front rather than letting
	// the foreign key surface as an internal error.
	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		return nil, err
	}

	resource := models.NewResource(title, categoryID, authorID)

	if input.Description != nil {
		d := validation.SanitizeText(*input.Description)
		resource.Description = &d
	}
	if input.FileURL != nil {
		fileURL, err := validation.ValidateURL("file_url", *input.FileURL)
		if err != nil {
			return nil, validationError(err)
		}
		resource.FileURL = &fileURL
	}
	if input.FileType != nil {
		fileType, err := validation.ValidateFileType(*input.FileType)
		if err != nil {
			return nil, validationError(err)
		}
		resource.FileType = &fileType
	}
	if len(input.Tags) > 0 {
		resource.Tags = validation.SanitizeTags(input.Tags, validation.DefaultMaxTags, validation.DefaultMaxTagLength)
	}

	if err := s.resources.Create(ctx, resource); err != nil {
		return nil, err
	}

	s.logger.Info("resource created",
		zap.String("resource_id", resource.ID.String()),
		zap.String("author_id", authorID.String()))
	return resource, nil
}

// Get retrieves a resource and records the view
func (s *ResourceService) Get(ctx context.Context, id uuid.UUID) (*models.Resource, error) {
	resource, err := s.resources.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.resources.IncrementViewCount(ctx, id); err != nil {
		// A lost view is not worth failing the read
		s.logger.Warn("failed to record view", zap.String("resource_id", id.String()), zap.Error(err))
	} else {
		resource.ViewCount++
	}

	return resource, nil
}

// List retrieves resources, newest first
func (s *ResourceService) List(ctx context.Context, limit int) ([]*models.Resource, error) {
	return s.resources.List(ctx, clampLimit(limit))
}

// ListByCategory retrieves resources within one category
func (s *ResourceService) ListByCategory(ctx context.Context, categoryID uuid.UUID, limit int) ([]*models.Resource, error) {
	return s.resources.ListByCategory(ctx, categoryID, clampLimit(limit))
}

// Search finds resources by a case-insensitive title or description
// match, with optional category and file type filters.
func (s *ResourceService) Search(ctx context.Context, query string, filters SearchFilters, limit int) ([]*models.Resource, error) {
	query = validation.SanitizeString(query, validation.MaxTitleLength, false)

	var categoryID *uuid.UUID
	if filters.CategoryID != nil && *filters.CategoryID != "" {
		idStr, err := validation.ValidateUUID("category_id", *filters.CategoryID)
		if err != nil {
			return nil, validationError(err)
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, validationError(err)
		}
		categoryID = &id
	}

	var fileType *models.FileType
	if filters.FileType != nil && *filters.FileType != "" {
		ft, err := validation.ValidateFileType(*filters.FileType)
		if err != nil {
			return nil, validationError(err)
		}
		fileType = &ft
	}

	return s.resources.Search(ctx, query, categoryID, fileType, clampLimit(limit))
}

// Download records a download and returns the resource so the caller
// can redirect to its file URL.
func (s *ResourceService) Download(ctx context.Context, id uuid.UUID) (*models.Resource, error) {
	resource, err := s.resources.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if resource.FileURL == nil {
		return nil, NewDomainError(ErrorTypeValidation, "resource has no downloadable file", nil)
	}

	if err := s.resources.IncrementDownloadCount(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to record download: %w", err)
	}
	resource.DownloadCount++

	return resource, nil
}

// Update validates and applies a partial update
func (s *ResourceService) Update(ctx context.Context, id uuid.UUID, input UpdateResourceInput) (*models.Resource, error) {
	update := repositories.ResourceUpdate{}

	if input.Title != nil {
		title := validation.SanitizeTitle(*input.Title)
		if title == "" {
			return nil, NewDomainError(ErrorTypeValidation, "title cannot be empty", nil)
		}
		update.Title = &title
	}
	if input.Description != nil {
		d := validation.SanitizeText(*input.Description)
		update.Description = &d
	}
	if input.FileURL != nil {
		fileURL, err := validation.ValidateURL("file_url", *input.FileURL)
		if err != nil {
			return nil, validationError(err)
		}
		update.FileURL = &fileURL
	}
	if input.Tags != nil {
		tags := models.StringList(validation.SanitizeTags(*input.Tags, validation.DefaultMaxTags, validation.DefaultMaxTagLength))
		update.Tags = &tags
	}

	if update.IsEmpty() {
		return nil, ErrNoFieldsToUpdate
	}

	resource, err := s.resources.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	s.logger.Info("resource updated", zap.String("resource_id", id.String()))
	return resource, nil
}

// Delete removes a resource permanently
func (s *ResourceService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.resources.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("resource deleted", zap.String("resource_id", id.String()))
	return nil
}
