package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/studentlms/backend/models"
	"github.com/studentlms/backend/repositories"
	"github.com/studentlms/backend/validation"
	"go.uber.org/zap"
)

// CreatePostInput carries the fields accepted when publishing a post
type CreatePostInput struct {
	Title          string   `json:"title" validate:"required"`
	Description    string   `json:"description" validate:"required"`
	PostType       string   `json:"post_type" validate:"required"`
	CategoryID     *string  `json:"category_id,omitempty"`
	AttachmentURLs []string `json:"attachment_urls,omitempty"`
}

// UpdatePostInput carries the optional fields of a post update
type UpdatePostInput struct {
	Title          *string   `json:"title,omitempty"`
	Description    *string   `json:"description,omitempty"`
	CategoryID     *string   `json:"category_id,omitempty"`
	AttachmentURLs *[]string `json:"attachment_urls,omitempty"`
	IsActive       *bool     `json:"is_active,omitempty"`
}

// PostFilters narrows a post listing
type PostFilters struct {
	PostType   *string
	CategoryID *string
}

// PostService handles community feed posts
type PostService struct {
	posts  repositories.PostRepository
	logger *zap.Logger
}

// NewPostService creates a new PostService instance
func NewPostService(posts repositories.PostRepository, logger *zap.Logger) *PostService {
	return &PostService{
		posts:  posts,
		logger: logger,
	}
}

// Create validates and persists a new post. Invalid attachment URLs
// are dropped rather than failing the whole post.
func (s *PostService) Create(ctx context.Context, input CreatePostInput, authorID uuid.UUID) (*models.Post, error) {
	title := validation.SanitizeTitle(input.Title)
	if title == "" {
		return nil, NewDomainError(ErrorTypeValidation, "title is required", nil)
	}
	description := validation.SanitizeText(input.Description)
	if description == "" {
		return nil, NewDomainError(ErrorTypeValidation, "description is required", nil)
	}
	postType, err := validation.ValidatePostType(input.PostType)
	if err != nil {
		return nil, validationError(err)
	}

	post := models.NewPost(title, description, postType, authorID)

	categoryID, err := parseOptionalUUID("category_id", input.CategoryID)
	if err != nil {
		return nil, err
	}
	post.CategoryID = categoryID

	if len(input.AttachmentURLs) > 0 {
		post.AttachmentURLs = validation.SanitizeAttachmentURLs(input.AttachmentURLs, validation.DefaultMaxURLs)
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info("post created",
		zap.String("post_id", post.ID.String()),
		zap.String("post_type", string(postType)),
		zap.String("author_id", authorID.String()))
	return post, nil
}

// Get retrieves a single post
func (s *PostService) Get(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	return s.posts.GetByID(ctx, id)
}

// List retrieves active posts, pinned first then newest
func (s *PostService) List(ctx context.Context, filters PostFilters, limit int) ([]*models.Post, error) {
	var postType *models.PostType
	if filters.PostType != nil && *filters.PostType != "" {
		parsed, err := validation.ValidatePostType(*filters.PostType)
		if err != nil {
			return nil, validationError(err)
		}
		postType = &parsed
	}

	categoryID, err := parseOptionalUUID("category_id", filters.CategoryID)
	if err != nil {
		return nil, err
	}

	return s.posts.List(ctx, postType, categoryID, clampLimit(limit))
}

// ListByAuthor retrieves a user's posts including inactive ones
func (s *PostService) ListByAuthor(ctx context.Context, authorID uuid.UUID, limit int) ([]*models.Post, error) {
	return s.posts.ListByAuthor(ctx, authorID, clampLimit(limit))
}

// Update validates and applies a partial update
func (s *PostService) Update(ctx context.Context, id uuid.UUID, input UpdatePostInput) (*models.Post, error) {
	update := repositories.PostUpdate{}

	if input.Title != nil {
		title := validation.SanitizeTitle(*input.Title)
		if title == "" {
			return nil, NewDomainError(ErrorTypeValidation, "title cannot be empty", nil)
		}
		update.Title = &title
	}
	if input.Description != nil {
		description := validation.SanitizeText(*input.Description)
		update.Description = &description
	}
	categoryID, err := parseOptionalUUID("category_id", input.CategoryID)
	if err != nil {
		return nil, err
	}
	update.CategoryID = categoryID

	if input.AttachmentURLs != nil {
		urls := models.StringList(validation.SanitizeAttachmentURLs(*input.AttachmentURLs, validation.DefaultMaxURLs))
		update.AttachmentURLs = &urls
	}
	update.IsActive = input.IsActive

	if update.IsEmpty() {
		return nil, ErrNoFieldsToUpdate
	}

	post, err := s.posts.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	s.logger.Info("post updated", zap.String("post_id", id.String()))
	return post, nil
}

// Delete deactivates a post while keeping the row for moderation history
func (s *PostService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.posts.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("post deleted", zap.String("post_id", id.String()))
	return nil
}
