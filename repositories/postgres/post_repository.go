package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/studentlms/backend/models"
	"github.com/studentlms/backend/repositories"
	"github.com/studentlms/backend/services"
	"go.uber.org/zap"
)

// PostRepository implements the repositories.PostRepository interface
type PostRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *DB, logger *zap.Logger) repositories.PostRepository {
	return &PostRepository{
		db:     db,
		logger: logger,
	}
}

const postColumns = "id, post_type, title, description, category_id, author_id, attachment_urls, is_pinned, is_active, created_at, updated_at"

func scanPostRow(scan func(dest ...interface{}) error) (*models.Post, error) {
	post := &models.Post{}
	err := scan(
		&post.ID,
		&post.PostType,
		&post.Title,
		&post.Description,
		&post.CategoryID,
		&post.AuthorID,
		&post.AttachmentURLs,
		&post.IsPinned,
		&post.IsActive,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return post, nil
}

// Create creates a new post
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (id, post_type, title, description, category_id, author_id, attachment_urls, is_pinned, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		post.ID,
		post.PostType,
		post.Title,
		post.Description,
		post.CategoryID,
		post.AuthorID,
		post.AttachmentURLs,
		post.IsPinned,
		post.IsActive,
		post.CreatedAt,
		post.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	r.logger.Debug("post created", zap.String("id", post.ID.String()), zap.String("post_type", string(post.PostType)))
	return nil
}

// GetByID retrieves a post by ID, active or not
func (r *PostRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	executor := GetExecutor(ctx, r.db)
	post, err := scanPostRow(executor.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, services.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return post, nil
}

func (r *PostRepository) queryPosts(ctx context.Context, query string, args ...interface{}) ([]*models.Post, error) {
	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		post, err := scanPostRow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}

	return posts, nil
}

// List retrieves active posts, pinned first then newest, with optional
// post type and category filters.
func (r *PostRepository) List(ctx context.Context, postType *models.PostType, categoryID *uuid.UUID, limit int) ([]*models.Post, error) {
	where := []string{"is_active = TRUE"}
	args := make([]interface{}, 0, 3)

	if postType != nil {
		args = append(args, *postType)
		where = append(where, fmt.Sprintf("post_type = $%d", len(args)))
	}
	if categoryID != nil {
		args = append(args, *categoryID)
		where = append(where, fmt.Sprintf("category_id = $%d", len(args)))
	}

	args = append(args, limit)
	query := fmt.Sprintf(
		`SELECT `+postColumns+` FROM posts WHERE %s ORDER BY is_pinned DESC, created_at DESC LIMIT $%d`,
		strings.Join(where, " AND "), len(args),
	)

	return r.queryPosts(ctx, query, args...)
}

// ListByAuthor retrieves a user's posts, including inactive ones, newest first
func (r *PostRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID, limit int) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE author_id = $1 ORDER BY created_at DESC LIMIT $2`
	return r.queryPosts(ctx, query, authorID, limit)
}

// Update applies a partial update and returns the updated row
func (r *PostRepository) Update(ctx context.Context, id uuid.UUID, update repositories.PostUpdate) (*models.Post, error) {
	set := make([]string, 0, 6)
	args := make([]interface{}, 0, 6)

	if update.Title != nil {
		args = append(args, *update.Title)
		set = append(set, fmt.Sprintf("title = $%d", len(args)))
	}
	if update.Description != nil {
		args = append(args, *update.Description)
		set = append(set, fmt.Sprintf("description = $%d", len(args)))
	}
	if update.CategoryID != nil {
		args = append(args, *update.CategoryID)
		set = append(set, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if update.AttachmentURLs != nil {
		args = append(args, *update.AttachmentURLs)
		set = append(set, fmt.Sprintf("attachment_urls = $%d", len(args)))
	}
	if update.IsActive != nil {
		args = append(args, *update.IsActive)
		set = append(set, fmt.Sprintf("is_active = $%d", len(args)))
	}
	if len(set) == 0 {
		return nil, services.ErrNoFieldsToUpdate
	}
	set = append(set, "updated_at = CURRENT_TIMESTAMP")

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE posts SET %s WHERE id = $%d RETURNING `+postColumns,
		strings.Join(set, ", "), len(args),
	)

	executor := GetExecutor(ctx, r.db)
	post, err := scanPostRow(executor.QueryRowContext(ctx, query, args...).Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, services.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	r.logger.Debug("post updated", zap.String("id", id.String()))
	return post, nil
}

// SoftDelete marks a post inactive without removing the row
func (r *PostRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE posts SET is_active = FALSE, updated_at = CURRENT_TIMESTAMP WHERE id = $1`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return services.ErrPostNotFound
	}

	r.logger.Debug("post soft deleted", zap.String("id", id.String()))
	return nil
}
