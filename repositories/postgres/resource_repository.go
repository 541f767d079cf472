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

// ResourceRepository implements the repositories.ResourceRepository interface
type ResourceRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewResourceRepository creates a new resource repository
func NewResourceRepository(db *DB, logger *zap.Logger) repositories.ResourceRepository {
	return &ResourceRepository{
		db:     db,
		logger: logger,
	}
}

const resourceColumns = "id, title, description, category_id, file_url, file_type, tags, author_id, download_count, view_count, created_at, updated_at"

func scanResourceRow(scan func(dest ...interface{}) error) (*models.Resource, error) {
	resource := &models.Resource{}
	err := scan(
		&resource.ID,
		&resource.Title,
		&resource.Description,
		&resource.CategoryID,
		&resource.FileURL,
		&resource.FileType,
		&resource.Tags,
		&resource.AuthorID,
		&resource.DownloadCount,
		&resource.ViewCount,
		&resource.CreatedAt,
		&resource.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return resource, nil
}

// Create creates a new resource
func (r *ResourceRepository) Create(ctx context.Context, resource *models.Resource) error {
	query := `
		INSERT INTO resources (id, title, description, category_id, file_url, file_type, tags, author_id, download_count, view_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		resource.ID,
		resource.Title,
		resource.Description,
		resource.CategoryID,
		resource.FileURL,
		resource.FileType,
		resource.Tags,
		resource.AuthorID,
		resource.DownloadCount,
		resource.ViewCount,
		resource.CreatedAt,
		resource.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	r.logger.Debug("resource created", zap.String("id", resource.ID.String()), zap.String("title", resource.Title))
	return nil
}

// GetByID retrieves a resource by ID
func (r *ResourceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE id = $1`

	executor := GetExecutor(ctx, r.db)
	resource, err := scanResourceRow(executor.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, services.ErrResourceNotFound
		}
		return nil, fmt.Errorf("failed to get resource: %w", err)
	}

	return resource, nil
}

func (r *ResourceRepository) queryResources(ctx context.Context, query string, args ...interface{}) ([]*models.Resource, error) {
	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query resources: %w", err)
	}
	defer rows.Close()

	var resources []*models.Resource
	for rows.Next() {
		resource, err := scanResourceRow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resource: %w", err)
		}
		resources = append(resources, resource)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate resources: %w", err)
	}

	return resources, nil
}

// List retrieves resources, newest first
func (r *ResourceRepository) List(ctx context.Context, limit int) ([]*models.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources ORDER BY created_at DESC LIMIT $1`
	return r.queryResources(ctx, query, limit)
}

// ListByCategory retrieves resources in a category, newest first
func (r *ResourceRepository) ListByCategory(ctx context.Context, categoryID uuid.UUID, limit int) ([]*models.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE category_id = $1 ORDER BY created_at DESC LIMIT $2`
	return r.queryResources(ctx, query, categoryID, limit)
}

// Search retrieves resources matching a case-insensitive substring of
// title or description, optionally filtered by category and file type.
func (r *ResourceRepository) Search(ctx context.Context, query string, categoryID *uuid.UUID, fileType *models.FileType, limit int) ([]*models.Resource, error) {
	where := make([]string, 0, 3)
	args := make([]interface{}, 0, 4)

	if query != "" {
		args = append(args, "%"+query+"%")
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}
	if categoryID != nil {
		args = append(args, *categoryID)
		where = append(where, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if fileType != nil {
		args = append(args, *fileType)
		where = append(where, fmt.Sprintf("file_type = $%d", len(args)))
	}

	sqlQuery := `SELECT ` + resourceColumns + ` FROM resources`
	if len(where) > 0 {
		sqlQuery += ` WHERE ` + strings.Join(where, " AND ")
	}
	args = append(args, limit)
	sqlQuery += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d`, len(args))

	return r.queryResources(ctx, sqlQuery, args...)
}

// IncrementViewCount bumps the view counter
func (r *ResourceRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	return r.increment(ctx, id, "view_count")
}

// IncrementDownloadCount bumps the download counter
func (r *ResourceRepository) IncrementDownloadCount(ctx context.Context, id uuid.UUID) error {
	return r.increment(ctx, id, "download_count")
}

func (r *ResourceRepository) increment(ctx context.Context, id uuid.UUID, column string) error {
	// column is one of two fixed identifiers, never user input
	query := fmt.Sprintf(`UPDATE resources SET %s = %s + 1 WHERE id = $1`, column, column)

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to increment %s: %w", column, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return services.ErrResourceNotFound
	}

	return nil
}

// Update applies a partial update and returns the updated row
func (r *ResourceRepository) Update(ctx context.Context, id uuid.UUID, update repositories.ResourceUpdate) (*models.Resource, error) {
	set := make([]string, 0, 5)
	args := make([]interface{}, 0, 5)

	if update.Title != nil {
		args = append(args, *update.Title)
		set = append(set, fmt.Sprintf("title = $%d", len(args)))
	}
	if update.Description != nil {
		args = append(args, *update.Description)
		set = append(set, fmt.Sprintf("description = $%d", len(args)))
	}
	if update.FileURL != nil {
		args = append(args, *update.FileURL)
		set = append(set, fmt.Sprintf("file_url = $%d", len(args)))
	}
	if update.Tags != nil {
		args = append(args, *update.Tags)
		set = append(set, fmt.Sprintf("tags = $%d", len(args)))
	}
	if len(set) == 0 {
		return nil, services.ErrNoFieldsToUpdate
	}
	set = append(set, "updated_at = CURRENT_TIMESTAMP")

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE resources SET %s WHERE id = $%d RETURNING `+resourceColumns,
		strings.Join(set, ", "), len(args),
	)

	executor := GetExecutor(ctx, r.db)
	resource, err := scanResourceRow(executor.QueryRowContext(ctx, query, args...).Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, services.ErrResourceNotFound
		}
		return nil, fmt.Errorf("failed to update resource: %w", err)
	}

	r.logger.Debug("resource updated", zap.String("id", id.String()))
	return resource, nil
}

// Delete removes a resource
func (r *ResourceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM resources WHERE id = $1`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete resource: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return services.ErrResourceNotFound
	}

	r.logger.Debug("resource deleted", zap.String("id", id.String()))
	return nil
}
