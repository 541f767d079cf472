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

// ResourceRequestRepository implements the repositories.ResourceRequestRepository interface
type ResourceRequestRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewResourceRequestRepository creates a new resource request repository
func NewResourceRequestRepository(db *DB, logger *zap.Logger) repositories.ResourceRequestRepository {
	return &ResourceRequestRepository{
		db:     db,
		logger: logger,
	}
}

const resourceRequestColumns = "id, topic, description, category_id, preferred_format, status, requested_by, fulfilled_by, fulfilled_resource_id, created_at, updated_at"

func scanResourceRequestRow(scan func(dest ...interface{}) error) (*models.ResourceRequest, error) {
	request := &models.ResourceRequest{}
	err := scan(
		&request.ID,
		&request.Topic,
		&request.Description,
		&request.CategoryID,
		&request.PreferredFormat,
		&request.Status,
		&request.RequestedBy,
		&request.FulfilledBy,
		&request.FulfilledResourceID,
		&request.CreatedAt,
		&request.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return request, nil
}

// Create creates a new resource request
func (r *ResourceRequestRepository) Create(ctx context.Context, request *models.ResourceRequest) error {
	query := `
		INSERT INTO resource_requests (id, topic, description, category_id, preferred_format, status, requested_by, fulfilled_by, fulfilled_resource_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		request.ID,
		request.Topic,
		request.Description,
		request.CategoryID,
		request.PreferredFormat,
		request.Status,
		request.RequestedBy,
		request.FulfilledBy,
		request.FulfilledResourceID,
		request.CreatedAt,
		request.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create resource request: %w", err)
	}

	r.logger.Debug("resource request created", zap.String("id", request.ID.String()), zap.String("topic", request.Topic))
	return nil
}

// GetByID retrieves a resource request by ID
func (r *ResourceRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ResourceRequest, error) {
	query := `SELECT ` + resourceRequestColumns + ` FROM resource_requests WHERE id = $1`

	executor := GetExecutor(ctx, r.db)
	request, err := scanResourceRequestRow(executor.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, services.ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to get resource request: %w", err)
	}

	return request, nil
}

func (r *ResourceRequestRepository) queryRequests(ctx context.Context, query string, args ...interface{}) ([]*models.ResourceRequest, error) {
	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query resource requests: %w", err)
	}
	defer rows.Close()

	var requests []*models.ResourceRequest
	for rows.Next() {
		request, err := scanResourceRequestRow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resource request: %w", err)
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate resource requests: %w", err)
	}

	return requests, nil
}

// List retrieves resource requests, optionally filtered by status, newest first
func (r *ResourceRequestRepository) List(ctx context.Context, status *models.RequestStatus, limit int) ([]*models.ResourceRequest, error) {
	if status != nil {
		query := `SELECT ` + resourceRequestColumns + ` FROM resource_requests WHERE status = $1 ORDER BY created_at DESC LIMIT $2`
		return r.queryRequests(ctx, query, *status, limit)
	}
	query := `SELECT ` + resourceRequestColumns + ` FROM resource_requests ORDER BY created_at DESC LIMIT $1`
	return r.queryRequests(ctx, query, limit)
}

// ListByUser retrieves requests created by a user, newest first
func (r *ResourceRequestRepository) ListByUser(ctx context.Context, requesterID uuid.UUID, limit int) ([]*models.ResourceRequest, error) {
	query := `SELECT ` + resourceRequestColumns + ` FROM resource_requests WHERE requested_by = $1 ORDER BY created_at DESC LIMIT $2`
	return r.queryRequests(ctx, query, requesterID, limit)
}

// UpdateStatus transitions a request's lifecycle state. Fulfillment
// columns are written only when provided; a later transition never
// clears who fulfilled the request.
func (r *ResourceRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, update repositories.RequestStatusUpdate) (*models.ResourceRequest, error) {
	set := make([]string, 0, 3)
	args := make([]interface{}, 0, 4)

	args = append(args, update.Status)
	set = append(set, fmt.Sprintf("status = $%d", len(args)))
	if update.FulfilledBy != nil {
		args = append(args, *update.FulfilledBy)
		set = append(set, fmt.Sprintf("fulfilled_by = $%d", len(args)))
	}
	if update.FulfilledResourceID != nil {
		args = append(args, *update.FulfilledResourceID)
		set = append(set, fmt.Sprintf("fulfilled_resource_id = $%d", len(args)))
	}
	set = append(set, "updated_at = CURRENT_TIMESTAMP")

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE resource_requests SET %s WHERE id = $%d RETURNING `+resourceRequestColumns,
		strings.Join(set, ", "), len(args),
	)

	executor := GetExecutor(ctx, r.db)
	request, err := scanResourceRequestRow(executor.QueryRowContext(ctx, query, args...).Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, services.ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to update request status: %w", err)
	}

	r.logger.Debug("resource request status updated",
		zap.String("id", id.String()),
		zap.String("status", string(update.Status)))
	return request, nil
}

// Update applies a partial update and returns the updated row
func (r *ResourceRequestRepository) Update(ctx context.Context, id uuid.UUID, update repositories.ResourceRequestUpdate) (*models.ResourceRequest, error) {
	set := make([]string, 0, 4)
	args := make([]interface{}, 0, 4)

	if update.Topic != nil {
		args = append(args, *update.Topic)
		set = append(set, fmt.Sprintf("topic = $%d", len(args)))
	}
	if update.Description != nil {
		args = append(args, *update.Description)
		set = append(set, fmt.Sprintf("description = $%d", len(args)))
	}
	if update.PreferredFormat != nil {
		args = append(args, *update.PreferredFormat)
		set = append(set, fmt.Sprintf("preferred_format = $%d", len(args)))
	}
	if len(set) == 0 {
		return nil, services.ErrNoFieldsToUpdate
	}
	set = append(set, "updated_at = CURRENT_TIMESTAMP")

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE resource_requests SET %s WHERE id = $%d RETURNING `+resourceRequestColumns,
		strings.Join(set, ", "), len(args),
	)

	executor := GetExecutor(ctx, r.db)
	request, err := scanResourceRequestRow(executor.QueryRowContext(ctx, query, args...).Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, services.ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to update resource request: %w", err)
	}

	r.logger.Debug("resource request updated", zap.String("id", id.String()))
	return request, nil
}

// Delete removes a resource request
func (r *ResourceRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM resource_requests WHERE id = $1`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete resource request: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return services.ErrRequestNotFound
	}

	r.logger.Debug("resource request deleted", zap.String("id", id.String()))
	return nil
}
