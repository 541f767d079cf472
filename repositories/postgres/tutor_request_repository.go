package postgres

import (
	"context"
	"fmt"

	"github.com/studentlms/backend/models"
	"github.com/studentlms/backend/repositories"
	"go.uber.org/zap"
)

// TutorRequestRepository implements the repositories.TutorRequestRepository interface
type TutorRequestRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewTutorRequestRepository creates a new tutor request repository
func NewTutorRequestRepository(db *DB, logger *zap.Logger) repositories.TutorRequestRepository {
	return &TutorRequestRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new tutoring request
func (r *TutorRequestRepository) Create(ctx context.Context, request *models.TutorRequest) error {
	query := `
		INSERT INTO tutor_requests (id, student_id, subject, description, preferred_schedule, status, matched_tutor_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		request.ID,
		request.StudentID,
		request.Subject,
		request.Description,
		request.PreferredSchedule,
		request.Status,
		request.MatchedTutorID,
		request.CreatedAt,
		request.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create tutor request: %w", err)
	}

	r.logger.Debug("tutor request created", zap.String("id", request.ID.String()), zap.String("subject", request.Subject))
	return nil
}

// List retrieves tutoring requests with the requesting student's
// name, optionally filtered by status, newest first
func (r *TutorRequestRepository) List(ctx context.Context, status *models.TutorRequestStatus, limit int) ([]*models.TutorRequestWithStudent, error) {
	query := `
		SELECT tr.id, tr.student_id, tr.subject, tr.description, tr.preferred_schedule, tr.status, tr.matched_tutor_id, tr.created_at, tr.updated_at, u.name
		FROM tutor_requests tr
		LEFT JOIN users u ON u.id = tr.student_id
	`
	args := make([]interface{}, 0, 2)
	if status != nil {
		args = append(args, *status)
		query += fmt.Sprintf(` WHERE tr.status = $%d`, len(args))
	}
	args = append(args, limit)
	query += fmt.Sprintf(` ORDER BY tr.created_at DESC LIMIT $%d`, len(args))

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tutor requests: %w", err)
	}
	defer rows.Close()

	var requests []*models.TutorRequestWithStudent
	for rows.Next() {
		request := &models.TutorRequestWithStudent{}
		err := rows.Scan(
			&request.ID,
			&request.StudentID,
			&request.Subject,
			&request.Description,
			&request.PreferredSchedule,
			&request.Status,
			&request.MatchedTutorID,
			&request.CreatedAt,
			&request.UpdatedAt,
			&request.StudentName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tutor request: %w", err)
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tutor requests: %w", err)
	}

	return requests, nil
}
