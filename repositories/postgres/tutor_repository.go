package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/studentlms/backend/models"
	"github.com/studentlms/backend/repositories"
	"github.com/studentlms/backend/services"
	"go.uber.org/zap"
)

// TutorRepository implements the repositories.TutorRepository interface
type TutorRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewTutorRepository creates a new tutor repository
func NewTutorRepository(db *DB, logger *zap.Logger) repositories.TutorRepository {
	return &TutorRepository{
		db:     db,
		logger: logger,
	}
}

const tutorColumns = "t.id, t.user_id, t.subjects, t.bio, t.hourly_rate, t.availability, t.contact_email, t.booking_link, t.rating, t.total_reviews, t.is_available, t.created_at, t.updated_at"

func scanTutorProfileRow(scan func(dest ...interface{}) error) (*models.TutorProfile, error) {
	profile := &models.TutorProfile{}
	err := scan(
		&profile.ID,
		&profile.UserID,
		&profile.Subjects,
		&profile.Bio,
		&profile.HourlyRate,
		&profile.Availability,
		&profile.ContactEmail,
		&profile.BookingLink,
		&profile.Rating,
		&profile.TotalReviews,
		&profile.IsAvailable,
		&profile.CreatedAt,
		&profile.UpdatedAt,
		&profile.Name,
		&profile.Email,
	)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// Create creates a new tutor profile
func (r *TutorRepository) Create(ctx context.Context, tutor *models.Tutor) error {
	query := `
		INSERT INTO tutors (id, user_id, subjects, bio, hourly_rate, availability, contact_email, booking_link, rating, total_reviews, is_available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		tutor.ID,
		tutor.UserID,
		tutor.Subjects,
		tutor.Bio,
		tutor.HourlyRate,
		tutor.Availability,
		tutor.ContactEmail,
		tutor.BookingLink,
		tutor.Rating,
		tutor.TotalReviews,
		tutor.IsAvailable,
		tutor.CreatedAt,
		tutor.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return services.ErrDuplicateTutor
		}
		return fmt.Errorf("failed to create tutor: %w", err)
	}

	r.logger.Debug("tutor created", zap.String("id", tutor.ID.String()), zap.String("user_id", tutor.UserID.String()))
	return nil
}

// GetByID retrieves a tutor profile joined with the owning user's name and email
func (r *TutorRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.TutorProfile, error) {
	query := `
		SELECT ` + tutorColumns + `, u.name, u.email
		FROM tutors t
		JOIN users u ON u.id = t.user_id
		WHERE t.id = $1
	`

	executor := GetExecutor(ctx, r.db)
	profile, err := scanTutorProfileRow(executor.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, services.ErrTutorNotFound
		}
		return nil, fmt.Errorf("failed to get tutor: %w", err)
	}

	return profile, nil
}

// List retrieves tutor profiles, best rated first, optionally
// filtered by availability
func (r *TutorRepository) List(ctx context.Context, available *bool, limit int) ([]*models.TutorProfile, error) {
	query := `
		SELECT ` + tutorColumns + `, u.name, u.email
		FROM tutors t
		JOIN users u ON u.id = t.user_id
	`
	args := make([]interface{}, 0, 2)
	if available != nil {
		args = append(args, *available)
		query += fmt.Sprintf(` WHERE t.is_available = $%d`, len(args))
	}
	args = append(args, limit)
	query += fmt.Sprintf(` ORDER BY t.rating DESC, t.created_at DESC LIMIT $%d`, len(args))

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tutors: %w", err)
	}
	defer rows.Close()

	var profiles []*models.TutorProfile
	for rows.Next() {
		profile, err := scanTutorProfileRow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tutor: %w", err)
		}
		profiles = append(profiles, profile)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tutors: %w", err)
	}

	return profiles, nil
}

// ListSubjects returns the distinct subjects of available tutors, sorted
func (r *TutorRepository) ListSubjects(ctx context.Context) ([]string, error) {
	query := `SELECT subjects FROM tutors WHERE is_available = TRUE`

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tutor subjects: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]struct{})
	for rows.Next() {
		var subjects models.StringList
		if err := rows.Scan(&subjects); err != nil {
			return nil, fmt.Errorf("failed to scan tutor subjects: %w", err)
		}
		for _, subject := range subjects {
			seen[subject] = struct{}{}
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tutor subjects: %w", err)
	}

	result := make([]string, 0, len(seen))
	for subject := range seen {
		result = append(result, subject)
	}
	sort.Strings(result)

	return result, nil
}

// UpdateAvailability toggles whether a tutor accepts new students
func (r *TutorRepository) UpdateAvailability(ctx context.Context, id uuid.UUID, isAvailable bool) error {
	query := `UPDATE tutors SET is_available = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query, isAvailable, id)
	if err != nil {
		return fmt.Errorf("failed to update tutor availability: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return services.ErrTutorNotFound
	}

	r.logger.Debug("tutor availability updated", zap.String("id", id.String()), zap.Bool("is_available", isAvailable))
	return nil
}

// Update applies a partial update and returns the updated profile
func (r *TutorRepository) Update(ctx context.Context, id uuid.UUID, update repositories.TutorUpdate) (*models.TutorProfile, error) {
	set := make([]string, 0, 8)
	args := make([]interface{}, 0, 8)

	if update.Subjects != nil {
		args = append(args, *update.Subjects)
		set = append(set, fmt.Sprintf("subjects = $%d", len(args)))
	}
	if update.Bio != nil {
		args = append(args, *update.Bio)
		set = append(set, fmt.Sprintf("bio = $%d", len(args)))
	}
	if update.HourlyRate != nil {
		args = append(args, *update.HourlyRate)
		set = append(set, fmt.Sprintf("hourly_rate = $%d", len(args)))
	}
	if update.Availability != nil {
		args = append(args, *update.Availability)
		set = append(set, fmt.Sprintf("availability = $%d", len(args)))
	}
	if update.ContactEmail != nil {
		args = append(args, *update.ContactEmail)
		set = append(set, fmt.Sprintf("contact_email = $%d", len(args)))
	}
	if update.BookingLink != nil {
		args = append(args, *update.BookingLink)
		set = append(set, fmt.Sprintf("booking_link = $%d", len(args)))
	}
	if update.IsAvailable != nil {
		args = append(args, *update.IsAvailable)
		set = append(set, fmt.Sprintf("is_available = $%d", len(args)))
	}
	if len(set) == 0 {
		return nil, services.ErrNoFieldsToUpdate
	}
	set = append(set, "updated_at = CURRENT_TIMESTAMP")

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE tutors SET %s WHERE id = $%d`, strings.Join(set, ", "), len(args))

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update tutor: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return nil, services.ErrTutorNotFound
	}

	r.logger.Debug("tutor updated", zap.String("id", id.String()))
	return r.GetByID(ctx, id)
}

// Delete removes a tutor profile
func (r *TutorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM tutors WHERE id = $1`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete tutor: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return services.ErrTutorNotFound
	}

	r.logger.Debug("tutor deleted", zap.String("id", id.String()))
	return nil
}
