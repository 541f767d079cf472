package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/studentlms/backend/models"
	"github.com/studentlms/backend/repositories"
	"github.com/studentlms/backend/validation"
	"go.uber.org/zap"
)

// CreateTutorInput carries the fields accepted when opening a tutor profile
type CreateTutorInput struct {
	Subjects     []string               `json:"subjects" validate:"required,min=1"`
	Bio          *string                `json:"bio,omitempty"`
	HourlyRate   *float64               `json:"hourly_rate,omitempty"`
	Availability map[string]interface{} `json:"availability,omitempty"`
	ContactEmail *string                `json:"contact_email,omitempty"`
	BookingLink  *string                `json:"booking_link,omitempty"`
}

// UpdateTutorInput carries the optional fields of a tutor profile update
type UpdateTutorInput struct {
	Subjects     *[]string               `json:"subjects,omitempty"`
	Bio          *string                 `json:"bio,omitempty"`
	HourlyRate   *float64                `json:"hourly_rate,omitempty"`
	Availability *map[string]interface{} `json:"availability,omitempty"`
	ContactEmail *string                 `json:"contact_email,omitempty"`
	BookingLink  *string                 `json:"booking_link,omitempty"`
	IsAvailable  *bool                   `json:"is_available,omitempty"`
}

// CreateTutorRequestInput carries the fields accepted when asking for a tutor
type CreateTutorRequestInput struct {
	Subject           string  `json:"subject" validate:"required"`
	Description       *string `json:"description,omitempty"`
	PreferredSchedule *string `json:"preferred_schedule,omitempty"`
}

// TutorService handles tutor profiles and tutoring requests
type TutorService struct {
	tutors        repositories.TutorRepository
	tutorRequests repositories.TutorRequestRepository
	logger        *zap.Logger
}

// NewTutorService creates a new TutorService instance
func NewTutorService(tutors repositories.TutorRepository, tutorRequests repositories.TutorRequestRepository, logger *zap.Logger) *TutorService {
	return &TutorService{
		tutors:        tutors,
		tutorRequests: tutorRequests,
		logger:        logger,
	}
}

func sanitizeSubjects(subjects []string) models.StringList {
	return validation.SanitizeTags(subjects, validation.DefaultMaxTags, validation.DefaultMaxTagLength)
}

// CreateProfile validates and persists a new tutor profile. One
// profile per user; a second attempt surfaces as a conflict.
func (s *TutorService) CreateProfile(ctx context.Context, input CreateTutorInput, userID uuid.UUID) (*models.TutorProfile, error) {
	subjects := sanitizeSubjects(input.Subjects)
	if len(subjects) == 0 {
		return nil, NewDomainError(ErrorTypeValidation, "at least one subject is required", nil)
	}

	tutor := models.NewTutor(userID, subjects)

	if input.Bio != nil {
		bio := validation.SanitizeText(*input.Bio)
		tutor.Bio = &bio
	}
	if input.HourlyRate != nil {
		if *input.HourlyRate < 0 {
			return nil, NewDomainError(ErrorTypeValidation, "hourly rate cannot be negative", nil)
		}
		tutor.HourlyRate = input.HourlyRate
	}
	if input.Availability != nil {
		tutor.Availability = input.Availability
	}
	if input.ContactEmail != nil && *input.ContactEmail != "" {
		email, err := validation.ValidateEmail(*input.ContactEmail)
		if err != nil {
			return nil, validationError(err)
		}
		tutor.ContactEmail = &email
	}
	if input.BookingLink != nil && *input.BookingLink != "" {
		link, err := validation.ValidateURL("booking_link", *input.BookingLink)
		if err != nil {
			return nil, validationError(err)
		}
		tutor.BookingLink = &link
	}

	if err := s.tutors.Create(ctx, tutor); err != nil {
		return nil, err
	}

	s.logger.Info("tutor profile created",
		zap.String("tutor_id", tutor.ID.String()),
		zap.String("user_id", userID.String()))

	return s.tutors.GetByID(ctx, tutor.ID)
}

// Get retrieves a tutor profile with the owning user's name and email
func (s *TutorService) Get(ctx context.Context, id uuid.UUID) (*models.TutorProfile, error) {
	return s.tutors.GetByID(ctx, id)
}

// List retrieves tutor profiles, best rated first, optionally
// filtered by availability
func (s *TutorService) List(ctx context.Context, available *bool, limit int) ([]*models.TutorProfile, error) {
	return s.tutors.List(ctx, available, clampLimit(limit))
}

// ListSubjects returns every distinct subject offered by available tutors
func (s *TutorService) ListSubjects(ctx context.Context) ([]string, error) {
	return s.tutors.ListSubjects(ctx)
}

// SearchBySubject filters available tutors whose subject list contains
// the query as a case-insensitive substring.
func (s *TutorService) SearchBySubject(ctx context.Context, subject string, limit int) ([]*models.TutorProfile, error) {
	subject = strings.ToLower(validation.SanitizeString(subject, validation.DefaultMaxTagLength, false))

	available := true
	tutors, err := s.tutors.List(ctx, &available, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	if subject == "" {
		return tutors, nil
	}

	matched := make([]*models.TutorProfile, 0, len(tutors))
	for _, tutor := range tutors {
		for _, offered := range tutor.Subjects {
			if strings.Contains(strings.ToLower(offered), subject) {
				matched = append(matched, tutor)
				break
			}
		}
	}

	return matched, nil
}

// Update validates and applies a partial profile update
func (s *TutorService) Update(ctx context.Context, id uuid.UUID, input UpdateTutorInput) (*models.TutorProfile, error) {
	update := repositories.TutorUpdate{}

	if input.Subjects != nil {
		subjects := sanitizeSubjects(*input.Subjects)
		if len(subjects) == 0 {
			return nil, NewDomainError(ErrorTypeValidation, "at least one subject is required", nil)
		}
		update.Subjects = &subjects
	}
	if input.Bio != nil {
		bio := validation.SanitizeText(*input.Bio)
		update.Bio = &bio
	}
	if input.HourlyRate != nil {
		if *input.HourlyRate < 0 {
			return nil, NewDomainError(ErrorTypeValidation, "hourly rate cannot be negative", nil)
		}
		update.HourlyRate = input.HourlyRate
	}
	if input.Availability != nil {
		availability := models.JSONMap(*input.Availability)
		update.Availability = &availability
	}
	if input.ContactEmail != nil {
		email, err := validation.ValidateEmail(*input.ContactEmail)
		if err != nil {
			return nil, validationError(err)
		}
		update.ContactEmail = &email
	}
	if input.BookingLink != nil {
		link, err := validation.ValidateURL("booking_link", *input.BookingLink)
		if err != nil {
			return nil, validationError(err)
		}
		update.BookingLink = &link
	}
	update.IsAvailable = input.IsAvailable

	if update.IsEmpty() {
		return nil, ErrNoFieldsToUpdate
	}

	profile, err := s.tutors.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	s.logger.Info("tutor profile updated", zap.String("tutor_id", id.String()))
	return profile, nil
}

// SetAvailability toggles whether a tutor is open to new students
func (s *TutorService) SetAvailability(ctx context.Context, id uuid.UUID, isAvailable bool) error {
	if err := s.tutors.UpdateAvailability(ctx, id, isAvailable); err != nil {
		return err
	}
	s.logger.Info("tutor availability changed",
		zap.String("tutor_id", id.String()),
		zap.Bool("is_available", isAvailable))
	return nil
}

// DeleteProfile removes a tutor profile permanently
func (s *TutorService) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	if err := s.tutors.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("tutor profile deleted", zap.String("tutor_id", id.String()))
	return nil
}

// CreateRequest validates and persists a request to be matched with a tutor
func (s *TutorService) CreateRequest(ctx context.Context, input CreateTutorRequestInput, studentID uuid.UUID) (*models.TutorRequest, error) {
	subject := validation.SanitizeTitle(input.Subject)
	if subject == "" {
		return nil, NewDomainError(ErrorTypeValidation, "subject is required", nil)
	}

	request := models.NewTutorRequest(studentID, subject)

	if input.Description != nil {
		description := validation.SanitizeText(*input.Description)
		request.Description = &description
	}
	if input.PreferredSchedule != nil {
		schedule := validation.SanitizeString(*input.PreferredSchedule, validation.MaxTitleLength, false)
		request.PreferredSchedule = &schedule
	}

	if err := s.tutorRequests.Create(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Info("tutor request created",
		zap.String("request_id", request.ID.String()),
		zap.String("student_id", studentID.String()))
	return request, nil
}

// ListRequests retrieves tutoring requests with student names,
// optionally filtered by status, newest first
func (s *TutorService) ListRequests(ctx context.Context, status *string, limit int) ([]*models.TutorRequestWithStudent, error) {
	var statusFilter *models.TutorRequestStatus
	if status != nil && *status != "" {
		parsed, err := validation.ValidateTutorRequestStatus(*status)
		if err != nil {
			return nil, validationError(err)
		}
		statusFilter = &parsed
	}
	return s.tutorRequests.List(ctx, statusFilter, clampLimit(limit))
}
