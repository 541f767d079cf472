package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/studentlms/backend/auth"
	"github.com/studentlms/backend/models"
	"github.com/studentlms/backend/repositories"
	"github.com/studentlms/backend/validation"
	"go.uber.org/zap"
)

// UpdateProfileInput carries the optional profile fields a user may change
type UpdateProfileInput struct {
	Name      *string `json:"name,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// CreateUserInput carries the fields accepted when provisioning a user
// directly, outside the self-service registration flow.
type CreateUserInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

// UserService handles user lookups and profile updates
type UserService struct {
	users  repositories.UserRepository
	logger *zap.Logger
}

// NewUserService creates a new UserService instance
func NewUserService(users repositories.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		users:  users,
		logger: logger,
	}
}

// Create validates and provisions a user directly. Unlike
// registration, any role is accepted here; the route is meant for
// administrative tooling.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*models.User, error) {
	email, err := validation.ValidateEmail(input.Email)
	if err != nil {
		return nil, validationError(err)
	}
	if err := validation.ValidatePassword(input.Password); err != nil {
		return nil, validationError(err)
	}
	name, err := validation.ValidateName(input.Name)
	if err != nil {
		return nil, validationError(err)
	}
	role, err := validation.ValidateRole(input.Role)
	if err != nil {
		return nil, validationError(err)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.NewUser(email, name, role, hash)
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(role)))
	return user, nil
}

// GetByID retrieves a single user
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// GetByEmail retrieves a single user by canonical email
func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	canonical, err := validation.ValidateEmail(email)
	if err != nil {
		return nil, validationError(err)
	}
	return s.users.GetByEmail(ctx, canonical)
}

// List retrieves users, optionally filtered by role
func (s *UserService) List(ctx context.Context, role *models.UserRole, limit int) ([]*models.User, error) {
	return s.users.List(ctx, role, clampLimit(limit))
}

// UpdateProfile validates and applies a partial profile update
func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, input UpdateProfileInput) (*models.User, error) {
	update := repositories.UserUpdate{}

	if input.Name != nil {
		name, err := validation.ValidateName(*input.Name)
		if err != nil {
			return nil, validationError(err)
		}
		update.Name = &name
	}
	if input.AvatarURL != nil {
		avatarURL, err := validation.ValidateURL("avatar_url", *input.AvatarURL)
		if err != nil {
			return nil, validationError(err)
		}
		update.AvatarURL = &avatarURL
	}

	if update.IsEmpty() {
		return nil, ErrNoFieldsToUpdate
	}

	user, err := s.users.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user profile updated", zap.String("user_id", id.String()))
	return user, nil
}
