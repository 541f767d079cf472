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

// RegisterInput carries the fields accepted by Register. All of them
// are raw client input and get validated before anything is persisted.
type RegisterInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

// LoginInput carries the credentials accepted by Login
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenEnvelope is the authentication response returned by Register
// and Login.
type TokenEnvelope struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int64        `json:"expires_in"`
	User        *models.User `json:"user"`
}

// AuthService handles registration, login and token verification
type AuthService struct {
	users  repositories.UserRepository
	txMgr  repositories.TransactionManager
	tokens *auth.TokenManager
	logger *zap.Logger
}

// NewAuthService creates a new AuthService instance
func NewAuthService(users repositories.UserRepository, txMgr repositories.TransactionManager, tokens *auth.TokenManager, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:  users,
		txMgr:  txMgr,
		tokens: tokens,
		logger: logger,
	}
}

func validationError(err error) error {
	return NewDomainError(ErrorTypeValidation, err.Error(), err)
}

// Register validates the input, creates the user inside a transaction
// and returns a fresh token envelope. Only student and tutor
// registrations are accepted; admin accounts are provisioned out of
// band.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*TokenEnvelope, error) {
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
	role, err := validation.ValidateRegistrationRole(input.Role)
	if err != nil {
		return nil, validationError(err)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.NewUser(email, name, role, hash)

	// The duplicate check and the insert run in one transaction so two
	// concurrent registrations for the same email cannot both pass the
	// check. InTransaction hands the callback a context carrying the
	// transaction, which routes the repository calls onto it. The
	// unique constraint on email is the final arbiter.
	err = s.txMgr.InTransaction(ctx, func(ctx context.Context, tx repositories.Transaction) error {
		exists, err := s.users.EmailExists(ctx, email)
		if err != nil {
			return fmt.Errorf("failed to check email: %w", err)
		}
		if exists {
			return ErrDuplicateEmail
		}
		return s.users.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	return s.issueToken(user)
}

// Login verifies the credentials and returns a fresh token envelope.
// Unknown email and wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*TokenEnvelope, error) {
	email, err := validation.ValidateEmail(input.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if IsNotFoundError(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(input.Password, user.PasswordHash) {
		s.logger.Warn("failed login attempt", zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID.String()))

	return s.issueToken(user)
}

// Authenticate resolves a bearer token to its user. Any token failure
// maps to ErrInvalidToken without detail.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := s.tokens.DecodeToken(tokenString)
	if err != nil {
		return nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if IsNotFoundError(err) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	return user, nil
}

// ChangePassword swaps a user's password after verifying the current one
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(currentPassword, user.PasswordHash) {
		return ErrWrongPassword
	}

	if err := validation.ValidatePassword(newPassword); err != nil {
		return validationError(err)
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.users.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return err
	}

	s.logger.Info("password changed", zap.String("user_id", userID.String()))
	return nil
}

func (s *AuthService) issueToken(user *models.User) (*TokenEnvelope, error) {
	token, err := s.tokens.CreateToken(user.ID.String(), user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to create token: %w", err)
	}

	return &TokenEnvelope{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.tokens.TTL().Seconds()),
		User:        user,
	}, nil
}
