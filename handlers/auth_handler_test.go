package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/studentlms/backend/auth"
	"github.com/studentlms/backend/middleware"
	"github.com/studentlms/backend/models"
	"github.com/studentlms/backend/services"
	"github.com/studentlms/backend/utils"
	"go.uber.org/zap"
)

func newAuthHandler(users *MockUserRepository) *AuthHandler {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	svc := services.NewAuthService(users, newTestTx(), tokens, zap.NewNop())
	return NewAuthHandler(svc, zap.NewNop())
}

func TestHandleRegister(t *testing.T) {
	t.Run("successful registration returns a token envelope", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("EmailExists", mock.Anything, "ada@example.com").Return(false, nil)
		users.On("Create", mock.Anything, mock.Anything).Return(nil)

		h := newAuthHandler(users)
		body := `{"email":"ada@example.com","password":"Sturdy1Password","name":"Ada Lovelace","role":"student"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
		rec := httptest.NewRecorder()

		h.HandleRegister(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)

		var envelope struct {
			Success bool                   `json:"success"`
			Data    services.TokenEnvelope `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
		assert.True(t, envelope.Success)
		assert.NotEmpty(t, envelope.Data.AccessToken)
		assert.Equal(t, "bearer", envelope.Data.TokenType)
		require.NotNil(t, envelope.Data.User)
		assert.Equal(t, "ada@example.com", envelope.Data.User.Email)
		assert.Empty(t, envelope.Data.User.PasswordHash)
		users.AssertExpectations(t)
	})

	t.Run("missing fields rejected before the service runs", func(t *testing.T) {
		users := new(MockUserRepository)
		h := newAuthHandler(users)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(`{"email":"ada@example.com"}`))
		rec := httptest.NewRecorder()

		h.HandleRegister(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		users.AssertNotCalled(t, "EmailExists")
	})

	t.Run("malformed body rejected", func(t *testing.T) {
		h := newAuthHandler(new(MockUserRepository))

		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(`{not json`))
		rec := httptest.NewRecorder()

		h.HandleRegister(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("duplicate email returns conflict", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("EmailExists", mock.Anything, "ada@example.com").Return(true, nil)

		h := newAuthHandler(users)
		body := `{"email":"ada@example.com","password":"Sturdy1Password","name":"Ada Lovelace","role":"student"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
		rec := httptest.NewRecorder()

		h.HandleRegister(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		users.AssertNotCalled(t, "Create")
	})
}

func TestHandleLogin(t *testing.T) {
	t.Run("valid credentials return a token envelope", func(t *testing.T) {
		hash, err := auth.HashPassword("Sturdy1Password")
		require.NoError(t, err)
		user := models.NewUser("ada@example.com", "Ada Lovelace", models.RoleStudent, hash)

		users := new(MockUserRepository)
		users.On("GetByEmail", mock.Anything, "ada@example.com").Return(user, nil)

		h := newAuthHandler(users)
		body := `{"email":"Ada@Example.com","password":"Sturdy1Password"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
		rec := httptest.NewRecorder()

		h.HandleLogin(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var envelope struct {
			Data services.TokenEnvelope `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
		assert.NotEmpty(t, envelope.Data.AccessToken)
	})

	t.Run("wrong password returns unauthorized", func(t *testing.T) {
		hash, err := auth.HashPassword("Sturdy1Password")
		require.NoError(t, err)
		user := models.NewUser("ada@example.com", "Ada Lovelace", models.RoleStudent, hash)

		users := new(MockUserRepository)
		users.On("GetByEmail", mock.Anything, "ada@example.com").Return(user, nil)

		h := newAuthHandler(users)
		body := `{"email":"ada@example.com","password":"WrongPassword1"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
		rec := httptest.NewRecorder()

		h.HandleLogin(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown email returns the same unauthorized error", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, services.ErrUserNotFound)

		h := newAuthHandler(users)
		body := `{"email":"nobody@example.com","password":"Sturdy1Password"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
		rec := httptest.NewRecorder()

		h.HandleLogin(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		var body2 utils.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body2))
		assert.Equal(t, services.ErrInvalidCredentials.Error(), body2.Message)
	})
}

func TestHandleMe(t *testing.T) {
	h := newAuthHandler(new(MockUserRepository))

	t.Run("anonymous request rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		rec := httptest.NewRecorder()

		h.HandleMe(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("authenticated request echoes the user", func(t *testing.T) {
		user := &models.User{ID: uuid.New(), Email: "ada@example.com", Name: "Ada Lovelace", Role: models.RoleStudent}
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		req = req.WithContext(middleware.WithUser(req.Context(), user))
		rec := httptest.NewRecorder()

		h.HandleMe(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var envelope struct {
			Data models.User `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
		assert.Equal(t, user.ID, envelope.Data.ID)
	})
}

func TestHandleChangePassword(t *testing.T) {
	t.Run("successful change", func(t *testing.T) {
		hash, err := auth.HashPassword("Sturdy1Password")
		require.NoError(t, err)
		user := models.NewUser("ada@example.com", "Ada Lovelace", models.RoleStudent, hash)

		users := new(MockUserRepository)
		users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
		users.On("UpdatePasswordHash", mock.Anything, user.ID, mock.Anything).Return(nil)

		h := newAuthHandler(users)
		body := `{"current_password":"Sturdy1Password","new_password":"EvenSturdier2"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/change-password", strings.NewReader(body))
		req = req.WithContext(middleware.WithUser(req.Context(), user))
		rec := httptest.NewRecorder()

		h.HandleChangePassword(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		users.AssertExpectations(t)
	})

	t.Run("anonymous request rejected", func(t *testing.T) {
		h := newAuthHandler(new(MockUserRepository))
		body := `{"current_password":"Sturdy1Password","new_password":"EvenSturdier2"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/change-password", strings.NewReader(body))
		rec := httptest.NewRecorder()

		h.HandleChangePassword(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
