package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is how long a minted access token stays valid unless
// the caller overrides it.
const DefaultTokenTTL = 24 * time.Hour

// ErrInvalidToken is the uniform rejection for any token failure.
// Expired, tampered, and malformed tokens are deliberately
// indistinguishable to the client.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the claim set carried by an access token: the subject user
// ID plus the account email, with issued-at and expiry timestamps.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// TokenManager mints and verifies HS256-signed access tokens with a
// process-wide secret. Read-only after construction.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a TokenManager. A zero ttl falls back to
// DefaultTokenTTL.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// TTL returns the configured token lifetime
func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// CreateToken mints a signed access token for the given user with the
// default lifetime.
func (m *TokenManager) CreateToken(userID, email string) (string, error) {
	return m.CreateTokenWithTTL(userID, email, m.ttl)
}

// CreateTokenWithTTL mints a signed access token with an explicit
// lifetime.
func (m *TokenManager) CreateTokenWithTTL(userID, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: email,
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// DecodeToken verifies signature and expiry and returns the claims.
// Every failure mode collapses into ErrInvalidToken.
func (m *TokenManager) DecodeToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
