package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned for any token that fails parsing,
// signature verification or expiry checks.
var ErrInvalidToken = errors.New("invalid session token")

// Token is a freshly issued session token.
type Token struct {
	Value     string
	ID        string
	ExpiresAt time.Time
}

type sessionClaims struct {
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 session tokens carrying the user id
// as subject and a random token id.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer creates a TokenIssuer.
func NewTokenIssuer(secret []byte, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
}

// TTL returns the lifetime of issued tokens.
func (i *TokenIssuer) TTL() time.Duration {
	return i.ttl
}

// Issue creates a signed token for userID.
func (i *TokenIssuer) Issue(userID string) (*Token, error) {
	if userID == "" {
		return nil, errors.New("issue token: empty user id")
	}

	now := i.now()
	expiresAt := now.Add(i.ttl)
	tokenID := uuid.New().String()

	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        tokenID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &Token{
		Value:     signed,
		ID:        tokenID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Parse verifies value and returns the identity it carries.
func (i *TokenIssuer) Parse(value string) (*Identity, error) {
	if value == "" {
		return nil, ErrInvalidToken
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(value, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" || claims.ID == "" {
		return nil, ErrInvalidToken
	}

	return &Identity{
		UserID:    claims.Subject,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
