package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the fixed lifetime of an issued token.
const TokenTTL = time.Hour

var (
	errMissingUserID = errors.New("token has no userId claim")
	errEmptySecret   = errors.New("token secret is empty")
)

type Claims struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 bearer tokens.
type TokenManager struct {
	secret []byte
	now    func() time.Time
}

func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// WithClock replaces the time source. Used by tests to move past expiry.
func (m *TokenManager) WithClock(now func() time.Time) *TokenManager {
	m.now = now
	return m
}

// Issue signs a token for identity. A manager built with an empty secret
// refuses to sign anything.
func (m *TokenManager) Issue(identity Identity) (string, error) {
	if len(m.secret) == 0 {
		return "", errEmptySecret
	}

	issuedAt := m.now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: identity.UserID,
		Email:  identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(TokenTTL)),
		},
	})

	tokenString, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Verify returns the identity encoded in tokenString, or nil when the token
// is malformed, tampered with, signed with another algorithm or expired.
func (m *TokenManager) Verify(tokenString string) *Identity {
	identity, err := m.parse(tokenString)
	if err != nil {
		return nil
	}
	return identity
}

func (m *TokenManager) parse(tokenString string) (*Identity, error) {
	if len(m.secret) == 0 {
		return nil, errEmptySecret
	}

	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	if claims.UserID == 0 {
		return nil, errMissingUserID
	}

	return &Identity{UserID: claims.UserID, Email: claims.Email}, nil
}
