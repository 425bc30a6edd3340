package jwtutil

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims carries the token type alongside the registered claims. Subject is
// the user ID, ID (jti) identifies a refresh token for revocation.
type Claims struct {
	jwt.RegisteredClaims
	TokenType string `json:"token_type"`
}

// Manager issues and validates the access/refresh token pair.
type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewManager(secret string, accessTTL, refreshTTL time.Duration) *Manager {
	return &Manager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (m *Manager) GenerateAccess(userID uint) (string, error) {
	return m.generate(userID, TypeAccess, m.accessTTL)
}

func (m *Manager) GenerateRefresh(userID uint) (string, error) {
	return m.generate(userID, TypeRefresh, m.refreshTTL)
}

func (m *Manager) generate(userID uint, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		TokenType: tokenType,
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token failed: %w", tokenType, err)
	}
	return signed, nil
}

// ParseAccess validates an access token and returns the user ID.
func (m *Manager) ParseAccess(tokenString string) (uint, error) {
	claims, err := m.parse(tokenString, TypeAccess)
	if err != nil {
		return 0, err
	}
	return subjectID(claims)
}

// ParseRefresh validates a refresh token and returns the user ID, the token
// ID and its expiry, which the caller needs for revocation.
func (m *Manager) ParseRefresh(tokenString string) (uint, string, time.Time, error) {
	claims, err := m.parse(tokenString, TypeRefresh)
	if err != nil {
		return 0, "", time.Time{}, err
	}
	userID, err := subjectID(claims)
	if err != nil {
		return 0, "", time.Time{}, err
	}
	return userID, claims.ID, claims.ExpiresAt.Time, nil
}

func (m *Manager) parse(tokenString, wantType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid || claims.TokenType != wantType {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func subjectID(claims *Claims) (uint, error) {
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}
