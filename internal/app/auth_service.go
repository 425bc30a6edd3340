package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"noteworthy/internal/model"
	"noteworthy/internal/pkg/jwtutil"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrEmailExists       = errors.New("email already exists")
	ErrInvalidCredential = errors.New("invalid login credentials")
	ErrTokenInvalid      = errors.New("token is invalid or revoked")
)

// Blacklist is the revoked refresh-token store (redis-backed in production).
type Blacklist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type AuthService struct {
	users     UserRepo
	tokens    *jwtutil.Manager
	blacklist Blacklist
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

type TokenPair struct {
	Refresh string `json:"refresh"`
	Access  string `json:"access"`
}

func NewAuthService(users UserRepo, tokens *jwtutil.Manager, blacklist Blacklist) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		blacklist: blacklist,
	}
}

// Register creates the account. Username is always the email address.
func (s *AuthService) Register(input RegisterInput) error {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" || input.Password == "" {
		return ErrInvalidInput
	}

	existing, err := s.users.GetByEmail(email)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password failed: %w", err)
	}

	user := &model.User{
		Username:     email,
		Email:        email,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		PasswordHash: string(hash),
	}
	if err := s.users.Create(user); err != nil {
		// A concurrent register can slip past the GetByEmail check and trip
		// the unique email index instead.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailExists
		}
		return err
	}
	return nil
}

// Login verifies the credentials and issues a fresh token pair. An unknown
// email and a wrong password return the same error.
func (s *AuthService) Login(email, password string) (*TokenPair, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredential
	}

	user, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredential
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredential
	}

	if err := s.users.UpdateLastLogin(user.ID, time.Now()); err != nil {
		return nil, err
	}

	refresh, err := s.tokens.GenerateRefresh(user.ID)
	if err != nil {
		return nil, err
	}
	access, err := s.tokens.GenerateAccess(user.ID)
	if err != nil {
		return nil, err
	}
	return &TokenPair{Refresh: refresh, Access: access}, nil
}

// Refresh exchanges a valid, unrevoked refresh token for a new access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	userID, jti, _, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return "", ErrTokenInvalid
	}

	revoked, err := s.blacklist.IsRevoked(ctx, jti)
	if err != nil {
		return "", err
	}
	if revoked {
		return "", ErrTokenInvalid
	}

	return s.tokens.GenerateAccess(userID)
}

// Logout blacklists the refresh token for its remaining lifetime. Revoking a
// malformed or already-revoked token is an error, matching the original API.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	_, jti, expiresAt, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return ErrTokenInvalid
	}

	revoked, err := s.blacklist.IsRevoked(ctx, jti)
	if err != nil {
		return err
	}
	if revoked {
		return ErrTokenInvalid
	}

	return s.blacklist.Revoke(ctx, jti, time.Until(expiresAt))
}
