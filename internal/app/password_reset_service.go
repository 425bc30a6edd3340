package app

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"noteworthy/internal/model"
	"noteworthy/internal/pkg/resettoken"
)

var ErrBadResetToken = errors.New("token is invalid or expired")

// Mailer sends the reset link. Delivery is synchronous; a transport error
// fails the request.
type Mailer interface {
	SendPasswordReset(to, resetURL string) error
}

type PasswordResetService struct {
	users       UserRepo
	tokens      *resettoken.Generator
	mailer      Mailer
	frontendURL string
}

func NewPasswordResetService(users UserRepo, tokens *resettoken.Generator, mailer Mailer, frontendURL string) *PasswordResetService {
	return &PasswordResetService{
		users:       users,
		tokens:      tokens,
		mailer:      mailer,
		frontendURL: frontendURL,
	}
}

// SendResetEmail generates a token bound to the user's current state and
// mails the front-end reset link carrying the numeric user ID and the token.
func (s *PasswordResetService) SendResetEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	user, err := s.users.GetByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	token := s.tokens.Make(user)
	resetURL := fmt.Sprintf("%s/reset-password/%d/%s", s.frontendURL, user.ID, token)
	return s.mailer.SendPasswordReset(user.Email, resetURL)
}

// ValidateToken checks the token against the user's current state without
// any side effect.
func (s *PasswordResetService) ValidateToken(userID uint, token string) error {
	user, err := s.lookup(userID)
	if err != nil {
		return err
	}
	if !s.tokens.Check(user, token) {
		return ErrBadResetToken
	}
	return nil
}

// ResetPassword re-validates the token and stores the new password hash.
// The hash change invalidates the token, so it cannot be replayed.
func (s *PasswordResetService) ResetPassword(userID uint, token, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("%w: new password is required", ErrInvalidInput)
	}

	user, err := s.lookup(userID)
	if err != nil {
		return err
	}
	if !s.tokens.Check(user, token) {
		return ErrBadResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password failed: %w", err)
	}
	return s.users.UpdatePassword(user.ID, string(hash))
}

func (s *PasswordResetService) lookup(userID uint) (*model.User, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
