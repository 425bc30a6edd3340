package app

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"noteworthy/internal/model"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrPasswordRequired = errors.New("password is required")
	ErrWrongPassword    = errors.New("invalid password")
)

type UserService struct {
	users UserRepo
}

func NewUserService(users UserRepo) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Details(userID uint) (*model.User, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateNames applies a partial update: a nil field is left unchanged.
// Email and the join date are read-only.
func (s *UserService) UpdateNames(userID uint, firstName, lastName *string) (*model.User, error) {
	user, err := s.Details(userID)
	if err != nil {
		return nil, err
	}

	if firstName != nil {
		user.FirstName = *firstName
	}
	if lastName != nil {
		user.LastName = *lastName
	}

	if err := s.users.UpdateNames(userID, user.FirstName, user.LastName); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteAccount removes the user after re-checking the password. Notes and
// the profile cascade with the row.
func (s *UserService) DeleteAccount(userID uint, password string) error {
	if password == "" {
		return ErrPasswordRequired
	}

	user, err := s.Details(userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return ErrWrongPassword
	}

	return s.users.Delete(userID)
}
