package app

import (
	"time"

	"noteworthy/internal/model"
)

// Repository interfaces consumed by the services. The concrete gorm-backed
// implementations live in internal/repository; tests substitute fakes.

type UserRepo interface {
	Create(user *model.User) error
	GetByEmail(email string) (*model.User, error)
	GetByID(id uint) (*model.User, error)
	UpdateNames(id uint, firstName, lastName string) error
	UpdatePassword(id uint, passwordHash string) error
	UpdateLastLogin(id uint, at time.Time) error
	Delete(id uint) error
}

type NoteRepo interface {
	Create(note *model.Note) error
	GetBySlug(slug string) (*model.Note, error)
	SlugExists(slug string) (bool, error)
	ListByUser(userID uint) ([]model.Note, error)
	SearchByUser(userID uint, query string) ([]model.Note, error)
	Update(note *model.Note) error
	Delete(id uint) error
}

type ProfileRepo interface {
	GetOrCreate(userID uint) (*model.Profile, error)
	UpdateImage(userID uint, image string) error
}
