package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"noteworthy/internal/model"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetOrCreate returns the user's profile, creating an empty one on first
// access. Profiles are never created at registration time.
func (r *ProfileRepository) GetOrCreate(userID uint) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.Where("user_id = ?", userID).First(&profile).Error
	if err == nil {
		return &profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("query profile failed: %w", err)
	}

	profile = model.Profile{UserID: userID}
	if err := r.db.Create(&profile).Error; err != nil {
		return nil, fmt.Errorf("create profile failed: %w", err)
	}
	return &profile, nil
}

func (r *ProfileRepository) UpdateImage(userID uint, image string) error {
	if err := r.db.Model(&model.Profile{}).Where("user_id = ?", userID).
		Update("image", image).Error; err != nil {
		return fmt.Errorf("update profile image failed: %w", err)
	}
	return nil
}
