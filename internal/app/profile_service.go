package app

import (
	"context"
	"errors"
	"io"
	"path"

	"github.com/google/uuid"

	"noteworthy/internal/model"
)

var ErrNoImage = errors.New("no profile image found")

// ObjectStorage is the image store (S3-compatible in production).
type ObjectStorage interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) error
	Delete(ctx context.Context, key string) error
	PresignGet(ctx context.Context, key string) (string, error)
}

type ProfileService struct {
	profiles ProfileRepo
	storage  ObjectStorage
}

func NewProfileService(profiles ProfileRepo, storage ObjectStorage) *ProfileService {
	return &ProfileService{profiles: profiles, storage: storage}
}

// Get returns the profile, creating an empty one on first access, plus a
// resolved download URL ("" when no image is set).
func (s *ProfileService) Get(ctx context.Context, userID uint) (*model.Profile, string, error) {
	profile, err := s.profiles.GetOrCreate(userID)
	if err != nil {
		return nil, "", err
	}
	if profile.Image == "" {
		return profile, "", nil
	}

	url, err := s.storage.PresignGet(ctx, profile.Image)
	if err != nil {
		return nil, "", err
	}
	return profile, url, nil
}

// ReplaceImage uploads the new image under a fresh key, points the profile
// at it and then drops the old object. Removal of the old object is best
// effort: leaking a stale object beats failing a successful replace.
func (s *ProfileService) ReplaceImage(ctx context.Context, userID uint, filename, contentType string, body io.Reader) (*model.Profile, string, error) {
	profile, err := s.profiles.GetOrCreate(userID)
	if err != nil {
		return nil, "", err
	}
	oldKey := profile.Image

	key := "profiles/" + uuid.NewString() + path.Ext(filename)
	if err := s.storage.Upload(ctx, key, contentType, body); err != nil {
		return nil, "", err
	}
	if err := s.profiles.UpdateImage(userID, key); err != nil {
		return nil, "", err
	}

	if oldKey != "" {
		_ = s.storage.Delete(ctx, oldKey)
	}

	profile.Image = key
	url, err := s.storage.PresignGet(ctx, key)
	if err != nil {
		return nil, "", err
	}
	return profile, url, nil
}

// ClearImage removes the image reference; the profile row persists. Clearing
// an already-empty profile is a not-found condition. A failed object delete
// keeps the reference so the clear can be retried.
func (s *ProfileService) ClearImage(ctx context.Context, userID uint) error {
	profile, err := s.profiles.GetOrCreate(userID)
	if err != nil {
		return err
	}
	if profile.Image == "" {
		return ErrNoImage
	}

	if err := s.storage.Delete(ctx, profile.Image); err != nil {
		return err
	}
	return s.profiles.UpdateImage(userID, "")
}
