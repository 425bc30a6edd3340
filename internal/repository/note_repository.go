package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"noteworthy/internal/model"
)

type NoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) Create(note *model.Note) error {
	if err := r.db.Create(note).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		return fmt.Errorf("create note failed: %w", err)
	}
	return nil
}

// GetBySlug looks a note up regardless of owner. The ownership check happens
// in the service so that a non-owner gets 403 rather than 404.
func (r *NoteRepository) GetBySlug(slug string) (*model.Note, error) {
	var note model.Note
	if err := r.db.Where("slug = ?", slug).First(&note).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query note by slug failed: %w", err)
	}
	return &note, nil
}

func (r *NoteRepository) SlugExists(slug string) (bool, error) {
	var count int64
	if err := r.db.Model(&model.Note{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count notes by slug failed: %w", err)
	}
	return count > 0, nil
}

func (r *NoteRepository) ListByUser(userID uint) ([]model.Note, error) {
	var notes []model.Note
	if err := r.db.Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("list notes failed: %w", err)
	}
	return notes, nil
}

// SearchByUser matches the query as a case-insensitive substring of title,
// body or category, scoped to the owner.
func (r *NoteRepository) SearchByUser(userID uint, query string) ([]model.Note, error) {
	var notes []model.Note
	pattern := "%" + query + "%"
	if err := r.db.Where("user_id = ?", userID).
		Where("title LIKE ? OR body LIKE ? OR category LIKE ?", pattern, pattern, pattern).
		Order("updated_at DESC").
		Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("search notes failed: %w", err)
	}
	return notes, nil
}

func (r *NoteRepository) Update(note *model.Note) error {
	if err := r.db.Save(note).Error; err != nil {
		return fmt.Errorf("update note failed: %w", err)
	}
	return nil
}

func (r *NoteRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Note{}, id).Error; err != nil {
		return fmt.Errorf("delete note failed: %w", err)
	}
	return nil
}
