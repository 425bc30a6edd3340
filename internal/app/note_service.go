package app

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	gosimple "github.com/gosimple/slug"
	"gorm.io/gorm"

	"noteworthy/internal/model"
)

var (
	ErrNoteNotFound = errors.New("note not found")
	ErrNotOwner     = errors.New("not authorized to access this note")
	ErrEmptyQuery   = errors.New("search query is required")
)

const slugSuffixLen = 5

const slugSuffixAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

type NoteService struct {
	notes NoteRepo
}

type NoteInput struct {
	Title    *string
	Body     *string
	Category *string
}

func NewNoteService(notes NoteRepo) *NoteService {
	return &NoteService{notes: notes}
}

func (s *NoteService) List(userID uint) ([]model.Note, error) {
	return s.notes.ListByUser(userID)
}

// Create validates the input, derives the slug and stores the note. A
// concurrent create can still trip the unique index after the in-app slug
// check passed; that duplicate-key error comes back as a validation error.
func (s *NoteService) Create(userID uint, input NoteInput) (*model.Note, error) {
	title := deref(input.Title)
	body := deref(input.Body)
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("%w: body is required", ErrInvalidInput)
	}

	category := model.CategoryPersonal
	if input.Category != nil && *input.Category != "" {
		category = strings.ToUpper(*input.Category)
		if !model.ValidCategory(category) {
			return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, *input.Category)
		}
	}

	noteSlug, err := s.makeSlug(title)
	if err != nil {
		return nil, err
	}

	note := &model.Note{
		UserID:   userID,
		Title:    title,
		Body:     body,
		Slug:     noteSlug,
		Category: category,
	}
	if err := s.notes.Create(note); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: slug already exists", ErrInvalidInput)
		}
		return nil, err
	}
	return note, nil
}

// Get resolves a note by slug for the given caller. Existence is checked
// before ownership so a non-owner sees 403, not 404.
func (s *NoteService) Get(userID uint, slug string) (*model.Note, error) {
	note, err := s.notes.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}
	if note.UserID != userID {
		return nil, ErrNotOwner
	}
	return note, nil
}

// Update applies a partial update to title/body/category. The slug is never
// recomputed.
func (s *NoteService) Update(userID uint, slug string, input NoteInput) (*model.Note, error) {
	note, err := s.Get(userID, slug)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", ErrInvalidInput)
		}
		note.Title = *input.Title
	}
	if input.Body != nil {
		note.Body = *input.Body
	}
	if input.Category != nil && *input.Category != "" {
		category := strings.ToUpper(*input.Category)
		if !model.ValidCategory(category) {
			return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, *input.Category)
		}
		note.Category = category
	}

	if err := s.notes.Update(note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) Delete(userID uint, slug string) error {
	note, err := s.Get(userID, slug)
	if err != nil {
		return err
	}
	return s.notes.Delete(note.ID)
}

// Search returns the caller's notes matching the query. An empty result is
// not an error; the handler maps it to 204.
func (s *NoteService) Search(userID uint, query string) ([]model.Note, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	return s.notes.SearchByUser(userID, query)
}

// makeSlug normalizes the title and disambiguates a collision with a single
// random 5-character suffix. The suffix is not re-checked; the unique index
// catches the astronomically unlikely second collision.
func (s *NoteService) makeSlug(title string) (string, error) {
	base := gosimple.Make(title)

	exists, err := s.notes.SlugExists(base)
	if err != nil {
		return "", err
	}
	if !exists {
		return base, nil
	}

	suffix, err := randomString(slugSuffixLen)
	if err != nil {
		return "", err
	}
	return base + "-" + suffix, nil
}

func randomString(n int) (string, error) {
	out := make([]byte, n)
	max := big.NewInt(int64(len(slugSuffixAlphabet)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("read random failed: %w", err)
		}
		out[i] = slugSuffixAlphabet[idx.Int64()]
	}
	return string(out), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
