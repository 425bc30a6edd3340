package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"noteworthy/internal/model"
)

// In-memory fakes shared by the service tests.

type fakeUserRepo struct {
	users  map[uint]*model.User
	nextID uint

	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*model.User{}, nextID: 1}
}

func (f *fakeUserRepo) Create(user *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	user.ID = f.nextID
	user.DateJoined = time.Now()
	f.nextID++
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByID(id uint) (*model.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) UpdateNames(id uint, firstName, lastName string) error {
	if u := f.users[id]; u != nil {
		u.FirstName = firstName
		u.LastName = lastName
	}
	return nil
}

func (f *fakeUserRepo) UpdatePassword(id uint, passwordHash string) error {
	if u := f.users[id]; u != nil {
		u.PasswordHash = passwordHash
	}
	return nil
}

func (f *fakeUserRepo) UpdateLastLogin(id uint, at time.Time) error {
	if u := f.users[id]; u != nil {
		u.LastLogin = &at
	}
	return nil
}

func (f *fakeUserRepo) Delete(id uint) error {
	delete(f.users, id)
	return nil
}

type fakeNoteRepo struct {
	notes  map[uint]*model.Note
	nextID uint

	createErr error
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{notes: map[uint]*model.Note{}, nextID: 1}
}

func (f *fakeNoteRepo) Create(note *model.Note) error {
	if f.createErr != nil {
		return f.createErr
	}
	note.ID = f.nextID
	note.CreatedAt = time.Now()
	note.UpdatedAt = note.CreatedAt
	f.nextID++
	f.notes[note.ID] = note
	return nil
}

func (f *fakeNoteRepo) GetBySlug(slug string) (*model.Note, error) {
	for _, n := range f.notes {
		if n.Slug == slug {
			return n, nil
		}
	}
	return nil, nil
}

func (f *fakeNoteRepo) SlugExists(slug string) (bool, error) {
	n, _ := f.GetBySlug(slug)
	return n != nil, nil
}

func (f *fakeNoteRepo) ListByUser(userID uint) ([]model.Note, error) {
	var out []model.Note
	for _, n := range f.notes {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeNoteRepo) SearchByUser(userID uint, query string) ([]model.Note, error) {
	// The fake does not re-implement LIKE matching; repository tests cover
	// the SQL. It only honors owner scoping.
	return f.ListByUser(userID)
}

func (f *fakeNoteRepo) Update(note *model.Note) error {
	note.UpdatedAt = time.Now()
	f.notes[note.ID] = note
	return nil
}

func (f *fakeNoteRepo) Delete(id uint) error {
	delete(f.notes, id)
	return nil
}

type fakeProfileRepo struct {
	profiles map[uint]*model.Profile
	nextID   uint
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[uint]*model.Profile{}, nextID: 1}
}

// GetOrCreate returns a snapshot, matching the real repository: mutating the
// returned struct must not change the stored row.
func (f *fakeProfileRepo) GetOrCreate(userID uint) (*model.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		p = &model.Profile{ID: f.nextID, UserID: userID}
		f.nextID++
		f.profiles[userID] = p
	}
	snapshot := *p
	return &snapshot, nil
}

func (f *fakeProfileRepo) UpdateImage(userID uint, image string) error {
	if p, ok := f.profiles[userID]; ok {
		p.Image = image
	}
	return nil
}

type fakeBlacklist struct {
	revoked map[string]bool
}

func newFakeBlacklist() *fakeBlacklist {
	return &fakeBlacklist{revoked: map[string]bool{}}
}

func (f *fakeBlacklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	f.revoked[jti] = true
	return nil
}

func (f *fakeBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	return f.revoked[jti], nil
}

type fakeMailer struct {
	sentTo  []string
	sentURL []string
	sendErr error
}

func (f *fakeMailer) SendPasswordReset(to, resetURL string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sentTo = append(f.sentTo, to)
	f.sentURL = append(f.sentURL, resetURL)
	return nil
}

type fakeStorage struct {
	objects map[string][]byte
	deleted []string

	deleteErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (f *fakeStorage) Upload(ctx context.Context, key, contentType string, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.objects[key] = data
	return nil
}

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeStorage) PresignGet(ctx context.Context, key string) (string, error) {
	return fmt.Sprintf("https://storage.test/%s?signed=1", key), nil
}
