package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"noteworthy/internal/model"
)

func seedUser(t *testing.T, users *fakeUserRepo, email, password string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &model.User{
		Username:     email,
		Email:        email,
		PasswordHash: string(hash),
	}
	require.NoError(t, users.Create(user))
	return user
}

func TestUserDetails(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users)
	seeded := seedUser(t, users, "ada@example.com", "pw")

	got, err := svc.Details(seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", got.Email)

	_, err = svc.Details(999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateNamesPartial(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users)
	seeded := seedUser(t, users, "ada@example.com", "pw")
	seeded.FirstName = "Ada"
	seeded.LastName = "Lovelace"

	first := "Augusta"
	got, err := svc.UpdateNames(seeded.ID, &first, nil)
	require.NoError(t, err)

	assert.Equal(t, "Augusta", got.FirstName)
	assert.Equal(t, "Lovelace", got.LastName)
}

func TestDeleteAccount(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users)
	seeded := seedUser(t, users, "ada@example.com", "correct horse")

	require.NoError(t, svc.DeleteAccount(seeded.ID, "correct horse"))

	_, err := svc.Details(seeded.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteAccountRejectsBadPassword(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users)
	seeded := seedUser(t, users, "ada@example.com", "correct horse")

	assert.ErrorIs(t, svc.DeleteAccount(seeded.ID, ""), ErrPasswordRequired)
	assert.ErrorIs(t, svc.DeleteAccount(seeded.ID, "wrong"), ErrWrongPassword)

	got, err := svc.Details(seeded.ID)
	require.NoError(t, err)
	assert.NotNil(t, got)
}
