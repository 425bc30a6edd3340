package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"noteworthy/internal/pkg/jwtutil"
)

func newAuthService(t *testing.T) (*AuthService, *fakeUserRepo, *fakeBlacklist) {
	t.Helper()
	users := newFakeUserRepo()
	blacklist := newFakeBlacklist()
	tokens := jwtutil.NewManager("test-secret", 30*time.Minute, 24*time.Hour)
	return NewAuthService(users, tokens, blacklist), users, blacklist
}

func registerUser(t *testing.T, svc *AuthService, email, password string) {
	t.Helper()
	require.NoError(t, svc.Register(RegisterInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     email,
		Password:  password,
	}))
}

func TestRegister(t *testing.T) {
	svc, users, _ := newAuthService(t)

	registerUser(t, svc, "ada@example.com", "correct horse")

	user, err := users.GetByEmail("ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "ada@example.com", user.Username, "username mirrors email")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct horse")))
	assert.NotEqual(t, "correct horse", user.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, users, _ := newAuthService(t)

	registerUser(t, svc, "ada@example.com", "correct horse")
	err := svc.Register(RegisterInput{Email: "ada@example.com", Password: "another one"})
	assert.ErrorIs(t, err, ErrEmailExists)
	assert.Len(t, users.users, 1, "no second row created")
}

func TestRegisterDuplicateEmailUniqueIndex(t *testing.T) {
	svc, users, _ := newAuthService(t)

	// A concurrent register passes the email lookup and hits the unique
	// index instead.
	users.createErr = gorm.ErrDuplicatedKey
	err := svc.Register(RegisterInput{Email: "ada@example.com", Password: "correct horse"})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestLogin(t *testing.T) {
	svc, users, _ := newAuthService(t)
	registerUser(t, svc, "ada@example.com", "correct horse")

	pair, err := svc.Login("ada@example.com", "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)

	user, _ := users.GetByEmail("ada@example.com")
	assert.NotNil(t, user.LastLogin, "login records last-login time")
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _, _ := newAuthService(t)
	registerUser(t, svc, "ada@example.com", "correct horse")

	_, wrongPassword := svc.Login("ada@example.com", "wrong")
	_, unknownEmail := svc.Login("nobody@example.com", "correct horse")

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredential)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredential)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestRefresh(t *testing.T) {
	svc, _, _ := newAuthService(t)
	registerUser(t, svc, "ada@example.com", "correct horse")
	pair, err := svc.Login("ada@example.com", "correct horse")
	require.NoError(t, err)

	access, err := svc.Refresh(context.Background(), pair.Refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, _, _ := newAuthService(t)
	registerUser(t, svc, "ada@example.com", "correct horse")
	pair, err := svc.Login("ada@example.com", "correct horse")
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), pair.Access)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	svc, _, _ := newAuthService(t)
	registerUser(t, svc, "ada@example.com", "correct horse")
	pair, err := svc.Login("ada@example.com", "correct horse")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), pair.Refresh))

	_, err = svc.Refresh(context.Background(), pair.Refresh)
	assert.ErrorIs(t, err, ErrTokenInvalid, "revoked token mints no access tokens")

	err = svc.Logout(context.Background(), pair.Refresh)
	assert.ErrorIs(t, err, ErrTokenInvalid, "second logout with the same token fails")
}

func TestLogoutMalformedToken(t *testing.T) {
	svc, _, _ := newAuthService(t)
	err := svc.Logout(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestRegisterNormalizesEmail(t *testing.T) {
	svc, users, _ := newAuthService(t)
	registerUser(t, svc, "  Ada@Example.COM ", "correct horse")

	user, err := users.GetByEmail("ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)

	_, loginErr := svc.Login("ADA@example.com", "correct horse")
	assert.NoError(t, loginErr)
}
