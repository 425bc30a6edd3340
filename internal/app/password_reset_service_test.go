package app

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"noteworthy/internal/pkg/resettoken"
)

func newResetService(t *testing.T) (*PasswordResetService, *fakeUserRepo, *fakeMailer) {
	t.Helper()
	users := newFakeUserRepo()
	mailer := &fakeMailer{}
	tokens := resettoken.NewGenerator("test-secret", 10*time.Minute)
	svc := NewPasswordResetService(users, tokens, mailer, "https://notes.example.com")
	return svc, users, mailer
}

func TestSendResetEmail(t *testing.T) {
	svc, users, mailer := newResetService(t)
	user := seedUser(t, users, "ada@example.com", "old password")

	require.NoError(t, svc.SendResetEmail("ada@example.com"))

	require.Len(t, mailer.sentTo, 1)
	assert.Equal(t, "ada@example.com", mailer.sentTo[0])
	assert.Regexp(t,
		fmt.Sprintf(`^https://notes\.example\.com/reset-password/%d/[0-9a-z]+-[0-9a-f]{64}$`, user.ID),
		mailer.sentURL[0])
}

func TestSendResetEmailUnknownUser(t *testing.T) {
	svc, _, mailer := newResetService(t)

	assert.ErrorIs(t, svc.SendResetEmail("nobody@example.com"), ErrUserNotFound)
	assert.Empty(t, mailer.sentTo)
}

func TestSendResetEmailMailFailure(t *testing.T) {
	svc, users, mailer := newResetService(t)
	seedUser(t, users, "ada@example.com", "pw")
	mailer.sendErr = fmt.Errorf("smtp: connection refused")

	assert.Error(t, svc.SendResetEmail("ada@example.com"))
}

func TestResetPasswordFlow(t *testing.T) {
	svc, users, mailer := newResetService(t)
	user := seedUser(t, users, "ada@example.com", "old password")

	require.NoError(t, svc.SendResetEmail("ada@example.com"))
	token := tokenFromURL(t, mailer.sentURL[0])

	require.NoError(t, svc.ValidateToken(user.ID, token))
	require.NoError(t, svc.ResetPassword(user.ID, token, "new password"))

	stored, err := users.GetByID(user.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("new password")))
}

func TestResetTokenIsSingleUse(t *testing.T) {
	svc, users, mailer := newResetService(t)
	user := seedUser(t, users, "ada@example.com", "old password")

	require.NoError(t, svc.SendResetEmail("ada@example.com"))
	token := tokenFromURL(t, mailer.sentURL[0])

	require.NoError(t, svc.ResetPassword(user.ID, token, "new password"))

	// The password change invalidates the token.
	assert.ErrorIs(t, svc.ValidateToken(user.ID, token), ErrBadResetToken)
	assert.ErrorIs(t, svc.ResetPassword(user.ID, token, "another"), ErrBadResetToken)
}

func TestResetPasswordRejectsBadToken(t *testing.T) {
	svc, users, _ := newResetService(t)
	user := seedUser(t, users, "ada@example.com", "pw")

	assert.ErrorIs(t, svc.ValidateToken(user.ID, "garbage"), ErrBadResetToken)
	assert.ErrorIs(t, svc.ResetPassword(user.ID, "garbage", "new"), ErrBadResetToken)
	assert.ErrorIs(t, svc.ValidateToken(999, "garbage"), ErrUserNotFound)
}

func TestResetPasswordRequiresNewPassword(t *testing.T) {
	svc, users, mailer := newResetService(t)
	user := seedUser(t, users, "ada@example.com", "pw")

	require.NoError(t, svc.SendResetEmail("ada@example.com"))
	token := tokenFromURL(t, mailer.sentURL[0])

	assert.ErrorIs(t, svc.ResetPassword(user.ID, token, ""), ErrInvalidInput)
}

func tokenFromURL(t *testing.T, resetURL string) string {
	t.Helper()
	idx := strings.LastIndex(resetURL, "/")
	require.GreaterOrEqual(t, idx, 0)
	return resetURL[idx+1:]
}
