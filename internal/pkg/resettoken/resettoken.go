// Package resettoken implements stateless password-reset tokens. A token is
// an HMAC over the user's current state (ID, password hash, last login,
// email) plus an embedded timestamp, so it expires after a fixed window and
// stops verifying the moment the password changes. Nothing is persisted.
package resettoken

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"noteworthy/internal/model"
)

type Generator struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewGenerator(secret string, ttl time.Duration) *Generator {
	return &Generator{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Make returns a token of the form "<base36 unix seconds>-<hex mac>".
func (g *Generator) Make(user *model.User) string {
	ts := strconv.FormatInt(g.now().Unix(), 36)
	return ts + "-" + g.mac(user, ts)
}

// Check reports whether token was produced by Make for this user's current
// state within the validity window. Comparison is constant-time.
func (g *Generator) Check(user *model.User, token string) bool {
	ts, mac, ok := strings.Cut(token, "-")
	if !ok {
		return false
	}

	issued, err := strconv.ParseInt(ts, 36, 64)
	if err != nil {
		return false
	}
	age := g.now().Unix() - issued
	if age < 0 || age > int64(g.ttl.Seconds()) {
		return false
	}

	return hmac.Equal([]byte(mac), []byte(g.mac(user, ts)))
}

func (g *Generator) mac(user *model.User, ts string) string {
	var lastLogin int64
	if user.LastLogin != nil {
		lastLogin = user.LastLogin.Unix()
	}
	state := fmt.Sprintf("%d|%s|%d|%s|%s", user.ID, user.PasswordHash, lastLogin, user.Email, ts)

	h := hmac.New(sha256.New, g.secret)
	h.Write([]byte(state))
	return hex.EncodeToString(h.Sum(nil))
}
