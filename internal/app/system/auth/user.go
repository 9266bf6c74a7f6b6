package auth

import (
	"context"
	"net/http"

	"github.com/dalemusser/studyhours/internal/domain/models"
)

// SessionUser is the signed-in identity attached to a request.
type SessionUser struct {
	LoginID string
	Name    string // display name, uppercase
	Role    string
}

// IsAdmin reports whether u is the bootstrap ADMIN identity.
func (u *SessionUser) IsAdmin() bool {
	return u.LoginID == models.AdminLoginID
}

// UserFetcher loads the identity behind a session's login ID. It returns nil
// when the identity is gone.
type UserFetcher interface {
	FetchUser(ctx context.Context, loginID string) *SessionUser
}

type userKey struct{}

// CurrentUser returns the identity LoadSessionUser attached, if any.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(userKey{}).(*SessionUser)
	return u, ok
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userKey{}, u))
}

// WithTestUser attaches u the way LoadSessionUser does. Handler tests use it
// to skip the cookie round trip.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}
