package login

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	errorsfeature "github.com/dalemusser/studyhours/internal/app/features/errors"
	"github.com/dalemusser/studyhours/internal/app/store/identities"
	"github.com/dalemusser/studyhours/internal/app/system/auth"
	"github.com/dalemusser/studyhours/internal/testutil"
	"go.uber.org/zap"
)

func newHandler(t *testing.T) *Handler {
	t.Helper()
	ctx := context.Background()
	store := identities.NewMemory()
	if _, err := store.EnsureAdmin(ctx, "ADMIN"); err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}
	if _, err := store.Register(ctx, "alice", "secret", "Alice A"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	logger := zap.NewNop()
	sm, err := auth.NewSessionManager("this-is-a-32-character-long-key!", "", "", time.Hour, false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	return NewHandler(store, sm, errorsfeature.NewErrorLogger(logger), logger)
}

func creds(username, password string) url.Values {
	return url.Values{"username": {username}, "password": {password}}
}

func TestLogin_Redirects(t *testing.T) {
	h := newHandler(t)

	tests := []struct {
		name     string
		username string
		password string
		want     string
	}{
		{"student", "alice", "secret", "/upload"},
		{"admin", "ADMIN", "ADMIN", "/admin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testutil.NewRecorder()
			Routes(h).ServeHTTP(rec, testutil.NewFormRequest("/", creds(tt.username, tt.password)))

			rec.AssertRedirect(t, tt.want)
			if len(rec.Result().Cookies()) == 0 {
				t.Error("login should set a session cookie")
			}
		})
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	h := newHandler(t)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "alice", "wrong"},
		{"unknown user", "nobody", "secret"},
		{"case differs", "ALICE", "secret"},
		{"empty fields", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testutil.NewRecorder()
			Routes(h).ServeHTTP(rec, testutil.NewFormRequest("/", creds(tt.username, tt.password)))

			rec.AssertStatus(t, http.StatusBadRequest)
			rec.AssertContains(t, "Invalid username or password!")
		})
	}
}

func TestShowLogin(t *testing.T) {
	testutil.MustBootTemplates(t)
	h := newHandler(t)

	rec := testutil.NewRecorder()
	Routes(h).ServeHTTP(rec, testutil.WithCSRFToken(testutil.NewRequest(http.MethodGet, "/")))
	rec.AssertStatus(t, http.StatusOK)
}
