package home

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/studyhours/internal/testutil"
	"go.uber.org/zap"
)

func TestIndex_Anonymous(t *testing.T) {
	testutil.MustBootTemplates(t)
	h := NewHandler(zap.NewNop())

	req := testutil.WithCSRFToken(httptest.NewRequest(http.MethodGet, "/", nil))
	rec := httptest.NewRecorder()
	Routes(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestIndex_SignedInRedirectsToUpload(t *testing.T) {
	h := NewHandler(zap.NewNop())

	for _, u := range []testutil.TestUser{testutil.StudentUser("alice"), testutil.AdminUser()} {
		req := testutil.NewAuthenticatedRequest(http.MethodGet, "/", u)
		rec := testutil.NewRecorder()
		Routes(h).ServeHTTP(rec, req)
		rec.AssertRedirect(t, "/upload")
	}
}
