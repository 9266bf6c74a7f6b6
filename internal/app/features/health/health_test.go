package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/studyhours/internal/testutil"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func okCheck(context.Context) error   { return nil }
func downCheck(context.Context) error { return errors.New("connection refused") }

func TestHandler_Check(t *testing.T) {
	tests := []struct {
		name       string
		checks     map[string]Check
		wantCode   int
		wantStatus string
		wantMongo  string
	}{
		{"memory backend", nil, http.StatusOK, "ok", ""},
		{"mongo up", map[string]Check{"mongodb": okCheck}, http.StatusOK, "ok", "ok"},
		{"mongo down", map[string]Check{"mongodb": downCheck}, http.StatusServiceUnavailable, "degraded", "unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(tt.checks, zap.NewNop())
			rec := httptest.NewRecorder()
			h.Check(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			if rec.Code != tt.wantCode {
				t.Errorf("Check() status = %d, want %d", rec.Code, tt.wantCode)
			}
			var resp Response
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Status != tt.wantStatus {
				t.Errorf("response status = %q, want %q", resp.Status, tt.wantStatus)
			}
			if resp.Services["mongodb"] != tt.wantMongo {
				t.Errorf("mongodb status = %q, want %q", resp.Services["mongodb"], tt.wantMongo)
			}
		})
	}
}

func TestHandler_Ready(t *testing.T) {
	up := NewHandler(map[string]Check{"mongodb": okCheck}, zap.NewNop())
	rec := httptest.NewRecorder()
	up.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "{\"status\":\"ready\"}\n" {
		t.Errorf("Ready() = %d %q", rec.Code, rec.Body.String())
	}

	down := NewHandler(map[string]Check{"mongodb": downCheck}, zap.NewNop())
	rec = httptest.NewRecorder()
	down.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Ready() status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}

func TestHandler_Live(t *testing.T) {
	// Live never runs checks.
	h := NewHandler(map[string]Check{"mongodb": downCheck}, zap.NewNop())

	rec := httptest.NewRecorder()
	h.Live(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("Live() status = %d, want %d", rec.Code, http.StatusOK)
	}
	if body := rec.Body.String(); body != "{\"status\":\"alive\"}\n" {
		t.Errorf("Live() body = %q", body)
	}
}

func TestMongoCheck(t *testing.T) {
	db := testutil.SetupTestDB(t)

	h := NewHandler(map[string]Check{"mongodb": MongoCheck(db.Client())}, zap.NewNop())
	rec := httptest.NewRecorder()
	h.Check(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("Check() status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestMountRootEndpoints(t *testing.T) {
	h := NewHandler(nil, zap.NewNop())
	r := chi.NewRouter()
	MountRootEndpoints(r, h)
	r.Mount("/health", Routes(h))

	for _, path := range []string{"/ready", "/readyz", "/livez", "/health", "/health/live"} {
		t.Run(path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			if rec.Code != http.StatusOK {
				t.Errorf("%s status = %d, want %d", path, rec.Code, http.StatusOK)
			}
		})
	}
}
