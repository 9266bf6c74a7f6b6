package testutil

import (
	"context"
	"net/http"
)

// TestCSRFToken is the token WithCSRFToken places on a request.
const TestCSRFToken = "test-csrf-token"

// WithCSRFToken stores a token under the context key gorilla/csrf reads, so
// csrf.Token(r) in viewdata returns a value for handlers tested without
// csrf.Protect in front of them.
func WithCSRFToken(r *http.Request) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), "gorilla.csrf.Token", TestCSRFToken))
}

// NewAuthenticatedRequestWithCSRF is NewAuthenticatedRequest plus WithCSRFToken.
func NewAuthenticatedRequestWithCSRF(method, target string, user TestUser) *http.Request {
	return WithCSRFToken(NewAuthenticatedRequest(method, target, user))
}
