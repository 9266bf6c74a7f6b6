// Package auth keeps the signed-in login ID in a signed gorilla/sessions
// cookie and resolves it into a SessionUser on every request.
//
// The login ID is the only key for an identity. It is case-sensitive and
// there is no separate database ID.
package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// DefaultSessionName is the cookie name when none is configured.
const DefaultSessionName = "studyhours-session"

// Cookie value keys.
const (
	keySignedIn = "signed_in"
	keyLoginID  = "login_id"
	keyRole     = "role"
)

// SessionConfigError reports a session key that cannot be used.
type SessionConfigError struct {
	Message string
}

func (e *SessionConfigError) Error() string { return e.Message }

// SessionManager owns the cookie store and the request middleware built on it.
type SessionManager struct {
	store       *sessions.CookieStore
	name        string
	logger      *zap.Logger
	userFetcher UserFetcher
}

// NewSessionManager builds the cookie store. A key shorter than 32 bytes or
// one that reads like a placeholder is refused when secure is set and only
// warned about otherwise.
func NewSessionManager(sessionKey, name, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, &SessionConfigError{Message: "session key is empty"}
	}
	if len(sessionKey) < 32 || looksLikePlaceholder(sessionKey) {
		if secure {
			return nil, &SessionConfigError{Message: "session key must be at least 32 random characters in production"}
		}
		logger.Warn("weak session key; use 32+ random characters in production",
			zap.Int("length", len(sessionKey)))
	}
	if name == "" {
		name = DefaultSessionName
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	store.Options = &sessions.Options{
		Path:     "/",
		Domain:   domain,
		MaxAge:   int(maxAge / time.Second),
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	logger.Info("session manager ready",
		zap.String("cookie", name),
		zap.String("domain", domain),
		zap.Bool("secure", secure))
	return &SessionManager{store: store, name: name, logger: logger}, nil
}

func looksLikePlaceholder(key string) bool {
	k := strings.ToLower(key)
	for _, p := range []string{"dev-only", "change-me", "changeme", "placeholder", "example", "insecure", "default", "password"} {
		if strings.Contains(k, p) {
			return true
		}
	}
	return false
}

// SessionName returns the cookie name.
func (sm *SessionManager) SessionName() string { return sm.name }

// SetUserFetcher installs the lookup LoadSessionUser uses. Without one the
// cookie's login ID is trusted as is.
func (sm *SessionManager) SetUserFetcher(uf UserFetcher) { sm.userFetcher = uf }

// CreateSession signs loginID in. An unreadable old cookie is replaced.
func (sm *SessionManager) CreateSession(w http.ResponseWriter, r *http.Request, loginID, role string) error {
	sess, err := sm.store.Get(r, sm.name)
	if err != nil {
		sess, _ = sm.store.New(r, sm.name)
	}
	sess.Values[keySignedIn] = true
	sess.Values[keyLoginID] = loginID
	sess.Values[keyRole] = role
	return sess.Save(r, w)
}

// DestroySession clears the cookie. A missing or unreadable cookie is left
// alone since it carries no identity anyway.
func (sm *SessionManager) DestroySession(w http.ResponseWriter, r *http.Request) {
	sess, err := sm.store.Get(r, sm.name)
	if err != nil {
		return
	}
	clearValues(sess)
	sess.Options.MaxAge = -1
	_ = sess.Save(r, w)
}

func clearValues(sess *sessions.Session) {
	sess.Values[keySignedIn] = false
	delete(sess.Values, keyLoginID)
	delete(sess.Values, keyRole)
}

func stringValue(sess *sessions.Session, key string) string {
	s, _ := sess.Values[key].(string)
	return s
}
