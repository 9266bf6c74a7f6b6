package auth

import (
	"net/http"
	"strings"

	"github.com/gorilla/securecookie"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoadSessionUser attaches the signed-in identity to the request context.
// A cookie naming an identity the fetcher no longer knows is cleared.
func (sm *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := sm.store.Get(r, sm.name)
		if err != nil {
			category, level := cookieFailure(err)
			sm.logger.Check(level, "unreadable session cookie, starting fresh").Write(
				zap.String("category", category),
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
				zap.Error(err))
		}

		signedIn, _ := sess.Values[keySignedIn].(bool)
		loginID := stringValue(sess, keyLoginID)
		if !signedIn || loginID == "" {
			next.ServeHTTP(w, r)
			return
		}

		if sm.userFetcher == nil {
			r = withUser(r, &SessionUser{LoginID: loginID, Name: loginID, Role: stringValue(sess, keyRole)})
		} else if u := sm.userFetcher.FetchUser(r.Context(), loginID); u != nil {
			r = withUser(r, u)
		} else {
			sm.logger.Info("session names unknown identity, clearing",
				zap.String("login_id", loginID))
			clearValues(sess)
			_ = sess.Save(r, w)
		}
		next.ServeHTTP(w, r)
	})
}

// cookieFailure names a cookie decode failure and picks its log level.
// Expiry is routine; a bad MAC may be tampering.
func cookieFailure(err error) (string, zapcore.Level) {
	sc, ok := err.(securecookie.Error)
	if !ok || !sc.IsDecode() {
		return "backend", zapcore.ErrorLevel
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "expired timestamp"):
		return "expired", zapcore.DebugLevel
	case strings.Contains(msg, "mac"), strings.Contains(msg, "hash"):
		return "mac_invalid", zapcore.WarnLevel
	default:
		return "undecodable", zapcore.InfoLevel
	}
}

// RequireSignedIn sends anonymous requests to /login.
func (sm *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireStudent admits any signed-in identity except ADMIN. Everyone else
// goes to /login.
func (sm *SessionManager) RequireStudent(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u, ok := CurrentUser(r); !ok || u.IsAdmin() {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin answers 403 "Unauthorized" to everyone but ADMIN, anonymous
// requests included.
func (sm *SessionManager) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u, ok := CurrentUser(r); !ok || !u.IsAdmin() {
			http.Error(w, "Unauthorized", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
