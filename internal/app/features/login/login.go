// internal/app/features/login/login.go
package login

import (
	"errors"
	"net/http"

	errorsfeature "github.com/dalemusser/studyhours/internal/app/features/errors"
	"github.com/dalemusser/studyhours/internal/app/store/identities"
	"github.com/dalemusser/studyhours/internal/app/system/auth"
	"github.com/dalemusser/studyhours/internal/app/system/authutil"
	"github.com/dalemusser/studyhours/internal/app/system/timeouts"
	"github.com/dalemusser/studyhours/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler provides login handlers.
type Handler struct {
	identities identities.Store
	sessionMgr *auth.SessionManager
	errLog     *errorsfeature.ErrorLogger
	logger     *zap.Logger
}

// NewHandler creates a new login Handler.
func NewHandler(
	store identities.Store,
	sessionMgr *auth.SessionManager,
	errLog *errorsfeature.ErrorLogger,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		identities: store,
		sessionMgr: sessionMgr,
		errLog:     errLog,
		logger:     logger,
	}
}

// LoginVM is the view model for the login page.
type LoginVM struct {
	viewdata.BaseVM
}

// Routes returns a chi.Router with login routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.showLogin)
	r.Post("/", h.handleLogin)
	return r
}

func (h *Handler) showLogin(w http.ResponseWriter, r *http.Request) {
	vm := LoginVM{BaseVM: viewdata.NewBaseVM(r, "Log in")}
	templates.Render(w, r, "login/index", vm)
}

// handleLogin checks username/password and starts a session. The
// administrator lands on /admin, everyone else on /upload.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	creds := authutil.Credentials{
		LoginID:  r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}
	if err := creds.Validate(); err != nil {
		http.Error(w, identities.ErrInvalidCredentials.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.logger, "login")
	defer cancel()

	id, err := h.identities.Authenticate(ctx, creds.LoginID, creds.Password)
	switch {
	case errors.Is(err, identities.ErrInvalidCredentials):
		h.logger.Info("login failed", zap.String("login_id", creds.LoginID))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		h.errLog.Internal(w, r, "failed to authenticate", err)
		return
	}

	if err := h.sessionMgr.CreateSession(w, r, id.LoginID, id.Role()); err != nil {
		h.errLog.Internal(w, r, "failed to create session", err)
		return
	}

	h.logger.Info("login succeeded", zap.String("login_id", id.LoginID), zap.String("role", id.Role()))

	if id.IsAdmin() {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/upload", http.StatusSeeOther)
}
