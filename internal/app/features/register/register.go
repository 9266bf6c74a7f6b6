// internal/app/features/register/register.go
package register

import (
	"errors"
	"net/http"

	errorsfeature "github.com/dalemusser/studyhours/internal/app/features/errors"
	"github.com/dalemusser/studyhours/internal/app/store/identities"
	"github.com/dalemusser/studyhours/internal/app/system/authutil"
	"github.com/dalemusser/studyhours/internal/app/system/timeouts"
	"github.com/dalemusser/studyhours/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler provides registration handlers.
type Handler struct {
	identities identities.Store
	errLog     *errorsfeature.ErrorLogger
	logger     *zap.Logger
}

// NewHandler creates a new register Handler.
func NewHandler(store identities.Store, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		identities: store,
		errLog:     errLog,
		logger:     logger,
	}
}

// RegisterVM is the view model for the registration form.
type RegisterVM struct {
	viewdata.BaseVM
}

// Routes returns a chi.Router with registration routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.showForm)
	r.Post("/", h.handleRegister)
	return r
}

func (h *Handler) showForm(w http.ResponseWriter, r *http.Request) {
	vm := RegisterVM{BaseVM: viewdata.NewBaseVM(r, "Register")}
	templates.Render(w, r, "register/index", vm)
}

// handleRegister creates an identity from username, password and
// registered_name, then sends the user to the login form.
func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	in := authutil.Registration{
		Credentials: authutil.Credentials{
			LoginID:  r.PostFormValue("username"),
			Password: r.PostFormValue("password"),
		},
		DisplayName: r.PostFormValue("registered_name"),
	}
	if err := in.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.logger, "register")
	defer cancel()

	id, err := h.identities.Register(ctx, in.LoginID, in.Password, in.DisplayName)
	switch {
	case errors.Is(err, identities.ErrDuplicateIdentity):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		h.errLog.Internal(w, r, "failed to register identity", err)
		return
	}

	h.logger.Info("identity registered",
		zap.String("login_id", id.LoginID),
		zap.String("display_name", id.DisplayName))

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
