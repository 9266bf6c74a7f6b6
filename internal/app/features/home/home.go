// internal/app/features/home/home.go
package home

import (
	"net/http"

	"github.com/dalemusser/studyhours/internal/app/system/auth"
	"github.com/dalemusser/studyhours/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler provides home page handlers.
type Handler struct {
	logger *zap.Logger
}

// NewHandler creates a new home Handler.
func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{logger: logger}
}

// HomeVM is the view model for the landing page.
type HomeVM struct {
	viewdata.BaseVM
}

// Routes returns a chi.Router with home routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Index)
	return r
}

// Index renders the landing page, or sends signed-in users to the upload form.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, "/upload", http.StatusSeeOther)
		return
	}
	vm := HomeVM{BaseVM: viewdata.NewBaseVM(r, "Welcome")}
	templates.Render(w, r, "home/index", vm)
}
