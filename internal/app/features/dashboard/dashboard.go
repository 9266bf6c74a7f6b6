// internal/app/features/dashboard/dashboard.go
package dashboard

import (
	"net/http"

	errorsfeature "github.com/dalemusser/studyhours/internal/app/features/errors"
	"github.com/dalemusser/studyhours/internal/app/store/hours"
	"github.com/dalemusser/studyhours/internal/app/system/auth"
	"github.com/dalemusser/studyhours/internal/app/system/normalize"
	"github.com/dalemusser/studyhours/internal/app/system/reports"
	"github.com/dalemusser/studyhours/internal/app/system/timeouts"
	"github.com/dalemusser/studyhours/internal/app/system/viewdata"
	"github.com/dalemusser/studyhours/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler provides the student dashboard handlers.
type Handler struct {
	hours  hours.Store
	errLog *errorsfeature.ErrorLogger
	logger *zap.Logger
}

// NewHandler creates a new dashboard Handler.
func NewHandler(store hours.Store, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		hours:  store,
		errLog: errLog,
		logger: logger,
	}
}

// DashboardVM is the view model for the student dashboard.
type DashboardVM struct {
	viewdata.BaseVM
	Month  string // echoed filter, YYYY-MM
	Report reports.UserReport
}

// Routes returns a chi.Router with dashboard routes mounted. The
// administrator has no personal dashboard and is sent to /login like an
// anonymous visitor.
func Routes(h *Handler, sessionMgr *auth.SessionManager) http.Handler {
	r := chi.NewRouter()
	r.Use(sessionMgr.RequireStudent)
	r.Get("/", h.showDashboard)
	r.Post("/", h.showDashboard)
	r.Get("/report", h.textReport)
	return r
}

func (h *Handler) records(r *http.Request, loginID string) ([]models.HourRecord, error) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.logger, "dashboard records")
	defer cancel()
	return h.hours.RecordsFor(ctx, loginID)
}

// showDashboard lists the signed-in student's hours, optionally for one month.
func (h *Handler) showDashboard(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	rawMonth := normalize.Month(r.FormValue("month"))
	filter, err := reports.ParseFilter("", rawMonth)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	recs, err := h.records(r, user.LoginID)
	if err != nil {
		h.errLog.Internal(w, r, "failed to load study hours", err)
		return
	}

	vm := DashboardVM{
		BaseVM: viewdata.NewBaseVM(r, "My study hours"),
		Month:  rawMonth,
		Report: reports.UserDashboard(user.Name, recs, filter),
	}
	templates.Render(w, r, "dashboard/index", vm)
}

// textReport writes the plain-text monthly report for ?month=YYYY-MM.
func (h *Handler) textReport(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	rawMonth := normalize.QueryParam(r.URL.Query().Get("month"))
	if rawMonth == "" {
		http.Error(w, "No month selected", http.StatusBadRequest)
		return
	}
	month, err := models.ParseMonth(rawMonth)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	recs, err := h.records(r, user.LoginID)
	if err != nil {
		h.errLog.Internal(w, r, "failed to load study hours", err)
		return
	}

	var subjects models.SubjectHours
	for _, rec := range recs {
		if rec.Month == month {
			subjects = rec.Subjects
			break
		}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(reports.TextReport(user.Name, month, subjects)))
}
