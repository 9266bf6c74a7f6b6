// internal/app/features/admin/admin.go
package admin

import (
	"fmt"
	"net/http"
	"net/url"

	errorsfeature "github.com/dalemusser/studyhours/internal/app/features/errors"
	"github.com/dalemusser/studyhours/internal/app/store/hours"
	"github.com/dalemusser/studyhours/internal/app/store/identities"
	"github.com/dalemusser/studyhours/internal/app/system/auth"
	"github.com/dalemusser/studyhours/internal/app/system/normalize"
	"github.com/dalemusser/studyhours/internal/app/system/reports"
	"github.com/dalemusser/studyhours/internal/app/system/timeouts"
	"github.com/dalemusser/studyhours/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler provides the administrator's aggregate views.
type Handler struct {
	identities identities.Store
	hours      hours.Store
	errLog     *errorsfeature.ErrorLogger
	logger     *zap.Logger
}

// NewHandler creates a new admin Handler.
func NewHandler(ids identities.Store, hs hours.Store, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		identities: ids,
		hours:      hs,
		errLog:     errLog,
		logger:     logger,
	}
}

// AdminVM is the view model for the admin dashboard.
type AdminVM struct {
	viewdata.BaseVM
	StudentName string
	Month       string
	ExportURL   string
	Report      reports.AdminReport
}

// Routes returns a chi.Router with admin routes mounted.
func Routes(h *Handler, sessionMgr *auth.SessionManager) http.Handler {
	r := chi.NewRouter()
	r.Use(sessionMgr.RequireAdmin)
	r.Get("/", h.showDashboard)
	r.Post("/", h.showDashboard)
	r.Get("/export.csv", h.exportCSV)
	return r
}

// filterValues reads student_name and month from the query string or form body.
func filterValues(r *http.Request) (student, month string) {
	return normalize.QueryParam(r.FormValue("student_name")), normalize.Month(r.FormValue("month"))
}

// report loads every identity's hours and projects them through f.
func (h *Handler) report(r *http.Request, f reports.Filter) (reports.AdminReport, error) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.logger, "admin report")
	defer cancel()

	names, err := h.identities.DisplayNames(ctx)
	if err != nil {
		return reports.AdminReport{}, fmt.Errorf("display names: %w", err)
	}
	recs, err := h.hours.All(ctx)
	if err != nil {
		return reports.AdminReport{}, fmt.Errorf("hours: %w", err)
	}
	return reports.AdminDashboard(recs, names, f), nil
}

func (h *Handler) showDashboard(w http.ResponseWriter, r *http.Request) {
	student, month := filterValues(r)
	filter, err := reports.ParseFilter(student, month)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rep, err := h.report(r, filter)
	if err != nil {
		h.errLog.Internal(w, r, "failed to build admin report", err)
		return
	}

	q := url.Values{}
	if student != "" {
		q.Set("student_name", student)
	}
	if month != "" {
		q.Set("month", month)
	}
	exportURL := "/admin/export.csv"
	if len(q) > 0 {
		exportURL += "?" + q.Encode()
	}

	vm := AdminVM{
		BaseVM:      viewdata.NewBaseVM(r, "All study hours"),
		StudentName: student,
		Month:       month,
		ExportURL:   exportURL,
		Report:      rep,
	}
	templates.Render(w, r, "admin/index", vm)
}

// exportCSV streams the filtered admin projection as a CSV attachment.
func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	student, month := filterValues(r)
	filter, err := reports.ParseFilter(student, month)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rep, err := h.report(r, filter)
	if err != nil {
		h.errLog.Internal(w, r, "failed to build admin export", err)
		return
	}

	filename := "study_hours.csv"
	if filter.Month != nil {
		filename = fmt.Sprintf("study_hours_%s.csv", filter.Month.Key())
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, url.PathEscape(filename)))

	if err := reports.WriteAdminCSV(w, rep); err != nil {
		h.logger.Error("CSV write failed", zap.Error(err))
		return
	}
	h.logger.Info("admin CSV exported", zap.Int("rows", len(rep.Rows)))
}
