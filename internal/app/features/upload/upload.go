// internal/app/features/upload/upload.go
package upload

import (
	"errors"
	"net/http"

	errorsfeature "github.com/dalemusser/studyhours/internal/app/features/errors"
	"github.com/dalemusser/studyhours/internal/app/system/auth"
	"github.com/dalemusser/studyhours/internal/app/system/normalize"
	"github.com/dalemusser/studyhours/internal/app/system/timeouts"
	"github.com/dalemusser/studyhours/internal/app/system/uploads"
	"github.com/dalemusser/studyhours/internal/app/system/viewdata"
	"github.com/dalemusser/studyhours/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// DefaultMaxUploadSize caps a single CSV upload.
const DefaultMaxUploadSize = 32 << 20 // 32MB

// Handler provides the CSV upload handlers.
type Handler struct {
	uploads       *uploads.Service
	errLog        *errorsfeature.ErrorLogger
	maxUploadSize int64
	logger        *zap.Logger
}

// NewHandler creates a new upload Handler. A non-positive maxUploadSize
// selects DefaultMaxUploadSize.
func NewHandler(svc *uploads.Service, errLog *errorsfeature.ErrorLogger, maxUploadSize int64, logger *zap.Logger) *Handler {
	if maxUploadSize <= 0 {
		maxUploadSize = DefaultMaxUploadSize
	}
	return &Handler{
		uploads:       svc,
		errLog:        errLog,
		maxUploadSize: maxUploadSize,
		logger:        logger,
	}
}

// UploadVM is the view model for the upload form.
type UploadVM struct {
	viewdata.BaseVM
	MaxSize string
}

// Routes returns a chi.Router with upload routes mounted.
func Routes(h *Handler, sessionMgr *auth.SessionManager) http.Handler {
	r := chi.NewRouter()
	r.Use(sessionMgr.RequireSignedIn)
	r.Get("/", h.showUpload)
	r.Post("/", h.upload)
	return r
}

func (h *Handler) showUpload(w http.ResponseWriter, r *http.Request) {
	vm := UploadVM{
		BaseVM:  viewdata.NewBaseVM(r, "Upload study hours"),
		MaxSize: FormatFileSize(h.maxUploadSize),
	}
	templates.Render(w, r, "upload/index", vm)
}

// Success renders the static confirmation page shown after an upload.
func (h *Handler) Success(w http.ResponseWriter, r *http.Request) {
	vm := viewdata.NewBaseVM(r, "Upload complete")
	templates.Render(w, r, "upload/success", vm)
}

// upload stores the raw CSV, merges its hours for the chosen month and
// redirects to the confirmation page.
func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			http.Error(w, "File too large (max "+FormatFileSize(h.maxUploadSize)+")", http.StatusBadRequest)
			return
		}
		// Not multipart at all: there cannot be a file part.
		http.Error(w, "No file uploaded", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		// A file input submitted with nothing chosen arrives as a part with
		// an empty filename, which the multipart reader files under Value.
		if _, present := r.MultipartForm.Value["file"]; present {
			http.Error(w, "No file selected", http.StatusBadRequest)
			return
		}
		http.Error(w, "No file uploaded", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if header.Filename == "" {
		http.Error(w, "No file selected", http.StatusBadRequest)
		return
	}

	rawMonth := normalize.Month(r.FormValue("month"))
	if rawMonth == "" {
		http.Error(w, "No month selected", http.StatusBadRequest)
		return
	}
	month, err := models.ParseMonth(rawMonth)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.logger, "upload")
	defer cancel()

	if _, err := h.uploads.Ingest(ctx, uploads.Upload{
		LoginID:     user.LoginID,
		Month:       month,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	}); err != nil {
		h.errLog.LogWithFields(r, "failed to ingest upload", err,
			zap.String("login_id", user.LoginID),
			zap.String("month", month.Key()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/upload-success", http.StatusSeeOther)
}
