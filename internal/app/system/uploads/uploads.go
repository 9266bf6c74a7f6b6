// Package uploads persists raw study-hour CSV files and merges their parsed
// contents into the aggregation store.
package uploads

import (
	"context"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/dalemusser/studyhours/internal/app/store/hours"
	"github.com/dalemusser/studyhours/internal/app/system/studycsv"
	"github.com/dalemusser/studyhours/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Root is the storage prefix under which raw uploads are kept.
const Root = "uploads"

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// safeSegment makes s usable as one path segment.
func safeSegment(s string) string {
	s = unsafeChars.ReplaceAllString(s, "_")
	s = strings.ReplaceAll(s, "..", "_")
	s = strings.Trim(s, ".")
	if s == "" {
		return "_"
	}
	return s
}

// StoragePath returns the object path for a raw upload:
//
//	uploads/<loginID>/<YYYY>/<MM>/<timestamp>-<id>-<filename>
//
// Paths are namespaced by identity, month and upload time, so two uploads
// never overwrite each other even with the same filename.
func StoragePath(loginID string, month models.Month, filename string, now time.Time) string {
	base := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	name := fmt.Sprintf("%s-%s-%s",
		now.UTC().Format("20060102T150405Z"),
		uuid.New().String()[:8],
		safeSegment(base))
	return path.Join(Root,
		safeSegment(loginID),
		fmt.Sprintf("%04d", month.Year),
		fmt.Sprintf("%02d", int(month.Month)),
		name)
}

// Upload is one submitted file.
type Upload struct {
	LoginID     string
	Month       models.Month
	Filename    string
	ContentType string
	Body        io.ReadSeeker
}

// Result describes what an ingest stored.
type Result struct {
	StoragePath string
	Hours       models.SubjectHours
	Stats       studycsv.Stats
}

// Service stores raw uploads and merges their hours.
type Service struct {
	files  storage.Store
	hours  hours.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a Service to its storage and hours backends.
func NewService(files storage.Store, hoursStore hours.Store, logger *zap.Logger) *Service {
	return &Service{
		files:  files,
		hours:  hoursStore,
		logger: logger,
		now:    time.Now,
	}
}

// Ingest persists the raw file, parses it, and merges the result for
// (LoginID, Month). The raw file is kept even when it holds no valid rows.
func (s *Service) Ingest(ctx context.Context, up Upload) (Result, error) {
	p := StoragePath(up.LoginID, up.Month, up.Filename, s.now())

	contentType := up.ContentType
	if contentType == "" {
		contentType = "text/csv"
	}
	if err := s.files.Put(ctx, p, up.Body, &storage.PutOptions{ContentType: contentType}); err != nil {
		return Result{}, fmt.Errorf("store upload: %w", err)
	}

	if _, err := up.Body.Seek(0, io.SeekStart); err != nil {
		return Result{}, fmt.Errorf("rewind upload: %w", err)
	}
	parsed, stats, err := studycsv.Parse(up.Body)
	if err != nil {
		return Result{}, fmt.Errorf("parse upload: %w", err)
	}

	if err := s.hours.Merge(ctx, up.LoginID, up.Month, parsed); err != nil {
		return Result{}, fmt.Errorf("merge hours: %w", err)
	}

	s.logger.Info("study hours uploaded",
		zap.String("login_id", up.LoginID),
		zap.String("month", up.Month.Key()),
		zap.String("path", p),
		zap.Int("rows", stats.Rows),
		zap.Int("accepted", stats.Accepted),
		zap.Int("skipped", stats.Skipped))
	if stats.Overflowed > 0 {
		s.logger.Warn("hour values out of range were dropped",
			zap.String("login_id", up.LoginID),
			zap.String("month", up.Month.Key()),
			zap.Int("rows", stats.Overflowed))
	}

	return Result{StoragePath: p, Hours: parsed, Stats: stats}, nil
}
