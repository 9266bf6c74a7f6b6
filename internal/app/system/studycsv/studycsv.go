// Package studycsv ingests uploaded study-hour spreadsheets.
//
// The expected layout is a header row followed by "subject,hours" rows.
// Ingestion is best-effort: short rows, rows whose hour column is not an
// integer, and rows the CSV tokenizer rejects are skipped, never reported
// as errors.
package studycsv

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/dalemusser/studyhours/internal/domain/models"
)

// Stats describes what happened to the data rows of one ingestion pass.
// It is used for logging only.
type Stats struct {
	Rows     int // data rows seen (header excluded)
	Accepted int
	Skipped  int
	// Overflowed counts skipped rows whose hour value is an integer too
	// large for int. They are included in Skipped.
	Overflowed int
}

// Parse reads r and returns the summed hours per subject. A subject that
// appears on several rows has its hours summed within this pass.
// An empty input yields an empty mapping.
func Parse(r io.Reader) (models.SubjectHours, Stats, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	out := make(models.SubjectHours)
	var stats Stats
	header := true

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				if header {
					header = false
					continue
				}
				stats.Rows++
				stats.Skipped++
				continue
			}
			return nil, stats, err
		}

		if header {
			header = false
			continue
		}

		stats.Rows++
		subject, hours, err := parseRow(rec)
		if err != nil {
			stats.Skipped++
			if errors.Is(err, strconv.ErrRange) {
				stats.Overflowed++
			}
			continue
		}
		out[subject] += hours
		stats.Accepted++
	}

	return out, stats, nil
}

var errShortRow = errors.New("row has fewer than two columns")

// parseRow extracts (subject, hours) from a record. The subject is taken
// as-is; surrounding whitespace is tolerated around the hour value.
func parseRow(rec []string) (string, int, error) {
	if len(rec) < 2 {
		return "", 0, errShortRow
	}
	hours, err := strconv.Atoi(strings.TrimSpace(rec[1]))
	if err != nil {
		return "", 0, err
	}
	return rec[0], hours, nil
}
