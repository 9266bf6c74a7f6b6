// internal/domain/models/month.go
package models

import (
	"errors"
	"fmt"
	"time"
)

// monthLayout is the raw form accepted from upload and filter forms.
const monthLayout = "2006-01"

// ErrMonthFormat is returned when a month value is not a valid YYYY-MM string.
var ErrMonthFormat = errors.New("month must be in YYYY-MM format")

// Month identifies a calendar month. It is the bucket key for study hours;
// the human-readable label is only produced at the presentation boundary.
type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth normalizes a raw "YYYY-MM" value. It is pure: the same input
// always yields the same Month, so upload-time and filter-time parsing agree.
func ParseMonth(raw string) (Month, error) {
	t, err := time.Parse(monthLayout, raw)
	if err != nil || t.Year() < 1 {
		return Month{}, fmt.Errorf("%w: %q", ErrMonthFormat, raw)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// Label renders the month as "<Month name> <Year>", e.g. "October 2024".
func (m Month) Label() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}

// Key renders the month back to its raw "YYYY-MM" form.
func (m Month) Key() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

func (m Month) String() string {
	return m.Label()
}
