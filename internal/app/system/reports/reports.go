// Package reports builds the read-only dashboard projections over
// aggregated study hours. Everything here is pure: no store access, no
// HTTP, so the projections are testable on plain records.
package reports

import (
	"sort"
	"strings"

	"github.com/dalemusser/studyhours/internal/domain/models"
)

// Row is one (student, subject, hours, month) line of a dashboard.
// Index is 1-based for display.
type Row struct {
	Index       int
	DisplayName string
	Subject     string
	Hours       int
	Month       models.Month
}

// MonthLabel renders the row's month for templates.
func (r Row) MonthLabel() string {
	return r.Month.Label()
}

// MonthTotal is the total hours for one month. Index is 1-based.
type MonthTotal struct {
	Index int
	Month models.Month
	Hours int
}

// MonthLabel renders the total's month for templates.
func (t MonthTotal) MonthLabel() string {
	return t.Month.Label()
}

// StudentTotal is the total hours for one display name. Index is 1-based.
type StudentTotal struct {
	Index       int
	DisplayName string
	Hours       int
}

// UserReport is the per-student dashboard projection.
type UserReport struct {
	DisplayName string
	Rows        []Row
	Totals      []MonthTotal
}

// AdminReport is the all-students dashboard projection.
type AdminReport struct {
	Rows   []Row
	Totals []StudentTotal
}

// Filter restricts a projection. Zero values mean "no restriction".
type Filter struct {
	Student string        // display name, matched case-insensitively
	Month   *models.Month // exact month
}

// ParseFilter builds a Filter from raw form values. An empty month means no
// month filter; a non-empty month must be a valid YYYY-MM string.
func ParseFilter(student, month string) (Filter, error) {
	f := Filter{Student: student}
	if month != "" {
		m, err := models.ParseMonth(month)
		if err != nil {
			return Filter{}, err
		}
		f.Month = &m
	}
	return f, nil
}

func (f Filter) matchMonth(m models.Month) bool {
	return f.Month == nil || *f.Month == m
}

// Display names are stored uppercase, so uppercasing the filter is enough.
func (f Filter) matchStudent(displayName string) bool {
	return f.Student == "" || strings.ToUpper(f.Student) == displayName
}

// UserDashboard projects one student's records, sorted by (month label, subject),
// with per-month totals. Only f.Month is honored.
func UserDashboard(displayName string, records []models.HourRecord, f Filter) UserReport {
	rep := UserReport{DisplayName: displayName}

	for _, rec := range records {
		if !f.matchMonth(rec.Month) {
			continue
		}
		for subject, hours := range rec.Subjects {
			rep.Rows = append(rep.Rows, Row{
				DisplayName: displayName,
				Subject:     subject,
				Hours:       hours,
				Month:       rec.Month,
			})
		}
		rep.Totals = append(rep.Totals, MonthTotal{Month: rec.Month, Hours: rec.Subjects.Total()})
	}

	sort.Slice(rep.Rows, func(i, j int) bool {
		a, b := rep.Rows[i], rep.Rows[j]
		if la, lb := a.Month.Label(), b.Month.Label(); la != lb {
			return la < lb
		}
		return a.Subject < b.Subject
	})
	sort.Slice(rep.Totals, func(i, j int) bool {
		return rep.Totals[i].Month.Label() < rep.Totals[j].Month.Label()
	})

	for i := range rep.Rows {
		rep.Rows[i].Index = i + 1
	}
	for i := range rep.Totals {
		rep.Totals[i].Index = i + 1
	}
	return rep
}

// AdminDashboard projects every student's records, sorted by
// (display name, month label, subject), with per-display-name totals over the
// filtered scope. names maps login ID to display name; records for a login
// ID missing from names are grouped under the login ID itself.
func AdminDashboard(records []models.HourRecord, names map[string]string, f Filter) AdminReport {
	var rep AdminReport
	totals := make(map[string]int)

	for _, rec := range records {
		name, ok := names[rec.LoginID]
		if !ok {
			name = rec.LoginID
		}
		if !f.matchStudent(name) || !f.matchMonth(rec.Month) {
			continue
		}
		for subject, hours := range rec.Subjects {
			rep.Rows = append(rep.Rows, Row{
				DisplayName: name,
				Subject:     subject,
				Hours:       hours,
				Month:       rec.Month,
			})
		}
		totals[name] += rec.Subjects.Total()
	}

	sort.Slice(rep.Rows, func(i, j int) bool {
		a, b := rep.Rows[i], rep.Rows[j]
		if a.DisplayName != b.DisplayName {
			return a.DisplayName < b.DisplayName
		}
		if la, lb := a.Month.Label(), b.Month.Label(); la != lb {
			return la < lb
		}
		return a.Subject < b.Subject
	})
	for i := range rep.Rows {
		rep.Rows[i].Index = i + 1
	}

	for name, hours := range totals {
		rep.Totals = append(rep.Totals, StudentTotal{DisplayName: name, Hours: hours})
	}
	sort.Slice(rep.Totals, func(i, j int) bool {
		return rep.Totals[i].DisplayName < rep.Totals[j].DisplayName
	})
	for i := range rep.Totals {
		rep.Totals[i].Index = i + 1
	}
	return rep
}
