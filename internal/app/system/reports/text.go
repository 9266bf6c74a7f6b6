package reports

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dalemusser/studyhours/internal/domain/models"
)

// TextReport renders a plain-text monthly report for one student:
//
//	Study Hours Report for "ALICE" for the month of "October 2024":
//	1. Math: 5 hours.
//	2. Science: 1 hour.
//	3. Total Study Hours: 6 hours.
//
// Subjects are listed alphabetically.
func TextReport(displayName string, month models.Month, hours models.SubjectHours) string {
	subjects := make([]string, 0, len(hours))
	for s := range hours {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)

	var b strings.Builder
	fmt.Fprintf(&b, "Study Hours Report for %q for the month of %q:\n", displayName, month.Label())
	for i, s := range subjects {
		fmt.Fprintf(&b, "%d. %s: %d %s.\n", i+1, s, hours[s], hourLabel(hours[s]))
	}
	fmt.Fprintf(&b, "%d. Total Study Hours: %d hours.\n", len(subjects)+1, hours.Total())
	return b.String()
}

func hourLabel(n int) string {
	if n == 1 {
		return "hour"
	}
	return "hours"
}
