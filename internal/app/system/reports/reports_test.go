package reports

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/studyhours/internal/domain/models"
)

var (
	sep2024 = models.Month{Year: 2024, Month: time.September}
	oct2024 = models.Month{Year: 2024, Month: time.October}
	jan2025 = models.Month{Year: 2025, Month: time.January}
)

func fixture() ([]models.HourRecord, map[string]string) {
	records := []models.HourRecord{
		{LoginID: "bob", Month: oct2024, Subjects: models.SubjectHours{"Math": 1}},
		{LoginID: "alice", Month: oct2024, Subjects: models.SubjectHours{"Science": 5, "Math": 5}},
		{LoginID: "alice", Month: sep2024, Subjects: models.SubjectHours{"History": 2}},
		{LoginID: "alice", Month: jan2025, Subjects: models.SubjectHours{"Art": 4}},
	}
	names := map[string]string{"alice": "ALICE", "bob": "BOB"}
	return records, names
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter("", "")
	if err != nil {
		t.Fatalf("ParseFilter empty: %v", err)
	}
	if f.Student != "" || f.Month != nil {
		t.Errorf("empty filter = %+v, want zero", f)
	}

	f, err = ParseFilter("alice", "2024-10")
	if err != nil {
		t.Fatalf("ParseFilter: %v", err)
	}
	if f.Month == nil || *f.Month != oct2024 {
		t.Errorf("Month = %v, want %v", f.Month, oct2024)
	}

	if _, err := ParseFilter("", "October 2024"); !errors.Is(err, models.ErrMonthFormat) {
		t.Errorf("ParseFilter(bad month) err = %v, want ErrMonthFormat", err)
	}
}

func TestAdminDashboard_FilterByStudentAndMonth(t *testing.T) {
	records, names := fixture()
	f, err := ParseFilter("alice", "2024-10")
	if err != nil {
		t.Fatalf("ParseFilter: %v", err)
	}

	rep := AdminDashboard(records, names, f)

	want := []Row{
		{Index: 1, DisplayName: "ALICE", Subject: "Math", Hours: 5, Month: oct2024},
		{Index: 2, DisplayName: "ALICE", Subject: "Science", Hours: 5, Month: oct2024},
	}
	if len(rep.Rows) != len(want) {
		t.Fatalf("rows = %+v, want %+v", rep.Rows, want)
	}
	for i := range want {
		if rep.Rows[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, rep.Rows[i], want[i])
		}
		if rep.Rows[i].MonthLabel() != "October 2024" {
			t.Errorf("row %d label = %q", i, rep.Rows[i].MonthLabel())
		}
	}
	if len(rep.Totals) != 1 || rep.Totals[0] != (StudentTotal{Index: 1, DisplayName: "ALICE", Hours: 10}) {
		t.Errorf("totals = %+v, want ALICE 10", rep.Totals)
	}
}

func TestAdminDashboard_UnfilteredOrdering(t *testing.T) {
	records, names := fixture()
	rep := AdminDashboard(records, names, Filter{})

	type key struct {
		name    string
		month   models.Month
		subject string
	}
	// Months order by their label text, as the reports have always shown them.
	want := []key{
		{"ALICE", jan2025, "Art"},
		{"ALICE", oct2024, "Math"},
		{"ALICE", oct2024, "Science"},
		{"ALICE", sep2024, "History"},
		{"BOB", oct2024, "Math"},
	}
	if len(rep.Rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(rep.Rows), len(want))
	}
	for i, w := range want {
		got := key{rep.Rows[i].DisplayName, rep.Rows[i].Month, rep.Rows[i].Subject}
		if got != w {
			t.Errorf("row %d = %+v, want %+v", i, got, w)
		}
		if rep.Rows[i].Index != i+1 {
			t.Errorf("row %d index = %d", i, rep.Rows[i].Index)
		}
	}

	wantTotals := []StudentTotal{
		{Index: 1, DisplayName: "ALICE", Hours: 16},
		{Index: 2, DisplayName: "BOB", Hours: 1},
	}
	if len(rep.Totals) != len(wantTotals) {
		t.Fatalf("totals = %+v", rep.Totals)
	}
	for i := range wantTotals {
		if rep.Totals[i] != wantTotals[i] {
			t.Errorf("total %d = %+v, want %+v", i, rep.Totals[i], wantTotals[i])
		}
	}
}

func TestAdminDashboard_SharedDisplayNamesMerge(t *testing.T) {
	records := []models.HourRecord{
		{LoginID: "a1", Month: oct2024, Subjects: models.SubjectHours{"Math": 2}},
		{LoginID: "a2", Month: oct2024, Subjects: models.SubjectHours{"Math": 3}},
	}
	names := map[string]string{"a1": "ALICE", "a2": "ALICE"}

	rep := AdminDashboard(records, names, Filter{Student: "Alice"})
	if len(rep.Rows) != 2 {
		t.Errorf("rows = %d, want 2", len(rep.Rows))
	}
	if len(rep.Totals) != 1 || rep.Totals[0].Hours != 5 {
		t.Errorf("totals = %+v, want one ALICE total of 5", rep.Totals)
	}
}

func TestAdminDashboard_NoMatch(t *testing.T) {
	records, names := fixture()
	rep := AdminDashboard(records, names, Filter{Student: "carol"})
	if len(rep.Rows) != 0 || len(rep.Totals) != 0 {
		t.Errorf("report = %+v, want empty", rep)
	}
}

func TestUserDashboard(t *testing.T) {
	records, _ := fixture()
	var alice []models.HourRecord
	for _, r := range records {
		if r.LoginID == "alice" {
			alice = append(alice, r)
		}
	}

	rep := UserDashboard("ALICE", alice, Filter{})
	if len(rep.Rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(rep.Rows))
	}
	if rep.Rows[0].Subject != "Art" || rep.Rows[3].Subject != "History" {
		t.Errorf("rows not in month label order: %+v", rep.Rows)
	}
	wantTotals := []MonthTotal{
		{Index: 1, Month: jan2025, Hours: 4},
		{Index: 2, Month: oct2024, Hours: 10},
		{Index: 3, Month: sep2024, Hours: 2},
	}
	for i := range wantTotals {
		if rep.Totals[i] != wantTotals[i] {
			t.Errorf("total %d = %+v, want %+v", i, rep.Totals[i], wantTotals[i])
		}
	}

	m := jan2025
	rep = UserDashboard("ALICE", alice, Filter{Month: &m, Student: "ignored"})
	if len(rep.Rows) != 1 || rep.Rows[0].Subject != "Art" || rep.Rows[0].Index != 1 {
		t.Errorf("filtered rows = %+v", rep.Rows)
	}
	if len(rep.Totals) != 1 || rep.Totals[0].MonthLabel() != "January 2025" {
		t.Errorf("filtered totals = %+v", rep.Totals)
	}
}

func TestDashboards_SortByMonthLabel(t *testing.T) {
	apr2025 := models.Month{Year: 2025, Month: time.April}
	records := []models.HourRecord{
		{LoginID: "alice", Month: oct2024, Subjects: models.SubjectHours{"Math": 1}},
		{LoginID: "alice", Month: apr2025, Subjects: models.SubjectHours{"Math": 2}},
	}
	names := map[string]string{"alice": "ALICE"}

	tests := []struct {
		name   string
		labels func() []string
	}{
		{"admin", func() []string {
			var out []string
			for _, r := range AdminDashboard(records, names, Filter{}).Rows {
				out = append(out, r.MonthLabel())
			}
			return out
		}},
		{"user rows", func() []string {
			var out []string
			for _, r := range UserDashboard("ALICE", records, Filter{}).Rows {
				out = append(out, r.MonthLabel())
			}
			return out
		}},
		{"user totals", func() []string {
			var out []string
			for _, tot := range UserDashboard("ALICE", records, Filter{}).Totals {
				out = append(out, tot.MonthLabel())
			}
			return out
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := strings.Join(tt.labels(), ", ")
			if want := "April 2025, October 2024"; got != want {
				t.Errorf("order = %q, want %q", got, want)
			}
		})
	}
}

func TestTextReport(t *testing.T) {
	got := TextReport("ALICE", oct2024, models.SubjectHours{"Science": 1, "Math": 5})
	want := "Study Hours Report for \"ALICE\" for the month of \"October 2024\":\n" +
		"1. Math: 5 hours.\n" +
		"2. Science: 1 hour.\n" +
		"3. Total Study Hours: 6 hours.\n"
	if got != want {
		t.Errorf("TextReport =\n%s\nwant\n%s", got, want)
	}

	empty := TextReport("BOB", oct2024, nil)
	if !strings.HasSuffix(empty, "1. Total Study Hours: 0 hours.\n") {
		t.Errorf("empty TextReport = %q", empty)
	}
}

func TestWriteAdminCSV(t *testing.T) {
	records, names := fixture()
	rep := AdminDashboard(records, names, Filter{Student: "bob"})

	var buf bytes.Buffer
	if err := WriteAdminCSV(&buf, rep); err != nil {
		t.Fatalf("WriteAdminCSV: %v", err)
	}
	want := "#,student,month,subject,hours\n1,BOB,October 2024,Math,1\n"
	if buf.String() != want {
		t.Errorf("csv = %q, want %q", buf.String(), want)
	}
}
