package models

import (
	"errors"
	"testing"
	"time"
)

func TestParseMonth(t *testing.T) {
	tests := []struct {
		raw       string
		want      Month
		wantLabel string
		wantErr   bool
	}{
		{raw: "2024-10", want: Month{2024, time.October}, wantLabel: "October 2024"},
		{raw: "2023-01", want: Month{2023, time.January}, wantLabel: "January 2023"},
		{raw: "1999-12", want: Month{1999, time.December}, wantLabel: "December 1999"},
		{raw: "2024-13", wantErr: true},
		{raw: "2024-00", wantErr: true},
		{raw: "0000-10", wantErr: true},
		{raw: "0001-01", want: Month{1, time.January}, wantLabel: "January 1"},
		{raw: "October 2024", wantErr: true},
		{raw: "2024/10", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseMonth(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrMonthFormat) {
					t.Fatalf("ParseMonth(%q) error = %v, want ErrMonthFormat", tt.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMonth(%q) unexpected error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("ParseMonth(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
			if got.Label() != tt.wantLabel {
				t.Errorf("Label() = %q, want %q", got.Label(), tt.wantLabel)
			}
			if got.Key() != tt.raw {
				t.Errorf("Key() = %q, want %q", got.Key(), tt.raw)
			}
		})
	}
}

func TestParseMonth_Pure(t *testing.T) {
	a, errA := ParseMonth("2024-10")
	b, errB := ParseMonth("2024-10")
	if errA != nil || errB != nil {
		t.Fatalf("unexpected errors: %v, %v", errA, errB)
	}
	if a != b || a.Label() != b.Label() {
		t.Errorf("ParseMonth is not deterministic: %v vs %v", a, b)
	}
}

// Distinct valid inputs must never collapse into the same label bucket.
func TestMonthLabel_Injective(t *testing.T) {
	seen := make(map[string]string)
	for year := 1990; year <= 2040; year++ {
		for month := time.January; month <= time.December; month++ {
			m := Month{Year: year, Month: month}
			raw := m.Key()
			parsed, err := ParseMonth(raw)
			if err != nil {
				t.Fatalf("ParseMonth(%q): %v", raw, err)
			}
			label := parsed.Label()
			if prev, ok := seen[label]; ok {
				t.Fatalf("label %q produced by both %q and %q", label, prev, raw)
			}
			seen[label] = raw
		}
	}
}
