package normalize

import "testing"

func TestName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Alice A", "Alice A"},
		{"  Alice A  ", "Alice A"},
		{"alice a", "alice a"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Name(tt.input); got != tt.want {
				t.Errorf("Name(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMonthAndQueryParam(t *testing.T) {
	if got := Month(" 2024-10 "); got != "2024-10" {
		t.Errorf("Month = %q, want 2024-10", got)
	}
	if got := QueryParam("\talice\n"); got != "alice" {
		t.Errorf("QueryParam = %q, want alice", got)
	}
}
