// internal/domain/models/hours.go
package models

// SubjectHours maps a subject name (case-sensitive) to an hour count.
type SubjectHours map[string]int

// Total returns the sum of all subject hours.
func (h SubjectHours) Total() int {
	total := 0
	for _, v := range h {
		total += v
	}
	return total
}

// Add merges other into h additively. New subjects are inserted.
func (h SubjectHours) Add(other SubjectHours) {
	for subject, hours := range other {
		h[subject] += hours
	}
}

// Clone returns an independent copy of h.
func (h SubjectHours) Clone() SubjectHours {
	out := make(SubjectHours, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}

// HourRecord holds cumulative hours for one identity in one month.
type HourRecord struct {
	LoginID  string
	Month    Month
	Subjects SubjectHours
}
