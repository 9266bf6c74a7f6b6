// internal/app/store/hours/memory.go
package hours

import (
	"context"
	"sync"

	"github.com/dalemusser/studyhours/internal/domain/models"
)

// Memory keeps identity → month → subject → hours for the lifetime of the
// process. A single lock serializes merges so concurrent uploads for the
// same identity and month never lose updates.
type Memory struct {
	mu   sync.RWMutex
	data map[string]map[models.Month]models.SubjectHours
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]map[models.Month]models.SubjectHours)}
}

// Merge adds hours into the (loginID, month) bucket. An empty batch leaves no
// trace, matching the Mongo store, which only stores subjects.
func (m *Memory) Merge(ctx context.Context, loginID string, month models.Month, hours models.SubjectHours) error {
	if len(hours) == 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	months, ok := m.data[loginID]
	if !ok {
		months = make(map[models.Month]models.SubjectHours)
		m.data[loginID] = months
	}
	subjects, ok := months[month]
	if !ok {
		subjects = make(models.SubjectHours, len(hours))
		months[month] = subjects
	}
	subjects.Add(hours)
	return nil
}

func (m *Memory) RecordsFor(ctx context.Context, loginID string) ([]models.HourRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.records(loginID), nil
}

func (m *Memory) All(ctx context.Context) ([]models.HourRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.HourRecord
	for loginID := range m.data {
		out = append(out, m.records(loginID)...)
	}
	return out, nil
}

// records copies the months of one identity. Callers hold m.mu.
func (m *Memory) records(loginID string) []models.HourRecord {
	months := m.data[loginID]
	out := make([]models.HourRecord, 0, len(months))
	for month, subjects := range months {
		out = append(out, models.HourRecord{
			LoginID:  loginID,
			Month:    month,
			Subjects: subjects.Clone(),
		})
	}
	return out
}
