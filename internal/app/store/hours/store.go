// internal/app/store/hours/store.go
package hours

import (
	"context"

	"github.com/dalemusser/studyhours/internal/domain/models"
)

// Store accumulates study hours per (identity, month, subject).
//
// Merge is additive: uploading the same data twice doubles every subject's
// total, and concurrent merges never lose an increment. Memory applies a
// batch under one lock; Mongo applies each subject as an $inc upsert inside
// one transaction when the server supports it.
// There are no subtract, reset or delete operations.
type Store interface {
	Merge(ctx context.Context, loginID string, month models.Month, hours models.SubjectHours) error

	// RecordsFor returns every month recorded for loginID. Order is not
	// guaranteed; callers sort.
	RecordsFor(ctx context.Context, loginID string) ([]models.HourRecord, error)

	// All returns every record for every identity, unordered.
	All(ctx context.Context) ([]models.HourRecord, error)
}

var (
	_ Store = (*Memory)(nil)
	_ Store = (*Mongo)(nil)
)
