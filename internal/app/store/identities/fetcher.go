// internal/app/store/identities/fetcher.go
package identities

import (
	"context"
	"errors"

	"github.com/dalemusser/studyhours/internal/app/system/auth"
	"github.com/dalemusser/studyhours/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Fetcher implements auth.UserFetcher over an identity Store so the
// session layer always sees the stored display name.
type Fetcher struct {
	store  Store
	logger *zap.Logger
}

// NewFetcher creates a UserFetcher backed by store.
func NewFetcher(store Store, logger *zap.Logger) *Fetcher {
	return &Fetcher{store: store, logger: logger}
}

// FetchUser returns nil if the identity is missing or the lookup fails.
func (f *Fetcher) FetchUser(ctx context.Context, loginID string) *auth.SessionUser {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	id, err := f.store.Get(ctx, loginID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			f.logger.Warn("identity lookup failed", zap.String("login_id", loginID), zap.Error(err))
		}
		return nil
	}
	return &auth.SessionUser{
		LoginID: id.LoginID,
		Name:    id.DisplayName,
		Role:    id.Role(),
	}
}

var _ auth.UserFetcher = (*Fetcher)(nil)
