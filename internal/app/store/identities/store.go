// internal/app/store/identities/store.go
package identities

// Terminology: Identifiers
//   - LoginID / loginID / login_id: The case-sensitive string a student types to log in
//   - DisplayName / display_name: The registered name, always stored uppercase

import (
	"context"
	"errors"
	"strings"

	"github.com/dalemusser/studyhours/internal/domain/models"
)

var (
	// ErrDuplicateIdentity is returned when registering a login ID that already exists.
	ErrDuplicateIdentity = errors.New("User already exists!")
	// ErrInvalidCredentials is returned for an unknown login ID or a wrong password.
	// The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("Invalid username or password!")
	// ErrNotFound is returned by Get when no identity has the login ID.
	ErrNotFound = errors.New("identity not found")
)

// Store holds registered identities. There are no update or delete operations.
type Store interface {
	// Register stores a new identity with a one-way hash of password and the
	// uppercased display name. No state changes when it fails.
	Register(ctx context.Context, loginID, password, displayName string) (models.Identity, error)

	// Authenticate returns the identity when the password matches its hash.
	Authenticate(ctx context.Context, loginID, password string) (models.Identity, error)

	// Get loads an identity by exact login ID.
	Get(ctx context.Context, loginID string) (models.Identity, error)

	// DisplayNames returns login ID → display name for every identity.
	DisplayNames(ctx context.Context) (map[string]string, error)

	// EnsureAdmin seeds the bootstrap administrator if it does not exist yet.
	// It reports whether a new record was created.
	EnsureAdmin(ctx context.Context, password string) (bool, error)
}

// DisplayName normalizes a registered name for storage.
func DisplayName(s string) string {
	return strings.ToUpper(s)
}

var (
	_ Store = (*Memory)(nil)
	_ Store = (*Mongo)(nil)
)
