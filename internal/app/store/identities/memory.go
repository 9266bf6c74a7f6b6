// internal/app/store/identities/memory.go
package identities

import (
	"context"
	"sync"
	"time"

	"github.com/dalemusser/studyhours/internal/app/system/authutil"
	"github.com/dalemusser/studyhours/internal/domain/models"
)

// Memory is a process-lifetime identity store.
type Memory struct {
	mu    sync.RWMutex
	table map[string]models.Identity
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{table: make(map[string]models.Identity)}
}

func (m *Memory) Register(ctx context.Context, loginID, password, displayName string) (models.Identity, error) {
	m.mu.RLock()
	_, exists := m.table[loginID]
	m.mu.RUnlock()
	if exists {
		return models.Identity{}, ErrDuplicateIdentity
	}

	hash, err := authutil.HashPassword(password)
	if err != nil {
		return models.Identity{}, err
	}

	id := models.Identity{
		LoginID:      loginID,
		PasswordHash: hash,
		DisplayName:  DisplayName(displayName),
		CreatedAt:    time.Now().UTC(),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// Re-check: another registration may have won while we were hashing.
	if _, exists := m.table[loginID]; exists {
		return models.Identity{}, ErrDuplicateIdentity
	}
	m.table[loginID] = id
	return id, nil
}

func (m *Memory) Authenticate(ctx context.Context, loginID, password string) (models.Identity, error) {
	m.mu.RLock()
	id, ok := m.table[loginID]
	m.mu.RUnlock()
	if !ok || !authutil.CheckPassword(password, id.PasswordHash) {
		return models.Identity{}, ErrInvalidCredentials
	}
	return id, nil
}

func (m *Memory) Get(ctx context.Context, loginID string) (models.Identity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.table[loginID]
	if !ok {
		return models.Identity{}, ErrNotFound
	}
	return id, nil
}

func (m *Memory) DisplayNames(ctx context.Context) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(m.table))
	for loginID, id := range m.table {
		out[loginID] = id.DisplayName
	}
	return out, nil
}

func (m *Memory) EnsureAdmin(ctx context.Context, password string) (bool, error) {
	_, err := m.Register(ctx, models.AdminLoginID, password, models.AdminLoginID)
	if err == ErrDuplicateIdentity {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
