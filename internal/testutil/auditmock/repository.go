package auditmock

import (
	"context"
	"sync"

	domain "lending-backend/internal/domain/audit"
)

var _ domain.Repository = (*Repo)(nil)

// Repo records every entry it is given. CreateFn, when set, decides the error.
type Repo struct {
	mu       sync.Mutex
	Entries  []domain.Entry
	CreateFn func(ctx context.Context, e *domain.Entry) error
}

func (m *Repo) Create(ctx context.Context, e *domain.Entry) error {
	if m.CreateFn != nil {
		if err := m.CreateFn(ctx, e); err != nil {
			return err
		}
	}
	m.mu.Lock()
	m.Entries = append(m.Entries, *e)
	m.mu.Unlock()
	return nil
}

func (m *Repo) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Entries)
}
