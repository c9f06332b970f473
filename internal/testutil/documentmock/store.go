package documentmock

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	domain "lending-backend/internal/domain/document"
)

var _ domain.Store = (*Store)(nil)

// Store is an in-memory domain.Store. PutErr, when set, fails every Put.
type Store struct {
	mu      sync.Mutex
	Objects map[string][]byte
	Written map[string]time.Time
	PutErr  error
}

func NewStore() *Store {
	return &Store{Objects: map[string][]byte{}, Written: map[string]time.Time{}}
}

func (s *Store) Put(ctx context.Context, key string, r io.Reader) (int64, error) {
	if s.PutErr != nil {
		return 0, s.PutErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Objects[key] = b
	s.Written[key] = time.Now()
	return int64(len(b)), nil
}

func (s *Store) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.Objects[key]
	if !ok {
		return nil, domain.ErrFileMissing
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Objects, key)
	delete(s.Written, key)
	return nil
}

func (s *Store) ListOlderThan(ctx context.Context, t time.Time) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for k, at := range s.Written {
		if at.Before(t) {
			out = append(out, k)
		}
	}
	return out, nil
}

func (s *Store) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.Objects[key]
	return ok
}
