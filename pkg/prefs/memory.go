package prefs

import (
	"context"
	"sync"
)

// MemoryStore keeps the theme in memory.
type MemoryStore struct {
	mu    sync.RWMutex
	theme Theme
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Theme(ctx context.Context) (Theme, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.theme == "" {
		return DefaultTheme, nil
	}
	return s.theme, nil
}

func (s *MemoryStore) SetTheme(ctx context.Context, t Theme) error {
	if err := validate(t); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = t
	return nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
