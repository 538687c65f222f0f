package settings

import (
	"context"
	"sync"
)

// Store persists Settings. Load never returns ErrNotFound: absent settings
// resolve to the store's defaults.
type Store interface {
	Load(ctx context.Context) (Settings, error)
	Save(ctx context.Context, s Settings) error
	Delete(ctx context.Context) error
}

// MemoryStore is a process-local Store.
type MemoryStore struct {
	mu       sync.Mutex
	current  *Settings
	defaults []string
}

func NewMemoryStore(defaults []string) *MemoryStore {
	return &MemoryStore{defaults: Normalize(defaults)}
}

func (m *MemoryStore) Load(ctx context.Context) (Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return Defaults(m.defaults), nil
	}
	s := *m.current
	s.GenericTexts = append([]string(nil), m.current.GenericTexts...)
	return s.withFallback(m.defaults), nil
}

func (m *MemoryStore) Save(ctx context.Context, s Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.GenericTexts = Normalize(s.GenericTexts)
	m.current = &s
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = nil
	return nil
}
