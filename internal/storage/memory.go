package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/merev/gsr-api/internal/codec"
	"github.com/merev/gsr-api/internal/domain"
)

// MemoryStore holds the encoded snapshot in process memory. Snapshots go
// through the codec so a stored game is decoded the same way as on disk.
type MemoryStore struct {
	mu    sync.RWMutex
	state []byte
}

func NewMemory() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Save(_ context.Context, g *domain.Game) error {
	state, err := codec.Marshal(g)
	if err != nil {
		return fmt.Errorf("encode game: %w", err)
	}
	m.mu.Lock()
	m.state = state
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Load(_ context.Context) (*domain.Game, error) {
	m.mu.RLock()
	state := m.state
	m.mu.RUnlock()

	if state == nil {
		return nil, nil
	}
	return codec.Unmarshal(state)
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	m.state = nil
	m.mu.Unlock()
	return nil
}
