package game

import (
	"context"
	"sync"

	"github.com/merev/gsr-api/internal/domain"
)

// FakeRepository is a programmable Repository for tests. Without overrides
// it keeps the last saved game in memory.
type FakeRepository struct {
	SaveFn  func(ctx context.Context, g *domain.Game) error
	LoadFn  func(ctx context.Context) (*domain.Game, error)
	ClearFn func(ctx context.Context) error

	mu    sync.Mutex
	game  *domain.Game
	trace []string
}

// NewFakeRepository returns a fake holding g, which may be nil.
func NewFakeRepository(g *domain.Game) *FakeRepository {
	return &FakeRepository{game: g}
}

func (f *FakeRepository) Save(ctx context.Context, g *domain.Game) error {
	f.record("Save")
	if f.SaveFn != nil {
		return f.SaveFn(ctx, g)
	}
	f.mu.Lock()
	f.game = g
	f.mu.Unlock()
	return nil
}

func (f *FakeRepository) Load(ctx context.Context) (*domain.Game, error) {
	f.record("Load")
	if f.LoadFn != nil {
		return f.LoadFn(ctx)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.game, nil
}

func (f *FakeRepository) Clear(ctx context.Context) error {
	f.record("Clear")
	if f.ClearFn != nil {
		return f.ClearFn(ctx)
	}
	f.mu.Lock()
	f.game = nil
	f.mu.Unlock()
	return nil
}

// Stored returns the game held by the default in-memory behaviour.
func (f *FakeRepository) Stored() *domain.Game {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.game
}

// Trace returns the names of the calls made so far.
func (f *FakeRepository) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeRepository) record(call string) {
	f.mu.Lock()
	f.trace = append(f.trace, call)
	f.mu.Unlock()
}
