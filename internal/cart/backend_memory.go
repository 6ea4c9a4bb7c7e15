package cart

import (
	"context"
	"sync"
)

type MemBackend struct {
	mu sync.RWMutex
	m  map[string][]Entry
}

func NewMemBackend() *MemBackend {
	return &MemBackend{m: make(map[string][]Entry)}
}

func (b *MemBackend) Load(ctx context.Context, ns string) ([]Entry, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]Entry, len(b.m[ns]))
	copy(out, b.m[ns])
	return out, nil
}

func (b *MemBackend) Save(ctx context.Context, ns string, entries []Entry) error {
	cp := make([]Entry, len(entries))
	copy(cp, entries)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.m[ns] = cp
	return nil
}

func (b *MemBackend) Delete(ctx context.Context, ns string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.m, ns)
	return nil
}

func (b *MemBackend) Ping(ctx context.Context) error { return nil }
