package contentstore

import (
	"context"
	"sync"
)

// MemoryBackend keeps blobs in process memory. Used by tests and by local
// development setups without a database.
type MemoryBackend struct {
	mu    sync.RWMutex
	blobs map[Hash]string
}

var _ Backend = &MemoryBackend{}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{blobs: make(map[Hash]string)}
}

func (b *MemoryBackend) Save(ctx context.Context, hash Hash, content string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.blobs[hash] = content
	return nil
}

func (b *MemoryBackend) Load(ctx context.Context, hash Hash) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	content, ok := b.blobs[hash]
	if !ok {
		return "", ErrNotFound
	}
	return content, nil
}

func (b *MemoryBackend) Exists(ctx context.Context, hash Hash) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.blobs[hash]
	return ok, nil
}

func (b *MemoryBackend) DeleteAll(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.blobs = make(map[Hash]string)
	return nil
}

// Len reports the number of stored blobs. Test helper.
func (b *MemoryBackend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.blobs)
}
