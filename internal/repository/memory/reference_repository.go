package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"ai-docchat-be/internal/entity"
	"ai-docchat-be/internal/repository/contract"

	gocache "github.com/patrickmn/go-cache"
)

// ReferenceRepository is the in-process ledger used when redis is not
// configured. Each session maps to a name -> hash table stored in go-cache
// under the session TTL, so expiry behaves the same as the redis backend.
type ReferenceRepository struct {
	mu    sync.Mutex
	cache *gocache.Cache
	ttl   time.Duration
}

var _ contract.ReferenceRepository = &ReferenceRepository{}

func NewReferenceRepository(ttl time.Duration) *ReferenceRepository {
	return &ReferenceRepository{
		cache: gocache.New(ttl, 10*time.Minute),
		ttl:   ttl,
	}
}

func (r *ReferenceRepository) table(sessionID string) map[string]string {
	if v, found := r.cache.Get(sessionID); found {
		return v.(map[string]string)
	}
	return nil
}

func (r *ReferenceRepository) AddReference(_ context.Context, sessionID, displayName, contentHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	refs := r.table(sessionID)
	if refs == nil {
		refs = make(map[string]string)
	}
	refs[displayName] = contentHash
	// Re-set to refresh the session window on every write.
	r.cache.Set(sessionID, refs, r.ttl)
	return nil
}

func (r *ReferenceRepository) Resolve(_ context.Context, sessionID string, displayNames []string) ([]entity.DocumentReference, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	refs := r.table(sessionID)

	if displayNames == nil {
		names := make([]string, 0, len(refs))
		for name := range refs {
			names = append(names, name)
		}
		sort.Strings(names)

		out := make([]entity.DocumentReference, 0, len(names))
		for _, name := range names {
			out = append(out, entity.DocumentReference{
				SessionID:   sessionID,
				DisplayName: name,
				ContentHash: refs[name],
			})
		}
		return out, nil
	}

	out := make([]entity.DocumentReference, 0, len(displayNames))
	for _, name := range displayNames {
		hash, ok := refs[name]
		if !ok {
			continue
		}
		out = append(out, entity.DocumentReference{
			SessionID:   sessionID,
			DisplayName: name,
			ContentHash: hash,
		})
	}
	return out, nil
}

func (r *ReferenceRepository) RemoveReference(_ context.Context, sessionID, displayName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	refs := r.table(sessionID)
	if refs == nil {
		return nil
	}
	delete(refs, displayName)
	r.cache.Set(sessionID, refs, r.ttl)
	return nil
}

func (r *ReferenceRepository) Clear(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache.Delete(sessionID)
	return nil
}
