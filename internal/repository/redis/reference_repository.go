package redis

import (
	"context"
	"fmt"
	"sort"
	"time"

	"ai-docchat-be/internal/entity"
	"ai-docchat-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

// ReferenceRepository keeps each session's document references in a redis
// hash (display name -> content hash). The key TTL matches the session
// lifetime, so an expired session resolves to nothing while the underlying
// blobs persist.
type ReferenceRepository struct {
	client *redis.Client
	ttl    time.Duration
}

var _ contract.ReferenceRepository = &ReferenceRepository{}

func NewReferenceRepository(client *redis.Client, ttl time.Duration) *ReferenceRepository {
	return &ReferenceRepository{
		client: client,
		ttl:    ttl,
	}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s:docs", sessionID)
}

func (r *ReferenceRepository) AddReference(ctx context.Context, sessionID, displayName, contentHash string) error {
	key := sessionKey(sessionID)
	if err := r.client.HSet(ctx, key, displayName, contentHash).Err(); err != nil {
		return fmt.Errorf("add reference: %w", err)
	}
	// Every write refreshes the session window.
	if err := r.client.Expire(ctx, key, r.ttl).Err(); err != nil {
		return fmt.Errorf("refresh session ttl: %w", err)
	}
	return nil
}

func (r *ReferenceRepository) Resolve(ctx context.Context, sessionID string, displayNames []string) ([]entity.DocumentReference, error) {
	key := sessionKey(sessionID)

	if displayNames == nil {
		all, err := r.client.HGetAll(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("resolve references: %w", err)
		}
		names := make([]string, 0, len(all))
		for name := range all {
			names = append(names, name)
		}
		sort.Strings(names)

		refs := make([]entity.DocumentReference, 0, len(names))
		for _, name := range names {
			refs = append(refs, entity.DocumentReference{
				SessionID:   sessionID,
				DisplayName: name,
				ContentHash: all[name],
			})
		}
		return refs, nil
	}

	if len(displayNames) == 0 {
		return []entity.DocumentReference{}, nil
	}

	values, err := r.client.HMGet(ctx, key, displayNames...).Result()
	if err != nil {
		return nil, fmt.Errorf("resolve references: %w", err)
	}

	refs := make([]entity.DocumentReference, 0, len(displayNames))
	for i, v := range values {
		hash, ok := v.(string)
		if !ok || hash == "" {
			// Unknown names are silently omitted; the caller decides how
			// to handle a partial result.
			continue
		}
		refs = append(refs, entity.DocumentReference{
			SessionID:   sessionID,
			DisplayName: displayNames[i],
			ContentHash: hash,
		})
	}
	return refs, nil
}

func (r *ReferenceRepository) RemoveReference(ctx context.Context, sessionID, displayName string) error {
	if err := r.client.HDel(ctx, sessionKey(sessionID), displayName).Err(); err != nil {
		return fmt.Errorf("remove reference: %w", err)
	}
	return nil
}

func (r *ReferenceRepository) Clear(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("clear session references: %w", err)
	}
	return nil
}
