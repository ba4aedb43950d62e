package contract

import (
	"context"

	"ai-docchat-be/internal/entity"
)

// ReferenceRepository is the session reference ledger: a per-session map
// from display name to content hash. It never owns the blobs it points at.
//
// Concurrent writers to the same (session, name) race under last-write-wins
// semantics; writers to different sessions never contend.
type ReferenceRepository interface {
	// AddReference upserts the mapping for (sessionID, displayName).
	AddReference(ctx context.Context, sessionID, displayName, contentHash string) error

	// Resolve returns the references for the given display names, silently
	// omitting unknown ones. A nil names slice resolves every reference of
	// the session, ordered by display name. An expired or unknown session
	// resolves to an empty list.
	Resolve(ctx context.Context, sessionID string, displayNames []string) ([]entity.DocumentReference, error)

	// RemoveReference drops a single display name from the session.
	RemoveReference(ctx context.Context, sessionID, displayName string) error

	// Clear removes all references for one session only.
	Clear(ctx context.Context, sessionID string) error
}
