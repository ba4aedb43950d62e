package entity

import (
	"time"

	"github.com/google/uuid"
)

// DocumentReference points a per-session display name at a content hash.
// Many references may share one blob.
type DocumentReference struct {
	SessionID   string
	DisplayName string
	ContentHash string
}

// IngestionRecord is an audit entry written for every processed upload.
type IngestionRecord struct {
	Id        uuid.UUID
	EventType string
	Details   map[string]interface{}
	CreatedAt time.Time
}
