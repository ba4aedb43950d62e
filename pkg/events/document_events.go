package events

import "time"

const TypeDocumentIngested = "DOCUMENT_INGESTED"

// DocumentIngested is published after an upload lands in the content store
// and its reference is recorded for the session.
type DocumentIngested struct {
	BaseEvent
}

func NewDocumentIngested(sessionID, displayName, contentHash string, sizeBytes int, deduplicated bool) DocumentIngested {
	return DocumentIngested{
		BaseEvent: BaseEvent{
			Type: TypeDocumentIngested,
			Data: map[string]interface{}{
				"session_id":   sessionID,
				"display_name": displayName,
				"content_hash": contentHash,
				"size_bytes":   sizeBytes,
				"deduplicated": deduplicated,
			},
			OccurredAt: time.Now(),
		},
	}
}
