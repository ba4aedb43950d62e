package dto

type UploadDocumentResponse struct {
	Filename     string `json:"filename"`
	ContentHash  string `json:"content_hash"`
	SizeBytes    int    `json:"size_bytes"`
	Deduplicated bool   `json:"deduplicated"`
}

type ListDocumentsResponse struct {
	Documents []DocumentInfo `json:"documents"`
}

type DocumentInfo struct {
	Filename    string `json:"filename"`
	ContentHash string `json:"content_hash"`
}

type IngestionRecordResponse struct {
	Id        string                 `json:"id"`
	EventType string                 `json:"event_type"`
	Details   map[string]interface{} `json:"details"`
	CreatedAt string                 `json:"created_at"`
}
