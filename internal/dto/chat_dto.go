package dto

type SectionDraftRequest struct {
	Title string `json:"title" validate:"required"`
	Text  string `json:"text"`
}

type ChatRequest struct {
	Message string `json:"message" validate:"required"`
	// DocumentNames scopes the request to a subset of the session's
	// documents. Absent (null) means "all referenced documents"; an empty
	// list means "none".
	DocumentNames *[]string             `json:"document_names"`
	Sections      []SectionDraftRequest `json:"sections" validate:"dive"`
	// Provider overrides the configured default for this request only.
	// Accepts the same aliases the factory does (claude, gpt, gemini, ...).
	Provider       string `json:"provider"`
	PromptId       string `json:"prompt_id"`
	PromptTemplate string `json:"prompt_template"`
	TargetSection  string `json:"target_section"`
}

type ChatResponse struct {
	Response             string   `json:"response"`
	Provider             string   `json:"provider"`
	TargetSection        string   `json:"target_section,omitempty"`
	SuggestedSection     string   `json:"suggested_section,omitempty"`
	ContextTruncated     bool     `json:"context_truncated"`
	UnavailableDocuments []string `json:"unavailable_documents,omitempty"`
}
