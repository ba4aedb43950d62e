package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ai-docchat-be/internal/constant"
	"ai-docchat-be/internal/dto"
	"ai-docchat-be/internal/pkg/logger"
	"ai-docchat-be/internal/repository/contract"
	"ai-docchat-be/pkg/contentstore"
	"ai-docchat-be/pkg/contextbuilder"
	"ai-docchat-be/pkg/llm"
	"ai-docchat-be/pkg/llm/factory"
)

type IChatService interface {
	SendChat(ctx context.Context, sessionID string, req *dto.ChatRequest) (*dto.ChatResponse, error)
	GetPrompts(ctx context.Context) []constant.Prompt
	GetPrompt(ctx context.Context, id string) (*constant.Prompt, error)
}

// chatService answers questions grounded in the session's documents plus
// any section drafts sent with the request. It reads state, never writes.
type chatService struct {
	referenceRepo   contract.ReferenceRepository
	blobStore       contentstore.Store
	providers       map[string]llm.LLMProvider
	defaultProvider string
	log             logger.ILogger
	charBudget      int
}

// NewChatService takes the full provider table keyed by canonical name so a
// request can pick any configured backend. defaultProvider is used when the
// request leaves the choice open.
func NewChatService(
	referenceRepo contract.ReferenceRepository,
	blobStore contentstore.Store,
	providers map[string]llm.LLMProvider,
	defaultProvider string,
	log logger.ILogger,
	charBudget int,
) IChatService {
	return &chatService{
		referenceRepo:   referenceRepo,
		blobStore:       blobStore,
		providers:       providers,
		defaultProvider: defaultProvider,
		log:             log,
		charBudget:      charBudget,
	}
}

// resolveProvider maps the request's provider alias to a configured backend.
func (s *chatService) resolveProvider(requested string) (llm.LLMProvider, string, error) {
	name := requested
	if strings.TrimSpace(name) == "" {
		name = s.defaultProvider
	}
	canonical, err := factory.Resolve(name)
	if err != nil {
		return nil, "", err
	}
	provider, ok := s.providers[canonical]
	if !ok {
		return nil, "", fmt.Errorf("provider %q: %w", canonical, llm.ErrUnsupportedProvider)
	}
	return provider, canonical, nil
}

func (s *chatService) SendChat(ctx context.Context, sessionID string, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	provider, providerName, err := s.resolveProvider(req.Provider)
	if err != nil {
		return nil, err
	}

	var requested []string
	if req.DocumentNames != nil {
		requested = *req.DocumentNames
		if requested == nil {
			requested = []string{}
		}
	}

	refs, err := s.referenceRepo.Resolve(ctx, sessionID, requested)
	if err != nil {
		return nil, err
	}

	// A blob missing under a live reference means storage was purged out
	// from under the session. The document is reported as unavailable and
	// the rest of the request proceeds.
	documents := make([]contextbuilder.Document, 0, len(refs))
	var unavailable []string
	for _, ref := range refs {
		text, err := s.blobStore.Get(ctx, contentstore.Hash(ref.ContentHash))
		if err != nil {
			if errors.Is(err, contentstore.ErrNotFound) {
				unavailable = append(unavailable, ref.DisplayName)
				continue
			}
			return nil, err
		}
		documents = append(documents, contextbuilder.Document{
			Name: ref.DisplayName,
			Text: text,
		})
	}

	sections := make([]contextbuilder.Section, 0, len(req.Sections))
	for _, sec := range req.Sections {
		sections = append(sections, contextbuilder.Section{
			Title: sec.Title,
			Text:  sec.Text,
		})
	}

	result := contextbuilder.Assemble(documents, sections, s.charBudget)
	if result.Included == 0 {
		return nil, contextbuilder.ErrNoContent
	}

	systemPrompt := constant.SystemPrompt
	if req.PromptTemplate != "" {
		systemPrompt = req.PromptTemplate
	}
	if req.PromptId != "" {
		prompt, found := constant.FindPrompt(req.PromptId)
		if !found {
			return nil, &llm.InvalidRequestError{Reason: fmt.Sprintf("unknown prompt id %q", req.PromptId)}
		}
		systemPrompt = prompt.Prompt
		if req.TargetSection == "" {
			req.TargetSection = prompt.TargetSection
		}
	}

	userPrompt := fmt.Sprintf(constant.UserPromptTemplate, result.Context, req.Message)

	s.log.Info("chat_service", "dispatching chat", map[string]interface{}{
		"session_id":     sessionID,
		"provider":       providerName,
		"num_documents":  len(documents),
		"num_sections":   len(sections),
		"context_length": len(result.Context),
		"truncated":      result.Truncated,
	})

	response, err := provider.Chat(ctx,
		[]llm.Message{{Role: "user", Content: userPrompt}},
		llm.WithSystemPrompt(systemPrompt),
	)
	if err != nil {
		return nil, err
	}

	suggested := req.TargetSection
	if suggested == "" {
		suggested = detectSuggestedSection(response)
	}

	return &dto.ChatResponse{
		Response:             response,
		Provider:             providerName,
		TargetSection:        req.TargetSection,
		SuggestedSection:     suggested,
		ContextTruncated:     result.Truncated,
		UnavailableDocuments: unavailable,
	}, nil
}

// detectSuggestedSection returns the first canonical section name mentioned
// in the response, matching case-insensitively.
func detectSuggestedSection(response string) string {
	lower := strings.ToLower(response)
	for _, section := range constant.AcquisitionSections {
		if strings.Contains(lower, strings.ToLower(section)) {
			return section
		}
	}
	return ""
}

func (s *chatService) GetPrompts(_ context.Context) []constant.Prompt {
	return constant.PromptLibrary
}

func (s *chatService) GetPrompt(_ context.Context, id string) (*constant.Prompt, error) {
	prompt, found := constant.FindPrompt(id)
	if !found {
		return nil, fmt.Errorf("prompt %q: %w", id, contentstore.ErrNotFound)
	}
	return &prompt, nil
}
