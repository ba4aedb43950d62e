package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"ai-docchat-be/internal/dto"
	"ai-docchat-be/internal/repository/memory"
	"ai-docchat-be/pkg/contentstore"
	"ai-docchat-be/pkg/contextbuilder"
	"ai-docchat-be/pkg/llm"

	"github.com/stretchr/testify/assert"
)

// capturingProvider records the last prompt and options it was called with.
type capturingProvider struct {
	lastHistory []llm.Message
	lastOptions llm.Options
	response    string
	err         error
}

func (p *capturingProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	p.lastHistory = history
	p.lastOptions = *llm.ResolveOptions(llm.Options{}, options...)
	if p.err != nil {
		return "", p.err
	}
	return p.response, nil
}

func (p *capturingProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

func newTestChatService(provider llm.LLMProvider) (IChatService, contentstore.Store, *memory.ReferenceRepository) {
	store := contentstore.New(contentstore.NewMemoryBackend())
	refRepo := memory.NewReferenceRepository(time.Hour)
	providers := map[string]llm.LLMProvider{"anthropic": provider}
	svc := NewChatService(refRepo, store, providers, "anthropic", nopLogger{}, 60000)
	return svc, store, refRepo
}

func seedDocument(t *testing.T, store contentstore.Store, refRepo *memory.ReferenceRepository, sessionID, name, text string) {
	t.Helper()
	ctx := context.Background()
	hash, _, err := store.Put(ctx, text)
	assert.NoError(t, err)
	assert.NoError(t, refRepo.AddReference(ctx, sessionID, name, string(hash)))
}

func TestSendChatGroundsPromptInDocuments(t *testing.T) {
	provider := &capturingProvider{response: "The program cost is $5M, per budget.txt."}
	svc, store, refRepo := newTestChatService(provider)

	seedDocument(t, store, refRepo, "s1", "budget.txt", "Program cost is $5M.")

	res, err := svc.SendChat(context.Background(), "s1", &dto.ChatRequest{
		Message: "What is the program cost?",
	})
	assert.NoError(t, err)
	assert.Equal(t, "The program cost is $5M, per budget.txt.", res.Response)

	assert.Len(t, provider.lastHistory, 1)
	prompt := provider.lastHistory[0].Content
	// The document text flows into the prompt verbatim under its label.
	assert.Contains(t, prompt, "Document: budget.txt\nContent: Program cost is $5M.\n")
	assert.Contains(t, prompt, "What is the program cost?")
	assert.NotEmpty(t, provider.lastOptions.SystemPrompt)
}

func TestSendChatIncludesSectionDrafts(t *testing.T) {
	provider := &capturingProvider{response: "ok"}
	svc, store, refRepo := newTestChatService(provider)

	seedDocument(t, store, refRepo, "s1", "doc.txt", "document body")

	_, err := svc.SendChat(context.Background(), "s1", &dto.ChatRequest{
		Message: "review the draft",
		Sections: []dto.SectionDraftRequest{
			{Title: "Executive Summary", Text: "Program Alpha modernizes logistics."},
		},
	})
	assert.NoError(t, err)

	prompt := provider.lastHistory[0].Content
	assert.Contains(t, prompt, "Section: Executive Summary\nContent: Program Alpha modernizes logistics.\n")
	// Documents precede sections.
	assert.Less(t,
		strings.Index(prompt, "Document: doc.txt"),
		strings.Index(prompt, "Section: Executive Summary"),
	)
}

func TestSendChatScopesToRequestedDocuments(t *testing.T) {
	provider := &capturingProvider{response: "ok"}
	svc, store, refRepo := newTestChatService(provider)

	seedDocument(t, store, refRepo, "s1", "wanted.txt", "the wanted text")
	seedDocument(t, store, refRepo, "s1", "other.txt", "the other text")

	names := []string{"wanted.txt"}
	_, err := svc.SendChat(context.Background(), "s1", &dto.ChatRequest{
		Message:       "question",
		DocumentNames: &names,
	})
	assert.NoError(t, err)

	prompt := provider.lastHistory[0].Content
	assert.Contains(t, prompt, "wanted.txt")
	assert.NotContains(t, prompt, "other.txt")
}

func TestSendChatReportsUnavailableDocuments(t *testing.T) {
	provider := &capturingProvider{response: "ok"}
	svc, store, refRepo := newTestChatService(provider)
	ctx := context.Background()

	seedDocument(t, store, refRepo, "s1", "alive.txt", "still here")
	// A reference whose blob was purged out from under it.
	assert.NoError(t, refRepo.AddReference(ctx, "s1", "gone.txt", "deadbeefdeadbeefdeadbeefdeadbeef"))

	res, err := svc.SendChat(ctx, "s1", &dto.ChatRequest{Message: "question"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"gone.txt"}, res.UnavailableDocuments)
	assert.Contains(t, provider.lastHistory[0].Content, "alive.txt")
}

func TestSendChatNoContent(t *testing.T) {
	provider := &capturingProvider{response: "ok"}
	svc, _, _ := newTestChatService(provider)

	_, err := svc.SendChat(context.Background(), "empty-session", &dto.ChatRequest{
		Message: "anything there?",
	})
	assert.ErrorIs(t, err, contextbuilder.ErrNoContent)
}

func TestSendChatUnknownPromptId(t *testing.T) {
	provider := &capturingProvider{response: "ok"}
	svc, store, refRepo := newTestChatService(provider)

	seedDocument(t, store, refRepo, "s1", "doc.txt", "body")

	_, err := svc.SendChat(context.Background(), "s1", &dto.ChatRequest{
		Message:  "question",
		PromptId: "no-such-prompt",
	})

	var invalid *llm.InvalidRequestError
	assert.ErrorAs(t, err, &invalid)
}

func TestSendChatEchoesResolvedProvider(t *testing.T) {
	provider := &capturingProvider{response: "ok"}
	svc, store, refRepo := newTestChatService(provider)

	seedDocument(t, store, refRepo, "s1", "doc.txt", "body")

	// The default backend answers when the request leaves the choice open.
	res, err := svc.SendChat(context.Background(), "s1", &dto.ChatRequest{Message: "question"})
	assert.NoError(t, err)
	assert.Equal(t, "anthropic", res.Provider)

	// Aliases normalize to the canonical name.
	res, err = svc.SendChat(context.Background(), "s1", &dto.ChatRequest{
		Message:  "question",
		Provider: "Claude",
	})
	assert.NoError(t, err)
	assert.Equal(t, "anthropic", res.Provider)
}

func TestSendChatRoutesToRequestedProvider(t *testing.T) {
	anthropicProv := &capturingProvider{response: "from anthropic"}
	openaiProv := &capturingProvider{response: "from openai"}
	store := contentstore.New(contentstore.NewMemoryBackend())
	refRepo := memory.NewReferenceRepository(time.Hour)
	providers := map[string]llm.LLMProvider{
		"anthropic": anthropicProv,
		"openai":    openaiProv,
	}
	svc := NewChatService(refRepo, store, providers, "anthropic", nopLogger{}, 60000)

	seedDocument(t, store, refRepo, "s1", "doc.txt", "body")

	res, err := svc.SendChat(context.Background(), "s1", &dto.ChatRequest{
		Message:  "question",
		Provider: "gpt",
	})
	assert.NoError(t, err)
	assert.Equal(t, "from openai", res.Response)
	assert.Equal(t, "openai", res.Provider)
	assert.Nil(t, anthropicProv.lastHistory)
}

func TestSendChatRejectsUnknownProvider(t *testing.T) {
	provider := &capturingProvider{response: "ok"}
	svc, store, refRepo := newTestChatService(provider)

	seedDocument(t, store, refRepo, "s1", "doc.txt", "body")

	_, err := svc.SendChat(context.Background(), "s1", &dto.ChatRequest{
		Message:  "question",
		Provider: "llama",
	})
	assert.ErrorIs(t, err, llm.ErrUnsupportedProvider)
	assert.Nil(t, provider.lastHistory)

	// Known alias but no backend configured for it.
	_, err = svc.SendChat(context.Background(), "s1", &dto.ChatRequest{
		Message:  "question",
		Provider: "gemini",
	})
	assert.ErrorIs(t, err, llm.ErrUnsupportedProvider)
}

func TestSendChatPromptTemplateOverridesSystemPrompt(t *testing.T) {
	provider := &capturingProvider{response: "ok"}
	svc, store, refRepo := newTestChatService(provider)

	seedDocument(t, store, refRepo, "s1", "doc.txt", "body")

	_, err := svc.SendChat(context.Background(), "s1", &dto.ChatRequest{
		Message:        "question",
		PromptTemplate: "You are a terse auditor.",
	})
	assert.NoError(t, err)
	assert.Equal(t, "You are a terse auditor.", provider.lastOptions.SystemPrompt)
}

func TestSendChatSuggestsSectionFromResponse(t *testing.T) {
	provider := &capturingProvider{response: "This belongs in the risk assessment portion of the strategy."}
	svc, store, refRepo := newTestChatService(provider)

	seedDocument(t, store, refRepo, "s1", "doc.txt", "body")

	res, err := svc.SendChat(context.Background(), "s1", &dto.ChatRequest{Message: "where does this go?"})
	assert.NoError(t, err)
	assert.Equal(t, "Risk Assessment", res.SuggestedSection)
}

func TestSendChatTargetSectionWinsOverDetection(t *testing.T) {
	provider := &capturingProvider{response: "Mentions market research throughout."}
	svc, store, refRepo := newTestChatService(provider)

	seedDocument(t, store, refRepo, "s1", "doc.txt", "body")

	res, err := svc.SendChat(context.Background(), "s1", &dto.ChatRequest{
		Message:       "question",
		TargetSection: "Contract Types",
	})
	assert.NoError(t, err)
	assert.Equal(t, "Contract Types", res.TargetSection)
	assert.Equal(t, "Contract Types", res.SuggestedSection)
}

func TestSendChatPropagatesProviderErrors(t *testing.T) {
	provider := &capturingProvider{err: &llm.RetryExhaustedError{Attempts: 3, LastErr: llm.ErrEmptyResponse}}
	svc, store, refRepo := newTestChatService(provider)

	seedDocument(t, store, refRepo, "s1", "doc.txt", "body")

	_, err := svc.SendChat(context.Background(), "s1", &dto.ChatRequest{Message: "question"})

	var exhausted *llm.RetryExhaustedError
	assert.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 3, exhausted.Attempts)
}

func TestGetPrompts(t *testing.T) {
	svc, _, _ := newTestChatService(&capturingProvider{})

	prompts := svc.GetPrompts(context.Background())
	assert.NotEmpty(t, prompts)

	prompt, err := svc.GetPrompt(context.Background(), "default")
	assert.NoError(t, err)
	assert.Equal(t, "default", prompt.Id)

	_, err = svc.GetPrompt(context.Background(), "missing")
	assert.ErrorIs(t, err, contentstore.ErrNotFound)
}
