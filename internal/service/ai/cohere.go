package ai

import (
	"context"
	"net/http"
	"strings"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
)

// CohereProvider implements TextProvider for the Cohere chat API.
type CohereProvider struct {
	client      *cohereclient.Client
	model       string
	maxTokens   int
	temperature float64
}

// NewCohereProvider creates a new Cohere provider. cfg.BaseURL is ignored.
func NewCohereProvider(cfg Config) (*CohereProvider, error) {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	client := cohereclient.NewClient(
		cohereclient.WithToken(cfg.APIKey),
		cohereclient.WithHTTPClient(httpClient),
	)
	return &CohereProvider{
		client:      client,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}, nil
}

func (p *CohereProvider) Name() string {
	return ProviderCohere
}

func (p *CohereProvider) Model() string {
	return p.model
}

func (p *CohereProvider) Test(ctx context.Context) (string, error) {
	return p.Complete(ctx, "", testPrompt)
}

// Complete generates a response without streaming. The system prompt is sent
// as the chat preamble.
func (p *CohereProvider) Complete(ctx context.Context, systemPrompt, content string) (string, error) {
	req := &cohere.ChatRequest{
		Message:     content,
		Model:       ptr(p.model),
		MaxTokens:   ptr(p.maxTokens),
		Temperature: ptr(p.temperature),
	}
	if systemPrompt != "" {
		req.Preamble = ptr(systemPrompt)
	}

	resp, err := p.client.Chat(ctx, req)
	if err != nil {
		return "", err
	}
	if resp == nil {
		return "", ErrEmptyCompletion
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}

func ptr[T any](v T) *T {
	return &v
}
