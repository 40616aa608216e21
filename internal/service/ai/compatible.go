package ai

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// CompatibleProvider implements TextProvider for OpenAI-compatible APIs.
// This supports services like OpenRouter, Azure OpenAI, Ollama, etc.
type CompatibleProvider struct {
	client      openai.Client
	model       string
	maxTokens   int
	temperature float64
}

// NewCompatibleProvider creates a new OpenAI-compatible provider.
func NewCompatibleProvider(cfg Config) (*CompatibleProvider, error) {
	if cfg.BaseURL == "" {
		return nil, ErrMissingBaseURL
	}
	return &CompatibleProvider{
		client:      openai.NewClient(openAIOptions(cfg.APIKey, cfg.BaseURL, cfg.HTTPClient)...),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}, nil
}

func (p *CompatibleProvider) Name() string {
	return ProviderCompatible
}

func (p *CompatibleProvider) Model() string {
	return p.model
}

func (p *CompatibleProvider) Test(ctx context.Context) (string, error) {
	return p.Complete(ctx, "", testPrompt)
}

// Complete generates a response without streaming. Reasoning is switched off
// explicitly because several gateways enable it by default and it eats the
// small token budget.
func (p *CompatibleProvider) Complete(ctx context.Context, systemPrompt, content string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(p.model),
		Messages:    chatMessages(systemPrompt, content),
		MaxTokens:   openai.Int(int64(p.maxTokens)),
		Temperature: openai.Float(p.temperature),
	}

	return chatComplete(ctx, p.client, params, option.WithJSONSet("reasoning", map[string]interface{}{
		"enabled": false,
	}))
}
