package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiProvider implements TextProvider for Google Gemini.
// The underlying client holds a connection and must be closed.
type GeminiProvider struct {
	client      *genai.Client
	model       string
	maxTokens   int
	temperature float64
}

// NewGeminiProvider creates a new Gemini provider. The Gemini SDK dials its
// own transport, so cfg.HTTPClient is not used.
func NewGeminiProvider(ctx context.Context, cfg Config) (*GeminiProvider, error) {
	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(cfg.BaseURL))
	}

	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiProvider{
		client:      client,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}, nil
}

func (p *GeminiProvider) Name() string {
	return ProviderGemini
}

func (p *GeminiProvider) Model() string {
	return p.model
}

func (p *GeminiProvider) Test(ctx context.Context) (string, error) {
	return p.Complete(ctx, "", testPrompt)
}

// Complete generates a response without streaming.
func (p *GeminiProvider) Complete(ctx context.Context, systemPrompt, content string) (string, error) {
	model := p.client.GenerativeModel(p.model)
	model.SetTemperature(float32(p.temperature))
	model.SetMaxOutputTokens(int32(p.maxTokens))
	if systemPrompt != "" {
		model.SystemInstruction = genai.NewUserContent(genai.Text(systemPrompt))
	}

	resp, err := model.GenerateContent(ctx, genai.Text(content))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
		// Only the first candidate with content is used.
		if b.Len() > 0 {
			break
		}
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}

// Close releases the Gemini client connection.
func (p *GeminiProvider) Close() error {
	return p.client.Close()
}
