package ai

import (
	"context"
	"errors"
	"net/http"
)

//go:generate mockgen -source=provider.go -destination=mock/mock_provider.go -package=mock

// TextProvider generates free text from a prompt.
type TextProvider interface {
	// Name returns the provider name.
	Name() string
	// Model returns the model used for completions.
	Model() string
	// Complete generates a response without streaming.
	Complete(ctx context.Context, systemPrompt, content string) (string, error)
	// Test sends a short message and returns the response.
	Test(ctx context.Context) (string, error)
}

// Config holds the configuration for a text provider.
type Config struct {
	Provider    string // openai, anthropic, compatible, gemini, cohere
	APIKey      string
	BaseURL     string // optional for openai/anthropic, required for compatible
	Model       string
	MaxTokens   int
	Temperature float64
	HTTPClient  *http.Client // optional, used by SDKs that accept one
}

// ProviderType constants
const (
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderCompatible = "compatible"
	ProviderGemini     = "gemini"
	ProviderCohere     = "cohere"
)

const (
	defaultMaxTokens = 150
	testPrompt       = "Reply with the single word: boo"
)

var (
	ErrInvalidProvider = errors.New("invalid provider")
	ErrMissingAPIKey   = errors.New("API key is required")
	ErrMissingBaseURL  = errors.New("base URL is required for compatible provider")
	ErrMissingModel    = errors.New("model is required")
	ErrEmptyCompletion = errors.New("provider returned no text")
)

// NewProvider creates a text provider based on the config.
func NewProvider(ctx context.Context, cfg Config) (TextProvider, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Model == "" {
		return nil, ErrMissingModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}

	switch cfg.Provider {
	case ProviderOpenAI:
		return NewOpenAIProvider(cfg)
	case ProviderAnthropic:
		return NewAnthropicProvider(cfg)
	case ProviderCompatible:
		if cfg.BaseURL == "" {
			return nil, ErrMissingBaseURL
		}
		return NewCompatibleProvider(cfg)
	case ProviderGemini:
		return NewGeminiProvider(ctx, cfg)
	case ProviderCohere:
		return NewCohereProvider(cfg)
	default:
		return nil, ErrInvalidProvider
	}
}
