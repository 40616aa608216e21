package ai

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/openai/openai-go"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=image.go -destination=mock/mock_image.go -package=mock

// ImageProvider turns a prompt into hosted image URLs.
type ImageProvider interface {
	Name() string
	Generate(ctx context.Context, req ImageRequest) ([]string, error)
}

// ImageRequest describes one image generation call.
type ImageRequest struct {
	Prompt string
	Count  int
	Size   string // e.g. 1024x1024
	Style  string // vivid or natural, dall-e-3 only
}

// ImageConfig holds the configuration for the image provider.
type ImageConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

var (
	ErrMissingPrompt = errors.New("image prompt is required")
	ErrNoImages      = errors.New("provider returned no images")
)

// OpenAIImageProvider implements ImageProvider with the OpenAI images API.
type OpenAIImageProvider struct {
	client openai.Client
	model  string
}

// NewOpenAIImageProvider creates a new OpenAI image provider.
func NewOpenAIImageProvider(cfg ImageConfig) (*OpenAIImageProvider, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Model == "" {
		return nil, ErrMissingModel
	}
	return &OpenAIImageProvider{
		client: openai.NewClient(openAIOptions(cfg.APIKey, cfg.BaseURL, cfg.HTTPClient)...),
		model:  cfg.Model,
	}, nil
}

func (p *OpenAIImageProvider) Name() string {
	return ProviderOpenAI
}

// Generate returns exactly req.Count URLs in request order or an error.
// dall-e-3 accepts n=1 only, so larger counts fan out into parallel calls.
func (p *OpenAIImageProvider) Generate(ctx context.Context, req ImageRequest) ([]string, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, ErrMissingPrompt
	}
	count := req.Count
	if count <= 0 {
		count = 1
	}

	if !singleImageModel(p.model) || count == 1 {
		return p.generate(ctx, req, count)
	}

	urls := make([]string, count)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < count; i++ {
		g.Go(func() error {
			out, err := p.generate(gctx, req, 1)
			if err != nil {
				return err
			}
			urls[i] = out[0]
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}

func (p *OpenAIImageProvider) generate(ctx context.Context, req ImageRequest, n int) ([]string, error) {
	params := openai.ImageGenerateParams{
		Prompt:         req.Prompt,
		Model:          openai.ImageModel(p.model),
		N:              openai.Int(int64(n)),
		ResponseFormat: openai.ImageGenerateParamsResponseFormatURL,
	}
	if req.Size != "" {
		params.Size = openai.ImageGenerateParamsSize(req.Size)
	}
	if req.Style != "" && singleImageModel(p.model) {
		params.Style = openai.ImageGenerateParamsStyle(req.Style)
	}

	resp, err := p.client.Images.Generate(ctx, params)
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(resp.Data))
	for _, img := range resp.Data {
		if img.URL != "" {
			urls = append(urls, img.URL)
		}
	}
	if len(urls) < n {
		return nil, ErrNoImages
	}
	return urls[:n], nil
}

func singleImageModel(model string) bool {
	return strings.EqualFold(model, "dall-e-3")
}

var imageSizes = map[string][]string{
	"dall-e-2":    {"256x256", "512x512", "1024x1024"},
	"dall-e-3":    {"1024x1024", "1792x1024", "1024x1792"},
	"gpt-image-1": {"1024x1024", "1536x1024", "1024x1536"},
}

// SupportsImageSize reports whether model accepts size. Unknown models
// accept any size a known model does.
func SupportsImageSize(model, size string) bool {
	if sizes, ok := imageSizes[strings.ToLower(model)]; ok {
		return slices.Contains(sizes, size)
	}
	for _, sizes := range imageSizes {
		if slices.Contains(sizes, size) {
			return true
		}
	}
	return false
}

// SupportsImageStyle reports whether model takes a style parameter.
func SupportsImageStyle(model string) bool {
	return singleImageModel(model)
}
