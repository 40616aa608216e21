package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"nightfall/internal/logger"
	"nightfall/internal/model"
	"nightfall/internal/repository"
	"nightfall/internal/service/ai"
)

// Setting keys
const (
	KeyStoryVariant    = "story.variant"
	KeyStoryStrict     = "story.strict"
	KeyStoryImageCount = "story.image_count"
	KeyStoryImageSize  = "story.image_size"
	KeyStoryImageStyle = "story.image_style"

	storyKeyPrefix = "story."
)

// StorySettingsPatch carries a partial update. Nil fields are left unchanged.
type StorySettingsPatch struct {
	Variant    *string `json:"variant"`
	Strict     *bool   `json:"strict"`
	ImageCount *int    `json:"imageCount"`
	ImageSize  *string `json:"imageSize"`
	ImageStyle *string `json:"imageStyle"`
}

// SettingsService provides settings management.
type SettingsService interface {
	// GetStorySettings returns stored settings over the environment defaults.
	GetStorySettings(ctx context.Context) (model.StorySettings, error)
	// SetStorySettings validates and stores a partial update and returns the result.
	SetStorySettings(ctx context.Context, patch StorySettingsPatch) (model.StorySettings, error)
	// TestProvider sends a short prompt to the text provider.
	TestProvider(ctx context.Context) (string, error)
}

type settingsService struct {
	repo       repository.SettingsRepository
	text       ai.TextProvider
	defaults   model.StorySettings
	imageModel string
}

// NewSettingsService creates a new settings service. Image size and style
// updates are checked against imageModel.
func NewSettingsService(repo repository.SettingsRepository, text ai.TextProvider, defaults model.StorySettings, imageModel string) SettingsService {
	return &settingsService{repo: repo, text: text, defaults: defaults, imageModel: imageModel}
}

func (s *settingsService) GetStorySettings(ctx context.Context) (model.StorySettings, error) {
	settings := s.defaults

	stored, err := s.repo.GetByPrefix(ctx, storyKeyPrefix)
	if err != nil {
		return model.StorySettings{}, fmt.Errorf("load story settings: %w", err)
	}
	for _, item := range stored {
		switch item.Key {
		case KeyStoryVariant:
			settings.Variant = item.Value
		case KeyStoryStrict:
			settings.Strict = item.Value == "true"
		case KeyStoryImageCount:
			if n, err := strconv.Atoi(item.Value); err == nil {
				settings.ImageCount = n
			}
		case KeyStoryImageSize:
			settings.ImageSize = item.Value
		case KeyStoryImageStyle:
			settings.ImageStyle = item.Value
		}
	}
	return settings, nil
}

func (s *settingsService) SetStorySettings(ctx context.Context, patch StorySettingsPatch) (model.StorySettings, error) {
	settings, err := s.GetStorySettings(ctx)
	if err != nil {
		return model.StorySettings{}, err
	}

	values := make(map[string]string)
	if patch.Variant != nil {
		settings.Variant = strings.ToLower(strings.TrimSpace(*patch.Variant))
		values[KeyStoryVariant] = settings.Variant
	}
	if patch.Strict != nil {
		settings.Strict = *patch.Strict
		values[KeyStoryStrict] = strconv.FormatBool(settings.Strict)
	}
	if patch.ImageCount != nil {
		settings.ImageCount = *patch.ImageCount
		values[KeyStoryImageCount] = strconv.Itoa(settings.ImageCount)
	}
	if patch.ImageSize != nil {
		settings.ImageSize = strings.TrimSpace(*patch.ImageSize)
		values[KeyStoryImageSize] = settings.ImageSize
	}
	if patch.ImageStyle != nil {
		settings.ImageStyle = strings.ToLower(strings.TrimSpace(*patch.ImageStyle))
		values[KeyStoryImageStyle] = settings.ImageStyle
	}

	if err := ValidateStorySettings(settings, s.imageModel); err != nil {
		return model.StorySettings{}, err
	}
	if err := s.repo.SetMany(ctx, values); err != nil {
		logger.Error("story settings save failed", "module", "service", "action", "update", "resource", "settings", "result", "failed", "error", err)
		return model.StorySettings{}, fmt.Errorf("save story settings: %w", err)
	}
	logger.Info("story settings updated", "module", "service", "action", "update", "resource", "settings", "result", "ok", "keys", len(values))
	return settings, nil
}

func (s *settingsService) TestProvider(ctx context.Context) (string, error) {
	reply, err := s.text.Test(ctx)
	if err != nil {
		logger.Warn("provider test failed", "module", "service", "action", "fetch", "resource", "ai", "result", "failed", "provider", s.text.Name(), "model", s.text.Model(), "error", err)
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	logger.Info("provider test ok", "module", "service", "action", "fetch", "resource", "ai", "result", "ok", "provider", s.text.Name(), "model", s.text.Model())
	return reply, nil
}

// ValidateStorySettings reports the first invalid field wrapped in ErrInvalid.
// Size and style are checked against what imageModel accepts.
func ValidateStorySettings(settings model.StorySettings, imageModel string) error {
	switch settings.Variant {
	case model.VariantSingle, model.VariantLegend:
	default:
		return fmt.Errorf("%w: variant must be %q or %q", ErrInvalid, model.VariantSingle, model.VariantLegend)
	}
	if settings.ImageCount < 1 || settings.ImageCount > model.MaxImageCount {
		return fmt.Errorf("%w: imageCount must be between 1 and %d", ErrInvalid, model.MaxImageCount)
	}
	if !ai.SupportsImageSize(imageModel, settings.ImageSize) {
		return fmt.Errorf("%w: imageSize %q is not supported by %s", ErrInvalid, settings.ImageSize, imageModel)
	}
	if !ai.SupportsImageStyle(imageModel) {
		if settings.ImageStyle != "" {
			return fmt.Errorf("%w: imageStyle is not supported by %s", ErrInvalid, imageModel)
		}
		return nil
	}
	switch settings.ImageStyle {
	case model.ImageStyleVivid, model.ImageStyleNatural:
	default:
		return fmt.Errorf("%w: imageStyle must be %q or %q", ErrInvalid, model.ImageStyleVivid, model.ImageStyleNatural)
	}
	return nil
}
