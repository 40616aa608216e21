package service

import (
	"context"
	"fmt"
	"time"

	"nightfall/internal/logger"
	"nightfall/internal/model"
	"nightfall/internal/service/ai"
	"nightfall/internal/snowflake"
)

// Generation is one generated story and the id it was logged under.
type Generation struct {
	ID    int64
	Story model.Story
}

// StoryService generates stories on demand. Nothing is stored.
type StoryService interface {
	Generate(ctx context.Context) (*Generation, error)
}

type storyService struct {
	text     ai.TextProvider
	images   ai.ImageProvider
	settings SettingsService
	seeds    SeedService
}

// NewStoryService creates a story service. seeds may be nil.
func NewStoryService(text ai.TextProvider, images ai.ImageProvider, settings SettingsService, seeds SeedService) StoryService {
	return &storyService{text: text, images: images, settings: settings, seeds: seeds}
}

// GenerationError is a failed generation. ID matches the generation_id
// logged for the attempt.
type GenerationError struct {
	ID  int64
	Err error
}

func (e *GenerationError) Error() string { return e.Err.Error() }

func (e *GenerationError) Unwrap() error { return e.Err }

// Generate runs text generation, field extraction and image generation in
// sequence. Any failure aborts the whole generation; there are no partial
// results. Errors are *GenerationError.
func (s *storyService) Generate(ctx context.Context) (*Generation, error) {
	id := snowflake.NextID().Int64()
	gen, err := s.generate(ctx, id)
	if err != nil {
		return nil, &GenerationError{ID: id, Err: err}
	}
	return gen, nil
}

func (s *storyService) generate(ctx context.Context, id int64) (*Generation, error) {
	start := time.Now()

	settings, err := s.settings.GetStorySettings(ctx)
	if err != nil {
		return nil, err
	}
	logArgs := []any{"generation_id", id, "variant", settings.Variant, "provider", s.text.Name(), "model", s.text.Model()}

	var fields ai.Fields
	var entity string
	switch settings.Variant {
	case model.VariantLegend:
		fields, entity, err = s.writeLegend(ctx, logArgs)
	default:
		fields, err = s.complete(ctx, ai.StoryPrompt, logArgs, ai.FieldTitle, ai.FieldStory)
	}
	if err != nil {
		return nil, err
	}

	title, body := fields.Get(ai.FieldTitle), fields.Get(ai.FieldStory)
	if settings.Strict {
		if title == "" {
			return nil, s.missing(ai.FieldTitle, logArgs)
		}
		if body == "" {
			return nil, s.missing(ai.FieldStory, logArgs)
		}
	}

	urls, err := s.images.Generate(ctx, ai.ImageRequest{
		Prompt: ai.GetImagePrompt(title, body, entity),
		Count:  settings.ImageCount,
		Size:   settings.ImageSize,
		Style:  settings.ImageStyle,
	})
	if err != nil {
		logger.Error("image generation failed", append([]any{"module", "service", "action", "generate", "resource", "image", "result", "failed", "error", err}, logArgs...)...)
		return nil, fmt.Errorf("%w: image generation: %w", ErrUpstream, err)
	}

	if urls == nil {
		urls = []string{}
	}

	logger.Info("story generated", append([]any{"module", "service", "action", "generate", "resource", "story", "result", "ok", "images", len(urls), "duration_ms", time.Since(start).Milliseconds()}, logArgs...)...)
	return &Generation{
		ID:    id,
		Story: model.Story{Title: title, Body: body, Images: urls},
	}, nil
}

// writeLegend picks a location and entity, then writes a story about them.
// Both seed fields are mandatory regardless of strict mode.
func (s *storyService) writeLegend(ctx context.Context, logArgs []any) (ai.Fields, string, error) {
	var inspiration []string
	if s.seeds != nil {
		inspiration = s.seeds.Titles(ctx)
	}

	seed, err := s.complete(ctx, ai.GetLegendSeedPrompt(inspiration), logArgs, ai.FieldLocation, ai.FieldEntity)
	if err != nil {
		return nil, "", err
	}
	location, entity := seed.Get(ai.FieldLocation), seed.Get(ai.FieldEntity)
	if location == "" {
		return nil, "", s.missing(ai.FieldLocation, logArgs)
	}
	if entity == "" {
		return nil, "", s.missing(ai.FieldEntity, logArgs)
	}
	logger.Debug("legend picked", append([]any{"module", "service", "action", "generate", "resource", "story", "result", "ok", "location", location, "entity", entity}, logArgs...)...)

	fields, err := s.complete(ctx, ai.GetLegendStoryPrompt(location, entity), logArgs, ai.FieldTitle, ai.FieldStory)
	if err != nil {
		return nil, "", err
	}
	return fields, entity, nil
}

// complete runs one prompt and extracts only the named fields from the reply.
func (s *storyService) complete(ctx context.Context, prompt string, logArgs []any, names ...string) (ai.Fields, error) {
	start := time.Now()
	raw, err := s.text.Complete(ctx, "", prompt)
	if err != nil {
		logger.Error("text generation failed", append([]any{"module", "service", "action", "generate", "resource", "text", "result", "failed", "error", err}, logArgs...)...)
		return nil, fmt.Errorf("%w: text generation: %w", ErrUpstream, err)
	}
	logger.Debug("text generated", append([]any{"module", "service", "action", "generate", "resource", "text", "result", "ok", "chars", len(raw), "duration_ms", time.Since(start).Milliseconds()}, logArgs...)...)
	return ai.ParseFields(raw, names...), nil
}

func (s *storyService) missing(field string, logArgs []any) error {
	logger.Warn("model output missing field", append([]any{"module", "service", "action", "parse", "resource", "story", "result", "failed", "field", field}, logArgs...)...)
	return fmt.Errorf("%w: %s", ErrMissingContent, field)
}
