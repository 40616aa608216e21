package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nightfall/internal/config"
	"nightfall/internal/db"
	"nightfall/internal/handler"
	transport "nightfall/internal/http"
	"nightfall/internal/logger"
	"nightfall/internal/model"
	"nightfall/internal/network"
	"nightfall/internal/repository"
	"nightfall/internal/service"
	"nightfall/internal/service/ai"
	"nightfall/internal/snowflake"
)

const shutdownTimeout = 10 * time.Second

// @title Nightfall API
// @version 1.0
// @description Generates a short illustrated scary story on demand.
// @BasePath /api
func main() {
	if err := run(); err != nil {
		logger.Error("server exited", "module", "server", "action", "start", "resource", "server", "result", "failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Init(logger.ParseLevel(cfg.LogLevel))

	if err := snowflake.Init(cfg.SnowflakeNode); err != nil {
		return fmt.Errorf("init snowflake: %w", err)
	}

	dbConn, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer dbConn.Close()

	ctx := context.Background()
	clients := network.NewClientFactory(network.StaticProxy(cfg.ProxyURL))
	upstream := clients.NewHTTPClient(ctx, cfg.UpstreamTimeout)

	text, err := ai.NewProvider(ctx, ai.Config{
		Provider:    cfg.Text.Provider,
		APIKey:      cfg.TextAPIKey(),
		BaseURL:     cfg.Text.BaseURL,
		Model:       cfg.Text.Model,
		MaxTokens:   cfg.Text.MaxTokens,
		Temperature: cfg.Text.Temperature,
		HTTPClient:  upstream,
	})
	if err != nil {
		return fmt.Errorf("create text provider %q: %w", cfg.Text.Provider, err)
	}
	if closer, ok := text.(io.Closer); ok {
		defer closer.Close()
	}

	images, err := ai.NewOpenAIImageProvider(ai.ImageConfig{
		APIKey:     cfg.Keys.OpenAI,
		BaseURL:    cfg.Image.BaseURL,
		Model:      cfg.Image.Model,
		HTTPClient: upstream,
	})
	if err != nil {
		return fmt.Errorf("create image provider: %w", err)
	}

	defaults := model.StorySettings{
		Variant:    cfg.Story.Variant,
		Strict:     cfg.Story.Strict,
		ImageCount: cfg.Image.Count,
		ImageSize:  cfg.Image.Size,
		ImageStyle: cfg.Image.Style,
	}
	if !ai.SupportsImageStyle(cfg.Image.Model) {
		defaults.ImageStyle = ""
	}
	if err := service.ValidateStorySettings(defaults, cfg.Image.Model); err != nil {
		return fmt.Errorf("story defaults: %w", err)
	}

	settingsRepo := repository.NewSettingsRepository(dbConn)

	settingsService := service.NewSettingsService(settingsRepo, text, defaults, cfg.Image.Model)
	seedService := service.NewSeedService(cfg.SeedFeedURL, clients)
	storyService := service.NewStoryService(text, images, settingsService, seedService)

	storyHandler := handler.NewStoryHandler(storyService, !cfg.IsProduction())
	settingsHandler := handler.NewSettingsHandler(settingsService)
	healthHandler := handler.NewHealthHandler()

	router := transport.NewRouter(storyHandler, settingsHandler, healthHandler, cfg.StaticDir)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "module", "server", "action", "start", "resource", "server", "result", "ok",
			"addr", cfg.Addr(), "env", cfg.AppEnv, "provider", text.Name(), "model", text.Model(), "image_model", cfg.Image.Model)
		if err := router.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-sigCtx.Done():
	}

	logger.Info("shutting down", "module", "server", "action", "stop", "resource", "server", "result", "ok")
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	return router.Shutdown(shutdownCtx)
}
