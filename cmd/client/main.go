package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"nightfall/internal/config"
	"nightfall/internal/countdown"
	"nightfall/internal/logger"
	"nightfall/internal/storyclient"
	"nightfall/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "nightfall:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadClient()
	if err != nil {
		return err
	}

	logFile, err := logger.InitFile(cfg.LogFile, logger.ParseLevel(cfg.LogLevel))
	if err != nil {
		return err
	}
	defer logFile.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	client := storyclient.New(cfg.ServerURL, &http.Client{Timeout: cfg.HTTPTimeout})
	cd := countdown.New(countdown.NewFileStore(cfg.StateFile), client, nil)
	if err := cd.Load(); err != nil {
		return err
	}

	logger.Info("client started", "module", "client", "action", "start", "resource", "client", "result", "ok", "server", cfg.ServerURL, "state_file", cfg.StateFile)
	_, err = tea.NewProgram(tui.New(ctx, cd), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
