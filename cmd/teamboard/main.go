package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"go.uber.org/zap"

	"github.com/christophergyman/teamboard/internal/api"
	"github.com/christophergyman/teamboard/internal/config"
	"github.com/christophergyman/teamboard/internal/credential"
	"github.com/christophergyman/teamboard/internal/logging"
	"github.com/christophergyman/teamboard/internal/session"
	"github.com/christophergyman/teamboard/internal/tui"
	"github.com/christophergyman/teamboard/internal/window"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "teamboard: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, closeLog, err := logging.New(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := api.New(cfg.APIURL, credential.NewStore(cfg.TokenPath),
		api.WithTimeout(cfg.RequestTimeout),
		api.WithRateLimit(cfg.RequestsPerSecond),
		api.WithLogger(log.Named("api")),
	)
	if err != nil {
		return err
	}

	zones := zone.New()
	defer zones.Close()

	model := tui.New(tui.Deps{
		Context:    ctx,
		Session:    session.NewController(client, log.Named("session")),
		Service:    client,
		Windows:    window.New(),
		Zones:      zones,
		Logger:     log.Named("tui"),
		APIURL:     cfg.APIURL,
		ConfigPath: config.ConfigPath(),
	})

	log.Info("starting", zap.String("api_url", cfg.APIURL))
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
