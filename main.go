package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"

	"github.com/t8wy/coverbot/internal/artwork"
	"github.com/t8wy/coverbot/internal/bot"
	"github.com/t8wy/coverbot/internal/config"
	"github.com/t8wy/coverbot/internal/errmsg"
	"github.com/t8wy/coverbot/internal/groups"
	"github.com/t8wy/coverbot/internal/i18n"
	"github.com/t8wy/coverbot/internal/interactions"
	"github.com/t8wy/coverbot/internal/itunes"
	"github.com/t8wy/coverbot/internal/session"
	"github.com/t8wy/coverbot/internal/state"
	"github.com/t8wy/coverbot/internal/telegram"
)

func run() error {
	// A missing .env is fine; the environment and config files are
	// consulted either way.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = filepath.Join(xdg.DataHome, "coverbot")
	}

	var store *state.Manager
	if cfg.DataDir != "" {
		store, err = state.OpenPath(filepath.Join(dataDir, "coverbot.db"))
	} else {
		store, err = state.Open()
	}
	if err != nil {
		return fmt.Errorf("open state database: %w", err)
	}
	defer store.Close()

	ilog, err := interactions.Open(filepath.Join(dataDir, "interactions"), logger)
	if err != nil {
		return fmt.Errorf("open interaction log: %w", err)
	}

	client := itunes.NewClient()
	core := bot.New(cfg,
		client,
		artwork.NewFetcher(),
		groups.NewCoordinator(client, logger),
		session.NewStore(),
		ilog,
		store,
		i18n.New(cfg.DefaultLanguage),
		logger,
	)

	adapter, err := telegram.New(cfg.BotToken, core, cfg.TempDir, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("bot running", "data_dir", dataDir)

	if err := adapter.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logger.Info("shutting down")
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpInitialize, err))
		os.Exit(1)
	}
}
