// Command cardscand runs the scan API daemon consumed by the mobile app.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofrs/flock"

	"cardscan/internal/catalog"
	"cardscan/internal/config"
	"cardscan/internal/export"
	"cardscan/internal/history"
	"cardscan/internal/logging"
	"cardscan/internal/notifications"
	"cardscan/internal/pipeline"
	"cardscan/internal/reconcile"
	"cardscan/internal/server"
	"cardscan/internal/services/gemini"
	"cardscan/internal/services/scryfall"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "cardscand: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, _, _, err := config.Load("")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("ensure directories: %w", err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	lock := flock.New(cfg.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire daemon lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another cardscand instance is already running (lock %s)", cfg.LockPath())
	}
	defer func() {
		_ = lock.Unlock()
	}()

	store, err := history.Open(cfg)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer store.Close()

	recognizer := gemini.NewClient(cfg.Gemini.APIKey,
		gemini.WithBaseURL(cfg.Gemini.BaseURL),
		gemini.WithModel(cfg.Gemini.Model),
		gemini.WithTimeout(time.Duration(cfg.Gemini.TimeoutSeconds)*time.Second),
	)

	searcher, err := scryfall.New(cfg.Scryfall.BaseURL,
		scryfall.WithTimeout(time.Duration(cfg.Scryfall.TimeoutSeconds)*time.Second),
	)
	if err != nil {
		return fmt.Errorf("init catalog client: %w", err)
	}

	gate := reconcile.NewGate(store, logger)
	resolver := catalog.NewResolver(searcher, logger)
	pipe := pipeline.New(recognizer, resolver, gate, logger)
	exporter := export.New(store, logger)
	notifier := notifications.NewService(cfg)

	srv := server.New(cfg, logger, pipe, store, gate, exporter, notifier)

	logger.Info("cardscand started",
		logging.String("bind", cfg.Paths.APIBind),
		logging.String("db", store.Path()),
	)

	err = srv.Run(ctx)
	pipe.Wait()
	if err != nil {
		return fmt.Errorf("api server: %w", err)
	}

	logger.Info("cardscand stopped")
	return nil
}
