package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/timmy/newsdeck/internal/config"
	"github.com/timmy/newsdeck/internal/deck"
	"github.com/timmy/newsdeck/internal/feed"
	"github.com/timmy/newsdeck/internal/logger"
	"github.com/timmy/newsdeck/internal/pager"
	"github.com/timmy/newsdeck/internal/tui"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "Path to config file")
	endpoint := flag.String("endpoint", "", "News endpoint, overrides feed.endpoint")
	limit := flag.Int("limit", 0, "Page size, overrides feed.limit")
	autoplay := flag.Bool("autoplay", false, "Advance slides automatically every deck.autoplay_delay")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if *endpoint != "" {
		cfg.Feed.Endpoint = *endpoint
	}
	if *limit > 0 {
		cfg.Feed.Limit = *limit
	}

	// The terminal belongs to the TUI, so logs only go to the rotating file.
	envCfg := logger.LoadFromEnv("newsdeck-reader")
	logFile := &lumberjack.Logger{
		Filename:   envCfg.LogFile,
		MaxSize:    envCfg.MaxSize,
		MaxBackups: envCfg.MaxBackups,
		MaxAge:     envCfg.MaxAge,
		Compress:   envCfg.Compress,
	}
	defer logFile.Close()
	envCfg.Output = logFile
	appLogger := logger.NewFromEnv(envCfg)
	logger.SetDefaultLogger(appLogger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	client := feed.NewClient(cfg.Feed.Endpoint,
		feed.WithTimeout(cfg.Feed.Timeout),
		feed.WithUserAgent(cfg.Feed.UserAgent),
		feed.WithLogger(appLogger),
	)

	d := deck.New(deck.Options{
		Direction:            cfg.Deck.Direction,
		Loop:                 cfg.Deck.Loop,
		AutoplayDelay:        cfg.Deck.AutoplayDelay,
		DisableOnInteraction: cfg.Deck.DisableOnInteraction,
		Keyboard:             cfg.Deck.Keyboard,
	})

	events := tui.NewEvents(64)
	p, err := pager.New(client, d, cfg.Feed.Limit,
		pager.WithThreshold(cfg.Feed.Threshold),
		pager.WithTimeout(cfg.Feed.Timeout),
		pager.WithErrorHandler(events.FetchFailed),
		pager.WithLogger(appLogger),
	)
	if err != nil {
		return fmt.Errorf("failed to create pager: %w", err)
	}
	defer p.Close()

	unsubscribe := d.OnPositionChanged(events.Position)
	defer unsubscribe()
	p.Bind(ctx, d)

	if *autoplay {
		go d.Autoplay(ctx)
	}

	appLogger.WithFields(logger.Fields{
		logger.FieldEndpoint: cfg.Feed.Endpoint,
		logger.FieldLimit:    cfg.Feed.Limit,
	}).Info("Starting reader")

	program := tea.NewProgram(
		tui.NewModel(ctx, d, p, events),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	appLogger.Info("Reader exited")
	return nil
}
