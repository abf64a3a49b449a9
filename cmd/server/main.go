package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blackmichael/instaapp/internal/activity"
	"github.com/blackmichael/instaapp/internal/auth"
	"github.com/blackmichael/instaapp/internal/config"
	"github.com/blackmichael/instaapp/internal/domain"
	"github.com/blackmichael/instaapp/internal/expiry"
	"github.com/blackmichael/instaapp/internal/httpserver"
	"github.com/blackmichael/instaapp/internal/mailer"
	"github.com/blackmichael/instaapp/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up storage (implements every repository port)
	st, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()
	if err := st.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	logger.Info("connected to database")

	var queue domain.ExpiryQueue
	switch cfg.Expiry.Broker {
	case config.BrokerMemory:
		queue = expiry.NewMemoryQueue(cfg.Expiry.Lease)
		if !cfg.Expiry.Sweep {
			logger.Warn("memory expiry broker without sweep loses pending jobs on restart")
		}
	default:
		queue = store.NewJobQueue(st, cfg.Expiry.Lease)
	}

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	hub := activity.NewHub(tokens, cfg.CORSAllowedOrigins, logger)
	defer hub.Close()

	scheduler := domain.NewExpiryScheduler(queue, st, hub, cfg.StoryTTL, cfg.Expiry.Workers, logger)
	graph := domain.NewGraph(st, st, hub)

	svc := httpserver.Services{
		Profiles: domain.NewProfileService(st, auth.BcryptHasher{}, mailer.NewLogMailer(logger, cfg.MailFrom), logger),
		Posts:    domain.NewPostService(st, graph, hub, cfg.FeedIncludeSelf, logger),
		Comments: domain.NewCommentService(st, st, hub),
		Stories:  domain.NewStoryService(st, st, scheduler, hub, logger),
		Ledger:   domain.NewLedger(st, st, st, st, st, st, hub, cfg.StoryTTL),
		Graph:    graph,
		Tokens:   tokens,
		Stream:   hub,
		Ping:     st.Ping,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Start the story expiry worker in the background
	go scheduler.Start(ctx, cfg.Expiry.PollInterval, cfg.Expiry.BatchSize, cfg.Expiry.Sweep)

	// Start the HTTP server
	server := httpserver.NewServer(cfg, svc, logger)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server exited with error", "error", err)
		}
	}()

	logger.Info("server started",
		"port", cfg.Port,
		"hostname", cfg.Hostname,
		"story_ttl", cfg.StoryTTL,
		"expiry_broker", cfg.Expiry.Broker,
	)

	// Wait for shutdown signal
	sig := <-sigCh
	logger.Info("received signal, shutting down", "signal", sig)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("error shutting down http server", "error", err)
	}

	return nil
}
