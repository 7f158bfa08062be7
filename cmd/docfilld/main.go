package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"docfill/internal/common"
	"docfill/internal/export"
	"docfill/internal/extract"
	"docfill/internal/llm/groq"
	"docfill/internal/repository"
	"docfill/internal/server"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := repository.Open(ctx, repository.Config{
		DSN:              cfg.Database.DSN,
		MaxConns:         cfg.Database.MaxConns,
		MinConns:         cfg.Database.MinConns,
		MaxConnLifetime:  cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:  cfg.Database.MaxConnIdleTime,
		DialTimeout:      cfg.Database.DialTimeout,
		StatementTimeout: cfg.Database.StatementTimeout,
	}, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer repository.Close(pool, logger)

	if err := repository.Migrate(ctx, pool, logger); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	var suggester *groq.Client
	if cfg.LLM.APIKey != "" {
		suggester = groq.NewClient(groq.Config{
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.BaseURL,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			MaxTokens:   cfg.LLM.MaxTokens,
			Timeout:     cfg.LLM.Timeout,
		}, logger)
	} else {
		logger.Warn("GROQ_API_KEY not set, running with deterministic fallbacks only")
	}

	sessions := repository.NewSessionRepository(pool, logger)
	documents := repository.NewDocumentRepository(pool, logger)
	placeholders := repository.NewPlaceholderRepository(pool, logger)
	messages := repository.NewMessageRepository(pool, logger)
	suggestions := repository.NewSuggestionRepository(pool, logger)

	deps := server.Deps{
		Sessions:     sessions,
		Documents:    documents,
		Placeholders: placeholders,
		Messages:     messages,
		Suggestions:  suggestions,
		Exporter:     export.NewService(sessions, placeholders, logger),
	}
	if suggester != nil {
		deps.Pipeline = extract.NewPipeline(suggester, logger)
	} else {
		deps.Pipeline = extract.NewPipeline(nil, logger)
	}

	svc := server.NewService(deps, logger)
	srv := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           svc.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http serving", "addr", cfg.Server.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
	logger.Info("stopped")
}
