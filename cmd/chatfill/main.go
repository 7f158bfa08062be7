package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"docfill/internal/extract"
	"docfill/internal/llm"
	"docfill/internal/llm/groq"
)

// chatfill runs one extraction turn from the command line:
//
//	chatfill [-offline] "<message>" "[Key One]" "[Key Two]" ...
func main() {
	_ = godotenv.Load()

	offline := flag.Bool("offline", false, "skip the suggestion collaborator and use deterministic fallbacks only")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	args := flag.Args()
	if len(args) < 2 {
		logger.Error("usage: chatfill [-offline] <message> <key> [key...]")
		os.Exit(2)
	}
	message, pending := args[0], args[1:]

	var suggester llm.Suggester
	if !*offline {
		if os.Getenv("GROQ_API_KEY") == "" {
			logger.Error("GROQ_API_KEY env var is required (or pass -offline)")
			os.Exit(2)
		}
		suggester = groq.NewClient(groq.Config{}, logger)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	p := extract.NewPipeline(suggester, logger)
	out := p.Extract(ctx, message, pending)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logger.Error("encoding output", "error", err)
		os.Exit(1)
	}
}
