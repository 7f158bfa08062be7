package main

import (
	"encoding/json"
	"log/slog"
	"os"

	"docfill/internal/discovery"
	"docfill/internal/document"
	"docfill/internal/placeholder"
)

// docscan runs placeholder discovery over a parsed-document JSON file and
// prints the rewritten document plus the discovered keys.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		logger.Error("usage: docscan <document.json>")
		os.Exit(2)
	}

	raw, err := os.ReadFile(os.Args[1])
	if err != nil {
		logger.Error("reading document", "path", os.Args[1], "error", err)
		os.Exit(1)
	}
	doc, err := document.Parse(raw)
	if err != nil {
		logger.Error("parsing document", "path", os.Args[1], "error", err)
		os.Exit(1)
	}

	keys := discovery.Run(doc)

	type keyInfo struct {
		Key  string `json:"key"`
		Type string `json:"type"`
		Hint string `json:"hint"`
	}
	infos := make([]keyInfo, 0, len(keys))
	for _, k := range keys {
		infos = append(infos, keyInfo{
			Key:  k,
			Type: string(placeholder.Classify(k)),
			Hint: placeholder.Hint(k),
		})
	}

	out := struct {
		Document     *document.Document `json:"document"`
		Placeholders []keyInfo          `json:"placeholders"`
	}{Document: doc, Placeholders: infos}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logger.Error("encoding output", "error", err)
		os.Exit(1)
	}
	logger.Info("scan complete", "placeholders", len(keys))
}
