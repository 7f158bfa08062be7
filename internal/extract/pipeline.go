package extract

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"docfill/internal/llm"
	"docfill/internal/normalize"
	"docfill/internal/placeholder"
)

// Pipeline turns a chat message into values for still-unfilled placeholder
// keys. The collaborator is consulted first; deterministic fallbacks cover
// the cases where it returns nothing usable.
type Pipeline struct {
	suggester llm.Suggester
	logger    *slog.Logger
}

func NewPipeline(suggester llm.Suggester, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{suggester: suggester, logger: logger}
}

// Extract maps pending keys to normalized values found in message. Keys not
// present in pending never appear in the result, and values are never empty.
func (p *Pipeline) Extract(ctx context.Context, message string, pending []string) map[string]string {
	if len(pending) == 0 {
		return map[string]string{}
	}
	start := time.Now()

	reqs := make([]llm.PendingPlaceholder, 0, len(pending))
	types := make(map[string]placeholder.Type, len(pending))
	for _, key := range pending {
		t := placeholder.Classify(key)
		types[key] = t
		reqs = append(reqs, llm.PendingPlaceholder{
			Key:  key,
			Type: string(t),
			Hint: placeholder.Hint(key),
		})
	}

	suggested := map[string]string{}
	if p.suggester != nil {
		out, err := p.suggester.Suggest(ctx, llm.SuggestRequest{Message: message, Pending: reqs})
		if err != nil {
			p.logger.Warn("extract.suggest_failed", "error", err)
		} else {
			suggested = out
		}
	}

	result := make(map[string]string, len(suggested))
	for _, key := range pending {
		v, ok := suggested[key]
		if !ok {
			continue
		}
		v = strings.TrimSpace(v)
		if v == "" || strings.EqualFold(v, "null") {
			continue
		}
		switch types[key] {
		case placeholder.TypeMoney:
			v = normalize.Money(v)
		case placeholder.TypeDate:
			v = normalize.Date(v)
		}
		result[key] = v
	}

	if len(result) == 0 {
		result = fallbackExtract(message, pending, types)
		if len(result) > 0 {
			p.logger.Info("extract.fallback_used", "keys", len(result))
		}
	}

	p.logger.Info("extract.done",
		"pending", len(pending),
		"extracted", len(result),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return result
}
