package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"docfill/internal/llm"

	"github.com/google/uuid"
)

// Suggest implements llm.Suggester using text-only chat/completions.
func (c *Client) Suggest(ctx context.Context, req llm.SuggestRequest) (map[string]string, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.logger.Info("llm.suggest.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"message_len", len(req.Message),
		"pending", len(req.Pending),
	)

	schema := llm.BuildSuggestionJSONSchema(req.Pending)
	allowed := make(map[string]struct{}, len(req.Pending))
	for _, p := range req.Pending {
		allowed[p.Key] = struct{}{}
	}

	body := map[string]any{
		"model":           c.cfg.Model,
		"temperature":     c.cfg.Temperature,
		"max_tokens":      c.cfg.MaxTokens,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "system", "content": llm.BuildSystemPrompt()},
			{"role": "user", "content": llm.BuildUserPrompt(req)},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	raw, httpErr := c.post(ctx, endpoint, body)
	if httpErr != nil {
		c.logger.Error("llm.suggest.http_error",
			"req_id", rid, "error", httpErr,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, httpErr
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.logger.Error("llm.suggest.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, fmt.Errorf("decode groq response: %w", err)
	}
	if len(cc.Choices) == 0 {
		c.logger.Error("llm.suggest.no_choices",
			"req_id", rid, "raw", string(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, fmt.Errorf("no choices in groq response")
	}
	content := strings.TrimSpace(cc.Choices[0].Message.Content)
	rawContent := []byte(content)

	// Validate strictly first.
	if err := llm.ValidateJSONAgainstSchema(schema, rawContent); err != nil {
		// Lenient pass: pull out the first JSON object, drop offenders and
		// re-validate before giving up.
		obj, ok := llm.ExtractJSONObject(content)
		if !ok {
			c.logger.Error("llm.suggest.no_json_object",
				"req_id", rid, "content", content,
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
			return nil, fmt.Errorf("no JSON object in completion: %w", err)
		}
		cleaned, dropped, sErr := llm.SanitizeSuggestions(obj, allowed, c.logger)
		if sErr != nil {
			c.logger.Error("llm.suggest.sanitize_failed",
				"req_id", rid, "error", sErr,
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
			return nil, fmt.Errorf("sanitize failed: %w", sErr)
		}
		if vErr := llm.ValidateJSONAgainstSchema(schema, cleaned); vErr != nil {
			c.logger.Error("llm.suggest.schema_validation_failed",
				"req_id", rid, "error", vErr, "content", string(cleaned),
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
			return nil, fmt.Errorf("schema validation failed: %w", vErr)
		}
		c.logger.Warn("llm.suggest.lenient_sanitize_applied",
			"req_id", rid, "dropped", dropped,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		rawContent = cleaned
	}

	out, err := llm.CleanSuggestions(rawContent)
	if err != nil {
		c.logger.Error("llm.suggest.unmarshal_failed",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, fmt.Errorf("unmarshal suggestions: %w", err)
	}

	c.logger.Info("llm.suggest.ok",
		"req_id", rid,
		"suggested", len(out),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}

func (c *Client) post(ctx context.Context, url string, body map[string]any) ([]byte, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("groq http error: %w", err)
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			c.logger.Warn("groq response body close error", "error", err)
		}
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		buf := new(bytes.Buffer)
		_, _ = buf.ReadFrom(resp.Body)
		return nil, fmt.Errorf("groq status %d: %s", resp.StatusCode, buf.String())
	}

	buf := new(bytes.Buffer)
	_, _ = buf.ReadFrom(resp.Body)
	return buf.Bytes(), nil
}
