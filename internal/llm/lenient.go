package llm

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// ExtractJSONObject returns the first balanced brace-delimited substring of
// text, honoring string literals and escapes. Used to recover a JSON object
// from chatty collaborator output that did not honor the JSON-only contract.
func ExtractJSONObject(text string) ([]byte, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return nil, false
	}
	depth := 0
	inStr := false
	esc := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inStr {
			switch {
			case esc:
				esc = false
			case c == '\\':
				esc = true
			case c == '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return []byte(text[start : i+1]), true
			}
		}
	}
	return nil, false
}

// SanitizeSuggestions rewrites a suggestion object so it can pass the strict
// pending-keys schema:
//   - keys outside the allowed set are removed
//   - null, empty, and literal "null" values are removed
//   - numeric values are coerced to strings
//   - anything else non-string is removed
//
// It returns the cleaned JSON plus the list of dropped/changed keys.
func SanitizeSuggestions(doc []byte, allowed map[string]struct{}, logger *slog.Logger) ([]byte, []string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var m map[string]any
	if err := json.Unmarshal(doc, &m); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}

	var dropped []string
	for k, v := range m {
		if _, ok := allowed[k]; !ok {
			delete(m, k)
			dropped = append(dropped, k+"(unknown)")
			continue
		}
		switch t := v.(type) {
		case nil:
			delete(m, k)
			dropped = append(dropped, k+"(null)")
		case string:
			s := strings.TrimSpace(t)
			if s == "" || strings.EqualFold(s, "null") {
				delete(m, k)
				dropped = append(dropped, k+"(empty)")
			} else {
				m[k] = s
			}
		case float64:
			m[k] = strconv.FormatFloat(t, 'f', -1, 64)
			dropped = append(dropped, k+"(number)")
		default:
			delete(m, k)
			dropped = append(dropped, k+"(type)")
		}
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, dropped, fmt.Errorf("sanitize: encode: %w", err)
	}
	if len(dropped) > 0 {
		logger.Warn("llm.suggest.sanitize", "dropped", dropped)
	}
	return out, dropped, nil
}

// CleanSuggestions decodes a validated suggestion object into the final
// key->value map, skipping null, empty, and literal "null" entries.
func CleanSuggestions(doc []byte) (map[string]string, error) {
	var m map[string]*string
	if err := json.Unmarshal(doc, &m); err != nil {
		return nil, fmt.Errorf("decode suggestions: %w", err)
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		if v == nil {
			continue
		}
		s := strings.TrimSpace(*v)
		if s == "" || strings.EqualFold(s, "null") {
			continue
		}
		out[k] = s
	}
	return out, nil
}
