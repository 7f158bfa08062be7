package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"bare object", `{"a":"b"}`, `{"a":"b"}`, true},
		{"prose wrapped", "Here you go:\n```json\n{\"a\":\"b\"}\n```", `{"a":"b"}`, true},
		{"nested braces", `note {"a":{"b":"c"}} trailing`, `{"a":{"b":"c"}}`, true},
		{"brace inside string", `{"a":"}{"}`, `{"a":"}{"}`, true},
		{"escaped quote", `{"a":"say \"hi\" {now}"}`, `{"a":"say \"hi\" {now}"}`, true},
		{"no object", "nothing here", "", false},
		{"unbalanced", `{"a":"b"`, "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractJSONObject(tc.in)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, string(got))
			}
		})
	}
}

func TestSanitizeSuggestions(t *testing.T) {
	allowed := map[string]struct{}{
		"[Purchase Amount]": {},
		"[Date of Safe]":    {},
		"[Company Name]":    {},
	}
	doc := []byte(`{
		"[Purchase Amount]": 4000,
		"[Date of Safe]": null,
		"[Company Name]": "  Acme Corp  ",
		"[Investor Name]": "Jane Doe",
		"[Purchase Amount]#bad": true
	}`)

	out, dropped, err := SanitizeSuggestions(doc, allowed, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, dropped)

	var m map[string]any
	require.NoError(t, json.Unmarshal(out, &m))
	assert.Equal(t, "4000", m["[Purchase Amount]"])
	assert.Equal(t, "Acme Corp", m["[Company Name]"])
	assert.NotContains(t, m, "[Date of Safe]")
	assert.NotContains(t, m, "[Investor Name]")
	assert.NotContains(t, m, "[Purchase Amount]#bad")
}

func TestSanitizeSuggestionsRejectsNonObject(t *testing.T) {
	_, _, err := SanitizeSuggestions([]byte(`["a","b"]`), nil, nil)
	assert.Error(t, err)
}

func TestCleanSuggestions(t *testing.T) {
	out, err := CleanSuggestions([]byte(`{
		"[A]": "value",
		"[B]": null,
		"[C]": "",
		"[D]": "  ",
		"[E]": "null",
		"[F]": "NULL"
	}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"[A]": "value"}, out)
}
