package llm

// BuildSuggestionJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map constraining the collaborator's reply to an object whose keys
// come from the pending list and whose values are strings or null. Rebuilt per
// turn, so a key that was filled last turn is no longer accepted.
func BuildSuggestionJSONSchema(pending []PendingPlaceholder) map[string]any {
	props := make(map[string]any, len(pending))
	for _, p := range pending {
		props[p.Key] = map[string]any{"type": []string{"string", "null"}}
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
	}
}
