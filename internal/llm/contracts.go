package llm

import "context"

// PendingPlaceholder is one still-unfilled key together with its semantic type
// and the hint handed to the suggestion collaborator.
type PendingPlaceholder struct {
	Key  string `json:"key"`
	Type string `json:"type"`
	Hint string `json:"hint"`
}

// SuggestRequest carries one chat turn's worth of context: the raw user
// message and the pending key/type/hint list.
type SuggestRequest struct {
	Message string
	Pending []PendingPlaceholder
}

// Suggester is the suggestion-collaborator contract the extraction pipeline
// depends on. Implementations return a key->value mapping using only keys from
// the pending list; the pipeline treats any error as "no suggestions this
// turn" and falls through to deterministic extraction.
type Suggester interface {
	Suggest(ctx context.Context, req SuggestRequest) (map[string]string, error)
}
