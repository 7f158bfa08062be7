package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Document holds the parsed template and the current working copy for one
// session. TemplateJSON never changes after upload; WorkingJSON is rebuilt
// from it on every fill so replacements stay reversible.
type Document struct {
	ID           uuid.UUID       `json:"id"`
	SessionID    uuid.UUID       `json:"session_id"`
	TemplateJSON json.RawMessage `json:"template_json"`
	WorkingJSON  json.RawMessage `json:"working_json"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
