package entity

import (
	"time"

	"github.com/google/uuid"

	"docfill/internal/placeholder"
)

// Placeholder represents one discovered blank for data transfer between
// layers. Position is the first-appearance index within the document.
type Placeholder struct {
	ID            uuid.UUID        `json:"id"`
	SessionID     uuid.UUID        `json:"session_id"`
	Key           string           `json:"key"`
	NormalizedKey string           `json:"normalized_key"`
	Type          placeholder.Type `json:"type"`
	Hint          string           `json:"hint"`
	Position      int              `json:"position"`
	IsFilled      bool             `json:"is_filled"`
	Value         *string          `json:"value,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}
