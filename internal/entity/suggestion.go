package entity

import (
	"time"

	"github.com/google/uuid"

	"docfill/constants"
)

// Suggestion represents a proposed value for a placeholder, awaiting review.
type Suggestion struct {
	ID            uuid.UUID                  `json:"id"`
	SessionID     uuid.UUID                  `json:"session_id"`
	PlaceholderID uuid.UUID                  `json:"placeholder_id"`
	MessageID     *uuid.UUID                 `json:"message_id,omitempty"`
	Value         string                     `json:"value"`
	Status        constants.SuggestionStatus `json:"status"`
	CreatedAt     time.Time                  `json:"created_at"`
	UpdatedAt     time.Time                  `json:"updated_at"`
}
