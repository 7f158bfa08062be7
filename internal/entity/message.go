package entity

import (
	"time"

	"github.com/google/uuid"
)

// Message represents one chat turn for data transfer between layers.
type Message struct {
	ID        uuid.UUID `json:"id"`
	SessionID uuid.UUID `json:"session_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
