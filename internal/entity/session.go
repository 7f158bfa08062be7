package entity

import (
	"time"

	"github.com/google/uuid"

	"docfill/constants"
)

// Session represents a fill session for data transfer between layers.
type Session struct {
	ID        uuid.UUID               `json:"id"`
	Filename  string                  `json:"filename"`
	Status    constants.SessionStatus `json:"status"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}
