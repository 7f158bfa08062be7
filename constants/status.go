package constants

// SessionStatus is the canonical status for rows in sessions.
type SessionStatus string

// Stable values (store these exact strings in DB).
const (
	SessionUploaded   SessionStatus = "UPLOADED"    // template parsed, nothing filled yet
	SessionInProgress SessionStatus = "IN_PROGRESS" // at least one placeholder filled
	SessionCompleted  SessionStatus = "COMPLETED"   // every placeholder filled
)

// SuggestionStatus tracks the lifecycle of a proposed placeholder value.
type SuggestionStatus string

const (
	SuggestionPending  SuggestionStatus = "PENDING"
	SuggestionAccepted SuggestionStatus = "ACCEPTED"
	SuggestionRejected SuggestionStatus = "REJECTED"
)

// Chat message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)
