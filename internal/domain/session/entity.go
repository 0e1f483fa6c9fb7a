package session

import (
	"time"

	"github.com/google/uuid"
)

// Session is one advisory conversation: the coordinator run plus every
// analyst turn that happened inside it.
type Session struct {
	ID        uuid.UUID
	AppName   string
	UserID    string
	SessionID string
	State     map[string]interface{}
	Events    []Event
	UpdatedAt time.Time
	CreatedAt time.Time
}

// Event is a single session event (user message, model turn or tool call).
type Event struct {
	ID            uuid.UUID
	SessionID     uuid.UUID
	EventID       string // runtime event ID
	Author        string // agent name or "user"
	Content       map[string]interface{}
	Timestamp     time.Time
	Branch        string
	Partial       bool
	TurnComplete  bool
	Actions       EventActions
	UsageMetadata *UsageMetadata
}

// EventActions carries the side effects attached to an event.
type EventActions struct {
	TransferToAgent   string
	Escalate          bool
	SkipSummarization bool
	StateDelta        map[string]interface{}
}

// UsageMetadata tracks token usage for an event.
type UsageMetadata struct {
	PromptTokenCount     int32
	CandidatesTokenCount int32
	TotalTokenCount      int32
}

// AppState is application-level state shared across all users.
type AppState struct {
	AppName string
	State   map[string]interface{}
}

// UserState is user-level state shared across all of a user's sessions.
type UserState struct {
	AppName string
	UserID  string
	State   map[string]interface{}
}

// State key prefixes for multi-level state management. Keys without a
// prefix live at session scope; temp keys are never persisted.
const (
	KeyPrefixApp  = "_app_"
	KeyPrefixUser = "_user_"
	KeyPrefixTemp = "_temp_"
)
