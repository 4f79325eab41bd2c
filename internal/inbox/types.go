package inbox

import (
	"errors"
	"time"
)

// ErrEmptyMessage is returned by Send when the input is empty or whitespace.
var ErrEmptyMessage = errors.New("message is empty")

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single chat entry. Messages are never edited once appended.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Summary is a past conversation shown in the history sidebar. It carries no
// link to real message content.
type Summary struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	LastMessage  string    `json:"last_message"`
	UpdatedAt    time.Time `json:"updated_at"`
	MessageCount int       `json:"message_count"`
}

// EventType distinguishes stage changes, appended messages and transcript
// resets.
type EventType string

const (
	EventStage   EventType = "stage"
	EventMessage EventType = "message"
	// EventReset means the transcript was cleared by NewChat or LoadHistory.
	EventReset EventType = "reset"
)

// Event is published to subscribers whenever the stage changes, a message
// is appended or the transcript is cleared.
type Event struct {
	Type       EventType `json:"type"`
	Stage      Stage     `json:"stage,omitempty"`
	Message    *Message  `json:"message,omitempty"`
	Generation uint64    `json:"generation"`
}
