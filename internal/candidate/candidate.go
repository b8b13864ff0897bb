package candidate

import (
	"strings"
	"time"
)

// Record accumulates the structured facts collected about one candidate
// during a screening conversation. Scalar fields start empty and are filled
// monotonically: an extractor may overwrite a value with a fresher one, but
// nothing resets a field short of starting a new session.
type Record struct {
	Name       string   `json:"name,omitempty"`
	Email      string   `json:"email,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	Experience string   `json:"experience,omitempty"`
	Position   string   `json:"position,omitempty"`
	Location   string   `json:"location,omitempty"`
	TechStack  []string `json:"tech_stack,omitempty"`
}

// HasContact reports whether both contact fields were captured.
func (r *Record) HasContact() bool {
	return r.Email != "" && r.Phone != ""
}

// TechStackString joins the tech stack for prompts and summaries.
func (r *Record) TechStackString() string {
	return strings.Join(r.TechStack, ", ")
}

// FieldOrDefault returns the value or the provided placeholder when unset.
func FieldOrDefault(value, placeholder string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}
	return value
}

// Role identifies the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single turn in the conversation transcript.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// History is the append-only conversation transcript owned by a session.
// The core reads a bounded tail of it as generation context and never
// mutates entries in place.
type History []Message

// Append adds a message stamped with the current time.
func (h History) Append(role Role, content string) History {
	return append(h, Message{Role: role, Content: content, Timestamp: time.Now()})
}

// Tail returns up to the last n messages.
func (h History) Tail(n int) History {
	if n <= 0 || len(h) <= n {
		return h
	}
	return h[len(h)-n:]
}
