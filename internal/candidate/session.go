package candidate

import "github.com/google/uuid"

// Session bundles the per-conversation state the machine needs on every
// turn: the record under construction, the active stage and the transcript.
// The machine itself is stateless; the presentation surface owns the session
// between turns and hands it back on each invocation.
type Session struct {
	ID      string
	Record  Record
	Stage   Stage
	History History

	// Saved guards the storage handoff on entering the closing stage so
	// that repeated exit requests never insert the record twice.
	Saved bool
}

// NewSession returns an empty session positioned at the greeting stage.
func NewSession() *Session {
	return &Session{
		ID:    uuid.NewString(),
		Stage: StageGreeting,
	}
}
