// Package storage persists completed candidate records. Records are keyed by
// email with a uniqueness constraint: a second save for the same email fails
// with ErrDuplicateEmail instead of overwriting.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/talentscout/screener/internal/candidate"
)

// StatusNew is the status assigned to freshly saved candidates.
const StatusNew = "new"

var (
	// ErrDuplicateEmail reports a save attempt for an email that already
	// has a stored application.
	ErrDuplicateEmail = errors.New("candidate with this email already exists")

	// ErrNotFound reports a lookup that matched no stored candidate.
	ErrNotFound = errors.New("candidate not found")
)

// Candidate is a stored application: the collected record plus bookkeeping.
type Candidate struct {
	ID        int64
	Record    candidate.Record
	AppliedAt time.Time
	Status    string
	History   candidate.History
	Notes     string
}

// Summary is the compact listing shape returned by ListRecent.
type Summary struct {
	ID        int64
	Name      string
	Email     string
	Position  string
	AppliedAt time.Time
	Status    string
}

// Store is the durable keyed record store consumed by the conversation
// machine on the closing handoff and by the admin commands.
type Store interface {
	Save(ctx context.Context, record *candidate.Record, history candidate.History) (int64, error)
	GetByEmail(ctx context.Context, email string) (*Candidate, error)
	GetByID(ctx context.Context, id int64) (*Candidate, error)
	UpdateStatus(ctx context.Context, id int64, status, notes string) error
	ListRecent(ctx context.Context, limit int) ([]Summary, error)
	Close() error
}
