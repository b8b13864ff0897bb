package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/talentscout/screener/internal/candidate"
)

// MemoryStore is an in-process Store used when no database is configured and
// in tests. The mutex serializes saves, so the email uniqueness check holds
// under concurrent sessions just like the database constraint.
type MemoryStore struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*Candidate
}

func NewMemory() *MemoryStore {
	return &MemoryStore{nextID: 1, byID: make(map[int64]*Candidate)}
}

func (s *MemoryStore) Save(_ context.Context, record *candidate.Record, history candidate.History) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.byID {
		if strings.EqualFold(existing.Record.Email, record.Email) {
			return 0, ErrDuplicateEmail
		}
	}

	id := s.nextID
	s.nextID++

	stored := &Candidate{
		ID:        id,
		Record:    *record,
		AppliedAt: time.Now(),
		Status:    StatusNew,
		History:   append(candidate.History(nil), history...),
	}
	stored.Record.TechStack = append([]string(nil), record.TechStack...)
	s.byID[id] = stored

	return id, nil
}

func (s *MemoryStore) GetByEmail(_ context.Context, email string) (*Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.byID {
		if strings.EqualFold(existing.Record.Email, email) {
			copied := *existing
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) GetByID(_ context.Context, id int64) (*Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *existing
	return &copied, nil
}

func (s *MemoryStore) UpdateStatus(_ context.Context, id int64, status, notes string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}
	existing.Status = status
	if notes != "" {
		existing.Notes = notes
	}
	return nil
}

func (s *MemoryStore) ListRecent(_ context.Context, limit int) ([]Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 50
	}

	summaries := make([]Summary, 0, len(s.byID))
	for _, c := range s.byID {
		summaries = append(summaries, Summary{
			ID:        c.ID,
			Name:      c.Record.Name,
			Email:     c.Record.Email,
			Position:  c.Record.Position,
			AppliedAt: c.AppliedAt,
			Status:    c.Status,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].AppliedAt.Equal(summaries[j].AppliedAt) {
			return summaries[i].ID > summaries[j].ID
		}
		return summaries[i].AppliedAt.After(summaries[j].AppliedAt)
	})

	if len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
