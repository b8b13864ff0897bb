package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/talentscout/screener/internal/candidate"
)

const uniqueViolation = "23505"

const schema = `
CREATE TABLE IF NOT EXISTS candidates (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	phone TEXT NOT NULL DEFAULT '',
	experience TEXT NOT NULL DEFAULT '',
	position TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL DEFAULT '',
	tech_stack TEXT NOT NULL DEFAULT '[]',
	applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	status TEXT NOT NULL DEFAULT 'new',
	conversation_history TEXT NOT NULL DEFAULT '[]',
	notes TEXT NOT NULL DEFAULT ''
)`

// PostgresStore is the production Store backed by a candidates table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres opens a connection pool against the provided DSN and ensures
// the candidates table exists.
func NewPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// Save inserts a new application. The unique index on email turns concurrent
// saves for the same address into exactly one success; the losers receive
// ErrDuplicateEmail.
func (s *PostgresStore) Save(ctx context.Context, record *candidate.Record, history candidate.History) (int64, error) {
	techStack, err := json.Marshal(record.TechStack)
	if err != nil {
		return 0, fmt.Errorf("marshal tech stack: %w", err)
	}

	historyJSON, err := json.Marshal(history)
	if err != nil {
		return 0, fmt.Errorf("marshal history: %w", err)
	}

	const query = `
		INSERT INTO candidates (name, email, phone, experience, position, location, tech_stack, applied_at, status, conversation_history)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), $8, $9)
		RETURNING id`

	var id int64
	err = s.db.QueryRowContext(ctx, query,
		record.Name,
		record.Email,
		record.Phone,
		record.Experience,
		record.Position,
		record.Location,
		string(techStack),
		StatusNew,
		string(historyJSON),
	).Scan(&id)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return 0, ErrDuplicateEmail
	}
	if err != nil {
		return 0, fmt.Errorf("insert candidate: %w", err)
	}

	return id, nil
}

func (s *PostgresStore) GetByEmail(ctx context.Context, email string) (*Candidate, error) {
	const query = `
		SELECT id, name, email, phone, experience, position, location, tech_stack, applied_at, status, conversation_history, notes
		FROM candidates WHERE email = $1`
	return s.scanCandidate(s.db.QueryRowContext(ctx, query, email))
}

func (s *PostgresStore) GetByID(ctx context.Context, id int64) (*Candidate, error) {
	const query = `
		SELECT id, name, email, phone, experience, position, location, tech_stack, applied_at, status, conversation_history, notes
		FROM candidates WHERE id = $1`
	return s.scanCandidate(s.db.QueryRowContext(ctx, query, id))
}

func (s *PostgresStore) UpdateStatus(ctx context.Context, id int64, status, notes string) error {
	const query = `UPDATE candidates SET status = $2, notes = $3 WHERE id = $1`

	res, err := s.db.ExecContext(ctx, query, id, status, notes)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListRecent(ctx context.Context, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = 50
	}

	const query = `
		SELECT id, name, email, position, applied_at, status
		FROM candidates ORDER BY applied_at DESC LIMIT $1`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	var summaries []Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Position, &s.AppliedAt, &s.Status); err != nil {
			return nil, fmt.Errorf("scan candidate summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func (s *PostgresStore) scanCandidate(row *sql.Row) (*Candidate, error) {
	var (
		c           Candidate
		techStack   string
		historyJSON string
	)

	err := row.Scan(
		&c.ID,
		&c.Record.Name,
		&c.Record.Email,
		&c.Record.Phone,
		&c.Record.Experience,
		&c.Record.Position,
		&c.Record.Location,
		&techStack,
		&c.AppliedAt,
		&c.Status,
		&historyJSON,
		&c.Notes,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan candidate: %w", err)
	}

	// Malformed serialized fields surface as read failures rather than
	// silently returning a partial candidate.
	if err := json.Unmarshal([]byte(techStack), &c.Record.TechStack); err != nil {
		return nil, fmt.Errorf("decode stored tech stack: %w", err)
	}
	if err := json.Unmarshal([]byte(historyJSON), &c.History); err != nil {
		return nil, fmt.Errorf("decode stored history: %w", err)
	}

	return &c, nil
}
