// Package conversation implements the screening state machine: one user
// message in, one assistant message out, with the session's stage and record
// updated in between. The machine itself is stateless; callers thread the
// session through every turn.
package conversation

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/talentscout/screener/internal/candidate"
	"github.com/talentscout/screener/internal/extract"
	"github.com/talentscout/screener/internal/question"
	"github.com/talentscout/screener/internal/storage"
	"go.uber.org/zap"
)

// exitRe ends the conversation from any stage. Keywords match as whole words
// so that answers like "Backend Engineer" do not trip the "end" keyword.
var exitRe = regexp.MustCompile(`(?i)\b(exit|quit|goodbye|bye|end|stop)\b`)

// Machine dispatches user messages to extractors and the question engine and
// decides stage transitions. The store may be nil, in which case completed
// records are not persisted.
type Machine struct {
	engine *question.Engine
	store  storage.Store
	logger *zap.Logger
}

func New(engine *question.Engine, store storage.Store, log *zap.Logger) *Machine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Machine{engine: engine, store: store, logger: log}
}

// Greeting returns the assistant's opening message, emitted before the first
// user turn.
func (m *Machine) Greeting() string {
	return greetingMessage
}

// Process handles one user turn. It appends both the user message and the
// produced reply to the session history and returns the reply.
func (m *Machine) Process(ctx context.Context, session *candidate.Session, message string) string {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return emptyInputMessage
	}

	m.logger.Debug("processing message",
		zap.String("session_id", session.ID),
		zap.String("stage", session.Stage.String()),
	)

	reply := m.dispatch(ctx, session, trimmed)

	session.History = session.History.Append(candidate.RoleUser, trimmed)
	session.History = session.History.Append(candidate.RoleAssistant, reply)

	return reply
}

func (m *Machine) dispatch(ctx context.Context, session *candidate.Session, message string) string {
	if isExitRequest(message) {
		session.Stage = candidate.StageClosing
		return m.close(ctx, session)
	}

	record := &session.Record

	switch session.Stage {
	case candidate.StageGreeting, candidate.StageName:
		name, ok := extract.Name(message)
		if !ok {
			return nameRetryMessage
		}
		record.Name = name
		session.Stage = candidate.StageContactInfo
		return contactRequestMessage(name)

	case candidate.StageContactInfo:
		email, phone := extract.Contact(message)
		if email != "" {
			record.Email = email
		}
		if phone != "" {
			record.Phone = phone
		}
		if !record.HasContact() {
			return contactRetryMessage(record)
		}
		session.Stage = candidate.StageExperience
		return experienceRequestMsg

	case candidate.StageExperience:
		record.Experience = extract.Experience(message)
		session.Stage = candidate.StagePosition
		return positionRequestMsg

	case candidate.StagePosition:
		record.Position = extract.Verbatim(message)
		session.Stage = candidate.StageLocation
		return locationRequestMsg

	case candidate.StageLocation:
		record.Location = extract.Verbatim(message)
		session.Stage = candidate.StageTechStack
		return techStackRequestMessage

	case candidate.StageTechStack:
		record.TechStack = m.extractTechStack(ctx, message)
		session.Stage = candidate.StageTechnicalQuestions
		return m.engine.TechnicalQuestions(ctx, record.TechStack)

	case candidate.StageTechnicalQuestions:
		// The answers are recorded in the transcript but not parsed.
		session.Stage = candidate.StageClosing
		return m.close(ctx, session)

	default:
		return m.engine.OpenEnded(ctx, session.Stage, record, session.History, message)
	}
}

// extractTechStack applies the three extraction tiers in priority order:
// explicit comma-separated list, vocabulary scan, then model extraction.
func (m *Machine) extractTechStack(ctx context.Context, message string) []string {
	if items, ok := extract.SplitList(message); ok {
		return items
	}
	if items := extract.KeywordScan(message); len(items) > 0 {
		return items
	}
	return m.engine.ExtractTechStack(ctx, message)
}

// close emits the closing summary and hands the record to storage exactly
// once per session. Re-entering the closing stage never repeats the write.
func (m *Machine) close(ctx context.Context, session *candidate.Session) string {
	if !session.Saved && session.Record.Name != "" && session.Record.Email != "" {
		session.Saved = true
		m.persist(ctx, session)
	}
	return closingMessage(&session.Record)
}

func (m *Machine) persist(ctx context.Context, session *candidate.Session) {
	if m.store == nil {
		m.logger.Debug("no store configured, skipping candidate handoff",
			zap.String("session_id", session.ID),
		)
		return
	}

	id, err := m.store.Save(ctx, &session.Record, session.History)
	switch {
	case errors.Is(err, storage.ErrDuplicateEmail):
		m.logger.Warn("candidate already applied",
			zap.String("session_id", session.ID),
			zap.String("email", session.Record.Email),
		)
	case err != nil:
		m.logger.Error("saving candidate", zap.Error(err),
			zap.String("session_id", session.ID),
		)
	default:
		m.logger.Info("candidate saved",
			zap.String("session_id", session.ID),
			zap.Int64("candidate_id", id),
		)
	}
}

func isExitRequest(message string) bool {
	return exitRe.MatchString(message)
}
