// Package question implements the generation side of the screening
// conversation: tech stack extraction by the model, tailored technical
// interview questions, and open-ended replies. Every mode follows the same
// primary/fallback contract: one bounded generation attempt, then a
// deterministic local substitute. A single failure flips the engine into
// degraded mode for the rest of the session, so later calls skip the network
// entirely.
package question

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mitchellh/mapstructure"
	"github.com/talentscout/screener/internal/ai"
	"github.com/talentscout/screener/internal/candidate"
	"github.com/talentscout/screener/internal/logger"
	"go.uber.org/zap"
)

const (
	defaultMaxLogLength = 200
	historyContextSize  = 10

	minFallbackQuestions = 3
	maxQuestions         = 5
)

const apologyMessage = "I apologize, but I'm having trouble generating a response. Could you please repeat that?"

// Engine drives all generation calls for one screening session.
type Engine struct {
	generator ai.Generator
	logger    *zap.Logger
	maxLogLen int

	// degraded is set on the first observed generation failure and never
	// cleared. A nil generator (no credential at startup) starts degraded.
	degraded bool
}

// NewEngine returns an Engine for a single session. A nil generator puts the
// engine permanently in fallback-only mode.
func NewEngine(generator ai.Generator, maxLogLength int, log *zap.Logger) *Engine {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Engine{
		generator: generator,
		logger:    log,
		maxLogLen: maxLogLength,
		degraded:  generator == nil,
	}
}

// Degraded reports whether the engine has stopped attempting network calls.
func (e *Engine) Degraded() bool {
	return e.degraded
}

// generate performs the single allowed network attempt. Any error marks the
// engine degraded before being returned to the calling mode, which is
// responsible for producing a deterministic substitute.
func (e *Engine) generate(ctx context.Context, prompt string) (string, error) {
	if e.degraded {
		return "", errors.New("generation service unavailable")
	}

	e.logger.Debug("generation request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, e.maxLogLen)),
	)

	raw, err := e.generator.GenerateContent(ctx, prompt)
	if err != nil {
		e.degraded = true
		e.logger.Warn("generation failed, entering degraded mode", zap.Error(err))
		return "", err
	}

	e.logger.Debug("generation response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, e.maxLogLen)),
	)

	return raw, nil
}

// ExtractTechStack asks the model to pull technology names out of a free-form
// message. It never fails: a malformed or unavailable response degrades to
// naive comma splitting, and an empty split keeps the raw message as the sole
// list element.
func (e *Engine) ExtractTechStack(ctx context.Context, message string) []string {
	prompt := fmt.Sprintf(
		"You extract technology keywords from text.\n"+
			"Return ONLY a JSON array of technology names, with no other text or explanation.\n"+
			"For example: [\"Python\", \"React\", \"AWS\", \"PostgreSQL\"]\n\n"+
			"Extract technology keywords from this text: %s",
		message,
	)

	raw, err := e.generate(ctx, prompt)
	if err == nil {
		if items, ok := parseTechArray(raw); ok {
			return items
		}
		e.logger.Warn("tech stack response was not a JSON array",
			zap.String("response_preview", logger.TruncateForLog(raw, e.maxLogLen)),
		)
	}

	var items []string
	for _, part := range strings.Split(message, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	if len(items) == 0 {
		items = []string{strings.TrimSpace(message)}
	}
	return items
}

// TechnicalQuestions produces 3-5 interview questions tailored to the
// candidate's tech stack, wrapped in a fixed framing sentence. When the
// service is unavailable the questions come from deterministic per-category
// templates instead.
func (e *Engine) TechnicalQuestions(ctx context.Context, techStack []string) string {
	stack := strings.Join(techStack, ", ")

	prompt := fmt.Sprintf(
		"You are a technical interviewer for a recruitment agency.\n"+
			"Generate 3-5 interview questions to assess the candidate's proficiency in these technologies: %s.\n\n"+
			"The questions must:\n"+
			"1. Reference specific technologies from the list\n"+
			"2. Be scenario-based and medium-to-hard difficulty\n"+
			"3. Not be answerable with yes or no\n"+
			"4. Be formatted as a flat numbered list with no indentation\n\n"+
			"Do NOT ask the candidate to write complete code or complex algorithms.",
		stack,
	)

	questions, err := e.generate(ctx, prompt)
	if err != nil {
		questions = numberQuestions(fallbackQuestions(techStack))
	} else {
		questions = stripLineIndent(questions)
	}

	return fmt.Sprintf(
		"Based on your tech stack (%s), I'd like to ask you a few technical questions:\n\n%s\n\nPlease answer these questions to help us assess your technical proficiency.",
		stack, questions,
	)
}

// OpenEnded handles messages that arrive outside the defined stage sequence.
// It embeds the recent transcript, the active stage and the record as context
// and returns the model's text verbatim, or a fixed apology on failure.
func (e *Engine) OpenEnded(ctx context.Context, stage candidate.Stage, record *candidate.Record, history candidate.History, message string) string {
	recordJSON, err := json.Marshal(record)
	if err != nil {
		recordJSON = []byte("{}")
	}

	var transcript strings.Builder
	for _, msg := range history.Tail(historyContextSize) {
		fmt.Fprintf(&transcript, "%s: %s\n", msg.Role, msg.Content)
	}

	prompt := fmt.Sprintf(
		"You are a hiring assistant for TalentScout, a recruitment agency specializing in technology placements.\n"+
			"You conduct initial candidate screenings by gathering information and asking relevant technical questions.\n\n"+
			"Current conversation stage: %s\n"+
			"Current candidate information: %s\n\n"+
			"Recent conversation:\n%s\n"+
			"Candidate: %s\n\n"+
			"Reply professionally and concisely, keeping the conversation in the context of a job application.",
		stage, recordJSON, transcript.String(), message,
	)

	reply, err := e.generate(ctx, prompt)
	if err != nil {
		return apologyMessage
	}
	return reply
}

// parseTechArray parses the model output as a JSON array of names, tolerating
// a surrounding markdown code fence and non-string array members.
func parseTechArray(raw string) ([]string, bool) {
	cleaned := extractJSON(raw)

	var parsed any
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, false
	}
	arr, ok := parsed.([]any)
	if !ok {
		return nil, false
	}

	var items []string
	cfg := &mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &items,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, false
	}
	if err := decoder.Decode(arr); err != nil {
		return nil, false
	}
	if len(items) == 0 {
		return nil, false
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out, len(out) > 0
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func stripLineIndent(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
