package question

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/talentscout/screener/internal/candidate"
	"go.uber.org/zap"
)

type stubGenerator struct {
	response   string
	err        error
	calls      int
	lastPrompt string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.calls++
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubGenerator) Model() string {
	return "stub-model"
}

func TestExtractTechStackParsesJSONArray(t *testing.T) {
	stub := &stubGenerator{response: `["Python", "React", "AWS"]`}
	engine := NewEngine(stub, 0, zap.NewNop())

	got := engine.ExtractTechStack(context.Background(), "I mostly do web stuff")
	want := []string{"Python", "React", "AWS"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tech stack = %v, want %v", got, want)
	}

	if !strings.Contains(stub.lastPrompt, "JSON array") {
		t.Fatalf("prompt missing format instruction: %s", stub.lastPrompt)
	}
}

func TestExtractTechStackToleratesCodeFence(t *testing.T) {
	stub := &stubGenerator{response: "```json\n[\"Go\", \"Docker\"]\n```"}
	engine := NewEngine(stub, 0, zap.NewNop())

	got := engine.ExtractTechStack(context.Background(), "containers mostly")
	want := []string{"Go", "Docker"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tech stack = %v, want %v", got, want)
	}
}

func TestExtractTechStackCoercesNonStringMembers(t *testing.T) {
	stub := &stubGenerator{response: `["Python", 3, "React"]`}
	engine := NewEngine(stub, 0, zap.NewNop())

	got := engine.ExtractTechStack(context.Background(), "some text")
	want := []string{"Python", "3", "React"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tech stack = %v, want %v", got, want)
	}
}

func TestExtractTechStackMalformedFallsBackToCommaSplit(t *testing.T) {
	stub := &stubGenerator{response: "Sure! The candidate knows many things."}
	engine := NewEngine(stub, 0, zap.NewNop())

	got := engine.ExtractTechStack(context.Background(), "Elm, PureScript")
	want := []string{"Elm", "PureScript"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tech stack = %v, want %v", got, want)
	}
}

func TestExtractTechStackRawMessageAsLastResort(t *testing.T) {
	stub := &stubGenerator{err: errors.New("boom")}
	engine := NewEngine(stub, 0, zap.NewNop())

	got := engine.ExtractTechStack(context.Background(), " some niche framework ")
	want := []string{"some niche framework"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tech stack = %v, want %v", got, want)
	}
}

func TestTechnicalQuestionsWrapsGeneratedOutput(t *testing.T) {
	stub := &stubGenerator{response: "  1. How does goroutine scheduling work?\n   2. Explain connection pooling."}
	engine := NewEngine(stub, 0, zap.NewNop())

	out := engine.TechnicalQuestions(context.Background(), []string{"go", "postgresql"})

	if !strings.Contains(out, "Based on your tech stack (go, postgresql)") {
		t.Fatalf("missing framing sentence: %s", out)
	}
	if !strings.Contains(out, "1. How does goroutine scheduling work?\n2. Explain connection pooling.") {
		t.Fatalf("per-line whitespace not stripped: %q", out)
	}
	if !strings.Contains(out, "assess your technical proficiency") {
		t.Fatalf("missing trailing framing: %s", out)
	}
}

func TestTechnicalQuestionsFallbackIsDeterministic(t *testing.T) {
	stub := &stubGenerator{err: errors.New("service down")}
	engine := NewEngine(stub, 0, zap.NewNop())

	first := engine.TechnicalQuestions(context.Background(), []string{"python", "react", "postgresql"})
	second := engine.TechnicalQuestions(context.Background(), []string{"python", "react", "postgresql"})

	if first != second {
		t.Fatalf("fallback output not deterministic:\n%s\n---\n%s", first, second)
	}

	count := countQuestions(first)
	if count < 3 || count > 5 {
		t.Fatalf("expected 3-5 fallback questions, got %d:\n%s", count, first)
	}

	if !strings.Contains(first, "python") {
		t.Fatalf("fallback does not reference the language: %s", first)
	}
}

func TestEngineDegradesAfterFirstFailure(t *testing.T) {
	stub := &stubGenerator{err: errors.New("timeout")}
	engine := NewEngine(stub, 0, zap.NewNop())

	if engine.Degraded() {
		t.Fatalf("engine should start healthy")
	}

	engine.TechnicalQuestions(context.Background(), []string{"python"})
	if !engine.Degraded() {
		t.Fatalf("engine should be degraded after a failure")
	}
	if stub.calls != 1 {
		t.Fatalf("expected one network attempt, got %d", stub.calls)
	}

	// Later calls skip the network entirely, across all modes.
	engine.TechnicalQuestions(context.Background(), []string{"python"})
	engine.ExtractTechStack(context.Background(), "stuff")
	engine.OpenEnded(context.Background(), candidate.StageClosing, &candidate.Record{}, nil, "hello?")

	if stub.calls != 1 {
		t.Fatalf("degraded engine still reached the network: %d calls", stub.calls)
	}
}

func TestEngineWithoutGeneratorNeverAttemptsNetwork(t *testing.T) {
	engine := NewEngine(nil, 0, zap.NewNop())

	if !engine.Degraded() {
		t.Fatalf("nil generator must start in fallback-only mode")
	}

	out := engine.TechnicalQuestions(context.Background(), []string{"go", "aws"})
	if out == "" {
		t.Fatalf("expected fallback questions")
	}
	if count := countQuestions(out); count < 3 || count > 5 {
		t.Fatalf("expected 3-5 questions, got %d", count)
	}
}

func TestOpenEndedEmbedsContext(t *testing.T) {
	stub := &stubGenerator{response: "Let's keep talking about your application."}
	engine := NewEngine(stub, 0, zap.NewNop())

	record := &candidate.Record{Name: "Jordan Lee", TechStack: []string{"go"}}
	history := candidate.History{}.
		Append(candidate.RoleAssistant, "What is your name?").
		Append(candidate.RoleUser, "Jordan Lee")

	out := engine.OpenEnded(context.Background(), candidate.StageClosing, record, history, "can I ask something?")
	if out != "Let's keep talking about your application." {
		t.Fatalf("expected raw model output, got %q", out)
	}

	if !strings.Contains(stub.lastPrompt, "Current conversation stage: closing") {
		t.Fatalf("stage missing from prompt: %s", stub.lastPrompt)
	}
	if !strings.Contains(stub.lastPrompt, "Jordan Lee") {
		t.Fatalf("record missing from prompt: %s", stub.lastPrompt)
	}
	if !strings.Contains(stub.lastPrompt, "user: Jordan Lee") {
		t.Fatalf("history missing from prompt: %s", stub.lastPrompt)
	}
}

func TestOpenEndedApologyOnFailure(t *testing.T) {
	stub := &stubGenerator{err: errors.New("nope")}
	engine := NewEngine(stub, 0, zap.NewNop())

	out := engine.OpenEnded(context.Background(), candidate.StageClosing, &candidate.Record{}, nil, "hello?")
	if out != apologyMessage {
		t.Fatalf("expected apology, got %q", out)
	}
}

func countQuestions(out string) int {
	count := 0
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if len(line) > 1 && line[0] >= '1' && line[0] <= '9' && line[1] == '.' {
			count++
		}
	}
	return count
}
