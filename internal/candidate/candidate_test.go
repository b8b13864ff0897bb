package candidate

import "testing"

func TestHistoryTail(t *testing.T) {
	var h History
	for i := 0; i < 12; i++ {
		h = h.Append(RoleUser, "msg")
	}

	if got := len(h.Tail(10)); got != 10 {
		t.Fatalf("tail length = %d, want 10", got)
	}
	if got := len(h.Tail(0)); got != 12 {
		t.Fatalf("tail with no limit = %d, want 12", got)
	}

	short := History{}.Append(RoleAssistant, "hi")
	if got := len(short.Tail(10)); got != 1 {
		t.Fatalf("tail of short history = %d, want 1", got)
	}
}

func TestRecordHasContact(t *testing.T) {
	r := &Record{Email: "a@example.com"}
	if r.HasContact() {
		t.Fatalf("phone missing, HasContact should be false")
	}
	r.Phone = "555-123-4567"
	if !r.HasContact() {
		t.Fatalf("both fields set, HasContact should be true")
	}
}

func TestNewSession(t *testing.T) {
	s := NewSession()
	if s.Stage != StageGreeting {
		t.Fatalf("new session stage = %s, want greeting", s.Stage)
	}
	if s.ID == "" {
		t.Fatalf("session id must be assigned")
	}
	if s.Saved {
		t.Fatalf("new session must not be marked saved")
	}
}

func TestStageTerminal(t *testing.T) {
	if StageGreeting.Terminal() {
		t.Fatalf("greeting is not terminal")
	}
	if !StageClosing.Terminal() {
		t.Fatalf("closing is terminal")
	}
	if Stage("banana").Valid() {
		t.Fatalf("unknown stage must not validate")
	}
}
