package session

import (
	"strings"
	"testing"

	"budgetbuddy/internal/core"
)

func TestCreateAndGet(t *testing.T) {
	m := NewManager()
	s, err := m.Create("acme")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.HasPrefix(s.Token, "sess_") {
		t.Fatalf("unexpected token format: %q", s.Token)
	}
	got, ok := m.Get(s.Token)
	if !ok || got.Account != "acme" {
		t.Fatalf("expected session for acme, got %+v (ok=%v)", got, ok)
	}
}

func TestGetUnknownToken(t *testing.T) {
	m := NewManager()
	if _, ok := m.Get("sess_deadbeef"); ok {
		t.Fatalf("expected miss for unknown token")
	}
	if _, ok := m.Get(""); ok {
		t.Fatalf("expected miss for empty token")
	}
}

func TestDestroy(t *testing.T) {
	m := NewManager()
	s, _ := m.Create("acme")
	m.Destroy(s.Token)
	if _, ok := m.Get(s.Token); ok {
		t.Fatalf("expected session gone after destroy")
	}
	m.Destroy(s.Token) // no-op
}

func TestMarkAlertedDedupesPerState(t *testing.T) {
	m := NewManager()
	s, _ := m.Create("acme")

	if !s.MarkAlerted("b1", core.AlertWarning) {
		t.Fatalf("first warning should be new")
	}
	if s.MarkAlerted("b1", core.AlertWarning) {
		t.Fatalf("repeat warning should be suppressed")
	}
	if !s.MarkAlerted("b1", core.AlertDanger) {
		t.Fatalf("escalation to danger should be new")
	}
	if !s.MarkAlerted("b2", core.AlertWarning) {
		t.Fatalf("different budget should be new")
	}
}

func TestDedupeIsPerSession(t *testing.T) {
	m := NewManager()
	s1, _ := m.Create("acme")
	s2, _ := m.Create("acme")

	if !s1.MarkAlerted("b1", core.AlertWarning) {
		t.Fatalf("first session should notify")
	}
	if !s2.MarkAlerted("b1", core.AlertWarning) {
		t.Fatalf("second session keeps its own dedupe state")
	}
}
