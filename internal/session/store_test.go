package session

import (
	"fmt"
	"testing"

	"github.com/ppiankov/claimsight/internal/model"
)

func TestNew_SeedsWelcomeTurn(t *testing.T) {
	s := New(20)

	turns := s.Turns()
	if len(turns) != 1 {
		t.Fatalf("Expected 1 turn, got %d", len(turns))
	}
	if turns[0].Role != model.RoleAssistant {
		t.Errorf("Expected assistant welcome turn, got %s", turns[0].Role)
	}
	if turns[0].Text != DefaultWelcome {
		t.Errorf("Unexpected welcome text: %s", turns[0].Text)
	}
	if s.Pending() {
		t.Error("Fresh session must not be pending")
	}
}

func TestNew_ClampsCapacity(t *testing.T) {
	s := New(0)
	if s.Capacity() != 1 {
		t.Errorf("Expected capacity clamped to 1, got %d", s.Capacity())
	}
}

func TestAppend_EvictsOldestFirst(t *testing.T) {
	s := New(3)

	for i := 0; i < 5; i++ {
		s.AppendUser(fmt.Sprintf("query %d", i))
	}

	turns := s.Turns()
	if len(turns) != 3 {
		t.Fatalf("Expected 3 turns after eviction, got %d", len(turns))
	}
	// Welcome turn and queries 0, 1 evicted; 2, 3, 4 remain in order.
	want := []string{"query 2", "query 3", "query 4"}
	for i, text := range want {
		if turns[i].Text != text {
			t.Errorf("turns[%d].Text = %q, want %q", i, turns[i].Text, text)
		}
	}
}

func TestAppend_NeverExceedsCapacity(t *testing.T) {
	s := New(20)

	for i := 0; i < 50; i++ {
		s.AppendUser("q")
		s.AppendAssistant("a", []model.ClaimRecord{})
		if s.Len() > 20 {
			t.Fatalf("History grew past capacity at iteration %d: %d", i, s.Len())
		}
	}
	if s.Len() != 20 {
		t.Errorf("Expected exactly 20 turns, got %d", s.Len())
	}
}

func TestAppend_IDsMonotonic(t *testing.T) {
	s := New(2)

	var last int64
	for i := 0; i < 10; i++ {
		turn := s.AppendUser("q")
		if turn.ID <= last {
			t.Fatalf("IDs not monotonically increasing: %d after %d", turn.ID, last)
		}
		last = turn.ID
	}
}

func TestAppendAssistant_EmptyResultsIsPresent(t *testing.T) {
	s := New(20)

	turn := s.AppendAssistant("no matches", []model.ClaimRecord{})
	if !turn.HasResults() {
		t.Error("Empty result set should still count as carrying results")
	}
	if len(turn.Results) != 0 {
		t.Errorf("Expected empty results, got %d", len(turn.Results))
	}

	plain := s.AppendAssistant("hello", nil)
	if plain.HasResults() {
		t.Error("Plain assistant turn must not carry results")
	}
}

func TestReset_ReinitializesSession(t *testing.T) {
	s := New(20)
	s.AppendUser("show denied claims")
	s.SetPending(true)
	s.SetError("server error: 500")

	s.Reset()

	turns := s.Turns()
	if len(turns) != 1 {
		t.Fatalf("Expected a single fresh turn after reset, got %d", len(turns))
	}
	if turns[0].Text != ResetWelcome {
		t.Errorf("Unexpected reset welcome: %s", turns[0].Text)
	}
	if s.Pending() {
		t.Error("Reset must clear pending")
	}
	if s.LastError() != "" {
		t.Errorf("Reset must clear lastError, got %q", s.LastError())
	}
}

func TestReset_KeepsHealthWarning(t *testing.T) {
	s := New(20)
	s.SetWarning("Unable to connect to the claims service.")

	s.Reset()

	if s.Warning() == "" {
		t.Error("Reset must not clear the startup health warning")
	}
}

func TestBeginRequest_SingleInFlight(t *testing.T) {
	s := New(20)

	if !s.BeginRequest() {
		t.Fatal("First BeginRequest should be admitted")
	}
	if s.BeginRequest() {
		t.Error("Second BeginRequest while pending should be rejected")
	}

	s.EndRequest()
	if !s.BeginRequest() {
		t.Error("BeginRequest after EndRequest should be admitted again")
	}
}

func TestBeginRequest_ClearsLastError(t *testing.T) {
	s := New(20)
	s.SetError("previous failure")

	s.BeginRequest()

	if s.LastError() != "" {
		t.Errorf("BeginRequest must clear lastError, got %q", s.LastError())
	}
}

func TestFlagMutations_DoNotTouchTurns(t *testing.T) {
	s := New(20)
	s.AppendUser("q")
	before := s.Len()

	s.SetPending(true)
	s.SetPending(false)
	s.SetError("boom")
	s.SetError("")
	s.SetWarning("slow")

	if s.Len() != before {
		t.Errorf("Flag mutations changed turn count: %d -> %d", before, s.Len())
	}
}

func TestTurns_ReturnsSnapshot(t *testing.T) {
	s := New(20)
	snapshot := s.Turns()

	s.AppendUser("after snapshot")

	if len(snapshot) != 1 {
		t.Errorf("Snapshot should be unaffected by later appends, got %d turns", len(snapshot))
	}
}
