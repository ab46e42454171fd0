// Package session holds the bounded conversation state for one client
// instance. The store is the only shared mutable resource between the
// orchestrator (writer) and the presentation layer (reader); a mutex
// preserves the append ordering guarantee on a multi-threaded host.
package session

import (
	"sync"

	"github.com/ppiankov/claimsight/internal/model"
)

// DefaultCapacity is the default bound on conversation history.
const DefaultCapacity = 20

// DefaultWelcome is the synthetic turn a fresh session starts with.
const DefaultWelcome = "Hello! I'm your Claims Intelligence Assistant.\n\n" +
	"I can help you analyze claims data, find patterns in denials, and answer " +
	"questions about patients, providers, and treatments.\n\n" +
	"Try asking:\n" +
	"  - \"Show all denied claims\"\n" +
	"  - \"Find claims for cardiology\"\n" +
	"  - \"What are the top denial reasons?\""

// ResetWelcome replaces the history after an explicit reset.
const ResetWelcome = "Chat cleared. How can I help you analyze claims data?"

// Store is an ordered, size-bounded conversation history with the
// orchestration flags that accompany it. All mutations are synchronous;
// total order is defined by call order.
type Store struct {
	mu        sync.Mutex
	turns     []model.ConversationTurn
	capacity  int
	pending   bool
	lastError string
	warning   string
	nextID    int64
}

// New creates a store bounded to capacity, seeded with a welcome turn.
// Capacity below 1 is clamped to 1 so an append can always retain the
// turn it just added.
func New(capacity int) *Store {
	if capacity < 1 {
		capacity = 1
	}
	s := &Store{capacity: capacity}
	s.turns = append(s.turns, s.newTurn(model.RoleAssistant, DefaultWelcome, nil))
	return s
}

// AppendUser appends a user turn. The text is stored verbatim.
func (s *Store) AppendUser(text string) model.ConversationTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.append(model.RoleUser, text, nil)
}

// AppendAssistant appends an assistant turn carrying an optional result set.
// Pass a non-nil (possibly empty) slice for turns that answered a query with
// results; pass nil for plain conversational turns.
func (s *Store) AppendAssistant(text string, results []model.ClaimRecord) model.ConversationTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.append(model.RoleAssistant, text, results)
}

// append adds a turn and evicts from the front until the bound holds.
// The just-appended turn is never evicted. Callers hold s.mu.
func (s *Store) append(role model.Role, text string, results []model.ClaimRecord) model.ConversationTurn {
	turn := s.newTurn(role, text, results)
	s.turns = append(s.turns, turn)
	if excess := len(s.turns) - s.capacity; excess > 0 {
		s.turns = append(s.turns[:0:0], s.turns[excess:]...)
	}
	return turn
}

func (s *Store) newTurn(role model.Role, text string, results []model.ClaimRecord) model.ConversationTurn {
	s.nextID++
	return model.ConversationTurn{
		ID:      s.nextID,
		Role:    role,
		Text:    text,
		Results: results,
	}
}

// Reset discards all turns, reseeds a fresh welcome turn, and clears the
// pending flag and last error. The startup health warning is kept: it
// describes the service, not the conversation.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = []model.ConversationTurn{s.newTurn(model.RoleAssistant, ResetWelcome, nil)}
	s.pending = false
	s.lastError = ""
}

// BeginRequest atomically admits a new request: it reports false when one is
// already in flight, otherwise marks the store pending and clears the last
// error. This is the sole admission-control mechanism; there is no queueing.
func (s *Store) BeginRequest() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending {
		return false
	}
	s.pending = true
	s.lastError = ""
	return true
}

// EndRequest clears the pending flag.
func (s *Store) EndRequest() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = false
}

// SetPending updates the in-flight flag without touching turns.
func (s *Store) SetPending(pending bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = pending
}

// Pending reports whether a request is in flight.
func (s *Store) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// SetError records the diagnostic shown in the error banner. An empty
// message clears it.
func (s *Store) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = msg
}

// LastError returns the current banner diagnostic, empty when none.
func (s *Store) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// SetWarning records the session-level service warning from the startup
// health probe. It is distinct from LastError and never blocks queries.
func (s *Store) SetWarning(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warning = msg
}

// Warning returns the startup health warning, empty when the probe passed.
func (s *Store) Warning() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.warning
}

// Turns returns a snapshot copy of the conversation, newest last.
func (s *Store) Turns() []model.ConversationTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.ConversationTurn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Len returns the current number of turns.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.turns)
}

// Capacity returns the fixed history bound.
func (s *Store) Capacity() int {
	return s.capacity
}

// LastTurn returns the newest turn. The second return is false when the
// store is empty, which cannot happen after construction but keeps the
// contract honest.
func (s *Store) LastTurn() (model.ConversationTurn, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.turns) == 0 {
		return model.ConversationTurn{}, false
	}
	return s.turns[len(s.turns)-1], true
}
