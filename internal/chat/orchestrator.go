// Package chat drives the conversation: it submits user queries to the
// remote claims service and records the outcome in the session store.
package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/ppiankov/claimsight/internal/model"
	"github.com/ppiankov/claimsight/internal/session"
)

// FallbackMessage is the fixed assistant line appended when a query fails.
// It deliberately carries no transport detail; the precise diagnostic goes
// to the error banner instead.
const FallbackMessage = "Sorry, I couldn't process your request. Please try again."

// Health warnings surfaced by the startup probe.
const (
	WarnUnreachable = "Unable to connect to the claims service."
	WarnUnhealthy   = "Claims service is not responding correctly."
)

// ErrServiceUnhealthy marks a health probe that reached the service but got
// a non-2xx response. Transports wrap it so callers can distinguish the two
// failure modes.
var ErrServiceUnhealthy = errors.New("service unhealthy")

// Answer is a successful query response before record normalization.
type Answer struct {
	Text    string
	Records []map[string]interface{}
}

// QueryService is the remote query/answer endpoint consumed by the
// orchestrator. Implementations own their transport timeouts; the
// orchestrator does not enforce one.
type QueryService interface {
	Query(ctx context.Context, query string) (*Answer, error)
	Health(ctx context.Context) error
}

// Orchestrator serializes query submission against a single session.
// Exactly one query may be in flight at a time; a submit while busy is a
// silent no-op.
type Orchestrator struct {
	store *session.Store
	svc   QueryService
}

// NewOrchestrator creates an orchestrator bound to a session store and a
// query service.
func NewOrchestrator(store *session.Store, svc QueryService) *Orchestrator {
	return &Orchestrator{store: store, svc: svc}
}

// Submit sends one query through the service and appends the resulting
// turns. It reports whether the query was admitted: empty or
// whitespace-only input, or a request already in flight, is rejected with
// no visible side effect. On failure the session gains a fixed fallback
// turn and the precise diagnostic lands in the error banner, so the
// conversation stays a complete record of every attempt.
func (o *Orchestrator) Submit(ctx context.Context, query string) bool {
	if strings.TrimSpace(query) == "" {
		return false
	}
	if !o.store.BeginRequest() {
		return false
	}
	defer o.store.EndRequest()

	o.store.AppendUser(query)

	answer, err := o.svc.Query(ctx, query)
	if err != nil {
		o.store.SetError(err.Error())
		o.store.AppendAssistant(FallbackMessage, nil)
		return true
	}

	results := make([]model.ClaimRecord, 0, len(answer.Records))
	for _, raw := range answer.Records {
		results = append(results, model.NormalizeRecord(raw))
	}
	o.store.AppendAssistant(answer.Text, results)
	return true
}

// Reset clears the conversation back to a fresh welcome turn.
func (o *Orchestrator) Reset() {
	o.store.Reset()
}

// CheckHealth probes the service once and records a session warning on
// failure. The warning never blocks or alters query handling, and the
// probe is not retried.
func (o *Orchestrator) CheckHealth(ctx context.Context) {
	err := o.svc.Health(ctx)
	switch {
	case err == nil:
	case errors.Is(err, ErrServiceUnhealthy):
		o.store.SetWarning(WarnUnhealthy)
	default:
		o.store.SetWarning(WarnUnreachable)
	}
}
