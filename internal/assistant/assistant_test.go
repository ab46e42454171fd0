package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/claimsight/internal/cache"
	"github.com/ppiankov/claimsight/internal/index"
	"github.com/ppiankov/claimsight/internal/llm"
)

func testIndex() *index.SearchIndex {
	ix := index.New()
	ix.Add([]index.Document{
		{
			Text:     "Claim ID: CLM-1\nDiagnosis: Hypertension\nStatus: Denied\nDenial Reason: Pre-auth Missing",
			Metadata: map[string]interface{}{"claim_id": "CLM-1", "status": "Denied", "patient_name": "Jane Roe", "claim_amount": 1250.5, "denial_reason": "Pre-auth Missing"},
		},
		{
			Text:     "Claim ID: CLM-2\nDiagnosis: Fracture\nStatus: Approved\nDenial Reason: N/A",
			Metadata: map[string]interface{}{"claim_id": "CLM-2", "status": "Approved", "patient_name": "John Doe", "claim_amount": 300.0, "denial_reason": "N/A"},
		},
	})
	return ix
}

// stubProvider implements llm.Provider
type stubProvider struct {
	text    string
	err     error
	lastReq llm.GenerateRequest
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) IsAvailable(ctx context.Context) bool { return true }

func (s *stubProvider) Generate(ctx context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return &llm.GenerateResponse{Text: s.text}, nil
}

func TestAssistant_DataQuery(t *testing.T) {
	a := New(testIndex(), nil, nil, nil)

	resp, err := a.Query(context.Background(), "show denied claims")
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}

	if !strings.HasPrefix(resp.Answer, "Found ") || !strings.Contains(resp.Answer, "claims matching your search.") {
		t.Errorf("unexpected data answer: %q", resp.Answer)
	}
	if len(resp.Context) == 0 {
		t.Error("expected context records for data query")
	}
}

func TestAssistant_ChatQuery_NoProvider(t *testing.T) {
	a := New(testIndex(), nil, nil, nil)

	resp, err := a.Query(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}

	if !strings.Contains(resp.Answer, "Claims Intelligence Assistant") {
		t.Errorf("expected canned chat answer, got %q", resp.Answer)
	}
	if resp.Context == nil || len(resp.Context) != 0 {
		t.Errorf("chat answers must carry an empty context, got %v", resp.Context)
	}
}

func TestAssistant_ChatQuery_WithProvider(t *testing.T) {
	provider := &stubProvider{text: "Hi! Ask me about claims."}
	a := New(testIndex(), provider, nil, nil)

	resp, err := a.Query(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if resp.Answer != "Hi! Ask me about claims." {
		t.Errorf("expected generated answer, got %q", resp.Answer)
	}
	if provider.lastReq.Prompt != "hello" {
		t.Errorf("expected prompt forwarded, got %q", provider.lastReq.Prompt)
	}
}

func TestAssistant_ChatQuery_ProviderError(t *testing.T) {
	provider := &stubProvider{err: errors.New("boom")}
	a := New(testIndex(), provider, nil, nil)

	resp, err := a.Query(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if !strings.Contains(resp.Answer, "help you analyze claims data") {
		t.Errorf("expected fallback answer on provider error, got %q", resp.Answer)
	}
}

func TestAssistant_AnalysisQuery(t *testing.T) {
	provider := &stubProvider{text: "Most denials cite missing pre-authorization."}
	a := New(testIndex(), provider, nil, nil)

	resp, err := a.Query(context.Background(), "why are claims denied")
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}

	if resp.Answer != "Most denials cite missing pre-authorization." {
		t.Errorf("unexpected analysis answer: %q", resp.Answer)
	}
	if len(resp.Context) > 5 {
		t.Errorf("analysis context must be capped at 5, got %d", len(resp.Context))
	}
	if !strings.Contains(provider.lastReq.Prompt, "Data summary:") {
		t.Errorf("expected data summary in prompt:\n%s", provider.lastReq.Prompt)
	}
	if !strings.Contains(provider.lastReq.Prompt, "Jane Roe") {
		t.Errorf("expected record fields in prompt:\n%s", provider.lastReq.Prompt)
	}
}

func TestAssistant_NoMatches(t *testing.T) {
	a := New(index.New(), nil, nil, nil)

	resp, err := a.Query(context.Background(), "show denied claims")
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if resp.Answer != NoMatchMessage {
		t.Errorf("expected %q, got %q", NoMatchMessage, resp.Answer)
	}
	if resp.Context == nil || len(resp.Context) != 0 {
		t.Errorf("expected empty context, got %v", resp.Context)
	}
}

func TestAssistant_CachesAnswers(t *testing.T) {
	answerCache := cache.NewMemoryCache(time.Minute, time.Minute)
	provider := &stubProvider{text: "first answer"}
	a := New(testIndex(), provider, answerCache, nil)

	resp1, err := a.Query(context.Background(), "why are claims denied")
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}

	// A second identical query must be served from cache even though the
	// provider now returns something else.
	provider.text = "second answer"
	resp2, err := a.Query(context.Background(), "Why are claims DENIED")
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}

	if resp2.Answer != resp1.Answer {
		t.Errorf("expected cached answer %q, got %q", resp1.Answer, resp2.Answer)
	}
}

func TestAssistant_Ready(t *testing.T) {
	if New(nil, nil, nil, nil).Ready() {
		t.Error("assistant without index must not be ready")
	}
	if New(index.New(), nil, nil, nil).Ready() {
		t.Error("assistant with empty index must not be ready")
	}
	if !New(testIndex(), nil, nil, nil).Ready() {
		t.Error("assistant with populated index must be ready")
	}
}
