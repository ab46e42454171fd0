package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ppiankov/claimsight/internal/assistant"
	"github.com/ppiankov/claimsight/internal/index"
	"github.com/ppiankov/claimsight/internal/model"
)

func testServer(t *testing.T, ready bool) *Server {
	t.Helper()

	ix := index.New()
	if ready {
		ix.Add([]index.Document{
			{
				Text:     "Claim ID: CLM-1\nDiagnosis: Hypertension\nStatus: Denied\nDenial Reason: Pre-auth Missing",
				Metadata: map[string]interface{}{"claim_id": "CLM-1", "status": "Denied"},
			},
		})
	}

	a := assistant.New(ix, nil, nil, nil)
	cfg := model.DefaultConfig()
	return New(a, cfg.Server, cfg.RateLimiting, nil)
}

func postQuery(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/query", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleQuery_Success(t *testing.T) {
	handler := testServer(t, true).Handler()

	rec := postQuery(t, handler, `{"query": "show denied claims"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Answer  string                   `json:"answer"`
		Context []map[string]interface{} `json:"context"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Answer == "" {
		t.Error("expected non-empty answer")
	}
	if resp.Context == nil {
		t.Error("context must be present, not null")
	}
}

func TestHandleQuery_EmptyQuery(t *testing.T) {
	handler := testServer(t, true).Handler()

	for _, body := range []string{`{"query": ""}`, `{"query": "   "}`, `not json`} {
		rec := postQuery(t, handler, body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: expected 400, got %d", body, rec.Code)
		}
		var resp map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode error response: %v", err)
		}
		if resp["detail"] != "Query cannot be empty." {
			t.Errorf("unexpected detail: %q", resp["detail"])
		}
	}
}

func TestHandleQuery_NotReady(t *testing.T) {
	handler := testServer(t, false).Handler()

	rec := postQuery(t, handler, `{"query": "show denied claims"}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestHandleQuery_MethodNotAllowed(t *testing.T) {
	handler := testServer(t, true).Handler()

	req := httptest.NewRequest(http.MethodGet, "/query", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	tests := []struct {
		name      string
		ready     bool
		wantReady bool
	}{
		{"index loaded", true, true},
		{"index missing", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := testServer(t, tt.ready).Handler()

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}

			var resp struct {
				Status     string `json:"status"`
				IndexReady bool   `json:"index_ready"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.Status != "ok" {
				t.Errorf("expected status ok, got %q", resp.Status)
			}
			if resp.IndexReady != tt.wantReady {
				t.Errorf("expected index_ready=%v, got %v", tt.wantReady, resp.IndexReady)
			}
		})
	}
}

func TestCORS(t *testing.T) {
	handler := testServer(t, true).Handler()

	req := httptest.NewRequest(http.MethodOptions, "/query", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("expected wildcard CORS origin, got %q", rec.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestCORS_RestrictedOrigin(t *testing.T) {
	ix := index.New()
	a := assistant.New(ix, nil, nil, nil)
	srv := New(a, model.ServerConfig{
		Addr:           ":0",
		AllowedOrigins: []string{"http://allowed.example"},
	}, model.RateLimitConfig{RequestsPerSecond: 100, BurstSize: 100}, nil)
	handler := srv.Handler()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no CORS header for disallowed origin, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://allowed.example")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://allowed.example" {
		t.Errorf("expected allowed origin echoed, got %q", got)
	}
}

func TestRateLimit(t *testing.T) {
	ix := index.New()
	ix.Add([]index.Document{{Text: "Claim ID: CLM-1", Metadata: map[string]interface{}{}}})
	a := assistant.New(ix, nil, nil, nil)
	srv := New(a, model.ServerConfig{Addr: ":0", AllowedOrigins: []string{"*"}},
		model.RateLimitConfig{RequestsPerSecond: 1, BurstSize: 2}, nil)
	handler := srv.Handler()

	codes := make(map[int]int)
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = "10.0.0.9:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes[rec.Code]++
	}

	if codes[http.StatusTooManyRequests] == 0 {
		t.Errorf("expected some requests to be rate limited, got codes %v", codes)
	}
	if codes[http.StatusOK] == 0 {
		t.Errorf("expected burst requests to pass, got codes %v", codes)
	}

	// A different client has its own bucket
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "10.0.0.10:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected fresh client to pass, got %d", rec.Code)
	}
}
