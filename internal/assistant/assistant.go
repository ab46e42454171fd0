// Package assistant answers claims questions by routing queries through
// intent detection, index retrieval and optional LLM generation.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ppiankov/claimsight/internal/cache"
	"github.com/ppiankov/claimsight/internal/index"
	"github.com/ppiankov/claimsight/internal/llm"
)

// NoMatchMessage is returned when retrieval finds nothing relevant.
const NoMatchMessage = "No relevant claims found for your query."

const chatSystemPrompt = `You are a Claims Intelligence Assistant. Help users with insurance claims data.
Keep responses concise (3-5 bullet points max). Don't over-explain.
Example capabilities: search claims, analyze denial patterns, find patient/provider data.`

const analysisSystemPrompt = `You are a claims data analyst. Provide insightful analysis based on the data.
Focus on patterns, trends, and actionable insights.
Be conversational but informative. Give 2-3 sentences of analysis.`

// Response is the assistant's answer plus the claim records backing it.
type Response struct {
	Answer  string         `json:"answer"`
	Context []index.Result `json:"context"`
}

// Assistant answers queries against an indexed claims dataset. The LLM
// provider and the answer cache are both optional.
type Assistant struct {
	index    *index.SearchIndex
	provider llm.Provider
	cache    cache.Cache
	logger   *zap.Logger
}

// New creates an assistant. A nil provider disables generation and falls
// back to canned responses; a nil cache disables answer caching.
func New(ix *index.SearchIndex, provider llm.Provider, answerCache cache.Cache, logger *zap.Logger) *Assistant {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assistant{
		index:    ix,
		provider: provider,
		cache:    answerCache,
		logger:   logger,
	}
}

// Ready reports whether the assistant has an index to answer from.
func (a *Assistant) Ready() bool {
	return a.index != nil && a.index.Len() > 0
}

// Query answers a user query.
func (a *Assistant) Query(ctx context.Context, query string) (*Response, error) {
	intent, resultCount := DetectIntent(query)
	a.logger.Info("processing query",
		zap.String("intent", string(intent)),
		zap.Int("result_count", resultCount))

	if cached, ok := a.cachedResponse(query); ok {
		a.logger.Debug("answer cache hit")
		return cached, nil
	}

	var resp *Response
	switch intent {
	case IntentChat:
		resp = &Response{
			Answer:  a.generateChat(ctx, query),
			Context: []index.Result{},
		}

	default:
		results := a.index.Query(query, resultCount)
		if len(results) == 0 {
			resp = &Response{Answer: NoMatchMessage, Context: []index.Result{}}
			break
		}

		if intent == IntentAnalysis {
			answer := a.generateAnalysis(ctx, query, results)
			// Analysis shows only a short context table
			top := results
			if len(top) > 5 {
				top = top[:5]
			}
			resp = &Response{Answer: answer, Context: top}
		} else {
			resp = &Response{
				Answer:  fmt.Sprintf("Found %d claims matching your search.", len(results)),
				Context: results,
			}
		}
	}

	a.storeResponse(query, resp)
	return resp, nil
}

func (a *Assistant) generateChat(ctx context.Context, query string) string {
	if a.provider == nil {
		return "Hello! I'm your Claims Intelligence Assistant. I can help you search and analyze claims data. Try asking things like 'Show all denied claims' or 'What are the main denial reasons?'"
	}

	resp, err := a.provider.Generate(ctx, llm.GenerateRequest{
		System:      chatSystemPrompt,
		Prompt:      query,
		MaxTokens:   500,
		Temperature: 0.7,
	})
	if err != nil {
		a.logger.Warn("chat generation failed", zap.Error(err))
		return "Hello! I can help you analyze claims data. Try asking 'Show denied claims' or 'What are the top denial reasons?'"
	}
	return resp.Text
}

func (a *Assistant) generateAnalysis(ctx context.Context, query string, results []index.Result) string {
	if a.provider == nil {
		return fmt.Sprintf("Based on %d relevant claims, I can see patterns in the data. The table below shows the details.", len(results))
	}

	resp, err := a.provider.Generate(ctx, llm.GenerateRequest{
		System:      analysisSystemPrompt,
		Prompt:      fmt.Sprintf("Analyze this claims data and answer: %s\n\nData summary:\n%s", query, contextSummary(results)),
		MaxTokens:   200,
		Temperature: 0.5,
	})
	if err != nil {
		a.logger.Warn("analysis generation failed", zap.Error(err))
		return fmt.Sprintf("Looking at %d claims, I found relevant data for your query. See the breakdown below.", len(results))
	}
	return resp.Text
}

// contextSummary renders up to ten result records as one line each for the
// analysis prompt.
func contextSummary(results []index.Result) string {
	if len(results) > 10 {
		results = results[:10]
	}

	lines := make([]string, 0, len(results))
	for _, r := range results {
		lines = append(lines, fmt.Sprintf("- %s claim: %s, $%s, %s",
			metaString(r.Metadata, "status", "Unknown"),
			metaString(r.Metadata, "patient_name", "N/A"),
			metaString(r.Metadata, "claim_amount", "0"),
			metaString(r.Metadata, "denial_reason", "N/A")))
	}
	return strings.Join(lines, "\n")
}

func metaString(m map[string]interface{}, key, fallback string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return fallback
	}
	return fmt.Sprintf("%v", v)
}

func (a *Assistant) cachedResponse(query string) (*Response, bool) {
	if a.cache == nil {
		return nil, false
	}
	data, found := a.cache.Get(cache.QueryKey(query))
	if !found {
		return nil, false
	}
	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, false
	}
	return &resp, true
}

func (a *Assistant) storeResponse(query string, resp *Response) {
	if a.cache == nil {
		return
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := a.cache.Set(cache.QueryKey(query), data, 0); err != nil {
		a.logger.Debug("answer cache write failed", zap.Error(err))
	}
}
