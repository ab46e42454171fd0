package assistant

import "strings"

// Intent classifies what a query expects back.
type Intent string

const (
	// IntentChat is conversational; no claims data is retrieved.
	IntentChat Intent = "chat"
	// IntentAnalysis wants text insight backed by a small context table.
	IntentAnalysis Intent = "analysis"
	// IntentData wants the matching records themselves.
	IntentData Intent = "data"
)

var chatPatterns = []string{
	"hello", "hi", "hey", "how are you", "what can you do",
	"help", "thank", "bye", "who are you", "your name",
}

var analysisPatterns = []string{
	"why", "explain", "analyze", "insight", "pattern", "trend",
	"what do you think", "your view", "summarize", "summary",
	"tell me about", "describe", "what are the", "main reason",
	"most common", "average", "typical",
}

var dataPatterns = []string{
	"show", "list", "find", "get", "display", "search",
	"all", "denied", "approved", "pending", "claims for",
	"patient", "provider", "doctor",
}

var allPatterns = []string{"all", "every", "list all", "show all"}

// DetectIntent classifies a query and returns how many records to retrieve
// for it. Chat queries retrieve nothing.
func DetectIntent(query string) (Intent, int) {
	q := strings.ToLower(strings.TrimSpace(query))

	if containsAny(q, chatPatterns) {
		return IntentChat, 0
	}

	if containsAny(q, analysisPatterns) {
		return IntentAnalysis, 20
	}

	if containsAny(q, dataPatterns) {
		if containsAny(q, allPatterns) {
			return IntentData, 50
		}
		return IntentData, 15
	}

	// Default: treat as analysis with a smaller context
	return IntentAnalysis, 10
}

func containsAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
