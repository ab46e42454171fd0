// Package index provides a lightweight text search index over claim
// documents using term-frequency vectors and cosine similarity.
package index

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"unicode"
)

// Document is one indexed claim: its rendered text plus the raw record
// fields returned as query context.
type Document struct {
	Text     string                 `json:"text"`
	Metadata map[string]interface{} `json:"metadata"`
}

// Result is a scored match for a query.
type Result struct {
	Document string                 `json:"document"`
	Metadata map[string]interface{} `json:"metadata"`
	Score    float64                `json:"score"`
}

// SearchIndex holds documents and their term vectors.
type SearchIndex struct {
	mu      sync.RWMutex
	docs    []Document
	vectors []map[string]float64
}

// New creates an empty index.
func New() *SearchIndex {
	return &SearchIndex{}
}

// Add indexes the given documents.
func (ix *SearchIndex) Add(docs []Document) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	for _, doc := range docs {
		ix.docs = append(ix.docs, doc)
		ix.vectors = append(ix.vectors, vectorize(doc.Text))
	}
}

// Query returns the top k documents most similar to the query text,
// highest score first. Scores that are not finite are reported as 0.
func (ix *SearchIndex) Query(query string, k int) []Result {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if len(ix.docs) == 0 || k <= 0 {
		return []Result{}
	}

	qv := vectorize(query)

	results := make([]Result, 0, len(ix.docs))
	for i, doc := range ix.docs {
		score := cosineSimilarity(qv, ix.vectors[i])
		if math.IsNaN(score) || math.IsInf(score, 0) {
			score = 0
		}
		results = append(results, Result{
			Document: doc.Text,
			Metadata: sanitizeMap(doc.Metadata),
			Score:    score,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > k {
		results = results[:k]
	}
	return results
}

// Len returns the number of indexed documents.
func (ix *SearchIndex) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.docs)
}

type indexFile struct {
	Documents []Document `json:"documents"`
}

// Save writes the index to path as JSON.
func (ix *SearchIndex) Save(path string) error {
	ix.mu.RLock()
	payload := indexFile{Documents: ix.docs}
	data, err := json.Marshal(payload)
	ix.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("marshal index: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create index dir: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	return nil
}

// Load reads an index previously written by Save. Term vectors are rebuilt
// from the stored document text.
func Load(path string) (*SearchIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}

	var payload indexFile
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse index: %w", err)
	}

	ix := New()
	ix.Add(payload.Documents)
	return ix, nil
}

// tokenize lowercases the text and splits it on any non-alphanumeric rune.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func vectorize(text string) map[string]float64 {
	vec := make(map[string]float64)
	for _, tok := range tokenize(text) {
		vec[tok]++
	}
	return vec
}

func cosineSimilarity(a, b map[string]float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for term, av := range a {
		normA += av * av
		if bv, ok := b[term]; ok {
			dot += av * bv
		}
	}
	for _, bv := range b {
		normB += bv * bv
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// sanitizeMap replaces non-finite floats with nil so results always encode
// as valid JSON.
func sanitizeMap(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return nil
	}
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = sanitizeValue(v)
	}
	return out
}

func sanitizeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return nil
		}
		return val
	case map[string]interface{}:
		return sanitizeMap(val)
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = sanitizeValue(item)
		}
		return out
	default:
		return v
	}
}
