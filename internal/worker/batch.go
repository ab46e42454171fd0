package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/claimsight/internal/chat"
)

// AskJob submits one query to the claims service
type AskJob struct {
	Query   string
	Service chat.QueryService
}

// Execute executes the query job
func (j *AskJob) Execute(ctx context.Context) Result {
	answer, err := j.Service.Query(ctx, j.Query)
	if err != nil {
		return &AskResult{
			Query:  j.Query,
			Answer: nil,
			Error:  err,
		}
	}
	return &AskResult{
		Query:  j.Query,
		Answer: answer,
		Error:  nil,
	}
}

// AskResult represents the outcome of one batched query
type AskResult struct {
	Query  string
	Answer *chat.Answer
	Error  error
}

// GetError returns the error from the result
func (r *AskResult) GetError() error {
	return r.Error
}

// BatchAsker runs multiple queries against the claims service concurrently
type BatchAsker struct {
	service     chat.QueryService
	concurrency int
}

// NewBatchAsker creates a new batch runner
func NewBatchAsker(service chat.QueryService, concurrency int) *BatchAsker {
	return &BatchAsker{
		service:     service,
		concurrency: concurrency,
	}
}

// ProcessQueries runs the given queries concurrently. Result order follows
// completion, not submission; each result carries its query.
func (b *BatchAsker) ProcessQueries(ctx context.Context, queries []string) []*AskResult {
	if len(queries) == 0 {
		return []*AskResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, query := range queries {
		pool.Submit(&AskJob{
			Query:   query,
			Service: b.service,
		})
	}

	results := pool.Wait()

	askResults := make([]*AskResult, len(results))
	for i, result := range results {
		askResults[i] = result.(*AskResult)
	}

	return askResults
}

// ProcessFile reads queries from a file and runs them concurrently
func (b *BatchAsker) ProcessFile(ctx context.Context, filePath string) ([]*AskResult, error) {
	queries, err := ReadQueriesFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read queries: %w", err)
	}

	return b.ProcessQueries(ctx, queries), nil
}

// ReadQueriesFromFile reads queries from a file (one per line)
func ReadQueriesFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var queries []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			queries = append(queries, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return queries, nil
}
