// Package analytics derives summary statistics from claim result sets.
// Summaries are recomputed on demand and never stored as session state.
package analytics

import (
	"math"

	"github.com/ppiankov/claimsight/internal/model"
)

// maxDenialReasons bounds the ranked denial-reason list.
const maxDenialReasons = 5

// StatusCount is one status bucket. Buckets appear in first-seen order
// among the input records.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// ReasonCount is one denial-reason bucket.
type ReasonCount struct {
	Reason string `json:"reason"`
	Count  int    `json:"count"`
}

// Summary holds the derived statistics for one result set.
type Summary struct {
	StatusCounts      []StatusCount `json:"status_counts"`
	DeniedCount       int           `json:"denied_count"`
	TotalCount        int           `json:"total_count"`
	DenialRatePercent float64       `json:"denial_rate_percent"` // one-decimal rounding, 0 when empty
	TopDenialReasons  []ReasonCount `json:"top_denial_reasons"`
}

// StatusCount returns the count for a given status, 0 when absent.
func (s Summary) StatusCountFor(status string) int {
	for _, sc := range s.StatusCounts {
		if sc.Status == status {
			return sc.Count
		}
	}
	return 0
}

// Summarize computes a Summary from a list of claim records in a single pass.
// It is pure and deterministic: the same input list always yields the same
// output, including tie-break order, and the input is never mutated.
// An empty input yields a zero summary, which callers treat as "nothing to
// display" rather than an error.
func Summarize(records []model.ClaimRecord) Summary {
	if len(records) == 0 {
		return Summary{}
	}

	var (
		statuses    []StatusCount
		statusIdx   = make(map[string]int)
		reasons     []ReasonCount
		reasonIdx   = make(map[string]int)
		deniedCount int
	)

	for _, rec := range records {
		status := rec.Status
		if status == "" {
			status = model.StatusUnknown
		}
		if i, ok := statusIdx[status]; ok {
			statuses[i].Count++
		} else {
			statusIdx[status] = len(statuses)
			statuses = append(statuses, StatusCount{Status: status, Count: 1})
		}

		if status != model.StatusDenied {
			continue
		}
		deniedCount++

		reason := rec.DenialReason
		if reason == "" {
			reason = model.StatusUnknown
		}
		if i, ok := reasonIdx[reason]; ok {
			reasons[i].Count++
		} else {
			reasonIdx[reason] = len(reasons)
			reasons = append(reasons, ReasonCount{Reason: reason, Count: 1})
		}
	}

	return Summary{
		StatusCounts:      statuses,
		DeniedCount:       deniedCount,
		TotalCount:        len(records),
		DenialRatePercent: round1(float64(deniedCount) / float64(len(records)) * 100),
		TopDenialReasons:  topReasons(reasons),
	}
}

// topReasons ranks denial reasons by count descending and truncates to the
// top five. The sort is an insertion into a copy of the first-seen-ordered
// slice, so equal counts keep their first-seen relative order.
func topReasons(reasons []ReasonCount) []ReasonCount {
	if len(reasons) == 0 {
		return nil
	}

	ranked := make([]ReasonCount, len(reasons))
	copy(ranked, reasons)

	// Stable insertion sort: strictly-greater moves left, equals stay put.
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && ranked[j].Count > ranked[j-1].Count; j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}

	if len(ranked) > maxDenialReasons {
		ranked = ranked[:maxDenialReasons]
	}
	return ranked
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
