package chat

import (
	"fmt"
	"io"
	"strings"

	"github.com/ppiankov/claimsight/internal/analytics"
	"github.com/ppiankov/claimsight/internal/model"
)

// RenderTurn writes one conversation turn to w. Assistant turns that carried
// results are followed by the analytics block for that result set.
func RenderTurn(w io.Writer, turn model.ConversationTurn) {
	switch turn.Role {
	case model.RoleUser:
		fmt.Fprintf(w, "you> %s\n", turn.Text)
	default:
		fmt.Fprintf(w, "\n%s\n", turn.Text)
		if turn.HasResults() && len(turn.Results) > 0 {
			RenderResults(w, turn.Results)
		}
	}
}

// RenderResults writes the record table and the derived analytics summary.
// The summary is a view-level derivation, recomputed here on demand.
func RenderResults(w io.Writer, records []model.ClaimRecord) {
	summary := analytics.Summarize(records)

	fmt.Fprintf(w, "\n───────────────────────────────────────────────────────────\n")
	fmt.Fprintf(w, "  Query Results: %d records\n", summary.TotalCount)
	fmt.Fprintf(w, "───────────────────────────────────────────────────────────\n")

	for _, rec := range records {
		line := fmt.Sprintf("  %-10s %s", rec.Status, rec.DisplayAmount())
		if rec.PatientName != "" {
			line += "  " + rec.PatientName
		}
		if rec.Diagnosis != "" {
			line += "  (" + rec.Diagnosis + ")"
		}
		if rec.Status == model.StatusDenied && rec.DenialReason != "" {
			line += "  - " + rec.DenialReason
		}
		fmt.Fprintln(w, line)
	}

	RenderSummary(w, summary)
}

// RenderSummary writes the status breakdown, denial rate, and top denial
// reasons as plain text.
func RenderSummary(w io.Writer, summary analytics.Summary) {
	if summary.TotalCount == 0 {
		return
	}

	fmt.Fprintf(w, "\n  Status Breakdown\n")
	for _, sc := range summary.StatusCounts {
		pct := float64(sc.Count) / float64(summary.TotalCount) * 100
		fmt.Fprintf(w, "    %-12s %3d  (%.0f%%) %s\n", sc.Status, sc.Count, pct, bar(pct))
	}

	if summary.DenialRatePercent > 0 {
		fmt.Fprintf(w, "\n  Denial Rate: %.1f%%\n", summary.DenialRatePercent)
	}

	if len(summary.TopDenialReasons) > 0 {
		fmt.Fprintf(w, "\n  Top Denial Reasons\n")
		for _, rc := range summary.TopDenialReasons {
			fmt.Fprintf(w, "    %-24s %d\n", rc.Reason, rc.Count)
		}
	}
	fmt.Fprintln(w)
}

// RenderBanner writes the persistent error banner line when a diagnostic
// is set.
func RenderBanner(w io.Writer, lastError string) {
	if lastError == "" {
		return
	}
	fmt.Fprintf(w, "⚠ %s\n", lastError)
}

// bar renders a proportional text bar for a percentage.
func bar(pct float64) string {
	const width = 20
	n := int(pct / 100 * width)
	if n < 0 {
		n = 0
	}
	if n > width {
		n = width
	}
	return strings.Repeat("█", n) + strings.Repeat("░", width-n)
}
