package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// StatusUnknown is assigned when the service omits a claim status.
// Statuses are open strings: the service is the source of truth and may
// introduce values beyond Approved/Denied/Pending at any time.
const StatusUnknown = "Unknown"

// Well-known status values observed in service responses.
const (
	StatusApproved = "Approved"
	StatusDenied   = "Denied"
	StatusPending  = "Pending"
)

// ClaimRecord is one insurance claim as returned by the query service.
// A record is immutable once normalized; nothing mutates its fields afterwards.
type ClaimRecord struct {
	ClaimID      string  `json:"claim_id"`
	PatientID    string  `json:"patient_id,omitempty"`
	PatientName  string  `json:"patient_name,omitempty"`
	ProviderName string  `json:"provider_name,omitempty"`
	Diagnosis    string  `json:"diagnosis,omitempty"`
	Specialty    string  `json:"specialty,omitempty"`
	Date         string  `json:"date,omitempty"` // free-form, never parsed
	Status       string  `json:"status"`
	Amount       float64 `json:"claim_amount"`
	AmountRaw    string  `json:"claim_amount_raw,omitempty"` // original value when coercion failed
	DenialReason string  `json:"denial_reason,omitempty"`
}

// NormalizeRecord produces a best-effort ClaimRecord from an arbitrary
// service payload. Every field is defaulted safely: a missing status becomes
// StatusUnknown, and a claim_amount that cannot be coerced to a number
// aggregates as zero while the raw value is preserved for display.
// NormalizeRecord never fails.
func NormalizeRecord(raw map[string]interface{}) ClaimRecord {
	rec := ClaimRecord{
		ClaimID:      stringField(raw, "claim_id"),
		PatientID:    stringField(raw, "patient_id"),
		PatientName:  stringField(raw, "patient_name"),
		ProviderName: stringField(raw, "provider_name"),
		Diagnosis:    stringField(raw, "diagnosis"),
		Specialty:    stringField(raw, "specialty"),
		Date:         stringField(raw, "date"),
		Status:       stringField(raw, "status"),
		DenialReason: stringField(raw, "denial_reason"),
	}

	if rec.Status == "" {
		rec.Status = StatusUnknown
	}

	rec.Amount, rec.AmountRaw = coerceAmount(raw["claim_amount"])

	return rec
}

// DisplayAmount renders the claim amount for presentation. When the service
// sent a non-numeric amount the raw value is shown instead of 0.
func (r ClaimRecord) DisplayAmount() string {
	if r.AmountRaw != "" {
		return r.AmountRaw
	}
	return fmt.Sprintf("$%.2f", r.Amount)
}

// coerceAmount converts a claim_amount of any JSON type to a float64.
// Non-numeric and non-finite values yield (0, raw-string) so displays
// can fall back while sums stay finite.
func coerceAmount(v interface{}) (float64, string) {
	switch amt := v.(type) {
	case nil:
		return 0, ""
	case float64:
		if math.IsNaN(amt) || math.IsInf(amt, 0) {
			return 0, fmt.Sprintf("%v", amt)
		}
		return amt, ""
	case int:
		return float64(amt), ""
	case string:
		trimmed := strings.TrimSpace(amt)
		if trimmed == "" {
			return 0, ""
		}
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f, ""
		}
		return 0, amt
	default:
		return 0, fmt.Sprintf("%v", v)
	}
}

func stringField(raw map[string]interface{}, key string) string {
	v, ok := raw[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
