package index

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LoadCSV reads a claims dataset and converts each row into an indexable
// document. The first row must be a header; unknown columns are carried
// through into metadata untouched.
func LoadCSV(path string) ([]Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("dataset is empty: %s", path)
	}

	header := rows[0]
	docs := make([]Document, 0, len(rows)-1)

	for _, row := range rows[1:] {
		meta := make(map[string]interface{}, len(header))
		for i, col := range header {
			if i >= len(row) {
				continue
			}
			meta[col] = columnValue(col, row[i])
		}
		docs = append(docs, Document{
			Text:     formatClaim(meta),
			Metadata: meta,
		})
	}

	return docs, nil
}

// columnValue parses claim_amount as a number when possible; every other
// column stays a string. Unparseable amounts are carried through raw.
func columnValue(col, raw string) interface{} {
	if col != "claim_amount" {
		return raw
	}
	amount, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return raw
	}
	return amount
}

// formatClaim renders a claim row as a readable text document.
func formatClaim(meta map[string]interface{}) string {
	get := func(key string) string {
		if v, ok := meta[key]; ok && v != nil {
			return fmt.Sprintf("%v", v)
		}
		return ""
	}

	return fmt.Sprintf(
		"Claim ID: %s\nPatient: %s (ID: %s)\nProvider: %s (%s)\nDate: %s\nDiagnosis: %s\nTreatment: %s\nAmount: $%s\nStatus: %s\nDenial Reason: %s",
		get("claim_id"),
		get("patient_name"), get("patient_id"),
		get("provider_name"), get("specialty"),
		get("date"),
		get("diagnosis"),
		get("treatment_description"),
		get("claim_amount"),
		get("status"),
		get("denial_reason"),
	)
}

// BuildFromCSV loads a dataset and indexes it in one step.
func BuildFromCSV(dataPath string) (*SearchIndex, error) {
	docs, err := LoadCSV(dataPath)
	if err != nil {
		return nil, err
	}

	ix := New()
	ix.Add(docs)
	return ix, nil
}
