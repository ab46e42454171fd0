// Package datagen produces synthetic claims datasets for local development
// and demos.
package datagen

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
)

var specialties = []string{
	"Cardiology", "Orthopedics", "Pediatrics", "Dermatology", "Oncology", "General Practice",
}

var diagnosesBySpecialty = map[string][]string{
	"Cardiology":       {"Hypertension", "Atrial Fibrillation", "Heart Failure"},
	"Orthopedics":      {"Fracture", "Arthritis", "Tendonitis"},
	"Pediatrics":       {"Otitis Media", "Asthma", "Chickenpox"},
	"Dermatology":      {"Acne", "Eczema", "Psoriasis"},
	"Oncology":         {"Lung Cancer", "Breast Cancer", "Melanoma"},
	"General Practice": {"Flu", "Diabetes Type 2", "Back Pain"},
}

var denialReasons = []string{
	"Duplicate Claim", "Service Not Covered", "Pre-auth Missing", "Incorrect Coding",
}

var firstNames = []string{
	"James", "Mary", "Robert", "Patricia", "John", "Jennifer", "Michael", "Linda",
	"David", "Elizabeth", "William", "Barbara", "Richard", "Susan", "Joseph", "Jessica",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
	"Rodriguez", "Martinez", "Hernandez", "Lopez", "Wilson", "Anderson", "Thomas", "Taylor",
}

// Claim is one generated claim row.
type Claim struct {
	ClaimID              string
	Date                 string
	PatientID            string
	PatientName          string
	ProviderName         string
	Specialty            string
	Diagnosis            string
	TreatmentDescription string
	ClaimAmount          float64
	Status               string
	DenialReason         string
}

// Generator produces synthetic claims. A fixed seed yields a reproducible
// dataset.
type Generator struct {
	rng *rand.Rand
	now time.Time
}

// New creates a generator seeded with the given value.
func New(seed int64) *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now(),
	}
}

type patient struct {
	id   string
	name string
}

type provider struct {
	name      string
	specialty string
}

// Generate produces n claims. Patients and providers are shared across
// claims so the dataset has realistic repetition.
func (g *Generator) Generate(n int) []Claim {
	if n <= 0 {
		return []Claim{}
	}

	numPatients := n / 5
	if numPatients < 1 {
		numPatients = 1
	}
	patients := make([]patient, numPatients)
	for i := range patients {
		patients[i] = patient{
			id:   g.uuid(),
			name: g.pick(firstNames) + " " + g.pick(lastNames),
		}
	}

	numProviders := 50
	if numProviders > n {
		numProviders = n
	}
	providers := make([]provider, numProviders)
	for i := range providers {
		providers[i] = provider{
			name:      "Dr. " + g.pick(lastNames),
			specialty: g.pick(specialties),
		}
	}

	claims := make([]Claim, n)
	for i := range claims {
		prov := providers[g.rng.Intn(len(providers))]
		pat := patients[g.rng.Intn(len(patients))]
		diagnosis := g.pick(diagnosesBySpecialty[prov.specialty])

		status := g.status()
		denialReason := "N/A"
		if status == "Denied" {
			denialReason = g.pick(denialReasons)
		}

		claims[i] = Claim{
			ClaimID:              g.uuid(),
			Date:                 g.pastDate(),
			PatientID:            pat.id,
			PatientName:          pat.name,
			ProviderName:         prov.name,
			Specialty:            prov.specialty,
			Diagnosis:            diagnosis,
			TreatmentDescription: "Treatment for " + diagnosis,
			ClaimAmount:          g.amount(),
			Status:               status,
			DenialReason:         denialReason,
		}
	}

	return claims
}

// status draws Approved/Denied/Pending with 0.6/0.3/0.1 weights.
func (g *Generator) status() string {
	r := g.rng.Float64()
	switch {
	case r < 0.6:
		return "Approved"
	case r < 0.9:
		return "Denied"
	default:
		return "Pending"
	}
}

// amount draws a claim amount between 100 and 5000, rounded to cents.
func (g *Generator) amount() float64 {
	amount := 100.0 + g.rng.Float64()*4900.0
	return float64(int(amount*100)) / 100
}

// pastDate draws a date within the last year.
func (g *Generator) pastDate() string {
	daysAgo := g.rng.Intn(365)
	return g.now.AddDate(0, 0, -daysAgo).Format("2006-01-02")
}

func (g *Generator) pick(options []string) string {
	return options[g.rng.Intn(len(options))]
}

func (g *Generator) uuid() string {
	var b [16]byte
	g.rng.Read(b[:])
	id, err := uuid.FromBytes(b[:])
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

var csvHeader = []string{
	"claim_id", "date", "patient_id", "patient_name", "provider_name",
	"specialty", "diagnosis", "treatment_description", "claim_amount",
	"status", "denial_reason",
}

// WriteCSV writes claims to path in the dataset column order.
func WriteCSV(path string, claims []Claim) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dataset: %w", err)
	}
	defer func() { _ = file.Close() }()

	w := csv.NewWriter(file)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, c := range claims {
		row := []string{
			c.ClaimID, c.Date, c.PatientID, c.PatientName, c.ProviderName,
			c.Specialty, c.Diagnosis, c.TreatmentDescription,
			strconv.FormatFloat(c.ClaimAmount, 'f', 2, 64),
			c.Status, c.DenialReason,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush dataset: %w", err)
	}
	return nil
}
