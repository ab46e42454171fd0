package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/claimsight/internal/datagen"
)

var (
	generateCount int
	generateSeed  int64
	generateOut   string
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic claims dataset",
	Long: `Generate writes a synthetic claims CSV for local development and
demos. A fixed --seed produces the same dataset every run.

Example:
  claimsight generate
  claimsight generate --count 5000 --seed 42 --out ./claims_data.csv`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().IntVar(&generateCount, "count", 1000, "number of claims to generate")
	generateCmd.Flags().Int64Var(&generateSeed, "seed", 0, "random seed (0 uses the current time)")
	generateCmd.Flags().StringVar(&generateOut, "out", "", "output CSV path (default from config)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if generateOut != "" {
		cfg.Index.DataPath = generateOut
	}

	seed := generateSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	claims := datagen.New(seed).Generate(generateCount)
	if err := datagen.WriteCSV(cfg.Index.DataPath, claims); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}

	fmt.Printf("✓ Generated %d claims: %s\n", len(claims), cfg.Index.DataPath)
	return nil
}
