package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/claimsight/internal/index"
)

var (
	indexDataPath string
	indexOutPath  string
)

// indexCmd represents the index command
var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the search index from a claims dataset",
	Long: `Index reads a claims CSV dataset, renders each claim as a searchable
document, and writes the index file the serve command loads.

Example:
  claimsight index
  claimsight index --data ./claims_data.csv --out ./index.json`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)

	indexCmd.Flags().StringVar(&indexDataPath, "data", "", "claims CSV path (default from config)")
	indexCmd.Flags().StringVar(&indexOutPath, "out", "", "index output path (default from config)")
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if indexDataPath != "" {
		cfg.Index.DataPath = indexDataPath
	}
	if indexOutPath != "" {
		cfg.Index.Path = indexOutPath
	}

	ix, err := index.BuildFromCSV(cfg.Index.DataPath)
	if err != nil {
		return fmt.Errorf("build index: %w", err)
	}

	if err := ix.Save(cfg.Index.Path); err != nil {
		return fmt.Errorf("save index: %w", err)
	}

	fmt.Printf("✓ Indexed %d claims from %s into %s\n", ix.Len(), cfg.Index.DataPath, cfg.Index.Path)
	return nil
}
