package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/claimsight/internal/chat"
	"github.com/ppiankov/claimsight/internal/client"
	"github.com/ppiankov/claimsight/internal/model"
	"github.com/ppiankov/claimsight/internal/worker"
)

var (
	askService     string
	askFile        string
	askConcurrency int
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask [query]",
	Short: "Ask the claims service a single question",
	Long: `Ask sends one query to the claims service and prints the answer with
the matching claim records and their analytics summary.

With --file, queries are read from a file (one per line, # comments and
blank lines skipped) and run concurrently.

Example:
  claimsight ask "show all denied claims"
  claimsight ask --file queries.txt --concurrency 4`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().StringVar(&askService, "service", "", "claims service base URL (default from config)")
	askCmd.Flags().StringVar(&askFile, "file", "", "file with one query per line")
	askCmd.Flags().IntVar(&askConcurrency, "concurrency", 3, "concurrent queries for --file")
}

func runAsk(cmd *cobra.Command, args []string) error {
	if askFile == "" && len(args) == 0 {
		return fmt.Errorf("provide a query or --file")
	}
	if askFile != "" && len(args) > 0 {
		return fmt.Errorf("provide either a query or --file, not both")
	}

	cfg := loadConfig()
	if askService != "" {
		cfg.Service.BaseURL = askService
	}

	ctx := context.Background()
	svc := client.New(cfg.Service.BaseURL, cfg.HTTP)
	out := cmd.OutOrStdout()

	if askFile != "" {
		asker := worker.NewBatchAsker(svc, askConcurrency)
		results, err := asker.ProcessFile(ctx, askFile)
		if err != nil {
			return err
		}

		failures := 0
		for _, res := range results {
			fmt.Fprintf(out, "you> %s\n", res.Query)
			if res.Error != nil {
				failures++
				fmt.Fprintf(out, "\n%s\n", chat.FallbackMessage)
				if verbose {
					fmt.Fprintf(os.Stderr, "query %q failed: %v\n", res.Query, res.Error)
				}
				fmt.Fprintln(out)
				continue
			}
			renderAnswer(out, res.Answer)
		}

		if failures > 0 {
			return fmt.Errorf("%d of %d queries failed", failures, len(results))
		}
		return nil
	}

	answer, err := svc.Query(ctx, args[0])
	if err != nil {
		fmt.Fprintf(out, "%s\n", chat.FallbackMessage)
		return fmt.Errorf("query failed: %w", err)
	}

	renderAnswer(out, answer)
	return nil
}

func renderAnswer(out io.Writer, answer *chat.Answer) {
	fmt.Fprintf(out, "\n%s\n", answer.Text)

	if len(answer.Records) > 0 {
		records := make([]model.ClaimRecord, 0, len(answer.Records))
		for _, raw := range answer.Records {
			records = append(records, model.NormalizeRecord(raw))
		}
		chat.RenderResults(out, records)
	}
	fmt.Fprintln(out)
}
