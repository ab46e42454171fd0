package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/claimsight/internal/chat"
	"github.com/ppiankov/claimsight/internal/client"
	"github.com/ppiankov/claimsight/internal/model"
	"github.com/ppiankov/claimsight/internal/session"
)

var (
	chatService  string
	chatCapacity int
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive claims conversation",
	Long: `Chat starts an interactive session against the claims service.

Each answer that carries claim records is followed by a status breakdown,
the denial rate, and the top denial reasons for that result set.

Session commands:
  :reset   clear the conversation
  :quit    exit

Example:
  claimsight chat
  claimsight chat --service http://claims.internal:8000`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().StringVar(&chatService, "service", "", "claims service base URL (default from config)")
	chatCmd.Flags().IntVar(&chatCapacity, "capacity", 0, "conversation history capacity (default from config)")
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if chatService != "" {
		cfg.Service.BaseURL = chatService
	}
	if chatCapacity > 0 {
		cfg.History.Capacity = chatCapacity
	}

	ctx := context.Background()

	svc := client.New(cfg.Service.BaseURL, cfg.HTTP)
	store := session.New(cfg.History.Capacity)
	orch := chat.NewOrchestrator(store, svc)

	orch.CheckHealth(ctx)

	out := cmd.OutOrStdout()
	if warning := store.Warning(); warning != "" {
		chat.RenderBanner(out, warning)
	}
	if turn, ok := store.LastTurn(); ok {
		chat.RenderTurn(out, turn)
	}
	fmt.Fprintln(out)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(out, "you> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch line {
		case "":
			continue
		case ":quit", ":exit":
			return scanner.Err()
		case ":reset":
			orch.Reset()
			if turn, ok := store.LastTurn(); ok {
				chat.RenderTurn(out, turn)
			}
			continue
		}

		orch.Submit(ctx, line)

		if turn, ok := store.LastTurn(); ok && turn.Role == model.RoleAssistant {
			chat.RenderTurn(out, turn)
		}
		chat.RenderBanner(out, store.LastError())
	}

	return scanner.Err()
}
