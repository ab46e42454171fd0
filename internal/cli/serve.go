package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ppiankov/claimsight/internal/assistant"
	"github.com/ppiankov/claimsight/internal/cache"
	"github.com/ppiankov/claimsight/internal/index"
	"github.com/ppiankov/claimsight/internal/llm"
	"github.com/ppiankov/claimsight/internal/server"
)

var (
	serveAddr      string
	serveIndexPath string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the claims query service",
	Long: `Serve runs the HTTP claims query service that the chat and ask
commands talk to.

It answers POST /query with an answer and the claim records behind it,
and GET /health with service status. The index must exist; build it with
'claimsight index' first.

Example:
  claimsight serve
  claimsight serve --addr :9000 --index ./index.json
  CLAIMSIGHT_LLM.PROVIDER=ollama claimsight serve`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	serveCmd.Flags().StringVar(&serveIndexPath, "index", "", "index file path (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if serveIndexPath != "" {
		cfg.Index.Path = serveIndexPath
	}

	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ix, err := index.Load(cfg.Index.Path)
	if err != nil {
		logger.Warn("index not loaded, service will report not ready",
			zap.String("path", cfg.Index.Path), zap.Error(err))
		ix = index.New()
	} else {
		logger.Info("index loaded",
			zap.String("path", cfg.Index.Path), zap.Int("documents", ix.Len()))
	}

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM, cfg.HTTP))
	if err != nil {
		return fmt.Errorf("init LLM provider: %w", err)
	}
	if provider != nil {
		logger.Info("LLM generation enabled", zap.String("provider", provider.Name()))
	} else {
		logger.Info("LLM generation disabled, using canned responses")
	}

	var answerCache cache.Cache
	if cfg.Cache.Enabled {
		answerCache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	a := assistant.New(ix, provider, answerCache, logger)
	srv := server.New(a, cfg.Server, cfg.RateLimiting, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Start(ctx)
}

func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
