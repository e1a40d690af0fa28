package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	onceMode   bool
	debugMode  bool
	configFile string
	inboxDir   string
)

var rootCmd = &cobra.Command{
	Use:   "markdown-notes",
	Short: "Ingest dropped text files into formatted markdown notes",
	Long: `Watches an inbox directory for raw text files, transforms each one into a
structured markdown note via the configured model provider, and files the
result into the content store under a collision-safe slug.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; real environment variables win either way.
		_ = godotenv.Load()

		cfg, err := LoadConfig(configFile)
		if err != nil {
			return err
		}
		if inboxDir != "" {
			cfg.InboxDir = inboxDir
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger, err := newLogger(debugMode)
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		defer logger.Sync()

		llm, err := NewLLMClient(cfg)
		if err != nil {
			return err
		}

		generator, err := NewNoteGenerator(llm, NewContextAssembler(cfg))
		if err != nil {
			return err
		}

		processor := NewInboxProcessor(cfg, generator, logger)
		dispatcher := NewInboxDispatcher(cfg, processor, logger)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if onceMode {
			return dispatcher.RunOnce(ctx)
		}
		return dispatcher.Watch(ctx)
	},
}

func newLogger(development bool) (*zap.Logger, error) {
	if development {
		return zap.NewDevelopment()
	}
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return config.Build()
}

func init() {
	rootCmd.Flags().BoolVar(&onceMode, "once", false, "Process existing inbox files once, then exit")
	rootCmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.Flags().StringVar(&configFile, "config", "", "Path to an optional YAML config file")
	rootCmd.Flags().StringVar(&inboxDir, "inbox", "", "Override the inbox directory")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
