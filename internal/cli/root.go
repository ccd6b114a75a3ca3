package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tkc/vibe-pm/internal/config"
	"github.com/tkc/vibe-pm/internal/scan"
	"github.com/tkc/vibe-pm/internal/ui"
)

var (
	cfg     *config.Config
	logger  *slog.Logger
	verbose bool
	rootDir string
	noColor bool
)

// version はビルド時に -ldflags で埋め込む
var version = "dev"

// rootCmd はルートコマンド
var rootCmd = &cobra.Command{
	Use:   "vpm",
	Short: "Task dependency and status reports for a PM directory",
	Long: `vpm reads the PRDs, epics and tasks kept as Markdown files under a
PM root directory (default .claude) and reports project status, blocked
and ready tasks, and a daily standup.

vpm never modifies the PM directory.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadWithPrecedence()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// フラグは設定ファイルと環境変数より優先する
		if rootDir != "" {
			cfg.Root = rootDir
		}
		if noColor {
			cfg.NoColor = true
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		ui.SetNoColor(cfg.NoColor)
		logger = newLogger(cmd.ErrOrStderr(), verbose)
		logger.Debug("config loaded", "root", cfg.Root, "next_limit", cfg.NextLimit, "standup_window", cfg.StandupWindow)
		return nil
	},
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Execute はCLIを実行する
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if errors.Is(err, scan.ErrEnvironment) {
			fmt.Fprintln(os.Stderr, "Run vpm from the project directory or pass --root <dir>")
		}
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "PM root directory (default \".claude\")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(standupCmd)
	rootCmd.AddCommand(blockedCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(inProgressCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(prdCmd)
	rootCmd.AddCommand(epicCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(syncCheckCmd)
	rootCmd.AddCommand(authCmd)
}
