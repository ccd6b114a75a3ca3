package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/tkc/vibe-pm/internal/github"
	"github.com/tkc/vibe-pm/internal/report"
)

var syncTimeout time.Duration

var syncCheckCmd = &cobra.Command{
	Use:   "sync-check",
	Short: "Compare local task status with linked GitHub issues",
	Long: `Compare the status of every task and epic that has a github: issue URL
with the state of that issue on GitHub, and report the differences.

Nothing is written to GitHub or to the PM directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cfg.HasToken() {
			return fmt.Errorf("not logged in. Run: vpm auth login (or set GITHUB_TOKEN)")
		}

		snap, _, err := loadSnapshot()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), syncTimeout)
		defer cancel()

		client := github.NewClient(cfg.GitHubToken)
		drift, err := github.CheckDrift(ctx, client, snap)
		if err != nil {
			return fmt.Errorf("failed to check GitHub issues: %w", err)
		}
		logger.Debug("sync check complete", "checked", len(drift.Checked), "drifted", len(drift.Drifted()))

		return report.SyncCheck(cmd.OutOrStdout(), drift)
	},
}

func init() {
	syncCheckCmd.Flags().DurationVar(&syncTimeout, "timeout", 60*time.Second, "timeout for GitHub requests")
}
