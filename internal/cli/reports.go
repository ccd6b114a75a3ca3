package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/tkc/vibe-pm/internal/deps"
	"github.com/tkc/vibe-pm/internal/notify"
	"github.com/tkc/vibe-pm/internal/report"
	"github.com/tkc/vibe-pm/internal/search"
	"github.com/tkc/vibe-pm/internal/validate"
)

var (
	standupWindow  time.Duration
	nextLimit      int
	nextNotify     bool
	validateStrict bool
)

var standupCmd = &cobra.Command{
	Use:   "standup",
	Short: "Show recent activity, work in progress and next tasks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		window := cfg.StandupWindow
		if cmd.Flags().Changed("since") {
			if standupWindow <= 0 {
				return fmt.Errorf("--since must be positive, got %s", standupWindow)
			}
			window = standupWindow
		}

		snap, _, err := loadSnapshot()
		if err != nil {
			return err
		}

		s := report.NewStandup(snap, time.Now(), window, cfg.NextLimit)
		return report.WriteStandup(cmd.OutOrStdout(), s)
	},
}

var blockedCmd = &cobra.Command{
	Use:   "blocked",
	Short: "List open tasks waiting on dependencies",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, _, err := loadSnapshot()
		if err != nil {
			return err
		}
		return report.Blocked(cmd.OutOrStdout(), deps.Blocked(snap))
	},
}

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "List tasks that are ready to start",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit := cfg.NextLimit
		if cmd.Flags().Changed("limit") {
			if nextLimit <= 0 {
				return fmt.Errorf("--limit must be positive, got %d", nextLimit)
			}
			limit = nextLimit
		}

		snap, _, err := loadSnapshot()
		if err != nil {
			return err
		}

		ready := deps.Next(snap, limit)
		if err := report.Next(cmd.OutOrStdout(), ready); err != nil {
			return err
		}

		if nextNotify && len(ready) > 0 {
			t := ready[0]
			if err := notify.SendNextTask(t.Epic, t.ID, t.DisplayName(), len(ready)); err != nil {
				logger.Warn("failed to send notification", "error", err)
			}
		}
		return nil
	},
}

var inProgressCmd = &cobra.Command{
	Use:   "in-progress",
	Short: "List progress records and epics in progress",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, _, err := loadSnapshot()
		if err != nil {
			return err
		}
		return report.InProgressWork(cmd.OutOrStdout(), snap)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search PRDs, epics and tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, _, err := loadSnapshot()
		if err != nil {
			return err
		}

		result, err := search.Search(snap, strings.Join(args, " "))
		if err != nil {
			return err
		}
		for _, s := range result.Skipped {
			logger.Warn("skipped unreadable file", "path", s.Path, "reason", s.Reason)
		}
		return report.Search(cmd.OutOrStdout(), result)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the PM directory for structural problems",
	Long: `Check the PM directory for missing files, broken dependency references,
dependency cycles, missing frontmatter and placeholder text.

Files are never modified. With --strict the command fails when any error
is found.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, scanReport, err := loadSnapshot()
		if err != nil {
			return err
		}

		result := validate.Validate(snap, scanReport)
		if err := report.Validation(cmd.OutOrStdout(), result); err != nil {
			return err
		}
		if validateStrict && result.Errors() > 0 {
			return fmt.Errorf("validation found %d error(s)", result.Errors())
		}
		return nil
	},
}

func init() {
	standupCmd.Flags().DurationVar(&standupWindow, "since", 0, "activity window (default from config, 24h)")
	nextCmd.Flags().IntVarP(&nextLimit, "limit", "n", 0, "maximum number of tasks (default from config, 3)")
	nextCmd.Flags().BoolVar(&nextNotify, "notify", false, "send a desktop notification for the first ready task")
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "exit with an error when problems are found")
}
