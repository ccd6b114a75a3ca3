package cli

import (
	"github.com/spf13/cobra"
	"github.com/tkc/vibe-pm/internal/report"
	"github.com/tkc/vibe-pm/internal/stats"
)

var prdCmd = &cobra.Command{
	Use:   "prd",
	Short: "Show product requirement documents",
}

var prdListCmd = &cobra.Command{
	Use:   "list",
	Short: "List PRDs with their status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, _, err := loadSnapshot()
		if err != nil {
			return err
		}
		return report.PRDList(cmd.OutOrStdout(), snap.PRDs)
	},
}

var prdStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show PRD counts by status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, _, err := loadSnapshot()
		if err != nil {
			return err
		}
		return report.PRDStatus(cmd.OutOrStdout(), snap.PRDs, stats.Aggregate(snap))
	},
}

func init() {
	prdCmd.AddCommand(prdListCmd)
	prdCmd.AddCommand(prdStatusCmd)
}
