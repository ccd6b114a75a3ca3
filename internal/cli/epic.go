package cli

import (
	"github.com/spf13/cobra"
	"github.com/tkc/vibe-pm/internal/report"
)

var epicCmd = &cobra.Command{
	Use:   "epic",
	Short: "Show epics",
}

var epicListCmd = &cobra.Command{
	Use:   "list",
	Short: "List epics grouped by status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, _, err := loadSnapshot()
		if err != nil {
			return err
		}
		return report.EpicList(cmd.OutOrStdout(), snap)
	},
}

var epicShowCmd = &cobra.Command{
	Use:   "show <epic>",
	Short: "Show an epic and its tasks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, _, err := loadSnapshot()
		if err != nil {
			return err
		}
		epic, err := findEpic(snap, args[0])
		if err != nil {
			return err
		}
		return report.EpicShow(cmd.OutOrStdout(), epic)
	},
}

var epicStatusCmd = &cobra.Command{
	Use:   "status <epic>",
	Short: "Show progress of an epic",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, _, err := loadSnapshot()
		if err != nil {
			return err
		}
		epic, err := findEpic(snap, args[0])
		if err != nil {
			return err
		}
		return report.EpicStatus(cmd.OutOrStdout(), epic)
	},
}

func init() {
	epicCmd.AddCommand(epicListCmd)
	epicCmd.AddCommand(epicShowCmd)
	epicCmd.AddCommand(epicStatusCmd)
}
