package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/tkc/vibe-pm/internal/deps"
	"github.com/tkc/vibe-pm/internal/domain"
	"github.com/tkc/vibe-pm/internal/ui"
)

var (
	taskEpicFilter  string
	taskStateFilter string
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Show tasks",
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks with their dependency state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := parseStateFilter(taskStateFilter)
		if err != nil {
			return err
		}

		snap, _, err := loadSnapshot()
		if err != nil {
			return err
		}

		var rows []deps.Classification
		for i := range snap.Epics {
			e := &snap.Epics[i]
			if taskEpicFilter != "" && e.Name != taskEpicFilter {
				continue
			}
			for _, c := range deps.Classify(e) {
				if state != nil && c.State != *state {
					continue
				}
				rows = append(rows, c)
			}
		}

		out := cmd.OutOrStdout()
		if len(rows) == 0 {
			fmt.Fprintln(out, "No tasks found")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "STATE\tEPIC\tID\tNAME\tSTATUS")
		fmt.Fprintln(w, "-----\t----\t--\t----\t------")

		for _, c := range rows {
			fmt.Fprintf(w, "%s %s\t%s\t#%s\t%s\t%s\n",
				ui.StatusIcon(c.State), c.State, c.Task.Epic, c.Task.ID,
				truncate(c.Task.DisplayName(), 50), ui.StatusText(c.Task.Status))
		}
		if err := w.Flush(); err != nil {
			return err
		}

		fmt.Fprintln(out)
		fmt.Fprintf(out, "Total: %d tasks\n", len(rows))
		return nil
	},
}

var taskShowCmd = &cobra.Command{
	Use:   "show <epic> <task-id>",
	Short: "Show task details",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, _, err := loadSnapshot()
		if err != nil {
			return err
		}

		epic, err := findEpic(snap, args[0])
		if err != nil {
			return err
		}
		for _, c := range deps.Classify(epic) {
			if c.Task.ID == args[1] {
				printTaskDetail(cmd.OutOrStdout(), epic, c)
				return nil
			}
		}
		return fmt.Errorf("task not found: %s #%s", args[0], args[1])
	},
}

func printTaskDetail(out io.Writer, epic *domain.Epic, c deps.Classification) {
	t := c.Task
	fmt.Fprintf(out, "Task: %s\n", ui.Bold(t.DisplayName()))
	fmt.Fprintf(out, "ID:     #%s\n", t.ID)
	fmt.Fprintf(out, "Epic:   %s\n", t.Epic)
	fmt.Fprintf(out, "Status: %s\n", ui.StatusText(t.Status))
	fmt.Fprintf(out, "State:  %s %s\n", ui.StatusIcon(c.State), c.State)
	fmt.Fprintln(out)

	if t.HasDependencies() {
		fmt.Fprintln(out, "Depends on:")
		for _, id := range t.DependsOn {
			dep, ok := epic.Task(id)
			if !ok {
				fmt.Fprintf(out, "  #%s %s\n", id, ui.Red("(not found)"))
				continue
			}
			fmt.Fprintf(out, "  #%s %s [%s]\n", id, dep.DisplayName(), ui.StatusText(dep.Status))
		}
		fmt.Fprintln(out)
	}

	if t.Parallel {
		fmt.Fprintln(out, "Parallel: yes")
	}
	if t.GitHub != "" {
		fmt.Fprintf(out, "Issue: %s\n", t.GitHub)
	}
	fmt.Fprintf(out, "File: %s\n", t.Path)
}

func parseStateFilter(s string) (*deps.State, error) {
	var state deps.State
	switch s {
	case "":
		return nil, nil
	case "ready":
		state = deps.StateReady
	case "blocked":
		state = deps.StateBlocked
	case "closed", "not-open":
		state = deps.StateNotOpen
	default:
		return nil, fmt.Errorf("unknown state %q (ready, blocked, closed)", s)
	}
	return &state, nil
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

func init() {
	taskListCmd.Flags().StringVarP(&taskEpicFilter, "epic", "e", "", "only tasks of this epic")
	taskListCmd.Flags().StringVarP(&taskStateFilter, "state", "s", "", "filter by state (ready, blocked, closed)")

	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskShowCmd)
}
