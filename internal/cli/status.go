package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/tkc/vibe-pm/internal/report"
	"github.com/tkc/vibe-pm/internal/stats"
	"gopkg.in/yaml.v3"
)

var statusYAML bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show PRD, epic and task counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, _, err := loadSnapshot()
		if err != nil {
			return err
		}

		summary := stats.Aggregate(snap)
		if statusYAML {
			return writeStatusYAML(cmd.OutOrStdout(), summary)
		}
		return report.Status(cmd.OutOrStdout(), summary)
	},
}

// statusDoc は status --yaml の出力形式
type statusDoc struct {
	PRDs struct {
		Total    int            `yaml:"total"`
		ByStatus map[string]int `yaml:"by_status"`
	} `yaml:"prds"`
	Epics struct {
		Total    int            `yaml:"total"`
		ByStatus map[string]int `yaml:"by_status"`
	} `yaml:"epics"`
	Tasks struct {
		Total  int `yaml:"total"`
		Open   int `yaml:"open"`
		Closed int `yaml:"closed"`
		Other  int `yaml:"other"`
	} `yaml:"tasks"`
	Progress []epicProgressDoc `yaml:"progress"`
}

type epicProgressDoc struct {
	Epic    string `yaml:"epic"`
	Total   int    `yaml:"total"`
	Closed  int    `yaml:"closed"`
	Percent int    `yaml:"percent"`
}

func newStatusDoc(s stats.Summary) statusDoc {
	var doc statusDoc
	doc.PRDs.Total = s.PRDs
	doc.PRDs.ByStatus = countsMap(s.PRDsByStatus)
	doc.Epics.Total = s.Epics
	doc.Epics.ByStatus = countsMap(s.EpicStatuses)
	doc.Tasks.Total = s.Tasks.Total
	doc.Tasks.Open = s.Tasks.Open
	doc.Tasks.Closed = s.Tasks.Closed
	doc.Tasks.Other = s.Tasks.Other
	doc.Progress = make([]epicProgressDoc, 0, len(s.Progress))
	for _, p := range s.Progress {
		doc.Progress = append(doc.Progress, epicProgressDoc{
			Epic:    p.Name,
			Total:   p.Total,
			Closed:  p.Closed,
			Percent: p.Percent,
		})
	}
	return doc
}

func countsMap(counts []stats.StatusCount) map[string]int {
	m := make(map[string]int, len(counts))
	for _, c := range counts {
		m[c.Status] = c.Count
	}
	return m
}

func writeStatusYAML(w io.Writer, s stats.Summary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newStatusDoc(s)); err != nil {
		return fmt.Errorf("failed to encode status: %w", err)
	}
	return enc.Close()
}

func init() {
	statusCmd.Flags().BoolVar(&statusYAML, "yaml", false, "print the summary as YAML")
}
