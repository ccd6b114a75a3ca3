package report

import (
	"io"

	"github.com/tkc/vibe-pm/internal/stats"
)

// Status はプロジェクト全体の件数を書き出す
func Status(w io.Writer, s stats.Summary) error {
	p := newPrinter(w)
	p.heading("📊 Project Status")

	p.println("📄 PRDs:")
	if s.PRDs == 0 {
		p.println("  No PRDs found")
	} else {
		p.printf("  Total: %d\n", s.PRDs)
		for _, c := range s.PRDsByStatus {
			p.printf("  %s: %d\n", c.Status, c.Count)
		}
	}
	p.println()

	p.println("📚 Epics:")
	if s.Epics == 0 {
		p.println("  No epics found")
	} else {
		p.printf("  Total: %d\n", s.Epics)
	}
	p.println()

	p.println("📝 Tasks:")
	if s.Tasks.Total == 0 {
		p.println("  No tasks found")
	} else {
		p.printf("  Open: %d\n", s.Tasks.Open)
		p.printf("  Closed: %d\n", s.Tasks.Closed)
		if s.Tasks.Other > 0 {
			p.printf("  Other: %d\n", s.Tasks.Other)
		}
		p.printf("  Total: %d\n", s.Tasks.Total)
	}

	if len(s.Progress) > 0 {
		p.println()
		p.println("📈 Epic Progress:")
		for _, e := range s.Progress {
			p.printf("  %s: %d%% (%d/%d tasks)\n", e.Name, e.Percent, e.Closed, e.Total)
		}
	}
	return p.err
}
