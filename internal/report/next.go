package report

import (
	"io"

	"github.com/tkc/vibe-pm/internal/domain"
)

// Next は着手可能なタスクを書き出す
func Next(w io.Writer, ready []domain.Task) error {
	p := newPrinter(w)
	p.heading("📋 Next Available Tasks")

	if len(ready) == 0 {
		p.println("No available tasks found.")
		p.println()
		p.println("💡 Suggestions:")
		p.println("  • Check blocked tasks: vpm blocked")
		p.println("  • View all epics: vpm epic list")
		p.println()
	}

	for _, t := range ready {
		p.printf("✅ Ready: #%s - %s\n", t.ID, t.DisplayName())
		p.printf("   Epic: %s\n", t.Epic)
		if t.Parallel {
			p.println("   🔄 Can run in parallel")
		}
		p.println()
	}

	p.printf("📊 Summary: %s ready to start\n", plural(len(ready), "task"))
	return p.err
}
