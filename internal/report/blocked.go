package report

import (
	"io"
	"strings"

	"github.com/tkc/vibe-pm/internal/deps"
)

// Blocked はブロック中のタスクを書き出す
func Blocked(w io.Writer, blocked []deps.Classification) error {
	p := newPrinter(w)
	p.heading("🚫 Blocked Tasks")

	if len(blocked) == 0 {
		p.println("No blocked tasks found!")
		p.println()
		p.println("💡 All tasks with dependencies are either completed or in progress.")
		return p.err
	}

	for _, b := range blocked {
		p.printf("⏸️ Task #%s - %s\n", b.Task.ID, b.Task.DisplayName())
		p.printf("   Epic: %s\n", b.Task.Epic)
		p.printf("   Blocked by: [%s]\n", strings.Join(b.Task.DependsOn, ", "))
		if len(b.Waiting) > 0 {
			p.printf("   Waiting for: %s\n", idList(b.Waiting))
		}
		if len(b.Unknown) > 0 {
			p.printf("   Unknown dependencies: %s\n", idList(b.Unknown))
		}
		p.println()
	}

	p.printf("📊 Total blocked: %s\n", plural(len(blocked), "task"))
	return p.err
}
