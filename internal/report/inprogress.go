package report

import (
	"io"

	"github.com/tkc/vibe-pm/internal/domain"
	"github.com/tkc/vibe-pm/internal/stats"
)

// InProgressWork は進行中のタスクとエピックを書き出す
func InProgressWork(w io.Writer, snap *domain.Snapshot) error {
	p := newPrinter(w)
	p.heading("🔄 In Progress Work")

	updates := InProgress(snap)
	var epics []*domain.Epic
	for i := range snap.Epics {
		if GroupOf(snap.Epics[i].Status) == GroupInProgress {
			epics = append(epics, &snap.Epics[i])
		}
	}

	if len(updates) == 0 && len(epics) == 0 {
		p.println("No active work items found.")
		p.println()
		p.println("💡 Start work with: vpm next")
		return p.err
	}

	p.println("📝 Active Tasks:")
	if len(updates) == 0 {
		p.println("   (none)")
	}
	for _, u := range updates {
		name := ""
		if e, ok := snap.Epic(u.Epic); ok {
			if t, ok := e.Task(u.TaskID); ok && t.Name != "" {
				name = " - " + t.Name
			}
		}
		p.printf("   • Task #%s (%s)%s\n", u.TaskID, u.Epic, name)
		p.printf("     Progress: %s\n", u.CompletionOrDefault())
	}
	p.println()

	p.println("🚀 Active Epics:")
	if len(epics) == 0 {
		p.println("   (none)")
	}
	for _, e := range epics {
		p.printf("   • %s - %d%% complete\n", e.Name, stats.EpicPercent(e))
	}
	p.println()

	p.printf("📊 Total active items: %d\n", len(updates)+len(epics))
	return p.err
}
