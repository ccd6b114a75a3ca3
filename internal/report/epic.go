package report

import (
	"io"
	"strings"

	"github.com/tkc/vibe-pm/internal/deps"
	"github.com/tkc/vibe-pm/internal/domain"
	"github.com/tkc/vibe-pm/internal/stats"
)

// EpicGroup はエピック一覧の区分
type EpicGroup int

const (
	GroupPlanning EpicGroup = iota
	GroupInProgress
	GroupCompleted
)

// GroupOf はエピックのステータスから区分を決める
func GroupOf(s domain.Status) EpicGroup {
	if s.IsComplete() {
		return GroupCompleted
	}
	switch s.Normalized() {
	case domain.StatusInProgress, "in_progress", "active", "started":
		return GroupInProgress
	default:
		return GroupPlanning
	}
}

var groupTitles = []struct {
	group EpicGroup
	title string
}{
	{GroupPlanning, "📝 Planning:"},
	{GroupInProgress, "🚀 In Progress:"},
	{GroupCompleted, "✅ Completed:"},
}

// EpicList はエピックを区分ごとに書き出す
func EpicList(w io.Writer, snap *domain.Snapshot) error {
	p := newPrinter(w)
	p.heading("📚 Project Epics")

	if len(snap.Epics) == 0 {
		p.println("📁 No epics found.")
		p.println()
		p.println("💡 Create your first epic with: /pm:prd-parse <feature-name>")
		return p.err
	}

	for _, g := range groupTitles {
		p.println(g.title)
		n := 0
		for i := range snap.Epics {
			e := &snap.Epics[i]
			if GroupOf(e.Status) != g.group {
				continue
			}
			n++
			p.printf("   📋 %s - %s (%d%% complete, %s)\n",
				e.Name, e.Title, stats.EpicPercent(e), plural(len(e.Tasks), "task"))
		}
		if n == 0 {
			p.println("   (none)")
		}
		p.println()
	}

	p.println("📊 Summary:")
	p.printf("   Total epics: %d\n", len(snap.Epics))
	p.printf("   Total tasks: %d\n", snap.TaskCount())
	return p.err
}

// EpicShow はエピックとタスクの一覧を書き出す
func EpicShow(w io.Writer, epic *domain.Epic) error {
	p := newPrinter(w)
	p.heading("📚 Epic: " + epic.Title)

	p.printf("Directory: %s\n", epic.Name)
	p.printf("Status: %s\n", statusLabel(epic.Status))
	if epic.Progress != "" {
		p.printf("Recorded progress: %s\n", epic.Progress)
	}
	if epic.GitHub != "" {
		p.printf("GitHub: %s\n", epic.GitHub)
	}
	p.println()

	p.println("📝 Tasks:")
	if len(epic.Tasks) == 0 {
		p.println("  No tasks created yet")
	}
	for _, c := range deps.Classify(epic) {
		switch c.State {
		case deps.StateNotOpen:
			p.printf("  ✅ #%s - %s\n", c.Task.ID, c.Task.DisplayName())
		case deps.StateBlocked:
			p.printf("  ⏸️ #%s - %s (%s)\n", c.Task.ID, c.Task.DisplayName(), blockedReason(c))
		default:
			p.printf("  ⬜ #%s - %s\n", c.Task.ID, c.Task.DisplayName())
		}
	}
	p.println()

	tc := stats.CountTasks(epic.Tasks)
	p.println("📊 Statistics:")
	p.printf("  Total tasks: %d\n", tc.Total)
	p.printf("  Open: %d\n", tc.Open+tc.Other)
	p.printf("  Closed: %d\n", tc.Closed)
	p.printf("  Completion: %d%%\n", stats.Percent(tc.Closed, tc.Total))
	return p.err
}

// blockedReason は未完了の依存と存在しない依存を分けて表示する
func blockedReason(c deps.Classification) string {
	var parts []string
	if len(c.Waiting) > 0 {
		parts = append(parts, "waiting on "+idList(c.Waiting))
	}
	if len(c.Unknown) > 0 {
		parts = append(parts, "unknown "+idList(c.Unknown))
	}
	return strings.Join(parts, "; ")
}

// EpicStatus はエピックの進捗バーと分類ごとの件数を書き出す
func EpicStatus(w io.Writer, epic *domain.Epic) error {
	p := newPrinter(w)
	p.heading("📊 Epic Status: " + epic.Name)

	if len(epic.Tasks) == 0 {
		p.println("No tasks found in this epic.")
		p.println()
		p.printf("Progress: [%s] 0%%\n", bar(0))
		return p.err
	}

	percent := stats.EpicPercent(epic)
	counts := deps.CountEpic(epic)

	p.printf("Progress: [%s] %d%%\n", bar(percent), percent)
	p.printf("Total tasks: %d\n", len(epic.Tasks))
	p.println()
	p.printf("✅ Completed: %d\n", counts.Closed)
	p.printf("🔄 Available: %d\n", counts.Ready)
	p.printf("⏸️ Blocked: %d\n", counts.Blocked)
	return p.err
}
