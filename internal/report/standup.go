package report

import (
	"io"
	"time"

	"github.com/tkc/vibe-pm/internal/deps"
	"github.com/tkc/vibe-pm/internal/domain"
	"github.com/tkc/vibe-pm/internal/stats"
)

// DefaultStandupWindow は「最近の更新」とみなす期間
const DefaultStandupWindow = 24 * time.Hour

// Standup はスタンドアップ表示用のデータ
type Standup struct {
	Date       time.Time
	Window     time.Duration
	Activity   stats.Activity
	InProgress []domain.Progress
	Next       []domain.Task
	Tasks      stats.TaskCounts
}

// NewStandup はSnapshotからスタンドアップを組み立てる
//
// 進捗報告のうちタスクがclosedのものは進行中に含めない。
func NewStandup(snap *domain.Snapshot, now time.Time, window time.Duration, limit int) Standup {
	if window <= 0 {
		window = DefaultStandupWindow
	}

	s := Standup{
		Date:       now,
		Window:     window,
		Activity:   stats.RecentActivity(snap, now.Add(-window)),
		InProgress: InProgress(snap),
		Next:       deps.Next(snap, limit),
		Tasks:      stats.CountTasks(snap.Tasks()),
	}
	return s
}

// InProgress はclosedでないタスクの進捗報告をスキャン順に返す
func InProgress(snap *domain.Snapshot) []domain.Progress {
	active := make([]domain.Progress, 0)
	for i := range snap.Epics {
		e := &snap.Epics[i]
		for _, u := range e.Updates {
			if t, ok := e.Task(u.TaskID); ok && t.Status.IsClosed() {
				continue
			}
			active = append(active, u)
		}
	}
	return active
}

// WriteStandup はスタンドアップを書き出す
func WriteStandup(w io.Writer, s Standup) error {
	p := newPrinter(w)
	p.heading("📅 Daily Standup - " + s.Date.Format("2006-01-02"))

	p.println("📝 Today's Activity:")
	if s.Activity.Empty() {
		p.printf("  • No activity in the last %s\n", formatWindow(s.Window))
	}
	if s.Activity.PRDs > 0 {
		p.printf("  • Modified %d PRD(s)\n", s.Activity.PRDs)
	}
	if s.Activity.Epics > 0 {
		p.printf("  • Updated %d epic(s)\n", s.Activity.Epics)
	}
	if s.Activity.Tasks > 0 {
		p.printf("  • Worked on %d task(s)\n", s.Activity.Tasks)
	}
	if s.Activity.Updates > 0 {
		p.printf("  • Posted progress on %d task(s)\n", s.Activity.Updates)
	}
	p.println()

	p.println("🔄 Currently In Progress:")
	if len(s.InProgress) == 0 {
		p.println("  • Nothing in progress")
	}
	for _, u := range s.InProgress {
		p.printf("  • Task #%s (%s) - %s complete\n", u.TaskID, u.Epic, u.CompletionOrDefault())
	}
	p.println()

	p.println("⏭️ Next Available Tasks:")
	if len(s.Next) == 0 {
		p.println("  • No ready tasks")
	}
	for _, t := range s.Next {
		p.printf("  • #%s - %s (%s)\n", t.ID, t.DisplayName(), t.Epic)
	}
	p.println()

	p.println("📊 Quick Stats:")
	if s.Tasks.Other > 0 {
		p.printf("  Tasks: %d open, %d closed, %d other, %d total\n",
			s.Tasks.Open, s.Tasks.Closed, s.Tasks.Other, s.Tasks.Total)
	} else {
		p.printf("  Tasks: %d open, %d closed, %d total\n",
			s.Tasks.Open, s.Tasks.Closed, s.Tasks.Total)
	}
	return p.err
}
