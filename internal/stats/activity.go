package stats

import (
	"time"

	"github.com/tkc/vibe-pm/internal/domain"
)

// Activity は期間内に更新されたファイル数
type Activity struct {
	PRDs    int
	Epics   int
	Tasks   int
	Updates int
}

// Empty は更新がなかったかどうかを返す
func (a Activity) Empty() bool {
	return a.PRDs == 0 && a.Epics == 0 && a.Tasks == 0 && a.Updates == 0
}

// RecentActivity はsince以降に更新されたPRD・epic.md・タスク・進捗報告を数える
func RecentActivity(snap *domain.Snapshot, since time.Time) Activity {
	var a Activity
	for _, p := range snap.PRDs {
		if !p.ModTime.Before(since) {
			a.PRDs++
		}
	}
	for _, e := range snap.Epics {
		if e.HasDescriptor && !e.ModTime.Before(since) {
			a.Epics++
		}
		for _, t := range e.Tasks {
			if !t.ModTime.Before(since) {
				a.Tasks++
			}
		}
		for _, u := range e.Updates {
			if !u.ModTime.Before(since) {
				a.Updates++
			}
		}
	}
	return a
}
