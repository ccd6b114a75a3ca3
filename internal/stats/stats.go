// Package stats はSnapshotから件数と完了率を集計する。I/Oは行わない
package stats

import (
	"sort"

	"github.com/tkc/vibe-pm/internal/domain"
)

// UnknownStatus はステータス未記入のPRD・エピックの集計キー
const UnknownStatus = "unknown"

// StatusCount はステータスごとの件数
type StatusCount struct {
	Status string
	Count  int
}

// TaskCounts はタスクの件数
type TaskCounts struct {
	Total  int
	Open   int
	Closed int
	Other  int // open/closed以外の値（open扱い）
}

// EpicProgress はエピックごとの完了率
type EpicProgress struct {
	Name    string
	Total   int
	Closed  int
	Percent int
}

// Summary は集計結果
type Summary struct {
	PRDs         int
	PRDsByStatus []StatusCount
	Epics        int
	EpicStatuses []StatusCount
	Tasks        TaskCounts
	Progress     []EpicProgress
}

// Aggregate はSnapshotを集計する
func Aggregate(snap *domain.Snapshot) Summary {
	s := Summary{
		PRDs:     len(snap.PRDs),
		Epics:    len(snap.Epics),
		Progress: make([]EpicProgress, 0, len(snap.Epics)),
	}

	prdStatuses := make(map[string]int)
	for _, p := range snap.PRDs {
		prdStatuses[statusKey(p.Status)]++
	}
	s.PRDsByStatus = sortedCounts(prdStatuses)

	epicStatuses := make(map[string]int)
	for i := range snap.Epics {
		e := &snap.Epics[i]
		epicStatuses[statusKey(e.Status)]++

		tc := CountTasks(e.Tasks)
		s.Tasks.Total += tc.Total
		s.Tasks.Open += tc.Open
		s.Tasks.Closed += tc.Closed
		s.Tasks.Other += tc.Other

		s.Progress = append(s.Progress, EpicProgress{
			Name:    e.Name,
			Total:   tc.Total,
			Closed:  tc.Closed,
			Percent: Percent(tc.Closed, tc.Total),
		})
	}
	s.EpicStatuses = sortedCounts(epicStatuses)

	return s
}

// CountTasks はタスクをステータスごとに数える
func CountTasks(tasks []domain.Task) TaskCounts {
	c := TaskCounts{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status.Kind() {
		case domain.KindClosed:
			c.Closed++
		case domain.KindOpen:
			c.Open++
		default:
			c.Other++
		}
	}
	return c
}

// Percent は closed*100/total を整数で返す。totalが0の場合は0
func Percent(closed, total int) int {
	if total <= 0 {
		return 0
	}
	return closed * 100 / total
}

// EpicPercent はエピックの完了率を返す
func EpicPercent(epic *domain.Epic) int {
	c := CountTasks(epic.Tasks)
	return Percent(c.Closed, c.Total)
}

func statusKey(s domain.Status) string {
	if n := s.Normalized(); n != "" {
		return n
	}
	return UnknownStatus
}

func sortedCounts(m map[string]int) []StatusCount {
	counts := make([]StatusCount, 0, len(m))
	for status, n := range m {
		counts = append(counts, StatusCount{Status: status, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		return counts[i].Status < counts[j].Status
	})
	return counts
}
