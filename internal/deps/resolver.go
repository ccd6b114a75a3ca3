// Package deps はエピック内のタスク依存関係から着手可能・ブロック中を判定する
//
// 依存IDは同じエピック内でのみ解決する。他のエピックのIDは解決されず unknown になる。
package deps

import "github.com/tkc/vibe-pm/internal/domain"

// DefaultLimit はNextのデフォルト件数
const DefaultLimit = 3

// State はタスクの分類
type State int

const (
	StateNotOpen State = iota // closed
	StateReady                // 着手可能
	StateBlocked              // 未完了または未解決の依存あり
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateBlocked:
		return "blocked"
	default:
		return "not-open"
	}
}

// Classification は1タスクの判定結果
type Classification struct {
	Task    domain.Task
	State   State
	Waiting []string // closedでないタスクに解決された依存ID
	Unknown []string // どのタスクにも解決されない依存ID
}

// Classify はエピックの全タスクをスキャン順に判定する
func Classify(epic *domain.Epic) []Classification {
	result := make([]Classification, 0, len(epic.Tasks))
	for _, task := range epic.Tasks {
		result = append(result, classify(epic, task))
	}
	return result
}

func classify(epic *domain.Epic, task domain.Task) Classification {
	c := Classification{Task: task, State: StateNotOpen}
	if !task.Status.IsOpen() {
		return c
	}

	for _, id := range task.DependsOn {
		dep, ok := epic.Task(id)
		switch {
		case !ok:
			c.Unknown = append(c.Unknown, id)
		case !dep.Status.IsClosed():
			c.Waiting = append(c.Waiting, id)
		}
	}

	if len(c.Waiting) > 0 || len(c.Unknown) > 0 {
		c.State = StateBlocked
	} else {
		c.State = StateReady
	}
	return c
}

// Blocked はスナップショット全体のブロック中タスクをスキャン順に返す
func Blocked(snap *domain.Snapshot) []Classification {
	blocked := make([]Classification, 0)
	for i := range snap.Epics {
		for _, c := range Classify(&snap.Epics[i]) {
			if c.State == StateBlocked {
				blocked = append(blocked, c)
			}
		}
	}
	return blocked
}

// Ready はスナップショット全体の着手可能タスクをスキャン順に返す
func Ready(snap *domain.Snapshot) []domain.Task {
	return collectReady(snap, -1)
}

// Next は着手可能タスクのうちスキャン順で先頭からlimit件を返す
//
// 優先度は見ない。limitが0以下の場合はDefaultLimit。
func Next(snap *domain.Snapshot, limit int) []domain.Task {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return collectReady(snap, limit)
}

func collectReady(snap *domain.Snapshot, limit int) []domain.Task {
	ready := make([]domain.Task, 0)
	for i := range snap.Epics {
		for _, c := range Classify(&snap.Epics[i]) {
			if c.State != StateReady {
				continue
			}
			ready = append(ready, c.Task)
			if limit > 0 && len(ready) >= limit {
				return ready
			}
		}
	}
	return ready
}

// Counts はエピック内の分類ごとの件数
type Counts struct {
	Ready   int
	Blocked int
	Closed  int
}

// CountEpic はエピックのタスクを分類ごとに数える
func CountEpic(epic *domain.Epic) Counts {
	var c Counts
	for _, cl := range Classify(epic) {
		switch cl.State {
		case StateReady:
			c.Ready++
		case StateBlocked:
			c.Blocked++
		default:
			c.Closed++
		}
	}
	return c
}
