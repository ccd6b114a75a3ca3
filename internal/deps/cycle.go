package deps

import (
	"sort"

	"github.com/tkc/vibe-pm/internal/domain"
)

// FindCycles はエピック内の依存関係の循環を返す
//
// 各循環は依存をたどる順のIDで、先頭と末尾が同じID。循環がなければnil。
// white (未訪問), gray (探索中), black (完了) の3色DFSで検出する。
func FindCycles(epic *domain.Epic) [][]string {
	const (
		white = 0
		gray  = 1
		black = 2
	)

	adj := make(map[string][]string, len(epic.Tasks))
	ids := make([]string, 0, len(epic.Tasks))
	for _, t := range epic.Tasks {
		ids = append(ids, t.ID)
		for _, dep := range t.DependsOn {
			if _, ok := epic.Task(dep); ok {
				adj[t.ID] = append(adj[t.ID], dep)
			}
		}
	}
	for id := range adj {
		sort.Slice(adj[id], func(i, j int) bool {
			return domain.CompareIDs(adj[id][i], adj[id][j]) < 0
		})
	}

	color := make(map[string]int, len(ids))
	var stack []string
	var cycles [][]string

	var dfs func(node string)
	dfs = func(node string) {
		color[node] = gray
		stack = append(stack, node)
		for _, next := range adj[node] {
			switch color[next] {
			case gray:
				// stack上のnextから現在地までが循環
				for i := len(stack) - 1; i >= 0; i-- {
					if stack[i] == next {
						cycle := append([]string(nil), stack[i:]...)
						cycles = append(cycles, append(cycle, next))
						break
					}
				}
			case white:
				dfs(next)
			}
		}
		stack = stack[:len(stack)-1]
		color[node] = black
	}

	for _, id := range ids {
		if color[id] == white {
			dfs(id)
		}
	}
	return cycles
}
