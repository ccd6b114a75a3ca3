// Package search はSnapshotに含まれるファイルの内容を検索する
package search

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/tkc/vibe-pm/internal/domain"
	"github.com/tkc/vibe-pm/internal/scan"
)

// ErrEmptyQuery は検索語が空であることを表す
var ErrEmptyQuery = errors.New("search query cannot be empty")

// Match は検索語を含むファイル
type Match struct {
	Path  string
	Epic  string // エピックまたはタスクの場合
	ID    string // PRDはslug、エピックは名前、タスクはID
	Name  string
	Lines int // 検索語を含む行数
}

// Result は検索結果
type Result struct {
	Query   string
	PRDs    []Match
	Epics   []Match
	Tasks   []Match
	Skipped []scan.Skipped
}

// Total は検索語を含むファイル数を返す
func (r *Result) Total() int {
	return len(r.PRDs) + len(r.Epics) + len(r.Tasks)
}

// Search はPRD・epic.md・タスクから大文字小文字を区別せずに検索する
//
// 読めないファイルはSkippedに記録して続行する。
func Search(snap *domain.Snapshot, query string) (*Result, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, ErrEmptyQuery
	}

	r := &Result{
		Query: strings.TrimSpace(query),
		PRDs:  make([]Match, 0),
		Epics: make([]Match, 0),
		Tasks: make([]Match, 0),
	}

	for _, p := range snap.PRDs {
		if m, ok := r.match(p.Path, q); ok {
			m.ID, m.Name = p.Slug, p.DisplayName()
			r.PRDs = append(r.PRDs, m)
		}
	}

	for _, e := range snap.Epics {
		if e.HasDescriptor {
			if m, ok := r.match(filepath.Join(e.Path, scan.EpicFile), q); ok {
				m.Epic, m.ID, m.Name = e.Name, e.Name, e.Title
				r.Epics = append(r.Epics, m)
			}
		}
		for _, t := range e.Tasks {
			if m, ok := r.match(t.Path, q); ok {
				m.Epic, m.ID, m.Name = e.Name, t.ID, t.DisplayName()
				r.Tasks = append(r.Tasks, m)
			}
		}
	}
	return r, nil
}

func (r *Result) match(path, query string) (Match, bool) {
	n, err := countLines(path, query)
	if err != nil {
		r.Skipped = append(r.Skipped, scan.Skipped{Path: path, Reason: err.Error()})
		return Match{}, false
	}
	if n == 0 {
		return Match{}, false
	}
	return Match{Path: path, Lines: n}, true
}

// countLines は小文字化済みのqueryを含む行数を数える
func countLines(path, query string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	n := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if strings.Contains(strings.ToLower(scanner.Text()), query) {
			n++
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}
	return n, nil
}
