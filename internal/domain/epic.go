package domain

import "time"

// Epic はepics/<name>/ディレクトリを表す
type Epic struct {
	Name          string     // ディレクトリ名
	Title         string     // epic.mdのname（なければディレクトリ名）
	Status        Status     // epic.mdのstatus（表示用）
	Progress      string     // epic.mdのprogress
	GitHub        string     // 関連Issue URL
	HasDescriptor bool       // epic.mdが存在するか
	Path          string     // ディレクトリパス
	ModTime       time.Time  // epic.mdの最終更新日時
	Tasks         []Task     // スキャン順のタスク
	Updates       []Progress // updates/<id>/progress.md
}

// Task は指定IDのタスクを返す
func (e *Epic) Task(id string) (*Task, bool) {
	for i := range e.Tasks {
		if e.Tasks[i].ID == id {
			return &e.Tasks[i], true
		}
	}
	return nil, false
}

// PRD はprds/<slug>.mdを表す
type PRD struct {
	Slug        string
	Name        string
	Status      Status
	Description string
	Created     string
	Path        string
	ModTime     time.Time
}

// DisplayName は名前が空の場合にslugを返す
func (p *PRD) DisplayName() string {
	if p.Name == "" {
		return p.Slug
	}
	return p.Name
}

// Snapshot はPMディレクトリを一度読み込んだ結果
//
// スキャン後は変更しない。
type Snapshot struct {
	Root  string
	Epics []Epic
	PRDs  []PRD

	index map[string]int
}

// NewSnapshot はスキャン順のエピックとPRDからSnapshotを作成する
func NewSnapshot(root string, epics []Epic, prds []PRD) *Snapshot {
	s := &Snapshot{
		Root:  root,
		Epics: epics,
		PRDs:  prds,
		index: make(map[string]int, len(epics)),
	}
	for i, e := range epics {
		s.index[e.Name] = i
	}
	return s
}

// Epic は名前でエピックを返す
func (s *Snapshot) Epic(name string) (*Epic, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return &s.Epics[i], true
}

// TaskCount は全エピックのタスク数を返す
func (s *Snapshot) TaskCount() int {
	n := 0
	for _, e := range s.Epics {
		n += len(e.Tasks)
	}
	return n
}

// Tasks はスキャン順に全タスクを返す
func (s *Snapshot) Tasks() []Task {
	tasks := make([]Task, 0, s.TaskCount())
	for _, e := range s.Epics {
		tasks = append(tasks, e.Tasks...)
	}
	return tasks
}
