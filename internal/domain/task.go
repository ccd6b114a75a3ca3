package domain

import (
	"strings"
	"time"
)

// StatusKind はステータスの分類
type StatusKind int

const (
	KindOpen   StatusKind = iota // open または未指定
	KindClosed                   // closed
	KindOther                    // 未知の値（open扱い）
)

// 既知のステータス値
const (
	StatusOpen       = "open"
	StatusClosed     = "closed"
	StatusInProgress = "in-progress"
)

// Status はfrontmatterに書かれたステータスの生の値を表す
//
// 比較は大文字小文字を区別しない。open と closed 以外の値はそのまま保持され、
// 依存関係の判定では open として扱われる。
type Status string

// Kind はステータスを分類する
func (s Status) Kind() StatusKind {
	switch s.Normalized() {
	case "", StatusOpen:
		return KindOpen
	case StatusClosed:
		return KindClosed
	default:
		return KindOther
	}
}

// Normalized は前後の空白を除き小文字化した値を返す
func (s Status) Normalized() string {
	return strings.ToLower(strings.TrimSpace(string(s)))
}

// IsClosed はclosedかどうかを返す
func (s Status) IsClosed() bool {
	return s.Kind() == KindClosed
}

// IsOpen はclosed以外（未知の値を含む）かどうかを返す
func (s Status) IsOpen() bool {
	return !s.IsClosed()
}

// IsComplete はclosedか、エピック・PRDで使われる完了系の値かどうかを返す
func (s Status) IsComplete() bool {
	switch s.Normalized() {
	case StatusClosed, "completed", "complete", "done", "implemented":
		return true
	default:
		return false
	}
}

// String は表示用の値を返す。未指定の場合は open
func (s Status) String() string {
	if strings.TrimSpace(string(s)) == "" {
		return StatusOpen
	}
	return strings.TrimSpace(string(s))
}

// Task はエピック配下のタスクファイル（<N>.md）を表す
type Task struct {
	ID        string    // ファイル名のstem（エピック内で一意）
	Name      string    // タスク名
	Status    Status    // 現在のステータス
	DependsOn []string  // 依存タスクID（同じエピック内）
	Parallel  bool      // 並列実行可能か
	GitHub    string    // 関連Issue URL
	Epic      string    // 所属エピック名（ディレクトリ名）
	Path      string    // ファイルパス
	ModTime   time.Time // 最終更新日時
}

// DisplayName は名前が空の場合にIDを返す
func (t *Task) DisplayName() string {
	if t.Name == "" {
		return "#" + t.ID
	}
	return t.Name
}

// HasDependencies は依存タスクがあるかどうかを返す
func (t *Task) HasDependencies() bool {
	return len(t.DependsOn) > 0
}
