package github

import (
	"context"
	"errors"
	"fmt"

	"github.com/tkc/vibe-pm/internal/domain"
)

// IssueStateFetcher はIssueの状態を取得するインターフェース
type IssueStateFetcher interface {
	IssueState(ctx context.Context, ref IssueRef) (RemoteState, error)
}

// DriftKind はローカルとGitHubの状態の差分の種類
type DriftKind int

const (
	InSync DriftKind = iota
	LocalClosedRemoteOpen
	LocalOpenRemoteClosed
	LookupFailed
)

func (k DriftKind) String() string {
	switch k {
	case InSync:
		return "in sync"
	case LocalClosedRemoteOpen:
		return "closed locally, open on GitHub"
	case LocalOpenRemoteClosed:
		return "open locally, closed on GitHub"
	default:
		return "lookup failed"
	}
}

// LinkedItem はgithubフィールドを持つタスクまたはエピック
type LinkedItem struct {
	Epic        string // エピック名
	TaskID      string // タスクの場合のみ
	Name        string
	URL         string
	LocalClosed bool
}

// Label は表示用の識別子を返す
func (i LinkedItem) Label() string {
	if i.TaskID == "" {
		return "epic " + i.Epic
	}
	return fmt.Sprintf("%s #%s", i.Epic, i.TaskID)
}

// Drift は1件の比較結果
type Drift struct {
	Item   LinkedItem
	Ref    IssueRef
	Remote RemoteState
	Kind   DriftKind
	Err    error
}

// DriftReport はsync-checkの結果
type DriftReport struct {
	Checked   []Drift
	Invalid   []Drift // URLが解析できなかったもの
	Untracked int     // githubフィールドを持たないタスク数
}

// Drifted は差分のある項目を返す
func (r *DriftReport) Drifted() []Drift {
	var out []Drift
	for _, d := range r.Checked {
		if d.Kind == LocalClosedRemoteOpen || d.Kind == LocalOpenRemoteClosed {
			out = append(out, d)
		}
	}
	return out
}

// Failed は取得に失敗した項目を返す
func (r *DriftReport) Failed() []Drift {
	var out []Drift
	for _, d := range r.Checked {
		if d.Kind == LookupFailed {
			out = append(out, d)
		}
	}
	return out
}

// LinkedItems はSnapshotからgithubフィールドを持つ項目を集める
//
// エピックが先、続いてそのエピックのタスクをID順に並べる。
func LinkedItems(snap *domain.Snapshot) (items []LinkedItem, untracked int) {
	for _, e := range snap.Epics {
		if e.GitHub != "" {
			items = append(items, LinkedItem{
				Epic:        e.Name,
				Name:        e.Title,
				URL:         e.GitHub,
				LocalClosed: e.Status.IsComplete(),
			})
		}
		for _, t := range e.Tasks {
			if t.GitHub == "" {
				untracked++
				continue
			}
			items = append(items, LinkedItem{
				Epic:        e.Name,
				TaskID:      t.ID,
				Name:        t.DisplayName(),
				URL:         t.GitHub,
				LocalClosed: t.Status.IsClosed(),
			})
		}
	}
	return items, untracked
}

// CheckDrift はローカルの状態とGitHub上のIssueの状態を比較する
//
// 同じURLは一度だけ問い合わせる。コンテキストがキャンセルされた場合はその時点でエラーを返す。
func CheckDrift(ctx context.Context, fetcher IssueStateFetcher, snap *domain.Snapshot) (*DriftReport, error) {
	items, untracked := LinkedItems(snap)
	report := &DriftReport{Untracked: untracked}

	type lookup struct {
		state RemoteState
		err   error
	}
	cache := make(map[IssueRef]lookup)

	for _, item := range items {
		ref, err := ParseIssueURL(item.URL)
		if err != nil {
			report.Invalid = append(report.Invalid, Drift{Item: item, Kind: LookupFailed, Err: err})
			continue
		}

		res, ok := cache[ref]
		if !ok {
			state, err := fetcher.IssueState(ctx, ref)
			if err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
				return nil, err
			}
			res = lookup{state: state, err: err}
			cache[ref] = res
		}

		d := Drift{Item: item, Ref: ref, Remote: res.state, Err: res.err}
		switch {
		case res.err != nil:
			d.Kind = LookupFailed
		case item.LocalClosed && res.state == RemoteOpen:
			d.Kind = LocalClosedRemoteOpen
		case !item.LocalClosed && res.state == RemoteClosed:
			d.Kind = LocalOpenRemoteClosed
		default:
			d.Kind = InSync
		}
		report.Checked = append(report.Checked, d)
	}

	return report, nil
}
