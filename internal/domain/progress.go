package domain

import (
	"strings"
	"time"
)

// Progress はupdates/<task-id>/progress.mdの進捗報告を表す
type Progress struct {
	TaskID     string
	Epic       string
	Completion string // 例: "40%"
	Path       string
	ModTime    time.Time
}

// CompletionOrDefault は完了率を返す。未記入の場合は 0%
func (p *Progress) CompletionOrDefault() string {
	c := strings.TrimSpace(p.Completion)
	if c == "" {
		return "0%"
	}
	if !strings.HasSuffix(c, "%") {
		return c + "%"
	}
	return c
}
