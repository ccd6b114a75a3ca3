// Package ui はターミナル出力の色付けを行う
package ui

import (
	"github.com/fatih/color"
	"github.com/tkc/vibe-pm/internal/deps"
	"github.com/tkc/vibe-pm/internal/domain"
)

// 文字列を色付けする関数
var (
	Bold   = color.New(color.Bold).SprintFunc()
	Dim    = color.New(color.Faint).SprintFunc()
	Cyan   = color.New(color.FgCyan).SprintFunc()
	Green  = color.New(color.FgGreen).SprintFunc()
	Red    = color.New(color.FgRed).SprintFunc()
	Yellow = color.New(color.FgYellow).SprintFunc()
)

// detectedNoColor は端末判定による初期値（TERM=dumb、NO_COLOR、非TTY）
var detectedNoColor = color.NoColor

// SetNoColor は色付けの有効/無効を切り替える
//
// falseを渡すと端末判定による初期値に戻る。
func SetNoColor(disabled bool) {
	color.NoColor = disabled || detectedNoColor
}

// StatusIcon はタスクの状態のアイコンを返す
func StatusIcon(state deps.State) string {
	switch state {
	case deps.StateNotOpen:
		return Green("●")
	case deps.StateReady:
		return Cyan("○")
	case deps.StateBlocked:
		return Yellow("⏸")
	default:
		return Dim("?")
	}
}

// StatusText はステータスを色付きで返す
func StatusText(s domain.Status) string {
	switch s.Kind() {
	case domain.KindClosed:
		return Green(s.String())
	case domain.KindOther:
		return Yellow(s.String())
	default:
		return s.String()
	}
}
