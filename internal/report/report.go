// Package report はSnapshotから作ったデータを固定レイアウトのテキストとして書き出す
//
// どのビューも結果が空のときは明示的なメッセージを出す。色付けは行わない。
package report

import (
	"fmt"
	"io"
	"strings"
	"time"
)

const (
	barWidth  = 20 // 進捗バーの文字数
	ruleWidth = 32 // 見出しの下線の文字数
)

// printer は最初の書き込みエラーを保持するio.Writerのラッパー
type printer struct {
	w   io.Writer
	err error
}

func newPrinter(w io.Writer) *printer {
	return &printer{w: w}
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) println(args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintln(p.w, args...)
}

// heading はタイトル、下線、空行を書く
func (p *printer) heading(title string) {
	p.println(title)
	p.println(strings.Repeat("=", ruleWidth))
	p.println()
}

// plural は件数に応じて単数形/複数形を返す
func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	if strings.HasSuffix(word, "ch") || strings.HasSuffix(word, "s") || strings.HasSuffix(word, "x") {
		return fmt.Sprintf("%d %ses", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// bar は percent を barWidth 文字の進捗バーにする
func bar(percent int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * barWidth / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

// formatWindow は期間を "24h" のように表示する
func formatWindow(d time.Duration) string {
	if d > 0 && d%time.Hour == 0 {
		return fmt.Sprintf("%dh", int(d/time.Hour))
	}
	return d.String()
}

// idList は ["1", "2"] を "#1 #2" にする
func idList(ids []string) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, "#"+id)
	}
	return strings.Join(parts, " ")
}
