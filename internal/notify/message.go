package notify

import (
	"fmt"
	"strings"
)

func nextTitle(ready int) string {
	if ready == 1 {
		return "⏭️ vpm: 1 task ready"
	}
	return fmt.Sprintf("⏭️ vpm: %d tasks ready", ready)
}

func nextMessage(epic, id, name string) string {
	return truncate(fmt.Sprintf("%s #%s - %s", epic, id, name), 80)
}

// escape はAppleScriptの文字列リテラル用にエスケープする
func escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

// truncate はmax文字（rune単位）に切り詰める
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
