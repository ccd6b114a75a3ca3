// Package frontmatter はmarkdownファイル先頭の key: value メタデータを読み取る
//
// 手編集されたファイルを想定しているため、汎用YAMLパーサは使わない。
// 壊れた行は読み飛ばし、同じキーは最初の出現だけを採用する。
package frontmatter

import (
	"bufio"
	"strings"
)

const delimiter = "---"

// Fields は最初に出現した値だけを保持するキーと値の集合
type Fields struct {
	values map[string]string
	keys   []string
}

// Get はキーの値を返す
func (f Fields) Get(key string) (string, bool) {
	v, ok := f.values[key]
	return v, ok
}

// Value はキーの値を返す。存在しない場合は空文字
func (f Fields) Value(key string) string {
	return f.values[key]
}

// Keys は出現順のキーを返す
func (f Fields) Keys() []string {
	return append([]string(nil), f.keys...)
}

// Len はキーの数を返す
func (f Fields) Len() int {
	return len(f.keys)
}

// Parse はcontentからfrontmatterを読み取る
//
// 最初の空でない行が --- の場合は閉じる --- までを対象とし（閉じていなければ末尾まで）、
// それ以外はファイル全体の行を対象とする。
func Parse(content string) Fields {
	f := Fields{values: make(map[string]string)}
	lines, _ := split(content)
	for _, line := range lines {
		key, value, ok := parseLine(line)
		if !ok {
			continue
		}
		if _, seen := f.values[key]; seen {
			continue
		}
		f.values[key] = value
		f.keys = append(f.keys, key)
	}
	return f
}

// HasBlock はcontentが --- で始まるfrontmatterブロックを持つかどうかを返す
func HasBlock(content string) bool {
	_, block := split(content)
	return block
}

// Body はfrontmatterブロックより後ろの本文を返す
func Body(content string) string {
	scanner := newScanner(content)
	var body strings.Builder
	state := 0 // 0: 先頭, 1: ブロック内, 2: 本文
	for scanner.Scan() {
		line := scanner.Text()
		switch state {
		case 0:
			if strings.TrimSpace(line) == "" {
				continue
			}
			if strings.TrimSpace(line) == delimiter {
				state = 1
				continue
			}
			state = 2
			body.WriteString(line)
			body.WriteByte('\n')
		case 1:
			if strings.TrimSpace(line) == delimiter {
				state = 2
			}
		default:
			body.WriteString(line)
			body.WriteByte('\n')
		}
	}
	return strings.TrimSpace(body.String())
}

// ParseList は [12, 45] 形式の値をIDの列に分割する
//
// 角括弧と各要素の引用符を取り除き、空の要素は捨てる。戻り値がnilになることはない。
func ParseList(value string) []string {
	v := strings.TrimSpace(value)
	v = strings.TrimPrefix(v, "[")
	v = strings.TrimSuffix(v, "]")

	items := make([]string, 0)
	for _, part := range strings.Split(v, ",") {
		item := unquote(strings.TrimSpace(part))
		if item == "" {
			continue
		}
		items = append(items, item)
	}
	return items
}

// split はfrontmatterの対象行と、ブロック形式だったかどうかを返す
func split(content string) ([]string, bool) {
	scanner := newScanner(content)

	var lines []string
	started := false
	block := false
	for scanner.Scan() {
		line := scanner.Text()
		if !started {
			if strings.TrimSpace(line) == "" {
				continue
			}
			started = true
			if strings.TrimSpace(line) == delimiter {
				block = true
				continue
			}
		}
		if block && strings.TrimSpace(line) == delimiter {
			break
		}
		lines = append(lines, line)
	}
	return lines, block
}

func parseLine(line string) (string, string, bool) {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return "", "", false
	}
	key := strings.TrimRight(line[:idx], " \t")
	if key == "" || strings.ContainsAny(key, " \t") {
		return "", "", false
	}
	return key, unquote(strings.TrimSpace(line[idx+1:])), true
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

func newScanner(content string) *bufio.Scanner {
	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return scanner
}
