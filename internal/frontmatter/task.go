package frontmatter

import "strings"

// frontmatterのキー名
const (
	KeyName        = "name"
	KeyStatus      = "status"
	KeyDependsOn   = "depends_on"
	KeyParallel    = "parallel"
	KeyGitHub      = "github"
	KeyProgress    = "progress"
	KeyCompletion  = "completion"
	KeyDescription = "description"
	KeyCreated     = "created"
)

// TaskFields はタスクファイルから読み取った値
//
// IDとエピック名はファイルパスから決まるため含まない。
type TaskFields struct {
	Name      string
	Status    string
	DependsOn []string
	Parallel  bool
	GitHub    string
}

// ParseTask はタスクファイルの内容を読み取る
func ParseTask(content string) TaskFields {
	f := Parse(content)
	return TaskFields{
		Name:      f.Value(KeyName),
		Status:    f.Value(KeyStatus),
		DependsOn: ParseList(f.Value(KeyDependsOn)),
		Parallel:  ParseBool(f.Value(KeyParallel)),
		GitHub:    f.Value(KeyGitHub),
	}
}

// ParseBool は true/yes（大文字小文字を問わない）をtrueとして返す
func ParseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "yes":
		return true
	default:
		return false
	}
}
