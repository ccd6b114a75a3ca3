// Package validate はPMディレクトリの整合性を検査する。ファイルは書き換えない
package validate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tkc/vibe-pm/internal/deps"
	"github.com/tkc/vibe-pm/internal/domain"
	"github.com/tkc/vibe-pm/internal/frontmatter"
	"github.com/tkc/vibe-pm/internal/scan"
)

// Severity は検査結果の重大度
type Severity int

const (
	SeverityOK Severity = iota
	SeverityWarning
	SeverityError
)

// Category は検査結果の区分
type Category int

const (
	CategoryStructure Category = iota
	CategoryIntegrity
	CategoryReferences
	CategoryFrontmatter
	CategoryContent
)

// Categories は表示順の区分
var Categories = []Category{
	CategoryStructure,
	CategoryIntegrity,
	CategoryReferences,
	CategoryFrontmatter,
	CategoryContent,
}

// Finding は1件の検査結果
type Finding struct {
	Category Category
	Severity Severity
	Path     string
	Message  string
}

// Result は検査結果の集合
type Result struct {
	Findings []Finding
	Files    int // 検査したファイル数
}

// In は区分の検査結果を返す
func (r *Result) In(c Category) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Category == c {
			out = append(out, f)
		}
	}
	return out
}

// Errors はエラー件数を返す
func (r *Result) Errors() int {
	return r.count(SeverityError)
}

// Warnings は警告件数を返す
func (r *Result) Warnings() int {
	return r.count(SeverityWarning)
}

// InvalidFiles はエラーか警告があったファイルの数を返す
func (r *Result) InvalidFiles() int {
	seen := make(map[string]bool)
	for _, f := range r.Findings {
		if f.Severity != SeverityOK && f.Path != "" {
			seen[f.Path] = true
		}
	}
	return len(seen)
}

func (r *Result) count(s Severity) int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == s {
			n++
		}
	}
	return n
}

func (r *Result) add(c Category, s Severity, path, format string, args ...any) {
	r.Findings = append(r.Findings, Finding{
		Category: c,
		Severity: s,
		Path:     path,
		Message:  fmt.Sprintf(format, args...),
	})
}

// placeholderPattern は書きかけの本文に現れる語句
var placeholderPattern = regexp.MustCompile(`(?i)(insert.*here|to.*be.*added|\btodo\b|\btbd\b|placeholder|description.*here|add.*content|write.*here|fill.*in|coming.*soon|work.*in.*progress|\bwip\b|xxx|fixme|update.*this)`)

// HasPlaceholder は本文に書きかけを示す語句があるかどうかを返す
func HasPlaceholder(body string) bool {
	return placeholderPattern.MatchString(body)
}

// Validate はSnapshotとスキャン結果を検査する
func Validate(snap *domain.Snapshot, report *scan.Report) *Result {
	r := &Result{}

	checkStructure(r, snap.Root)

	if report != nil {
		for _, s := range report.Skipped {
			r.add(CategoryIntegrity, SeverityError, s.Path, "Unreadable file: %s (%s)", s.Path, s.Reason)
		}
	}

	for i := range snap.Epics {
		e := &snap.Epics[i]
		if !e.HasDescriptor {
			r.add(CategoryIntegrity, SeverityWarning, e.Path, "Missing epic.md in: %s", e.Name)
		}
		checkReferences(r, e)
	}

	for _, p := range snap.PRDs {
		checkFile(r, p.Path, false)
	}
	for _, e := range snap.Epics {
		if e.HasDescriptor {
			checkFile(r, filepath.Join(e.Path, scan.EpicFile), false)
		}
		for _, t := range e.Tasks {
			checkFile(r, t.Path, true)
		}
	}

	return r
}

func checkStructure(r *Result, root string) {
	r.add(CategoryStructure, SeverityOK, "", "PM root exists: %s", root)
	for _, dir := range []string{scan.PRDsDir, scan.EpicsDir} {
		info, err := os.Stat(filepath.Join(root, dir))
		switch {
		case err != nil:
			r.add(CategoryStructure, SeverityWarning, "", "%s directory missing", dir)
		case !info.IsDir():
			r.add(CategoryStructure, SeverityError, "", "%s is not a directory", dir)
		default:
			r.add(CategoryStructure, SeverityOK, "", "%s directory exists", dir)
		}
	}
}

func checkReferences(r *Result, e *domain.Epic) {
	// closedのタスクも含めて全ての依存を確認する
	for _, t := range e.Tasks {
		for _, id := range t.DependsOn {
			if _, ok := e.Task(id); !ok {
				r.add(CategoryReferences, SeverityError, t.Path,
					"Task #%s in %s references missing task: %s", t.ID, e.Name, id)
			}
		}
	}
	for _, cycle := range deps.FindCycles(e) {
		r.add(CategoryReferences, SeverityError, filepath.Join(e.Path, cycle[0]+".md"),
			"Dependency cycle in %s: %s", e.Name, strings.Join(cycle, " → "))
	}
}

func checkFile(r *Result, path string, isTask bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		r.add(CategoryIntegrity, SeverityError, path, "Unreadable file: %s (%v)", path, err)
		return
	}
	r.Files++
	content := string(data)

	if !frontmatter.HasBlock(content) {
		r.add(CategoryFrontmatter, SeverityWarning, path, "Missing frontmatter: %s", path)
	}

	f := frontmatter.Parse(content)
	if f.Value(frontmatter.KeyName) == "" {
		r.add(CategoryFrontmatter, SeverityWarning, path, "Missing name: %s", path)
	}
	if isTask {
		status := domain.Status(f.Value(frontmatter.KeyStatus))
		switch {
		case status.Normalized() == "":
			r.add(CategoryFrontmatter, SeverityWarning, path, "Missing status (treated as open): %s", path)
		case status.Kind() == domain.KindOther:
			r.add(CategoryFrontmatter, SeverityWarning, path,
				"Unrecognized status %q (treated as open): %s", status.String(), path)
		}
	}

	body := frontmatter.Body(content)
	switch {
	case body == "":
		r.add(CategoryContent, SeverityWarning, path, "Empty body: %s", path)
	case HasPlaceholder(body):
		r.add(CategoryContent, SeverityWarning, path, "Placeholder text: %s", path)
	}
}
