// Package testutil provides fixture PM trees for tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// Tree is a PM root (prds/ + epics/) under t.TempDir().
type Tree struct {
	Root string
	t    *testing.T
}

// NewTree creates an empty PM root with prds/ and epics/ directories.
func NewTree(t *testing.T) *Tree {
	t.Helper()

	root := filepath.Join(t.TempDir(), ".claude")
	for _, dir := range []string{"prds", "epics"} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}
	return &Tree{Root: root, t: t}
}

// WriteFile writes content to a path relative to the root.
func (tr *Tree) WriteFile(rel, content string) string {
	tr.t.Helper()

	path := filepath.Join(tr.Root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		tr.t.Fatalf("Failed to create dir for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		tr.t.Fatalf("Failed to write %s: %v", rel, err)
	}
	return path
}

// Mkdir creates a directory relative to the root.
func (tr *Tree) Mkdir(rel string) {
	tr.t.Helper()

	if err := os.MkdirAll(filepath.Join(tr.Root, rel), 0755); err != nil {
		tr.t.Fatalf("Failed to create %s: %v", rel, err)
	}
}

// PRD writes prds/<slug>.md.
func (tr *Tree) PRD(slug, name, status string) string {
	return tr.WriteFile(filepath.Join("prds", slug+".md"), fmt.Sprintf(
		"---\nname: %s\nstatus: %s\ncreated: 2025-01-01T00:00:00Z\n---\n\n# PRD: %s\n", name, status, name))
}

// Epic writes epics/<name>/epic.md.
func (tr *Tree) Epic(name, status string) string {
	return tr.WriteFile(filepath.Join("epics", name, "epic.md"), fmt.Sprintf(
		"---\nname: %s\nstatus: %s\nprogress: 0%%\n---\n\n# Epic: %s\n", name, status, name))
}

// Task writes epics/<epic>/<id>.md with the given dependencies.
func (tr *Tree) Task(epic, id, name, status string, deps ...string) string {
	return tr.WriteFile(filepath.Join("epics", epic, id+".md"), fmt.Sprintf(
		"---\nname: %s\nstatus: %s\ndepends_on: [%s]\nparallel: false\n---\n\n# Task: %s\n",
		name, status, strings.Join(deps, ", "), name))
}

// Progress writes epics/<epic>/updates/<id>/progress.md.
func (tr *Tree) Progress(epic, id, completion string) string {
	return tr.WriteFile(filepath.Join("epics", epic, "updates", id, "progress.md"), fmt.Sprintf(
		"---\nissue: %s\ncompletion: %s\n---\n\n## Progress\n", id, completion))
}

// Touch sets the modification time of a path relative to the root.
func (tr *Tree) Touch(rel string, mod time.Time) {
	tr.t.Helper()

	if err := os.Chtimes(filepath.Join(tr.Root, rel), mod, mod); err != nil {
		tr.t.Fatalf("Failed to touch %s: %v", rel, err)
	}
}

// TouchAll sets the modification time of every file under the root.
func (tr *Tree) TouchAll(mod time.Time) {
	tr.t.Helper()

	err := filepath.Walk(tr.Root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || info.Mode()&os.ModeSymlink != 0 {
			return nil
		}
		return os.Chtimes(path, mod, mod)
	})
	if err != nil {
		tr.t.Fatalf("Failed to touch tree: %v", err)
	}
}
