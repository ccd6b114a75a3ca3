package scan

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/tkc/vibe-pm/internal/testutil"
)

func TestScan_BuildsSnapshot(t *testing.T) {
	tree := testutil.NewTree(t)
	tree.PRD("user-auth", "User Auth", "backlog")
	tree.PRD("billing", "Billing", "in-progress")
	tree.Epic("user-auth", "in-progress")
	tree.Task("user-auth", "1", "Schema", "closed")
	tree.Task("user-auth", "2", "API", "open", "1")
	tree.Task("user-auth", "10", "UI", "open", "2")
	tree.WriteFile("epics/user-auth/notes.md", "not a task")
	tree.WriteFile("epics/user-auth/1-analysis.md", "not a task either")
	tree.Progress("user-auth", "2", "40%")

	snap, report, err := Scan(tree.Root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.HasSkipped() {
		t.Errorf("unexpected skipped files: %v", report.Skipped)
	}

	if len(snap.PRDs) != 2 {
		t.Fatalf("expected 2 PRDs, got %d", len(snap.PRDs))
	}
	// sorted by filename
	if snap.PRDs[0].Slug != "billing" || snap.PRDs[1].Slug != "user-auth" {
		t.Errorf("unexpected PRD order: %s, %s", snap.PRDs[0].Slug, snap.PRDs[1].Slug)
	}

	if len(snap.Epics) != 1 {
		t.Fatalf("expected 1 epic, got %d", len(snap.Epics))
	}
	epic := snap.Epics[0]
	if !epic.HasDescriptor || epic.Status != "in-progress" {
		t.Errorf("epic descriptor not read: %+v", epic)
	}

	var ids []string
	for _, task := range epic.Tasks {
		ids = append(ids, task.ID)
		if task.Epic != "user-auth" {
			t.Errorf("task %s has epic %q", task.ID, task.Epic)
		}
	}
	if want := []string{"1", "2", "10"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("task order = %v, want %v", ids, want)
	}

	task, ok := epic.Task("10")
	if !ok {
		t.Fatal("task 10 not found")
	}
	if task.Name != "UI" || !reflect.DeepEqual(task.DependsOn, []string{"2"}) {
		t.Errorf("task 10 = %+v", task)
	}

	if len(epic.Updates) != 1 || epic.Updates[0].TaskID != "2" || epic.Updates[0].Completion != "40%" {
		t.Errorf("unexpected updates: %+v", epic.Updates)
	}

	// 2 PRDs + epic.md + 3 tasks + 1 progress
	if report.Files != 7 {
		t.Errorf("expected 7 files read, got %d", report.Files)
	}
}

func TestScan_EmptyRoot(t *testing.T) {
	root := t.TempDir()

	snap, report, err := Scan(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.Epics) != 0 || len(snap.PRDs) != 0 {
		t.Errorf("expected empty snapshot, got %d epics %d prds", len(snap.Epics), len(snap.PRDs))
	}
	if report.HasSkipped() {
		t.Errorf("missing prds/ and epics/ must not be reported: %v", report.Skipped)
	}
}

func TestScan_EpicWithoutTasks(t *testing.T) {
	tree := testutil.NewTree(t)
	tree.Epic("empty", "backlog")
	tree.Mkdir("epics/bare")

	snap, _, err := Scan(tree.Root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.Epics) != 2 {
		t.Fatalf("expected 2 epics, got %d", len(snap.Epics))
	}
	for _, e := range snap.Epics {
		if e.Tasks == nil || len(e.Tasks) != 0 {
			t.Errorf("epic %s: expected empty task list, got %#v", e.Name, e.Tasks)
		}
	}

	bare, _ := snap.Epic("bare")
	if bare.HasDescriptor {
		t.Error("bare epic has no epic.md")
	}
	if bare.Title != "bare" {
		t.Errorf("title should fall back to directory name, got %q", bare.Title)
	}
}

func TestScan_IgnoresHiddenAndLooseEntries(t *testing.T) {
	tree := testutil.NewTree(t)
	tree.Task(".archived", "1", "Old", "closed")
	tree.WriteFile("epics/README.md", "loose file")
	tree.Task("live", "1", "Live", "open")

	snap, _, err := Scan(tree.Root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.Epics) != 1 || snap.Epics[0].Name != "live" {
		t.Errorf("expected only the live epic, got %+v", snap.Epics)
	}
}

func TestScan_SkipsUnreadableFiles(t *testing.T) {
	tree := testutil.NewTree(t)
	tree.Task("auth", "1", "Good", "open")

	broken := filepath.Join(tree.Root, "epics", "auth", "2.md")
	if err := os.Symlink(filepath.Join(tree.Root, "does-not-exist"), broken); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	snap, report, err := Scan(tree.Root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(snap.Epics[0].Tasks) != 1 || snap.Epics[0].Tasks[0].ID != "1" {
		t.Errorf("expected only task 1, got %+v", snap.Epics[0].Tasks)
	}
	if len(report.Skipped) != 1 || report.Skipped[0].Path != broken {
		t.Errorf("expected %s to be skipped, got %+v", broken, report.Skipped)
	}
	if report.Skipped[0].Reason == "" {
		t.Error("skipped entry should carry a reason")
	}
}

func TestScan_MissingRootIsEnvironmentError(t *testing.T) {
	root := filepath.Join(t.TempDir(), "missing")

	_, _, err := Scan(root)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, ErrEnvironment) {
		t.Errorf("expected ErrEnvironment, got %v", err)
	}
	var envErr *EnvironmentError
	if !errors.As(err, &envErr) || envErr.Root != root {
		t.Errorf("expected *EnvironmentError for %s, got %#v", root, err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("expected the cause to be preserved")
	}
}

func TestScan_RootIsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	_, _, err := Scan(path)
	if !errors.Is(err, ErrEnvironment) {
		t.Errorf("expected ErrEnvironment, got %v", err)
	}
}

func TestIsTaskFile(t *testing.T) {
	tests := map[string]bool{
		"1.md":          true,
		"1234.md":       true,
		"epic.md":       false,
		"1-analysis.md": false,
		"1.txt":         false,
		"a1.md":         false,
		".md":           false,
	}
	for name, want := range tests {
		if got := IsTaskFile(name); got != want {
			t.Errorf("IsTaskFile(%q) = %v, want %v", name, got, want)
		}
	}
}
