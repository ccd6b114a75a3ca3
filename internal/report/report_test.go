package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/tkc/vibe-pm/internal/deps"
	"github.com/tkc/vibe-pm/internal/domain"
	"github.com/tkc/vibe-pm/internal/scan"
	"github.com/tkc/vibe-pm/internal/stats"
	"github.com/tkc/vibe-pm/internal/testutil"
)

func task(epic, id, name, status string, deps ...string) domain.Task {
	if deps == nil {
		deps = []string{}
	}
	return domain.Task{ID: id, Name: name, Status: domain.Status(status), DependsOn: deps, Epic: epic}
}

func render(t *testing.T, fn func(w *bytes.Buffer) error) string {
	t.Helper()

	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	return buf.String()
}

func assertOutput(t *testing.T, got, want string) {
	t.Helper()

	if got != want {
		t.Errorf("unexpected output\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
}

func TestStatus(t *testing.T) {
	snap := domain.NewSnapshot("/pm", []domain.Epic{
		{Name: "auth", Status: "in-progress", Tasks: []domain.Task{
			task("auth", "1", "Schema", "closed"),
			task("auth", "2", "Login", "open"),
			task("auth", "3", "Logout", "open"),
			task("auth", "4", "Reset", "open"),
		}},
		{Name: "billing", Status: "backlog"},
	}, []domain.PRD{
		{Slug: "auth", Status: "backlog"},
		{Slug: "billing", Status: "Implemented"},
		{Slug: "search"},
	})

	got := render(t, func(w *bytes.Buffer) error { return Status(w, stats.Aggregate(snap)) })
	want := `📊 Project Status
================================

📄 PRDs:
  Total: 3
  backlog: 1
  implemented: 1
  unknown: 1

📚 Epics:
  Total: 2

📝 Tasks:
  Open: 3
  Closed: 1
  Total: 4

📈 Epic Progress:
  auth: 25% (1/4 tasks)
  billing: 0% (0/0 tasks)
`
	assertOutput(t, got, want)
}

func TestStatus_Empty(t *testing.T) {
	snap := domain.NewSnapshot("/pm", nil, nil)

	got := render(t, func(w *bytes.Buffer) error { return Status(w, stats.Aggregate(snap)) })
	want := `📊 Project Status
================================

📄 PRDs:
  No PRDs found

📚 Epics:
  No epics found

📝 Tasks:
  No tasks found
`
	assertOutput(t, got, want)
}

func TestStatus_OtherStatusesCounted(t *testing.T) {
	snap := domain.NewSnapshot("/pm", []domain.Epic{
		{Name: "auth", Tasks: []domain.Task{
			task("auth", "1", "Schema", "CLOSED"),
			task("auth", "2", "Login", "in-progress"),
		}},
	}, nil)

	got := render(t, func(w *bytes.Buffer) error { return Status(w, stats.Aggregate(snap)) })
	want := `📊 Project Status
================================

📄 PRDs:
  No PRDs found

📚 Epics:
  Total: 1

📝 Tasks:
  Open: 0
  Closed: 1
  Other: 1
  Total: 2

📈 Epic Progress:
  auth: 50% (1/2 tasks)
`
	assertOutput(t, got, want)
}

func TestBlocked(t *testing.T) {
	// 2 waits on 1; 3 depends on a task that does not exist
	snap := domain.NewSnapshot("/pm", []domain.Epic{
		{Name: "auth", Tasks: []domain.Task{
			task("auth", "1", "Schema", "open"),
			task("auth", "2", "Login", "open", "1"),
			task("auth", "3", "Logout", "open", "1", "99"),
		}},
	}, nil)

	got := render(t, func(w *bytes.Buffer) error { return Blocked(w, deps.Blocked(snap)) })
	want := `🚫 Blocked Tasks
================================

⏸️ Task #2 - Login
   Epic: auth
   Blocked by: [1]
   Waiting for: #1

⏸️ Task #3 - Logout
   Epic: auth
   Blocked by: [1, 99]
   Waiting for: #1
   Unknown dependencies: #99

📊 Total blocked: 2 tasks
`
	assertOutput(t, got, want)
}

func TestBlocked_Empty(t *testing.T) {
	got := render(t, func(w *bytes.Buffer) error { return Blocked(w, nil) })
	want := `🚫 Blocked Tasks
================================

No blocked tasks found!

💡 All tasks with dependencies are either completed or in progress.
`
	assertOutput(t, got, want)
}

func TestNext_FirstThreeInScanOrder(t *testing.T) {
	a := []domain.Task{task("alpha", "1", "A1", "open"), task("alpha", "2", "A2", "open")}
	a[1].Parallel = true
	snap := domain.NewSnapshot("/pm", []domain.Epic{
		{Name: "alpha", Tasks: a},
		{Name: "beta", Tasks: []domain.Task{
			task("beta", "1", "B1", "open"),
			task("beta", "2", "B2", "open"),
		}},
	}, nil)

	got := render(t, func(w *bytes.Buffer) error { return Next(w, deps.Next(snap, 3)) })
	want := `📋 Next Available Tasks
================================

✅ Ready: #1 - A1
   Epic: alpha

✅ Ready: #2 - A2
   Epic: alpha
   🔄 Can run in parallel

✅ Ready: #1 - B1
   Epic: beta

📊 Summary: 3 tasks ready to start
`
	assertOutput(t, got, want)
}

func TestNext_Empty(t *testing.T) {
	got := render(t, func(w *bytes.Buffer) error { return Next(w, nil) })
	want := `📋 Next Available Tasks
================================

No available tasks found.

💡 Suggestions:
  • Check blocked tasks: vpm blocked
  • View all epics: vpm epic list

📊 Summary: 0 tasks ready to start
`
	assertOutput(t, got, want)
}

func TestStandup(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	recent := now.Add(-time.Hour)
	old := now.Add(-72 * time.Hour)

	tasks := []domain.Task{
		task("auth", "1", "Schema", "closed"),
		task("auth", "2", "Login", "open", "1"),
		task("auth", "3", "Logout", "open", "2"),
	}
	tasks[0].ModTime = old
	tasks[1].ModTime = recent
	tasks[2].ModTime = old

	snap := domain.NewSnapshot("/pm", []domain.Epic{{
		Name:          "auth",
		HasDescriptor: true,
		ModTime:       old,
		Tasks:         tasks,
		Updates: []domain.Progress{
			{TaskID: "1", Epic: "auth", Completion: "100%", ModTime: old},
			{TaskID: "2", Epic: "auth", Completion: "40", ModTime: recent},
		},
	}}, []domain.PRD{{Slug: "auth", ModTime: recent}})

	got := render(t, func(w *bytes.Buffer) error {
		return WriteStandup(w, NewStandup(snap, now, 24*time.Hour, 3))
	})
	want := `📅 Daily Standup - 2025-03-14
================================

📝 Today's Activity:
  • Modified 1 PRD(s)
  • Worked on 1 task(s)
  • Posted progress on 1 task(s)

🔄 Currently In Progress:
  • Task #2 (auth) - 40% complete

⏭️ Next Available Tasks:
  • #2 - Login (auth)

📊 Quick Stats:
  Tasks: 2 open, 1 closed, 3 total
`
	assertOutput(t, got, want)
}

func TestStandup_Empty(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	snap := domain.NewSnapshot("/pm", nil, nil)

	got := render(t, func(w *bytes.Buffer) error {
		return WriteStandup(w, NewStandup(snap, now, 0, 3))
	})
	want := `📅 Daily Standup - 2025-03-14
================================

📝 Today's Activity:
  • No activity in the last 24h

🔄 Currently In Progress:
  • Nothing in progress

⏭️ Next Available Tasks:
  • No ready tasks

📊 Quick Stats:
  Tasks: 0 open, 0 closed, 0 total
`
	assertOutput(t, got, want)
}

func TestEpicStatus(t *testing.T) {
	e := domain.Epic{Name: "auth", Tasks: []domain.Task{
		task("auth", "1", "Schema", "closed"),
		task("auth", "2", "Login", "open", "1"),
		task("auth", "3", "Logout", "open", "2"),
		task("auth", "4", "Reset", "open", "99"),
	}}

	got := render(t, func(w *bytes.Buffer) error { return EpicStatus(w, &e) })
	want := `📊 Epic Status: auth
================================

Progress: [█████░░░░░░░░░░░░░░░] 25%
Total tasks: 4

✅ Completed: 1
🔄 Available: 1
⏸️ Blocked: 2
`
	assertOutput(t, got, want)
}

func TestEpicStatus_NoTasks(t *testing.T) {
	e := domain.Epic{Name: "empty"}

	got := render(t, func(w *bytes.Buffer) error { return EpicStatus(w, &e) })
	want := `📊 Epic Status: empty
================================

No tasks found in this epic.

Progress: [░░░░░░░░░░░░░░░░░░░░] 0%
`
	assertOutput(t, got, want)
}

func TestEpicShow(t *testing.T) {
	e := domain.Epic{Name: "auth", Title: "Authentication", Status: "in-progress", Tasks: []domain.Task{
		task("auth", "1", "Schema", "closed"),
		task("auth", "2", "Login", "open", "1"),
		task("auth", "3", "Logout", "open", "2", "99"),
		task("auth", "4", "Reset", "open", "98"),
	}}

	got := render(t, func(w *bytes.Buffer) error { return EpicShow(w, &e) })
	want := `📚 Epic: Authentication
================================

Directory: auth
Status: in-progress

📝 Tasks:
  ✅ #1 - Schema
  ⬜ #2 - Login
  ⏸️ #3 - Logout (waiting on #2; unknown #99)
  ⏸️ #4 - Reset (unknown #98)

📊 Statistics:
  Total tasks: 4
  Open: 3
  Closed: 1
  Completion: 25%
`
	assertOutput(t, got, want)
}

func TestEpicList(t *testing.T) {
	snap := domain.NewSnapshot("/pm", []domain.Epic{
		{Name: "auth", Title: "Authentication", Status: "in-progress", Tasks: []domain.Task{
			task("auth", "1", "Schema", "closed"),
			task("auth", "2", "Login", "open"),
		}},
		{Name: "billing", Title: "Billing", Status: "backlog"},
		{Name: "search", Title: "Search", Status: "Completed", Tasks: []domain.Task{
			task("search", "1", "Index", "closed"),
		}},
	}, nil)

	got := render(t, func(w *bytes.Buffer) error { return EpicList(w, snap) })
	want := `📚 Project Epics
================================

📝 Planning:
   📋 billing - Billing (0% complete, 0 tasks)

🚀 In Progress:
   📋 auth - Authentication (50% complete, 2 tasks)

✅ Completed:
   📋 search - Search (100% complete, 1 task)

📊 Summary:
   Total epics: 3
   Total tasks: 3
`
	assertOutput(t, got, want)
}

func TestGroupOf(t *testing.T) {
	tests := []struct {
		status domain.Status
		want   EpicGroup
	}{
		{"", GroupPlanning},
		{"backlog", GroupPlanning},
		{"In-Progress", GroupInProgress},
		{"active", GroupInProgress},
		{"closed", GroupCompleted},
		{"done", GroupCompleted},
	}
	for _, tt := range tests {
		if got := GroupOf(tt.status); got != tt.want {
			t.Errorf("GroupOf(%q) = %d, want %d", tt.status, got, tt.want)
		}
	}
}

func TestPRDList(t *testing.T) {
	prds := []domain.PRD{
		{Slug: "auth", Name: "Authentication", Status: "backlog", Description: "Login and sessions"},
		{Slug: "search", Name: "Search"},
	}

	got := render(t, func(w *bytes.Buffer) error { return PRDList(w, prds) })
	want := `📄 Product Requirements Documents
================================

  • auth: Authentication [backlog]
    Login and sessions
  • search: Search [unknown]

📊 Total: 2 PRDs
`
	assertOutput(t, got, want)
}

func TestPRDStatus(t *testing.T) {
	base := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	prds := []domain.PRD{
		{Slug: "auth", Name: "Authentication", Status: "backlog", ModTime: base},
		{Slug: "billing", Name: "Billing", Status: "backlog", ModTime: base.Add(time.Hour)},
		{Slug: "search", Name: "Search", Status: "implemented", ModTime: base.Add(-time.Hour)},
		{Slug: "users", Name: "Users", Status: "in-progress", ModTime: base},
	}
	snap := domain.NewSnapshot("/pm", nil, prds)

	got := render(t, func(w *bytes.Buffer) error { return PRDStatus(w, prds, stats.Aggregate(snap)) })
	want := `📄 PRD Status Report
================================

📊 Distribution:
  backlog:       2 [██████████░░░░░░░░░░]
  implemented:   1 [█████░░░░░░░░░░░░░░░]
  in-progress:   1 [█████░░░░░░░░░░░░░░░]

  Total PRDs: 4

📅 Recent PRDs (last 4 modified):
  • Billing
  • Authentication
  • Users
  • Search
`
	assertOutput(t, got, want)
}

func TestInProgressWork(t *testing.T) {
	snap := domain.NewSnapshot("/pm", []domain.Epic{{
		Name:   "auth",
		Status: "in-progress",
		Tasks: []domain.Task{
			task("auth", "1", "Schema", "closed"),
			task("auth", "2", "Login", "open"),
		},
		Updates: []domain.Progress{
			{TaskID: "1", Epic: "auth", Completion: "100%"},
			{TaskID: "2", Epic: "auth"},
		},
	}}, nil)

	got := render(t, func(w *bytes.Buffer) error { return InProgressWork(w, snap) })
	want := `🔄 In Progress Work
================================

📝 Active Tasks:
   • Task #2 (auth) - Login
     Progress: 0%

🚀 Active Epics:
   • auth - 50% complete

📊 Total active items: 2
`
	assertOutput(t, got, want)
}

func TestInProgressWork_Empty(t *testing.T) {
	got := render(t, func(w *bytes.Buffer) error {
		return InProgressWork(w, domain.NewSnapshot("/pm", nil, nil))
	})
	want := `🔄 In Progress Work
================================

No active work items found.

💡 Start work with: vpm next
`
	assertOutput(t, got, want)
}

func TestRenderingIsIdempotent(t *testing.T) {
	tree := testutil.NewTree(t)
	tree.PRD("auth", "Authentication", "backlog")
	tree.Epic("auth", "in-progress")
	tree.Task("auth", "1", "Schema", "closed")
	tree.Task("auth", "2", "Login", "open", "1")
	tree.Task("auth", "3", "Logout", "open", "2", "99")
	tree.Progress("auth", "2", "50%")

	renderAll := func() string {
		snap, _, err := scan.Scan(tree.Root)
		if err != nil {
			t.Fatalf("Scan failed: %v", err)
		}
		var buf bytes.Buffer
		if err := Status(&buf, stats.Aggregate(snap)); err != nil {
			t.Fatal(err)
		}
		if err := Blocked(&buf, deps.Blocked(snap)); err != nil {
			t.Fatal(err)
		}
		if err := Next(&buf, deps.Next(snap, deps.DefaultLimit)); err != nil {
			t.Fatal(err)
		}
		if err := EpicList(&buf, snap); err != nil {
			t.Fatal(err)
		}
		return buf.String()
	}

	first := renderAll()
	second := renderAll()
	if first != second {
		t.Errorf("expected identical output across scans\n--- first ---\n%s\n--- second ---\n%s", first, second)
	}
}
