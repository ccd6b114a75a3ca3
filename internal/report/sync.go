package report

import (
	"io"

	"github.com/tkc/vibe-pm/internal/github"
)

// SyncCheck はローカルとGitHubの状態の差分を書き出す
func SyncCheck(w io.Writer, r *github.DriftReport) error {
	p := newPrinter(w)
	p.heading("🔄 GitHub Sync Check")

	if len(r.Checked) == 0 && len(r.Invalid) == 0 {
		p.println("No items are linked to GitHub issues.")
		p.println()
		p.printf("📊 Untracked tasks: %d\n", r.Untracked)
		return p.err
	}

	drifted := r.Drifted()
	switch {
	case len(drifted) > 0:
		p.println("⚠️ Drift:")
		for _, d := range drifted {
			p.printf("  %s - %s (%s): %s\n", d.Item.Label(), d.Item.Name, d.Ref, d.Kind)
		}
		p.println()
	case len(r.Checked) > len(r.Failed()):
		p.println("✅ All linked items match GitHub")
		p.println()
	}

	if failed := r.Failed(); len(failed) > 0 {
		p.println("❌ Lookup failed:")
		for _, d := range failed {
			p.printf("  %s (%s): %v\n", d.Item.Label(), d.Ref, d.Err)
		}
		p.println()
	}

	if len(r.Invalid) > 0 {
		p.println("❓ Invalid GitHub links:")
		for _, d := range r.Invalid {
			p.printf("  %s: %s\n", d.Item.Label(), d.Item.URL)
		}
		p.println()
	}

	p.println("📊 Summary:")
	p.printf("  Checked: %d\n", len(r.Checked))
	p.printf("  Drifted: %d\n", len(drifted))
	p.printf("  Untracked tasks: %d\n", r.Untracked)
	return p.err
}
