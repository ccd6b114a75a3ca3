package report

import (
	"io"

	"github.com/tkc/vibe-pm/internal/search"
)

// Search は検索結果を書き出す
func Search(w io.Writer, r *search.Result) error {
	p := newPrinter(w)
	p.heading("🔍 Search results for: '" + r.Query + "'")

	p.println("📄 PRDs:")
	if len(r.PRDs) == 0 {
		p.println("  No matches")
	}
	for _, m := range r.PRDs {
		p.printf("  • %s (%s)\n", m.ID, plural(m.Lines, "match"))
	}
	p.println()

	p.println("📚 Epics:")
	if len(r.Epics) == 0 {
		p.println("  No matches")
	}
	for _, m := range r.Epics {
		p.printf("  • %s (%s)\n", m.ID, plural(m.Lines, "match"))
	}
	p.println()

	p.println("📝 Tasks:")
	if len(r.Tasks) == 0 {
		p.println("  No matches")
	}
	for _, m := range r.Tasks {
		p.printf("  • Task #%s in %s (%s)\n", m.ID, m.Epic, plural(m.Lines, "match"))
	}
	p.println()

	p.printf("📊 Total files with matches: %d\n", r.Total())
	return p.err
}
