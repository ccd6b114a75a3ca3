package report

import (
	"io"

	"github.com/tkc/vibe-pm/internal/validate"
)

var validateSections = map[validate.Category]struct {
	title string
	clean string
}{
	validate.CategoryStructure:   {"📁 Directory Structure:", "Directory structure looks good"},
	validate.CategoryIntegrity:   {"🗂️ Data Integrity:", "No integrity issues found"},
	validate.CategoryReferences:  {"🔗 Reference Check:", "All references valid"},
	validate.CategoryFrontmatter: {"📝 Frontmatter Validation:", "All files have valid frontmatter"},
	validate.CategoryContent:     {"📄 Content Check:", "No placeholder or empty content"},
}

// Validation は検査結果を書き出す
func Validation(w io.Writer, r *validate.Result) error {
	p := newPrinter(w)
	p.heading("🔍 Validation Report")

	for _, c := range validate.Categories {
		section := validateSections[c]
		p.println(section.title)
		findings := r.In(c)
		if len(findings) == 0 {
			p.printf("  ✅ %s\n", section.clean)
		}
		for _, f := range findings {
			p.printf("  %s %s\n", severityIcon(f.Severity), f.Message)
		}
		p.println()
	}

	p.println("📊 Validation Summary:")
	p.printf("  Files checked: %d\n", r.Files)
	p.printf("  Errors: %d\n", r.Errors())
	p.printf("  Warnings: %d\n", r.Warnings())
	p.printf("  Invalid files: %d\n", r.InvalidFiles())
	p.println()

	switch {
	case r.Errors() > 0:
		p.println("❌ Validation failed. Fix the errors above.")
	case r.Warnings() > 0:
		p.println("⚠️ Validation passed with warnings.")
	default:
		p.println("✅ System is healthy!")
	}
	return p.err
}

func severityIcon(s validate.Severity) string {
	switch s {
	case validate.SeverityError:
		return "❌"
	case validate.SeverityWarning:
		return "⚠️"
	default:
		return "✅"
	}
}
