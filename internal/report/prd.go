package report

import (
	"io"
	"sort"

	"github.com/tkc/vibe-pm/internal/domain"
	"github.com/tkc/vibe-pm/internal/stats"
)

// recentPRDs はPRDステータスに表示する最近のPRD数
const recentPRDs = 5

// PRDList はPRDの一覧を書き出す
func PRDList(w io.Writer, prds []domain.PRD) error {
	p := newPrinter(w)
	p.heading("📄 Product Requirements Documents")

	if len(prds) == 0 {
		p.println("No PRDs found.")
		p.println()
		p.println("💡 Create your first PRD with: /pm:prd-new <feature-name>")
		return p.err
	}

	for _, prd := range prds {
		p.printf("  • %s: %s [%s]\n", prd.Slug, prd.DisplayName(), statusLabel(prd.Status))
		if prd.Description != "" {
			p.printf("    %s\n", prd.Description)
		}
	}
	p.println()
	p.printf("📊 Total: %s\n", plural(len(prds), "PRD"))
	return p.err
}

// PRDStatus はPRDのステータス分布と最近更新されたPRDを書き出す
func PRDStatus(w io.Writer, prds []domain.PRD, s stats.Summary) error {
	p := newPrinter(w)
	p.heading("📄 PRD Status Report")

	if len(prds) == 0 {
		p.println("No PRDs found.")
		return p.err
	}

	p.println("📊 Distribution:")
	for _, c := range s.PRDsByStatus {
		p.printf("  %-12s %3d [%s]\n", c.Status+":", c.Count, bar(stats.Percent(c.Count, s.PRDs)))
	}
	p.println()
	p.printf("  Total PRDs: %d\n", s.PRDs)
	p.println()

	recent := append([]domain.PRD(nil), prds...)
	sort.SliceStable(recent, func(i, j int) bool {
		if !recent[i].ModTime.Equal(recent[j].ModTime) {
			return recent[i].ModTime.After(recent[j].ModTime)
		}
		return recent[i].Slug < recent[j].Slug
	})
	if len(recent) > recentPRDs {
		recent = recent[:recentPRDs]
	}

	p.printf("📅 Recent PRDs (last %d modified):\n", len(recent))
	for _, prd := range recent {
		p.printf("  • %s\n", prd.DisplayName())
	}
	return p.err
}

func statusLabel(s domain.Status) string {
	if s.Normalized() == "" {
		return stats.UnknownStatus
	}
	return s.Normalized()
}
