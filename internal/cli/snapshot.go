package cli

import (
	"fmt"

	"github.com/tkc/vibe-pm/internal/domain"
	"github.com/tkc/vibe-pm/internal/scan"
)

// loadSnapshot はPMルートを走査し、読み飛ばしたファイルを警告として記録する
func loadSnapshot() (*domain.Snapshot, *scan.Report, error) {
	snap, report, err := scan.NewScanner(cfg.Root, logger).Scan()
	if err != nil {
		return nil, nil, err
	}

	for _, s := range report.Skipped {
		logger.Warn("skipped unreadable file", "path", s.Path, "reason", s.Reason)
	}
	return snap, report, nil
}

// findEpic は名前でエピックを探す
func findEpic(snap *domain.Snapshot, name string) (*domain.Epic, error) {
	epic, ok := snap.Epic(name)
	if !ok {
		return nil, fmt.Errorf("epic not found: %s", name)
	}
	return epic, nil
}
