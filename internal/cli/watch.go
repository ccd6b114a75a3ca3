package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/tkc/vibe-pm/internal/deps"
	"github.com/tkc/vibe-pm/internal/domain"
	"github.com/tkc/vibe-pm/internal/notify"
)

var (
	watchInterval time.Duration
	watchNotify   bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the PM directory for tasks that become ready",
	Long: `Re-scan the PM directory at regular intervals and report tasks that
have become ready since the previous scan.

The directory is only read. Press Ctrl+C to stop watching.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if watchInterval <= 0 {
			return fmt.Errorf("--interval must be positive, got %s", watchInterval)
		}

		// 初回のスキャンでルートが読めることを確認する
		snap, _, err := loadSnapshot()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "👀 Watching %s for ready tasks...\n", cfg.Root)
		fmt.Fprintf(out, "   Interval: %s\n", watchInterval)
		fmt.Fprintln(out, "   Press Ctrl+C to stop")
		fmt.Fprintln(out)

		seen := make(map[string]bool)
		announceReady(out, seen, deps.Ready(snap))

		ticker := time.NewTicker(watchInterval)
		defer ticker.Stop()

		ctx := cmd.Context()
		for {
			select {
			case <-ticker.C:
				snap, _, err := loadSnapshot()
				if err != nil {
					logger.Warn("scan failed", "root", cfg.Root, "error", err)
					continue
				}
				announceReady(out, seen, deps.Ready(snap))
			case <-ctx.Done():
				fmt.Fprintln(out, "\n👋 Stopping watch...")
				return nil
			}
		}
	},
}

// newlyReady はseenにないreadyタスクを返し、seenをreadyの集合で置き換える
//
// 一度readyでなくなったタスクが再びreadyになった場合も新規として扱う。
func newlyReady(seen map[string]bool, ready []domain.Task) []domain.Task {
	var fresh []domain.Task
	current := make(map[string]bool, len(ready))
	for _, t := range ready {
		key := t.Epic + "/" + t.ID
		current[key] = true
		if !seen[key] {
			fresh = append(fresh, t)
		}
	}

	for k := range seen {
		delete(seen, k)
	}
	for k := range current {
		seen[k] = true
	}
	return fresh
}

func announceReady(out io.Writer, seen map[string]bool, ready []domain.Task) {
	timestamp := time.Now().Format("15:04:05")

	fresh := newlyReady(seen, ready)
	if len(fresh) == 0 {
		fmt.Fprintf(out, "[%s] No new ready tasks (%d ready)\n", timestamp, len(ready))
		return
	}

	fmt.Fprintf(out, "[%s] 📋 %d task(s) became ready\n", timestamp, len(fresh))
	for _, t := range fresh {
		fmt.Fprintf(out, "   ✅ %s #%s - %s\n", t.Epic, t.ID, t.DisplayName())
	}

	if watchNotify {
		t := fresh[0]
		if err := notify.SendNextTask(t.Epic, t.ID, t.DisplayName(), len(fresh)); err != nil {
			logger.Warn("failed to send notification", "error", err)
		}
	}
}

func init() {
	watchCmd.Flags().DurationVarP(&watchInterval, "interval", "i", 30*time.Second, "polling interval")
	watchCmd.Flags().BoolVar(&watchNotify, "notify", false, "send a desktop notification when tasks become ready")
}
