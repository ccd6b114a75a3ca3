// Package scan はPMルート配下のPRD・エピック・タスクを読み込みSnapshotを作る
package scan

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/tkc/vibe-pm/internal/domain"
	"github.com/tkc/vibe-pm/internal/frontmatter"
)

// ディレクトリ・ファイル名定数
const (
	PRDsDir        = "prds"
	EpicsDir       = "epics"
	UpdatesDir     = "updates"
	EpicFile       = "epic.md"
	ProgressFile   = "progress.md"
	markdownSuffix = ".md"
)

// taskFilePattern はタスクファイル名（数字 + .md）
var taskFilePattern = regexp.MustCompile(`^[0-9]+\.md$`)

// IsTaskFile はファイル名がタスクファイルかどうかを返す
func IsTaskFile(name string) bool {
	return taskFilePattern.MatchString(name)
}

// Scanner はPMルートを読み込む
type Scanner struct {
	root   string
	logger *slog.Logger
}

// NewScanner は新しいScannerを作成する
func NewScanner(root string, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Scanner{
		root:   root,
		logger: logger,
	}
}

// Scan はrootを読み込む。ロガーは使わない
func Scan(root string) (*domain.Snapshot, *Report, error) {
	return NewScanner(root, nil).Scan()
}

// Scan はPMルートを一度だけ走査してSnapshotを返す
//
// ルート自体が読めない場合だけエラーを返す。読めないファイルはReportに記録して続行する。
func (s *Scanner) Scan() (*domain.Snapshot, *Report, error) {
	info, err := os.Stat(s.root)
	if err != nil {
		return nil, nil, &EnvironmentError{Root: s.root, Err: err}
	}
	if !info.IsDir() {
		return nil, nil, &EnvironmentError{Root: s.root, Err: errors.New("not a directory")}
	}
	if _, err := os.ReadDir(s.root); err != nil {
		return nil, nil, &EnvironmentError{Root: s.root, Err: err}
	}

	report := &Report{}
	prds := s.scanPRDs(report)
	epics := s.scanEpics(report)

	s.logger.Debug("scan complete",
		"root", s.root,
		"prds", len(prds),
		"epics", len(epics),
		"files", report.Files,
		"skipped", len(report.Skipped))

	return domain.NewSnapshot(s.root, epics, prds), report, nil
}

func (s *Scanner) scanPRDs(report *Report) []domain.PRD {
	dir := filepath.Join(s.root, PRDsDir)
	entries, ok := s.readDir(dir, report)
	if !ok {
		return nil
	}

	prds := make([]domain.PRD, 0)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), markdownSuffix) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		content, modTime, err := readFile(path)
		if err != nil {
			s.skip(report, path, err)
			continue
		}
		report.Files++

		f := frontmatter.Parse(content)
		prds = append(prds, domain.PRD{
			Slug:        strings.TrimSuffix(entry.Name(), markdownSuffix),
			Name:        f.Value(frontmatter.KeyName),
			Status:      domain.Status(f.Value(frontmatter.KeyStatus)),
			Description: f.Value(frontmatter.KeyDescription),
			Created:     f.Value(frontmatter.KeyCreated),
			Path:        path,
			ModTime:     modTime,
		})
	}
	return prds
}

func (s *Scanner) scanEpics(report *Report) []domain.Epic {
	dir := filepath.Join(s.root, EpicsDir)
	entries, ok := s.readDir(dir, report)
	if !ok {
		return nil
	}

	epics := make([]domain.Epic, 0)
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		epics = append(epics, s.scanEpic(filepath.Join(dir, entry.Name()), entry.Name(), report))
	}
	return epics
}

func (s *Scanner) scanEpic(dir, name string, report *Report) domain.Epic {
	epic := domain.Epic{
		Name:  name,
		Title: name,
		Path:  dir,
		Tasks: make([]domain.Task, 0),
	}

	entries, ok := s.readDir(dir, report)
	if !ok {
		return epic
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		switch {
		case entry.Name() == EpicFile:
			content, modTime, err := readFile(path)
			if err != nil {
				s.skip(report, path, err)
				continue
			}
			report.Files++

			f := frontmatter.Parse(content)
			epic.HasDescriptor = true
			epic.ModTime = modTime
			epic.Status = domain.Status(f.Value(frontmatter.KeyStatus))
			epic.Progress = f.Value(frontmatter.KeyProgress)
			epic.GitHub = f.Value(frontmatter.KeyGitHub)
			if title := f.Value(frontmatter.KeyName); title != "" {
				epic.Title = title
			}

		case IsTaskFile(entry.Name()):
			content, modTime, err := readFile(path)
			if err != nil {
				s.skip(report, path, err)
				continue
			}
			report.Files++

			// ファイルごとに新しいレコードを作る
			fields := frontmatter.ParseTask(content)
			epic.Tasks = append(epic.Tasks, domain.Task{
				ID:        strings.TrimSuffix(entry.Name(), markdownSuffix),
				Name:      fields.Name,
				Status:    domain.Status(fields.Status),
				DependsOn: fields.DependsOn,
				Parallel:  fields.Parallel,
				GitHub:    fields.GitHub,
				Epic:      name,
				Path:      path,
				ModTime:   modTime,
			})
		}
	}

	sort.SliceStable(epic.Tasks, func(i, j int) bool {
		return domain.CompareIDs(epic.Tasks[i].ID, epic.Tasks[j].ID) < 0
	})

	epic.Updates = s.scanUpdates(filepath.Join(dir, UpdatesDir), name, report)
	return epic
}

func (s *Scanner) scanUpdates(dir, epicName string, report *Report) []domain.Progress {
	entries, ok := s.readDir(dir, report)
	if !ok {
		return nil
	}

	updates := make([]domain.Progress, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name(), ProgressFile)
		content, modTime, err := readFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			s.skip(report, path, err)
			continue
		}
		report.Files++

		f := frontmatter.Parse(content)
		updates = append(updates, domain.Progress{
			TaskID:     entry.Name(),
			Epic:       epicName,
			Completion: f.Value(frontmatter.KeyCompletion),
			Path:       path,
			ModTime:    modTime,
		})
	}

	sort.SliceStable(updates, func(i, j int) bool {
		return domain.CompareIDs(updates[i].TaskID, updates[j].TaskID) < 0
	})
	return updates
}

// readDir はディレクトリを名前順で返す。存在しない場合は黙ってfalseを返す
func (s *Scanner) readDir(dir string, report *Report) ([]os.DirEntry, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.skip(report, dir, err)
		}
		return nil, false
	}
	return entries, true
}

func (s *Scanner) skip(report *Report, path string, err error) {
	s.logger.Debug("skipping unreadable path", "path", path, "error", err)
	report.skip(path, err)
}

// readFile は開く・読む・閉じるを一つの関数内で行う
func readFile(path string) (string, time.Time, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", time.Time{}, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to stat: %w", err)
	}
	if info.IsDir() {
		return "", time.Time{}, errors.New("is a directory")
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to read: %w", err)
	}
	return string(data), info.ModTime(), nil
}
