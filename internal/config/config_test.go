package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// isolate はHOMEとカレントディレクトリを一時ディレクトリに切り替える
func isolate(t *testing.T) (home, project string) {
	t.Helper()

	home = t.TempDir()
	project = t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("VPM_GITHUB_TOKEN", "")
	chdir(t, project)
	return home, project
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()

	path := filepath.Join(dir, configDirName, configFileName)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
}

func TestLoadWithPrecedence_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadWithPrecedence()
	if err != nil {
		t.Fatalf("LoadWithPrecedence failed: %v", err)
	}

	if cfg.Root != DefaultRoot {
		t.Errorf("Expected root %q, got %q", DefaultRoot, cfg.Root)
	}
	if cfg.NextLimit != DefaultNextLimit {
		t.Errorf("Expected next_limit %d, got %d", DefaultNextLimit, cfg.NextLimit)
	}
	if cfg.StandupWindow != DefaultStandupWindow {
		t.Errorf("Expected standup_window %s, got %s", DefaultStandupWindow, cfg.StandupWindow)
	}
	if cfg.HasToken() {
		t.Error("Expected no token by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected defaults to be valid: %v", err)
	}
}

func TestLoadWithPrecedence_ProjectOverridesGlobal(t *testing.T) {
	home, project := isolate(t)

	writeConfig(t, home, "root: global-root\nnext_limit: 5\nstandup_window: 48h\n")
	writeConfig(t, project, "root: project-root\n")

	cfg, err := LoadWithPrecedence()
	if err != nil {
		t.Fatalf("LoadWithPrecedence failed: %v", err)
	}

	if cfg.Root != "project-root" {
		t.Errorf("Expected project root, got %q", cfg.Root)
	}
	if cfg.NextLimit != 5 {
		t.Errorf("Expected next_limit from global config, got %d", cfg.NextLimit)
	}
	if cfg.StandupWindow != 48*time.Hour {
		t.Errorf("Expected 48h window, got %s", cfg.StandupWindow)
	}
}

func TestLoadWithPrecedence_EnvOverridesFiles(t *testing.T) {
	home, _ := isolate(t)

	writeConfig(t, home, "next_limit: 5\ngithub_token: from-file\n")
	t.Setenv("VPM_NEXT_LIMIT", "7")
	t.Setenv("GITHUB_TOKEN", "from-env")

	cfg, err := LoadWithPrecedence()
	if err != nil {
		t.Fatalf("LoadWithPrecedence failed: %v", err)
	}

	if cfg.NextLimit != 7 {
		t.Errorf("Expected next_limit 7 from env, got %d", cfg.NextLimit)
	}
	if cfg.GitHubToken != "from-env" {
		t.Errorf("Expected token from env, got %q", cfg.GitHubToken)
	}
}

func TestLoadWithPrecedence_InvalidFile(t *testing.T) {
	home, _ := isolate(t)

	writeConfig(t, home, "root: [unclosed\n")

	if _, err := LoadWithPrecedence(); err == nil {
		t.Error("Expected error for malformed config")
	}
}

func TestSave(t *testing.T) {
	home, _ := isolate(t)

	cfg := Default()
	cfg.GitHubToken = "ghp_test"
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	path := filepath.Join(home, configDirName, configFileName)
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Expected config file: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected mode 0600, got %o", info.Mode().Perm())
	}

	loaded, err := LoadWithPrecedence()
	if err != nil {
		t.Fatalf("LoadWithPrecedence failed: %v", err)
	}
	if loaded.GitHubToken != "ghp_test" {
		t.Errorf("Expected saved token, got %q", loaded.GitHubToken)
	}
	if loaded.StandupWindow != DefaultStandupWindow {
		t.Errorf("Expected saved window %s, got %s", DefaultStandupWindow, loaded.StandupWindow)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"empty root", func(c *Config) { c.Root = " " }, true},
		{"zero limit", func(c *Config) { c.NextLimit = 0 }, true},
		{"negative window", func(c *Config) { c.StandupWindow = -time.Hour }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// chdir は testing.T.Chdir (Go 1.24+) 相当: カレントディレクトリを変更し、テスト終了時に復元する
func chdir(t *testing.T, dir string) {
	t.Helper()

	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PWD", dir)
	t.Cleanup(func() {
		if err := os.Chdir(oldwd); err != nil {
			panic("testing.Chdir: " + err.Error())
		}
	})
}
