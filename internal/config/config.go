package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config はアプリケーション設定
type Config struct {
	Root          string        `yaml:"root" mapstructure:"root"`                     // PMルートディレクトリ
	NextLimit     int           `yaml:"next_limit" mapstructure:"next_limit"`         // next の表示件数
	StandupWindow time.Duration `yaml:"standup_window" mapstructure:"standup_window"` // standup の集計期間
	GitHubToken   string        `yaml:"github_token,omitempty" mapstructure:"github_token"`
	NoColor       bool          `yaml:"no_color" mapstructure:"no_color"`
}

// デフォルト値
const (
	DefaultRoot          = ".claude"
	DefaultNextLimit     = 3
	DefaultStandupWindow = 24 * time.Hour
)

// EnvPrefix は環境変数のプレフィックス
const EnvPrefix = "VPM"

// configFileName は設定ファイル名
const configFileName = "config.yaml"

// configDirName は設定ディレクトリ名
const configDirName = ".vpm"

// Default はデフォルト設定を返す
func Default() *Config {
	return &Config{
		Root:          DefaultRoot,
		NextLimit:     DefaultNextLimit,
		StandupWindow: DefaultStandupWindow,
	}
}

// LoadWithPrecedence は設定を優先順位に従って読み込む
//
// デフォルト < ~/.vpm/config.yaml < ./.vpm/config.yaml < 環境変数
func LoadWithPrecedence() (*Config, error) {
	v := newViper()
	for _, path := range []string{GlobalConfigPath(), ProjectConfigPath()} {
		if err := mergeFile(v, path); err != nil {
			return nil, err
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	// GITHUB_TOKEN は VPM_GITHUB_TOKEN がない場合に使う
	if err := v.BindEnv("github_token", EnvPrefix+"_GITHUB_TOKEN", "GITHUB_TOKEN"); err != nil {
		return nil, fmt.Errorf("failed to bind env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// LoadGlobal はデフォルトと ~/.vpm/config.yaml だけから設定を読み込む
//
// プロジェクト設定、環境変数、フラグは反映しない。Save の前に使う。
func LoadGlobal() (*Config, error) {
	v := newViper()
	if err := mergeFile(v, GlobalConfigPath()); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	d := Default()
	v.SetDefault("root", d.Root)
	v.SetDefault("next_limit", d.NextLimit)
	v.SetDefault("standup_window", d.StandupWindow)
	v.SetDefault("github_token", "")
	v.SetDefault("no_color", false)
	return v
}

func mergeFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	defer f.Close()

	if err := v.MergeConfig(f); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

// Save はグローバル設定ファイルを保存する
//
// LoadGlobal で読んだ設定に対して呼ぶ。
func (c *Config) Save() error {
	path := GlobalConfigPath()
	if path == "" {
		return fmt.Errorf("failed to get home dir")
	}

	// ディレクトリ作成
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate は設定が有効かどうかを検証する
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Root) == "" {
		return fmt.Errorf("root must not be empty")
	}
	if c.NextLimit <= 0 {
		return fmt.Errorf("next_limit must be positive, got %d", c.NextLimit)
	}
	if c.StandupWindow <= 0 {
		return fmt.Errorf("standup_window must be positive, got %s", c.StandupWindow)
	}
	return nil
}

// HasToken はGitHubトークンが設定済みかどうかを返す
func (c *Config) HasToken() bool {
	return c.GitHubToken != ""
}

// GlobalConfigPath は ~/.vpm/config.yaml のパスを返す
func GlobalConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDirName, configFileName)
}

// ProjectConfigPath は ./.vpm/config.yaml のパスを返す
func ProjectConfigPath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return filepath.Join(cwd, configDirName, configFileName)
}
