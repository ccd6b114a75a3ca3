package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tkc/vibe-pm/internal/config"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the GitHub token used by sync-check",
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Save a GitHub token",
	Long: `Save a GitHub personal access token for sync-check.

For Classic tokens (https://github.com/settings/tokens):
  Required scopes:
    - repo (to read issues of private repositories)

For Fine-grained tokens (https://github.com/settings/tokens?type=beta):
  Repository permissions:
    - Issues: Read-only

The token can also be given with the GITHUB_TOKEN environment variable.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "GitHub Personal Access Token を入力してください")
		fmt.Fprintln(out, "(必要なスコープ: repo)")
		fmt.Fprintln(out)
		fmt.Fprint(out, "Token: ")

		reader := bufio.NewReader(cmd.InOrStdin())
		token, err := reader.ReadString('\n')
		if err != nil && token == "" {
			return fmt.Errorf("failed to read token: %w", err)
		}
		token = strings.TrimSpace(token)

		if token == "" {
			return fmt.Errorf("token cannot be empty")
		}

		if err := saveToken(token); err != nil {
			return err
		}
		cfg.GitHubToken = token

		fmt.Fprintln(out, "✓ Token saved to", config.GlobalConfigPath())
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Next step: vpm sync-check")
		return nil
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show authentication status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if !cfg.HasToken() {
			fmt.Fprintln(out, "✗ Not logged in")
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Run: vpm auth login")
			return nil
		}

		fmt.Fprintf(out, "✓ Logged in (token: %s)\n", maskToken(cfg.GitHubToken))
		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the saved GitHub token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := saveToken(""); err != nil {
			return err
		}
		cfg.GitHubToken = ""
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Logged out successfully")
		return nil
	},
}

// saveToken はグローバル設定ファイルのトークンだけを書き換える
func saveToken(token string) error {
	global, err := config.LoadGlobal()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	global.GitHubToken = token
	if err := global.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// maskToken はトークンの先頭と末尾4文字だけを表示する
func maskToken(token string) string {
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + strings.Repeat("*", len(token)-8) + token[len(token)-4:]
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authLogoutCmd)
}
