package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"
)

// Client はGitHub GraphQL APIクライアント
type Client struct {
	gql *githubv4.Client
}

// NewClient は新しいClientを作成する
func NewClient(token string) *Client {
	src := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	httpClient := oauth2.NewClient(context.Background(), src)
	return &Client{
		gql: githubv4.NewClient(httpClient),
	}
}

// IssueState はIssueの状態を取得する
func (c *Client) IssueState(ctx context.Context, ref IssueRef) (RemoteState, error) {
	var query struct {
		Repository struct {
			Issue struct {
				State githubv4.IssueState
			} `graphql:"issue(number: $number)"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}

	variables := map[string]interface{}{
		"owner":  githubv4.String(ref.Owner),
		"name":   githubv4.String(ref.Repo),
		"number": githubv4.Int(ref.Number),
	}

	if err := c.gql.Query(ctx, &query, variables); err != nil {
		// 権限エラーの場合は明確なメッセージを返す
		if strings.Contains(err.Error(), "not accessible by personal access token") {
			return "", fmt.Errorf("token lacks 'repo' scope. Please regenerate your token at https://github.com/settings/tokens")
		}
		return "", fmt.Errorf("failed to query %s: %w", ref, err)
	}

	switch query.Repository.Issue.State {
	case githubv4.IssueStateOpen:
		return RemoteOpen, nil
	case githubv4.IssueStateClosed:
		return RemoteClosed, nil
	default:
		return "", fmt.Errorf("unexpected state %q for %s", query.Repository.Issue.State, ref)
	}
}
