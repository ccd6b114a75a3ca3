package github

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// RemoteState はGitHub上のIssueの状態
type RemoteState string

const (
	RemoteOpen   RemoteState = "open"
	RemoteClosed RemoteState = "closed"
)

// IssueRef はIssueの所在
type IssueRef struct {
	Owner  string
	Repo   string
	Number int
}

func (r IssueRef) String() string {
	return fmt.Sprintf("%s/%s#%d", r.Owner, r.Repo, r.Number)
}

// ParseIssueURL は https://github.com/<owner>/<repo>/issues/<n> を解析する
func ParseIssueURL(raw string) (IssueRef, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return IssueRef{}, fmt.Errorf("invalid GitHub URL %q: %w", raw, err)
	}
	if u.Host != "github.com" && u.Host != "www.github.com" {
		return IssueRef{}, fmt.Errorf("invalid GitHub URL %q: host is not github.com", raw)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) != 4 || parts[2] != "issues" || parts[0] == "" || parts[1] == "" {
		return IssueRef{}, fmt.Errorf("invalid GitHub URL %q: expected /<owner>/<repo>/issues/<number>", raw)
	}

	n, err := strconv.Atoi(parts[3])
	if err != nil || n <= 0 {
		return IssueRef{}, fmt.Errorf("invalid GitHub URL %q: bad issue number", raw)
	}

	return IssueRef{Owner: parts[0], Repo: parts[1], Number: n}, nil
}
