package github

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/skillstash/skillstash/pkg/logger"
)

// Issue is the slice of issue data the policy resolver and the authoring
// pipeline consume: raw body text for field extraction plus the label set.
type Issue struct {
	Owner  string   `json:"owner"`
	Repo   string   `json:"repo"`
	Number int      `json:"number"`
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Labels []string `json:"labels"`
}

var issueURLPattern = regexp.MustCompile(`^https://github\.com/([^/]+)/([^/]+)/issues/(\d+)/?$`)

// ParseIssueURL extracts owner, repo, and issue number from a GitHub issue
// URL of the form https://github.com/{owner}/{repo}/issues/{number}.
func ParseIssueURL(issueURL string) (owner, repo string, number int, err error) {
	matches := issueURLPattern.FindStringSubmatch(strings.TrimSpace(issueURL))
	if len(matches) != 4 {
		return "", "", 0, errors.Errorf("invalid GitHub issue URL format: %s", issueURL)
	}

	number, err = strconv.Atoi(matches[3])
	if err != nil {
		return "", "", 0, errors.Errorf("invalid issue number: %s", matches[3])
	}

	return matches[1], matches[2], number, nil
}

// FetchIssue retrieves the issue behind issueURL.
func (c *Client) FetchIssue(ctx context.Context, issueURL string) (*Issue, error) {
	log := logger.G(ctx)

	owner, repo, number, err := ParseIssueURL(issueURL)
	if err != nil {
		return nil, err
	}

	log.WithFields(map[string]interface{}{
		"owner":  owner,
		"repo":   repo,
		"number": number,
	}).Info("Fetching GitHub issue")

	issue, _, err := c.client.Issues.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch issue")
	}

	result := &Issue{
		Owner:  owner,
		Repo:   repo,
		Number: number,
		Title:  issue.GetTitle(),
		Body:   issue.GetBody(),
	}
	for _, label := range issue.Labels {
		result.Labels = append(result.Labels, label.GetName())
	}

	return result, nil
}
