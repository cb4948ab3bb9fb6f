package github

import (
	"context"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"

	"github.com/skillstash/skillstash/pkg/logger"
)

// Client wraps the GitHub API client used for read-side issue access.
type Client struct {
	client *github.Client
}

// NewClient creates a GitHub client authenticated with token. An empty
// token still works for public repositories, with restricted rate limits.
func NewClient(ctx context.Context, token string) *Client {
	log := logger.G(ctx)

	if token == "" {
		log.Warn("No GitHub token provided - API rate limits will be restricted")
		return &Client{
			client: github.NewClient(nil),
		}
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)

	log.Debug("GitHub client initialized with authentication")
	return &Client{
		client: github.NewClient(tc),
	}
}
