package github

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/go-github/v73/github"
	"golang.org/x/oauth2"

	v1 "github.com/flanksource/workflow-db/api/v1"
)

const pageSize = 100

// Client wraps the GitHub client for a single repository's Actions data.
type Client struct {
	*github.Client
	owner string
	repo  string
	pacer *Pacer
}

func NewClient(ctx context.Context, config v1.GitHubSource) (*Client, error) {
	token, err := config.PersonalAccessToken.Resolve()
	if err != nil {
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	client := github.NewClient(tc)

	return &Client{
		Client: client,
		owner:  config.Owner,
		repo:   config.Repository,
		pacer:  NewPacer(config.Quota()),
	}, nil
}

// WithBaseURL points the client at a different API endpoint. Used by tests
// to target an httptest server.
func (c *Client) WithBaseURL(base string) (*Client, error) {
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", base, err)
	}
	c.Client.BaseURL = u
	return c, nil
}

func (c *Client) Repository() string {
	return fmt.Sprintf("%s/%s", c.owner, c.repo)
}
