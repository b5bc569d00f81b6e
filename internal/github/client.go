package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"gitpulse-core/internal/config"
)

// Client handles GitHub API interactions
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new GitHub API client
func NewClient(cfg *config.GitHubConfig) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL: cfg.BaseURL,
	}
}

// Organization represents a GitHub organization from the API
type Organization struct {
	ID          int64   `json:"id"`
	Login       string  `json:"login"`
	URL         string  `json:"url"`
	ReposURL    string  `json:"repos_url"`
	AvatarURL   string  `json:"avatar_url"`
	Description *string `json:"description"`
}

// Owner represents the owner object embedded in a repository record
type Owner struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Type  string `json:"type"`
}

// License represents the license object embedded in a repository record
type License struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// Repository represents a GitHub repository from the API
type Repository struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	FullName        string     `json:"full_name"`
	Owner           Owner      `json:"owner"`
	Description     *string    `json:"description"`
	URL             string     `json:"url"`
	HTMLURL         string     `json:"html_url"`
	Private         bool       `json:"private"`
	Fork            bool       `json:"fork"`
	Archived        bool       `json:"archived"`
	Disabled        bool       `json:"disabled"`
	Language        *string    `json:"language"`
	Visibility      string     `json:"visibility"`
	License         *License   `json:"license"`
	DefaultBranch   string     `json:"default_branch"`
	Topics          []string   `json:"topics"`
	StargazersCount int32      `json:"stargazers_count"`
	WatchersCount   int32      `json:"watchers_count"`
	ForksCount      int32      `json:"forks_count"`
	OpenIssuesCount int32      `json:"open_issues_count"`
	Size            int32      `json:"size"`
	Homepage        *string    `json:"homepage"`
	PushedAt        *time.Time `json:"pushed_at"`
	UpdatedAt       *time.Time `json:"updated_at"`
}

// Commit represents a single commit entry from the commits listing
type Commit struct {
	SHA string `json:"sha"`
}

// Issue represents a single issue entry from the issues listing
type Issue struct {
	ID     int64  `json:"id"`
	Number int    `json:"number"`
	State  string `json:"state"`
}

// PullRequest represents a single pull request entry from the pulls listing
type PullRequest struct {
	ID     int64  `json:"id"`
	Number int    `json:"number"`
	State  string `json:"state"`
}

// GetUserOrganizations fetches the organizations visible to the access token
func (c *Client) GetUserOrganizations(ctx context.Context, accessToken string) ([]Organization, error) {
	var orgs []Organization
	if err := c.get(ctx, accessToken, "/user/orgs?per_page=100", &orgs); err != nil {
		return nil, err
	}
	return orgs, nil
}

// GetOrganizationRepositories fetches the repositories of an organization
func (c *Client) GetOrganizationRepositories(ctx context.Context, accessToken, org string) ([]Repository, error) {
	path := fmt.Sprintf("/orgs/%s/repos?per_page=100", url.PathEscape(org))

	var repos []Repository
	if err := c.get(ctx, accessToken, path, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

// GetRepositoryCommits fetches the latest commits of a repository
func (c *Client) GetRepositoryCommits(ctx context.Context, accessToken, owner, repo string) ([]Commit, error) {
	path := fmt.Sprintf("/repos/%s/%s/commits", url.PathEscape(owner), url.PathEscape(repo))

	var commits []Commit
	if err := c.get(ctx, accessToken, path, &commits); err != nil {
		return nil, err
	}
	return commits, nil
}

// GetRepositoryIssues fetches the open issues of a repository
func (c *Client) GetRepositoryIssues(ctx context.Context, accessToken, owner, repo string) ([]Issue, error) {
	path := fmt.Sprintf("/repos/%s/%s/issues", url.PathEscape(owner), url.PathEscape(repo))

	var issues []Issue
	if err := c.get(ctx, accessToken, path, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

// GetRepositoryPullRequests fetches the open pull requests of a repository
func (c *Client) GetRepositoryPullRequests(ctx context.Context, accessToken, owner, repo string) ([]PullRequest, error) {
	path := fmt.Sprintf("/repos/%s/%s/pulls", url.PathEscape(owner), url.PathEscape(repo))

	var pulls []PullRequest
	if err := c.get(ctx, accessToken, path, &pulls); err != nil {
		return nil, err
	}
	return pulls, nil
}

// get issues an authenticated GET request and decodes the JSON response into out
func (c *Client) get(ctx context.Context, accessToken, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", accessToken))
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call github API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("github API returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode github response: %w", err)
	}

	return nil
}
