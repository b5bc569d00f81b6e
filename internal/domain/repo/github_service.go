package repo

import (
	"context"
	"time"
)

// GitHubOrganization represents an organization fetched from GitHub API
type GitHubOrganization struct {
	ID          int64
	Login       string
	URL         string
	Description *string
}

// GitHubOwner represents the owner identity embedded in a remote repository record
type GitHubOwner struct {
	ID    int64
	Login string
}

// GitHubRepository represents a repository fetched from GitHub API
type GitHubRepository struct {
	ID              int64
	Name            string
	FullName        string
	Owner           GitHubOwner
	Description     *string
	URL             string
	HTMLURL         string
	Private         bool
	Fork            bool
	Archived        bool
	Disabled        bool
	Language        *string
	Visibility      string
	License         *string
	DefaultBranch   string
	Topics          []string
	StargazersCount int32
	WatchersCount   int32
	ForksCount      int32
	OpenIssuesCount int32
	Size            int32
	Homepage        *string
	PushedAt        *time.Time
	UpdatedAt       *time.Time
}

// GitHubService is a domain service interface for interacting with GitHub
// Implementation will be in infrastructure layer
type GitHubService interface {
	// FetchUserOrganizations fetches the organizations visible to the credential
	FetchUserOrganizations(ctx context.Context, accessToken string) ([]*GitHubOrganization, error)

	// FetchOrganizationRepositories fetches an organization's repositories
	FetchOrganizationRepositories(ctx context.Context, accessToken, orgName string) ([]*GitHubRepository, error)

	// CountRepositoryCommits returns the length of the repository's commit listing
	CountRepositoryCommits(ctx context.Context, accessToken, owner, name string) (int, error)

	// CountRepositoryIssues returns the length of the repository's issue listing
	CountRepositoryIssues(ctx context.Context, accessToken, owner, name string) (int, error)

	// CountRepositoryPullRequests returns the length of the repository's pull request listing
	CountRepositoryPullRequests(ctx context.Context, accessToken, owner, name string) (int, error)
}
