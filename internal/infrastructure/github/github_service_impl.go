package github

import (
	"context"
	"fmt"

	"gitpulse-core/internal/domain/repo"
	"gitpulse-core/internal/github"
)

// GitHubServiceImpl implements the domain repo.GitHubService interface
type GitHubServiceImpl struct {
	client *github.Client
}

// NewGitHubService creates a new GitHub service implementation
func NewGitHubService(client *github.Client) repo.GitHubService {
	return &GitHubServiceImpl{client: client}
}

// FetchUserOrganizations fetches the organizations visible to the credential
func (g *GitHubServiceImpl) FetchUserOrganizations(ctx context.Context, accessToken string) ([]*repo.GitHubOrganization, error) {
	orgs, err := g.client.GetUserOrganizations(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch organizations from GitHub: %w", err)
	}

	domainOrgs := make([]*repo.GitHubOrganization, len(orgs))
	for i, o := range orgs {
		domainOrgs[i] = &repo.GitHubOrganization{
			ID:          o.ID,
			Login:       o.Login,
			URL:         o.URL,
			Description: o.Description,
		}
	}

	return domainOrgs, nil
}

// FetchOrganizationRepositories fetches an organization's repositories
func (g *GitHubServiceImpl) FetchOrganizationRepositories(ctx context.Context, accessToken, orgName string) ([]*repo.GitHubRepository, error) {
	githubRepos, err := g.client.GetOrganizationRepositories(ctx, accessToken, orgName)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch repositories for organization %s: %w", orgName, err)
	}

	domainRepos := make([]*repo.GitHubRepository, len(githubRepos))
	for i, ghRepo := range githubRepos {
		var license *string
		if ghRepo.License != nil {
			name := ghRepo.License.Name
			license = &name
		}

		domainRepos[i] = &repo.GitHubRepository{
			ID:       ghRepo.ID,
			Name:     ghRepo.Name,
			FullName: ghRepo.FullName,
			Owner: repo.GitHubOwner{
				ID:    ghRepo.Owner.ID,
				Login: ghRepo.Owner.Login,
			},
			Description:     ghRepo.Description,
			URL:             ghRepo.URL,
			HTMLURL:         ghRepo.HTMLURL,
			Private:         ghRepo.Private,
			Fork:            ghRepo.Fork,
			Archived:        ghRepo.Archived,
			Disabled:        ghRepo.Disabled,
			Language:        ghRepo.Language,
			Visibility:      ghRepo.Visibility,
			License:         license,
			DefaultBranch:   ghRepo.DefaultBranch,
			Topics:          ghRepo.Topics,
			StargazersCount: ghRepo.StargazersCount,
			WatchersCount:   ghRepo.WatchersCount,
			ForksCount:      ghRepo.ForksCount,
			OpenIssuesCount: ghRepo.OpenIssuesCount,
			Size:            ghRepo.Size,
			Homepage:        ghRepo.Homepage,
			PushedAt:        ghRepo.PushedAt,
			UpdatedAt:       ghRepo.UpdatedAt,
		}
	}

	return domainRepos, nil
}

// CountRepositoryCommits returns the length of the repository's commit listing
func (g *GitHubServiceImpl) CountRepositoryCommits(ctx context.Context, accessToken, owner, name string) (int, error) {
	commits, err := g.client.GetRepositoryCommits(ctx, accessToken, owner, name)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch commits for %s/%s: %w", owner, name, err)
	}
	return len(commits), nil
}

// CountRepositoryIssues returns the length of the repository's issue listing
func (g *GitHubServiceImpl) CountRepositoryIssues(ctx context.Context, accessToken, owner, name string) (int, error) {
	issues, err := g.client.GetRepositoryIssues(ctx, accessToken, owner, name)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch issues for %s/%s: %w", owner, name, err)
	}
	return len(issues), nil
}

// CountRepositoryPullRequests returns the length of the repository's pull request listing
func (g *GitHubServiceImpl) CountRepositoryPullRequests(ctx context.Context, accessToken, owner, name string) (int, error) {
	pulls, err := g.client.GetRepositoryPullRequests(ctx, accessToken, owner, name)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch pull requests for %s/%s: %w", owner, name, err)
	}
	return len(pulls), nil
}
