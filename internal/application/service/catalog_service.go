package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"gitpulse-core/internal/application/dto"
	"gitpulse-core/internal/domain/account"
	"gitpulse-core/internal/domain/events"
	"gitpulse-core/internal/domain/repo"
)

// CatalogService serves the persisted repository catalog
type CatalogService struct {
	repoRepo   repo.RepositoryRepo
	enricher   *DetailEnricher
	dispatcher *events.Dispatcher
}

// NewCatalogService creates a new catalog service
func NewCatalogService(repoRepo repo.RepositoryRepo, enricher *DetailEnricher, dispatcher *events.Dispatcher) *CatalogService {
	return &CatalogService{
		repoRepo:   repoRepo,
		enricher:   enricher,
		dispatcher: dispatcher,
	}
}

// GetCatalogPage retrieves one page of the account's repositories in stored
// order. Rows flagged for inclusion are enriched with live detail counts;
// all enrichments run concurrently and the page waits for every one to
// settle.
func (s *CatalogService) GetCatalogPage(ctx context.Context, accountID, accessToken string, page, limit int32) (*dto.CatalogResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	aid, err := account.ParseAccountID(accountID)
	if err != nil {
		return nil, fmt.Errorf("invalid account ID: %w", err)
	}

	offset := (page - 1) * limit

	rows, err := s.repoRepo.FindPageByAccountID(ctx, aid, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch repositories: %w", err)
	}

	total, err := s.repoRepo.CountByAccountID(ctx, aid)
	if err != nil {
		return nil, fmt.Errorf("failed to count repositories: %w", err)
	}

	responses := make([]*dto.RepositoryResponse, len(rows))
	var wg sync.WaitGroup

	for i, row := range rows {
		responses[i] = toRepositoryDTO(row)

		if !row.Repository.Included() {
			continue
		}

		wg.Add(1)
		go func(resp *dto.RepositoryResponse, r *repo.Repository) {
			defer wg.Done()
			owner, name := splitFullName(r)
			counts := s.enricher.Enrich(ctx, accessToken, owner, name)
			resp.Counts = &dto.DetailCountsResponse{
				Commits:      counts.Commits,
				Issues:       counts.Issues,
				PullRequests: counts.PullRequests,
			}
		}(responses[i], row.Repository)
	}
	wg.Wait()

	totalPages := (total + int64(limit) - 1) / int64(limit)

	return &dto.CatalogResponse{
		Repositories:      responses,
		TotalRepositories: total,
		CurrentPage:       page,
		TotalPages:        totalPages,
	}, nil
}

// SetInclusion toggles a repository's inclusion flag. Turning the flag on
// runs the enricher once synchronously and persists the fresh counts;
// turning it off leaves previously stored counts untouched.
func (s *CatalogService) SetInclusion(ctx context.Context, accountID, repositoryID, accessToken string, include bool) (*dto.RepositoryResponse, error) {
	aid, err := account.ParseAccountID(accountID)
	if err != nil {
		return nil, fmt.Errorf("invalid account ID: %w", err)
	}

	rid, err := repo.ParseRepositoryID(repositoryID)
	if err != nil {
		return nil, fmt.Errorf("invalid repository ID: %w", err)
	}

	repository, err := s.repoRepo.FindByID(ctx, rid)
	if err != nil {
		return nil, err
	}

	if !repository.BelongsToAccount(aid) {
		return nil, repo.ErrUnauthorizedAccess(accountID, repositoryID)
	}

	repository.SetInclusion(include)

	if include {
		owner, name := splitFullName(repository)
		repository.ApplyCounts(s.enricher.Enrich(ctx, accessToken, owner, name))
	}

	if err := s.repoRepo.UpdateInclusion(ctx, repository); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(ctx, repo.NewInclusionChangedEvent(repositoryID, include))

	response := toRepositoryDTO(&repo.CatalogRow{Repository: repository})
	if repository.Included() {
		counts := repository.Counts()
		response.Counts = &dto.DetailCountsResponse{
			Commits:      counts.Commits,
			Issues:       counts.Issues,
			PullRequests: counts.PullRequests,
		}
	}

	return response, nil
}

// splitFullName derives the remote owner and repository name. The full
// name is "owner/name"; a repository without a slash falls back to its
// bare name with an empty owner.
func splitFullName(r *repo.Repository) (string, string) {
	parts := strings.SplitN(r.FullName(), "/", 2)
	if len(parts) != 2 {
		return "", r.Name().String()
	}
	return parts[0], parts[1]
}

// toRepositoryDTO converts a catalog row to DTO. Enrichment counts are not
// populated here; callers attach them for included rows.
func toRepositoryDTO(row *repo.CatalogRow) *dto.RepositoryResponse {
	r := row.Repository
	m := r.Metadata()

	var owner *dto.OwnerResponse
	if row.OwnerName != nil {
		owner = &dto.OwnerResponse{Name: *row.OwnerName}
		if row.OwnerURL != nil {
			owner.URL = *row.OwnerURL
		}
	}

	topics := m.Topics
	if topics == nil {
		topics = []string{}
	}

	return &dto.RepositoryResponse{
		ID:            r.ID().String(),
		GitHubID:      r.GitHubID().Int64(),
		Name:          r.Name().String(),
		FullName:      r.FullName(),
		Description:   m.Description,
		URL:           r.URL().String(),
		HTMLURL:       m.HTMLURL,
		Private:       m.Private,
		Fork:          m.Fork,
		Archived:      m.Archived,
		Disabled:      m.Disabled,
		Language:      m.Language,
		Visibility:    m.Visibility,
		License:       m.License,
		DefaultBranch: m.DefaultBranch,
		Topics:        topics,
		Stars:         m.StargazersCount,
		Watchers:      m.WatchersCount,
		Forks:         m.ForksCount,
		OpenIssues:    m.OpenIssuesCount,
		Homepage:      m.Homepage,
		Owner:         owner,
		Included:      r.Included(),
		CreatedAt:     r.CreatedAt().Format(time.RFC3339),
	}
}
