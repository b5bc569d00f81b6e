package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"gitpulse-core/internal/application/dto"
	"gitpulse-core/internal/domain/account"
	"gitpulse-core/internal/domain/events"
	"gitpulse-core/internal/domain/org"
	"gitpulse-core/internal/domain/repo"
)

// SyncService handles the organization/repository synchronization use cases
type SyncService struct {
	orgRepo    org.Repository
	repoRepo   repo.RepositoryRepo
	github     repo.GitHubService
	dispatcher *events.Dispatcher
}

// NewSyncService creates a new sync service
func NewSyncService(
	orgRepo org.Repository,
	repoRepo repo.RepositoryRepo,
	github repo.GitHubService,
	dispatcher *events.Dispatcher,
) *SyncService {
	return &SyncService{
		orgRepo:    orgRepo,
		repoRepo:   repoRepo,
		github:     github,
		dispatcher: dispatcher,
	}
}

// ListOrganizations fetches the organizations visible to the credential and
// persists them before returning (listing keeps local state authoritative)
func (s *SyncService) ListOrganizations(ctx context.Context, accountID, accessToken string) (*dto.OrganizationListResponse, error) {
	aid, err := account.ParseAccountID(accountID)
	if err != nil {
		return nil, fmt.Errorf("invalid account ID: %w", err)
	}

	_, persisted, err := s.syncOrganizations(ctx, aid, accessToken)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.OrganizationResponse, len(persisted))
	for i, o := range persisted {
		responses[i] = toOrganizationDTO(o)
	}

	return &dto.OrganizationListResponse{Organizations: responses}, nil
}

// ListOrganizationRepositories is a read-only passthrough of an
// organization's remote repositories
func (s *SyncService) ListOrganizationRepositories(ctx context.Context, accessToken, orgName string) ([]*dto.GitHubRepositoryResponse, error) {
	remoteRepos, err := s.github.FetchOrganizationRepositories(ctx, accessToken, orgName)
	if err != nil {
		return nil, repo.ErrRemoteUnavailable(fmt.Sprintf("list repositories of %s", orgName), err)
	}

	responses := make([]*dto.GitHubRepositoryResponse, len(remoteRepos))
	for i, ghRepo := range remoteRepos {
		responses[i] = &dto.GitHubRepositoryResponse{
			ID:            ghRepo.ID,
			Name:          ghRepo.Name,
			FullName:      ghRepo.FullName,
			OwnerLogin:    ghRepo.Owner.Login,
			Description:   ghRepo.Description,
			URL:           ghRepo.URL,
			HTMLURL:       ghRepo.HTMLURL,
			Private:       ghRepo.Private,
			Fork:          ghRepo.Fork,
			Language:      ghRepo.Language,
			Visibility:    ghRepo.Visibility,
			DefaultBranch: ghRepo.DefaultBranch,
			Topics:        ghRepo.Topics,
			Stars:         ghRepo.StargazersCount,
			Forks:         ghRepo.ForksCount,
			OpenIssues:    ghRepo.OpenIssuesCount,
		}
	}

	return responses, nil
}

// SyncAll synchronizes the credential's organizations and their
// repositories into the local store. Fetch failures for individual
// organizations and unresolvable owner links are reported as anomalies,
// never as a pass failure; only the initial organization listing and the
// organization upserts are fatal.
func (s *SyncService) SyncAll(ctx context.Context, accountID, accessToken string) (*dto.SyncResponse, error) {
	aid, err := account.ParseAccountID(accountID)
	if err != nil {
		return nil, fmt.Errorf("invalid account ID: %w", err)
	}

	remoteOrgs, persistedOrgs, err := s.syncOrganizations(ctx, aid, accessToken)
	if err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(ctx, org.NewOrganizationsSyncedEvent(accountID, len(persistedOrgs)))

	// Owner lookup is built once per pass and passed along explicitly;
	// concurrent passes never share it.
	ownerIndex := make(map[int64]org.OrganizationID, len(persistedOrgs))
	for _, o := range persistedOrgs {
		ownerIndex[o.GitHubID().Int64()] = o.ID()
	}

	results := s.fetchAllRepositories(ctx, accessToken, remoteOrgs)

	var anomalies []*dto.SyncAnomalyResponse
	saved := 0

	for _, res := range results {
		if res.err != nil {
			anomalies = append(anomalies, &dto.SyncAnomalyResponse{
				Type:    dto.AnomalyOrgFetchFailed,
				Subject: res.orgLogin,
				Detail:  res.err.Error(),
			})
			continue
		}

		for _, ghRepo := range res.repos {
			entity, anomaly := s.buildRepository(aid, ownerIndex, ghRepo)
			if anomaly != nil {
				anomalies = append(anomalies, anomaly)
			}
			if entity == nil {
				continue
			}

			if _, err := s.repoRepo.Upsert(ctx, entity); err != nil {
				anomalies = append(anomalies, &dto.SyncAnomalyResponse{
					Type:    dto.AnomalyRepoSaveFailed,
					Subject: ghRepo.FullName,
					Detail:  err.Error(),
				})
				continue
			}
			saved++
		}
	}

	_ = s.dispatcher.Dispatch(ctx, repo.NewRepositoriesSyncedEvent(accountID, saved, len(anomalies)))

	return &dto.SyncResponse{
		Message:       "organizations and repositories synchronized",
		Organizations: len(persistedOrgs),
		Repositories:  saved,
		Anomalies:     anomalies,
	}, nil
}

// syncOrganizations fetches the credential's organizations and upserts them
// concurrently. The persisted slice is index-aligned with the remote one.
func (s *SyncService) syncOrganizations(ctx context.Context, aid account.AccountID, accessToken string) ([]*repo.GitHubOrganization, []*org.Organization, error) {
	remoteOrgs, err := s.github.FetchUserOrganizations(ctx, accessToken)
	if err != nil {
		return nil, nil, repo.ErrRemoteUnavailable("list user organizations", err)
	}

	// Upserts target disjoint (github_id, account_id) keys, so they can run
	// concurrently; any failure fails the pass.
	persisted := make([]*org.Organization, len(remoteOrgs))
	g, gctx := errgroup.WithContext(ctx)

	for i, remote := range remoteOrgs {
		g.Go(func() error {
			entity, err := org.NewOrganization(aid, remote.ID, remote.Login, remote.URL)
			if err != nil {
				return fmt.Errorf("invalid organization %s: %w", remote.Login, err)
			}

			savedOrg, err := s.orgRepo.Upsert(gctx, entity)
			if err != nil {
				return fmt.Errorf("failed to save organization %s: %w", remote.Login, err)
			}

			persisted[i] = savedOrg
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return remoteOrgs, persisted, nil
}

// repoFetchResult is one settled branch of the per-organization fan-out
type repoFetchResult struct {
	orgLogin string
	repos    []*repo.GitHubRepository
	err      error
}

// fetchAllRepositories fetches every organization's repositories
// concurrently and waits for all branches to settle. Each slot carries
// either a page or that branch's error; one failing branch never aborts
// its siblings.
func (s *SyncService) fetchAllRepositories(ctx context.Context, accessToken string, remoteOrgs []*repo.GitHubOrganization) []repoFetchResult {
	results := make([]repoFetchResult, len(remoteOrgs))
	var wg sync.WaitGroup

	for i, remote := range remoteOrgs {
		wg.Add(1)
		go func(idx int, login string) {
			defer wg.Done()
			repos, err := s.github.FetchOrganizationRepositories(ctx, accessToken, login)
			results[idx] = repoFetchResult{
				orgLogin: login,
				repos:    repos,
				err:      err,
			}
		}(i, remote.Login)
	}

	wg.Wait()
	return results
}

// buildRepository converts a remote record into a domain entity, resolving
// the owner link against the pass-local index. An unresolved owner yields a
// nil link plus an anomaly, not an error.
func (s *SyncService) buildRepository(aid account.AccountID, ownerIndex map[int64]org.OrganizationID, ghRepo *repo.GitHubRepository) (*repo.Repository, *dto.SyncAnomalyResponse) {
	entity, err := repo.NewRepository(aid, ghRepo.ID, ghRepo.Name, ghRepo.FullName, ghRepo.URL)
	if err != nil {
		return nil, &dto.SyncAnomalyResponse{
			Type:    dto.AnomalyRepoSaveFailed,
			Subject: ghRepo.FullName,
			Detail:  err.Error(),
		}
	}

	entity.UpdateMetadata(metadataFromRemote(ghRepo))

	if ownerID, ok := ownerIndex[ghRepo.Owner.ID]; ok {
		entity.LinkOwner(&ownerID)
		return entity, nil
	}

	entity.LinkOwner(nil)
	return entity, &dto.SyncAnomalyResponse{
		Type:    dto.AnomalyOwnerUnresolved,
		Subject: ghRepo.FullName,
		Detail:  fmt.Sprintf("no synchronized organization matches owner ID %d", ghRepo.Owner.ID),
	}
}

// metadataFromRemote maps the remote descriptive field set onto the domain
func metadataFromRemote(ghRepo *repo.GitHubRepository) repo.Metadata {
	var defaultBranch *string
	if ghRepo.DefaultBranch != "" {
		b := ghRepo.DefaultBranch
		defaultBranch = &b
	}

	return repo.Metadata{
		Description:     ghRepo.Description,
		HTMLURL:         stringPtr(ghRepo.HTMLURL),
		Private:         ghRepo.Private,
		Fork:            ghRepo.Fork,
		Archived:        ghRepo.Archived,
		Disabled:        ghRepo.Disabled,
		Language:        ghRepo.Language,
		Visibility:      ghRepo.Visibility,
		License:         ghRepo.License,
		DefaultBranch:   defaultBranch,
		Topics:          ghRepo.Topics,
		StargazersCount: ghRepo.StargazersCount,
		WatchersCount:   ghRepo.WatchersCount,
		ForksCount:      ghRepo.ForksCount,
		OpenIssuesCount: ghRepo.OpenIssuesCount,
		Size:            ghRepo.Size,
		Homepage:        ghRepo.Homepage,
		PushedAt:        ghRepo.PushedAt,
		RemoteUpdatedAt: ghRepo.UpdatedAt,
	}
}

// toOrganizationDTO converts a domain organization to DTO
func toOrganizationDTO(o *org.Organization) *dto.OrganizationResponse {
	return &dto.OrganizationResponse{
		ID:          o.ID().String(),
		GitHubID:    o.GitHubID().Int64(),
		Name:        o.Name().String(),
		URL:         o.URL().String(),
		ConnectedAt: o.ConnectedAt().Format(time.RFC3339),
	}
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
