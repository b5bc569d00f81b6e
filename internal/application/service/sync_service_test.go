package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gitpulse-core/internal/application/dto"
	"gitpulse-core/internal/application/service"
	"gitpulse-core/internal/domain/account"
	"gitpulse-core/internal/domain/events"
	"gitpulse-core/internal/domain/org"
	"gitpulse-core/internal/domain/repo"
)

// Mock implementations

type mockOrgRepo struct {
	mu          sync.Mutex
	orgs        map[int64]*org.Organization
	shouldError bool
}

func newMockOrgRepo() *mockOrgRepo {
	return &mockOrgRepo{orgs: make(map[int64]*org.Organization)}
}

func (m *mockOrgRepo) Upsert(ctx context.Context, organization *org.Organization) (*org.Organization, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.shouldError {
		return nil, errors.New("organization error")
	}
	existing, ok := m.orgs[organization.GitHubID().Int64()]
	if ok {
		if err := existing.Refresh(organization.Name().String(), organization.URL().String()); err != nil {
			return nil, err
		}
		return existing, nil
	}
	m.orgs[organization.GitHubID().Int64()] = organization
	return organization, nil
}

func (m *mockOrgRepo) FindByID(ctx context.Context, id org.OrganizationID) (*org.Organization, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orgs {
		if o.ID().Equals(id) {
			return o, nil
		}
	}
	return nil, org.ErrOrganizationNotFound(id.String())
}

func (m *mockOrgRepo) FindByAccountID(ctx context.Context, accountID account.AccountID) ([]*org.Organization, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*org.Organization
	for _, o := range m.orgs {
		if o.BelongsToAccount(accountID) {
			result = append(result, o)
		}
	}
	return result, nil
}

type mockRepositoryRepo struct {
	repos       map[int64]*repo.Repository
	order       []int64
	shouldError bool
}

func newMockRepositoryRepo() *mockRepositoryRepo {
	return &mockRepositoryRepo{repos: make(map[int64]*repo.Repository)}
}

func (m *mockRepositoryRepo) Upsert(ctx context.Context, repository *repo.Repository) (*repo.Repository, error) {
	if m.shouldError {
		return nil, errors.New("repository error")
	}

	key := repository.GitHubID().Int64()
	existing, ok := m.repos[key]
	if !ok {
		m.repos[key] = repository
		m.order = append(m.order, key)
		return repository, nil
	}

	// The conflicting row keeps its local ID, inclusion flag and counts
	merged, err := repo.Reconstitute(
		existing.ID().String(),
		repository.AccountID(),
		key,
		repository.Name().String(),
		repository.FullName(),
		repository.URL().String(),
		repository.OrgID(),
		repository.Metadata(),
		existing.Included(),
		existing.Counts(),
		existing.CreatedAt(),
		time.Now(),
	)
	if err != nil {
		return nil, err
	}
	m.repos[key] = merged
	return merged, nil
}

func (m *mockRepositoryRepo) FindByID(ctx context.Context, id repo.RepositoryID) (*repo.Repository, error) {
	if m.shouldError {
		return nil, errors.New("repository error")
	}
	for _, repository := range m.repos {
		if repository.ID().Equals(id) {
			return repository, nil
		}
	}
	return nil, repo.ErrRepositoryNotFound(id.String())
}

func (m *mockRepositoryRepo) FindPageByAccountID(ctx context.Context, accountID account.AccountID, limit, offset int32) ([]*repo.CatalogRow, error) {
	if m.shouldError {
		return nil, errors.New("repository error")
	}
	var owned []*repo.CatalogRow
	for _, key := range m.order {
		repository := m.repos[key]
		if repository.BelongsToAccount(accountID) {
			owned = append(owned, &repo.CatalogRow{Repository: repository})
		}
	}
	start := int(offset)
	if start > len(owned) {
		start = len(owned)
	}
	end := start + int(limit)
	if end > len(owned) {
		end = len(owned)
	}
	return owned[start:end], nil
}

func (m *mockRepositoryRepo) CountByAccountID(ctx context.Context, accountID account.AccountID) (int64, error) {
	if m.shouldError {
		return 0, errors.New("repository error")
	}
	count := int64(0)
	for _, repository := range m.repos {
		if repository.BelongsToAccount(accountID) {
			count++
		}
	}
	return count, nil
}

func (m *mockRepositoryRepo) UpdateInclusion(ctx context.Context, repository *repo.Repository) error {
	if m.shouldError {
		return errors.New("repository error")
	}
	key := repository.GitHubID().Int64()
	if _, ok := m.repos[key]; !ok {
		return repo.ErrRepositoryNotFound(repository.ID().String())
	}
	m.repos[key] = repository
	return nil
}

type mockGitHubService struct {
	mu           sync.Mutex
	orgs         []*repo.GitHubOrganization
	reposByOrg   map[string][]*repo.GitHubRepository
	failOrgList  bool
	failReposFor map[string]bool
	commits      int
	issues       int
	pulls        int
	failCommits  bool
	failIssues   bool
	failPulls    bool
	countCalls   int
}

func (m *mockGitHubService) FetchUserOrganizations(ctx context.Context, accessToken string) ([]*repo.GitHubOrganization, error) {
	if m.failOrgList {
		return nil, errors.New("github error")
	}
	return m.orgs, nil
}

func (m *mockGitHubService) FetchOrganizationRepositories(ctx context.Context, accessToken, orgName string) ([]*repo.GitHubRepository, error) {
	if m.failReposFor[orgName] {
		return nil, errors.New("github error")
	}
	return m.reposByOrg[orgName], nil
}

func (m *mockGitHubService) CountRepositoryCommits(ctx context.Context, accessToken, owner, name string) (int, error) {
	m.mu.Lock()
	m.countCalls++
	m.mu.Unlock()
	if m.failCommits {
		return 0, errors.New("github error")
	}
	return m.commits, nil
}

func (m *mockGitHubService) CountRepositoryIssues(ctx context.Context, accessToken, owner, name string) (int, error) {
	m.mu.Lock()
	m.countCalls++
	m.mu.Unlock()
	if m.failIssues {
		return 0, errors.New("github error")
	}
	return m.issues, nil
}

func (m *mockGitHubService) CountRepositoryPullRequests(ctx context.Context, accessToken, owner, name string) (int, error) {
	m.mu.Lock()
	m.countCalls++
	m.mu.Unlock()
	if m.failPulls {
		return 0, errors.New("github error")
	}
	return m.pulls, nil
}

func (m *mockGitHubService) detailCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.countCalls
}

func remoteRepo(id int64, ownerID int64, owner, name string) *repo.GitHubRepository {
	return &repo.GitHubRepository{
		ID:       id,
		Name:     name,
		FullName: owner + "/" + name,
		Owner:    repo.GitHubOwner{ID: ownerID, Login: owner},
		URL:      "https://api.github.com/repos/" + owner + "/" + name,
		HTMLURL:  "https://github.com/" + owner + "/" + name,
	}
}

func newGitHubFixture() *mockGitHubService {
	return &mockGitHubService{
		orgs: []*repo.GitHubOrganization{
			{ID: 1, Login: "acme", URL: "https://api.github.com/orgs/acme"},
			{ID: 2, Login: "globex", URL: "https://api.github.com/orgs/globex"},
		},
		reposByOrg: map[string][]*repo.GitHubRepository{
			"acme": {
				remoteRepo(101, 1, "acme", "widget"),
				remoteRepo(102, 1, "acme", "gadget"),
			},
			"globex": {
				remoteRepo(201, 2, "globex", "portal"),
			},
		},
		failReposFor: make(map[string]bool),
	}
}

func TestSyncService_SyncAll(t *testing.T) {
	orgRepo := newMockOrgRepo()
	repoRepo := newMockRepositoryRepo()
	githubSvc := newGitHubFixture()
	svc := service.NewSyncService(orgRepo, repoRepo, githubSvc, events.NewDispatcher())

	accountID := account.NewAccountID()

	resp, err := svc.SyncAll(context.Background(), accountID.String(), "token")
	if err != nil {
		t.Fatalf("SyncAll() error = %v", err)
	}

	if resp.Organizations != 2 {
		t.Errorf("Organizations = %v, want 2", resp.Organizations)
	}
	if resp.Repositories != 3 {
		t.Errorf("Repositories = %v, want 3", resp.Repositories)
	}
	if len(resp.Anomalies) != 0 {
		t.Errorf("len(Anomalies) = %v, want 0", len(resp.Anomalies))
	}

	for _, repository := range repoRepo.repos {
		if repository.OrgID() == nil {
			t.Errorf("repository %s has no owner link", repository.FullName())
		}
	}
}

func TestSyncService_SyncAllKeepsLocalState(t *testing.T) {
	orgRepo := newMockOrgRepo()
	repoRepo := newMockRepositoryRepo()
	githubSvc := newGitHubFixture()
	svc := service.NewSyncService(orgRepo, repoRepo, githubSvc, events.NewDispatcher())

	accountID := account.NewAccountID()

	if _, err := svc.SyncAll(context.Background(), accountID.String(), "token"); err != nil {
		t.Fatalf("SyncAll() error = %v", err)
	}

	firstOrgID := orgRepo.orgs[1].ID()
	firstRepoID := repoRepo.repos[101].ID()

	// Inclusion and counts toggled between passes
	included := repoRepo.repos[101]
	included.SetInclusion(true)
	included.ApplyCounts(repo.DetailCounts{Commits: 7, Issues: 3, PullRequests: 1})
	if err := repoRepo.UpdateInclusion(context.Background(), included); err != nil {
		t.Fatalf("UpdateInclusion() error = %v", err)
	}

	if _, err := svc.SyncAll(context.Background(), accountID.String(), "token"); err != nil {
		t.Fatalf("SyncAll() error = %v", err)
	}

	if !orgRepo.orgs[1].ID().Equals(firstOrgID) {
		t.Error("organization should be updated, not duplicated")
	}
	if !repoRepo.repos[101].ID().Equals(firstRepoID) {
		t.Error("repository should be updated, not duplicated")
	}
	if !repoRepo.repos[101].Included() {
		t.Error("inclusion flag should survive a re-sync")
	}
	if got := repoRepo.repos[101].Counts(); got.Commits != 7 {
		t.Errorf("Counts().Commits = %v, want 7 after re-sync", got.Commits)
	}
}

func TestSyncService_SyncAllPartialFetchFailure(t *testing.T) {
	orgRepo := newMockOrgRepo()
	repoRepo := newMockRepositoryRepo()
	githubSvc := newGitHubFixture()
	githubSvc.failReposFor["globex"] = true
	svc := service.NewSyncService(orgRepo, repoRepo, githubSvc, events.NewDispatcher())

	accountID := account.NewAccountID()

	resp, err := svc.SyncAll(context.Background(), accountID.String(), "token")
	if err != nil {
		t.Fatalf("SyncAll() error = %v", err)
	}

	if resp.Repositories != 2 {
		t.Errorf("Repositories = %v, want 2", resp.Repositories)
	}
	if len(resp.Anomalies) != 1 {
		t.Fatalf("len(Anomalies) = %v, want 1", len(resp.Anomalies))
	}
	if resp.Anomalies[0].Type != dto.AnomalyOrgFetchFailed {
		t.Errorf("anomaly Type = %v, want %v", resp.Anomalies[0].Type, dto.AnomalyOrgFetchFailed)
	}
	if resp.Anomalies[0].Subject != "globex" {
		t.Errorf("anomaly Subject = %v, want globex", resp.Anomalies[0].Subject)
	}
}

func TestSyncService_SyncAllOwnerUnresolved(t *testing.T) {
	orgRepo := newMockOrgRepo()
	repoRepo := newMockRepositoryRepo()
	githubSvc := newGitHubFixture()
	githubSvc.reposByOrg["acme"] = append(githubSvc.reposByOrg["acme"],
		remoteRepo(103, 99, "stranger", "orphan"))
	svc := service.NewSyncService(orgRepo, repoRepo, githubSvc, events.NewDispatcher())

	accountID := account.NewAccountID()

	resp, err := svc.SyncAll(context.Background(), accountID.String(), "token")
	if err != nil {
		t.Fatalf("SyncAll() error = %v", err)
	}

	// The orphan is persisted anyway, flagged instead of dropped
	if resp.Repositories != 4 {
		t.Errorf("Repositories = %v, want 4", resp.Repositories)
	}
	if len(resp.Anomalies) != 1 {
		t.Fatalf("len(Anomalies) = %v, want 1", len(resp.Anomalies))
	}
	if resp.Anomalies[0].Type != dto.AnomalyOwnerUnresolved {
		t.Errorf("anomaly Type = %v, want %v", resp.Anomalies[0].Type, dto.AnomalyOwnerUnresolved)
	}

	orphan, ok := repoRepo.repos[103]
	if !ok {
		t.Fatal("orphan repository was not persisted")
	}
	if orphan.OrgID() != nil {
		t.Error("orphan repository should have a nil owner link")
	}
}

func TestSyncService_SyncAllRemoteFailure(t *testing.T) {
	orgRepo := newMockOrgRepo()
	repoRepo := newMockRepositoryRepo()
	githubSvc := newGitHubFixture()
	githubSvc.failOrgList = true
	svc := service.NewSyncService(orgRepo, repoRepo, githubSvc, events.NewDispatcher())

	accountID := account.NewAccountID()

	_, err := svc.SyncAll(context.Background(), accountID.String(), "token")
	if err == nil {
		t.Fatal("SyncAll() should fail when the organization listing fails")
	}

	var domainErr *repo.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "REMOTE_UNAVAILABLE" {
		t.Errorf("error = %v, want REMOTE_UNAVAILABLE domain error", err)
	}
}

func TestSyncService_ListOrganizations(t *testing.T) {
	orgRepo := newMockOrgRepo()
	repoRepo := newMockRepositoryRepo()
	githubSvc := newGitHubFixture()
	svc := service.NewSyncService(orgRepo, repoRepo, githubSvc, events.NewDispatcher())

	accountID := account.NewAccountID()

	resp, err := svc.ListOrganizations(context.Background(), accountID.String(), "token")
	if err != nil {
		t.Fatalf("ListOrganizations() error = %v", err)
	}

	if len(resp.Organizations) != 2 {
		t.Errorf("len(Organizations) = %v, want 2", len(resp.Organizations))
	}

	// Listing persists what it returns
	if len(orgRepo.orgs) != 2 {
		t.Errorf("persisted organizations = %v, want 2", len(orgRepo.orgs))
	}
}

func TestSyncService_ListOrganizationRepositories(t *testing.T) {
	orgRepo := newMockOrgRepo()
	repoRepo := newMockRepositoryRepo()
	githubSvc := newGitHubFixture()
	svc := service.NewSyncService(orgRepo, repoRepo, githubSvc, events.NewDispatcher())

	resp, err := svc.ListOrganizationRepositories(context.Background(), "token", "acme")
	if err != nil {
		t.Fatalf("ListOrganizationRepositories() error = %v", err)
	}

	if len(resp) != 2 {
		t.Errorf("len(resp) = %v, want 2", len(resp))
	}
	if resp[0].FullName != "acme/widget" {
		t.Errorf("FullName = %v, want acme/widget", resp[0].FullName)
	}

	// The passthrough never touches the store
	if len(repoRepo.repos) != 0 {
		t.Errorf("persisted repositories = %v, want 0", len(repoRepo.repos))
	}
}
