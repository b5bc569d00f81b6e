package repo_test

import (
	"testing"

	"gitpulse-core/internal/domain/account"
	"gitpulse-core/internal/domain/org"
	"gitpulse-core/internal/domain/repo"
)

func TestNewRepository(t *testing.T) {
	accountID := account.NewAccountID()

	tests := []struct {
		name     string
		githubID int64
		repoName string
		fullName string
		url      string
		wantErr  bool
	}{
		{
			name:     "valid repository",
			githubID: 12345,
			repoName: "widget",
			fullName: "acme/widget",
			url:      "https://api.github.com/repos/acme/widget",
			wantErr:  false,
		},
		{
			name:     "invalid repository name",
			githubID: 12345,
			repoName: "",
			fullName: "acme/widget",
			url:      "https://api.github.com/repos/acme/widget",
			wantErr:  true,
		},
		{
			name:     "invalid GitHub ID",
			githubID: 0,
			repoName: "widget",
			fullName: "acme/widget",
			url:      "https://api.github.com/repos/acme/widget",
			wantErr:  true,
		},
		{
			name:     "invalid URL",
			githubID: 12345,
			repoName: "widget",
			fullName: "acme/widget",
			url:      "invalid",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repository, err := repo.NewRepository(accountID, tt.githubID, tt.repoName, tt.fullName, tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewRepository() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}

			if repository.Included() {
				t.Error("new repository should not be included by default")
			}
			if repository.OrgID() != nil {
				t.Error("new repository should have no owner link")
			}
			counts := repository.Counts()
			if counts.Commits != 0 || counts.Issues != 0 || counts.PullRequests != 0 {
				t.Errorf("new repository counts = %+v, want all zero", counts)
			}
		})
	}
}

func TestRepositoryLinkOwner(t *testing.T) {
	accountID := account.NewAccountID()

	repository, err := repo.NewRepository(accountID, 12345, "widget", "acme/widget", "https://api.github.com/repos/acme/widget")
	if err != nil {
		t.Fatalf("NewRepository() error = %v", err)
	}

	ownerID := org.NewOrganizationID()
	repository.LinkOwner(&ownerID)

	if repository.OrgID() == nil || !repository.OrgID().Equals(ownerID) {
		t.Errorf("OrgID() = %v, want %v", repository.OrgID(), ownerID)
	}

	// Unresolved owner is a valid state
	repository.LinkOwner(nil)
	if repository.OrgID() != nil {
		t.Error("OrgID() should be nil after unlinking")
	}
}

func TestRepositoryInclusionAndCounts(t *testing.T) {
	accountID := account.NewAccountID()

	repository, err := repo.NewRepository(accountID, 12345, "widget", "acme/widget", "https://api.github.com/repos/acme/widget")
	if err != nil {
		t.Fatalf("NewRepository() error = %v", err)
	}

	repository.SetInclusion(true)
	if !repository.Included() {
		t.Error("Included() = false, want true")
	}

	repository.ApplyCounts(repo.DetailCounts{Commits: 5, Issues: 2, PullRequests: 0})

	counts := repository.Counts()
	if counts.Commits != 5 || counts.Issues != 2 || counts.PullRequests != 0 {
		t.Errorf("Counts() = %+v, want {5 2 0}", counts)
	}

	// Toggling off must not clear stored counts
	repository.SetInclusion(false)
	counts = repository.Counts()
	if counts.Commits != 5 || counts.Issues != 2 {
		t.Errorf("Counts() after toggle off = %+v, want stored counts preserved", counts)
	}
}

func TestRepositoryBelongsToAccount(t *testing.T) {
	accountID := account.NewAccountID()

	repository, err := repo.NewRepository(accountID, 12345, "widget", "acme/widget", "https://api.github.com/repos/acme/widget")
	if err != nil {
		t.Fatalf("NewRepository() error = %v", err)
	}

	if !repository.BelongsToAccount(accountID) {
		t.Error("BelongsToAccount() = false for owning account")
	}
	if repository.BelongsToAccount(account.NewAccountID()) {
		t.Error("BelongsToAccount() = true for foreign account")
	}
}
