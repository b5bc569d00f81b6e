package repo

import (
	"fmt"
	"time"

	"gitpulse-core/internal/domain/account"
	"gitpulse-core/internal/domain/org"
)

// Metadata holds the descriptive field set mirrored verbatim from the
// remote repository representation
type Metadata struct {
	Description     *string
	HTMLURL         *string
	Private         bool
	Fork            bool
	Archived        bool
	Disabled        bool
	Language        *string
	Visibility      string
	License         *string
	DefaultBranch   *string
	Topics          []string
	StargazersCount int32
	WatchersCount   int32
	ForksCount      int32
	OpenIssuesCount int32
	Size            int32
	Homepage        *string
	PushedAt        *time.Time
	RemoteUpdatedAt *time.Time
}

// Repository is a domain entity representing a GitHub repository
// synchronized under a local account
type Repository struct {
	id        RepositoryID
	accountID account.AccountID
	githubID  GitHubID
	name      Name
	fullName  string
	url       URL
	// orgID is a weak reference to the owning organization; nil when the
	// repository's remote owner could not be resolved during the sync pass
	orgID     *org.OrganizationID
	metadata  Metadata
	included  bool
	counts    DetailCounts
	createdAt time.Time
	updatedAt time.Time
}

// NewRepository creates a new Repository entity. Inclusion defaults to
// false and enrichment counts to zero.
func NewRepository(
	accountID account.AccountID,
	githubID int64,
	name, fullName, url string,
) (*Repository, error) {
	repoName, err := NewName(name)
	if err != nil {
		return nil, fmt.Errorf("invalid repository name: %w", err)
	}

	repoURL, err := NewURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid repository URL: %w", err)
	}

	githubIDVO, err := NewGitHubID(githubID)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub ID: %w", err)
	}

	now := time.Now()
	return &Repository{
		id:        NewRepositoryID(),
		accountID: accountID,
		githubID:  githubIDVO,
		name:      repoName,
		fullName:  fullName,
		url:       repoURL,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstitute recreates a Repository entity from persistence
func Reconstitute(
	id string,
	accountID account.AccountID,
	githubID int64,
	name, fullName, url string,
	orgID *org.OrganizationID,
	metadata Metadata,
	included bool,
	counts DetailCounts,
	createdAt, updatedAt time.Time,
) (*Repository, error) {
	repoID, err := ParseRepositoryID(id)
	if err != nil {
		return nil, fmt.Errorf("invalid repository ID: %w", err)
	}

	repoName, err := NewName(name)
	if err != nil {
		return nil, fmt.Errorf("invalid repository name: %w", err)
	}

	repoURL, err := NewURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid repository URL: %w", err)
	}

	githubIDVO, err := NewGitHubID(githubID)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub ID: %w", err)
	}

	return &Repository{
		id:        repoID,
		accountID: accountID,
		githubID:  githubIDVO,
		name:      repoName,
		fullName:  fullName,
		url:       repoURL,
		orgID:     orgID,
		metadata:  metadata,
		included:  included,
		counts:    counts,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

// UpdateMetadata replaces the descriptive field set from a sync pass
func (r *Repository) UpdateMetadata(metadata Metadata) {
	r.metadata = metadata
	r.updatedAt = time.Now()
}

// LinkOwner sets the owning organization reference. A nil ID records an
// unresolved owner, which is valid.
func (r *Repository) LinkOwner(orgID *org.OrganizationID) {
	r.orgID = orgID
	r.updatedAt = time.Now()
}

// SetInclusion toggles the enrichment inclusion flag
func (r *Repository) SetInclusion(included bool) {
	r.included = included
	r.updatedAt = time.Now()
}

// ApplyCounts stores freshly computed enrichment counts on the entity
func (r *Repository) ApplyCounts(counts DetailCounts) {
	r.counts = counts
	r.updatedAt = time.Now()
}

// BelongsToAccount checks if the repository belongs to the specified account
func (r *Repository) BelongsToAccount(accountID account.AccountID) bool {
	return r.accountID.Equals(accountID)
}

// Getters

func (r *Repository) ID() RepositoryID {
	return r.id
}

func (r *Repository) AccountID() account.AccountID {
	return r.accountID
}

func (r *Repository) GitHubID() GitHubID {
	return r.githubID
}

func (r *Repository) Name() Name {
	return r.name
}

func (r *Repository) FullName() string {
	return r.fullName
}

func (r *Repository) URL() URL {
	return r.url
}

func (r *Repository) OrgID() *org.OrganizationID {
	return r.orgID
}

func (r *Repository) Metadata() Metadata {
	return r.metadata
}

func (r *Repository) Included() bool {
	return r.included
}

func (r *Repository) Counts() DetailCounts {
	return r.counts
}

func (r *Repository) CreatedAt() time.Time {
	return r.createdAt
}

func (r *Repository) UpdatedAt() time.Time {
	return r.updatedAt
}

// String returns string representation (for debugging)
func (r *Repository) String() string {
	return fmt.Sprintf("Repository{id: %s, fullName: %s, accountID: %s}",
		r.id.String(), r.fullName, r.accountID.String())
}
