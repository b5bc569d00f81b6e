package repo

import (
	"context"

	"gitpulse-core/internal/domain/account"
)

// CatalogRow is a repository joined with the minimal projection of its
// owning organization, as served by the paginated catalog
type CatalogRow struct {
	Repository *Repository
	OwnerName  *string
	OwnerURL   *string
}

// RepositoryRepo defines the interface for repository persistence
// This is defined in the domain layer, but implemented in infrastructure
type RepositoryRepo interface {
	// Upsert persists a repository keyed by github_id and returns the
	// persisted entity. On conflict the existing row keeps its local ID,
	// inclusion flag and counts; the descriptive fields are refreshed.
	Upsert(ctx context.Context, repository *Repository) (*Repository, error)

	// FindByID retrieves a repository by its local ID
	FindByID(ctx context.Context, id RepositoryID) (*Repository, error)

	// FindPageByAccountID retrieves one catalog page for an account in
	// stored order, each row joined with the owning organization projection
	FindPageByAccountID(ctx context.Context, accountID account.AccountID, limit, offset int32) ([]*CatalogRow, error)

	// CountByAccountID returns the total number of repositories for an account
	CountByAccountID(ctx context.Context, accountID account.AccountID) (int64, error)

	// UpdateInclusion persists the inclusion flag and enrichment counts of
	// an already-stored repository
	UpdateInclusion(ctx context.Context, repository *Repository) error
}
