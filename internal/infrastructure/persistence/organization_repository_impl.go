package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"gitpulse-core/internal/database"
	"gitpulse-core/internal/domain/account"
	"gitpulse-core/internal/domain/org"
)

// OrganizationRepoImpl implements the domain org.Repository interface
type OrganizationRepoImpl struct {
	db *sql.DB
}

// NewOrganizationRepository creates a new organization repository implementation
func NewOrganizationRepository(db *database.DB) org.Repository {
	return &OrganizationRepoImpl{db: db.GetConnection()}
}

// Upsert persists an organization keyed by (github_id, account_id).
// RETURNING yields the surviving row, so on conflict the caller gets the
// existing local ID rather than the freshly generated one.
func (r *OrganizationRepoImpl) Upsert(ctx context.Context, o *org.Organization) (*org.Organization, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO organizations (id, github_id, account_id, name, url, connected_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (github_id, account_id) DO UPDATE SET
			name = EXCLUDED.name,
			url = EXCLUDED.url,
			connected_at = EXCLUDED.connected_at,
			updated_at = now()
		RETURNING id, github_id, account_id, name, url, connected_at, created_at, updated_at`,
		o.ID().UUID(), o.GitHubID().Int64(), o.AccountID().UUID(),
		o.Name().String(), o.URL().String(), o.ConnectedAt(),
	)

	persisted, err := r.scanOrganization(row)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert organization: %w", err)
	}

	return persisted, nil
}

// FindByID retrieves an organization by its local ID
func (r *OrganizationRepoImpl) FindByID(ctx context.Context, id org.OrganizationID) (*org.Organization, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, github_id, account_id, name, url, connected_at, created_at, updated_at
		FROM organizations
		WHERE id = $1`,
		id.UUID(),
	)

	persisted, err := r.scanOrganization(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, org.ErrOrganizationNotFound(id.String())
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}

	return persisted, nil
}

// FindByAccountID retrieves all organizations synchronized under an account
func (r *OrganizationRepoImpl) FindByAccountID(ctx context.Context, accountID account.AccountID) ([]*org.Organization, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, github_id, account_id, name, url, connected_at, created_at, updated_at
		FROM organizations
		WHERE account_id = $1
		ORDER BY created_at`,
		accountID.UUID(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch organizations: %w", err)
	}
	defer rows.Close()

	var organizations []*org.Organization
	for rows.Next() {
		o, err := r.scanOrganization(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to convert organization: %w", err)
		}
		organizations = append(organizations, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate organizations: %w", err)
	}

	return organizations, nil
}

// scanOrganization converts a database row to a domain organization
func (r *OrganizationRepoImpl) scanOrganization(row rowScanner) (*org.Organization, error) {
	var dbOrg struct {
		id          string
		githubID    int64
		accountID   string
		name        string
		url         string
		connectedAt sql.NullTime
		createdAt   sql.NullTime
		updatedAt   sql.NullTime
	}

	if err := row.Scan(
		&dbOrg.id,
		&dbOrg.githubID,
		&dbOrg.accountID,
		&dbOrg.name,
		&dbOrg.url,
		&dbOrg.connectedAt,
		&dbOrg.createdAt,
		&dbOrg.updatedAt,
	); err != nil {
		return nil, err
	}

	accountID, err := account.ParseAccountID(dbOrg.accountID)
	if err != nil {
		return nil, fmt.Errorf("invalid account ID: %w", err)
	}

	return org.Reconstitute(
		dbOrg.id,
		accountID,
		dbOrg.githubID,
		dbOrg.name,
		dbOrg.url,
		dbOrg.connectedAt.Time,
		dbOrg.createdAt.Time,
		dbOrg.updatedAt.Time,
	)
}
