package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"gitpulse-core/internal/database"
	"gitpulse-core/internal/domain/account"
)

// AccountRepoImpl implements the domain account.Repository interface
type AccountRepoImpl struct {
	db *sql.DB
}

// NewAccountRepository creates a new account repository implementation
func NewAccountRepository(db *database.DB) account.Repository {
	return &AccountRepoImpl{db: db.GetConnection()}
}

// Upsert persists an account keyed by external ID
func (r *AccountRepoImpl) Upsert(ctx context.Context, a *account.Account) (*account.Account, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO accounts (id, external_id, email, username)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (external_id) DO UPDATE SET
			email = EXCLUDED.email,
			username = EXCLUDED.username,
			updated_at = now()
		RETURNING id, external_id, email, username, created_at, updated_at`,
		a.ID().UUID(), a.ExternalID().String(), a.Email(), a.Username(),
	)

	persisted, err := r.scanAccount(row)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert account: %w", err)
	}

	return persisted, nil
}

// FindByExternalID retrieves an account by the identity provider's user ID
func (r *AccountRepoImpl) FindByExternalID(ctx context.Context, externalID account.ExternalID) (*account.Account, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, external_id, email, username, created_at, updated_at
		FROM accounts
		WHERE external_id = $1`,
		externalID.String(),
	)

	persisted, err := r.scanAccount(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, account.ErrAccountNotFound(externalID.String())
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return persisted, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanAccount converts a database row to a domain account
func (r *AccountRepoImpl) scanAccount(row rowScanner) (*account.Account, error) {
	var dbAccount struct {
		id         string
		externalID string
		email      sql.NullString
		username   sql.NullString
		createdAt  sql.NullTime
		updatedAt  sql.NullTime
	}

	if err := row.Scan(
		&dbAccount.id,
		&dbAccount.externalID,
		&dbAccount.email,
		&dbAccount.username,
		&dbAccount.createdAt,
		&dbAccount.updatedAt,
	); err != nil {
		return nil, err
	}

	return account.Reconstitute(
		dbAccount.id,
		dbAccount.externalID,
		dbAccount.email.String,
		dbAccount.username.String,
		dbAccount.createdAt.Time,
		dbAccount.updatedAt.Time,
	)
}
