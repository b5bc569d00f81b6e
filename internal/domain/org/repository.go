package org

import (
	"context"

	"gitpulse-core/internal/domain/account"
)

// Repository defines the interface for organization persistence
// This is defined in the domain layer, but implemented in infrastructure
type Repository interface {
	// Upsert persists an organization keyed by (github_id, account_id) and
	// returns the persisted entity. On conflict the existing row keeps its
	// local ID and the mutable attributes are refreshed in place.
	Upsert(ctx context.Context, organization *Organization) (*Organization, error)

	// FindByID retrieves an organization by its local ID
	FindByID(ctx context.Context, id OrganizationID) (*Organization, error)

	// FindByAccountID retrieves all organizations synchronized under an account
	FindByAccountID(ctx context.Context, accountID account.AccountID) ([]*Organization, error)
}
