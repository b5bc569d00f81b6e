package account

import "context"

// Repository defines the interface for account persistence
// This is defined in the domain layer, but implemented in infrastructure
type Repository interface {
	// Upsert persists an account keyed by external ID and returns the
	// persisted entity (the existing one on conflict)
	Upsert(ctx context.Context, account *Account) (*Account, error)

	// FindByExternalID retrieves an account by the identity provider's user ID
	FindByExternalID(ctx context.Context, externalID ExternalID) (*Account, error)
}
