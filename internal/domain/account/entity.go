package account

import (
	"fmt"
	"time"
)

// Account is a domain entity representing a local account, keyed by the
// identity provider's user ID
type Account struct {
	id         AccountID
	externalID ExternalID
	email      string
	username   string
	createdAt  time.Time
	updatedAt  time.Time
}

// NewAccount creates a new Account entity with validation
func NewAccount(externalID, email, username string) (*Account, error) {
	extID, err := NewExternalID(externalID)
	if err != nil {
		return nil, fmt.Errorf("invalid external ID: %w", err)
	}

	now := time.Now()
	return &Account{
		id:         NewAccountID(),
		externalID: extID,
		email:      email,
		username:   username,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// Reconstitute recreates an Account entity from persistence
func Reconstitute(id, externalID, email, username string, createdAt, updatedAt time.Time) (*Account, error) {
	accountID, err := ParseAccountID(id)
	if err != nil {
		return nil, fmt.Errorf("invalid account ID: %w", err)
	}

	extID, err := NewExternalID(externalID)
	if err != nil {
		return nil, fmt.Errorf("invalid external ID: %w", err)
	}

	return &Account{
		id:         accountID,
		externalID: extID,
		email:      email,
		username:   username,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}, nil
}

// Getters

func (a *Account) ID() AccountID {
	return a.id
}

func (a *Account) ExternalID() ExternalID {
	return a.externalID
}

func (a *Account) Email() string {
	return a.email
}

func (a *Account) Username() string {
	return a.username
}

func (a *Account) CreatedAt() time.Time {
	return a.createdAt
}

func (a *Account) UpdatedAt() time.Time {
	return a.updatedAt
}
