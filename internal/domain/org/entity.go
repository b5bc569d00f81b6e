package org

import (
	"fmt"
	"time"

	"gitpulse-core/internal/domain/account"
)

// Organization is a domain entity representing a GitHub organization
// synchronized under a local account
type Organization struct {
	id          OrganizationID
	accountID   account.AccountID
	githubID    GitHubID
	name        Name
	url         URL
	connectedAt time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

// NewOrganization creates a new Organization entity
func NewOrganization(accountID account.AccountID, githubID int64, name, url string) (*Organization, error) {
	orgName, err := NewName(name)
	if err != nil {
		return nil, fmt.Errorf("invalid organization name: %w", err)
	}

	orgURL, err := NewURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid organization URL: %w", err)
	}

	githubIDVO, err := NewGitHubID(githubID)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub ID: %w", err)
	}

	now := time.Now()
	return &Organization{
		id:          NewOrganizationID(),
		accountID:   accountID,
		githubID:    githubIDVO,
		name:        orgName,
		url:         orgURL,
		connectedAt: now,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstitute recreates an Organization entity from persistence
func Reconstitute(
	id string,
	accountID account.AccountID,
	githubID int64,
	name, url string,
	connectedAt, createdAt, updatedAt time.Time,
) (*Organization, error) {
	orgID, err := ParseOrganizationID(id)
	if err != nil {
		return nil, fmt.Errorf("invalid organization ID: %w", err)
	}

	orgName, err := NewName(name)
	if err != nil {
		return nil, fmt.Errorf("invalid organization name: %w", err)
	}

	orgURL, err := NewURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid organization URL: %w", err)
	}

	githubIDVO, err := NewGitHubID(githubID)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub ID: %w", err)
	}

	return &Organization{
		id:          orgID,
		accountID:   accountID,
		githubID:    githubIDVO,
		name:        orgName,
		url:         orgURL,
		connectedAt: connectedAt,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

// Refresh updates the mutable attributes from a new sync pass
func (o *Organization) Refresh(name, url string) error {
	orgName, err := NewName(name)
	if err != nil {
		return fmt.Errorf("invalid organization name: %w", err)
	}

	orgURL, err := NewURL(url)
	if err != nil {
		return fmt.Errorf("invalid organization URL: %w", err)
	}

	o.name = orgName
	o.url = orgURL
	o.connectedAt = time.Now()
	o.updatedAt = o.connectedAt
	return nil
}

// BelongsToAccount checks if the organization was synchronized under the account
func (o *Organization) BelongsToAccount(accountID account.AccountID) bool {
	return o.accountID.Equals(accountID)
}

// Getters

func (o *Organization) ID() OrganizationID {
	return o.id
}

func (o *Organization) AccountID() account.AccountID {
	return o.accountID
}

func (o *Organization) GitHubID() GitHubID {
	return o.githubID
}

func (o *Organization) Name() Name {
	return o.name
}

func (o *Organization) URL() URL {
	return o.url
}

func (o *Organization) ConnectedAt() time.Time {
	return o.connectedAt
}

func (o *Organization) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Organization) UpdatedAt() time.Time {
	return o.updatedAt
}

// String returns string representation (for debugging)
func (o *Organization) String() string {
	return fmt.Sprintf("Organization{id: %s, name: %s, accountID: %s}",
		o.id.String(), o.name.String(), o.accountID.String())
}
