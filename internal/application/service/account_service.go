package service

import (
	"context"
	"errors"
	"fmt"

	"gitpulse-core/internal/domain/account"
)

// IdentityUserData represents user data fetched from the identity provider
type IdentityUserData struct {
	ID       string
	Email    string
	Username string
}

// IdentityService is an interface for interacting with the identity provider
type IdentityService interface {
	GetUser(ctx context.Context, externalID string) (*IdentityUserData, error)
	GetGitHubAccessToken(ctx context.Context, externalID string) (string, error)
}

// AccountService handles account-related use cases
type AccountService struct {
	accountRepo account.Repository
	identity    IdentityService
}

// NewAccountService creates a new account service
func NewAccountService(accountRepo account.Repository, identity IdentityService) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		identity:    identity,
	}
}

// EnsureAccount returns the local account for the identity provider's user
// ID, creating it on first sight
func (s *AccountService) EnsureAccount(ctx context.Context, externalID string) (*account.Account, error) {
	extID, err := account.NewExternalID(externalID)
	if err != nil {
		return nil, fmt.Errorf("invalid external ID: %w", err)
	}

	existing, err := s.accountRepo.FindByExternalID(ctx, extID)
	if err == nil {
		return existing, nil
	}

	var domainErr *account.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "ACCOUNT_NOT_FOUND" {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	// First sight: pull profile data from the identity provider. A failed
	// lookup still yields a usable account, just without profile fields.
	email, username := "", ""
	if userData, err := s.identity.GetUser(ctx, externalID); err == nil {
		email = userData.Email
		username = userData.Username
	}

	newAccount, err := account.NewAccount(externalID, email, username)
	if err != nil {
		return nil, fmt.Errorf("failed to create account entity: %w", err)
	}

	persisted, err := s.accountRepo.Upsert(ctx, newAccount)
	if err != nil {
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	return persisted, nil
}

// GitHubAccessToken resolves the GitHub credential for an external user ID
func (s *AccountService) GitHubAccessToken(ctx context.Context, externalID string) (string, error) {
	return s.identity.GetGitHubAccessToken(ctx, externalID)
}
