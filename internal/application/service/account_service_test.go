package service_test

import (
	"context"
	"errors"
	"testing"

	"gitpulse-core/internal/application/service"
	"gitpulse-core/internal/domain/account"
)

type mockAccountRepo struct {
	accounts    map[string]*account.Account
	shouldError bool
}

func newMockAccountRepo() *mockAccountRepo {
	return &mockAccountRepo{accounts: make(map[string]*account.Account)}
}

func (m *mockAccountRepo) Upsert(ctx context.Context, acc *account.Account) (*account.Account, error) {
	if m.shouldError {
		return nil, errors.New("account error")
	}
	if existing, ok := m.accounts[acc.ExternalID().String()]; ok {
		return existing, nil
	}
	m.accounts[acc.ExternalID().String()] = acc
	return acc, nil
}

func (m *mockAccountRepo) FindByExternalID(ctx context.Context, externalID account.ExternalID) (*account.Account, error) {
	if m.shouldError {
		return nil, errors.New("account error")
	}
	acc, ok := m.accounts[externalID.String()]
	if !ok {
		return nil, account.ErrAccountNotFound(externalID.String())
	}
	return acc, nil
}

type mockIdentityService struct {
	user         *service.IdentityUserData
	token        string
	failGetUser  bool
	failToken    bool
	getUserCalls int
}

func (m *mockIdentityService) GetUser(ctx context.Context, externalID string) (*service.IdentityUserData, error) {
	m.getUserCalls++
	if m.failGetUser {
		return nil, errors.New("identity error")
	}
	if m.user != nil {
		return m.user, nil
	}
	return &service.IdentityUserData{
		ID:       externalID,
		Email:    "dev@example.com",
		Username: "dev",
	}, nil
}

func (m *mockIdentityService) GetGitHubAccessToken(ctx context.Context, externalID string) (string, error) {
	if m.failToken {
		return "", errors.New("identity error")
	}
	return m.token, nil
}

func TestAccountService_EnsureAccountCreates(t *testing.T) {
	accountRepo := newMockAccountRepo()
	identity := &mockIdentityService{}
	svc := service.NewAccountService(accountRepo, identity)

	acc, err := svc.EnsureAccount(context.Background(), "user_2abc")
	if err != nil {
		t.Fatalf("EnsureAccount() error = %v", err)
	}

	if acc.ExternalID().String() != "user_2abc" {
		t.Errorf("ExternalID = %v, want user_2abc", acc.ExternalID().String())
	}
	if acc.Email() != "dev@example.com" {
		t.Errorf("Email = %v, want dev@example.com", acc.Email())
	}
	if len(accountRepo.accounts) != 1 {
		t.Errorf("persisted accounts = %v, want 1", len(accountRepo.accounts))
	}
}

func TestAccountService_EnsureAccountIdempotent(t *testing.T) {
	accountRepo := newMockAccountRepo()
	identity := &mockIdentityService{}
	svc := service.NewAccountService(accountRepo, identity)

	first, err := svc.EnsureAccount(context.Background(), "user_2abc")
	if err != nil {
		t.Fatalf("EnsureAccount() error = %v", err)
	}

	second, err := svc.EnsureAccount(context.Background(), "user_2abc")
	if err != nil {
		t.Fatalf("EnsureAccount() error = %v", err)
	}

	if !first.ID().Equals(second.ID()) {
		t.Error("account should be reused, not duplicated")
	}

	// Profile lookup happens on first sight only
	if identity.getUserCalls != 1 {
		t.Errorf("GetUser calls = %v, want 1", identity.getUserCalls)
	}
}

func TestAccountService_EnsureAccountProfileLookupFailure(t *testing.T) {
	accountRepo := newMockAccountRepo()
	identity := &mockIdentityService{failGetUser: true}
	svc := service.NewAccountService(accountRepo, identity)

	acc, err := svc.EnsureAccount(context.Background(), "user_2abc")
	if err != nil {
		t.Fatalf("EnsureAccount() error = %v, a failed profile lookup must not block account creation", err)
	}

	if acc.Email() != "" {
		t.Errorf("Email = %v, want empty without profile data", acc.Email())
	}
}

func TestAccountService_GitHubAccessToken(t *testing.T) {
	accountRepo := newMockAccountRepo()
	identity := &mockIdentityService{token: "gho_secret"}
	svc := service.NewAccountService(accountRepo, identity)

	token, err := svc.GitHubAccessToken(context.Background(), "user_2abc")
	if err != nil {
		t.Fatalf("GitHubAccessToken() error = %v", err)
	}
	if token != "gho_secret" {
		t.Errorf("token = %v, want gho_secret", token)
	}

	identity.failToken = true
	if _, err := svc.GitHubAccessToken(context.Background(), "user_2abc"); err == nil {
		t.Error("GitHubAccessToken() should surface identity provider errors")
	}
}
