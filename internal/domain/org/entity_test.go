package org_test

import (
	"testing"

	"gitpulse-core/internal/domain/account"
	"gitpulse-core/internal/domain/org"
)

func TestNewOrganization(t *testing.T) {
	accountID := account.NewAccountID()

	tests := []struct {
		name     string
		githubID int64
		orgName  string
		url      string
		wantErr  bool
	}{
		{
			name:     "valid organization",
			githubID: 9876,
			orgName:  "acme",
			url:      "https://api.github.com/orgs/acme",
			wantErr:  false,
		},
		{
			name:     "invalid GitHub ID",
			githubID: -1,
			orgName:  "acme",
			url:      "https://api.github.com/orgs/acme",
			wantErr:  true,
		},
		{
			name:     "empty name",
			githubID: 9876,
			orgName:  "",
			url:      "https://api.github.com/orgs/acme",
			wantErr:  true,
		},
		{
			name:     "invalid URL",
			githubID: 9876,
			orgName:  "acme",
			url:      "not-a-url",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			organization, err := org.NewOrganization(accountID, tt.githubID, tt.orgName, tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewOrganization() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}

			if organization.Name().String() != tt.orgName {
				t.Errorf("Name() = %v, want %v", organization.Name().String(), tt.orgName)
			}
			if organization.ConnectedAt().IsZero() {
				t.Error("ConnectedAt() should be set on creation")
			}
			if !organization.BelongsToAccount(accountID) {
				t.Error("BelongsToAccount() = false for owning account")
			}
		})
	}
}

func TestOrganizationRefresh(t *testing.T) {
	accountID := account.NewAccountID()

	organization, err := org.NewOrganization(accountID, 9876, "acme", "https://api.github.com/orgs/acme")
	if err != nil {
		t.Fatalf("NewOrganization() error = %v", err)
	}

	if err := organization.Refresh("acme-renamed", "https://api.github.com/orgs/acme-renamed"); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	if organization.Name().String() != "acme-renamed" {
		t.Errorf("Name() = %v, want acme-renamed", organization.Name().String())
	}
	if organization.URL().String() != "https://api.github.com/orgs/acme-renamed" {
		t.Errorf("URL() = %v, want refreshed URL", organization.URL().String())
	}

	if err := organization.Refresh("", "https://api.github.com/orgs/acme"); err == nil {
		t.Error("Refresh() with empty name should return error")
	}
}
