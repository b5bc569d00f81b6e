package repo_test

import (
	"testing"

	"gitpulse-core/internal/domain/repo"
)

func TestNewName(t *testing.T) {
	tests := []struct {
		name     string
		repoName string
		wantErr  bool
	}{
		{"valid name", "my-repo", false},
		{"valid with underscore", "my_repo", false},
		{"empty name", "", true},
		{"too long", string(make([]byte, 101)), true},
		{"name with spaces trimmed", "  my-repo  ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, err := repo.NewName(tt.repoName)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewName() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && name.String() == "" {
				t.Errorf("NewName() returned empty string for valid name")
			}
		})
	}
}

func TestNewURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"valid https URL", "https://github.com/user/repo", false},
		{"valid http URL", "http://github.com/user/repo", false},
		{"empty URL", "", true},
		{"invalid URL no protocol", "github.com/user/repo", true},
		{"URL with spaces trimmed", "  https://github.com/user/repo  ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url, err := repo.NewURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewURL() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && url.String() == "" {
				t.Errorf("NewURL() returned empty string for valid URL")
			}
		})
	}
}

func TestNewGitHubID(t *testing.T) {
	tests := []struct {
		name    string
		id      int64
		wantErr bool
	}{
		{"valid positive ID", 12345, false},
		{"valid large ID", 999999999, false},
		{"invalid zero", 0, true},
		{"invalid negative", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ghID, err := repo.NewGitHubID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewGitHubID() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && ghID.Int64() != tt.id {
				t.Errorf("NewGitHubID() = %v, want %v", ghID.Int64(), tt.id)
			}
		})
	}
}

func TestParseRepositoryID(t *testing.T) {
	original := repo.NewRepositoryID()

	parsed, err := repo.ParseRepositoryID(original.String())
	if err != nil {
		t.Fatalf("ParseRepositoryID() error = %v", err)
	}

	if !parsed.Equals(original) {
		t.Errorf("ParseRepositoryID() = %v, want %v", parsed, original)
	}

	if _, err := repo.ParseRepositoryID("not-a-uuid"); err == nil {
		t.Error("ParseRepositoryID() expected error for invalid input")
	}
}
