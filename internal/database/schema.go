package database

import "fmt"

// schema contains the idempotent bootstrap statements for the two entity
// collections plus the accounts table. Statements run in order; there is
// no migration framework.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id UUID PRIMARY KEY,
		external_id TEXT NOT NULL UNIQUE,
		email TEXT,
		username TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS organizations (
		id UUID PRIMARY KEY,
		github_id BIGINT NOT NULL,
		account_id UUID NOT NULL REFERENCES accounts(id),
		name TEXT NOT NULL,
		url TEXT NOT NULL,
		connected_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (github_id, account_id)
	)`,
	`CREATE TABLE IF NOT EXISTS repositories (
		id UUID PRIMARY KEY,
		github_id BIGINT NOT NULL UNIQUE,
		account_id UUID NOT NULL REFERENCES accounts(id),
		org_id UUID REFERENCES organizations(id),
		name TEXT NOT NULL,
		full_name TEXT NOT NULL,
		url TEXT NOT NULL,
		html_url TEXT,
		description TEXT,
		private BOOLEAN NOT NULL DEFAULT false,
		fork BOOLEAN NOT NULL DEFAULT false,
		archived BOOLEAN NOT NULL DEFAULT false,
		disabled BOOLEAN NOT NULL DEFAULT false,
		language TEXT,
		visibility TEXT,
		license TEXT,
		default_branch TEXT,
		topics TEXT[] NOT NULL DEFAULT '{}',
		stargazers_count INTEGER NOT NULL DEFAULT 0,
		watchers_count INTEGER NOT NULL DEFAULT 0,
		forks_count INTEGER NOT NULL DEFAULT 0,
		open_issues_count INTEGER NOT NULL DEFAULT 0,
		size INTEGER NOT NULL DEFAULT 0,
		homepage TEXT,
		pushed_at TIMESTAMPTZ,
		remote_updated_at TIMESTAMPTZ,
		included BOOLEAN NOT NULL DEFAULT false,
		commit_count INTEGER NOT NULL DEFAULT 0,
		issue_count INTEGER NOT NULL DEFAULT 0,
		pull_request_count INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_repositories_account_id ON repositories(account_id)`,
	`CREATE INDEX IF NOT EXISTS idx_repositories_org_id ON repositories(org_id)`,
}

// Bootstrap creates the schema if it does not exist yet
func (db *DB) Bootstrap() error {
	for _, stmt := range schema {
		if _, err := db.conn.Exec(stmt); err != nil {
			return fmt.Errorf("failed to bootstrap schema: %w", err)
		}
	}
	return nil
}
