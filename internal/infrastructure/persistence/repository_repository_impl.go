package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"gitpulse-core/internal/database"
	"gitpulse-core/internal/domain/account"
	"gitpulse-core/internal/domain/org"
	"gitpulse-core/internal/domain/repo"
)

const repositoryColumns = `id, github_id, account_id, org_id, name, full_name, url, html_url,
	description, private, fork, archived, disabled, language, visibility, license,
	default_branch, topics, stargazers_count, watchers_count, forks_count,
	open_issues_count, size, homepage, pushed_at, remote_updated_at,
	included, commit_count, issue_count, pull_request_count, created_at, updated_at`

// RepositoryRepoImpl implements the domain repo.RepositoryRepo interface
type RepositoryRepoImpl struct {
	db *sql.DB
}

// NewRepositoryRepository creates a new repository repository implementation
func NewRepositoryRepository(db *database.DB) repo.RepositoryRepo {
	return &RepositoryRepoImpl{db: db.GetConnection()}
}

// Upsert persists a repository keyed by github_id. The inclusion flag and
// enrichment counts are never touched on conflict; they survive re-syncs.
func (r *RepositoryRepoImpl) Upsert(ctx context.Context, repository *repo.Repository) (*repo.Repository, error) {
	m := repository.Metadata()

	var orgID any
	if repository.OrgID() != nil {
		orgID = repository.OrgID().UUID()
	}

	topics := m.Topics
	if topics == nil {
		topics = []string{}
	}

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO repositories (
			id, github_id, account_id, org_id, name, full_name, url, html_url,
			description, private, fork, archived, disabled, language, visibility,
			license, default_branch, topics, stargazers_count, watchers_count,
			forks_count, open_issues_count, size, homepage, pushed_at, remote_updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)
		ON CONFLICT (github_id) DO UPDATE SET
			org_id = EXCLUDED.org_id,
			name = EXCLUDED.name,
			full_name = EXCLUDED.full_name,
			url = EXCLUDED.url,
			html_url = EXCLUDED.html_url,
			description = EXCLUDED.description,
			private = EXCLUDED.private,
			fork = EXCLUDED.fork,
			archived = EXCLUDED.archived,
			disabled = EXCLUDED.disabled,
			language = EXCLUDED.language,
			visibility = EXCLUDED.visibility,
			license = EXCLUDED.license,
			default_branch = EXCLUDED.default_branch,
			topics = EXCLUDED.topics,
			stargazers_count = EXCLUDED.stargazers_count,
			watchers_count = EXCLUDED.watchers_count,
			forks_count = EXCLUDED.forks_count,
			open_issues_count = EXCLUDED.open_issues_count,
			size = EXCLUDED.size,
			homepage = EXCLUDED.homepage,
			pushed_at = EXCLUDED.pushed_at,
			remote_updated_at = EXCLUDED.remote_updated_at,
			updated_at = now()
		RETURNING `+repositoryColumns,
		repository.ID().UUID(), repository.GitHubID().Int64(), repository.AccountID().UUID(),
		orgID, repository.Name().String(), repository.FullName(), repository.URL().String(),
		nullString(m.HTMLURL), nullString(m.Description), m.Private, m.Fork, m.Archived,
		m.Disabled, nullString(m.Language), m.Visibility, nullString(m.License),
		nullString(m.DefaultBranch), pq.Array(topics), m.StargazersCount, m.WatchersCount,
		m.ForksCount, m.OpenIssuesCount, m.Size, nullString(m.Homepage),
		nullTime(m.PushedAt), nullTime(m.RemoteUpdatedAt),
	)

	persisted, err := r.scanRepository(row)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert repository: %w", err)
	}

	return persisted, nil
}

// FindByID retrieves a repository by its local ID
func (r *RepositoryRepoImpl) FindByID(ctx context.Context, id repo.RepositoryID) (*repo.Repository, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+repositoryColumns+` FROM repositories WHERE id = $1`,
		id.UUID(),
	)

	persisted, err := r.scanRepository(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repo.ErrRepositoryNotFound(id.String())
		}
		return nil, fmt.Errorf("failed to get repository: %w", err)
	}

	return persisted, nil
}

// FindPageByAccountID retrieves one catalog page in stored order, each row
// joined with the owning organization's minimal projection
func (r *RepositoryRepoImpl) FindPageByAccountID(ctx context.Context, accountID account.AccountID, limit, offset int32) ([]*repo.CatalogRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT r.id, r.github_id, r.account_id, r.org_id, r.name, r.full_name, r.url, r.html_url,
			r.description, r.private, r.fork, r.archived, r.disabled, r.language, r.visibility,
			r.license, r.default_branch, r.topics, r.stargazers_count, r.watchers_count,
			r.forks_count, r.open_issues_count, r.size, r.homepage, r.pushed_at,
			r.remote_updated_at, r.included, r.commit_count, r.issue_count,
			r.pull_request_count, r.created_at, r.updated_at,
			o.name, o.url
		FROM repositories r
		LEFT JOIN organizations o ON o.id = r.org_id
		WHERE r.account_id = $1
		ORDER BY r.created_at, r.id
		LIMIT $2 OFFSET $3`,
		accountID.UUID(), limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch repositories: %w", err)
	}
	defer rows.Close()

	var page []*repo.CatalogRow
	for rows.Next() {
		catalogRow, err := r.scanCatalogRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to convert repository: %w", err)
		}
		page = append(page, catalogRow)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate repositories: %w", err)
	}

	return page, nil
}

// CountByAccountID returns the total number of repositories for an account
func (r *RepositoryRepoImpl) CountByAccountID(ctx context.Context, accountID account.AccountID) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM repositories WHERE account_id = $1`,
		accountID.UUID(),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count repositories: %w", err)
	}

	return count, nil
}

// UpdateInclusion persists the inclusion flag and enrichment counts
func (r *RepositoryRepoImpl) UpdateInclusion(ctx context.Context, repository *repo.Repository) error {
	counts := repository.Counts()

	result, err := r.db.ExecContext(ctx, `
		UPDATE repositories SET
			included = $2,
			commit_count = $3,
			issue_count = $4,
			pull_request_count = $5,
			updated_at = now()
		WHERE id = $1`,
		repository.ID().UUID(), repository.Included(),
		counts.Commits, counts.Issues, counts.PullRequests,
	)
	if err != nil {
		return fmt.Errorf("failed to update inclusion: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update inclusion: %w", err)
	}
	if affected == 0 {
		return repo.ErrRepositoryNotFound(repository.ID().String())
	}

	return nil
}

// scanRepository converts a database row to a domain repository
func (r *RepositoryRepoImpl) scanRepository(row rowScanner) (*repo.Repository, error) {
	var (
		dbRepo   repositoryRow
		topics   []string
		scanDest = dbRepo.scanDest(&topics)
	)

	if err := row.Scan(scanDest...); err != nil {
		return nil, err
	}

	return dbRepo.toDomain(topics)
}

// scanCatalogRow converts a joined database row to a catalog row
func (r *RepositoryRepoImpl) scanCatalogRow(row rowScanner) (*repo.CatalogRow, error) {
	var (
		dbRepo    repositoryRow
		topics    []string
		ownerName sql.NullString
		ownerURL  sql.NullString
	)

	scanDest := dbRepo.scanDest(&topics)
	scanDest = append(scanDest, &ownerName, &ownerURL)

	if err := row.Scan(scanDest...); err != nil {
		return nil, err
	}

	repository, err := dbRepo.toDomain(topics)
	if err != nil {
		return nil, err
	}

	catalogRow := &repo.CatalogRow{Repository: repository}
	if ownerName.Valid {
		catalogRow.OwnerName = &ownerName.String
	}
	if ownerURL.Valid {
		catalogRow.OwnerURL = &ownerURL.String
	}

	return catalogRow, nil
}

// repositoryRow mirrors the repositories table for scanning
type repositoryRow struct {
	id              string
	githubID        int64
	accountID       string
	orgID           sql.NullString
	name            string
	fullName        string
	url             string
	htmlURL         sql.NullString
	description     sql.NullString
	private         bool
	fork            bool
	archived        bool
	disabled        bool
	language        sql.NullString
	visibility      sql.NullString
	license         sql.NullString
	defaultBranch   sql.NullString
	stargazersCount int32
	watchersCount   int32
	forksCount      int32
	openIssuesCount int32
	size            int32
	homepage        sql.NullString
	pushedAt        sql.NullTime
	remoteUpdatedAt sql.NullTime
	included        bool
	commitCount     int
	issueCount      int
	pullRequestCnt  int
	createdAt       sql.NullTime
	updatedAt       sql.NullTime
}

func (d *repositoryRow) scanDest(topics *[]string) []any {
	return []any{
		&d.id, &d.githubID, &d.accountID, &d.orgID, &d.name, &d.fullName, &d.url,
		&d.htmlURL, &d.description, &d.private, &d.fork, &d.archived, &d.disabled,
		&d.language, &d.visibility, &d.license, &d.defaultBranch, pq.Array(topics),
		&d.stargazersCount, &d.watchersCount, &d.forksCount, &d.openIssuesCount,
		&d.size, &d.homepage, &d.pushedAt, &d.remoteUpdatedAt, &d.included,
		&d.commitCount, &d.issueCount, &d.pullRequestCnt, &d.createdAt, &d.updatedAt,
	}
}

func (d *repositoryRow) toDomain(topics []string) (*repo.Repository, error) {
	accountID, err := account.ParseAccountID(d.accountID)
	if err != nil {
		return nil, fmt.Errorf("invalid account ID: %w", err)
	}

	var orgID *org.OrganizationID
	if d.orgID.Valid {
		parsed, err := org.ParseOrganizationID(d.orgID.String)
		if err != nil {
			return nil, fmt.Errorf("invalid organization ID: %w", err)
		}
		orgID = &parsed
	}

	metadata := repo.Metadata{
		Description:     ptrString(d.description),
		HTMLURL:         ptrString(d.htmlURL),
		Private:         d.private,
		Fork:            d.fork,
		Archived:        d.archived,
		Disabled:        d.disabled,
		Language:        ptrString(d.language),
		Visibility:      d.visibility.String,
		License:         ptrString(d.license),
		DefaultBranch:   ptrString(d.defaultBranch),
		Topics:          topics,
		StargazersCount: d.stargazersCount,
		WatchersCount:   d.watchersCount,
		ForksCount:      d.forksCount,
		OpenIssuesCount: d.openIssuesCount,
		Size:            d.size,
		Homepage:        ptrString(d.homepage),
		PushedAt:        ptrTime(d.pushedAt),
		RemoteUpdatedAt: ptrTime(d.remoteUpdatedAt),
	}

	counts := repo.DetailCounts{
		Commits:      d.commitCount,
		Issues:       d.issueCount,
		PullRequests: d.pullRequestCnt,
	}

	return repo.Reconstitute(
		d.id,
		accountID,
		d.githubID,
		d.name,
		d.fullName,
		d.url,
		orgID,
		metadata,
		d.included,
		counts,
		d.createdAt.Time,
		d.updatedAt.Time,
	)
}

// Null helpers

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func ptrString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func ptrTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
