package dto

// DetailCountsResponse holds the enrichment counts of a repository
type DetailCountsResponse struct {
	Commits      int `json:"commits"`
	Issues       int `json:"issues"`
	PullRequests int `json:"pull_requests"`
}

// RepositoryResponse represents repository data in API responses
type RepositoryResponse struct {
	ID            string                `json:"id"`
	GitHubID      int64                 `json:"github_id"`
	Name          string                `json:"name"`
	FullName      string                `json:"full_name"`
	Description   *string               `json:"description"`
	URL           string                `json:"url"`
	HTMLURL       *string               `json:"html_url"`
	Private       bool                  `json:"private"`
	Fork          bool                  `json:"fork"`
	Archived      bool                  `json:"archived"`
	Disabled      bool                  `json:"disabled"`
	Language      *string               `json:"language"`
	Visibility    string                `json:"visibility"`
	License       *string               `json:"license"`
	DefaultBranch *string               `json:"default_branch"`
	Topics        []string              `json:"topics"`
	Stars         int32                 `json:"stars"`
	Watchers      int32                 `json:"watchers"`
	Forks         int32                 `json:"forks"`
	OpenIssues    int32                 `json:"open_issues"`
	Homepage      *string               `json:"homepage"`
	Owner         *OwnerResponse        `json:"owner"`
	Included      bool                  `json:"included"`
	Counts        *DetailCountsResponse `json:"counts,omitempty"`
	CreatedAt     string                `json:"created_at"`
}

// CatalogResponse represents a paginated catalog page
type CatalogResponse struct {
	Repositories      []*RepositoryResponse `json:"repositories"`
	TotalRepositories int64                 `json:"total_repositories"`
	CurrentPage       int32                 `json:"current_page"`
	TotalPages        int64                 `json:"total_pages"`
}

// ToggleInclusionRequest is the body of the inclusion toggle operation
type ToggleInclusionRequest struct {
	Include bool `json:"include"`
}

// GitHubRepositoryResponse is a raw passthrough of a remote repository record
type GitHubRepositoryResponse struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	FullName      string   `json:"full_name"`
	OwnerLogin    string   `json:"owner_login"`
	Description   *string  `json:"description"`
	URL           string   `json:"url"`
	HTMLURL       string   `json:"html_url"`
	Private       bool     `json:"private"`
	Fork          bool     `json:"fork"`
	Language      *string  `json:"language"`
	Visibility    string   `json:"visibility"`
	DefaultBranch string   `json:"default_branch"`
	Topics        []string `json:"topics"`
	Stars         int32    `json:"stars"`
	Forks         int32    `json:"forks"`
	OpenIssues    int32    `json:"open_issues"`
}
