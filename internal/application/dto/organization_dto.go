package dto

// OrganizationResponse represents a persisted organization in API responses
type OrganizationResponse struct {
	ID          string `json:"id"`
	GitHubID    int64  `json:"github_id"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	ConnectedAt string `json:"connected_at"`
}

// OrganizationListResponse represents the list-organizations response
type OrganizationListResponse struct {
	Organizations []*OrganizationResponse `json:"organizations"`
}

// OwnerResponse is the minimal projection of a repository's owning organization
type OwnerResponse struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}
