package handlers

import (
	"net/http"

	"gitpulse-core/internal/application/service"

	"github.com/gin-gonic/gin"
)

// GitHubHandler handles GitHub synchronization HTTP requests
type GitHubHandler struct {
	syncService    *service.SyncService
	accountService *service.AccountService
}

// NewGitHubHandler creates a new GitHub handler
func NewGitHubHandler(syncService *service.SyncService, accountService *service.AccountService) *GitHubHandler {
	return &GitHubHandler{
		syncService:    syncService,
		accountService: accountService,
	}
}

// Sync handles POST /github/sync
// @Summary Sync organizations and repositories from GitHub
// @Description Fetches the caller's GitHub organizations and their repositories and persists them
// @Tags GitHub
// @Accept json
// @Produce json
// @Security ClerkAuth
// @Success 200 {object} dto.SyncResponse
// @Failure 401 {object} ErrorResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /github/sync [post]
func (h *GitHubHandler) Sync(c *gin.Context) {
	accountID, token, ok := h.resolveCaller(c)
	if !ok {
		return
	}

	response, err := h.syncService.SyncAll(c.Request.Context(), accountID, token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "sync_failed",
			Message: "Failed to sync organizations and repositories from GitHub",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListOrganizations handles GET /github/orgs
// @Summary List the caller's GitHub organizations
// @Description Returns the organizations visible to the caller's credential, persisting them locally
// @Tags GitHub
// @Accept json
// @Produce json
// @Security ClerkAuth
// @Success 200 {object} dto.OrganizationListResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /github/orgs [get]
func (h *GitHubHandler) ListOrganizations(c *gin.Context) {
	accountID, token, ok := h.resolveCaller(c)
	if !ok {
		return
	}

	response, err := h.syncService.ListOrganizations(c.Request.Context(), accountID, token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "fetch_failed",
			Message: "Failed to fetch organizations",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListOrganizationRepositories handles GET /github/orgs/:org/repos
// @Summary List an organization's repositories
// @Description Returns the remote repositories of the named organization without persisting them
// @Tags GitHub
// @Accept json
// @Produce json
// @Security ClerkAuth
// @Param org path string true "Organization login name"
// @Success 200 {array} dto.GitHubRepositoryResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /github/orgs/{org}/repos [get]
func (h *GitHubHandler) ListOrganizationRepositories(c *gin.Context) {
	orgName := c.Param("org")

	_, token, ok := h.resolveCaller(c)
	if !ok {
		return
	}

	response, err := h.syncService.ListOrganizationRepositories(c.Request.Context(), token, orgName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "fetch_failed",
			Message: "Failed to fetch repositories for organization " + orgName,
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// resolveCaller maps the authenticated principal to a local account ID and
// a GitHub credential, writing the error response itself when either step
// fails
func (h *GitHubHandler) resolveCaller(c *gin.Context) (string, string, bool) {
	principal, ok := principalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthenticated",
			Message: "User not found in context",
		})
		return "", "", false
	}

	localAccount, err := h.accountService.EnsureAccount(c.Request.Context(), principal.ExternalID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to resolve account",
			Details: err.Error(),
		})
		return "", "", false
	}

	token, err := h.accountService.GitHubAccessToken(c.Request.Context(), principal.ExternalID)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "github_not_connected",
			Message: "GitHub account not connected. Please connect your GitHub account in your user profile settings.",
			Details: err.Error(),
		})
		return "", "", false
	}

	return localAccount.ID().String(), token, true
}
