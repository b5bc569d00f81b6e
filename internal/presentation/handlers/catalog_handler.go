package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"gitpulse-core/internal/application/dto"
	"gitpulse-core/internal/application/service"
	"gitpulse-core/internal/domain/repo"

	"github.com/gin-gonic/gin"
)

// CatalogHandler handles repository catalog HTTP requests
type CatalogHandler struct {
	catalogService *service.CatalogService
	accountService *service.AccountService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService, accountService *service.AccountService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		accountService: accountService,
	}
}

// GetCatalog handles GET /catalog/repos
// @Summary Get the paginated repository catalog
// @Description Returns one page of the caller's persisted repositories; included rows carry live detail counts
// @Tags Catalog
// @Accept json
// @Produce json
// @Security ClerkAuth
// @Param page query int false "Page number" default(1) minimum(1)
// @Param limit query int false "Items per page" default(10) minimum(1) maximum(100)
// @Success 200 {object} dto.CatalogResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /catalog/repos [get]
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	accountID, token, ok := h.resolveCaller(c)
	if !ok {
		return
	}

	page := 1
	limit := 10

	if pageStr := c.DefaultQuery("page", "1"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}

	if limitStr := c.DefaultQuery("limit", "10"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	response, err := h.catalogService.GetCatalogPage(
		c.Request.Context(),
		accountID,
		token,
		int32(page),
		int32(limit),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "fetch_failed",
			Message: "Failed to fetch repository catalog",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// ToggleInclusion handles PATCH /catalog/repos/:id/include
// @Summary Toggle a repository's inclusion flag
// @Description Sets whether the repository is enriched with live detail counts; enabling runs the enrichment once and persists the counts
// @Tags Catalog
// @Accept json
// @Produce json
// @Security ClerkAuth
// @Param id path string true "Repository ID"
// @Param request body dto.ToggleInclusionRequest true "Inclusion flag"
// @Success 200 {object} dto.RepositoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /catalog/repos/{id}/include [patch]
func (h *CatalogHandler) ToggleInclusion(c *gin.Context) {
	repositoryID := c.Param("id")

	var req dto.ToggleInclusionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Request body must be {\"include\": bool}",
			Details: err.Error(),
		})
		return
	}

	accountID, token, ok := h.resolveCaller(c)
	if !ok {
		return
	}

	response, err := h.catalogService.SetInclusion(
		c.Request.Context(),
		accountID,
		repositoryID,
		token,
		req.Include,
	)
	if err != nil {
		var domainErr *repo.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == "REPOSITORY_NOT_FOUND" {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Repository not found",
				Details: err.Error(),
			})
			return
		}

		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "toggle_failed",
			Message: "Failed to toggle repository inclusion",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// resolveCaller maps the authenticated principal to a local account ID and
// a GitHub credential
func (h *CatalogHandler) resolveCaller(c *gin.Context) (string, string, bool) {
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
