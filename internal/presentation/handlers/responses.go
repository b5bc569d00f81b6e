package handlers

import (
	"gitpulse-core/internal/middleware"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// principalFrom extracts the authenticated principal stored by the auth
// middleware. The bool is false when the request was not authenticated.
func principalFrom(c *gin.Context) (*middleware.Principal, bool) {
	value, exists := c.Get(middleware.ContextKeyPrincipal)
	if !exists {
		return nil, false
	}

	principal, ok := value.(*middleware.Principal)
	if !ok {
		return nil, false
	}

	return principal, true
}
