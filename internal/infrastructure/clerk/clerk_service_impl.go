package clerk

import (
	"context"
	"fmt"

	"gitpulse-core/internal/application/service"
	"gitpulse-core/internal/clerk"
)

// ClerkServiceImpl implements the application service.IdentityService interface
type ClerkServiceImpl struct {
	client *clerk.Client
}

// NewClerkService creates a new Clerk service implementation
func NewClerkService(client *clerk.Client) service.IdentityService {
	return &ClerkServiceImpl{client: client}
}

// GetUser fetches user data from Clerk
func (c *ClerkServiceImpl) GetUser(ctx context.Context, externalID string) (*service.IdentityUserData, error) {
	user, err := c.client.GetUser(ctx, externalID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user from Clerk: %w", err)
	}

	return &service.IdentityUserData{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
	}, nil
}

// GetGitHubAccessToken fetches the user's GitHub OAuth token from Clerk
func (c *ClerkServiceImpl) GetGitHubAccessToken(ctx context.Context, externalID string) (string, error) {
	token, err := c.client.GetGitHubAccessToken(ctx, externalID)
	if err != nil {
		return "", fmt.Errorf("failed to get github token from Clerk: %w", err)
	}
	return token, nil
}
