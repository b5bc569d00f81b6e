package clerk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"gitpulse-core/internal/config"
)

// Client represents a Clerk API client
type Client struct {
	apiURL     string
	secretKey  string
	httpClient *http.Client
}

// NewClient creates a new Clerk API client
func NewClient(cfg *config.ClerkConfig) *Client {
	return &Client{
		apiURL:    cfg.APIURL,
		secretKey: cfg.SecretKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// User represents a user from Clerk API
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email_address"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EmailAddress represents an email address from Clerk API
type EmailAddress struct {
	ID           string `json:"id"`
	EmailAddress string `json:"email_address"`
}

// userResponse represents the raw user payload from Clerk API
type userResponse struct {
	ID             string         `json:"id"`
	Username       string         `json:"username"`
	EmailAddresses []EmailAddress `json:"email_addresses"`
	CreatedAt      int64          `json:"created_at"`
	UpdatedAt      int64          `json:"updated_at"`
}

// oauthTokenResponse represents one entry of the OAuth access token listing
type oauthTokenResponse struct {
	Provider string `json:"provider"`
	Token    string `json:"token"`
}

// GetUser fetches a user by ID from Clerk API
func (c *Client) GetUser(ctx context.Context, userID string) (*User, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/users/%s", c.apiURL, userID))
	if err != nil {
		return nil, err
	}

	var raw userResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	// Extract email from email_addresses array
	email := ""
	if len(raw.EmailAddresses) > 0 {
		email = raw.EmailAddresses[0].EmailAddress
	}

	return &User{
		ID:        raw.ID,
		Email:     email,
		Username:  raw.Username,
		CreatedAt: time.Unix(raw.CreatedAt/1000, 0),
		UpdatedAt: time.Unix(raw.UpdatedAt/1000, 0),
	}, nil
}

// GetGitHubAccessToken fetches the GitHub OAuth access token for a user.
// Clerk stores provider tokens per user when the account is connected via
// the GitHub social connection.
func (c *Client) GetGitHubAccessToken(ctx context.Context, userID string) (string, error) {
	url := fmt.Sprintf("%s/users/%s/oauth_access_tokens/oauth_github", c.apiURL, userID)

	body, err := c.get(ctx, url)
	if err != nil {
		return "", err
	}

	var tokens []oauthTokenResponse
	if err := json.Unmarshal(body, &tokens); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(tokens) == 0 || tokens[0].Token == "" {
		return "", fmt.Errorf("no github access token found for user %s", userID)
	}

	return tokens[0].Token, nil
}

// get issues an authenticated GET request against the Clerk API
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("clerk API error: %d - %s", resp.StatusCode, string(body))
	}

	return body, nil
}
