package org

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// OrganizationID is a value object representing an organization's unique identifier
type OrganizationID struct {
	value uuid.UUID
}

// NewOrganizationID creates a new OrganizationID
func NewOrganizationID() OrganizationID {
	return OrganizationID{value: uuid.New()}
}

// ParseOrganizationID parses a string into an OrganizationID
func ParseOrganizationID(id string) (OrganizationID, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return OrganizationID{}, fmt.Errorf("invalid organization ID format: %w", err)
	}
	return OrganizationID{value: uid}, nil
}

func (id OrganizationID) String() string {
	return id.value.String()
}

func (id OrganizationID) UUID() uuid.UUID {
	return id.value
}

func (id OrganizationID) Equals(other OrganizationID) bool {
	return id.value == other.value
}

// GitHubID is a value object representing a GitHub organization ID
type GitHubID struct {
	value int64
}

// NewGitHubID creates a new GitHubID with validation
func NewGitHubID(id int64) (GitHubID, error) {
	if id <= 0 {
		return GitHubID{}, fmt.Errorf("GitHub ID must be positive")
	}
	return GitHubID{value: id}, nil
}

func (g GitHubID) Int64() int64 {
	return g.value
}

func (g GitHubID) Equals(other GitHubID) bool {
	return g.value == other.value
}

// Name is a value object representing an organization login name
type Name struct {
	value string
}

// NewName creates a new Name with validation
func NewName(name string) (Name, error) {
	name = strings.TrimSpace(name)

	if name == "" {
		return Name{}, fmt.Errorf("organization name cannot be empty")
	}

	if len(name) > 100 {
		return Name{}, fmt.Errorf("organization name too long (max 100 characters)")
	}

	return Name{value: name}, nil
}

func (n Name) String() string {
	return n.value
}

func (n Name) Equals(other Name) bool {
	return n.value == other.value
}

// URL is a value object representing an organization URL
type URL struct {
	value string
}

// NewURL creates a new URL with validation
func NewURL(url string) (URL, error) {
	url = strings.TrimSpace(url)

	if url == "" {
		return URL{}, fmt.Errorf("organization URL cannot be empty")
	}

	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return URL{}, fmt.Errorf("organization URL must be a valid HTTP(S) URL")
	}

	return URL{value: url}, nil
}

func (u URL) String() string {
	return u.value
}

func (u URL) Equals(other URL) bool {
	return u.value == other.value
}
