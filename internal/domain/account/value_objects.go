package account

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// AccountID is a value object representing a local account identifier
type AccountID struct {
	value uuid.UUID
}

// NewAccountID creates a new AccountID
func NewAccountID() AccountID {
	return AccountID{value: uuid.New()}
}

// ParseAccountID parses a string into an AccountID
func ParseAccountID(id string) (AccountID, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return AccountID{}, fmt.Errorf("invalid account ID format: %w", err)
	}
	return AccountID{value: uid}, nil
}

func (id AccountID) String() string {
	return id.value.String()
}

func (id AccountID) UUID() uuid.UUID {
	return id.value
}

func (id AccountID) Equals(other AccountID) bool {
	return id.value == other.value
}

// ExternalID is a value object representing the identity provider's user ID
type ExternalID struct {
	value string
}

// NewExternalID creates a new ExternalID with validation
func NewExternalID(id string) (ExternalID, error) {
	id = strings.TrimSpace(id)

	if id == "" {
		return ExternalID{}, fmt.Errorf("external ID cannot be empty")
	}

	return ExternalID{value: id}, nil
}

func (e ExternalID) String() string {
	return e.value
}

func (e ExternalID) Equals(other ExternalID) bool {
	return e.value == other.value
}
