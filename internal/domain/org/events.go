package org

import (
	"gitpulse-core/internal/domain/events"
)

// Event types
const (
	EventTypeOrganizationsSynced = "organization.synced"
)

// OrganizationsSyncedEvent is raised when organizations are synced from GitHub
type OrganizationsSyncedEvent struct {
	events.BaseEvent
	AccountID         string
	OrganizationCount int
}

// NewOrganizationsSyncedEvent creates a new OrganizationsSyncedEvent
func NewOrganizationsSyncedEvent(accountID string, count int) *OrganizationsSyncedEvent {
	return &OrganizationsSyncedEvent{
		BaseEvent:         events.NewBaseEvent(EventTypeOrganizationsSynced, accountID),
		AccountID:         accountID,
		OrganizationCount: count,
	}
}
