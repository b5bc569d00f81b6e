package repo

import (
	"gitpulse-core/internal/domain/events"
)

// Event types
const (
	EventTypeRepositoriesSynced = "repository.synced"
	EventTypeInclusionChanged   = "repository.inclusion_changed"
)

// RepositoriesSyncedEvent is raised when repositories are synced from GitHub
type RepositoriesSyncedEvent struct {
	events.BaseEvent
	AccountID       string
	RepositoryCount int
	AnomalyCount    int
}

// NewRepositoriesSyncedEvent creates a new RepositoriesSyncedEvent
func NewRepositoriesSyncedEvent(accountID string, repoCount, anomalyCount int) *RepositoriesSyncedEvent {
	return &RepositoriesSyncedEvent{
		BaseEvent:       events.NewBaseEvent(EventTypeRepositoriesSynced, accountID),
		AccountID:       accountID,
		RepositoryCount: repoCount,
		AnomalyCount:    anomalyCount,
	}
}

// InclusionChangedEvent is raised when a repository's inclusion flag toggles
type InclusionChangedEvent struct {
	events.BaseEvent
	RepositoryID string
	Included     bool
}

// NewInclusionChangedEvent creates a new InclusionChangedEvent
func NewInclusionChangedEvent(repoID string, included bool) *InclusionChangedEvent {
	return &InclusionChangedEvent{
		BaseEvent:    events.NewBaseEvent(EventTypeInclusionChanged, repoID),
		RepositoryID: repoID,
		Included:     included,
	}
}
