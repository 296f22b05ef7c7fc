package timezones

import (
	"context"
	"sync"
	"time"

	"github.com/ExoCode33/bp-idolls-guild-manager/internal/entities"
	apperr "github.com/ExoCode33/bp-idolls-guild-manager/internal/errors"
)

// InMemoryRepository is an in-memory implementation of the timezone
// repository
type InMemoryRepository struct {
	mu          sync.RWMutex
	assignments map[string]*entities.TimezoneAssignment
}

// NewInMemoryRepository creates a new in-memory timezone repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		assignments: make(map[string]*entities.TimezoneAssignment),
	}
}

// Upsert stores or replaces the member's timezone
func (r *InMemoryRepository) Upsert(ctx context.Context, ownerID, zoneID string) error {
	if ownerID == "" {
		return apperr.InvalidArgument("owner ID is required")
	}
	if zoneID == "" {
		return apperr.InvalidArgument("zone ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.assignments[ownerID] = &entities.TimezoneAssignment{
		OwnerID:   ownerID,
		ZoneID:    zoneID,
		UpdatedAt: time.Now(),
	}
	return nil
}

// Get retrieves the member's timezone assignment
func (r *InMemoryRepository) Get(ctx context.Context, ownerID string) (*entities.TimezoneAssignment, error) {
	if ownerID == "" {
		return nil, apperr.InvalidArgument("owner ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	assignment, ok := r.assignments[ownerID]
	if !ok {
		return nil, apperr.NotFound("no timezone assigned").
			WithMeta("owner_id", ownerID)
	}
	// Return a copy to avoid external modifications
	result := *assignment
	return &result, nil
}

// All returns every assignment
func (r *InMemoryRepository) All(ctx context.Context) ([]*entities.TimezoneAssignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	assignments := make([]*entities.TimezoneAssignment, 0, len(r.assignments))
	for _, a := range r.assignments {
		result := *a
		assignments = append(assignments, &result)
	}
	return assignments, nil
}
