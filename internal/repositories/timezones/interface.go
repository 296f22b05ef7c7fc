package timezones

//go:generate mockgen -destination=mock/mock.go -package=mocktimezones -source=interface.go

import (
	"context"

	"github.com/ExoCode33/bp-idolls-guild-manager/internal/entities"
)

// Repository persists one timezone assignment per member, keyed by the
// member's ID alone. Assignments are upserted, never historized.
type Repository interface {
	// Upsert stores or replaces the member's timezone
	Upsert(ctx context.Context, ownerID, zoneID string) error

	// Get retrieves the member's timezone assignment
	Get(ctx context.Context, ownerID string) (*entities.TimezoneAssignment, error)

	// All returns every assignment; used by the roster push
	All(ctx context.Context) ([]*entities.TimezoneAssignment, error)
}
