package wizardsessions

//go:generate mockgen -destination=mock/mock.go -package=mockwizardsessions -source=interface.go

import (
	"context"

	"github.com/ExoCode33/bp-idolls-guild-manager/internal/entities"
)

// Repository stores at most one in-progress wizard session per acting
// member. Put unconditionally replaces any prior session for the actor: a
// fresh wizard invocation abandons an in-progress one.
//
// Get returns a not_found error when no live session exists; expiry is a
// normal outcome there, not a failure.
type Repository interface {
	// Put stores or replaces the actor's session and refreshes its
	// last-write timestamp
	Put(ctx context.Context, session *entities.WizardSession) error

	// Get retrieves the actor's live session
	Get(ctx context.Context, actorID string) (*entities.WizardSession, error)

	// Remove deletes the actor's session; removing an absent session is not
	// an error
	Remove(ctx context.Context, actorID string) error

	// Sweep drops sessions idle past the TTL and reports how many it removed
	Sweep(ctx context.Context) (int, error)
}
