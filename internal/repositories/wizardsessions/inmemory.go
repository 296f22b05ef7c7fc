package wizardsessions

import (
	"context"
	"sync"
	"time"

	"github.com/ExoCode33/bp-idolls-guild-manager/internal/entities"
	apperr "github.com/ExoCode33/bp-idolls-guild-manager/internal/errors"
)

// DefaultTTL is how long an untouched session survives
const DefaultTTL = 30 * time.Minute

// InMemoryConfig holds configuration for the in-memory session store
type InMemoryConfig struct {
	TTL          time.Duration // defaults to DefaultTTL
	TimeProvider TimeProvider  // defaults to the real clock
}

// InMemoryRepository is an in-memory implementation of the session store.
// Reads and writes for different actors never block each other beyond the
// map lock; Sweep is safe to interleave with concurrent use because expiry
// is judged on the last-write timestamp alone.
type InMemoryRepository struct {
	mu           sync.RWMutex
	sessions     map[string]*entities.WizardSession
	ttl          time.Duration
	timeProvider TimeProvider
}

// NewInMemory creates a new in-memory session store
func NewInMemory(cfg *InMemoryConfig) *InMemoryRepository {
	ttl := DefaultTTL
	var tp TimeProvider = RealTime()
	if cfg != nil {
		if cfg.TTL > 0 {
			ttl = cfg.TTL
		}
		if cfg.TimeProvider != nil {
			tp = cfg.TimeProvider
		}
	}
	return &InMemoryRepository{
		sessions:     make(map[string]*entities.WizardSession),
		ttl:          ttl,
		timeProvider: tp,
	}
}

// Put stores or replaces the actor's session
func (r *InMemoryRepository) Put(ctx context.Context, session *entities.WizardSession) error {
	if session == nil {
		return apperr.InvalidArgument("session cannot be nil")
	}
	if session.ActorID == "" {
		return apperr.InvalidArgument("actor ID is required")
	}

	session.Touch(r.timeProvider.Now())

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ActorID] = session
	return nil
}

// Get retrieves the actor's live session
func (r *InMemoryRepository) Get(ctx context.Context, actorID string) (*entities.WizardSession, error) {
	if actorID == "" {
		return nil, apperr.InvalidArgument("actor ID is required")
	}

	r.mu.RLock()
	session, exists := r.sessions[actorID]
	r.mu.RUnlock()

	if !exists {
		return nil, apperr.NotFound("no wizard session in progress").
			WithMeta("actor_id", actorID)
	}

	if session.Expired(r.ttl, r.timeProvider.Now()) {
		r.mu.Lock()
		delete(r.sessions, actorID)
		r.mu.Unlock()
		return nil, apperr.NotFound("wizard session expired").
			WithMeta("actor_id", actorID)
	}

	return session, nil
}

// Remove deletes the actor's session
func (r *InMemoryRepository) Remove(ctx context.Context, actorID string) error {
	if actorID == "" {
		return apperr.InvalidArgument("actor ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, actorID)
	return nil
}

// Sweep drops sessions idle past the TTL
func (r *InMemoryRepository) Sweep(ctx context.Context) (int, error) {
	now := r.timeProvider.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, session := range r.sessions {
		if session.Expired(r.ttl, now) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed, nil
}
