package wizardsessions

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ExoCode33/bp-idolls-guild-manager/internal/entities"
	apperr "github.com/ExoCode33/bp-idolls-guild-manager/internal/errors"
)

// Data is the serialized form of a wizard session in Redis
type Data struct {
	ActorID   string                   `json:"actor_id"`
	TargetID  string                   `json:"target_id"`
	Kind      entities.WizardKind      `json:"kind"`
	Step      entities.Step            `json:"step"`
	BackStack []entities.Step          `json:"back_stack,omitempty"`
	Collected entities.CollectedFields `json:"collected"`
	CreatedAt time.Time                `json:"created_at"`
	UpdatedAt time.Time                `json:"updated_at"`
}

// RedisConfig holds configuration for the Redis session store
type RedisConfig struct {
	Client       redis.UniversalClient
	TTL          time.Duration // defaults to DefaultTTL
	TimeProvider TimeProvider  // defaults to the real clock
}

type redisRepo struct {
	client       redis.UniversalClient
	ttl          time.Duration
	timeProvider TimeProvider
}

// NewRedis creates a Redis-backed session store. Sessions are written with
// the TTL as the key expiry, refreshed on every Put, so Sweep has nothing
// to do here.
func NewRedis(cfg *RedisConfig) Repository {
	ttl := DefaultTTL
	var tp TimeProvider = RealTime()
	if cfg.TTL > 0 {
		ttl = cfg.TTL
	}
	if cfg.TimeProvider != nil {
		tp = cfg.TimeProvider
	}
	return &redisRepo{
		client:       cfg.Client,
		ttl:          ttl,
		timeProvider: tp,
	}
}

func sessionKey(actorID string) string {
	return fmt.Sprintf("wizard:session:%s", actorID)
}

func (r *redisRepo) Put(ctx context.Context, session *entities.WizardSession) error {
	if session == nil {
		return apperr.InvalidArgument("session cannot be nil")
	}
	if session.ActorID == "" {
		return apperr.InvalidArgument("actor ID is required")
	}

	session.Touch(r.timeProvider.Now())

	jsonData, err := json.Marshal(toData(session))
	if err != nil {
		return apperr.Wrap(err, "failed to marshal session data")
	}

	if err := r.client.Set(ctx, sessionKey(session.ActorID), string(jsonData), r.ttl).Err(); err != nil {
		return apperr.Wrap(err, "failed to set session in Redis").
			WithMeta("actor_id", session.ActorID)
	}
	return nil
}

func (r *redisRepo) Get(ctx context.Context, actorID string) (*entities.WizardSession, error) {
	if actorID == "" {
		return nil, apperr.InvalidArgument("actor ID is required")
	}

	jsonData, err := r.client.Get(ctx, sessionKey(actorID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperr.NotFound("no wizard session in progress").
				WithMeta("actor_id", actorID)
		}
		return nil, apperr.Wrap(err, "failed to get session from Redis").
			WithMeta("actor_id", actorID)
	}

	var data Data
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, apperr.Wrap(err, "failed to unmarshal session data")
	}

	return toSession(&data), nil
}

func (r *redisRepo) Remove(ctx context.Context, actorID string) error {
	if actorID == "" {
		return apperr.InvalidArgument("actor ID is required")
	}

	if err := r.client.Del(ctx, sessionKey(actorID)).Err(); err != nil {
		return apperr.Wrap(err, "failed to delete session from Redis").
			WithMeta("actor_id", actorID)
	}
	return nil
}

// Sweep is a no-op: Redis expires session keys itself
func (r *redisRepo) Sweep(ctx context.Context) (int, error) {
	return 0, nil
}

func toData(session *entities.WizardSession) *Data {
	return &Data{
		ActorID:   session.ActorID,
		TargetID:  session.TargetID,
		Kind:      session.Kind,
		Step:      session.Step,
		BackStack: session.BackStack,
		Collected: session.Collected,
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
	}
}

func toSession(data *Data) *entities.WizardSession {
	return &entities.WizardSession{
		ActorID:   data.ActorID,
		TargetID:  data.TargetID,
		Kind:      data.Kind,
		Step:      data.Step,
		BackStack: data.BackStack,
		Collected: data.Collected,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
