package timezones

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ExoCode33/bp-idolls-guild-manager/internal/entities"
	apperr "github.com/ExoCode33/bp-idolls-guild-manager/internal/errors"
)

// Data is the serialized form of a timezone assignment in Redis
type Data struct {
	OwnerID   string    `json:"owner_id"`
	ZoneID    string    `json:"zone_id"`
	UpdatedAt time.Time `json:"updated_at"`
}

type redisRepo struct {
	client redis.UniversalClient
}

// NewRedis creates a Redis-backed timezone repository
func NewRedis(client redis.UniversalClient) Repository {
	return &redisRepo{client: client}
}

const timezoneIndexKey = "timezones:index"

func timezoneKey(ownerID string) string {
	return fmt.Sprintf("timezone:%s", ownerID)
}

func (r *redisRepo) Upsert(ctx context.Context, ownerID, zoneID string) error {
	if ownerID == "" {
		return apperr.InvalidArgument("owner ID is required")
	}
	if zoneID == "" {
		return apperr.InvalidArgument("zone ID is required")
	}

	jsonData, err := json.Marshal(Data{
		OwnerID:   ownerID,
		ZoneID:    zoneID,
		UpdatedAt: time.Now(),
	})
	if err != nil {
		return apperr.Wrap(err, "failed to marshal timezone data")
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, timezoneKey(ownerID), string(jsonData), 0)
	pipe.SAdd(ctx, timezoneIndexKey, ownerID)
	if _, err := pipe.Exec(ctx); err != nil {
		return apperr.Wrap(err, "failed to set timezone in Redis").
			WithMeta("owner_id", ownerID)
	}
	return nil
}

func (r *redisRepo) Get(ctx context.Context, ownerID string) (*entities.TimezoneAssignment, error) {
	if ownerID == "" {
		return nil, apperr.InvalidArgument("owner ID is required")
	}

	jsonData, err := r.client.Get(ctx, timezoneKey(ownerID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperr.NotFound("no timezone assigned").
				WithMeta("owner_id", ownerID)
		}
		return nil, apperr.Wrap(err, "failed to get timezone from Redis").
			WithMeta("owner_id", ownerID)
	}

	var data Data
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, apperr.Wrap(err, "failed to unmarshal timezone data")
	}
	return &entities.TimezoneAssignment{
		OwnerID:   data.OwnerID,
		ZoneID:    data.ZoneID,
		UpdatedAt: data.UpdatedAt,
	}, nil
}

func (r *redisRepo) All(ctx context.Context) ([]*entities.TimezoneAssignment, error) {
	ownerIDs, err := r.client.SMembers(ctx, timezoneIndexKey).Result()
	if err != nil {
		return nil, apperr.Wrap(err, "failed to list timezones from Redis")
	}

	assignments := make([]*entities.TimezoneAssignment, 0, len(ownerIDs))
	for _, ownerID := range ownerIDs {
		assignment, err := r.Get(ctx, ownerID)
		if err != nil {
			if apperr.IsNotFound(err) {
				continue // index member outlived its record
			}
			return nil, err
		}
		assignments = append(assignments, assignment)
	}
	return assignments, nil
}
