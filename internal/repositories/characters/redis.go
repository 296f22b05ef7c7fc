package characters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/ExoCode33/bp-idolls-guild-manager/internal/entities"
	apperr "github.com/ExoCode33/bp-idolls-guild-manager/internal/errors"
	"github.com/ExoCode33/bp-idolls-guild-manager/internal/uuid"
)

// CharacterData is the serialized form of a character in Redis
type CharacterData struct {
	ID          string                 `json:"id"`
	OwnerID     string                 `json:"owner_id"`
	IGN         string                 `json:"ign"`
	Type        entities.CharacterType `json:"type"`
	Class       string                 `json:"class"`
	Subclass    string                 `json:"subclass"`
	Role        string                 `json:"role"`
	BattlePower int                    `json:"battle_power"`
	Guild       string                 `json:"guild,omitempty"`
	ParentID    string                 `json:"parent_id,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// RedisRepoConfig holds configuration for the Redis character repository
type RedisRepoConfig struct {
	Client        redis.UniversalClient
	UUIDGenerator uuid.Generator
	TimeProvider  TimeProvider
}

type redisRepo struct {
	client       redis.UniversalClient
	uuidGen      uuid.Generator
	timeProvider TimeProvider
}

// NewRedis creates a Redis-backed character repository
func NewRedis(cfg *RedisRepoConfig) Repository {
	gen := cfg.UUIDGenerator
	if gen == nil {
		gen = uuid.NewGoogleUUIDGenerator()
	}
	tp := cfg.TimeProvider
	if tp == nil {
		tp = realTime{}
	}
	return &redisRepo{
		client:       cfg.Client,
		uuidGen:      gen,
		timeProvider: tp,
	}
}

const characterIndexKey = "characters:index"

func characterKey(ownerID, ign string) string {
	return fmt.Sprintf("character:%s:%s", ownerID, strings.ToLower(ign))
}

func ownerIndexKey(ownerID string) string {
	return fmt.Sprintf("owner:%s:characters", ownerID)
}

func subclassIndexKey(parentID string) string {
	return fmt.Sprintf("character:%s:subclasses", parentID)
}

func (r *redisRepo) Upsert(ctx context.Context, character *entities.Character) (*entities.Character, error) {
	if err := validateRecord(character); err != nil {
		return nil, err
	}

	now := r.timeProvider.Now()
	key := characterKey(character.OwnerID, character.IGN)

	stored := *character
	existing, err := r.getByKey(ctx, key)
	switch {
	case err == nil:
		// Overwrite the mutable attributes, keep identity and linkage
		stored.ID = existing.ID
		stored.Type = existing.Type
		stored.ParentID = existing.ParentID
		stored.CreatedAt = existing.CreatedAt
	case apperr.IsNotFound(err):
		if stored.ID == "" {
			stored.ID = r.uuidGen.New()
		}
		stored.CreatedAt = now
	default:
		return nil, err
	}
	stored.UpdatedAt = now

	if err := r.write(ctx, key, &stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *redisRepo) InsertSubclass(ctx context.Context, character *entities.Character) (*entities.Character, error) {
	if err := validateRecord(character); err != nil {
		return nil, err
	}
	if character.ParentID == "" {
		return nil, apperr.InvalidArgument("parent ID is required for subclass records")
	}

	key := characterKey(character.OwnerID, character.IGN)
	if _, err := r.getByKey(ctx, key); err == nil {
		return nil, apperr.AlreadyExistsf("character '%s' already registered", character.IGN).
			WithMeta("owner_id", character.OwnerID)
	} else if !apperr.IsNotFound(err) {
		return nil, err
	}

	now := r.timeProvider.Now()
	stored := *character
	if stored.ID == "" {
		stored.ID = r.uuidGen.New()
	}
	stored.CreatedAt = now
	stored.UpdatedAt = now

	if err := r.write(ctx, key, &stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *redisRepo) GetByOwnerAndIGN(ctx context.Context, ownerID, ign string) (*entities.Character, error) {
	if ownerID == "" {
		return nil, apperr.InvalidArgument("owner ID is required")
	}
	if ign == "" {
		return nil, apperr.InvalidArgument("IGN is required")
	}
	return r.getByKey(ctx, characterKey(ownerID, ign))
}

func (r *redisRepo) GetMain(ctx context.Context, ownerID string) (*entities.Character, error) {
	if ownerID == "" {
		return nil, apperr.InvalidArgument("owner ID is required")
	}

	keys, err := r.client.SMembers(ctx, ownerIndexKey(ownerID)).Result()
	if err != nil {
		return nil, apperr.Wrap(err, "failed to list owner characters").
			WithMeta("owner_id", ownerID)
	}

	for _, key := range keys {
		character, err := r.getByKey(ctx, key)
		if err != nil {
			if apperr.IsNotFound(err) {
				continue // index member outlived its record
			}
			return nil, err
		}
		if character.Type == entities.CharacterTypeMain {
			return character, nil
		}
	}
	return nil, apperr.NotFound("no main character registered").
		WithMeta("owner_id", ownerID)
}

func (r *redisRepo) CountSubclasses(ctx context.Context, parentID string) (int, error) {
	if parentID == "" {
		return 0, apperr.InvalidArgument("parent ID is required")
	}

	count, err := r.client.SCard(ctx, subclassIndexKey(parentID)).Result()
	if err != nil {
		return 0, apperr.Wrap(err, "failed to count subclasses").
			WithMeta("parent_id", parentID)
	}
	return int(count), nil
}

func (r *redisRepo) Delete(ctx context.Context, ownerID, ign string) error {
	if ownerID == "" {
		return apperr.InvalidArgument("owner ID is required")
	}
	if ign == "" {
		return apperr.InvalidArgument("IGN is required")
	}

	key := characterKey(ownerID, ign)
	character, err := r.getByKey(ctx, key)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, key)
	pipe.SRem(ctx, characterIndexKey, key)
	pipe.SRem(ctx, ownerIndexKey(ownerID), key)
	if character.ParentID != "" {
		pipe.SRem(ctx, subclassIndexKey(character.ParentID), key)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return apperr.Wrap(err, "failed to delete character from Redis").
			WithMeta("owner_id", ownerID)
	}
	return nil
}

func (r *redisRepo) ListAll(ctx context.Context) ([]*entities.Character, error) {
	keys, err := r.client.SMembers(ctx, characterIndexKey).Result()
	if err != nil {
		return nil, apperr.Wrap(err, "failed to list characters from Redis")
	}

	characters := make([]*entities.Character, len(keys))

	g, ctx := errgroup.WithContext(ctx)
	for i, key := range keys {
		i, key := i, key
		g.Go(func() error {
			character, err := r.getByKey(ctx, key)
			if err != nil {
				if apperr.IsNotFound(err) {
					return nil // index member outlived its record
				}
				return err
			}
			characters[i] = character
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Compact any holes left by stale index members
	result := characters[:0]
	for _, c := range characters {
		if c != nil {
			result = append(result, c)
		}
	}
	return result, nil
}

func (r *redisRepo) getByKey(ctx context.Context, key string) (*entities.Character, error) {
	jsonData, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperr.NotFound("character not found").WithMeta("key", key)
		}
		return nil, apperr.Wrap(err, "failed to get character from Redis").WithMeta("key", key)
	}

	var data CharacterData
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, apperr.Wrap(err, "failed to unmarshal character data")
	}
	return fromData(&data), nil
}

func (r *redisRepo) write(ctx context.Context, key string, character *entities.Character) error {
	jsonData, err := json.Marshal(toCharacterData(character))
	if err != nil {
		return apperr.Wrap(err, "failed to marshal character data")
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, key, string(jsonData), 0)
	pipe.SAdd(ctx, characterIndexKey, key)
	pipe.SAdd(ctx, ownerIndexKey(character.OwnerID), key)
	if character.ParentID != "" {
		pipe.SAdd(ctx, subclassIndexKey(character.ParentID), key)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return apperr.Wrap(err, "failed to write character to Redis").
			WithMeta("owner_id", character.OwnerID)
	}
	return nil
}

func toCharacterData(c *entities.Character) *CharacterData {
	return &CharacterData{
		ID:          c.ID,
		OwnerID:     c.OwnerID,
		IGN:         c.IGN,
		Type:        c.Type,
		Class:       c.Class,
		Subclass:    c.Subclass,
		Role:        c.Role,
		BattlePower: c.BattlePower,
		Guild:       c.Guild,
		ParentID:    c.ParentID,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func fromData(d *CharacterData) *entities.Character {
	return &entities.Character{
		ID:          d.ID,
		OwnerID:     d.OwnerID,
		IGN:         d.IGN,
		Type:        d.Type,
		Class:       d.Class,
		Subclass:    d.Subclass,
		Role:        d.Role,
		BattlePower: d.BattlePower,
		Guild:       d.Guild,
		ParentID:    d.ParentID,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
