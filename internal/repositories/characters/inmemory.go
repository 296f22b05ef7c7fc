package characters

import (
	"context"
	"strings"
	"sync"

	"github.com/ExoCode33/bp-idolls-guild-manager/internal/entities"
	apperr "github.com/ExoCode33/bp-idolls-guild-manager/internal/errors"
	"github.com/ExoCode33/bp-idolls-guild-manager/internal/uuid"
)

// InMemoryRepository is an in-memory implementation of the character
// repository, used when no Redis is configured and in tests.
type InMemoryRepository struct {
	mu           sync.RWMutex
	byKey        map[string]*entities.Character // natural key -> record
	uuidGen      uuid.Generator
	timeProvider TimeProvider
}

// NewInMemoryRepository creates a new in-memory character repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byKey:        make(map[string]*entities.Character),
		uuidGen:      uuid.NewGoogleUUIDGenerator(),
		timeProvider: realTime{},
	}
}

func naturalKey(ownerID, ign string) string {
	return ownerID + "|" + strings.ToLower(ign)
}

func validateRecord(character *entities.Character) error {
	if character == nil {
		return apperr.InvalidArgument("character cannot be nil")
	}
	if character.OwnerID == "" {
		return apperr.InvalidArgument("owner ID is required")
	}
	if strings.TrimSpace(character.IGN) == "" {
		return apperr.InvalidArgument("IGN is required")
	}
	return nil
}

// Upsert inserts or overwrites by natural key
func (r *InMemoryRepository) Upsert(ctx context.Context, character *entities.Character) (*entities.Character, error) {
	if err := validateRecord(character); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.timeProvider.Now()
	key := naturalKey(character.OwnerID, character.IGN)

	if existing, ok := r.byKey[key]; ok {
		existing.Class = character.Class
		existing.Subclass = character.Subclass
		existing.Role = character.Role
		existing.BattlePower = character.BattlePower
		existing.Guild = character.Guild
		existing.UpdatedAt = now
		// Return a copy to avoid external modifications
		result := *existing
		return &result, nil
	}

	stored := *character
	if stored.ID == "" {
		stored.ID = r.uuidGen.New()
	}
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.byKey[key] = &stored
	result := stored
	return &result, nil
}

// InsertSubclass inserts a parent-linked subclass record
func (r *InMemoryRepository) InsertSubclass(ctx context.Context, character *entities.Character) (*entities.Character, error) {
	if err := validateRecord(character); err != nil {
		return nil, err
	}
	if character.ParentID == "" {
		return nil, apperr.InvalidArgument("parent ID is required for subclass records")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := naturalKey(character.OwnerID, character.IGN)
	if _, ok := r.byKey[key]; ok {
		return nil, apperr.AlreadyExistsf("character '%s' already registered", character.IGN).
			WithMeta("owner_id", character.OwnerID)
	}

	now := r.timeProvider.Now()
	stored := *character
	if stored.ID == "" {
		stored.ID = r.uuidGen.New()
	}
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.byKey[key] = &stored
	result := stored
	return &result, nil
}

// GetByOwnerAndIGN retrieves one character by natural key
func (r *InMemoryRepository) GetByOwnerAndIGN(ctx context.Context, ownerID, ign string) (*entities.Character, error) {
	if ownerID == "" {
		return nil, apperr.InvalidArgument("owner ID is required")
	}
	if ign == "" {
		return nil, apperr.InvalidArgument("IGN is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	character, ok := r.byKey[naturalKey(ownerID, ign)]
	if !ok {
		return nil, apperr.NotFoundf("character '%s' not found", ign).
			WithMeta("owner_id", ownerID)
	}
	// Return a copy to avoid external modifications
	result := *character
	return &result, nil
}

// GetMain retrieves the owner's main character
func (r *InMemoryRepository) GetMain(ctx context.Context, ownerID string) (*entities.Character, error) {
	if ownerID == "" {
		return nil, apperr.InvalidArgument("owner ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, character := range r.byKey {
		if character.OwnerID == ownerID && character.Type == entities.CharacterTypeMain {
			result := *character
			return &result, nil
		}
	}
	return nil, apperr.NotFound("no main character registered").
		WithMeta("owner_id", ownerID)
}

// CountSubclasses reports how many subclasses link to the parent record
func (r *InMemoryRepository) CountSubclasses(ctx context.Context, parentID string) (int, error) {
	if parentID == "" {
		return 0, apperr.InvalidArgument("parent ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, character := range r.byKey {
		if character.ParentID == parentID {
			count++
		}
	}
	return count, nil
}

// Delete removes one character by natural key
func (r *InMemoryRepository) Delete(ctx context.Context, ownerID, ign string) error {
	if ownerID == "" {
		return apperr.InvalidArgument("owner ID is required")
	}
	if ign == "" {
		return apperr.InvalidArgument("IGN is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := naturalKey(ownerID, ign)
	if _, ok := r.byKey[key]; !ok {
		return apperr.NotFoundf("character '%s' not found", ign).
			WithMeta("owner_id", ownerID)
	}
	delete(r.byKey, key)
	return nil
}

// ListAll returns every character
func (r *InMemoryRepository) ListAll(ctx context.Context) ([]*entities.Character, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	characters := make([]*entities.Character, 0, len(r.byKey))
	for _, character := range r.byKey {
		// Copies, so a racing writer cannot tear a snapshot in flight
		result := *character
		characters = append(characters, &result)
	}
	return characters, nil
}
