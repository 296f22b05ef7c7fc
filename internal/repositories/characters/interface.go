package characters

//go:generate mockgen -destination=mock/mock.go -package=mockcharacters -source=interface.go

import (
	"context"

	"github.com/ExoCode33/bp-idolls-guild-manager/internal/entities"
)

// Repository persists registered characters. The natural key is
// (owner ID, IGN); IGN comparisons are case-insensitive.
type Repository interface {
	// Upsert inserts a character or, when the natural key already exists,
	// overwrites class, subclass, role, battle power and guild on the
	// existing record. Registration retries converge instead of duplicating.
	Upsert(ctx context.Context, character *entities.Character) (*entities.Character, error)

	// InsertSubclass inserts a subclass record linked to its parent.
	// Insert-only: an existing natural key is an already_exists error.
	InsertSubclass(ctx context.Context, character *entities.Character) (*entities.Character, error)

	// GetByOwnerAndIGN retrieves one character by natural key
	GetByOwnerAndIGN(ctx context.Context, ownerID, ign string) (*entities.Character, error)

	// GetMain retrieves the owner's main character
	GetMain(ctx context.Context, ownerID string) (*entities.Character, error)

	// CountSubclasses reports how many subclasses link to the parent record
	CountSubclasses(ctx context.Context, parentID string) (int, error)

	// Delete removes one character by natural key
	Delete(ctx context.Context, ownerID, ign string) error

	// ListAll returns every character; used by the roster push
	ListAll(ctx context.Context) ([]*entities.Character, error)
}
