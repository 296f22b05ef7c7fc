package entities

import (
	"time"
)

// CharacterType distinguishes mains, alts and their subclasses
type CharacterType string

const (
	CharacterTypeMain           CharacterType = "main"
	CharacterTypeAlt            CharacterType = "alt"
	CharacterTypeSubclassOfMain CharacterType = "subclass_of_main"
	CharacterTypeSubclassOfAlt  CharacterType = "subclass_of_alt"
)

// IsSubclass returns true for subclass records
func (t CharacterType) IsSubclass() bool {
	return t == CharacterTypeSubclassOfMain || t == CharacterTypeSubclassOfAlt
}

// MaxSubclassesPerCharacter caps how many subclasses one parent may register
const MaxSubclassesPerCharacter = 3

// Character is one registered roster entry. The natural key is
// (OwnerID, IGN); the ID is only used for parent linkage.
type Character struct {
	ID          string        `json:"id"`
	OwnerID     string        `json:"owner_id"` // Discord member the record belongs to
	IGN         string        `json:"ign"`      // in-game name
	Type        CharacterType `json:"type"`
	Class       string        `json:"class"`
	Subclass    string        `json:"subclass"`
	Role        string        `json:"role"` // derived from Class, stored for query convenience
	BattlePower int           `json:"battle_power"`
	Guild       string        `json:"guild,omitempty"` // empty means no guild
	ParentID    string        `json:"parent_id,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// TimezoneAssignment records one member's timezone, independent of any
// character. Upserted, never historized.
type TimezoneAssignment struct {
	OwnerID   string    `json:"owner_id"`
	ZoneID    string    `json:"zone_id"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RosterEntry is one row of the full spreadsheet push: a character joined
// with its owner's timezone assignment (empty when none is set).
type RosterEntry struct {
	Character *Character
	Timezone  string
}
