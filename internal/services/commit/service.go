// Package commit turns a completed wizard session into durable roster
// records and signals the sync scheduler. It is the only writer of
// character and timezone records.
package commit

import (
	"context"
	"log"
	"sort"
	"strings"

	"github.com/ExoCode33/bp-idolls-guild-manager/internal/entities"
	apperr "github.com/ExoCode33/bp-idolls-guild-manager/internal/errors"
	"github.com/ExoCode33/bp-idolls-guild-manager/internal/repositories/characters"
	"github.com/ExoCode33/bp-idolls-guild-manager/internal/repositories/timezones"
	"github.com/ExoCode33/bp-idolls-guild-manager/internal/repositories/wizardsessions"
)

//go:generate mockgen -destination=mock/mock.go -package=mockcommit -source=service.go

// ChangeNotifier receives a signal after every successful commit.
// Implemented by the sync scheduler.
type ChangeNotifier interface {
	NotifyChanged()
}

// Service commits completed wizard sessions
type Service interface {
	// Commit persists the session's record(s), clears the session and
	// signals the notifier. On storage failure the session is left intact
	// so the member can retry.
	Commit(ctx context.Context, session *entities.WizardSession) (*entities.Character, error)
}

// ServiceConfig holds configuration for the commit service
type ServiceConfig struct {
	Characters characters.Repository
	Timezones  timezones.Repository
	Sessions   wizardsessions.Repository
	Notifier   ChangeNotifier // optional
}

type service struct {
	characters characters.Repository
	timezones  timezones.Repository
	sessions   wizardsessions.Repository
	notifier   ChangeNotifier
}

// NewService creates a new commit service
func NewService(cfg *ServiceConfig) Service {
	return &service{
		characters: cfg.Characters,
		timezones:  cfg.Timezones,
		sessions:   cfg.Sessions,
		notifier:   cfg.Notifier,
	}
}

// Commit persists the session's record(s)
func (s *service) Commit(ctx context.Context, session *entities.WizardSession) (*entities.Character, error) {
	if session == nil {
		return nil, apperr.InvalidArgument("session cannot be nil")
	}

	var (
		character *entities.Character
		err       error
	)
	switch session.Kind {
	case entities.WizardKindNewMain:
		character, err = s.upsertCharacter(ctx, session, entities.CharacterTypeMain)
	case entities.WizardKindNewAlt:
		character, err = s.upsertCharacter(ctx, session, entities.CharacterTypeAlt)
	case entities.WizardKindNewSubclass:
		character, err = s.insertSubclass(ctx, session)
	case entities.WizardKindEditField:
		character, err = s.applyEdit(ctx, session)
	default:
		return nil, apperr.InvalidArgumentf("unknown wizard kind '%s'", session.Kind)
	}
	if err != nil {
		return nil, err
	}

	// The timezone assignment is member-level and independent of the
	// character record
	if session.Collected.Timezone != "" {
		if err := s.timezones.Upsert(ctx, session.TargetID, session.Collected.Timezone); err != nil {
			return nil, err
		}
	}

	// The record is durable from here on: session cleanup and the sync
	// signal must not undo it
	if err := s.sessions.Remove(ctx, session.ActorID); err != nil {
		log.Printf("commit: failed to remove session for actor %s: %v", session.ActorID, err)
	}
	if s.notifier != nil {
		s.notifier.NotifyChanged()
	}
	return character, nil
}

func recordFromSession(session *entities.WizardSession, charType entities.CharacterType) *entities.Character {
	c := session.Collected
	return &entities.Character{
		OwnerID:     session.TargetID,
		IGN:         c.IGN,
		Type:        charType,
		Class:       c.Class,
		Subclass:    c.Subclass,
		Role:        c.Role,
		BattlePower: c.BattlePower,
		Guild:       c.Guild,
		ParentID:    c.ParentID,
	}
}

func (s *service) upsertCharacter(ctx context.Context, session *entities.WizardSession, charType entities.CharacterType) (*entities.Character, error) {
	character, err := s.characters.Upsert(ctx, recordFromSession(session, charType))
	if err != nil {
		return nil, apperr.Wrap(err, "failed to store character").
			WithMeta("owner_id", session.TargetID).
			WithMeta("ign", session.Collected.IGN)
	}
	return character, nil
}

func (s *service) insertSubclass(ctx context.Context, session *entities.WizardSession) (*entities.Character, error) {
	charType := entities.CharacterTypeSubclassOfMain
	if session.Collected.ParentType == entities.CharacterTypeAlt {
		charType = entities.CharacterTypeSubclassOfAlt
	}

	// The subclass cap was enforced before the wizard started; an insert
	// conflict here still surfaces as already_exists.
	character, err := s.characters.InsertSubclass(ctx, recordFromSession(session, charType))
	if err != nil {
		return nil, apperr.Wrap(err, "failed to store subclass").
			WithMeta("owner_id", session.TargetID).
			WithMeta("parent_id", session.Collected.ParentID)
	}
	return character, nil
}

// applyEdit overwrites one field group of an existing record. The wizard
// prefilled the session from the record at Begin, so the collected fields
// form a complete record again.
func (s *service) applyEdit(ctx context.Context, session *entities.WizardSession) (*entities.Character, error) {
	existing, err := s.characters.GetByOwnerAndIGN(ctx, session.TargetID, session.Collected.EditIGN)
	if err != nil {
		return nil, err
	}

	if session.Collected.EditField == entities.EditFieldTimezone {
		// Timezone lives on the member, not the character; nothing to
		// rewrite here.
		return existing, nil
	}

	record := recordFromSession(session, existing.Type)
	record.ParentID = existing.ParentID
	// The ID must survive the edit: subclass records link to their parent
	// by it, and a rename re-inserts under a new natural key
	record.ID = existing.ID

	// Renames move the record to a new natural key
	if !strings.EqualFold(record.IGN, existing.IGN) {
		if err := s.characters.Delete(ctx, session.TargetID, existing.IGN); err != nil {
			return nil, apperr.Wrap(err, "failed to remove renamed character").
				WithMeta("ign", existing.IGN)
		}
	}

	character, err := s.characters.Upsert(ctx, record)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to store character").
			WithMeta("owner_id", session.TargetID).
			WithMeta("ign", record.IGN)
	}
	return character, nil
}

// RosterSource joins characters with timezone assignments into the rows
// the sync scheduler pushes. It satisfies the scheduler's source contract.
type RosterSource struct {
	characters characters.Repository
	timezones  timezones.Repository
}

// NewRosterSource creates a roster source over the two repositories
func NewRosterSource(chars characters.Repository, tzs timezones.Repository) *RosterSource {
	return &RosterSource{characters: chars, timezones: tzs}
}

// Roster snapshots the full character set with timezones, ordered by owner
// then IGN so pushes are deterministic
func (r *RosterSource) Roster(ctx context.Context) ([]*entities.RosterEntry, error) {
	chars, err := r.characters.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	assignments, err := r.timezones.All(ctx)
	if err != nil {
		return nil, err
	}

	zoneByOwner := make(map[string]string, len(assignments))
	for _, a := range assignments {
		zoneByOwner[a.OwnerID] = a.ZoneID
	}

	entries := make([]*entities.RosterEntry, 0, len(chars))
	for _, c := range chars {
		entries = append(entries, &entities.RosterEntry{
			Character: c,
			Timezone:  zoneByOwner[c.OwnerID],
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i].Character, entries[j].Character
		if a.OwnerID != b.OwnerID {
			return a.OwnerID < b.OwnerID
		}
		return strings.ToLower(a.IGN) < strings.ToLower(b.IGN)
	})
	return entries, nil
}
