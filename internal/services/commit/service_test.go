package commit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/ExoCode33/bp-idolls-guild-manager/internal/entities"
	apperr "github.com/ExoCode33/bp-idolls-guild-manager/internal/errors"
	"github.com/ExoCode33/bp-idolls-guild-manager/internal/repositories/characters"
	"github.com/ExoCode33/bp-idolls-guild-manager/internal/repositories/timezones"
	"github.com/ExoCode33/bp-idolls-guild-manager/internal/repositories/wizardsessions"
)

type countingNotifier struct {
	count int
}

func (n *countingNotifier) NotifyChanged() { n.count++ }

type CommitSuite struct {
	suite.Suite
	ctx      context.Context
	chars    *characters.InMemoryRepository
	tzs      *timezones.InMemoryRepository
	sessions *wizardsessions.InMemoryRepository
	notifier *countingNotifier
	svc      Service
}

func (s *CommitSuite) SetupTest() {
	s.ctx = context.Background()
	s.chars = characters.NewInMemoryRepository()
	s.tzs = timezones.NewInMemoryRepository()
	s.sessions = wizardsessions.NewInMemory(nil)
	s.notifier = &countingNotifier{}
	s.svc = NewService(&ServiceConfig{
		Characters: s.chars,
		Timezones:  s.tzs,
		Sessions:   s.sessions,
		Notifier:   s.notifier,
	})
}

func TestCommitSuite(t *testing.T) {
	suite.Run(t, new(CommitSuite))
}

func (s *CommitSuite) mainSession() *entities.WizardSession {
	return &entities.WizardSession{
		ActorID:  "member-1",
		TargetID: "member-1",
		Kind:     entities.WizardKindNewMain,
		Step:     entities.StepSubmitIGN,
		Collected: entities.CollectedFields{
			Class:       "Frost Mage",
			Subclass:    "Icicle",
			Role:        "DPS",
			BattlePower: 21000,
			Guild:       "iDolls",
			Timezone:    "Asia/Tokyo",
			IGN:         "FrostyOne",
		},
	}
}

func (s *CommitSuite) TestCommitMain() {
	session := s.mainSession()
	s.Require().NoError(s.sessions.Put(s.ctx, session))

	character, err := s.svc.Commit(s.ctx, session)
	s.Require().NoError(err)
	s.Equal(entities.CharacterTypeMain, character.Type)
	s.NotEmpty(character.ID)

	tz, err := s.tzs.Get(s.ctx, "member-1")
	s.Require().NoError(err)
	s.Equal("Asia/Tokyo", tz.ZoneID)

	// Session cleared, scheduler signalled
	_, err = s.sessions.Get(s.ctx, "member-1")
	s.True(apperr.IsNotFound(err))
	s.Equal(1, s.notifier.count)
}

func (s *CommitSuite) TestCommitSubclassLinksParent() {
	parent, err := s.chars.Upsert(s.ctx, &entities.Character{
		OwnerID: "member-1",
		IGN:     "FrostyOne",
		Type:    entities.CharacterTypeAlt,
		Class:   "Frost Mage",
	})
	s.Require().NoError(err)

	session := s.mainSession()
	session.Kind = entities.WizardKindNewSubclass
	session.Collected.IGN = "FrostySub"
	session.Collected.Timezone = ""
	session.Collected.ParentID = parent.ID
	session.Collected.ParentType = parent.Type

	character, err := s.svc.Commit(s.ctx, session)
	s.Require().NoError(err)

	// Subclass of an alt carries the alt-linked type
	s.Equal(entities.CharacterTypeSubclassOfAlt, character.Type)
	s.Equal(parent.ID, character.ParentID)
}

func (s *CommitSuite) TestCommitEditRename() {
	_, err := s.chars.Upsert(s.ctx, &entities.Character{
		OwnerID:     "member-1",
		IGN:         "FrostyOne",
		Type:        entities.CharacterTypeMain,
		Class:       "Frost Mage",
		Subclass:    "Icicle",
		Role:        "DPS",
		BattlePower: 21000,
	})
	s.Require().NoError(err)

	session := s.mainSession()
	session.Kind = entities.WizardKindEditField
	session.Collected.EditField = entities.EditFieldIGN
	session.Collected.EditIGN = "FrostyOne"
	session.Collected.IGN = "FrostyPrime"
	session.Collected.Timezone = ""

	_, err = s.svc.Commit(s.ctx, session)
	s.Require().NoError(err)

	_, err = s.chars.GetByOwnerAndIGN(s.ctx, "member-1", "FrostyOne")
	s.True(apperr.IsNotFound(err))

	renamed, err := s.chars.GetByOwnerAndIGN(s.ctx, "member-1", "FrostyPrime")
	s.Require().NoError(err)
	s.Equal(entities.CharacterTypeMain, renamed.Type)
}

func (s *CommitSuite) TestCommitEditRenameKeepsSubclassLinks() {
	parent, err := s.chars.Upsert(s.ctx, &entities.Character{
		OwnerID:     "member-1",
		IGN:         "FrostyOne",
		Type:        entities.CharacterTypeMain,
		Class:       "Frost Mage",
		Subclass:    "Icicle",
		Role:        "DPS",
		BattlePower: 21000,
	})
	s.Require().NoError(err)

	_, err = s.chars.InsertSubclass(s.ctx, &entities.Character{
		OwnerID:  "member-1",
		IGN:      "FrostySub",
		Type:     entities.CharacterTypeSubclassOfMain,
		Class:    "Frost Mage",
		Subclass: "Blizzard",
		Role:     "DPS",
		ParentID: parent.ID,
	})
	s.Require().NoError(err)

	session := s.mainSession()
	session.Kind = entities.WizardKindEditField
	session.Collected.EditField = entities.EditFieldIGN
	session.Collected.EditIGN = "FrostyOne"
	session.Collected.IGN = "FrostyPrime"
	session.Collected.Timezone = ""

	renamed, err := s.svc.Commit(s.ctx, session)
	s.Require().NoError(err)

	// The rename keeps the record's ID, so the subclass link holds
	s.Equal(parent.ID, renamed.ID)

	count, err := s.chars.CountSubclasses(s.ctx, renamed.ID)
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *CommitSuite) TestCommitFailureLeavesSession() {
	session := s.mainSession()
	session.Kind = entities.WizardKindEditField
	session.Collected.EditIGN = "Nobody" // no such record
	s.Require().NoError(s.sessions.Put(s.ctx, session))

	_, err := s.svc.Commit(s.ctx, session)
	s.True(apperr.IsNotFound(err))

	// The member can retry: nothing was cleared or signalled
	_, err = s.sessions.Get(s.ctx, "member-1")
	s.NoError(err)
	s.Equal(0, s.notifier.count)
}

func TestRosterSource(t *testing.T) {
	ctx := context.Background()
	chars := characters.NewInMemoryRepository()
	tzs := timezones.NewInMemoryRepository()

	seed := func(ownerID, ign string) {
		_, err := chars.Upsert(ctx, &entities.Character{
			OwnerID: ownerID,
			IGN:     ign,
			Type:    entities.CharacterTypeMain,
			Class:   "Frost Mage",
		})
		if err != nil {
			t.Fatalf("seed %s/%s: %v", ownerID, ign, err)
		}
	}
	seed("owner-2", "Zeta")
	seed("owner-1", "beta")
	seed("owner-1", "Alpha")

	if err := tzs.Upsert(ctx, "owner-1", "Asia/Tokyo"); err != nil {
		t.Fatal(err)
	}

	entries, err := NewRosterSource(chars, tzs).Roster(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	// Ordered by owner then case-insensitive IGN
	got := []string{
		entries[0].Character.IGN,
		entries[1].Character.IGN,
		entries[2].Character.IGN,
	}
	want := []string{"Alpha", "beta", "Zeta"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order mismatch: got %v, want %v", got, want)
		}
	}

	// Timezone joined by owner; owners without one get an empty zone
	if entries[0].Timezone != "Asia/Tokyo" {
		t.Fatalf("expected timezone join, got %q", entries[0].Timezone)
	}
	if entries[2].Timezone != "" {
		t.Fatalf("expected empty timezone, got %q", entries[2].Timezone)
	}
}
