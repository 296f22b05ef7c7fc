package characters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/ExoCode33/bp-idolls-guild-manager/internal/entities"
	apperr "github.com/ExoCode33/bp-idolls-guild-manager/internal/errors"
)

type InMemoryRepoTestSuite struct {
	suite.Suite
	repo *InMemoryRepository
}

func (s *InMemoryRepoTestSuite) SetupTest() {
	s.repo = NewInMemoryRepository()
}

func TestInMemoryRepoTestSuite(t *testing.T) {
	suite.Run(t, new(InMemoryRepoTestSuite))
}

func (s *InMemoryRepoTestSuite) mainCharacter() *entities.Character {
	return &entities.Character{
		OwnerID:     "owner-1",
		IGN:         "FrostyOne",
		Type:        entities.CharacterTypeMain,
		Class:       "Frost Mage",
		Subclass:    "Icicle",
		Role:        "DPS",
		BattlePower: 21000,
		Guild:       "iDolls",
	}
}

func (s *InMemoryRepoTestSuite) TestUpsertInsert() {
	ctx := context.Background()

	stored, err := s.repo.Upsert(ctx, s.mainCharacter())
	s.Require().NoError(err)
	s.NotEmpty(stored.ID)
	s.False(stored.CreatedAt.IsZero())

	got, err := s.repo.GetByOwnerAndIGN(ctx, "owner-1", "FrostyOne")
	s.Require().NoError(err)
	s.Equal(stored.ID, got.ID)
}

func (s *InMemoryRepoTestSuite) TestUpsertConflictOverwrites() {
	ctx := context.Background()

	first, err := s.repo.Upsert(ctx, s.mainCharacter())
	s.Require().NoError(err)

	update := s.mainCharacter()
	update.Class = "Iron Vanguard"
	update.Subclass = "Bulwark"
	update.Role = "Tank"
	update.BattlePower = 25000
	update.Guild = ""

	second, err := s.repo.Upsert(ctx, update)
	s.Require().NoError(err)

	// Identity survives, attributes are replaced
	s.Equal(first.ID, second.ID)
	s.Equal(entities.CharacterTypeMain, second.Type)
	s.Equal("Iron Vanguard", second.Class)
	s.Equal(25000, second.BattlePower)
	s.Empty(second.Guild)
}

func (s *InMemoryRepoTestSuite) TestIGNIsCaseInsensitive() {
	ctx := context.Background()

	_, err := s.repo.Upsert(ctx, s.mainCharacter())
	s.Require().NoError(err)

	got, err := s.repo.GetByOwnerAndIGN(ctx, "owner-1", "frostyone")
	s.Require().NoError(err)
	s.Equal("FrostyOne", got.IGN)

	conflicting := s.mainCharacter()
	conflicting.IGN = "FROSTYONE"
	stored, err := s.repo.Upsert(ctx, conflicting)
	s.Require().NoError(err)
	s.Equal("FrostyOne", stored.IGN)
}

func (s *InMemoryRepoTestSuite) TestInsertSubclass() {
	ctx := context.Background()

	parent, err := s.repo.Upsert(ctx, s.mainCharacter())
	s.Require().NoError(err)

	sub := &entities.Character{
		OwnerID:     "owner-1",
		IGN:         "FrostyTwo",
		Type:        entities.CharacterTypeSubclassOfMain,
		Class:       "Frost Mage",
		Subclass:    "Blizzard",
		Role:        "DPS",
		BattlePower: 19000,
		ParentID:    parent.ID,
	}
	_, err = s.repo.InsertSubclass(ctx, sub)
	s.Require().NoError(err)

	count, err := s.repo.CountSubclasses(ctx, parent.ID)
	s.Require().NoError(err)
	s.Equal(1, count)

	// Insert-only: the same IGN cannot be registered twice
	_, err = s.repo.InsertSubclass(ctx, sub)
	s.True(apperr.IsAlreadyExists(err))

	// A missing parent link is rejected
	orphan := s.mainCharacter()
	orphan.IGN = "Orphan"
	orphan.ParentID = ""
	_, err = s.repo.InsertSubclass(ctx, orphan)
	s.Error(err)
}

func (s *InMemoryRepoTestSuite) TestGetMain() {
	ctx := context.Background()

	_, err := s.repo.GetMain(ctx, "owner-1")
	s.True(apperr.IsNotFound(err))

	alt := s.mainCharacter()
	alt.IGN = "FrostyAlt"
	alt.Type = entities.CharacterTypeAlt
	_, err = s.repo.Upsert(ctx, alt)
	s.Require().NoError(err)

	_, err = s.repo.GetMain(ctx, "owner-1")
	s.True(apperr.IsNotFound(err))

	_, err = s.repo.Upsert(ctx, s.mainCharacter())
	s.Require().NoError(err)

	main, err := s.repo.GetMain(ctx, "owner-1")
	s.Require().NoError(err)
	s.Equal("FrostyOne", main.IGN)
}

func (s *InMemoryRepoTestSuite) TestDelete() {
	ctx := context.Background()

	_, err := s.repo.Upsert(ctx, s.mainCharacter())
	s.Require().NoError(err)

	s.Require().NoError(s.repo.Delete(ctx, "owner-1", "FrostyOne"))

	_, err = s.repo.GetByOwnerAndIGN(ctx, "owner-1", "FrostyOne")
	s.True(apperr.IsNotFound(err))

	s.True(apperr.IsNotFound(s.repo.Delete(ctx, "owner-1", "FrostyOne")))
}

func (s *InMemoryRepoTestSuite) TestReturnsCopies() {
	ctx := context.Background()

	stored, err := s.repo.Upsert(ctx, s.mainCharacter())
	s.Require().NoError(err)

	// Mutating a returned record must not reach the store
	stored.Class = "Tampered"

	got, err := s.repo.GetByOwnerAndIGN(ctx, "owner-1", "FrostyOne")
	s.Require().NoError(err)
	s.Equal("Frost Mage", got.Class)

	got.BattlePower = 1

	list, err := s.repo.ListAll(ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(21000, list[0].BattlePower)

	list[0].IGN = "Hijacked"
	main, err := s.repo.GetMain(ctx, "owner-1")
	s.Require().NoError(err)
	s.Equal("FrostyOne", main.IGN)
}

func (s *InMemoryRepoTestSuite) TestListAll() {
	ctx := context.Background()

	list, err := s.repo.ListAll(ctx)
	s.Require().NoError(err)
	s.Empty(list)

	_, err = s.repo.Upsert(ctx, s.mainCharacter())
	s.Require().NoError(err)

	other := s.mainCharacter()
	other.OwnerID = "owner-2"
	_, err = s.repo.Upsert(ctx, other)
	s.Require().NoError(err)

	list, err = s.repo.ListAll(ctx)
	s.Require().NoError(err)
	s.Len(list, 2)
}
