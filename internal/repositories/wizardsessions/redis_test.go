package wizardsessions

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/ExoCode33/bp-idolls-guild-manager/internal/entities"
	apperr "github.com/ExoCode33/bp-idolls-guild-manager/internal/errors"
)

type RedisRepoTestSuite struct {
	suite.Suite
	mockClient *redis.Client
	mock       redismock.ClientMock
	clock      *stubClock
	repo       Repository
}

func (s *RedisRepoTestSuite) SetupTest() {
	s.mockClient, s.mock = redismock.NewClientMock()
	s.clock = &stubClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	s.repo = NewRedis(&RedisConfig{
		Client:       s.mockClient,
		TTL:          10 * time.Minute,
		TimeProvider: s.clock,
	})
}

func (s *RedisRepoTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

func TestRedisRepoTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepoTestSuite))
}

func (s *RedisRepoTestSuite) TestPut() {
	ctx := context.Background()
	session := &entities.WizardSession{
		ActorID:  "actor-1",
		TargetID: "actor-1",
		Kind:     entities.WizardKindNewMain,
		Step:     entities.StepChooseClass,
	}

	expectedData, err := json.Marshal(Data{
		ActorID:   "actor-1",
		TargetID:  "actor-1",
		Kind:      entities.WizardKindNewMain,
		Step:      entities.StepChooseClass,
		UpdatedAt: s.clock.now,
	})
	s.Require().NoError(err)

	// Happy path
	s.mock.ExpectSet("wizard:session:actor-1", string(expectedData), 10*time.Minute).SetVal("OK")

	s.NoError(s.repo.Put(ctx, session))

	// Dependency error
	s.mock.ExpectSet("wizard:session:actor-1", string(expectedData), 10*time.Minute).SetErr(errors.New("redis error"))

	s.Error(s.repo.Put(ctx, session))

	// Input validation
	s.Error(s.repo.Put(ctx, nil))
	s.Error(s.repo.Put(ctx, &entities.WizardSession{}))
}

func (s *RedisRepoTestSuite) TestGet() {
	ctx := context.Background()
	jsonData, err := json.Marshal(Data{
		ActorID:   "actor-1",
		TargetID:  "actor-1",
		Kind:      entities.WizardKindEditField,
		Step:      entities.StepChooseField,
		Collected: entities.CollectedFields{EditIGN: "FrostyOne"},
		UpdatedAt: s.clock.now,
	})
	s.Require().NoError(err)

	// Happy path
	s.mock.ExpectGet("wizard:session:actor-1").SetVal(string(jsonData))

	session, err := s.repo.Get(ctx, "actor-1")
	s.Require().NoError(err)
	s.Equal(entities.WizardKindEditField, session.Kind)
	s.Equal("FrostyOne", session.Collected.EditIGN)

	// Missing key maps to not_found
	s.mock.ExpectGet("wizard:session:actor-1").RedisNil()

	_, err = s.repo.Get(ctx, "actor-1")
	s.True(apperr.IsNotFound(err))

	// Dependency error
	s.mock.ExpectGet("wizard:session:actor-1").SetErr(errors.New("redis error"))

	_, err = s.repo.Get(ctx, "actor-1")
	s.Error(err)
	s.False(apperr.IsNotFound(err))

	// Input validation
	_, err = s.repo.Get(ctx, "")
	s.Error(err)
}

func (s *RedisRepoTestSuite) TestRemove() {
	ctx := context.Background()

	s.mock.ExpectDel("wizard:session:actor-1").SetVal(1)
	s.NoError(s.repo.Remove(ctx, "actor-1"))

	// Input validation
	s.Error(s.repo.Remove(ctx, ""))
}

func (s *RedisRepoTestSuite) TestSweep() {
	// Redis expires keys on its own
	removed, err := s.repo.Sweep(context.Background())
	s.NoError(err)
	s.Equal(0, removed)
}
