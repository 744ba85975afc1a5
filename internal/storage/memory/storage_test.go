package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/gameapi-e2e/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) TestSaveAndGetFixture() {
	fixture := &model.Fixture{
		Kind:      model.FixturePlayer,
		ID:        "player-1",
		RunID:     "run-1",
		CreatedAt: time.Now(),
	}

	s.Require().NoError(s.storage.SaveFixture(s.ctx, fixture))

	got, err := s.storage.GetFixture(s.ctx, model.FixturePlayer, "player-1")
	s.Require().NoError(err)
	s.Equal(fixture.ID, got.ID)
	s.Equal(fixture.RunID, got.RunID)
}

func (s *StorageSuite) TestKindsDoNotCollide() {
	now := time.Now()
	s.Require().NoError(s.storage.SaveFixture(s.ctx, &model.Fixture{Kind: model.FixturePlayer, ID: "x", CreatedAt: now}))
	s.Require().NoError(s.storage.SaveFixture(s.ctx, &model.Fixture{Kind: model.FixtureTournament, ID: "x", PlayerID: "x", CreatedAt: now}))

	all, err := s.storage.ListFixtures(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 2)

	s.Require().NoError(s.storage.DeleteFixture(s.ctx, model.FixtureTournament, "x"))
	_, err = s.storage.GetFixture(s.ctx, model.FixturePlayer, "x")
	s.NoError(err)
}

func (s *StorageSuite) TestGetFixtureNotFound() {
	_, err := s.storage.GetFixture(s.ctx, model.FixturePlayer, "nonexistent")
	s.ErrorIs(err, model.ErrFixtureNotFound)
}

func (s *StorageSuite) TestDeleteFixtureIsIdempotent() {
	_ = s.storage.SaveFixture(s.ctx, &model.Fixture{Kind: model.FixturePlayer, ID: "p"})

	s.Require().NoError(s.storage.DeleteFixture(s.ctx, model.FixturePlayer, "p"))
	s.Require().NoError(s.storage.DeleteFixture(s.ctx, model.FixturePlayer, "p"))

	_, err := s.storage.GetFixture(s.ctx, model.FixturePlayer, "p")
	s.ErrorIs(err, model.ErrFixtureNotFound)
}

func (s *StorageSuite) TestListOrderedOldestFirst() {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	_ = s.storage.SaveFixture(s.ctx, &model.Fixture{Kind: model.FixtureTournament, ID: "t", CreatedAt: base.Add(2 * time.Second)})
	_ = s.storage.SaveFixture(s.ctx, &model.Fixture{Kind: model.FixturePlayer, ID: "p", CreatedAt: base})

	all, err := s.storage.ListFixtures(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal("p", all[0].ID)
	s.Equal("t", all[1].ID)
}

func (s *StorageSuite) TestListForRun() {
	_ = s.storage.SaveFixture(s.ctx, &model.Fixture{Kind: model.FixturePlayer, ID: "a", RunID: "run-1"})
	_ = s.storage.SaveFixture(s.ctx, &model.Fixture{Kind: model.FixturePlayer, ID: "b", RunID: "run-2"})

	fixtures, err := s.storage.ListFixturesForRun(s.ctx, "run-2")
	s.Require().NoError(err)
	s.Require().Len(fixtures, 1)
	s.Equal("b", fixtures[0].ID)
}

func (s *StorageSuite) TestReturnedFixturesAreCopies() {
	_ = s.storage.SaveFixture(s.ctx, &model.Fixture{Kind: model.FixturePlayer, ID: "p", RunID: "run-1"})

	got, _ := s.storage.GetFixture(s.ctx, model.FixturePlayer, "p")
	got.RunID = "mutated"

	again, _ := s.storage.GetFixture(s.ctx, model.FixturePlayer, "p")
	s.Equal("run-1", again.RunID)
}
