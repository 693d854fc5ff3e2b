package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type StoreTestSuite struct {
	suite.Suite
	open  func(t *testing.T) Store
	store Store
	ctx   context.Context
	t0    time.Time
}

func (s *StoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = s.open(s.T())
	s.t0 = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
}

func (s *StoreTestSuite) TearDownTest() {
	s.NoError(s.store.Close())
}

func (s *StoreTestSuite) save(r Round) Round {
	s.Require().NoError(s.store.SaveRound(s.ctx, &r))
	s.Require().NotEmpty(r.ID)
	return r
}

func (s *StoreTestSuite) TestRecentRoundsNewestFirst() {
	anon := Owner{AnonID: "anon-1"}
	for i := 0; i < 5; i++ {
		s.save(Round{AnonID: "anon-1", Mode: ModeNormal, ButtonCount: i + 1, Won: true, FinishedAt: s.t0.Add(time.Duration(i) * time.Minute)})
	}
	s.save(Round{AnonID: "someone-else", Mode: ModeNormal, ButtonCount: 9, FinishedAt: s.t0})

	got, err := s.store.RecentRounds(s.ctx, anon, 3)
	s.Require().NoError(err)
	s.Require().Len(got, 3)
	s.Equal(5, got[0].ButtonCount)
	s.Equal(4, got[1].ButtonCount)
	s.Equal(3, got[2].ButtonCount)
}

func (s *StoreTestSuite) TestStats() {
	owner := Owner{AnonID: "a"}
	results := []struct {
		n   int
		won bool
	}{{3, true}, {5, false}, {4, true}, {6, true}}
	for i, r := range results {
		s.save(Round{AnonID: "a", Mode: ModeNormal, ButtonCount: r.n, Won: r.won, FinishedAt: s.t0.Add(time.Duration(i) * time.Minute)})
	}

	st, err := s.store.Stats(s.ctx, owner)
	s.Require().NoError(err)
	s.Equal(Stats{Played: 4, Wins: 3, Streak: 2, Best: 6}, st)

	empty, err := s.store.Stats(s.ctx, Owner{})
	s.Require().NoError(err)
	s.Equal(Stats{}, empty)
}

func (s *StoreTestSuite) TestUsers() {
	u := &User{Username: "Alice", PasswordHash: "hash", CreatedAt: s.t0}
	s.Require().NoError(s.store.CreateUser(s.ctx, u))
	s.NotEmpty(u.ID)

	err := s.store.CreateUser(s.ctx, &User{Username: "alice", PasswordHash: "x", CreatedAt: s.t0})
	s.ErrorIs(err, ErrUsernameTaken)

	byName, err := s.store.UserByName(s.ctx, "ALICE")
	s.Require().NoError(err)
	s.Equal(u.ID, byName.ID)
	s.Equal("hash", byName.PasswordHash)

	byID, err := s.store.UserByID(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Equal("Alice", byID.Username)

	_, err = s.store.UserByID(s.ctx, "missing")
	s.ErrorIs(err, ErrNotFound)
	_, err = s.store.UserByName(s.ctx, "bob")
	s.ErrorIs(err, ErrNotFound)
}

func (s *StoreTestSuite) TestClaimAnon() {
	u := &User{Username: "carol", PasswordHash: "h", CreatedAt: s.t0}
	s.Require().NoError(s.store.CreateUser(s.ctx, u))
	s.save(Round{AnonID: "guest-7", Mode: ModeNormal, ButtonCount: 2, Won: true, FinishedAt: s.t0})

	s.Require().NoError(s.store.ClaimAnon(s.ctx, "guest-7", u.ID))

	mine, err := s.store.RecentRounds(s.ctx, Owner{UserID: u.ID}, 10)
	s.Require().NoError(err)
	s.Len(mine, 1)

	guest, err := s.store.RecentRounds(s.ctx, Owner{AnonID: "guest-7"}, 10)
	s.Require().NoError(err)
	s.Empty(guest)
}

func (s *StoreTestSuite) TestLeaderboard() {
	dave := &User{Username: "dave", PasswordHash: "h", CreatedAt: s.t0}
	erin := &User{Username: "erin", PasswordHash: "h", CreatedAt: s.t0}
	s.Require().NoError(s.store.CreateUser(s.ctx, dave))
	s.Require().NoError(s.store.CreateUser(s.ctx, erin))

	date := "2025-04-19"
	s.save(Round{UserID: dave.ID, Mode: ModeDaily, Date: date, ButtonCount: 5, Won: true, ElapsedMs: 4000, FinishedAt: s.t0})
	s.save(Round{UserID: dave.ID, Mode: ModeDaily, Date: date, ButtonCount: 7, Won: true, ElapsedMs: 9000, FinishedAt: s.t0.Add(time.Minute)})
	s.save(Round{UserID: erin.ID, Mode: ModeDaily, Date: date, ButtonCount: 7, Won: true, ElapsedMs: 6000, FinishedAt: s.t0})
	s.save(Round{UserID: erin.ID, Mode: ModeDaily, Date: date, ButtonCount: 12, Won: false, ElapsedMs: 100, FinishedAt: s.t0})
	s.save(Round{AnonID: "g", Mode: ModeDaily, Date: date, ButtonCount: 3, Won: true, ElapsedMs: 1000, FinishedAt: s.t0})
	s.save(Round{UserID: dave.ID, Mode: ModeNormal, ButtonCount: 20, Won: true, FinishedAt: s.t0})
	s.save(Round{UserID: dave.ID, Mode: ModeDaily, Date: "2025-04-18", ButtonCount: 30, Won: true, FinishedAt: s.t0})

	rows, err := s.store.Leaderboard(s.ctx, date, 10)
	s.Require().NoError(err)
	s.Equal([]LeaderRow{
		{Username: "erin", ButtonCount: 7, ElapsedMs: 6000},
		{Username: "dave", ButtonCount: 7, ElapsedMs: 9000},
		{Username: guestName, ButtonCount: 3, ElapsedMs: 1000},
	}, rows)

	top, err := s.store.Leaderboard(s.ctx, date, 1)
	s.Require().NoError(err)
	s.Len(top, 1)
}

func TestMemoryStore(t *testing.T) {
	suite.Run(t, &StoreTestSuite{open: func(t *testing.T) Store { return NewMemoryStore() }})
}

func TestSQLiteStore(t *testing.T) {
	suite.Run(t, &StoreTestSuite{open: func(t *testing.T) Store {
		st, err := OpenSQLite(filepath.Join(t.TempDir(), "data", "test.db"))
		require.NoError(t, err)
		return st
	}})
}

func TestSQLiteMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.db")

	first, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := OpenSQLite(path)
	require.NoError(t, err)
	defer second.Close()

	var n int
	require.NoError(t, second.(*sqliteStore).db.QueryRow(`SELECT COUNT(*) FROM _migrations`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestSummarizeStreakStopsAtFirstLoss(t *testing.T) {
	st := summarize([]Round{{Won: true, ButtonCount: 2}, {Won: false, ButtonCount: 9}, {Won: true, ButtonCount: 4}})
	assert.Equal(t, Stats{Played: 3, Wins: 2, Streak: 1, Best: 4}, st)
}
