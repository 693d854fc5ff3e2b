// internal/store/store.go
//
// Persistence for finished rounds and player accounts.
// Implementations:
//   - memory (this package): process-local, used when no DB_PATH is set and in tests.
//   - sqlite (sqlite.go): durable, migrations embedded under sql/.
//
// Rounds belong to either a signed-in user or an anonymous cookie id.
// Stats and the daily leaderboard are derived from rounds, so both
// implementations share summarize and rankDaily below.

package store

import (
	"context"
	"errors"
	"sort"
	"time"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrUsernameTaken = errors.New("username taken")
)

const (
	ModeNormal = "normal"
	ModeDaily  = "daily"
)

// Owner identifies who played a round. UserID wins over AnonID when both are set.
type Owner struct {
	UserID string
	AnonID string
}

// Empty reports whether neither id is set.
func (o Owner) Empty() bool { return o.UserID == "" && o.AnonID == "" }

func (o Owner) key() string {
	if o.UserID != "" {
		return "u:" + o.UserID
	}
	return "a:" + o.AnonID
}

// Round is one finished play-through.
type Round struct {
	ID          string    `json:"id"`
	UserID      string    `json:"-"`
	AnonID      string    `json:"-"`
	Mode        string    `json:"mode"`           // ModeNormal | ModeDaily
	Date        string    `json:"date,omitempty"` // YYYY-MM-DD, daily rounds only
	ButtonCount int       `json:"buttonCount"`
	Won         bool      `json:"won"`
	Correct     int       `json:"correct"`
	ElapsedMs   int64     `json:"elapsedMs"`
	FinishedAt  time.Time `json:"finishedAt"`
}

func (r *Round) owner() Owner { return Owner{UserID: r.UserID, AnonID: r.AnonID} }

// Stats aggregates an owner's rounds.
type Stats struct {
	Played int `json:"played"`
	Wins   int `json:"wins"`
	Streak int `json:"streak"` // consecutive wins ending with the latest round
	Best   int `json:"best"`   // largest button count won
}

// LeaderRow is one player's best daily result.
type LeaderRow struct {
	Username    string `json:"username"`
	ButtonCount int    `json:"buttonCount"`
	ElapsedMs   int64  `json:"elapsedMs"`
}

// User is an account row.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Store defines the persistence interface for rounds and users.
type Store interface {
	// SaveRound records a finished round, assigning an id if empty.
	SaveRound(ctx context.Context, r *Round) error

	// RecentRounds lists the owner's rounds, newest first.
	RecentRounds(ctx context.Context, owner Owner, limit int) ([]Round, error)

	// Stats summarizes every round the owner played.
	Stats(ctx context.Context, owner Owner) (Stats, error)

	// Leaderboard ranks the best won daily round per player for date:
	// more buttons first, then faster.
	Leaderboard(ctx context.Context, date string, limit int) ([]LeaderRow, error)

	// CreateUser inserts u, returning ErrUsernameTaken on a case-insensitive clash.
	CreateUser(ctx context.Context, u *User) error

	// UserByName and UserByID return ErrNotFound for missing users.
	UserByName(ctx context.Context, username string) (*User, error)
	UserByID(ctx context.Context, id string) (*User, error)

	// ClaimAnon moves every round of anonID to userID.
	ClaimAnon(ctx context.Context, anonID, userID string) error

	Close() error
}

// summarize expects rounds newest first.
func summarize(rounds []Round) Stats {
	var s Stats
	streakOpen := true
	for _, r := range rounds {
		s.Played++
		if r.Won {
			s.Wins++
			if r.ButtonCount > s.Best {
				s.Best = r.ButtonCount
			}
		}
		if streakOpen {
			if r.Won {
				s.Streak++
			} else {
				streakOpen = false
			}
		}
	}
	return s
}

// rankDaily keeps the best won round per owner and orders them.
// name resolves a display name for a round's owner.
func rankDaily(rounds []Round, limit int, name func(Round) string) []LeaderRow {
	best := map[string]Round{}
	for _, r := range rounds {
		if !r.Won {
			continue
		}
		k := r.owner().key()
		cur, ok := best[k]
		if !ok || better(r, cur) {
			best[k] = r
		}
	}

	picked := make([]Round, 0, len(best))
	for _, r := range best {
		picked = append(picked, r)
	}
	sort.Slice(picked, func(i, j int) bool { return better(picked[i], picked[j]) })
	if limit > 0 && len(picked) > limit {
		picked = picked[:limit]
	}

	out := make([]LeaderRow, len(picked))
	for i, r := range picked {
		out[i] = LeaderRow{Username: name(r), ButtonCount: r.ButtonCount, ElapsedMs: r.ElapsedMs}
	}
	return out
}

func better(a, b Round) bool {
	if a.ButtonCount != b.ButtonCount {
		return a.ButtonCount > b.ButtonCount
	}
	if a.ElapsedMs != b.ElapsedMs {
		return a.ElapsedMs < b.ElapsedMs
	}
	return a.FinishedAt.Before(b.FinishedAt)
}

const guestName = "guest"
