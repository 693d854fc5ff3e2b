// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Used when no database is configured and in tests.
//
// Characteristics:
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// memory is an in-memory Store implementation.
type memory struct {
	mu     sync.RWMutex
	rounds []Round           // append order
	users  map[string]*User  // keyed by User.ID
	byName map[string]string // lower(username) → id
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{
		users:  make(map[string]*User),
		byName: make(map[string]string),
	}
}

func (m *memory) SaveRound(ctx context.Context, r *Round) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rounds = append(m.rounds, *r)
	return nil
}

// ownedNewestFirst must be called with mu held.
func (m *memory) ownedNewestFirst(owner Owner) []Round {
	var out []Round
	for _, r := range m.rounds {
		if owner.UserID != "" && r.UserID == owner.UserID ||
			owner.UserID == "" && owner.AnonID != "" && r.UserID == "" && r.AnonID == owner.AnonID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].FinishedAt.After(out[j].FinishedAt) })
	return out
}

func (m *memory) RecentRounds(ctx context.Context, owner Owner, limit int) ([]Round, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := m.ownedNewestFirst(owner)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memory) Stats(ctx context.Context, owner Owner) (Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return summarize(m.ownedNewestFirst(owner)), nil
}

func (m *memory) Leaderboard(ctx context.Context, date string, limit int) ([]LeaderRow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var daily []Round
	for _, r := range m.rounds {
		if r.Mode == ModeDaily && r.Date == date {
			daily = append(daily, r)
		}
	}
	return rankDaily(daily, limit, func(r Round) string {
		if u, ok := m.users[r.UserID]; ok {
			return u.Username
		}
		return guestName
	}), nil
}

func (m *memory) CreateUser(ctx context.Context, u *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := strings.ToLower(u.Username)
	if _, ok := m.byName[key]; ok {
		return ErrUsernameTaken
	}
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	cp := *u
	m.users[u.ID] = &cp
	m.byName[key] = u.ID
	return nil
}

func (m *memory) UserByName(ctx context.Context, username string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byName[strings.ToLower(username)]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *m.users[id]
	return &cp, nil
}

func (m *memory) UserByID(ctx context.Context, id string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memory) ClaimAnon(ctx context.Context, anonID, userID string) error {
	if anonID == "" || userID == "" {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rounds {
		if m.rounds[i].UserID == "" && m.rounds[i].AnonID == anonID {
			m.rounds[i].UserID = userID
			m.rounds[i].AnonID = ""
		}
	}
	return nil
}

func (m *memory) Close() error { return nil }
