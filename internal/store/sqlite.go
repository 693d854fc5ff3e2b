// internal/store/sqlite.go
//
// SQLite implementation of the Store interface.
// Responsibilities:
//   - Opening the database with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying embedded migrations from sql/*.sql (idempotent, recorded in _migrations).
//   - Round and user queries.

package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

//go:embed sql/*.sql
var migrations embed.FS

// timeLayout is fixed width so finished_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000Z07:00"

type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if missing) the database at path and migrates it.
func OpenSQLite(path string) (Store, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	if err := migrate(db, migrations); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &sqliteStore{db: db}, nil
}

// openDB ensures the parent directory exists, then configures busy timeout,
// WAL journaling and foreign keys.
func openDB(dsn string) (*sql.DB, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// migrate applies every sql/*.sql file in lexical order, each in its own
// transaction, skipping files already listed in _migrations.
func migrate(db *sql.DB, fsys fs.FS) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(fsys, "sql/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		body, err := fs.ReadFile(fsys, f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(body)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

func (s *sqliteStore) SaveRound(ctx context.Context, r *Round) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO rounds
            (id, user_id, anonymous_id, mode, date, button_count, won, correct, elapsed_ms, finished_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, nullable(r.UserID), nullable(r.AnonID), r.Mode, nullable(r.Date),
		r.ButtonCount, r.Won, r.Correct, r.ElapsedMs, r.FinishedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert round: %w", err)
	}
	return nil
}

const roundColumns = `id, COALESCE(user_id,''), COALESCE(anonymous_id,''), mode, COALESCE(date,''),
        button_count, won, correct, elapsed_ms, finished_at`

func (s *sqliteStore) owned(ctx context.Context, owner Owner, limit int) ([]Round, error) {
	clause, arg := `anonymous_id=? AND user_id IS NULL`, owner.AnonID
	if owner.UserID != "" {
		clause, arg = `user_id=?`, owner.UserID
	}
	q := `SELECT ` + roundColumns + ` FROM rounds WHERE ` + clause + ` ORDER BY finished_at DESC`
	args := []any{arg}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	return s.queryRounds(ctx, q, args...)
}

func (s *sqliteStore) queryRounds(ctx context.Context, q string, args ...any) ([]Round, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Round
	for rows.Next() {
		var r Round
		var finished string
		if err := rows.Scan(&r.ID, &r.UserID, &r.AnonID, &r.Mode, &r.Date,
			&r.ButtonCount, &r.Won, &r.Correct, &r.ElapsedMs, &finished); err != nil {
			return nil, err
		}
		r.FinishedAt, _ = time.Parse(timeLayout, finished)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *sqliteStore) RecentRounds(ctx context.Context, owner Owner, limit int) ([]Round, error) {
	if owner.Empty() {
		return nil, nil
	}
	return s.owned(ctx, owner, limit)
}

func (s *sqliteStore) Stats(ctx context.Context, owner Owner) (Stats, error) {
	if owner.Empty() {
		return Stats{}, nil
	}
	rounds, err := s.owned(ctx, owner, 0)
	if err != nil {
		return Stats{}, err
	}
	return summarize(rounds), nil
}

func (s *sqliteStore) Leaderboard(ctx context.Context, date string, limit int) ([]LeaderRow, error) {
	rounds, err := s.queryRounds(ctx,
		`SELECT `+roundColumns+` FROM rounds WHERE mode=? AND date=? AND won=1`, ModeDaily, date)
	if err != nil {
		return nil, err
	}

	names := map[string]string{}
	for _, r := range rounds {
		if r.UserID == "" {
			continue
		}
		if _, ok := names[r.UserID]; ok {
			continue
		}
		if u, err := s.UserByID(ctx, r.UserID); err == nil {
			names[r.UserID] = u.Username
		}
	}
	return rankDaily(rounds, limit, func(r Round) string {
		if n, ok := names[r.UserID]; ok {
			return n
		}
		return guestName
	}), nil
}

func (s *sqliteStore) CreateUser(ctx context.Context, u *User) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, created_at) VALUES (?,?,?,?)`,
		u.ID, u.Username, u.PasswordHash, u.CreatedAt.UTC().Format(time.RFC3339))
	var se sqlite3.Error
	if errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique {
		return ErrUsernameTaken
	}
	return err
}

func (s *sqliteStore) UserByName(ctx context.Context, username string) (*User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE lower(username)=lower(?)`,
		strings.TrimSpace(username)))
}

func (s *sqliteStore) UserByID(ctx context.Context, id string) (*User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE id=?`, id))
}

func (s *sqliteStore) scanUser(row *sql.Row) (*User, error) {
	var u User
	var created string
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return &u, nil
}

func (s *sqliteStore) ClaimAnon(ctx context.Context, anonID, userID string) error {
	if anonID == "" || userID == "" {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE rounds SET user_id=?, anonymous_id=NULL WHERE anonymous_id=? AND user_id IS NULL`, userID, anonID)
	return err
}

func (s *sqliteStore) Close() error { return s.db.Close() }

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
