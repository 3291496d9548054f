// Package storage provides a SQLite-based journal of game sessions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// The journal records when sessions started and how they ended. It never
// stores scores.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrSessionNotFound is returned when ending a session that was never begun
// or has already ended.
var ErrSessionNotFound = errors.New("storage: session not found")

// timeLayout is how timestamps are stored. Fixed width so text ordering
// matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store manages the SQLite database connection for the session journal.
type Store struct {
	db *sql.DB
}

// Session is one journal row.
type Session struct {
	ID        string
	User      string
	Epoch     uint64
	StartedAt time.Time
	EndedAt   time.Time // zero while the session is open
	EndReason string
	Ticks     uint64
	Error     string
}

// Open reports whether the session has not ended yet.
func (s Session) Open() bool {
	return s.EndedAt.IsZero()
}

// Duration returns how long the session ran, or zero while it is open.
func (s Session) Duration() time.Duration {
	if s.Open() {
		return 0
	}
	return s.EndedAt.Sub(s.StartedAt)
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// SSH sessions write concurrently; a single connection serializes them.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			user TEXT NOT NULL DEFAULT '',
			epoch INTEGER NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT,
			end_reason TEXT NOT NULL DEFAULT '',
			ticks INTEGER NOT NULL DEFAULT 0,
			error TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_at DESC);
		CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// BeginSession records a new session for the local user.
func (s *Store) BeginSession(id string, epoch uint64, startedAt time.Time) error {
	return s.beginSession(id, "", epoch, startedAt)
}

func (s *Store) beginSession(id, user string, epoch uint64, startedAt time.Time) error {
	_, err := s.db.Exec(
		"INSERT INTO sessions (id, user, epoch, started_at) VALUES (?, ?, ?, ?)",
		id, user, int64(epoch), formatTime(startedAt), //#nosec G115 -- epochs stay far below MaxInt64
	)
	if err != nil {
		return fmt.Errorf("storage: cannot begin session %s: %w", id, err)
	}
	return nil
}

// EndSession closes an open session.
func (s *Store) EndSession(id string, endedAt time.Time, reason string, ticks uint64, errText string) error {
	res, err := s.db.Exec(
		`UPDATE sessions
		 SET ended_at = ?, end_reason = ?, ticks = ?, error = ?
		 WHERE id = ? AND ended_at IS NULL`,
		formatTime(endedAt), reason, int64(ticks), errText, id, //#nosec G115 -- tick counts stay far below MaxInt64
	)
	if err != nil {
		return fmt.Errorf("storage: cannot end session %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot end session %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return nil
}

// ForUser returns a journal that tags new sessions with user.
func (s *Store) ForUser(user string) *UserJournal {
	return &UserJournal{store: s, user: user}
}

// UserJournal records sessions on behalf of one user, such as an SSH login.
type UserJournal struct {
	store *Store
	user  string
}

// BeginSession records a new session for the journal's user.
func (j *UserJournal) BeginSession(id string, epoch uint64, startedAt time.Time) error {
	return j.store.beginSession(id, j.user, epoch, startedAt)
}

// EndSession closes an open session.
func (j *UserJournal) EndSession(id string, endedAt time.Time, reason string, ticks uint64, errText string) error {
	return j.store.EndSession(id, endedAt, reason, ticks, errText)
}

// SessionByID retrieves one session. Returns nil if it does not exist.
func (s *Store) SessionByID(id string) (*Session, error) {
	row := s.db.QueryRow(
		`SELECT id, user, epoch, started_at, ended_at, end_reason, ticks, error
		 FROM sessions WHERE id = ?`,
		id,
	)
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session: %w", err)
	}
	return &sess, nil
}

// RecentSessions retrieves the most recently started sessions, newest first.
func (s *Store) RecentSessions(limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, user, epoch, started_at, ended_at, end_reason, ticks, error
		 FROM sessions
		 ORDER BY started_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sessions, nil
}

// ReasonCounts returns how many ended sessions finished for each reason.
func (s *Store) ReasonCounts() (map[string]int, error) {
	rows, err := s.db.Query(
		`SELECT end_reason, COUNT(*)
		 FROM sessions
		 WHERE ended_at IS NOT NULL
		 GROUP BY end_reason`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot count sessions: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var reason string
		var n int
		if err := rows.Scan(&reason, &n); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		counts[reason] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return counts, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(sc scanner) (Session, error) {
	var sess Session
	var epoch, ticks int64
	var started string
	var ended sql.NullString

	if err := sc.Scan(&sess.ID, &sess.User, &epoch, &started, &ended, &sess.EndReason, &ticks, &sess.Error); err != nil {
		return Session{}, err
	}
	sess.Epoch = uint64(epoch) //#nosec G115 -- stored from a uint64
	sess.Ticks = uint64(ticks) //#nosec G115 -- stored from a uint64
	sess.StartedAt = parseTime(started)
	if ended.Valid {
		sess.EndedAt = parseTime(ended.String)
	}
	return sess, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(v string) time.Time {
	if parsed, err := time.Parse(timeLayout, v); err == nil {
		return parsed
	}
	if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
		return parsed
	}
	return time.Time{}
}
