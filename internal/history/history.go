// Package history keeps a local journal of every submission attempt and
// its verdict. It exists to warn before re-submitting an answer the
// grading service already rejected; it must never block a submission, so
// a nil *Store is a valid no-op receiver.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"advent/internal/logging"
	"advent/internal/puzzle"
)

// Attempt is one recorded submission.
type Attempt struct {
	Year    int
	Day     int
	Part    int
	Answer  string
	Verdict string
	RunID   string
	At      time.Time
}

// Store manages the submission journal database.
type Store struct {
	db     *sql.DB
	dbPath string
	mu     sync.Mutex
}

// Open creates or opens the journal at <repo>/.advent/history.db.
func Open(repo string) (*Store, error) {
	dbPath := filepath.Join(repo, ".advent", "history.db")
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db, dbPath: dbPath}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS attempts (
			id      INTEGER PRIMARY KEY AUTOINCREMENT,
			year    INTEGER NOT NULL,
			day     INTEGER NOT NULL,
			part    INTEGER NOT NULL,
			answer  TEXT NOT NULL,
			verdict TEXT NOT NULL,
			run_id  TEXT NOT NULL DEFAULT '',
			ts      INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_attempts_puzzle ON attempts(year, day, part);
	`)
	return err
}

// Record appends an attempt to the journal.
func (s *Store) Record(a Attempt) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	at := a.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := s.db.Exec(
		`INSERT INTO attempts (year, day, part, answer, verdict, run_id, ts) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.Year, a.Day, a.Part, a.Answer, a.Verdict, a.RunID, at.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to record attempt: %w", err)
	}
	logging.History("recorded %d-%02d part %d: %s (%s)", a.Year, a.Day, a.Part, a.Answer, a.Verdict)
	return nil
}

// WasWrong reports whether this exact answer was previously rejected for
// the given part.
func (s *Store) WasWrong(id puzzle.ID, part int, answer string) bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM attempts WHERE year = ? AND day = ? AND part = ? AND answer = ? AND verdict = ?`,
		id.Year, id.Day, part, answer, "incorrect",
	).Scan(&n)
	return err == nil && n > 0
}

// Attempts returns all recorded attempts for a puzzle, oldest first.
func (s *Store) Attempts(id puzzle.ID) ([]Attempt, error) {
	if s == nil {
		return nil, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		`SELECT year, day, part, answer, verdict, run_id, ts FROM attempts WHERE year = ? AND day = ? ORDER BY id`,
		id.Year, id.Day,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query attempts: %w", err)
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var a Attempt
		var ts int64
		if err := rows.Scan(&a.Year, &a.Day, &a.Part, &a.Answer, &a.Verdict, &a.RunID, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan attempt: %w", err)
		}
		a.At = time.Unix(ts, 0)
		out = append(out, a)
	}
	return out, rows.Err()
}
