// Package transcript records evaluated inputs and their printed results in a
// SQLite database. Each Store belongs to one session; sessions share a file,
// so several REPL runs can append to the same transcript.
package transcript

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Entry kinds.
const (
	KindValue = "value"
	KindError = "error"
)

// Entry is one recorded evaluation.
type Entry struct {
	ID      int64
	Session string
	At      time.Time
	Input   string
	Output  string
	Kind    string
}

type Store struct {
	db      *sql.DB
	session string
}

const schema = `
CREATE TABLE IF NOT EXISTS transcript (
	id      INTEGER PRIMARY KEY AUTOINCREMENT,
	session TEXT    NOT NULL,
	at      INTEGER NOT NULL,
	input   TEXT    NOT NULL,
	output  TEXT    NOT NULL,
	kind    TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS transcript_session ON transcript(session, id);`

// Open opens (or creates) the transcript at path and starts a new session.
// ":memory:" gives a private in-memory transcript.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("transcript: open %s: %w", path, err)
	}
	// one connection: an in-memory database is per connection
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("transcript: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("transcript: create schema: %w", err)
	}
	s := &Store{db: db, session: uuid.NewString()}
	log.Printf("transcript %s: session %s", path, s.session)
	return s, nil
}

// Session returns the id stamped on every entry this Store records.
func (s *Store) Session() string { return s.session }

// Record appends one evaluation to the current session.
func (s *Store) Record(ctx context.Context, input, output, kind string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transcript (session, at, input, output, kind) VALUES (?, ?, ?, ?, ?)`,
		s.session, time.Now().UnixNano(), input, output, kind)
	if err != nil {
		return fmt.Errorf("transcript: record: %w", err)
	}
	return nil
}

// Recent returns up to n entries of the current session, oldest first.
// n <= 0 returns them all.
func (s *Store) Recent(ctx context.Context, n int) ([]Entry, error) {
	q := `SELECT id, session, at, input, output, kind FROM transcript
		WHERE session = ? ORDER BY id DESC`
	args := []any{s.session}
	if n > 0 {
		q += ` LIMIT ?`
		args = append(args, n)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("transcript: query: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var at int64
		if err := rows.Scan(&e.ID, &e.Session, &at, &e.Input, &e.Output, &e.Kind); err != nil {
			return nil, fmt.Errorf("transcript: scan: %w", err)
		}
		e.At = time.Unix(0, at)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("transcript: query: %w", err)
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
