// Package store persists Lumen execution state across engine
// restarts using SQLite.
package store

import (
	"database/sql"

	_ "modernc.org/sqlite"

	lumen "github.com/lumenlang/golumen"
)

// SQLiteStore implements lumen.Recorder using modernc.org/sqlite
// (pure Go). The same store can later seed a fresh engine with the
// memory, goals and conversation history it recorded.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens or creates a SQLite database at the given path and
// ensures the schema exists.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Enable WAL mode for concurrent reads.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	s := &SQLiteStore{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS conversation_turns (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		turn_id    TEXT NOT NULL,
		task       TEXT NOT NULL,
		response   TEXT NOT NULL DEFAULT '',
		model      TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS memory_entries (
		tag        TEXT PRIMARY KEY,
		content    TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS goals (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		goal       TEXT NOT NULL,
		priority   TEXT NOT NULL DEFAULT 'medium',
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_turns_created ON conversation_turns(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// RecordTurn implements lumen.Recorder.
func (s *SQLiteStore) RecordTurn(turn lumen.ConversationTurn) error {
	_, err := s.db.Exec(
		`INSERT INTO conversation_turns (turn_id, task, response, model, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		turn.ID, turn.Task, turn.Response, turn.Model, turn.Timestamp,
	)
	return err
}

// RecordMemory implements lumen.Recorder. Re-remembering a tag
// overwrites the stored entry, matching the in-context semantics.
func (s *SQLiteStore) RecordMemory(tag string, entry lumen.MemoryEntry) error {
	_, err := s.db.Exec(
		`INSERT INTO memory_entries (tag, content, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(tag) DO UPDATE SET content = excluded.content, created_at = excluded.created_at`,
		tag, entry.Content, entry.Timestamp,
	)
	return err
}

// RecordGoal implements lumen.Recorder.
func (s *SQLiteStore) RecordGoal(goal lumen.Goal) error {
	_, err := s.db.Exec(
		`INSERT INTO goals (goal, priority, created_at) VALUES (?, ?, ?)`,
		goal.Goal, goal.Priority, goal.Timestamp,
	)
	return err
}

// Memory loads all persisted memory entries.
func (s *SQLiteStore) Memory() (map[string]lumen.MemoryEntry, error) {
	rows, err := s.db.Query(`SELECT tag, content, created_at FROM memory_entries`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make(map[string]lumen.MemoryEntry)
	for rows.Next() {
		var tag string
		var entry lumen.MemoryEntry
		if err := rows.Scan(&tag, &entry.Content, &entry.Timestamp); err != nil {
			return nil, err
		}
		entries[tag] = entry
	}
	return entries, rows.Err()
}

// Goals loads all persisted goals, oldest first.
func (s *SQLiteStore) Goals() ([]lumen.Goal, error) {
	rows, err := s.db.Query(`SELECT goal, priority, created_at FROM goals ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []lumen.Goal
	for rows.Next() {
		var g lumen.Goal
		if err := rows.Scan(&g.Goal, &g.Priority, &g.Timestamp); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// History loads the most recent conversation turns, oldest first.
// A limit of 0 loads everything.
func (s *SQLiteStore) History(limit int) ([]lumen.ConversationTurn, error) {
	query := `SELECT turn_id, task, response, model, created_at FROM conversation_turns ORDER BY id`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = s.db.Query(
			`SELECT turn_id, task, response, model, created_at FROM (`+
				`SELECT id, turn_id, task, response, model, created_at FROM conversation_turns ORDER BY id DESC LIMIT ?`+
				`) ORDER BY id`, limit,
		)
	} else {
		rows, err = s.db.Query(query)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var turns []lumen.ConversationTurn
	for rows.Next() {
		var t lumen.ConversationTurn
		if err := rows.Scan(&t.ID, &t.Task, &t.Response, &t.Model, &t.Timestamp); err != nil {
			return nil, err
		}
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

// Seed loads persisted state into an engine's execution context.
func (s *SQLiteStore) Seed(engine *lumen.Engine) error {
	memory, err := s.Memory()
	if err != nil {
		return err
	}
	goals, err := s.Goals()
	if err != nil {
		return err
	}
	turns, err := s.History(0)
	if err != nil {
		return err
	}
	engine.Seed(memory, goals, turns)
	return nil
}
