// Package gamedb is the relational store behind the simulation: a thin
// row-oriented layer over sqlite offering Run/Get/All primitives. Each call is
// atomic on its own; callers must not assume transactionality across calls.
package gamedb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Result reports the outcome of a write. Changes==0 on an UPDATE means the
// targeted row did not exist (or nothing matched), which callers treat as a
// failed write.
type Result struct {
	Changes int64
	LastID  int64
}

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Single connection: the sim is single-writer and sqlite rewards it.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	// WAL keeps per-tick writes cheap; NORMAL is enough for a game save.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS player (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			name TEXT NOT NULL,
			current_tile_x INTEGER NOT NULL DEFAULT 0,
			current_tile_y INTEGER NOT NULL DEFAULT 0,
			hunger REAL NOT NULL DEFAULT 100,
			thirst REAL NOT NULL DEFAULT 100,
			health REAL NOT NULL DEFAULT 100,
			current_activity TEXT NOT NULL DEFAULT 'IDLE',
			target_x INTEGER,
			target_y INTEGER,
			job_type TEXT,
			employer_id TEXT,
			employer_type TEXT,
			household_id TEXT,
			title_id TEXT,
			current_mount_id TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS npcs (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			age INTEGER NOT NULL DEFAULT 20,
			household_id TEXT,
			current_tile_x INTEGER NOT NULL DEFAULT 0,
			current_tile_y INTEGER NOT NULL DEFAULT 0,
			hunger REAL NOT NULL DEFAULT 100,
			thirst REAL NOT NULL DEFAULT 100,
			health REAL NOT NULL DEFAULT 100,
			current_activity TEXT NOT NULL DEFAULT 'IDLE',
			target_x INTEGER,
			target_y INTEGER,
			job_type TEXT,
			employer_id TEXT,
			employer_type TEXT,
			title_id TEXT,
			home_x INTEGER,
			home_y INTEGER,
			work_x INTEGER,
			work_y INTEGER,
			work_start_hour INTEGER,
			work_end_hour INTEGER,
			is_alive INTEGER NOT NULL DEFAULT 1
		);`,
		`CREATE TABLE IF NOT EXISTS skills (
			owner_type TEXT NOT NULL,
			owner_id TEXT NOT NULL,
			skill_name TEXT NOT NULL,
			level INTEGER NOT NULL DEFAULT 1,
			xp REAL NOT NULL DEFAULT 0,
			PRIMARY KEY (owner_type, owner_id, skill_name)
		);`,
		`CREATE TABLE IF NOT EXISTS funds (
			owner_type TEXT NOT NULL,
			owner_id TEXT NOT NULL,
			copper INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (owner_type, owner_id)
		);`,
		`CREATE TABLE IF NOT EXISTS inventories (
			owner_type TEXT NOT NULL,
			owner_id TEXT NOT NULL,
			item_name TEXT NOT NULL,
			quantity INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (owner_type, owner_id, item_name)
		);`,
		`CREATE TABLE IF NOT EXISTS tiles (
			x INTEGER NOT NULL,
			y INTEGER NOT NULL,
			tile_type TEXT NOT NULL DEFAULT 'GRASS',
			walkable INTEGER NOT NULL DEFAULT 1,
			buildable INTEGER NOT NULL DEFAULT 1,
			building_id INTEGER,
			PRIMARY KEY (x, y)
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// Run executes a write statement.
func (s *Store) Run(query string, args ...any) (Result, error) {
	res, err := s.db.Exec(query, args...)
	if err != nil {
		return Result{}, err
	}
	changes, err := res.RowsAffected()
	if err != nil {
		return Result{}, err
	}
	lastID, _ := res.LastInsertId()
	return Result{Changes: changes, LastID: lastID}, nil
}

// Get returns the first matching row as a column->value map, or nil when no
// row matched.
func (s *Store) Get(query string, args ...any) (map[string]any, error) {
	rows, err := s.All(query, args...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// All returns every matching row as a column->value map.
func (s *Store) All(query string, args ...any) ([]map[string]any, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []map[string]any
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(map[string]any, len(cols))
		for i, c := range cols {
			row[c] = vals[i]
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (s *Store) Close() error { return s.db.Close() }
