package demo

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS team (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS person (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		team_id INTEGER REFERENCES team(id)
	)`,
}

var seed = []string{
	`INSERT OR IGNORE INTO team (id, name) VALUES
		(1, 'Compilers'),
		(2, 'Runtime'),
		(3, 'Tooling')`,
	`INSERT OR IGNORE INTO person (id, name, email, team_id) VALUES
		(1, 'Ada Lovelace', 'ada@example.com', 1),
		(2, 'Alan Turing', 'alan@example.com', 1),
		(3, 'Grace Hopper', 'grace@example.com', 1),
		(4, 'Barbara Liskov', 'barbara@example.com', 2),
		(5, 'Edsger Dijkstra', 'edsger@example.com', 2),
		(6, 'Frances Allen', 'frances@example.com', 2),
		(7, 'Ken Thompson', 'ken@example.com', 3),
		(8, 'Margaret Hamilton', 'margaret@example.com', 3),
		(9, 'Dennis Ritchie', 'dennis@example.com', 3),
		(10, 'Radia Perlman', 'radia@example.com', 3),
		(11, 'John Backus', 'john@example.com', 1),
		(12, 'Niklaus Wirth', 'niklaus@example.com', 2)`,
}

// OpenDatabase opens the SQLite database at dsn (in memory when empty) and
// makes sure the demo tables exist and hold the sample rows.
func OpenDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	if dsn == "" {
		dsn = ":memory:"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("demo: open database: %w", err)
	}
	// Each connection to ":memory:" gets its own database.
	db.SetMaxOpenConns(1)

	for _, stmt := range append(append([]string{}, schema...), seed...) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("demo: prepare database: %w", err)
		}
	}
	return db, nil
}
