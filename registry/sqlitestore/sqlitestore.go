// Package sqlitestore persists component registrations in SQLite through
// the pure-Go modernc.org/sqlite driver.
//
//	st, err := sqlitestore.Open("schemas.db")
//	defer st.Close()
//	reg := registry.NewLocal(registry.WithStorage(st))
package sqlitestore

import (
	"database/sql"
	stderrors "errors"

	"github.com/wippyai/ecs-layout/registry"
	_ "modernc.org/sqlite"
)

const schemaDDL = `CREATE TABLE IF NOT EXISTS component_schemas (
	name       TEXT PRIMARY KEY,
	data       BLOB NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// Storage implements registry.SchemaStorage over one SQLite table.
type Storage struct {
	db *sql.DB
}

// Open opens (or creates) the database at dsn. Use ":memory:" for a
// private in-memory database.
func Open(dsn string) (*Storage, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// every pooled connection to ":memory:" would be a separate database
	db.SetMaxOpenConns(1)

	s, err := New(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an open database, creating the table if needed.
func New(db *sql.DB) (*Storage, error) {
	if _, err := db.Exec(schemaDDL); err != nil {
		return nil, err
	}
	return &Storage{db: db}, nil
}

func (s *Storage) GetSchema(name string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow(`SELECT data FROM component_schemas WHERE name = ?`, name).Scan(&data)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, registry.ErrNoSchemaFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *Storage) AddSchema(name string, data []byte) (bool, error) {
	res, err := s.db.Exec(`INSERT INTO component_schemas (name, data) VALUES (?, ?)
		ON CONFLICT(name) DO NOTHING`, name, data)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// Names lists stored component names in alphabetical order.
func (s *Storage) Names() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM component_schemas ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

func (s *Storage) Close() error {
	return s.db.Close()
}

var _ registry.SchemaStorage = (*Storage)(nil)
