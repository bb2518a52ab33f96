// Package localstate persists device-local preferences in a SQLite file,
// independent of the remote document store.
package localstate

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/starlove/together/internal/model"
)

// Open opens the local state database at path and ensures the schema.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS ThemePreference (
        Id INTEGER PRIMARY KEY CHECK (Id = 1),
        Theme TEXT NOT NULL
    );`)
	return err
}

// ThemeStore reads and writes the single-row theme preference.
type ThemeStore struct {
	db *sql.DB
}

func NewThemeStore(db *sql.DB) *ThemeStore { return &ThemeStore{db: db} }

// Load returns the persisted theme, or ThemeLight on first run.
func (s *ThemeStore) Load() (model.Theme, error) {
	var raw string
	err := s.db.QueryRow(`SELECT Theme FROM ThemePreference WHERE Id = 1`).Scan(&raw)
	if err == sql.ErrNoRows {
		return model.ThemeLight, nil
	}
	if err != nil {
		return "", err
	}
	t := model.Theme(raw)
	if !t.Valid() {
		return "", fmt.Errorf("persisted theme %q is not valid", raw)
	}
	return t, nil
}

// Save persists the theme, replacing any previous value.
func (s *ThemeStore) Save(t model.Theme) error {
	_, err := s.db.Exec(
		`INSERT INTO ThemePreference (Id, Theme) VALUES (1, ?)
         ON CONFLICT(Id) DO UPDATE SET Theme = excluded.Theme`, string(t))
	return err
}
