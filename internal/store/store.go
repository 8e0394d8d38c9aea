// Package store persists the user's inputs in a small SQLite key-value table.
// Records are upgraded to the current schema when they are read.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"

	"github.com/theirongolddev/fyfire/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// InputsKey is the kv key the wizard answers are stored under.
const InputsKey = "fy_fire_inputs"

// Store is a SQLite-backed inputs store.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening store db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveInputs writes the inputs at the current schema version.
func (s *Store) SaveInputs(ctx context.Context, in model.Inputs) error {
	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encoding inputs: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `INSERT OR REPLACE INTO kv (key, version, value, updated_at)
		VALUES (?, ?, ?, ?)`,
		InputsKey, model.SchemaVersion, data, s.now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving inputs: %w", err)
	}
	return nil
}

// LoadInputs returns the saved inputs merged over model.DefaultInputs.
//
// Nothing saved yields the defaults and a nil error. A record that cannot be
// decoded yields the defaults and an error, so callers can report it and carry on.
func (s *Store) LoadInputs(ctx context.Context) (model.Inputs, error) {
	defaults := model.DefaultInputs()

	var (
		version int
		data    []byte
	)
	err := s.db.QueryRowContext(ctx, "SELECT version, value FROM kv WHERE key = ?", InputsKey).
		Scan(&version, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return defaults, nil
	}
	if err != nil {
		return defaults, fmt.Errorf("reading inputs: %w", err)
	}

	in, err := decodeInputs(version, data)
	if err != nil {
		return defaults, err
	}
	return in, nil
}

// ClearInputs deletes the saved inputs.
func (s *Store) ClearInputs(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", InputsKey)
	if err != nil {
		return fmt.Errorf("clearing inputs: %w", err)
	}
	return nil
}

// HasInputs reports whether anything has been saved.
func (s *Store) HasInputs(ctx context.Context) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM kv WHERE key = ?", InputsKey).Scan(&count)
	return count > 0, err
}
