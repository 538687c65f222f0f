package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps settings as a JSON row in an options table.
type SQLiteStore struct {
	db       *sql.DB
	defaults []string
}

// NewSQLiteStore opens (and if needed creates) the options database at path.
func NewSQLiteStore(path string, defaults []string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// One connection keeps ":memory:" databases coherent and serializes writers.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db, defaults: Normalize(defaults)}
	if err := s.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initialize() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS options (
		name TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);`)
	return err
}

func (s *SQLiteStore) Load(ctx context.Context) (Settings, error) {
	stored, err := s.get(ctx)
	if errors.Is(err, ErrNotFound) {
		return Defaults(s.defaults), nil
	}
	if err != nil {
		return Settings{}, err
	}
	return stored.withFallback(s.defaults), nil
}

func (s *SQLiteStore) get(ctx context.Context) (Settings, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM options WHERE name = ?", OptionName).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return Settings{}, ErrNotFound
	}
	if err != nil {
		return Settings{}, fmt.Errorf("query settings: %w", err)
	}

	var out Settings
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) Save(ctx context.Context, in Settings) error {
	in.GenericTexts = Normalize(in.GenericTexts)
	raw, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
	INSERT INTO options (name, value, updated_at) VALUES (?, ?, ?)
	ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		OptionName, string(raw), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Delete removes every linklabel option row. Subsequent loads return the
// defaults.
func (s *SQLiteStore) Delete(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM options WHERE name LIKE 'linklabel\\_%' ESCAPE '\\'"); err != nil {
		return fmt.Errorf("delete settings: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
