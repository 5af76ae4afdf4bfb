package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// Store is the durable layer under the cache: player state documents and
// shared world documents, in a single sqlite file.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS players (
	username   TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	state      TEXT NOT NULL,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS world (
	key        TEXT PRIMARY KEY,
	doc        TEXT NOT NULL,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);`

// OpenStore opens (creating if needed) the sqlite database at path. The
// special path ":memory:" is handy in tests.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening state database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating state schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SavePlayer upserts a player's state document.
func (s *Store) SavePlayer(ctx context.Context, username, userId, doc string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO players (username, user_id, state, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(username) DO UPDATE SET
			user_id = excluded.user_id,
			state = excluded.state,
			updated_at = CURRENT_TIMESTAMP`,
		username, userId, doc)
	if err != nil {
		return fmt.Errorf("saving player %s: %w", username, err)
	}
	return nil
}

// LoadPlayer returns the stored state document, or "" when the player has
// never been saved.
func (s *Store) LoadPlayer(ctx context.Context, username string) (string, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT state FROM players WHERE username = ?`, username).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("loading player %s: %w", username, err)
	}
	return doc, nil
}

// SaveWorld upserts a shared world document, such as the weather state.
func (s *Store) SaveWorld(ctx context.Context, key, doc string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO world (key, doc, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			doc = excluded.doc,
			updated_at = CURRENT_TIMESTAMP`,
		key, doc)
	if err != nil {
		return fmt.Errorf("saving world doc %s: %w", key, err)
	}
	return nil
}

// LoadWorld returns a shared world document, or "" when absent.
func (s *Store) LoadWorld(ctx context.Context, key string) (string, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT doc FROM world WHERE key = ?`, key).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("loading world doc %s: %w", key, err)
	}
	return doc, nil
}
