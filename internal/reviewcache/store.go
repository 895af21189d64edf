package reviewcache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"moviematch/internal/services/imdb"
)

const schema = `
CREATE TABLE IF NOT EXISTS reviews (
    catalog_id TEXT PRIMARY KEY,
    payload    TEXT NOT NULL,
    cached_at  TIMESTAMP NOT NULL
);`

// Store holds cached reviews keyed by catalog id. A Store opened with an
// empty path is disabled: lookups miss and saves are no-ops.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the review cache database. An empty
// path yields a disabled store.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return &Store{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open review cache: %w", err)
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init review cache schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Enabled reports whether the store is backed by a database.
func (s *Store) Enabled() bool {
	return s != nil && s.db != nil
}

// Lookup returns the cached reviews for a catalog id if present.
func (s *Store) Lookup(ctx context.Context, catalogID string) ([]imdb.Review, bool, error) {
	if !s.Enabled() {
		return nil, false, nil
	}
	catalogID = strings.TrimSpace(catalogID)
	if catalogID == "" {
		return nil, false, nil
	}
	var payload string
	err := s.db.QueryRowContext(ctx,
		"SELECT payload FROM reviews WHERE catalog_id = ?", catalogID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("lookup cached reviews: %w", err)
	}
	var reviews []imdb.Review
	if err := json.Unmarshal([]byte(payload), &reviews); err != nil {
		return nil, false, fmt.Errorf("decode cached reviews: %w", err)
	}
	return reviews, true, nil
}

// Save stores reviews for a catalog id, replacing any previous entry.
func (s *Store) Save(ctx context.Context, catalogID string, reviews []imdb.Review) error {
	if !s.Enabled() {
		return nil
	}
	catalogID = strings.TrimSpace(catalogID)
	if catalogID == "" {
		return errors.New("reviewcache: catalog id required")
	}
	payload, err := json.Marshal(reviews)
	if err != nil {
		return fmt.Errorf("encode reviews: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO reviews (catalog_id, payload, cached_at) VALUES (?, ?, ?)",
		catalogID, string(payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save cached reviews: %w", err)
	}
	return nil
}

// Count returns the number of cached titles.
func (s *Store) Count(ctx context.Context) (int, error) {
	if !s.Enabled() {
		return 0, nil
	}
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM reviews").Scan(&count); err != nil {
		return 0, fmt.Errorf("count cached reviews: %w", err)
	}
	return count, nil
}

// Clear drops every cached entry.
func (s *Store) Clear(ctx context.Context) error {
	if !s.Enabled() {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM reviews"); err != nil {
		return fmt.Errorf("clear review cache: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
