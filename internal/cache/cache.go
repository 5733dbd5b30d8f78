// Package cache persists analysis responses in SQLite Cloud so repeat
// requests for the same channel on the same day can be served without
// spending API quota.
package cache

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	sqlitecloud "github.com/sqlitecloud/sqlitecloud-go"
)

const createdAtLayout = "2006-01-02 15:04:05"

// Store wraps a SQLite Cloud connection holding cached JSON responses.
type Store struct {
	db  *sqlitecloud.SQCloud
	log zerolog.Logger
}

// Open connects to SQLite Cloud and ensures the cache table exists.
func Open(connStr string, log zerolog.Logger) (*Store, error) {
	log.Info().Str("database", maskConnectionString(connStr)).Msg("Connecting to SQLite Cloud")

	db, err := sqlitecloud.Connect(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite Cloud: %w", err)
	}

	store := &Store{db: db, log: log}
	if err := store.createTable(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// maskConnectionString hides the API key in logs.
func maskConnectionString(connStr string) string {
	if strings.Contains(connStr, "apikey=") {
		parts := strings.Split(connStr, "apikey=")
		if len(parts) > 1 {
			return parts[0] + "apikey=***"
		}
	}
	return connStr
}

func (s *Store) createTable() error {
	sql := `CREATE TABLE IF NOT EXISTS analysis_cache (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		cache_key TEXT NOT NULL,
		channel_id TEXT NOT NULL,
		json_response TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`
	if err := s.db.Execute(sql); err != nil {
		return fmt.Errorf("failed to create cache table: %w", err)
	}
	return nil
}

// Get returns the most recent cached response for the key along with when it
// was stored. A miss returns empty values and a nil error.
func (s *Store) Get(key string) (string, time.Time, error) {
	sql := `SELECT json_response, created_at FROM analysis_cache
			WHERE cache_key = ?
			ORDER BY created_at DESC LIMIT 1`

	result, err := s.db.SelectArray(sql, []interface{}{key})
	if err != nil {
		return "", time.Time{}, fmt.Errorf("cache lookup failed: %w", err)
	}
	if result.GetNumberOfRows() == 0 {
		return "", time.Time{}, nil
	}

	payload, err := result.GetStringValue(0, 0)
	if err != nil {
		return "", time.Time{}, err
	}
	createdRaw, err := result.GetStringValue(0, 1)
	if err != nil {
		return "", time.Time{}, err
	}
	createdAt, err := time.Parse(createdAtLayout, createdRaw)
	if err != nil {
		// Unparseable timestamp: treat the row as a miss rather than
		// serving a response of unknown age.
		s.log.Warn().Str("created_at", createdRaw).Msg("Discarding cache row with bad timestamp")
		return "", time.Time{}, nil
	}
	return payload, createdAt, nil
}

// Put stores a response under the key.
func (s *Store) Put(key, channelID, payload string) error {
	sql := `INSERT INTO analysis_cache (cache_key, channel_id, json_response)
			VALUES (?, ?, ?)`
	if err := s.db.ExecuteArray(sql, []interface{}{key, channelID, payload}); err != nil {
		return fmt.Errorf("cache insert failed: %w", err)
	}
	return nil
}

// Close closes the connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
