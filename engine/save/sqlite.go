package save

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS saves (
	name       TEXT PRIMARY KEY,
	payload    BLOB NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLiteStore keeps snapshots as JSON payloads in a single table.
type SQLiteStore struct {
	path  string
	sqlDB *sql.DB
}

// OpenSQLite opens (and creates if needed) the save database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	sqlDB, err := sql.Open("sqlite", cleanPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create saves table: %w", err)
	}
	return &SQLiteStore{path: cleanPath, sqlDB: sqlDB}, nil
}

// Close releases the underlying connection.
func (s *SQLiteStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Save upserts the snapshot row and returns a location string.
func (s *SQLiteStore) Save(ctx context.Context, snap *Snapshot) (string, error) {
	data, err := Encode(snap)
	if err != nil {
		return "", fmt.Errorf("encode save: %w", err)
	}
	key := SanitizeName(snap.Name)
	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO saves (name, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		key, data, time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return "", fmt.Errorf("put save: %w", err)
	}
	return s.path + "#" + key, nil
}

// Load reads the snapshot saved for name.
func (s *SQLiteStore) Load(ctx context.Context, name string) (*Snapshot, error) {
	var data []byte
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT payload FROM saves WHERE name = ?`, SanitizeName(name),
	).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound(name)
		}
		return nil, fmt.Errorf("get save: %w", err)
	}
	return Decode(data)
}

// List returns the saved names, sorted.
func (s *SQLiteStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT name FROM saves ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scan save name: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}
