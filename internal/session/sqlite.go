package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "modernc.org/sqlite"
)

// SQLiteStore is the embedded alternative to Redis for single-node deploys.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) RunMigrations(migrationsPath string) error {
	driver, err := sqlite.WithInstance(s.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"sqlite",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, sessionID string, key Key, out interface{}) error {
	query := `SELECT data FROM session_values WHERE session_id = ? AND name = ?`

	var data []byte
	err := s.db.QueryRowContext(ctx, query, sessionID, string(key)).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to query session value: %w", err)
	}
	return decode(data, out)
}

func (s *SQLiteStore) Set(ctx context.Context, sessionID string, key Key, value interface{}) error {
	data, err := encode(value)
	if err != nil {
		return err
	}

	query := `INSERT INTO session_values (session_id, name, data, updated_at)
	          VALUES (?, ?, ?, CURRENT_TIMESTAMP)
	          ON CONFLICT(session_id, name) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP`

	if _, err := s.db.ExecContext(ctx, query, sessionID, string(key), data); err != nil {
		return fmt.Errorf("failed to upsert session value: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, sessionID string, key Key) error {
	query := `DELETE FROM session_values WHERE session_id = ? AND name = ?`

	if _, err := s.db.ExecContext(ctx, query, sessionID, string(key)); err != nil {
		return fmt.Errorf("failed to delete session value: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
