package localstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

// Store is the local draft store: a sqlite file holding unpublished
// records per bucket until they are pushed to the remote database.
type Store struct {
	db *sql.DB
}

const (
	componentName = "localstore"
	schemaVersion = 1
)

// Open opens (or creates) the sqlite file and migrates the schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create local store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	log.Info().Str("path", path).Msg("✅ Local draft store ready")
	return store, nil
}

// migrate brings the schema to the current version. Versions are tracked
// explicitly in schema_versions so future upgrades are deliberate.
func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_versions (
			component TEXT PRIMARY KEY,
			version INTEGER NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("failed to create schema_versions: %w", err)
	}

	current, err := s.currentVersion()
	if err != nil {
		return err
	}

	if current == 0 {
		if err := s.initializeSchema(); err != nil {
			return err
		}
		return s.setVersion(schemaVersion)
	}

	if current > schemaVersion {
		return fmt.Errorf("local store schema version %d is newer than supported version %d", current, schemaVersion)
	}

	// Future upgrades land here as stepwise migrations.
	return nil
}

func (s *Store) currentVersion() (int, error) {
	var version int
	err := s.db.QueryRow(
		`SELECT version FROM schema_versions WHERE component = ?`, componentName,
	).Scan(&version)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

func (s *Store) initializeSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS local_records (
			bucket TEXT NOT NULL,
			id TEXT NOT NULL,
			payload TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (bucket, id)
		)`)
	if err != nil {
		return fmt.Errorf("failed to create local_records: %w", err)
	}
	return nil
}

func (s *Store) setVersion(version int) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO schema_versions (component, version) VALUES (?, ?)`,
		componentName, version,
	)
	if err != nil {
		return fmt.Errorf("failed to set schema version: %w", err)
	}
	return nil
}

// List returns every payload in a bucket, oldest first.
func (s *Store) List(ctx context.Context, bucket string) ([][]byte, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM local_records WHERE bucket = ? ORDER BY created_at ASC, id ASC`, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to list local records: %w", err)
	}
	defer rows.Close()

	var payloads [][]byte
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan local record: %w", err)
		}
		payloads = append(payloads, payload)
	}
	return payloads, rows.Err()
}

// Upsert inserts or replaces a record by id.
func (s *Store) Upsert(ctx context.Context, bucket, id string, payload []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO local_records (bucket, id, payload) VALUES (?, ?, ?)`,
		bucket, id, payload)
	if err != nil {
		return fmt.Errorf("failed to upsert local record: %w", err)
	}
	return nil
}

// Delete removes one record. Returns true when a row was deleted.
func (s *Store) Delete(ctx context.Context, bucket, id string) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM local_records WHERE bucket = ? AND id = ?`, bucket, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete local record: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Clear wipes a whole bucket.
func (s *Store) Clear(ctx context.Context, bucket string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM local_records WHERE bucket = ?`, bucket)
	if err != nil {
		return fmt.Errorf("failed to clear local records: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
