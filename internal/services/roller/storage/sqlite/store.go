// Package sqlite provides SQLite-backed persistence for roll history.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/Kartagia/diceodel/internal/platform/errors"
	"github.com/Kartagia/diceodel/internal/platform/storage/sqlitemigrate"
	"github.com/Kartagia/diceodel/internal/services/roller/storage"
	"github.com/Kartagia/diceodel/internal/services/roller/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// defaultListLimit bounds ListKeptRolls when the caller passes no limit.
const defaultListLimit = 50

// Store provides a SQLite-backed roll-history store.
type Store struct {
	sqlDB *sql.DB
}

// Open opens and migrates a roll-history SQLite store at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// SaveKeptRoll persists a kept roll record.
func (s *Store) SaveKeptRoll(ctx context.Context, roll storage.KeptRoll) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	roll.ID = strings.TrimSpace(roll.ID)
	if roll.ID == "" {
		return fmt.Errorf("roll id is required")
	}
	if roll.CreatedAt.IsZero() {
		roll.CreatedAt = time.Now().UTC()
	}

	rolledJSON, err := json.Marshal(roll.Rolled)
	if err != nil {
		return fmt.Errorf("marshal rolled values: %w", err)
	}
	keptJSON, err := json.Marshal(roll.Kept)
	if err != nil {
		return fmt.Errorf("marshal kept values: %w", err)
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO kept_rolls (
		    id, policy, sides, count, keep, seed, rolled_json, kept_json, created_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		roll.ID,
		roll.Policy,
		roll.Sides,
		roll.Count,
		roll.Keep,
		roll.Seed,
		string(rolledJSON),
		string(keptJSON),
		toMillis(roll.CreatedAt),
	)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "save kept roll", err)
	}
	return nil
}

// GetKeptRoll loads a kept roll by id.
func (s *Store) GetKeptRoll(ctx context.Context, rollID string) (storage.KeptRoll, error) {
	if s == nil || s.sqlDB == nil {
		return storage.KeptRoll{}, fmt.Errorf("storage is not configured")
	}
	rollID = strings.TrimSpace(rollID)
	if rollID == "" {
		return storage.KeptRoll{}, fmt.Errorf("roll id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, policy, sides, count, keep, seed, rolled_json, kept_json, created_at
		 FROM kept_rolls
		 WHERE id = ?`,
		rollID,
	)

	roll, err := scanKeptRoll(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return storage.KeptRoll{}, apperrors.WithMetadata(
				apperrors.CodeNotFound,
				"kept roll not found",
				map[string]string{"id": rollID},
			)
		}
		return storage.KeptRoll{}, apperrors.Wrap(apperrors.CodeStorage, "get kept roll", err)
	}
	return roll, nil
}

// ListKeptRolls returns the most recent kept rolls, newest first.
func (s *Store) ListKeptRolls(ctx context.Context, limit int) ([]storage.KeptRoll, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, policy, sides, count, keep, seed, rolled_json, kept_json, created_at
		 FROM kept_rolls
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "list kept rolls", err)
	}
	defer rows.Close()

	var rolls []storage.KeptRoll
	for rows.Next() {
		roll, err := scanKeptRoll(rows.Scan)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeStorage, "scan kept roll", err)
		}
		rolls = append(rolls, roll)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "iterate kept rolls", err)
	}
	return rolls, nil
}

// scanKeptRoll maps one row into a storage record.
func scanKeptRoll(scan func(dest ...any) error) (storage.KeptRoll, error) {
	var (
		roll       storage.KeptRoll
		rolledJSON string
		keptJSON   string
		createdAt  int64
	)
	if err := scan(
		&roll.ID,
		&roll.Policy,
		&roll.Sides,
		&roll.Count,
		&roll.Keep,
		&roll.Seed,
		&rolledJSON,
		&keptJSON,
		&createdAt,
	); err != nil {
		return storage.KeptRoll{}, err
	}

	if err := json.Unmarshal([]byte(rolledJSON), &roll.Rolled); err != nil {
		return storage.KeptRoll{}, fmt.Errorf("unmarshal rolled values: %w", err)
	}
	if err := json.Unmarshal([]byte(keptJSON), &roll.Kept); err != nil {
		return storage.KeptRoll{}, fmt.Errorf("unmarshal kept values: %w", err)
	}
	roll.CreatedAt = fromMillis(createdAt)
	return roll, nil
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

// fromMillis reverses toMillis for persisted millisecond timestamps.
func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}
