package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/registrar/internal/pkg/apperrors"
	"github.com/yigit/registrar/internal/pkg/logger"
)

const kvTable = "kv_entries"

// upsertSuffix is valid for both SQLite (>= 3.24) and PostgreSQL.
const upsertSuffix = "ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at"

// SQLiteKVRepository stores entries in a kv_entries table of a SQLite database
type SQLiteKVRepository struct {
	db *sql.DB
	sb squirrel.StatementBuilderType
}

// NewSQLiteKVRepository wraps an open database and creates the table if needed
func NewSQLiteKVRepository(ctx context.Context, db *sql.DB) (*SQLiteKVRepository, error) {
	r := &SQLiteKVRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}

	_, err := db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS kv_entries (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`)
	if err != nil {
		return nil, fmt.Errorf("failed to create kv_entries table: %w", err)
	}
	return r, nil
}

func (r *SQLiteKVRepository) Get(ctx context.Context, key string) (string, error) {
	query, args, err := r.sb.Select("value").
		From(kvTable).
		Where(squirrel.Eq{"key": key}).
		Limit(1).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build get entry query: %w", err)
	}

	var value string
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("key %q: %w", key, apperrors.ErrResourceNotFound)
		}
		logger.Error().Err(err).Str("key", key).Msg("Error reading kv entry")
		return "", fmt.Errorf("error reading entry %q: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteKVRepository) SetMany(ctx context.Context, entries map[string]string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for _, key := range sortedKeys(entries) {
		query, args, err := r.sb.Insert(kvTable).
			Columns("key", "value", "updated_at").
			Values(key, entries[key], now).
			Suffix(upsertSuffix).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build upsert entry query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			logger.Error().Err(err).Str("key", key).Msg("Error writing kv entry")
			return fmt.Errorf("error writing entry %q: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *SQLiteKVRepository) Close() error {
	return r.db.Close()
}
