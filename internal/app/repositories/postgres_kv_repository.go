package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/registrar/internal/db"
	"github.com/yigit/registrar/internal/pkg/apperrors"
	"github.com/yigit/registrar/internal/pkg/logger"
)

// PostgresKVRepository stores entries in the kv_entries table created by the migrator
type PostgresKVRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewPostgresKVRepository creates a new PostgresKVRepository
func NewPostgresKVRepository(database *db.PostgresDB) *PostgresKVRepository {
	return &PostgresKVRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *PostgresKVRepository) Get(ctx context.Context, key string) (string, error) {
	sql, args, err := r.sb.Select("value").
		From(kvTable).
		Where(squirrel.Eq{"key": key}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get entry SQL")
		return "", fmt.Errorf("failed to build get entry query: %w", err)
	}

	var value string
	err = r.db.Pool.QueryRow(ctx, sql, args...).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("key %q: %w", key, apperrors.ErrResourceNotFound)
		}
		logger.Error().Err(err).Str("key", key).Msg("Error scanning kv entry row")
		return "", fmt.Errorf("error reading entry %q: %w", key, err)
	}
	return value, nil
}

// SetMany upserts every entry inside a single transaction
func (r *PostgresKVRepository) SetMany(ctx context.Context, entries map[string]string) error {
	now := time.Now().UTC()

	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		for _, key := range sortedKeys(entries) {
			sql, args, err := r.sb.Insert(kvTable).
				Columns("key", "value", "updated_at").
				Values(key, entries[key], now).
				Suffix(upsertSuffix).
				ToSql()
			if err != nil {
				logger.Error().Err(err).Msg("Error building upsert entry SQL")
				return fmt.Errorf("failed to build upsert entry query: %w", err)
			}

			if _, err := tx.Exec(ctx, sql, args...); err != nil {
				logger.Error().Err(err).Str("key", key).Msg("Error executing upsert entry query")
				return fmt.Errorf("error writing entry %q: %w", key, err)
			}
		}
		return nil
	})
}

func (r *PostgresKVRepository) Close() error {
	r.db.Close()
	return nil
}
