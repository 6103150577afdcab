package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crave-social/crave/internal/config"
)

func Connect(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return pool, nil
}

// Migrate creates the tables and indexes if they don't exist yet, so a fresh
// database is usable without an external migration step.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS videos (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			blob_name TEXT NOT NULL,
			blob_url TEXT NOT NULL,
			user_id UUID NOT NULL REFERENCES users(id),
			visibility TEXT NOT NULL,
			recipe TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_videos_owner_created ON videos (user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_videos_visibility_created ON videos (visibility, created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS follows (
			id UUID PRIMARY KEY,
			follower_id UUID NOT NULL REFERENCES users(id),
			following_id UUID NOT NULL REFERENCES users(id),
			created_at TIMESTAMPTZ NOT NULL,
			UNIQUE (follower_id, following_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_follows_following ON follows (following_id)`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}
	}
	return nil
}
