package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crave-social/crave/internal/domain"
)

type VideoRepo struct {
	pool *pgxpool.Pool
}

func NewVideoRepo(pool *pgxpool.Pool) *VideoRepo {
	return &VideoRepo{pool: pool}
}

func (r *VideoRepo) Create(ctx context.Context, video *domain.Video) error {
	query := `
		INSERT INTO videos (id, title, blob_name, blob_url, user_id, visibility, recipe, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(ctx, query,
		video.ID, video.Title, video.BlobName, video.BlobURL,
		video.UserID, video.Visibility, video.Recipe, video.CreatedAt)
	return err
}

func (r *VideoRepo) GetByID(ctx context.Context, id string) (*domain.Video, error) {
	query := `
		SELECT id, title, blob_name, blob_url, user_id, visibility, recipe, created_at
		FROM videos
		WHERE id = $1`
	var v domain.Video
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.Title, &v.BlobName, &v.BlobURL,
		&v.UserID, &v.Visibility, &v.Recipe, &v.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VideoRepo) ListPublic(ctx context.Context, limit int) ([]domain.Video, error) {
	query := `
		SELECT id, title, blob_name, blob_url, user_id, visibility, recipe, created_at
		FROM videos
		WHERE visibility = 'public'
		ORDER BY created_at DESC
		LIMIT $1`
	return r.list(ctx, query, limit)
}

func (r *VideoRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]domain.Video, error) {
	query := `
		SELECT id, title, blob_name, blob_url, user_id, visibility, recipe, created_at
		FROM videos
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`
	return r.list(ctx, query, ownerID, limit)
}

// ListByOwners is the feed query: public videos from the whole owner set in
// one round trip, never a per-owner loop.
func (r *VideoRepo) ListByOwners(ctx context.Context, ownerIDs []uuid.UUID, limit int) ([]domain.Video, error) {
	query := `
		SELECT id, title, blob_name, blob_url, user_id, visibility, recipe, created_at
		FROM videos
		WHERE user_id = ANY($1) AND visibility = 'public'
		ORDER BY created_at DESC
		LIMIT $2`
	return r.list(ctx, query, ownerIDs, limit)
}

func (r *VideoRepo) list(ctx context.Context, query string, args ...any) ([]domain.Video, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var videos []domain.Video
	for rows.Next() {
		var v domain.Video
		if err := rows.Scan(
			&v.ID, &v.Title, &v.BlobName, &v.BlobURL,
			&v.UserID, &v.Visibility, &v.Recipe, &v.CreatedAt,
		); err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}
