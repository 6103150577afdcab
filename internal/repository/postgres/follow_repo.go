package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crave-social/crave/internal/domain"
)

type FollowRepo struct {
	pool *pgxpool.Pool
}

func NewFollowRepo(pool *pgxpool.Pool) *FollowRepo {
	return &FollowRepo{pool: pool}
}

// Put inserts an edge. The unique pair index turns a concurrent duplicate
// insert into a no-op instead of an error; callers have already gone through
// Find, so a conflict here means we lost a race to an identical edge.
func (r *FollowRepo) Put(ctx context.Context, edge *domain.Follow) error {
	query := `
		INSERT INTO follows (id, follower_id, following_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (follower_id, following_id) DO NOTHING`
	_, err := r.pool.Exec(ctx, query, edge.ID, edge.FollowerID, edge.FollowingID, edge.CreatedAt)
	return err
}

func (r *FollowRepo) Find(ctx context.Context, followerID, followingID uuid.UUID) (*domain.Follow, error) {
	query := `
		SELECT id, follower_id, following_id, created_at
		FROM follows
		WHERE follower_id = $1 AND following_id = $2`
	var edge domain.Follow
	err := r.pool.QueryRow(ctx, query, followerID, followingID).Scan(
		&edge.ID, &edge.FollowerID, &edge.FollowingID, &edge.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &edge, nil
}

func (r *FollowRepo) Delete(ctx context.Context, edgeID, followerID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM follows WHERE id = $1 AND follower_id = $2`,
		edgeID, followerID)
	return err
}

func (r *FollowRepo) ListFollowing(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return r.listIDs(ctx,
		`SELECT following_id FROM follows WHERE follower_id = $1 ORDER BY created_at DESC`,
		userID)
}

func (r *FollowRepo) ListFollowers(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return r.listIDs(ctx,
		`SELECT follower_id FROM follows WHERE following_id = $1 ORDER BY created_at DESC`,
		userID)
}

func (r *FollowRepo) CountFollowing(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM follows WHERE follower_id = $1`, userID).Scan(&n)
	return n, err
}

func (r *FollowRepo) CountFollowers(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM follows WHERE following_id = $1`, userID).Scan(&n)
	return n, err
}

func (r *FollowRepo) listIDs(ctx context.Context, query string, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
