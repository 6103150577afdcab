package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/crave-social/crave/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	// GetByID is the fast path: a point lookup by primary key.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	// FindByID is the slow path: a field-predicate query over the collection,
	// used when the point lookup misses.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// FollowRepository persists directed follow edges. It enforces no business
// rules; callers check for self-follows and existing edges first.
type FollowRepository interface {
	Put(ctx context.Context, edge *domain.Follow) error
	// Find looks up the edge for the ordered pair (followerID, followingID).
	// The reverse edge never matches.
	Find(ctx context.Context, followerID, followingID uuid.UUID) (*domain.Follow, error)
	// Delete removes an edge. Edges are addressed by (id, follower_id)
	// because the relation is partitioned by follower.
	Delete(ctx context.Context, edgeID, followerID uuid.UUID) error
	ListFollowing(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	ListFollowers(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	CountFollowing(ctx context.Context, userID uuid.UUID) (int, error)
	CountFollowers(ctx context.Context, userID uuid.UUID) (int, error)
}

type VideoRepository interface {
	Create(ctx context.Context, video *domain.Video) error
	GetByID(ctx context.Context, id string) (*domain.Video, error)
	ListPublic(ctx context.Context, limit int) ([]domain.Video, error)
	// ListByOwner returns an owner's videos across all visibilities; the
	// caller filters by viewer identity.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]domain.Video, error)
	// ListByOwners returns public videos from the given owners in a single
	// batched query, newest first.
	ListByOwners(ctx context.Context, ownerIDs []uuid.UUID, limit int) ([]domain.Video, error)
}
