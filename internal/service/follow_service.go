package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/crave-social/crave/internal/domain"
	"github.com/crave-social/crave/internal/repository"
)

var (
	ErrSelfFollow   = errors.New("cannot follow yourself")
	ErrUserNotFound = errors.New("user not found")
	ErrNotFollowing = errors.New("you are not following this user")
)

// resolveLimit caps concurrent profile lookups when expanding an ID list
// into user records.
const resolveLimit = 8

// FollowService owns the follow graph: directed edges between users, stored
// externally, with no graph state held in-process.
type FollowService struct {
	followRepo repository.FollowRepository
	identity   *IdentityService
}

func NewFollowService(followRepo repository.FollowRepository, identity *IdentityService) *FollowService {
	return &FollowService{followRepo: followRepo, identity: identity}
}

// Follow creates the edge followerID -> targetID. Following someone you
// already follow is not an error: the existing edge comes back unchanged.
// The target must resolve to a real user; this service enforces that itself
// rather than trusting its caller.
func (s *FollowService) Follow(ctx context.Context, followerID, targetID uuid.UUID) (*domain.Follow, error) {
	if followerID == targetID {
		return nil, ErrSelfFollow
	}

	if s.identity.Resolve(ctx, targetID) == nil {
		return nil, ErrUserNotFound
	}

	existing, err := s.followRepo.Find(ctx, followerID, targetID)
	if err != nil {
		return nil, fmt.Errorf("checking existing follow: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	edge := &domain.Follow{
		ID:          uuid.New(),
		FollowerID:  followerID,
		FollowingID: targetID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.followRepo.Put(ctx, edge); err != nil {
		return nil, fmt.Errorf("creating follow: %w", err)
	}
	return edge, nil
}

// Unfollow removes the edge followerID -> targetID. Unlike Follow it is not
// idempotent: unfollowing someone you don't follow fails with ErrNotFollowing.
func (s *FollowService) Unfollow(ctx context.Context, followerID, targetID uuid.UUID) error {
	edge, err := s.followRepo.Find(ctx, followerID, targetID)
	if err != nil {
		return fmt.Errorf("looking up follow: %w", err)
	}
	if edge == nil {
		return ErrNotFollowing
	}

	if err := s.followRepo.Delete(ctx, edge.ID, edge.FollowerID); err != nil {
		return fmt.Errorf("deleting follow: %w", err)
	}
	return nil
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, targetID uuid.UUID) (bool, error) {
	edge, err := s.followRepo.Find(ctx, followerID, targetID)
	if err != nil {
		return false, err
	}
	return edge != nil, nil
}

// FollowingIDs returns the set of user IDs userID follows.
func (s *FollowService) FollowingIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return s.followRepo.ListFollowing(ctx, userID)
}

// Followers returns the profiles of users following userID. IDs that no
// longer resolve are dropped silently.
func (s *FollowService) Followers(ctx context.Context, userID uuid.UUID) ([]domain.User, error) {
	ids, err := s.followRepo.ListFollowers(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing followers: %w", err)
	}
	return s.resolveAll(ctx, ids), nil
}

// Following returns the profiles of users userID follows.
func (s *FollowService) Following(ctx context.Context, userID uuid.UUID) ([]domain.User, error) {
	ids, err := s.followRepo.ListFollowing(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing following: %w", err)
	}
	return s.resolveAll(ctx, ids), nil
}

// Counts returns follower and following counts for a profile view.
func (s *FollowService) Counts(ctx context.Context, userID uuid.UUID) (followers, following int, err error) {
	followers, err = s.followRepo.CountFollowers(ctx, userID)
	if err != nil {
		return 0, 0, fmt.Errorf("counting followers: %w", err)
	}
	following, err = s.followRepo.CountFollowing(ctx, userID)
	if err != nil {
		return 0, 0, fmt.Errorf("counting following: %w", err)
	}
	return followers, following, nil
}

// Profile returns a user's profile as seen by a viewer: the resolved record
// plus follower/following counts and whether the viewer follows them.
func (s *FollowService) Profile(ctx context.Context, viewerID, userID uuid.UUID) (*domain.Profile, error) {
	user := s.identity.Resolve(ctx, userID)
	if user == nil {
		return nil, ErrUserNotFound
	}

	isFollowing, err := s.IsFollowing(ctx, viewerID, userID)
	if err != nil {
		return nil, fmt.Errorf("checking follow state: %w", err)
	}

	followers, following, err := s.Counts(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &domain.Profile{
		User:           *user,
		IsFollowing:    isFollowing,
		FollowerCount:  followers,
		FollowingCount: following,
	}, nil
}

// resolveAll expands an ID list into user records with a bounded fan-out.
// Slots for unresolvable IDs stay nil and are compacted at the end, so the
// store's ordering is preserved. Resolve never returns an error, so neither
// does the group.
func (s *FollowService) resolveAll(ctx context.Context, ids []uuid.UUID) []domain.User {
	slots := make([]*domain.User, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(resolveLimit)
	for i, id := range ids {
		g.Go(func() error {
			slots[i] = s.identity.Resolve(gctx, id)
			return nil
		})
	}
	g.Wait()

	users := make([]domain.User, 0, len(ids))
	for _, u := range slots {
		if u != nil {
			users = append(users, *u)
		}
	}
	return users
}
