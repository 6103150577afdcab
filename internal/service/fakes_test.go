package service

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/crave-social/crave/internal/domain"
)

// In-memory repository fakes. They return copies so tests can't be fooled by
// services mutating shared records.

type memUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]domain.User

	// failure injection for the two lookup tiers
	getByIDErr  error
	getByIDMiss bool
	findByIDErr error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]domain.User)}
}

func (r *memUserRepo) add(user domain.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
}

func (r *memUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.add(*user)
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if r.getByIDErr != nil {
		return nil, r.getByIDErr
	}
	if r.getByIDMiss {
		return nil, nil
	}
	return r.lookup(id), nil
}

func (r *memUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if r.findByIDErr != nil {
		return nil, r.findByIDErr
	}
	return r.lookup(id), nil
}

func (r *memUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) lookup(id uuid.UUID) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil
	}
	return &u
}

type memFollowRepo struct {
	mu    sync.Mutex
	edges []domain.Follow
}

func newMemFollowRepo() *memFollowRepo {
	return &memFollowRepo{}
}

func (r *memFollowRepo) Put(ctx context.Context, edge *domain.Follow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.edges {
		if e.FollowerID == edge.FollowerID && e.FollowingID == edge.FollowingID {
			// unique pair index: conflicting insert is a no-op
			return nil
		}
	}
	r.edges = append(r.edges, *edge)
	return nil
}

func (r *memFollowRepo) Find(ctx context.Context, followerID, followingID uuid.UUID) (*domain.Follow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.edges {
		if e.FollowerID == followerID && e.FollowingID == followingID {
			e := e
			return &e, nil
		}
	}
	return nil, nil
}

func (r *memFollowRepo) Delete(ctx context.Context, edgeID, followerID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.edges {
		if e.ID == edgeID && e.FollowerID == followerID {
			r.edges = append(r.edges[:i], r.edges[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *memFollowRepo) ListFollowing(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []uuid.UUID
	for _, e := range r.edges {
		if e.FollowerID == userID {
			ids = append(ids, e.FollowingID)
		}
	}
	return ids, nil
}

func (r *memFollowRepo) ListFollowers(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []uuid.UUID
	for _, e := range r.edges {
		if e.FollowingID == userID {
			ids = append(ids, e.FollowerID)
		}
	}
	return ids, nil
}

func (r *memFollowRepo) CountFollowing(ctx context.Context, userID uuid.UUID) (int, error) {
	ids, _ := r.ListFollowing(ctx, userID)
	return len(ids), nil
}

func (r *memFollowRepo) CountFollowers(ctx context.Context, userID uuid.UUID) (int, error) {
	ids, _ := r.ListFollowers(ctx, userID)
	return len(ids), nil
}

func (r *memFollowRepo) edgeCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.edges)
}

type memVideoRepo struct {
	mu     sync.Mutex
	videos []domain.Video

	listByOwnersCalls int
}

func newMemVideoRepo() *memVideoRepo {
	return &memVideoRepo{}
}

func (r *memVideoRepo) Create(ctx context.Context, video *domain.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.videos = append(r.videos, *video)
	return nil
}

func (r *memVideoRepo) GetByID(ctx context.Context, id string) (*domain.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.videos {
		if v.ID == id {
			v := v
			return &v, nil
		}
	}
	return nil, nil
}

func (r *memVideoRepo) ListPublic(ctx context.Context, limit int) ([]domain.Video, error) {
	return r.filter(limit, func(v domain.Video) bool {
		return v.Visibility == domain.VisibilityPublic
	}), nil
}

func (r *memVideoRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]domain.Video, error) {
	return r.filter(limit, func(v domain.Video) bool {
		return v.UserID == ownerID
	}), nil
}

func (r *memVideoRepo) ListByOwners(ctx context.Context, ownerIDs []uuid.UUID, limit int) ([]domain.Video, error) {
	r.mu.Lock()
	r.listByOwnersCalls++
	r.mu.Unlock()
	owners := make(map[uuid.UUID]bool, len(ownerIDs))
	for _, id := range ownerIDs {
		owners[id] = true
	}
	return r.filter(limit, func(v domain.Video) bool {
		return owners[v.UserID] && v.Visibility == domain.VisibilityPublic
	}), nil
}

// filter returns matching videos ordered by created_at descending, like the
// SQL queries do.
func (r *memVideoRepo) filter(limit int, keep func(domain.Video) bool) []domain.Video {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Video
	for _, v := range r.videos {
		if keep(v) {
			out = append(out, v)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
