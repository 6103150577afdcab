package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/crave-social/crave/internal/domain"
)

func newFeedFixture(t *testing.T) (*FeedService, *memFollowRepo, *memVideoRepo) {
	t.Helper()
	followRepo := newMemFollowRepo()
	videoRepo := newMemVideoRepo()
	follows := NewFollowService(followRepo, NewIdentityService(newMemUserRepo(), zap.NewNop()))
	return NewFeedService(follows, videoRepo), followRepo, videoRepo
}

func addVideo(t *testing.T, repo *memVideoRepo, owner uuid.UUID, id string, visibility domain.Visibility, createdAt time.Time) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &domain.Video{
		ID:         id,
		Title:      "video " + id,
		BlobName:   id + ".mp4",
		BlobURL:    "http://localhost:8080/media/" + id + ".mp4",
		UserID:     owner,
		Visibility: visibility,
		CreatedAt:  createdAt,
	}))
}

func TestGetFeedEmptyFollowingShortCircuits(t *testing.T) {
	svc, _, videoRepo := newFeedFixture(t)

	feed, err := svc.GetFeed(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, feed)
	assert.NotNil(t, feed)
	assert.Equal(t, 0, videoRepo.listByOwnersCalls, "empty following set must not query the catalog")
}

func TestGetFeedMergesAndOrders(t *testing.T) {
	viewer := uuid.New()
	bob := uuid.New()
	carol := uuid.New()

	svc, followRepo, videoRepo := newFeedFixture(t)
	ctx := context.Background()

	for _, target := range []uuid.UUID{bob, carol} {
		require.NoError(t, followRepo.Put(ctx, &domain.Follow{
			ID:          uuid.New(),
			FollowerID:  viewer,
			FollowingID: target,
			CreatedAt:   time.Now().UTC(),
		}))
	}

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	addVideo(t, videoRepo, bob, "v1", domain.VisibilityPublic, base.Add(10*time.Second))
	addVideo(t, videoRepo, bob, "v2", domain.VisibilityPrivate, base.Add(20*time.Second))
	addVideo(t, videoRepo, carol, "v3", domain.VisibilityPublic, base.Add(15*time.Second))

	feed, err := svc.GetFeed(ctx, viewer)
	require.NoError(t, err)

	ids := make([]string, len(feed))
	for i, v := range feed {
		ids[i] = v.ID
	}
	assert.Equal(t, []string{"v3", "v1"}, ids, "private excluded, newest first")
	assert.Equal(t, 1, videoRepo.listByOwnersCalls, "feed must be one batched query")
}

func TestGetFeedExcludesNonFollowedOwners(t *testing.T) {
	viewer := uuid.New()
	bob := uuid.New()
	stranger := uuid.New()

	svc, followRepo, videoRepo := newFeedFixture(t)
	ctx := context.Background()

	require.NoError(t, followRepo.Put(ctx, &domain.Follow{
		ID:          uuid.New(),
		FollowerID:  viewer,
		FollowingID: bob,
		CreatedAt:   time.Now().UTC(),
	}))

	now := time.Now().UTC()
	addVideo(t, videoRepo, bob, "followed", domain.VisibilityPublic, now)
	addVideo(t, videoRepo, stranger, "stranger", domain.VisibilityPublic, now.Add(time.Second))

	feed, err := svc.GetFeed(ctx, viewer)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "followed", feed[0].ID)
}
