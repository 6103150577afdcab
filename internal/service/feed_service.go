package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/crave-social/crave/internal/domain"
	"github.com/crave-social/crave/internal/repository"
)

// FeedService composes a viewer's feed: public videos from the accounts they
// follow, newest first. Pull-based, no materialized view, no cache. The
// following set comes from the follow-graph service, the videos from the
// catalog.
type FeedService struct {
	follows   *FollowService
	videoRepo repository.VideoRepository
}

func NewFeedService(follows *FollowService, videoRepo repository.VideoRepository) *FeedService {
	return &FeedService{follows: follows, videoRepo: videoRepo}
}

// GetFeed returns up to DefaultListLimit videos from the viewer's following
// set. An empty following set short-circuits to an empty feed without
// touching the video catalog: an empty owner predicate must never reach the
// store, where it could read as "no filter".
func (s *FeedService) GetFeed(ctx context.Context, viewerID uuid.UUID) ([]domain.Video, error) {
	followingIDs, err := s.follows.FollowingIDs(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("listing following: %w", err)
	}
	if len(followingIDs) == 0 {
		return []domain.Video{}, nil
	}

	videos, err := s.videoRepo.ListByOwners(ctx, followingIDs, DefaultListLimit)
	if err != nil {
		return nil, fmt.Errorf("fetching feed videos: %w", err)
	}
	if videos == nil {
		videos = []domain.Video{}
	}
	return videos, nil
}
