package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/ksuid"

	"github.com/crave-social/crave/internal/domain"
	"github.com/crave-social/crave/internal/repository"
	"github.com/crave-social/crave/internal/storage"
)

var (
	ErrVideoNotFound  = errors.New("video not found")
	ErrVideoForbidden = errors.New("you don't have permission to view this video")
)

// DefaultListLimit bounds every video listing, including the feed.
const DefaultListLimit = 100

// VideoService owns video metadata and gates reads on visibility: owners see
// their own videos regardless, everyone else sees public only.
type VideoService struct {
	videoRepo repository.VideoRepository
	blobs     storage.BlobStore
	identity  *IdentityService
}

func NewVideoService(videoRepo repository.VideoRepository, blobs storage.BlobStore, identity *IdentityService) *VideoService {
	return &VideoService{videoRepo: videoRepo, blobs: blobs, identity: identity}
}

type UploadInput struct {
	Title      string
	Recipe     string
	Visibility domain.Visibility
	Filename   string
	File       io.Reader
	Size       int64
}

// Upload stores the binary in the blob store and records the metadata.
// Validation of title, recipe and visibility happens at the edge; this
// component trusts its caller.
func (s *VideoService) Upload(ctx context.Context, ownerID uuid.UUID, input UploadInput) (*domain.Video, error) {
	blobName := ksuid.New().String()
	if ext := path.Ext(input.Filename); ext != "" {
		blobName += ext
	}

	blobURL, err := s.blobs.Upload(ctx, blobName, input.File, input.Size)
	if err != nil {
		return nil, fmt.Errorf("uploading blob: %w", err)
	}

	video := &domain.Video{
		ID:         ksuid.New().String(),
		Title:      input.Title,
		BlobName:   blobName,
		BlobURL:    blobURL,
		UserID:     ownerID,
		Visibility: input.Visibility,
		Recipe:     input.Recipe,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.videoRepo.Create(ctx, video); err != nil {
		return nil, fmt.Errorf("creating video: %w", err)
	}
	return video, nil
}

func (s *VideoService) ListPublic(ctx context.Context) ([]domain.Video, error) {
	videos, err := s.videoRepo.ListPublic(ctx, DefaultListLimit)
	if err != nil {
		return nil, err
	}
	if videos == nil {
		videos = []domain.Video{}
	}
	return videos, nil
}

// Get returns a video if the viewer may see it.
func (s *VideoService) Get(ctx context.Context, viewerID uuid.UUID, videoID string) (*domain.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, ErrVideoNotFound
	}
	if video.Visibility == domain.VisibilityPrivate && video.UserID != viewerID {
		return nil, ErrVideoForbidden
	}
	return video, nil
}

// ListByUser returns a user's videos; private ones only when the viewer is
// the owner. The owner must resolve to a real user, so an unknown owner is
// ErrUserNotFound rather than an empty list.
func (s *VideoService) ListByUser(ctx context.Context, viewerID, ownerID uuid.UUID) ([]domain.Video, error) {
	if s.identity.Resolve(ctx, ownerID) == nil {
		return nil, ErrUserNotFound
	}

	videos, err := s.videoRepo.ListByOwner(ctx, ownerID, DefaultListLimit)
	if err != nil {
		return nil, err
	}

	if viewerID == ownerID {
		if videos == nil {
			videos = []domain.Video{}
		}
		return videos, nil
	}

	public := make([]domain.Video, 0, len(videos))
	for _, v := range videos {
		if v.Visibility == domain.VisibilityPublic {
			public = append(public, v)
		}
	}
	return public, nil
}

// StreamURL returns a short-lived signed URL for the video's blob, applying
// the same visibility gate as Get.
func (s *VideoService) StreamURL(ctx context.Context, viewerID uuid.UUID, videoID string) (string, error) {
	video, err := s.Get(ctx, viewerID, videoID)
	if err != nil {
		return "", err
	}
	return s.blobs.SignedURL(video.BlobName)
}
