package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/crave-social/crave/internal/domain"
	"github.com/crave-social/crave/internal/service"
	"github.com/crave-social/crave/internal/transport/http/middleware"
)

type UserHandler struct {
	followService *service.FollowService
	videoService  *service.VideoService
	log           *zap.Logger
}

func NewUserHandler(followService *service.FollowService, videoService *service.VideoService, log *zap.Logger) *UserHandler {
	return &UserHandler{followService: followService, videoService: videoService, log: log}
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.GetUserID(r.Context())
	userID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	profile, err := h.followService.Profile(r.Context(), viewerID, userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		} else {
			h.log.Error("get profile failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func (h *UserHandler) ListVideos(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.GetUserID(r.Context())
	userID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	videos, err := h.videoService.ListByUser(r.Context(), viewerID, userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		} else {
			h.log.Error("list user videos failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, videos)
}

func (h *UserHandler) Follow(w http.ResponseWriter, r *http.Request) {
	followerID := middleware.GetUserID(r.Context())
	targetID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	edge, err := h.followService.Follow(r.Context(), followerID, targetID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfFollow):
			writeError(w, http.StatusBadRequest, "SELF_FOLLOW", "Cannot follow yourself")
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		default:
			h.log.Error("follow failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "You are now following this user",
		"follow":  edge,
	})
}

func (h *UserHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	followerID := middleware.GetUserID(r.Context())
	targetID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	if err := h.followService.Unfollow(r.Context(), followerID, targetID); err != nil {
		if errors.Is(err, service.ErrNotFollowing) {
			writeError(w, http.StatusNotFound, "NOT_FOLLOWING", "You are not following this user")
		} else {
			h.log.Error("unfollow failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) ListFollowers(w http.ResponseWriter, r *http.Request) {
	h.listRelated(w, r, h.followService.Followers)
}

func (h *UserHandler) ListFollowing(w http.ResponseWriter, r *http.Request) {
	h.listRelated(w, r, h.followService.Following)
}

func (h *UserHandler) listRelated(w http.ResponseWriter, r *http.Request, list func(context.Context, uuid.UUID) ([]domain.User, error)) {
	userID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	users, err := list(r.Context(), userID)
	if err != nil {
		h.log.Error("list related users failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}
	if users == nil {
		users = []domain.User{}
	}

	writeJSON(w, http.StatusOK, users)
}
