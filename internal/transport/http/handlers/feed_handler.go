package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/crave-social/crave/internal/service"
	"github.com/crave-social/crave/internal/transport/http/middleware"
)

type FeedHandler struct {
	feedService *service.FeedService
	log         *zap.Logger
}

func NewFeedHandler(feedService *service.FeedService, log *zap.Logger) *FeedHandler {
	return &FeedHandler{feedService: feedService, log: log}
}

func (h *FeedHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.GetUserID(r.Context())

	videos, err := h.feedService.GetFeed(r.Context(), viewerID)
	if err != nil {
		h.log.Error("get feed failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, videos)
}
