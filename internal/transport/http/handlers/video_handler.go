package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/crave-social/crave/internal/domain"
	"github.com/crave-social/crave/internal/service"
	"github.com/crave-social/crave/internal/transport/http/middleware"
	"github.com/crave-social/crave/pkg/validator"
)

// maxUploadSize caps the multipart form we are willing to parse.
const maxUploadSize = 512 << 20 // 512 MiB

type VideoHandler struct {
	videoService *service.VideoService
	log          *zap.Logger
}

func NewVideoHandler(videoService *service.VideoService, log *zap.Logger) *VideoHandler {
	return &VideoHandler{videoService: videoService, log: log}
}

// Upload accepts a multipart form: title, file, and optional recipe and
// visibility fields (visibility defaults to public).
func (h *VideoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_FORM", "Invalid multipart form")
		return
	}

	title := r.FormValue("title")
	recipe := r.FormValue("recipe")
	visibility := r.FormValue("visibility")
	if visibility == "" {
		visibility = string(domain.VisibilityPublic)
	}

	if errs := validator.ValidateVideo(title, recipe, visibility); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "MISSING_FILE", "A video file is required")
		return
	}
	defer file.Close()

	video, err := h.videoService.Upload(r.Context(), ownerID, service.UploadInput{
		Title:      title,
		Recipe:     recipe,
		Visibility: domain.Visibility(visibility),
		Filename:   header.Filename,
		File:       file,
		Size:       header.Size,
	})
	if err != nil {
		h.log.Error("video upload failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "UPLOAD_FAILED", "Upload failed")
		return
	}

	writeJSON(w, http.StatusCreated, video)
}

func (h *VideoHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	videos, err := h.videoService.ListPublic(r.Context())
	if err != nil {
		h.log.Error("list public videos failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, videos)
}

func (h *VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.GetUserID(r.Context())

	video, err := h.videoService.Get(r.Context(), viewerID, r.PathValue("id"))
	if err != nil {
		h.writeVideoError(w, err, "get video")
		return
	}

	writeJSON(w, http.StatusOK, video)
}

func (h *VideoHandler) Stream(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.GetUserID(r.Context())

	url, err := h.videoService.StreamURL(r.Context(), viewerID, r.PathValue("id"))
	if err != nil {
		h.writeVideoError(w, err, "stream video")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

func (h *VideoHandler) writeVideoError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, service.ErrVideoNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Video not found")
	case errors.Is(err, service.ErrVideoForbidden):
		writeError(w, http.StatusForbidden, "FORBIDDEN", "You don't have permission to view this video")
	default:
		h.log.Error(op+" failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
	}
}
