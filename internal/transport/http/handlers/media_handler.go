package handlers

import (
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/crave-social/crave/internal/storage"
)

// MediaHandler serves blobs from the local store. Requests must carry the
// exp/sig pair issued by SignedURL; there is no other access path.
type MediaHandler struct {
	store *storage.LocalStore
	log   *zap.Logger
}

func NewMediaHandler(store *storage.LocalStore, log *zap.Logger) *MediaHandler {
	return &MediaHandler{store: store, log: log}
}

func (h *MediaHandler) Serve(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	exp := r.URL.Query().Get("exp")
	sig := r.URL.Query().Get("sig")

	if !h.store.Verify(name, exp, sig) {
		writeError(w, http.StatusForbidden, "FORBIDDEN", "Invalid or expired URL")
		return
	}

	f, err := h.store.Open(name)
	if err != nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Blob not found")
		return
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		h.log.Warn("serving blob interrupted", zap.String("blob", name), zap.Error(err))
	}
}
