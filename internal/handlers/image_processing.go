package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/lehigh-university-libraries/barcoder/internal/models"
)

// HandleImageDownload serves a generated image as an attachment named after
// the log's filename.
func (h *Handler) HandleImageDownload(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.writeError(w, "Invalid log id", http.StatusBadRequest)
		return
	}

	log, ok := h.findLog(id)
	if !ok {
		h.writeError(w, "Log not found", http.StatusNotFound)
		return
	}

	data, err := h.images.DownloadImage(r.Context(), log.ImageURL)
	if err != nil {
		slog.Error("Download failed", "id", id, "url", log.ImageURL, "err", err)
		h.writeError(w, "Failed to download image", http.StatusBadGateway)
		return
	}

	filename := path.Base(log.Filename)
	if filename == "." || filename == "/" {
		filename = fmt.Sprintf("code_%d.png", id)
	}

	w.Header().Set("Content-Type", http.DetectContentType(data))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(data)
}

// findLog looks up a generation in the latest result and the cached history
func (h *Handler) findLog(id int64) (models.GenerationLog, bool) {
	state := h.session.Snapshot()
	if state.Latest != nil && state.Latest.ID == id {
		return *state.Latest, true
	}
	for _, log := range state.Logs {
		if log.ID == id {
			return log, true
		}
	}
	return models.GenerationLog{}, false
}
