package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/lehigh-university-libraries/barcoder/internal/session"
)

// ImageFetcher downloads generated images from the service
type ImageFetcher interface {
	DownloadImage(ctx context.Context, imageURL string) ([]byte, error)
}

type Handler struct {
	session *session.Session
	images  ImageFetcher
	pages   *pageRenderer
}

func New(sess *session.Session, images ImageFetcher) *Handler {
	return &Handler{
		session: sess,
		images:  images,
		pages:   newPageRenderer(),
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

// redirectHome sends the browser back to the page after a form post
func (h *Handler) redirectHome(w http.ResponseWriter, r *http.Request, query string) {
	target := "/"
	if query != "" {
		target += "?" + query
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
