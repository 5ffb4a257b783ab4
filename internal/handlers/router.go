package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
)

// Router wires every page, form post and JSON endpoint
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", h.HandleIndex).Methods("GET")
	r.HandleFunc("/generate", h.HandleGenerate).Methods("POST")
	r.HandleFunc("/logs/clear", h.HandleClearLogs).Methods("POST")
	r.HandleFunc("/logs/csv", h.HandleCSV).Methods("GET")
	r.HandleFunc("/logs/{id:[0-9]+}/image", h.HandleImageDownload).Methods("GET")
	r.HandleFunc("/api/types", h.HandleTypes).Methods("GET")
	r.HandleFunc("/api/logs", h.HandleLogs).Methods("GET")
	r.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			slog.Error("Unable to write healthcheck", "err", err)
		}
	}).Methods("GET")
	r.PathPrefix("/static/").Handler(StaticHandler()).Methods("GET")
	return r
}
