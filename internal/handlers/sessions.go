package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/lehigh-university-libraries/barcoder/internal/api"
)

// HandleLogs serves the cached history as JSON. ?refresh=1 re-reads it
// from the service first.
func (h *Handler) HandleLogs(w http.ResponseWriter, r *http.Request) {
	if refresh, _ := strconv.ParseBool(r.URL.Query().Get("refresh")); refresh {
		if err := h.session.FetchLogs(r.Context()); err != nil {
			h.writeError(w, err.Error(), http.StatusBadGateway)
			return
		}
	}
	h.writeJSON(w, h.session.Logs())
}

// HandleClearLogs purges the history. Failures surface on the page banner.
func (h *Handler) HandleClearLogs(w http.ResponseWriter, r *http.Request) {
	if err := h.session.ClearLogs(r.Context()); err == nil {
		h.session.ClearError()
	}
	h.redirectHome(w, r, "tab="+tabLogs)
}

// HandleCSV streams the service's history export as a file download
func (h *Handler) HandleCSV(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.session.DownloadCSV(r.Context(), &buf); err != nil {
		h.writeError(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", api.CSVFilename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = buf.WriteTo(w)
}
