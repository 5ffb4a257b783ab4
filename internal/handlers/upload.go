package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/lehigh-university-libraries/barcoder/internal/form"
	"github.com/lehigh-university-libraries/barcoder/internal/session"
)

// maxFormBytes bounds a generation form post; the largest symbology limit
// is a few thousand characters.
const maxFormBytes = 64 * 1024

// HandleGenerate validates the submitted form and forwards it to the service
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		h.writeError(w, "Invalid form: "+err.Error(), http.StatusBadRequest)
		return
	}

	in := formInput{
		TypeID: r.PostFormValue("code_type"),
		Data:   r.PostFormValue("data"),
		Label:  r.PostFormValue("label"),
	}

	req, err := form.Validate(in.TypeID, in.Data, in.Label)
	if err != nil {
		in.Error = err.Error()
		h.pages.render(w, http.StatusUnprocessableEntity, h.buildPage(tabGenerate, in))
		return
	}

	if _, err := h.session.Generate(r.Context(), req); err != nil {
		code := http.StatusBadGateway
		if errors.Is(err, session.ErrBusy) {
			code = http.StatusConflict
			in.Error = "Generating... please wait for the current code"
		}
		slog.Warn("Generate request failed", "code_type", req.CodeType, "err", err)
		h.pages.render(w, code, h.buildPage(tabGenerate, in))
		return
	}

	h.redirectHome(w, r, url.Values{"type": {req.CodeType}}.Encode())
}
