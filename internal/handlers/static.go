package handlers

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/lehigh-university-libraries/barcoder/internal/form"
	"github.com/lehigh-university-libraries/barcoder/internal/history"
	"github.com/lehigh-university-libraries/barcoder/internal/models"
	"github.com/lehigh-university-libraries/barcoder/internal/symbology"
)

//go:embed templates/*.html static/*
var assets embed.FS

const (
	tabGenerate = "generate"
	tabLogs     = "logs"
)

// pageData is everything index.html renders
type pageData struct {
	Tab          string
	Types        []symbology.Descriptor
	Selected     *symbology.Descriptor
	Data         string
	Label        string
	Counter      string
	FormError    string
	Error        string
	Busy         bool
	Latest       *models.GenerationLog
	Rows         []history.Row
	LogCount     int
	EmptyMessage string
}

type pageRenderer struct {
	tmpl *template.Template
}

func newPageRenderer() *pageRenderer {
	funcs := template.FuncMap{
		"formatType": symbology.FormatType,
	}
	tmpl := template.Must(template.New("").Funcs(funcs).ParseFS(assets, "templates/*.html"))
	return &pageRenderer{tmpl: tmpl}
}

func (p *pageRenderer) render(w http.ResponseWriter, code int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if err := p.tmpl.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.Error("Unable to render page", "err", err)
	}
}

// formInput is what the user typed into the generation form
type formInput struct {
	TypeID string
	Data   string
	Label  string
	Error  string
}

func (h *Handler) buildPage(tab string, in formInput) pageData {
	state := h.session.Snapshot()

	if tab != tabLogs {
		tab = tabGenerate
	}

	data := pageData{
		Tab:          tab,
		Types:        symbology.All(),
		Data:         in.Data,
		Label:        in.Label,
		FormError:    in.Error,
		Error:        state.Err,
		Busy:         state.Busy,
		Latest:       state.Latest,
		Rows:         history.Rows(state.Logs),
		LogCount:     len(state.Logs),
		EmptyMessage: history.EmptyMessage,
	}
	if d, ok := symbology.Lookup(in.TypeID); ok {
		data.Selected = &d
		data.Counter = form.Counter(d.ID, in.Data)
	}
	return data
}

// HandleIndex renders the selector, form, latest result and history
func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	in := formInput{TypeID: q.Get("type")}
	h.pages.render(w, http.StatusOK, h.buildPage(q.Get("tab"), in))
}

// HandleTypes serves the symbology catalog as JSON
func (h *Handler) HandleTypes(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, symbology.All())
}

// StaticHandler serves the embedded stylesheet and scripts under /static/
func StaticHandler() http.Handler {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(fmt.Sprintf("embedded static assets missing: %v", err))
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
