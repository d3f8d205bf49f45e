package main

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/nightsky/internal/notes"
	"github.com/tomz197/nightsky/internal/scene"
)

//go:embed index.html notes.html
var pages embed.FS

var templates = template.Must(template.ParseFS(pages, "*.html"))

type server struct {
	sshHost string
	pad     *notes.Pad
	logger  *log.Logger
	now     func() time.Time
}

func newHandler(sshHost string, pad *notes.Pad, logger *log.Logger) http.Handler {
	s := &server{sshHost: sshHost, pad: pad, logger: logger, now: time.Now}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.index)
	mux.HandleFunc("GET /notes", s.showNotes)
	mux.HandleFunc("POST /notes", s.saveNotes)
	return mux
}

func (s *server) index(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "index.html", struct {
		SSHHost string
		Scenes  []string
	}{s.sshHost, scene.Names()})
}

type notesView struct {
	Page     notes.Page
	Error    string
	Editable bool // Show the form; a failed load has nothing to edit
}

func (s *server) showNotes(w http.ResponseWriter, r *http.Request) {
	page, err := s.pad.Load()
	if err != nil {
		s.storageFailed(w, notesView{Error: err.Error()}, err)
		return
	}
	s.render(w, http.StatusOK, "notes.html", notesView{Page: page, Editable: true})
}

func (s *server) saveNotes(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	content := r.PostFormValue("notes")
	page, err := s.pad.Save(content, s.now())
	if err != nil {
		// Hand the unsaved text back so it can be retried.
		s.storageFailed(w, notesView{
			Page:     notes.Page{Content: content, SaveLabel: notes.DefaultLabel},
			Error:    err.Error(),
			Editable: true,
		}, err)
		return
	}
	s.render(w, http.StatusOK, "notes.html", notesView{Page: page, Editable: true})
}

func (s *server) storageFailed(w http.ResponseWriter, view notesView, err error) {
	s.logger.Error("note pad storage failed", "err", err)
	s.render(w, http.StatusServiceUnavailable, "notes.html", view)
}

func (s *server) render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("template failed", "template", name, "err", err)
	}
}
