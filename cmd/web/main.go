package main

import (
	"net"
	"net/http"
	"os"
	"time"

	"github.com/tomz197/nightsky/internal/config"
	"github.com/tomz197/nightsky/internal/logging"
	"github.com/tomz197/nightsky/internal/notes"
)

func main() {
	settings := config.Load()
	logger := logging.New(os.Stderr, "web", settings.Debug)

	var store notes.Store
	fileStore, err := notes.NewFileStore(settings.NotesDir)
	if err != nil {
		logger.Warn("note pad falls back to memory", "dir", settings.NotesDir, "err", err)
		store = notes.NewMemoryStore()
	} else {
		store = fileStore
	}

	addr := net.JoinHostPort(settings.WebHost, settings.WebPort)
	srv := &http.Server{
		Addr:              addr,
		Handler:           newHandler(settings.SSHDisplayHost, notes.NewPad(store), logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting web server", "addr", "http://"+addr, "notes", settings.NotesDir)
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal("server error", "err", err)
	}
}
