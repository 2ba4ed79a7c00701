package server

import (
	"TUI_motivation_player/internal/core/domain"
	"TUI_motivation_player/internal/core/ports"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/eknkc/pug"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed assets
var assets embed.FS

// Selection status values reported to the player page.
const (
	StatusLoading = "loading"
	StatusEmpty   = "empty"
	StatusReady   = "ready"
)

// SelectionSnapshot is what the player page needs to show the current video.
type SelectionSnapshot struct {
	VideoID   string `json:"videoId"`
	Title     string `json:"title"`
	ReplayKey int    `json:"replayKey"`
	Status    string `json:"status"`
}

// NewSelectionSnapshot describes state for the page. A nil catalog means the
// catalog is still loading.
func NewSelectionSnapshot(catalog domain.Catalog, state domain.SelectionState) SelectionSnapshot {
	switch {
	case catalog == nil:
		return SelectionSnapshot{Status: StatusLoading}
	case len(catalog) == 0:
		return SelectionSnapshot{Status: StatusEmpty}
	}

	snap := SelectionSnapshot{Status: StatusReady, VideoID: state.Current, ReplayKey: state.ReplayKey}
	if v, ok := catalog.Find(state.Current); ok {
		snap.Title = v.Title
	}
	return snap
}

type stateRequest struct {
	Data *int `json:"data"`
}

// PlayerServer hosts the embedded player page on a loopback address.
type PlayerServer struct {
	hub    *PlayerHub
	log    ports.LoggerPort
	page   *template.Template
	router chi.Router

	mu         sync.RWMutex
	selection  SelectionSnapshot
	httpServer *http.Server
}

func NewPlayerServer(hub *PlayerHub, logger ports.LoggerPort) (*PlayerServer, error) {
	source, err := assets.ReadFile("assets/templates/player.pug")
	if err != nil {
		return nil, fmt.Errorf("error while reading player template: %w", err)
	}

	page, err := pug.Compile(string(source), pug.Options{})
	if err != nil {
		return nil, fmt.Errorf("error while compiling player template: %w", err)
	}

	s := &PlayerServer{
		hub:       hub,
		log:       logger,
		page:      page,
		selection: SelectionSnapshot{Status: StatusLoading},
	}
	s.router = s.routes()

	return s, nil
}

func (s *PlayerServer) routes() chi.Router {
	static, _ := fs.Sub(assets, "assets/static")

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.handlePage)
	r.Get("/health", s.handleHealth)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	r.Route("/api", func(r chi.Router) {
		r.Get("/selection", s.handleSelection)
		r.Post("/player/state", s.handlePlayerState)
	})

	return r
}

func (s *PlayerServer) Handler() http.Handler {
	return s.router
}

// SetSelection publishes what the page should play next.
func (s *PlayerServer) SetSelection(snap SelectionSnapshot) {
	s.mu.Lock()
	s.selection = snap
	s.mu.Unlock()
}

func (s *PlayerServer) Selection() SelectionSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selection
}

// Start binds addr synchronously so a port clash is reported to the caller,
// then serves in the background until Shutdown.
func (s *PlayerServer) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("player server could not listen on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.mu.Lock()
	s.httpServer = srv
	s.mu.Unlock()

	go func() {
		s.log.Info("Player server listening on " + ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("Player server stopped", err)
		}
	}()

	return nil
}

func (s *PlayerServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.httpServer
	s.httpServer = nil
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

func (s *PlayerServer) handlePage(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(w, nil); err != nil {
		s.log.Error("error while rendering player page", err)
	}
}

func (s *PlayerServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *PlayerServer) handleSelection(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, s.Selection())
}

func (s *PlayerServer) handlePlayerState(w http.ResponseWriter, r *http.Request) {
	var req stateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1024)).Decode(&req); err != nil || req.Data == nil {
		http.Error(w, "expected body {\"data\": <state code>}", http.StatusBadRequest)
		return
	}

	state, err := domain.ParsePlayerState(*req.Data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.hub.Publish(state)
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
