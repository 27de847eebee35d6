// Package server exposes a finished tag graph over a read-only HTTP API.
//
// The graph is built once at startup and never refreshed; the server is
// a thin view over the immutable result, safe for concurrent readers.
// The per-process build ID doubles as the ETag for every response, so
// clients can cheaply detect that nothing changed between requests.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/tagmesh/tagmesh/pkg/errors"
	"github.com/tagmesh/tagmesh/pkg/graphio"
	"github.com/tagmesh/tagmesh/pkg/render"
	"github.com/tagmesh/tagmesh/pkg/taggraph"
)

// Server serves one immutable tag graph.
type Server struct {
	graph   *taggraph.Graph
	root    string
	buildID string
	logger  *log.Logger
}

// New creates a server over a finished graph. root is the walked root
// path, reported in /api/info.
func New(g *taggraph.Graph, root string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		graph:   g,
		root:    root,
		buildID: uuid.NewString(),
		logger:  logger,
	}
}

// BuildID returns the unique ID assigned to this build of the graph.
func (s *Server) BuildID() string { return s.buildID }

// Router assembles the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Get("/api/info", s.handleInfo)
	r.Get("/api/graph", s.handleGraph)
	r.Get("/api/tags", s.handleTags)
	r.Get("/api/tags/assigned", s.handleAssigned)
	r.Get("/api/paths/tags", s.handlePathTags)
	r.Get("/render.svg", s.handleRenderSVG)

	return r
}

// logRequests logs each request with its duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debugf("%s %s (%s)", r.Method, r.URL.Path, time.Since(start).Round(time.Millisecond))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"root":     s.root,
		"build_id": s.buildID,
		"nodes":    s.graph.NodeCount(),
		"edges":    s.graph.EdgeCount(),
	})
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, graphio.FromGraph(s.graph))
}

// tagEntry is one tag with its assignment count.
type tagEntry struct {
	Tag      string `json:"tag"`
	Assigned int    `json:"assigned"`
}

func (s *Server) handleTags(w http.ResponseWriter, r *http.Request) {
	tags := taggraph.AllTags(s.graph)
	entries := make([]tagEntry, 0, len(tags))
	for _, tag := range tags {
		idx, _ := s.graph.Lookup(tag)
		entries = append(entries, tagEntry{
			Tag:      tag.Tag,
			Assigned: len(taggraph.AssignedTo(s.graph, idx)),
		})
	}
	s.writeJSON(w, http.StatusOK, entries)
}

// entityEntry is one filesystem entity in an API response.
type entityEntry struct {
	Kind string `json:"kind"`
	Path string `json:"path"`
}

func (s *Server) handleAssigned(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("tag")
	idx, ok := s.graph.Lookup(taggraph.TagNode(name))
	if !ok {
		s.writeError(w, errors.New(errors.ErrCodeNotFound, "unknown tag %q", name))
		return
	}

	entities := taggraph.AssignedTo(s.graph, idx)
	entries := make([]entityEntry, 0, len(entities))
	for _, e := range entities {
		entries = append(entries, entityEntry{Kind: e.Kind.String(), Path: e.Path})
	}
	s.writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handlePathTags(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	idx, ok := taggraph.LookupPath(s.graph, path)
	if !ok {
		s.writeError(w, errors.New(errors.ErrCodeNotFound, "no entity for path %q", path))
		return
	}

	tags := taggraph.TagsOf(s.graph, idx)
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Tag)
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"path": path, "tags": names})
}

func (s *Server) handleRenderSVG(w http.ResponseWriter, r *http.Request) {
	dot := render.ToDOT(s.graph, render.Options{
		ShowAssignments: r.URL.Query().Get("assignments") == "true",
	})
	svg, err := render.RenderSVG(r.Context(), dot)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("ETag", `"`+s.buildID+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(svg)
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("ETag", `"`+s.buildID+`"`)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Errorf("encode response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, errors.ErrCodeNotFound) {
		status = http.StatusNotFound
	} else if errors.Is(err, errors.ErrCodeInvalidInput) {
		status = http.StatusBadRequest
	}
	s.writeJSON(w, status, errorResponse{Error: errors.UserMessage(err), Code: errors.GetCode(err)})
}
