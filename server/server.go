// Package server exposes CarMesh over HTTP: a query endpoint returning the
// merged envelope, a capability listing, a health probe, and a WebSocket
// feed streaming trace events live while requests execute.
package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/carmesh/carmesh/core"
	"github.com/carmesh/carmesh/logging"
)

// Mesh is the part of the carmesh façade the server drives.
type Mesh interface {
	Handle(ctx context.Context, text string, optFns ...func(q *core.Query)) (core.Envelope, error)
	Capabilities() []core.AgentCapability
}

// QueryRequest is the POST /query body.
type QueryRequest struct {
	Query     string `json:"query"`
	MaxBudget int    `json:"max_budget,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server serves the CarMesh HTTP API.
type Server struct {
	mesh   Mesh
	hub    *Hub
	logger logging.Logger
	mux    *http.ServeMux

	upgrader websocket.Upgrader
}

// Options configure a Server.
type Options struct {
	// Logger defaults to NoOp if nil.
	Logger logging.Logger

	// Hub broadcasts trace events; pass the hub wired into the mesh's
	// emitter so clients see live progress. Nil creates a detached hub
	// (the /ws endpoint works but never receives events).
	Hub *Hub
}

// New creates a Server for the given mesh.
func New(mesh Mesh, optFns ...func(o *Options)) *Server {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	if opts.Hub == nil {
		opts.Hub = NewHub(opts.Logger)
	}

	s := &Server{
		mesh:   mesh,
		hub:    opts.Hub,
		logger: opts.Logger,
		mux:    http.NewServeMux(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The trace feed is read-only telemetry, safe cross-origin.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
	s.mux.HandleFunc("/query", s.handleQuery)
	s.mux.HandleFunc("/agents", s.handleAgents)
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/ws", s.handleWS)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Hub returns the trace hub so it can be wired into the mesh's emitter.
func (s *Server) Hub() *Hub { return s.hub }

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "use POST"})
		return
	}

	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	env, err := s.mesh.Handle(r.Context(), req.Query, func(q *core.Query) {
		q.MaxBudget = req.MaxBudget
	})
	if err != nil {
		s.logger.Error("query failed", "error", err)
		status := http.StatusInternalServerError
		if r.Context().Err() != nil {
			status = http.StatusRequestTimeout
		}
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, env)
}

func (s *Server) handleAgents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "use GET"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"agents": s.mesh.Capabilities()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"ws_clients": s.hub.ClientCount(),
	})
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	s.hub.serve(conn)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
