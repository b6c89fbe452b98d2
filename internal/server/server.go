// Package server is the local development server: a JSON API over the
// simulation state plus a websocket feed of per-tick snapshots for the
// renderer.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/iop0175/Roadmaker/pkg/config"
	"github.com/iop0175/Roadmaker/pkg/geo"
	"github.com/iop0175/Roadmaker/pkg/sim"
	"github.com/iop0175/Roadmaker/pkg/world"
)

// Server exposes the running simulation to the UI collaborator.
type Server struct {
	runner *sim.Runner
	cfg    config.Config
	port   int
	log    *logrus.Logger

	upgrader websocket.Upgrader
}

// New creates a server around a prepared runner.
func New(runner *sim.Runner, cfg config.Config, port int, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.New()
	}
	return &Server{
		runner: runner,
		cfg:    cfg,
		port:   port,
		log:    log,
		upgrader: websocket.Upgrader{
			// Local dev server; the renderer runs on another port.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Start launches the simulation loop and the HTTP server. Blocks.
func (s *Server) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("GET /api/config", s.handleConfig)
	mux.HandleFunc("POST /api/roads", s.handleAddRoad)
	mux.HandleFunc("DELETE /api/roads/{id}", s.handleRemoveRoad)
	mux.HandleFunc("POST /api/reset", s.handleReset)
	mux.HandleFunc("GET /ws", s.handleWebsocket)
	mux.HandleFunc("GET /", s.handleIndex)

	s.runner.Start()
	defer s.runner.Stop()

	addr := fmt.Sprintf(":%d", s.port)
	s.log.WithField("addr", addr).Info("roadmaker server starting")
	return http.ListenAndServe(addr, mux)
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<!DOCTYPE html>
<html><head><title>Roadmaker</title></head>
<body style="margin:0;background:#111;color:#fff;font-family:system-ui;display:flex;align-items:center;justify-content:center;height:100vh">
<div style="text-align:center">
<h1>Roadmaker</h1>
<p>Engine API is live. Connect a renderer to <code>/ws</code> for the state feed.</p>
</div>
</body></html>`)
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.runner.State().Snapshot())
}

func (s *Server) handleConfig(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.cfg)
}

// addRoadRequest is the drawn-road payload from the UI.
type addRoadRequest struct {
	Start   geo.Point  `json:"start"`
	End     geo.Point  `json:"end"`
	Control *geo.Point `json:"control,omitempty"`
}

func (s *Server) handleAddRoad(w http.ResponseWriter, r *http.Request) {
	var req addRoadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	road, err := s.runner.State().AddRoad(req.Start, req.End, req.Control)
	if err != nil {
		var rej *world.Rejection
		if errors.As(err, &rej) {
			// An unplaceable road is an expected outcome, not a fault.
			writeJSON(w, http.StatusConflict, map[string]any{
				"rejected": true,
				"reason":   rej.Reason,
				"at":       rej.At,
			})
			return
		}
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, road)
}

func (s *Server) handleRemoveRoad(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.runner.State().RemoveRoad(id) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no such road"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"removed": true})
}

func (s *Server) handleReset(w http.ResponseWriter, _ *http.Request) {
	seed := time.Now().UnixNano()
	s.runner.State().Reset(seed)
	writeJSON(w, http.StatusOK, map[string]int64{"seed": seed})
}

// handleWebsocket pushes snapshots to the renderer at a fixed cadence until
// the peer goes away.
func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()
	s.log.WithField("remote", conn.RemoteAddr().String()).Info("renderer connected")

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		if err := conn.WriteJSON(s.runner.State().Snapshot()); err != nil {
			s.log.WithField("remote", conn.RemoteAddr().String()).Info("renderer disconnected")
			return
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
