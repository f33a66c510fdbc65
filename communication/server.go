package communication

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"stratego/game"
	"stratego/rules"
	"stratego/searcher/agent"
)

// Server is the thin command/notification shell around the engine: it
// forwards validated commands to the rules engine and AI orchestrator and
// publishes accepted moves to websocket subscribers. No game logic lives
// here.
type Server struct {
	mu    sync.RWMutex
	rules rules.Engine
	orc   *agent.Orchestrator
	state *game.GameState

	upgrader websocket.Upgrader
	subMu    sync.Mutex
	subs     map[*websocket.Conn]struct{}
}

func NewServer(rulesEngine rules.Engine, orc *agent.Orchestrator, initial *game.GameState) *Server {
	return &Server{
		rules: rulesEngine,
		orc:   orc,
		state: initial,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		subs: map[*websocket.Conn]struct{}{},
	}
}

// Router mounts the REST and websocket endpoints.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/api/state", s.handleState)
	r.Post("/api/placement", s.handlePlacement)
	r.Post("/api/start", s.handleStart)
	r.Post("/api/move", s.handleMove)
	r.Post("/api/ai-move", s.handleAIMove)
	r.Get("/ws", s.handleWS)
	return r
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	dto := stateToDTO(s.state)
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, dto)
}

func (s *Server) handlePlacement(w http.ResponseWriter, r *http.Request) {
	var req placementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "decode", err)
		return
	}
	rank, ok := rankByName[req.Rank]
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown rank " + req.Rank, Class: "decode"})
		return
	}
	side, ok := sideByName[req.Side]
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown side " + req.Side, Class: "decode"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Setup alternation is the shell's convention: the requested side is
	// made active for its own placement.
	gs := s.state.Copy()
	gs.ActivePlayer = side
	piece := game.Piece{Rank: rank, Owner: side}
	pos := game.Position{Row: req.Row, Col: req.Col}
	if err := s.rules.ValidatePlacement(gs, piece, pos); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation", err)
		return
	}
	next, err := s.rules.ApplyPlacement(gs, piece, pos)
	if err != nil {
		writeError(w, http.StatusConflict, "rule_violation", err)
		return
	}
	s.state = next
	writeJSON(w, http.StatusOK, stateToDTO(next))
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Phase != game.Setup {
		writeJSON(w, http.StatusConflict, errorResponse{Error: "game already started", Class: "rule_violation"})
		return
	}
	if !s.rules.IsSetupComplete(s.state) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "both armies must be complete", Class: "validation"})
		return
	}
	s.state = s.state.BeginPlay()
	writeJSON(w, http.StatusOK, stateToDTO(s.state))
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "decode", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	from := game.Position{Row: req.FromRow, Col: req.FromCol}
	to := game.Position{Row: req.ToRow, Col: req.ToCol}
	if !from.InBounds() {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "origin out of bounds", Class: "validation"})
		return
	}
	piece := s.state.Board.PieceAt(from)
	if piece == nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "no piece at origin", Class: "validation"})
		return
	}
	move := game.Move{Piece: *piece, From: from, To: to}

	if err := s.rules.ValidateMove(s.state, move); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation", err)
		return
	}
	next, err := s.rules.ApplyMove(s.state, move)
	if err != nil {
		writeError(w, http.StatusConflict, "rule_violation", err)
		return
	}
	s.state = next
	s.broadcast(next)
	writeJSON(w, http.StatusOK, stateToDTO(next))
}

func (s *Server) handleAIMove(w http.ResponseWriter, r *http.Request) {
	var req aiMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "decode", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Phase != game.Playing {
		writeJSON(w, http.StatusConflict, errorResponse{Error: "game is not in play", Class: "rule_violation"})
		return
	}

	playerType := s.state.PlayerFor(s.state.ActivePlayer).Type
	if playerType == game.Human {
		writeJSON(w, http.StatusConflict, errorResponse{Error: "active player is human", Class: "rule_violation"})
		return
	}
	move, err := s.orc.RequestMove(s.state, agent.DifficultyFor(playerType), time.Duration(req.TimeLimitMs)*time.Millisecond)
	if err != nil {
		var failed *agent.AIMoveFailedError
		if errors.As(err, &failed) {
			writeError(w, http.StatusInternalServerError, "ai_move_failed", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal", err)
		return
	}

	next, err := s.rules.ApplyMove(s.state, move)
	if err != nil {
		writeError(w, http.StatusConflict, "rule_violation", err)
		return
	}
	s.state = next
	s.broadcast(next)
	writeJSON(w, http.StatusOK, stateToDTO(next))
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	s.subMu.Lock()
	s.subs[conn] = struct{}{}
	s.subMu.Unlock()

	// Drain (and discard) client frames so closes are noticed.
	go func() {
		defer s.dropSubscriber(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// broadcast pushes the new state to every subscriber. A subscriber that
// cannot be written to is dropped.
func (s *Server) broadcast(gs *game.GameState) {
	dto := stateToDTO(gs)

	s.subMu.Lock()
	defer s.subMu.Unlock()
	for conn := range s.subs {
		if err := conn.WriteJSON(dto); err != nil {
			conn.Close()
			delete(s.subs, conn)
		}
	}
}

func (s *Server) dropSubscriber(conn *websocket.Conn) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	conn.Close()
	delete(s.subs, conn)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, class string, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error(), Class: class})
}
