package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/parlorhouse/parlor/game/registry"
	"github.com/parlorhouse/parlor/game/room"
	"github.com/parlorhouse/parlor/transport/websocket"
)

// Server is the HTTP surface of the room server.
type Server struct {
	registry     *registry.Registry
	ws           *websocket.Handler
	router       *mux.Router
	defaultSeats int
}

// NewServer wires the REST routes and the websocket route.
func NewServer(reg *registry.Registry, ws *websocket.Handler, defaultSeats int) *Server {
	s := &Server{
		registry:     reg,
		ws:           ws,
		router:       mux.NewRouter(),
		defaultSeats: defaultSeats,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/rooms", s.handleCreateRoom).Methods("POST")
	api.HandleFunc("/rooms", s.handleListRooms).Methods("GET")
	api.HandleFunc("/rooms/{code}/state", s.handleRoomState).Methods("GET")
	api.HandleFunc("/rooms/{code}/players/{clientID}/action", s.handleSubmitAction).Methods("POST")

	s.router.HandleFunc("/ws/{code}", s.handleWebSocket)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GameType string `json:"game_type"`
		Seats    int    `json:"seats,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	factory, ok := gameTypes[req.GameType]
	if !ok {
		respondError(w, http.StatusBadRequest, "Unknown game type")
		return
	}

	seats := req.Seats
	if seats <= 0 {
		seats = s.defaultSeats
	}

	rm := s.registry.Create(factory(seats))
	logrus.WithFields(logrus.Fields{
		"room":      rm.Code(),
		"game_type": req.GameType,
		"seats":     seats,
	}).Info("room created")

	respondJSON(w, http.StatusCreated, map[string]string{"code": rm.Code()})
}

func (s *Server) handleListRooms(w http.ResponseWriter, r *http.Request) {
	rooms := s.registry.List()
	summaries := make([]room.Summary, 0, len(rooms))
	for _, rm := range rooms {
		summaries = append(summaries, rm.Summarize())
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"count": len(summaries),
		"rooms": summaries,
	})
}

func (s *Server) handleRoomState(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	rm, ok := s.registry.Lookup(code)
	if !ok {
		respondError(w, http.StatusNotFound, "Game not found")
		return
	}

	public, over, final := rm.StateSnapshot()
	respondJSON(w, http.StatusOK, map[string]any{
		"public_state": public,
		"is_over":      over,
		"final_result": final,
	})
}

// handleSubmitAction lets non-websocket clients act in a game. Connected
// websocket clients still receive the resulting state broadcast.
func (s *Server) handleSubmitAction(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	rm, ok := s.registry.Lookup(vars["code"])
	if !ok {
		respondError(w, http.StatusNotFound, "Game not found")
		return
	}

	var move json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&move); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if rm.IsOver() {
		respondJSON(w, http.StatusOK, map[string]any{
			"status":       "Game already over",
			"final_result": rm.FinalResult(),
		})
		return
	}

	if err := rm.SubmitMove(vars["clientID"], move); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "Action accepted"})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	s.ws.ServeWS(w, r, mux.Vars(r)["code"])
}
