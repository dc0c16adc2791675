package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/wricardo/snake-showdown/game/engine"
	"github.com/wricardo/snake-showdown/game/service"
	"github.com/wricardo/snake-showdown/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	service service.MatchService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server
func NewServer(matchService service.MatchService, hub *websocket.Hub) *Server {
	s := &Server{
		service: matchService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	// API routes with clean REST patterns
	api := s.router.PathPrefix("/api").Subrouter()

	// Match management
	api.HandleFunc("/matches", s.handleCreateMatch).Methods("POST")
	api.HandleFunc("/matches", s.handleListMatches).Methods("GET")
	api.HandleFunc("/matches/{id}", s.handleGetMatch).Methods("GET")
	api.HandleFunc("/matches/{id}", s.handleDeleteMatch).Methods("DELETE")

	// Match operations
	api.HandleFunc("/matches/{id}/state", s.handleGetState).Methods("GET")
	api.HandleFunc("/matches/{id}/step", s.handleStep).Methods("POST")
	api.HandleFunc("/matches/{id}/tick", s.handleTick).Methods("POST")
	api.HandleFunc("/matches/{id}/intent", s.handleSubmitIntent).Methods("POST")
	api.HandleFunc("/matches/{id}/advance", s.handleAdvanceRound).Methods("POST")
	api.HandleFunc("/matches/{id}/run", s.handleRunMatch).Methods("POST")
	api.HandleFunc("/matches/{id}/summary", s.handleGetSummary).Methods("GET")

	// Configuration
	api.HandleFunc("/configs", s.handleListConfigs).Methods("GET")
	api.HandleFunc("/configs", s.handleCreateConfig).Methods("POST")
	api.HandleFunc("/configs/{name}", s.handleGetConfig).Methods("GET")

	// Health
	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)

	// Static files (if needed)
	s.router.PathPrefix("/").Handler(http.FileServer(http.Dir("./static/")))
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// Match Handlers

func (s *Server) handleCreateMatch(w http.ResponseWriter, r *http.Request) {
	var req service.CreateMatchRequest

	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	info, err := s.service.CreateMatch(r.Context(), req)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, info)
}

func (s *Server) handleListMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := s.service.ListMatches(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Parse query parameters
	query := r.URL.Query()
	sortBy := query.Get("sort")    // "created", "accessed" (default)
	order := query.Get("order")    // "asc", "desc" (default: "desc")
	limitStr := query.Get("limit") // number of matches to return

	// Set defaults
	if sortBy == "" {
		sortBy = "accessed"
	}
	if order == "" {
		order = "desc"
	}

	// Sort matches
	sort.Slice(matches, func(i, j int) bool {
		var ti, tj time.Time
		if sortBy == "created" {
			ti, tj = matches[i].CreatedAt, matches[j].CreatedAt
		} else { // "accessed"
			ti, tj = matches[i].LastAccessedAt, matches[j].LastAccessedAt
		}

		if order == "asc" {
			return ti.Before(tj)
		}
		return ti.After(tj) // desc
	})

	// Apply limit if specified
	limit := len(matches)
	if limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l < len(matches) {
			limit = l
		}
	}
	matches = matches[:limit]

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(matches),
		"matches": matches,
		"sort":    sortBy,
		"order":   order,
	})
}

func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	matchID := vars["id"]

	info, err := s.service.GetMatch(r.Context(), matchID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, info)
}

func (s *Server) handleDeleteMatch(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	matchID := vars["id"]

	err := s.service.DeleteMatch(r.Context(), matchID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Match %s deleted", matchID),
	})
}

// Match Operation Handlers

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	matchID := vars["id"]

	state, err := s.service.GetSnapshot(r.Context(), matchID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, state)
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	matchID := vars["id"]

	var req struct {
		Steps int `json:"steps"`
	}

	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}
	if req.Steps <= 0 {
		req.Steps = 1
	}

	result, err := s.service.Step(r.Context(), matchID, req.Steps)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Broadcast to WebSocket spectators
	if s.hub != nil {
		s.hub.BroadcastMatch(matchID, result.State)
	}

	// Compact server log for observability
	fmt.Printf("[STEP] match=%s exec=%d/%d round_over=%t match_over=%t\n",
		matchID, result.StepsExecuted, result.RequestedSteps, result.RoundOver, result.MatchOver)

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleTick(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	matchID := vars["id"]

	var req struct {
		Dt float64 `json:"dt"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	state, err := s.service.Tick(r.Context(), matchID, req.Dt)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if s.hub != nil {
		s.hub.BroadcastMatch(matchID, state)
	}

	respondJSON(w, http.StatusOK, state)
}

func (s *Server) handleSubmitIntent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	matchID := vars["id"]

	var req struct {
		Slot      int    `json:"slot"`
		Direction string `json:"direction"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.service.SubmitIntent(r.Context(), matchID, req.Slot, req.Direction); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	fmt.Printf("[INTENT] match=%s slot=%d dir=%s\n", matchID, req.Slot, req.Direction)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "Intent accepted",
		"slot":      req.Slot,
		"direction": req.Direction,
	})
}

func (s *Server) handleAdvanceRound(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	matchID := vars["id"]

	state, err := s.service.AdvanceRound(r.Context(), matchID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if s.hub != nil {
		s.hub.BroadcastMatch(matchID, state)
		s.hub.BroadcastEvent(matchID, "round_advanced", state.RoundsPlayed)
	}

	respondJSON(w, http.StatusOK, state)
}

func (s *Server) handleRunMatch(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	matchID := vars["id"]

	summary, err := s.service.RunMatch(r.Context(), matchID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if s.hub != nil {
		if state, err := s.service.GetSnapshot(r.Context(), matchID); err == nil {
			s.hub.BroadcastMatch(matchID, state)
		}
		s.hub.BroadcastEvent(matchID, "match_finished", summary)
	}

	// Compact server log for observability
	fmt.Printf("[RUN] match=%s rounds=%d winner=%s\n",
		matchID, len(summary.Rounds), summary.Winner)

	respondJSON(w, http.StatusOK, summary)
}

func (s *Server) handleGetSummary(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	matchID := vars["id"]

	summary, err := s.service.GetSummary(r.Context(), matchID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// Configuration Handlers

func (s *Server) handleListConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := s.service.ListConfigs(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, configs)
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	configName := vars["name"]

	// Remove .json extension if present
	configName = strings.TrimSuffix(configName, ".json")

	config, err := s.service.LoadConfig(r.Context(), configName)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, config)
}

func (s *Server) handleCreateConfig(w http.ResponseWriter, r *http.Request) {
	// Decode directly into engine.MatchConfig which has the correct structure
	var matchConfig engine.MatchConfig

	if err := json.NewDecoder(r.Body).Decode(&matchConfig); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Validate required fields
	if matchConfig.Name == "" {
		respondError(w, http.StatusBadRequest, "Config name is required")
		return
	}

	// Save configuration
	if err := s.service.SaveConfig(r.Context(), matchConfig.Name, &matchConfig); err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to save config: %v", err))
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "Configuration saved successfully",
		"config_id": matchConfig.Name,
	})
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	matchID := r.URL.Query().Get("match")
	if matchID == "" {
		http.Error(w, "match parameter required", http.StatusBadRequest)
		return
	}

	// Verify match exists
	_, err := s.service.GetMatch(context.Background(), matchID)
	if err != nil {
		http.Error(w, "Invalid match", http.StatusNotFound)
		return
	}

	// Upgrade to WebSocket
	s.hub.ServeWS(w, r, matchID)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
