// Package server exposes the HTTP JSON surface of the debate service.
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/comigor/debatemate/internal/debate"
	"github.com/comigor/debatemate/internal/engine"
	"github.com/comigor/debatemate/internal/logger"
	"github.com/comigor/debatemate/internal/users"
)

// Server routes API requests to the debate engine and the user service.
type Server struct {
	engine *engine.Engine
	users  *users.Service
}

func New(e *engine.Engine, u *users.Service) *Server {
	return &Server{engine: e, users: u}
}

// Routes builds the request mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/debates", s.handleListDebates)
	mux.HandleFunc("GET /api/debates/{id}", s.handleGetDebate)
	mux.HandleFunc("POST /api/debates", s.handleCreateDebate)
	mux.HandleFunc("POST /api/debates/{id}/messages", s.handleAddMessage)
	mux.HandleFunc("PUT /api/debates/{id}/close", s.handleCloseDebate)
	mux.HandleFunc("POST /api/users/register", s.handleRegister)
	mux.HandleFunc("POST /api/users/login", s.handleLogin)
	return mux
}

func (s *Server) handleListDebates(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.engine.List(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleGetDebate(w http.ResponseWriter, r *http.Request) {
	d, err := s.engine.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleCreateDebate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Topic  string `json:"topic"`
		Stance string `json:"stance"`
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	d, err := s.engine.Start(r.Context(), req.Topic, req.Stance, req.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func (s *Server) handleAddMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id := r.PathValue("id")
	msgs, err := s.engine.AdvanceTurn(r.Context(), id, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"debateId": id,
		"messages": msgs,
	})
}

func (s *Server) handleCloseDebate(w http.ResponseWriter, r *http.Request) {
	d, err := s.engine.Close(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Debate closed successfully",
		"debate":  d,
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := s.users.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := s.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.L.Error("encode response", "error", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// writeError maps the domain error taxonomy to HTTP statuses: validation and
// closed-session failures are 400, unknown ids 404, bad credentials 401, and
// everything else (persistence included) a generic 500.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, debate.ErrValidation), errors.Is(err, debate.ErrSessionClosed), errors.Is(err, users.ErrUserExists):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, debate.ErrNotFound):
		writeMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, users.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
	default:
		logger.L.Error("request failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
	}
}
