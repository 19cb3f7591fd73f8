package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/gamemate-ai/gamemate/internal/chat"
)

type chatRequest struct {
	SessionID string `json:"session_id"` // empty for new sessions
	Input     string `json:"input"`
}

type chatResponse struct {
	SessionID string `json:"session_id"`
	Answer    string `json:"answer"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type messageJSON struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.Input == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "input is required"})
		return
	}

	// Session ids are normally supplied by the hosting layer; hand out a
	// fresh one when the caller has none yet.
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	answer, err := s.chat.HandleTurn(r.Context(), sessionID, req.Input)
	if err != nil {
		if errors.Is(err, chat.ErrGenerationUnavailable) {
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{
				Error: "the assistant is temporarily unavailable, please try again",
			})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{SessionID: sessionID, Answer: answer})
}

func (s *Server) handleGetMessages(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	turns, err := s.history.Get(r.Context(), sessionID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	messages := make([]messageJSON, len(turns))
	for i, t := range turns {
		messages[i] = messageJSON{Role: string(t.Role), Content: t.Content}
	}
	writeJSON(w, http.StatusOK, messages)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
