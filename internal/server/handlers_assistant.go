package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/jonathan/careerpath/internal/assistant"
	"github.com/jonathan/careerpath/internal/llm"
	"github.com/jonathan/careerpath/internal/types"
	"github.com/jonathan/careerpath/internal/wizard"
)

// chatRequest is the body of POST /api/assistant/chat. The server keeps no
// conversation state, so clients send the history with every message.
type chatRequest struct {
	Message string        `json:"message"`
	History []llm.Message `json:"history"`
	Resume  *types.Resume `json:"resume,omitempty"`
}

func (s *Server) handleAssistantChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxResumeBody)).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	reply, err := s.assistant.Reply(r.Context(), assistant.ChatRequest{
		Message: req.Message,
		History: req.History,
		Resume:  req.Resume,
	})
	switch {
	case errors.Is(err, assistant.ErrEmptyMessage):
		errorResponse(w, http.StatusBadRequest, "message is required")
		return
	case err != nil:
		s.logger.Error("assistant reply failed", zap.Error(err))
		errorResponse(w, http.StatusBadGateway, "Assistant is unavailable")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"reply": reply})
}

func (s *Server) handleAssistantTip(w http.ResponseWriter, r *http.Request) {
	step, err := strconv.Atoi(r.PathValue("step"))
	if err != nil || step < 1 || step > wizard.LastStep {
		errorResponse(w, http.StatusBadRequest, "invalid step")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{"step": step, "tip": s.assistant.StepTip(step)})
}
