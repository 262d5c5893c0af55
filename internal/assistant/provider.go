// Package assistant provides the resume assistant: chat replies, per-step tips and
// resume feedback. The default provider is scripted; Gemini can answer chat instead.
package assistant

import (
	"context"
	"errors"

	"github.com/jonathan/careerpath/internal/llm"
	"github.com/jonathan/careerpath/internal/types"
)

// ErrEmptyMessage is returned when a chat message is blank.
var ErrEmptyMessage = errors.New("message is empty")

// ChatRequest is one user turn with the conversation so far.
type ChatRequest struct {
	Message string        `json:"message" validate:"required"`
	History []llm.Message `json:"-"`
	// Resume optionally gives the assistant context about what the user is editing.
	Resume *types.Resume `json:"resume,omitempty"`
}

// ResponseProvider answers chat messages and produces resume guidance.
type ResponseProvider interface {
	Greeting() string
	Reply(ctx context.Context, req ChatRequest) (string, error)
	StepTip(step int) string
	Feedback(r *types.Resume) string
}
