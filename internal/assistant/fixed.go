package assistant

import (
	"context"
	"strings"

	"github.com/jonathan/careerpath/internal/types"
)

// Fixed is a deterministic ResponseProvider for tests and offline demos.
// Every chat message gets Answer; tips and feedback use the scripted rules.
type Fixed struct {
	Answer string
	Calls  []ChatRequest
}

// Greeting implements ResponseProvider.
func (f *Fixed) Greeting() string { return "Hello." }

// Reply implements ResponseProvider.
func (f *Fixed) Reply(_ context.Context, req ChatRequest) (string, error) {
	if strings.TrimSpace(req.Message) == "" {
		return "", ErrEmptyMessage
	}
	f.Calls = append(f.Calls, req)
	return f.Answer, nil
}

// StepTip implements ResponseProvider.
func (f *Fixed) StepTip(step int) string { return StepTip(step) }

// Feedback implements ResponseProvider.
func (f *Fixed) Feedback(r *types.Resume) string { return Feedback(r) }
