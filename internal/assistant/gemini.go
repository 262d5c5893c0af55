package assistant

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/careerpath/internal/llm"
	"github.com/jonathan/careerpath/internal/prompts"
	"github.com/jonathan/careerpath/internal/types"
)

// Gemini answers chat through an LLM. When the model call fails it answers with the
// scripted provider instead so the user always gets a reply.
type Gemini struct {
	client   llm.Client
	fallback *Scripted
	logger   *zap.Logger
}

// NewGemini wraps client. fallback may be nil, in which case a zero-delay Scripted is used.
func NewGemini(client llm.Client, fallback *Scripted, logger *zap.Logger) *Gemini {
	if fallback == nil {
		fallback = &Scripted{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gemini{client: client, fallback: fallback, logger: logger}
}

// Greeting implements ResponseProvider.
func (g *Gemini) Greeting() string { return g.fallback.Greeting() }

// Reply implements ResponseProvider.
func (g *Gemini) Reply(ctx context.Context, req ChatRequest) (string, error) {
	if strings.TrimSpace(req.Message) == "" {
		return "", ErrEmptyMessage
	}

	system := prompts.Assistant(prompts.KeySystem)
	if req.Resume != nil {
		system += "\n\n" + resumeContext(req.Resume)
	}

	reply, err := g.client.Chat(ctx, system, req.History, req.Message, llm.TierLite)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		g.logger.Warn("assistant model call failed, using scripted reply", zap.Error(err))
		return g.fallback.Reply(ctx, req)
	}
	return reply, nil
}

// StepTip implements ResponseProvider.
func (g *Gemini) StepTip(step int) string { return StepTip(step) }

// Feedback implements ResponseProvider.
func (g *Gemini) Feedback(r *types.Resume) string { return Feedback(r) }

func resumeContext(r *types.Resume) string {
	target := r.TargetPosition
	if target == "" {
		target = "an unspecified role"
	}
	skills := strings.Join(r.Skills, ", ")
	if skills == "" {
		skills = "none yet"
	}
	summary := r.Summary
	if summary == "" {
		summary = "(empty)"
	}
	return prompts.Format(prompts.Assistant(prompts.KeyResumeContext), map[string]string{
		"TargetPosition": target,
		"Skills":         skills,
		"Summary":        summary,
	})
}
