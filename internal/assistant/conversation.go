package assistant

import (
	"context"
	"errors"
	"sync"

	"github.com/jonathan/careerpath/internal/llm"
	"github.com/jonathan/careerpath/internal/types"
)

// Conversation is a chat transcript that starts with the provider's greeting.
// It is safe for concurrent use; sends are serialized.
type Conversation struct {
	mu       sync.Mutex
	provider ResponseProvider
	messages []llm.Message
	resume   *types.Resume
}

// NewConversation starts a conversation about r (which may be nil).
func NewConversation(p ResponseProvider, r *types.Resume) *Conversation {
	return &Conversation{
		provider: p,
		resume:   r,
		messages: []llm.Message{{Role: llm.RoleModel, Text: p.Greeting()}},
	}
}

// Send records message, waits for the reply and records it. Blank messages are
// rejected without touching the transcript. On error only the user's turn is kept.
func (c *Conversation) Send(ctx context.Context, message string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	req := ChatRequest{
		Message: message,
		History: append([]llm.Message(nil), c.messages...),
		Resume:  c.resume,
	}
	if req.Message == "" {
		return "", ErrEmptyMessage
	}

	reply, err := c.provider.Reply(ctx, req)
	if errors.Is(err, ErrEmptyMessage) {
		return "", err
	}
	c.messages = append(c.messages, llm.Message{Role: llm.RoleUser, Text: message})
	if err != nil {
		return "", err
	}
	c.messages = append(c.messages, llm.Message{Role: llm.RoleModel, Text: reply})
	return reply, nil
}

// Messages returns the transcript so far.
func (c *Conversation) Messages() []llm.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]llm.Message(nil), c.messages...)
}
