package llm

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), DefaultConfig(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key is required")
}

func TestNewClient_UnsupportedProvider(t *testing.T) {
	_, err := NewClient(context.Background(), &Config{Provider: "carrier-pigeon"}, "key")
	assert.Error(t, err)
}

func TestToContents_SkipsBlankTurns(t *testing.T) {
	got := toContents([]Message{
		{Role: RoleModel, Text: "Hi!"},
		{Role: RoleUser, Text: "   "},
		{Role: RoleUser, Text: "Help me"},
	})
	require.Len(t, got, 2)
	assert.Equal(t, "model", got[0].Role)
	assert.Equal(t, genai.Text("Help me"), got[1].Parts[0])
}

func TestExtractTextFromResponse(t *testing.T) {
	_, err := extractTextFromResponse(&genai.GenerateContentResponse{})
	assert.Error(t, err)

	_, err = extractTextFromResponse(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{}}},
	})
	assert.Error(t, err)

	text, err := extractTextFromResponse(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []genai.Part{genai.Text(" Use "), genai.Text("action verbs. ")}}}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Use action verbs.", text)
}
