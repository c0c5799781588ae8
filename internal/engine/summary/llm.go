package summary

import (
	"context"
	"strings"

	"github.com/anatolykoptev/go-kit/llm"
)

// LLMGenerator uses an OpenAI-compatible chat endpoint through go-kit/llm.
// Temperature and token limits are set on the client at construction.
type LLMGenerator struct {
	Client *llm.Client
}

// Generate returns the model output unmodified.
func (g *LLMGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	raw, err := g.Client.Complete(ctx, "", prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(raw) == "" {
		return "", ErrNoCandidates
	}
	return raw, nil
}
