package engine

import (
	"net/http"

	"github.com/anatolykoptev/go-kit/llm"
)

// NewLLMClient builds the OpenAI-compatible client from config.
// Sampling parameters are fixed at construction so every call uses the same
// generation settings.
func NewLLMClient(c *Config) *llm.Client {
	return llm.NewClient(c.LLMAPIBase, c.LLMAPIKey, c.LLMModel,
		llm.WithFallbackKeys(c.LLMAPIKeyFallbacks),
		llm.WithMaxTokens(c.SummaryMaxTokens),
		llm.WithTemperature(c.SummaryTemperature),
		llm.WithHTTPClient(&http.Client{Timeout: c.SummaryTimeout}),
	)
}
