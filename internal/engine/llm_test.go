package engine

import "testing"

func TestNewLLMClient(t *testing.T) {
	c := NewLLMClient(&Config{
		LLMAPIBase:         "http://127.0.0.1:1/v1",
		LLMAPIKey:          "k",
		LLMModel:           "m",
		LLMAPIKeyFallbacks: []string{"k2"},
		SummaryMaxTokens:   100,
		SummaryTemperature: 0.7,
	})
	if c == nil {
		t.Fatal("NewLLMClient() returned nil")
	}
}
