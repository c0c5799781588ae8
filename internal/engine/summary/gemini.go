package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anatolykoptev/go_ytsum/internal/engine"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const (
	GeminiAPIBase = "https://generativelanguage.googleapis.com"
	GeminiModel   = "gemini-1.5-flash"
)

// Gemini calls generateContent through the genai SDK.
type Gemini struct {
	apiKey   string
	endpoint string
	model    string
	cfg      Config
	timeout  time.Duration
}

// NewGemini builds a Gemini generator from cfg, filling unset fields with
// the package defaults.
func NewGemini(cfg Config) *Gemini {
	g := &Gemini{
		apiKey:   cfg.APIKey,
		endpoint: strings.TrimRight(cfg.BaseURL, "/"),
		model:    cfg.Model,
		cfg:      cfg,
		timeout:  cfg.Timeout,
	}
	if g.endpoint == "" {
		g.endpoint = GeminiAPIBase
	}
	if g.model == "" {
		g.model = GeminiModel
	}
	if g.timeout <= 0 {
		g.timeout = 60 * time.Second
	}
	return g
}

func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	client, err := genai.NewClient(ctx,
		option.WithAPIKey(g.apiKey),
		option.WithEndpoint(g.endpoint),
	)
	if err != nil {
		return "", fmt.Errorf("gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.model)
	model.SetTemperature(float32(g.cfg.Temperature))
	if g.cfg.TopK > 0 {
		model.SetTopK(int32(g.cfg.TopK))
	}
	if g.cfg.TopP > 0 {
		model.SetTopP(float32(g.cfg.TopP))
	}
	if g.cfg.MaxOutputTokens > 0 {
		model.SetMaxOutputTokens(int32(g.cfg.MaxOutputTokens))
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", mapGeminiError(err, g.apiKey)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrNoCandidates
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok || strings.TrimSpace(string(text)) == "" {
		return "", ErrNoCandidates
	}
	return string(text), nil
}

// mapGeminiError turns SDK errors into StatusError or ErrNoCandidates so
// failureMessage can word them.
func mapGeminiError(err error, key string) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		body := apiErr.Body
		if body == "" {
			body = apiErr.Message
		}
		return &StatusError{
			StatusCode: apiErr.Code,
			Body:       engine.TruncateRunes(strings.TrimSpace(body), 500, "..."),
		}
	}
	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return fmt.Errorf("%w: %v", ErrNoCandidates, blocked)
	}
	return fmt.Errorf("gemini request: %w", redactKey(err, key))
}

// redactKey keeps the API key out of error text; url.Error embeds the full URL.
func redactKey(err error, key string) error {
	if key == "" {
		return err
	}
	msg := strings.ReplaceAll(err.Error(), key, "REDACTED")
	if msg == err.Error() {
		return err
	}
	return errors.New(msg)
}
