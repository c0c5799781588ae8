// Package summary turns a transcript into a natural-language summary.
//
// Summarize never fails: a missing key, a transport error or an unexpected
// response shape all come back as descriptive text in place of the summary.
package summary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anatolykoptev/go_ytsum/internal/engine"
)

const (
	// MissingKeyMessage replaces the summary when no API key is configured.
	MissingKeyMessage = "Summary unavailable: GEMINI_API_KEY is not configured."

	// TruncationMarker is appended to transcripts cut at MaxChars.
	TruncationMarker = "\n\n[transcript truncated]"

	DefaultMaxChars   = 12000
	DefaultParagraphs = 3
	DefaultLanguage   = "Turkish"
)

// ErrNoCandidates means the API answered 200 without generated text.
var ErrNoCandidates = errors.New("response contains no generated text")

// StatusError is a non-200 answer from the summarization API.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// Config carries the API key and generation settings. The key is passed in
// explicitly; nothing here reads the environment.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string

	Language   string
	Paragraphs int
	MaxChars   int

	Temperature     float64
	TopK            int
	TopP            float64
	MaxOutputTokens int

	Timeout time.Duration
}

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Summarizer builds the prompt and calls a Generator.
type Summarizer struct {
	cfg Config
	gen Generator // nil when no API key is configured
}

// New returns a Summarizer backed by the Gemini API, or one that only
// reports MissingKeyMessage when cfg.APIKey is empty.
func New(cfg Config) *Summarizer {
	if cfg.APIKey == "" {
		return &Summarizer{cfg: cfg}
	}
	return &Summarizer{cfg: cfg, gen: NewGemini(cfg)}
}

// NewWithGenerator returns a Summarizer using gen. A nil gen behaves like a
// missing key.
func NewWithGenerator(cfg Config, gen Generator) *Summarizer {
	return &Summarizer{cfg: cfg, gen: gen}
}

// Summarize returns the generated summary, or a descriptive message when
// it cannot be produced.
func (s *Summarizer) Summarize(ctx context.Context, transcript string) string {
	if s.gen == nil {
		return MissingKeyMessage
	}

	prompt := BuildPrompt(transcript, s.cfg)
	engine.IncrLLMCalls()
	text, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		engine.IncrLLMErrors()
		slog.Warn("summary: generation failed", slog.Any("error", err))
		return failureMessage(err)
	}
	return text
}

func failureMessage(err error) string {
	var se *StatusError
	if errors.As(err, &se) || errors.Is(err, ErrNoCandidates) {
		return "Summary could not be generated: " + err.Error()
	}
	return "Summary API error: " + err.Error()
}

const promptTemplate = `Summarize the following YouTube video transcript in %s.

Write %d short paragraphs covering the main points in the order they appear.
Then add a section titled "Key takeaways" with 3 to 5 bullet points.
Use only information from the transcript.

Transcript:
%s`

// BuildPrompt embeds the truncated transcript in the instruction template.
func BuildPrompt(transcript string, cfg Config) string {
	lang := cfg.Language
	if lang == "" {
		lang = DefaultLanguage
	}
	paragraphs := cfg.Paragraphs
	if paragraphs <= 0 {
		paragraphs = DefaultParagraphs
	}
	maxChars := cfg.MaxChars
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	return fmt.Sprintf(promptTemplate, lang, paragraphs, Truncate(strings.TrimSpace(transcript), maxChars))
}

// Truncate cuts s to exactly maxChars characters plus TruncationMarker.
// Text at or under the cap is returned unchanged.
func Truncate(s string, maxChars int) string {
	if engine.RuneLen(s) <= maxChars {
		return s
	}
	return string([]rune(s)[:maxChars]) + TruncationMarker
}
