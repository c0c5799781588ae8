package engine

import (
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	SummarizeRequests   atomic.Int64
	InvalidRequests     atomic.Int64
	TranscriptRequests  atomic.Int64
	DirectProbeWins     atomic.Int64
	PageScrapeWins      atomic.Int64
	YtDlpWins           atomic.Int64
	LibraryWins         atomic.Int64
	TranscriptFallbacks atomic.Int64
	MetadataFallbacks   atomic.Int64
	LLMCalls            atomic.Int64
	LLMErrors           atomic.Int64
}

// Strategy names as reported in metrics, logs and MCP output.
const (
	StrategyDirect     = "direct"
	StrategyPageScrape = "page_scrape"
	StrategyYtDlp      = "ytdlp"
	StrategyLibrary    = "library"
)

// GetMetrics returns a snapshot of all metrics.
func GetMetrics() map[string]int64 {
	return map[string]int64{
		"summarize_requests":     metrics.SummarizeRequests.Load(),
		"invalid_requests":       metrics.InvalidRequests.Load(),
		"transcript_requests":    metrics.TranscriptRequests.Load(),
		"transcript_direct":      metrics.DirectProbeWins.Load(),
		"transcript_page_scrape": metrics.PageScrapeWins.Load(),
		"transcript_ytdlp":       metrics.YtDlpWins.Load(),
		"transcript_library":     metrics.LibraryWins.Load(),
		"transcript_fallbacks":   metrics.TranscriptFallbacks.Load(),
		"metadata_fallbacks":     metrics.MetadataFallbacks.Load(),
		"llm_calls":              metrics.LLMCalls.Load(),
		"llm_errors":             metrics.LLMErrors.Load(),
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	keys := []string{
		"summarize_requests", "invalid_requests",
		"transcript_requests",
		"transcript_direct", "transcript_page_scrape", "transcript_ytdlp", "transcript_library",
		"transcript_fallbacks",
		"metadata_fallbacks",
		"llm_calls", "llm_errors",
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

func IncrSummarizeRequests()   { metrics.SummarizeRequests.Add(1) }
func IncrInvalidRequests()     { metrics.InvalidRequests.Add(1) }
func IncrTranscriptRequests()  { metrics.TranscriptRequests.Add(1) }
func IncrTranscriptFallbacks() { metrics.TranscriptFallbacks.Add(1) }
func IncrMetadataFallbacks()   { metrics.MetadataFallbacks.Add(1) }
func IncrLLMCalls()            { metrics.LLMCalls.Add(1) }
func IncrLLMErrors()           { metrics.LLMErrors.Add(1) }

// IncrStrategyWin records which strategy produced the accepted transcript.
func IncrStrategyWin(name string) {
	switch name {
	case StrategyDirect:
		metrics.DirectProbeWins.Add(1)
	case StrategyPageScrape:
		metrics.PageScrapeWins.Add(1)
	case StrategyYtDlp:
		metrics.YtDlpWins.Add(1)
	case StrategyLibrary:
		metrics.LibraryWins.Add(1)
	}
}

// WarnIfSlow logs a warning when the operation begun at start has run longer
// than threshold, and returns the elapsed time.
func WarnIfSlow(name string, threshold time.Duration, start time.Time) time.Duration {
	elapsed := time.Since(start)
	if elapsed > threshold {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return elapsed
}
