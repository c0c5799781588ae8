// Package transcript resolves the spoken text of a YouTube video through an
// ordered cascade of acquisition strategies.
//
// Strategies never return errors to the caller. Each one reports a Result:
// either text, or the reason it produced nothing. The Resolver accepts the
// first result longer than MinAdequateChars and otherwise falls through to
// the next strategy, ending in a placeholder text that names the video.
package transcript

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/anatolykoptev/go_ytsum/internal/engine"
)

// MinAdequateChars is the adequacy threshold: a transcript must be longer
// than this many characters to stop the cascade.
const MinAdequateChars = 100

// Priority is the fixed order in which strategies are attempted.
// Cheap HTTP probes come first; the subprocess and library strategies are
// slower and depend on the hosting environment.
var Priority = []string{
	engine.StrategyDirect,
	engine.StrategyPageScrape,
	engine.StrategyYtDlp,
	engine.StrategyLibrary,
}

// Strategy is one independent way of obtaining a transcript.
type Strategy interface {
	Name() string
	// Available reports whether the strategy can run in this environment.
	Available() bool
	Fetch(ctx context.Context, videoID string) Result
}

// Result is the outcome of a single strategy attempt.
type Result struct {
	Text string
	Err  error // set when the strategy produced nothing
}

// Found wraps transcript text.
func Found(text string) Result { return Result{Text: text} }

// NoResult records why a strategy produced nothing.
func NoResult(err error) Result { return Result{Err: err} }

// Adequate reports whether text passes the adequacy threshold.
func Adequate(text string) bool {
	return engine.RuneLen(text) > MinAdequateChars
}

var errTooShort = errors.New("transcript below adequacy threshold")

// Attempt describes what one strategy did during a resolution.
type Attempt struct {
	Strategy string        `json:"strategy"`
	Skipped  bool          `json:"skipped,omitempty"` // strategy unavailable in this environment
	Chars    int           `json:"chars"`
	Error    string        `json:"error,omitempty"`
	Elapsed  time.Duration `json:"elapsed"`
}

// Resolution is the detailed outcome of Resolver.ResolveDetailed.
type Resolution struct {
	Text        string    `json:"text"`
	Strategy    string    `json:"strategy,omitempty"` // empty when Placeholder is set
	Placeholder bool      `json:"placeholder"`
	Attempts    []Attempt `json:"attempts"`
}

// Resolver runs strategies in Priority order.
type Resolver struct {
	strategies []Strategy
}

// NewResolver orders the given strategies by Priority. Strategies with
// names outside Priority run last, in the order given.
func NewResolver(strategies ...Strategy) *Resolver {
	ordered := make([]Strategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			ordered = append(ordered, s)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return priorityIndex(ordered[i].Name()) < priorityIndex(ordered[j].Name())
	})
	return &Resolver{strategies: ordered}
}

func priorityIndex(name string) int {
	for i, n := range Priority {
		if n == name {
			return i
		}
	}
	return len(Priority)
}

// Strategies returns the strategy names in execution order.
func (r *Resolver) Strategies() []string {
	names := make([]string, len(r.strategies))
	for i, s := range r.strategies {
		names[i] = s.Name()
	}
	return names
}

// Resolve returns the best obtainable transcript text for videoID.
// The result is never empty: on total exhaustion it is Placeholder(videoID).
func (r *Resolver) Resolve(ctx context.Context, videoID string) string {
	return r.ResolveDetailed(ctx, videoID).Text
}

// ResolveDetailed is Resolve plus the winning strategy and per-attempt outcomes.
func (r *Resolver) ResolveDetailed(ctx context.Context, videoID string) Resolution {
	engine.IncrTranscriptRequests()
	var res Resolution

	for _, s := range r.strategies {
		name := s.Name()
		if !s.Available() {
			slog.Debug("transcript: strategy unavailable",
				slog.String("id", videoID), slog.String("strategy", name))
			res.Attempts = append(res.Attempts, Attempt{Strategy: name, Skipped: true})
			continue
		}

		start := time.Now()
		out := run(ctx, s, videoID)
		att := Attempt{
			Strategy: name,
			Chars:    engine.RuneLen(out.Text),
			Elapsed:  time.Since(start),
		}
		if out.Err == nil && !Adequate(out.Text) {
			out.Err = fmt.Errorf("%w (%d chars)", errTooShort, att.Chars)
		}
		if out.Err != nil {
			att.Error = out.Err.Error()
			res.Attempts = append(res.Attempts, att)
			slog.Warn("transcript: strategy failed",
				slog.String("id", videoID), slog.String("strategy", name), slog.Any("error", out.Err))
			continue
		}

		res.Attempts = append(res.Attempts, att)
		res.Text = out.Text
		res.Strategy = name
		engine.IncrStrategyWin(name)
		slog.Info("transcript: resolved",
			slog.String("id", videoID), slog.String("strategy", name), slog.Int("chars", att.Chars))
		return res
	}

	engine.IncrTranscriptFallbacks()
	slog.Warn("transcript: all strategies exhausted", slog.String("id", videoID))
	res.Text = Placeholder(videoID)
	res.Placeholder = true
	return res
}

// run calls s.Fetch, turning a panic into a no-result so one broken
// strategy cannot abort the cascade.
func run(ctx context.Context, s Strategy, videoID string) (out Result) {
	defer func() {
		if p := recover(); p != nil {
			out = NoResult(fmt.Errorf("strategy panicked: %v", p))
		}
	}()
	return s.Fetch(ctx, videoID)
}

// Placeholder is the transcript text used when every strategy failed.
func Placeholder(videoID string) string {
	return fmt.Sprintf("No transcript could be obtained for this video. Video ID: %s. Please try a video that has captions.", videoID)
}
