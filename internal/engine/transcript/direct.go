package transcript

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/anatolykoptev/go_ytsum/internal/engine"
)

// TimedTextURL is YouTube's caption delivery endpoint.
const TimedTextURL = "https://www.youtube.com/api/timedtext"

// DirectProbe requests the timedtext endpoint directly with a fixed list of
// language, auto-caption and format variants.
type DirectProbe struct {
	Client  engine.Doer
	BaseURL string   // defaults to TimedTextURL
	Langs   []string // primary first
	Timeout time.Duration
}

func (p *DirectProbe) Name() string    { return engine.StrategyDirect }
func (p *DirectProbe) Available() bool { return p.Client != nil && len(p.Langs) > 0 }

// Candidates returns the caption URLs probed for videoID, in order:
// manual XML per language, auto-generated XML per language, then
// auto-generated VTT per language.
func (p *DirectProbe) Candidates(videoID string) []CaptionTrack {
	base := p.BaseURL
	if base == "" {
		base = TimedTextURL
	}
	build := func(lang string, asr bool, f Format) CaptionTrack {
		q := url.Values{}
		q.Set("lang", lang)
		q.Set("v", videoID)
		if asr {
			q.Set("kind", "asr")
		}
		if f == FormatVTT {
			q.Set("fmt", "vtt")
		}
		return CaptionTrack{URL: base + "?" + q.Encode(), Lang: lang, ASR: asr, Format: f}
	}

	var out []CaptionTrack
	for _, lang := range p.Langs {
		out = append(out, build(lang, false, FormatXML))
	}
	for _, lang := range p.Langs {
		out = append(out, build(lang, true, FormatXML))
	}
	for _, lang := range p.Langs {
		out = append(out, build(lang, true, FormatVTT))
	}
	return out
}

func (p *DirectProbe) Fetch(ctx context.Context, videoID string) Result {
	if videoID == "" {
		return NoResult(errors.New("empty video ID"))
	}
	return probeTracks(ctx, p.Client, p.Candidates(videoID), p.Timeout)
}
