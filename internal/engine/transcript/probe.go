package transcript

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/anatolykoptev/go_ytsum/internal/engine"
)

// CaptionTrack is a caption delivery endpoint discovered during one strategy run.
type CaptionTrack struct {
	URL    string
	Lang   string
	ASR    bool // auto-generated captions
	Format Format
}

const (
	maxCaptionBytes     = 2 * 1024 * 1024
	defaultProbeTimeout = 15 * time.Second
)

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}

var errShortBody = errors.New("caption body too short")

// probeTrack fetches one caption URL under its own timeout and parses it.
// Only a 200 response whose body exceeds MinAdequateChars is parsed.
func probeTrack(ctx context.Context, client engine.Doer, t CaptionTrack, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, orDefault(timeout, defaultProbeTimeout))
	defer cancel()

	resp, err := engine.RetryHTTP(ctx, engine.NoRetry, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.URL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.UserAgentBot)
		return client.Do(req)
	})
	if err != nil {
		return "", fmt.Errorf("fetch caption: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("caption HTTP %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxCaptionBytes))
	if err != nil {
		return "", fmt.Errorf("read caption: %w", err)
	}
	if engine.RuneLen(string(body)) <= MinAdequateChars {
		return "", errShortBody
	}
	return Parse(t.Format, body)
}

// probeTracks tries tracks in order and returns the first parsed text.
func probeTracks(ctx context.Context, client engine.Doer, tracks []CaptionTrack, timeout time.Duration) Result {
	var errs []string
	for _, t := range tracks {
		text, err := probeTrack(ctx, client, t, timeout)
		if err == nil && !Adequate(text) {
			err = errTooShort
		}
		if err == nil {
			return Found(text)
		}
		errs = append(errs, fmt.Sprintf("%s/%s: %v", t.Lang, t.Format, err))
	}
	if len(errs) == 0 {
		return NoResult(errors.New("no caption tracks"))
	}
	return NoResult(fmt.Errorf("all %d caption tracks failed: %s", len(tracks), strings.Join(errs, "; ")))
}

// needsPoToken reports whether a caption track URL requires a PoToken (browser-only).
// Tracks with &exp=xpe cannot be fetched server-side.
func needsPoToken(u string) bool {
	return strings.Contains(u, "&exp=xpe")
}

// orderTracks sorts tracks by language preference: for each preferred
// language, manual captions before auto-generated ones; tracks in other
// languages keep page order at the end. PoToken-only tracks are dropped.
func orderTracks(tracks []CaptionTrack, langs []string) []CaptionTrack {
	out := make([]CaptionTrack, 0, len(tracks))
	used := make([]bool, len(tracks))
	for _, lang := range langs {
		for _, asr := range []bool{false, true} {
			for i, t := range tracks {
				if !used[i] && t.ASR == asr && langMatches(t.Lang, lang) {
					used[i] = true
					out = append(out, t)
				}
			}
		}
	}
	for i, t := range tracks {
		if !used[i] {
			out = append(out, t)
		}
	}

	usable := out[:0]
	for _, t := range out {
		if !needsPoToken(t.URL) {
			usable = append(usable, t)
		}
	}
	return usable
}

// langMatches treats regional variants as the base language ("en-US" ~ "en").
func langMatches(code, want string) bool {
	if want == "" {
		return false
	}
	return code == want || strings.HasPrefix(code, want+"-")
}
