package transcript

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/anatolykoptev/go_ytsum/internal/engine"
)

// WatchURL is the public video page scraped for caption tracks.
const WatchURL = "https://www.youtube.com/watch"

const maxWatchPageBytes = 6 * 1024 * 1024

var errPoTokenOnly = errors.New("all caption tracks require PoToken")

// PageScrape fetches the public watch page, pulls the caption track list out
// of the embedded player response and probes each track URL. When the page
// yields no transcript (no track list, PoToken-only tracks, or every probe
// failing) the InnerTube player endpoint is asked for its tracks instead.
type PageScrape struct {
	PageClient    engine.Doer // watch page; may be a browser-TLS client
	CaptionClient engine.Doer // caption URLs and the InnerTube player
	WatchURL      string      // defaults to WatchURL
	PlayerURL     string      // defaults to InnerTubePlayerURL
	Langs         []string
	Timeout       time.Duration
}

func (p *PageScrape) Name() string { return engine.StrategyPageScrape }
func (p *PageScrape) Available() bool {
	return p.PageClient != nil && p.CaptionClient != nil
}

func (p *PageScrape) Fetch(ctx context.Context, videoID string) Result {
	pageErr := errPoTokenOnly
	tracks, err := p.pageTracks(ctx, videoID)
	if err != nil {
		pageErr = err
	} else if usable := orderTracks(tracks, p.Langs); len(usable) > 0 {
		res := probeTracks(ctx, p.CaptionClient, usable, p.Timeout)
		if res.Err == nil {
			return res
		}
		pageErr = res.Err
	}

	tracks, err = p.playerTracks(ctx, videoID)
	if err != nil {
		return NoResult(errors.Join(pageErr, err))
	}
	usable := orderTracks(tracks, p.Langs)
	if len(usable) == 0 {
		return NoResult(errors.Join(pageErr, fmt.Errorf("innertube player: %w", errPoTokenOnly)))
	}
	res := probeTracks(ctx, p.CaptionClient, usable, p.Timeout)
	if res.Err != nil {
		return NoResult(errors.Join(pageErr, res.Err))
	}
	return res
}

func (p *PageScrape) pageTracks(ctx context.Context, videoID string) ([]CaptionTrack, error) {
	page, err := p.fetchPage(ctx, videoID)
	if err != nil {
		return nil, err
	}
	tracks := ExtractCaptionTracks(page)
	if len(tracks) == 0 {
		return nil, errors.New("no caption tracks in watch page")
	}
	return tracks, nil
}

func (p *PageScrape) playerTracks(ctx context.Context, videoID string) ([]CaptionTrack, error) {
	ctx, cancel := context.WithTimeout(ctx, orDefault(p.Timeout, defaultProbeTimeout))
	defer cancel()

	endpoint := p.PlayerURL
	if endpoint == "" {
		endpoint = InnerTubePlayerURL
	}
	return fetchPlayerTracks(ctx, p.CaptionClient, endpoint, videoID)
}

func (p *PageScrape) fetchPage(ctx context.Context, videoID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, orDefault(p.Timeout, defaultProbeTimeout))
	defer cancel()

	base := p.WatchURL
	if base == "" {
		base = WatchURL
	}
	watchURL := base + "?v=" + videoID

	resp, err := engine.RetryHTTP(ctx, engine.NoRetry, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, watchURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.UserAgentChrome)
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		return p.PageClient.Do(req)
	})
	if err != nil {
		return "", fmt.Errorf("watch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("watch page HTTP %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxWatchPageBytes))
	if err != nil {
		return "", fmt.Errorf("read watch page: %w", err)
	}
	return string(body), nil
}

const captionTracksMarker = `"captionTracks":`

var (
	baseURLRe  = regexp.MustCompile(`"baseUrl"\s*:\s*"((?:[^"\\]|\\.)+)"`)
	langCodeRe = regexp.MustCompile(`"languageCode"\s*:\s*"([^"]+)"`)
)

type pageCaptionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" = auto-generated
}

// ExtractCaptionTracks finds caption track descriptors embedded in a watch
// page. Inline scripts are searched first; if the page has none the raw
// body is searched. Tracks that fail JSON decoding fall back to a pattern
// match on their baseUrl fields.
func ExtractCaptionTracks(page string) []CaptionTrack {
	scripts := engine.ScriptBodies(page)
	if len(scripts) == 0 {
		scripts = []string{page}
	}
	for _, s := range scripts {
		idx := strings.Index(s, captionTracksMarker)
		if idx < 0 {
			continue
		}
		raw := extractJSONArray([]byte(strings.TrimSpace(s[idx+len(captionTracksMarker):])))
		if raw == nil {
			continue
		}
		if tracks := decodeTracks(raw); len(tracks) > 0 {
			return tracks
		}
		if tracks := matchTracks(string(raw)); len(tracks) > 0 {
			return tracks
		}
	}
	return nil
}

func decodeTracks(raw []byte) []CaptionTrack {
	var pts []pageCaptionTrack
	if err := json.Unmarshal(raw, &pts); err != nil {
		return nil
	}
	out := make([]CaptionTrack, 0, len(pts))
	for _, t := range pts {
		if t.BaseURL == "" {
			continue
		}
		out = append(out, newPageTrack(t.BaseURL, t.LanguageCode, t.Kind == "asr"))
	}
	return out
}

// matchTracks is the tolerant path for track lists that are not valid JSON.
func matchTracks(raw string) []CaptionTrack {
	var out []CaptionTrack
	for _, obj := range strings.Split(raw, "},{") {
		m := baseURLRe.FindStringSubmatch(obj)
		if m == nil {
			continue
		}
		lang := ""
		if lm := langCodeRe.FindStringSubmatch(obj); lm != nil {
			lang = lm[1]
		}
		out = append(out, newPageTrack(unescapeURL(m[1]), lang, strings.Contains(obj, `"kind":"asr"`)))
	}
	return out
}

func newPageTrack(u, lang string, asr bool) CaptionTrack {
	f := FormatXML
	if strings.Contains(u, "fmt=vtt") {
		f = FormatVTT
	}
	return CaptionTrack{URL: u, Lang: lang, ASR: asr, Format: f}
}

var urlUnescaper = strings.NewReplacer(
	`\u0026`, "&",
	`\u003d`, "=",
	`\u003D`, "=",
	`\/`, "/",
	`\\`, `\`,
)

// unescapeURL decodes the JavaScript string escapes found in embedded URLs.
func unescapeURL(s string) string {
	return urlUnescaper.Replace(s)
}

// extractJSONArray extracts a complete JSON array starting at b[0] == '['
// by tracking bracket depth outside string literals.
func extractJSONArray(b []byte) []byte {
	if len(b) == 0 || b[0] != '[' {
		return nil
	}
	depth := 0
	inStr := false
	escaped := false
	for i, c := range b {
		if inStr {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '[', '{':
			depth++
		case ']', '}':
			depth--
			if depth == 0 {
				return b[:i+1]
			}
		}
	}
	return nil
}
