package transcript

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anatolykoptev/go_ytsum/internal/engine"
	"github.com/kkdai/youtube/v2"
)

const defaultLibraryTimeout = 30 * time.Second

// Library is a third-party transcript fetcher. An empty lang means any
// available language.
type Library interface {
	Transcript(ctx context.Context, videoID, lang string) (string, error)
}

// LibraryFallback delegates to a Library, trying each preferred language
// and then any language.
type LibraryFallback struct {
	Lib     Library
	Langs   []string
	Timeout time.Duration
}

func (l *LibraryFallback) Name() string    { return engine.StrategyLibrary }
func (l *LibraryFallback) Available() bool { return l.Lib != nil }

func (l *LibraryFallback) Fetch(ctx context.Context, videoID string) Result {
	ctx, cancel := context.WithTimeout(ctx, orDefault(l.Timeout, defaultLibraryTimeout))
	defer cancel()

	var errs []string
	for _, lang := range append(append([]string{}, l.Langs...), "") {
		text, err := l.Lib.Transcript(ctx, videoID, lang)
		if err == nil && strings.TrimSpace(text) != "" {
			return Found(text)
		}
		if err == nil {
			err = errNoSegments
		}
		label := lang
		if label == "" {
			label = "any"
		}
		errs = append(errs, label+": "+err.Error())
		if ctx.Err() != nil {
			break
		}
	}
	return NoResult(fmt.Errorf("library: %s", strings.Join(errs, "; ")))
}

// YouTubeLibrary fetches transcripts with github.com/kkdai/youtube.
type YouTubeLibrary struct {
	Client *youtube.Client
}

func (y *YouTubeLibrary) Transcript(ctx context.Context, videoID, lang string) (string, error) {
	video, err := y.Client.GetVideoContext(ctx, videoID)
	if err != nil {
		return "", fmt.Errorf("video info: %w", err)
	}
	if lang == "" {
		if len(video.CaptionTracks) == 0 {
			return "", errors.New("video has no caption tracks")
		}
		lang = video.CaptionTracks[0].LanguageCode
	}

	segs, err := y.Client.GetTranscriptCtx(ctx, video, lang)
	if err != nil {
		return "", fmt.Errorf("transcript %s: %w", lang, err)
	}
	parts := make([]string, 0, len(segs))
	for _, s := range segs {
		parts = append(parts, s.Text)
	}
	return engine.JoinNonEmpty(parts), nil
}
