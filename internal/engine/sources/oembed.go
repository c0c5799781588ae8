package sources

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"time"

	"github.com/anatolykoptev/go_ytsum/internal/engine"
)

const (
	// OEmbedURL is YouTube's public, unauthenticated oEmbed endpoint.
	OEmbedURL = "https://www.youtube.com/oembed"

	DefaultTitle   = "YouTube Video"
	DefaultChannel = "YouTube Channel"

	oembedTries    = 2
	maxOEmbedBytes = 64 * 1024
)

// VideoInfo is the metadata returned to callers.
type VideoInfo struct {
	Title     string `json:"title"`
	Channel   string `json:"channel"`
	Thumbnail string `json:"thumbnail"`
}

// DefaultVideoInfo is used whenever the metadata lookup fails.
func DefaultVideoInfo(videoID string) VideoInfo {
	return VideoInfo{
		Title:     DefaultTitle,
		Channel:   DefaultChannel,
		Thumbnail: ThumbnailURL(videoID),
	}
}

type oembedResp struct {
	Title      string `json:"title"`
	AuthorName string `json:"author_name"`
}

// OEmbed looks up title and channel. Failures never surface: the caller
// gets DefaultVideoInfo instead.
type OEmbed struct {
	Client   engine.Doer
	Endpoint string // defaults to OEmbedURL
	Timeout  time.Duration
}

// Lookup returns metadata for videoID. The thumbnail is always built from
// the ID; missing title or channel fall back to the defaults individually.
func (o *OEmbed) Lookup(ctx context.Context, videoID string) VideoInfo {
	info := DefaultVideoInfo(videoID)
	if o.Client == nil {
		engine.IncrMetadataFallbacks()
		return info
	}

	timeout := o.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	endpoint := o.Endpoint
	if endpoint == "" {
		endpoint = OEmbedURL
	}
	q := url.Values{}
	q.Set("url", WatchURL(videoID))
	q.Set("format", "json")

	body, err := engine.FetchWithRetry(ctx, o.Client, endpoint+"?"+q.Encode(), "application/json", oembedTries, maxOEmbedBytes)
	if err != nil {
		engine.IncrMetadataFallbacks()
		slog.Warn("metadata: oembed failed", slog.String("id", videoID), slog.Any("error", err))
		return info
	}

	var r oembedResp
	if err := json.Unmarshal(body, &r); err != nil {
		engine.IncrMetadataFallbacks()
		slog.Warn("metadata: decode oembed", slog.String("id", videoID), slog.Any("error", err))
		return info
	}
	if r.Title != "" {
		info.Title = r.Title
	}
	if r.AuthorName != "" {
		info.Channel = r.AuthorName
	}
	return info
}
