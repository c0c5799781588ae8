package ytserver

import (
	"context"
	"log/slog"
	"time"

	"github.com/anatolykoptev/go_ytsum/internal/engine"
	"github.com/anatolykoptev/go_ytsum/internal/engine/sources"
	"github.com/anatolykoptev/go_ytsum/internal/engine/transcript"
)

// TranscriptResolver produces transcript text for a video ID. It never fails.
type TranscriptResolver interface {
	ResolveDetailed(ctx context.Context, videoID string) transcript.Resolution
}

// MetadataLookup returns title, channel and thumbnail. It never fails.
type MetadataLookup interface {
	Lookup(ctx context.Context, videoID string) sources.VideoInfo
}

// Summarizer turns a transcript into summary text. It never fails.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) string
}

// Request is the inbound JSON body.
type Request struct {
	VideoURL string `json:"videoUrl"`
}

// Response is the outbound JSON envelope. On failure only Success and
// Error are set.
type Response struct {
	Success   bool   `json:"success"`
	Title     string `json:"title,omitempty"`
	Channel   string `json:"channel,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Summary   string `json:"summary,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Failure builds the error envelope.
func Failure(msg string) Response {
	return Response{Success: false, Error: msg}
}

// TranscriptOutput is the result of Service.Transcript.
type TranscriptOutput struct {
	VideoID     string               `json:"video_id"`
	Text        string               `json:"text"`
	Strategy    string               `json:"strategy,omitempty"`
	Placeholder bool                 `json:"placeholder"`
	Attempts    []transcript.Attempt `json:"attempts"`
}

// Service runs the pipeline: video ID, transcript, metadata, summary.
type Service struct {
	Transcripts TranscriptResolver
	Metadata    MetadataLookup
	Summarizer  Summarizer
}

// Summarize handles one video URL end to end. Only an unusable URL yields
// a failure envelope; every later step degrades to placeholder values.
func (s *Service) Summarize(ctx context.Context, videoURL string) Response {
	engine.IncrSummarizeRequests()
	log := logger(ctx)

	videoID, err := sources.ExtractVideoID(videoURL)
	if err != nil {
		engine.IncrInvalidRequests()
		log.Info("summarize: invalid url", slog.String("url", videoURL))
		return Failure(err.Error())
	}

	res := s.Transcripts.ResolveDetailed(ctx, videoID)
	info := s.Metadata.Lookup(ctx, videoID)

	start := time.Now()
	summary := s.Summarizer.Summarize(ctx, res.Text)
	engine.WarnIfSlow("summarize", 20*time.Second, start)

	log.Info("summarize: done",
		slog.String("id", videoID),
		slog.String("strategy", res.Strategy),
		slog.Bool("placeholder", res.Placeholder),
		slog.Int("summary_chars", engine.RuneLen(summary)),
	)
	return Response{
		Success:   true,
		Title:     info.Title,
		Channel:   info.Channel,
		Thumbnail: info.Thumbnail,
		Summary:   summary,
	}
}

// Transcript resolves only the transcript, reporting how it was obtained.
func (s *Service) Transcript(ctx context.Context, videoURL string) (TranscriptOutput, error) {
	videoID, err := sources.ExtractVideoID(videoURL)
	if err != nil {
		return TranscriptOutput{}, err
	}
	res := s.Transcripts.ResolveDetailed(ctx, videoID)
	return TranscriptOutput{
		VideoID:     videoID,
		Text:        res.Text,
		Strategy:    res.Strategy,
		Placeholder: res.Placeholder,
		Attempts:    res.Attempts,
	}, nil
}

type ctxKey struct{}

// WithRequestID attaches a request ID used in log lines.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func logger(ctx context.Context) *slog.Logger {
	if id, ok := ctx.Value(ctxKey{}).(string); ok && id != "" {
		return slog.With(slog.String("request_id", id))
	}
	return slog.Default()
}
