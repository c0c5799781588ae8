package ytserver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SummarizeInput is the youtube_summarize tool input.
type SummarizeInput struct {
	URL string `json:"url" jsonschema:"YouTube video URL (watch, youtu.be, embed or shorts link)"`
}

// TranscriptInput is the youtube_transcript tool input.
type TranscriptInput struct {
	URL string `json:"url" jsonschema:"YouTube video URL (watch, youtu.be, embed or shorts link)"`
}

// RegisterTools registers youtube_summarize and youtube_transcript on server.
func RegisterTools(server *mcp.Server, svc *Service) {
	registerSummarize(server, svc)
	registerTranscript(server, svc)
}

func registerSummarize(server *mcp.Server, svc *Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_summarize",
		Description: "Summarize a YouTube video. Fetches the transcript (captions, page scrape, yt-dlp or library fallback), looks up title and channel via oEmbed, and returns a short multi-paragraph summary with key takeaways. Never fails for a valid URL: missing pieces come back as placeholder text.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input SummarizeInput) (*mcp.CallToolResult, Response, error) {
		if input.URL == "" {
			return nil, Response{}, fmt.Errorf("url is required")
		}
		out := svc.Summarize(ctx, input.URL)
		if !out.Success {
			return nil, Response{}, fmt.Errorf("%s", out.Error)
		}
		return nil, out, nil
	})
}

func registerTranscript(server *mcp.Server, svc *Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_transcript",
		Description: "Fetch the plain-text transcript of a YouTube video. Reports which strategy produced it and every attempt made. When nothing adequate is found the text is a placeholder and placeholder=true.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input TranscriptInput) (*mcp.CallToolResult, TranscriptOutput, error) {
		if input.URL == "" {
			return nil, TranscriptOutput{}, fmt.Errorf("url is required")
		}
		out, err := svc.Transcript(ctx, input.URL)
		if err != nil {
			return nil, TranscriptOutput{}, err
		}
		slog.Debug("youtube_transcript", slog.String("id", out.VideoID), slog.String("strategy", out.Strategy))
		return nil, out, nil
	})
}
