// go_ytsum: YouTube video summarizer.
//
// Resolves a transcript through a cascade of caption strategies, looks up
// oEmbed metadata and asks an LLM for a short summary. Serves a single
// POST endpoint with open CORS, and optionally the same pipeline as MCP
// tools (youtube_summarize, youtube_transcript).
package main

import (
	"fmt"
	"os"
)

var version = "dev"

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
