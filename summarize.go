package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/anatolykoptev/go_ytsum/internal/ytserver"
	"github.com/spf13/cobra"
	"github.com/yuin/goldmark"
)

var (
	summarizeHTML bool
	summarizeJSON bool
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <video-url>",
	Short: "Summarize one video",
	Long: `Run the full pipeline for a single video and print the result.
Output is Markdown by default; --html renders it, --json prints the same
envelope the HTTP endpoint returns.`,
	Args: cobra.ExactArgs(1),
	RunE: runSummarize,
}

func init() {
	summarizeCmd.Flags().BoolVar(&summarizeHTML, "html", false, "Render the summary as HTML")
	summarizeCmd.Flags().BoolVar(&summarizeJSON, "json", false, "Print the JSON envelope")
}

func runSummarize(cmd *cobra.Command, args []string) error {
	svc, err := setup()
	if err != nil {
		return err
	}

	resp := svc.Summarize(cmd.Context(), args[0])
	if summarizeJSON {
		return outputJSON(os.Stdout, resp)
	}
	if !resp.Success {
		return errors.New(resp.Error)
	}

	md := formatMarkdown(resp)
	if summarizeHTML {
		return renderHTML(os.Stdout, md)
	}
	_, err = io.WriteString(os.Stdout, md)
	return err
}

func formatMarkdown(r ytserver.Response) string {
	return fmt.Sprintf("# %s\n\n*%s*\n\n![thumbnail](%s)\n\n%s\n", r.Title, r.Channel, r.Thumbnail, r.Summary)
}

func renderHTML(w io.Writer, md string) error {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
