package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var transcriptJSON bool

var transcriptCmd = &cobra.Command{
	Use:   "transcript <video-url>",
	Short: "Print a video's transcript",
	Long: `Resolve the transcript only. With --json the winning strategy and
every attempt are included.`,
	Args: cobra.ExactArgs(1),
	RunE: runTranscript,
}

func init() {
	transcriptCmd.Flags().BoolVar(&transcriptJSON, "json", false, "Print strategy and attempts as JSON")
}

func runTranscript(cmd *cobra.Command, args []string) error {
	svc, err := setup()
	if err != nil {
		return err
	}

	out, err := svc.Transcript(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if transcriptJSON {
		return outputJSON(os.Stdout, out)
	}
	if out.Placeholder {
		fmt.Fprintln(os.Stderr, "no transcript found")
	} else {
		fmt.Fprintf(os.Stderr, "transcript via %s\n", out.Strategy)
	}
	fmt.Println(out.Text)
	return nil
}
