package transcript

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeYtDlp writes an executable shell script standing in for yt-dlp.
func fakeYtDlp(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fake needs a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "yt-dlp")
	script := "#!/bin/sh\n" + body
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

// writeSubsScript finds the --output template and writes a VTT next to it.
const writeSubsScript = `out=""
while [ $# -gt 0 ]; do
  if [ "$1" = "--output" ]; then out="$2"; shift; fi
  shift
done
cat > "$out.en.vtt" <<'VTT'
WEBVTT
Kind: captions
Language: en

00:00:00.000 --> 00:00:05.000
this subtitle file was written by the fake downloader and is long enough
00:00:05.000 --> 00:00:09.000
to pass the adequacy threshold used by the transcript resolver cascade
VTT
`

// tmpDirEntries isolates os.MkdirTemp into a fresh directory and returns a
// function listing what is left in it.
func tmpDirEntries(t *testing.T) func() []string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("TMPDIR", dir)
	return func() []string {
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		return names
	}
}

func TestYtDlpFetch(t *testing.T) {
	bin := fakeYtDlp(t, writeSubsScript)
	leftovers := tmpDirEntries(t)

	y := &YtDlp{Enabled: true, Path: bin, Langs: []string{"tr", "en"}, Timeout: 10 * time.Second}
	require.True(t, y.Available())

	res := y.Fetch(context.Background(), "abcdefghijk")
	require.NoError(t, res.Err)
	require.Contains(t, res.Text, "written by the fake downloader")
	require.True(t, Adequate(res.Text))
	require.Empty(t, leftovers(), "temp dir must be removed")
}

func TestYtDlpFailures(t *testing.T) {
	tests := []struct {
		name    string
		script  string
		timeout time.Duration
		wantErr string
	}{
		{"non-zero exit", "echo 'ERROR: video unavailable' >&2\nexit 1\n", 5 * time.Second, "video unavailable"},
		{"no subtitle file", "exit 0\n", 5 * time.Second, "no subtitle file"},
		{"timeout", "exec sleep 5\n", 100 * time.Millisecond, "timed out"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bin := fakeYtDlp(t, tt.script)
			leftovers := tmpDirEntries(t)

			y := &YtDlp{Enabled: true, Path: bin, Langs: []string{"en"}, Timeout: tt.timeout}
			res := y.Fetch(context.Background(), "abcdefghijk")

			require.Error(t, res.Err)
			require.Contains(t, res.Err.Error(), tt.wantErr)
			require.Empty(t, res.Text)
			require.Empty(t, leftovers(), "temp dir must be removed")
		})
	}
}

func TestYtDlpTimeoutWithLingeringChild(t *testing.T) {
	prev := ytDlpWaitDelay
	ytDlpWaitDelay = 200 * time.Millisecond
	t.Cleanup(func() { ytDlpWaitDelay = prev })

	// The backgrounded sleep inherits stdout and outlives the killed parent.
	bin := fakeYtDlp(t, "sleep 5 &\nexec sleep 5\n")
	y := &YtDlp{Enabled: true, Path: bin, Langs: []string{"en"}, Timeout: 100 * time.Millisecond}

	start := time.Now()
	res := y.Fetch(context.Background(), "abcdefghijk")

	require.Less(t, time.Since(start), 3*time.Second)
	require.Error(t, res.Err)
	require.Contains(t, res.Err.Error(), "timed out")
}

func TestYtDlpAvailable(t *testing.T) {
	require.False(t, (&YtDlp{Enabled: false, Path: "sh"}).Available())
	require.False(t, (&YtDlp{Enabled: true, Path: ""}).Available())
	require.False(t, (&YtDlp{Enabled: true, Path: "definitely-not-a-real-binary-7f3a"}).Available())
}

func TestFirstSubtitleFile(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"info.json", "b.en.srt", "a.tr.vtt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("x"), 0o644))
	}
	path, format, err := firstSubtitleFile(dir)
	require.NoError(t, err)
	require.Equal(t, "a.tr.vtt", filepath.Base(path))
	require.Equal(t, FormatVTT, format)
}
