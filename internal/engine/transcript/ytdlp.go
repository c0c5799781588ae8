package transcript

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/anatolykoptev/go_ytsum/internal/engine"
)

const defaultYtDlpTimeout = 60 * time.Second

// ytDlpWaitDelay bounds how long output is drained after the deadline kills
// yt-dlp; a child process holding the pipe open would otherwise block Wait.
var ytDlpWaitDelay = 2 * time.Second

// YtDlp shells out to yt-dlp for auto-generated subtitles. Hosting
// environments without the binary, or that forbid subprocesses, simply
// report the strategy unavailable or produce a no-result.
type YtDlp struct {
	Enabled  bool
	Path     string // binary name resolved via PATH, or an absolute path
	Langs    []string
	Timeout  time.Duration
	WatchURL string // defaults to WatchURL
}

func (y *YtDlp) Name() string { return engine.StrategyYtDlp }

func (y *YtDlp) Available() bool {
	if !y.Enabled || y.Path == "" {
		return false
	}
	_, err := exec.LookPath(y.Path)
	return err == nil
}

func (y *YtDlp) Fetch(ctx context.Context, videoID string) Result {
	timeout := orDefault(y.Timeout, defaultYtDlpTimeout)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Fresh directory per attempt, removed on every exit path.
	tmpDir, err := os.MkdirTemp("", "ytsum-subs-*")
	if err != nil {
		return NoResult(fmt.Errorf("create temp dir: %w", err))
	}
	defer os.RemoveAll(tmpDir)

	base := y.WatchURL
	if base == "" {
		base = WatchURL
	}
	args := []string{
		"--skip-download",
		"--write-auto-subs",
		"--sub-langs", strings.Join(y.Langs, ","),
		"--sub-format", "vtt",
		"--output", filepath.Join(tmpDir, "%(id)s"),
		"--no-playlist",
		"--no-warnings",
		base + "?v=" + videoID,
	}
	cmd := exec.CommandContext(ctx, y.Path, args...)
	cmd.WaitDelay = ytDlpWaitDelay
	output, err := cmd.CombinedOutput()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return NoResult(fmt.Errorf("yt-dlp timed out after %s", timeout))
	}
	if err != nil {
		return NoResult(fmt.Errorf("yt-dlp: %w: %s", err, engine.TruncateRunes(strings.TrimSpace(string(output)), 300, "...")))
	}

	path, format, err := firstSubtitleFile(tmpDir)
	if err != nil {
		return NoResult(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return NoResult(fmt.Errorf("read subtitle file: %w", err))
	}
	text, err := Parse(format, data)
	if err != nil {
		return NoResult(fmt.Errorf("parse %s: %w", filepath.Base(path), err))
	}
	return Found(text)
}

var subtitleExts = map[string]Format{
	".vtt": FormatVTT,
	".srt": FormatSRT,
	".xml": FormatXML,
}

// firstSubtitleFile returns the first subtitle file in dir by name.
func firstSubtitleFile(dir string) (string, Format, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", "", fmt.Errorf("read temp dir: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	for _, n := range names {
		if f, ok := subtitleExts[strings.ToLower(filepath.Ext(n))]; ok {
			return filepath.Join(dir, n), f, nil
		}
	}
	return "", "", errors.New("yt-dlp produced no subtitle file")
}
