package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/anatolykoptev/go_ytsum/internal/engine/summary"
	"github.com/anatolykoptev/go_ytsum/internal/ytserver"
	"github.com/stretchr/testify/require"
)

func TestEnvBool(t *testing.T) {
	t.Setenv("YTSUM_TEST_BOOL", "false")
	require.False(t, envBool("YTSUM_TEST_BOOL", true))

	t.Setenv("YTSUM_TEST_BOOL", "not-a-bool")
	require.True(t, envBool("YTSUM_TEST_BOOL", true))

	require.True(t, envBool("YTSUM_TEST_BOOL_UNSET", true))
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("GEMINI_API_KEY", "from-env")
	t.Setenv("YTDLP_ENABLED", "false")
	t.Setenv("PROBE_TIMEOUT", "3s")
	t.Setenv("WEBSHARE_API_KEY", "")

	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("summary_language: English\nhttp_port: \"7070\"\n"), 0o644))

	c, err := loadConfig(path)
	require.NoError(t, err)

	require.Equal(t, "7070", c.HTTPPort, "file overrides env")
	require.Equal(t, "from-env", c.GeminiAPIKey)
	require.Equal(t, "English", c.SummaryLanguage)
	require.False(t, c.YtDlpEnabled)
	require.Equal(t, 3*time.Second, c.ProbeTimeout)
	require.Equal(t, summary.DefaultMaxChars, c.SummaryMaxChars)
	require.Equal(t, "tr", c.PrimaryLang)
	require.NotNil(t, c.HTTPClient)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestRenderHTML(t *testing.T) {
	md := formatMarkdown(ytserver.Response{
		Success:   true,
		Title:     "Title",
		Channel:   "Channel",
		Thumbnail: "https://img.youtube.com/vi/dQw4w9WgXcQ/mqdefault.jpg",
		Summary:   "First paragraph.\n\n- takeaway",
	})

	var buf bytes.Buffer
	require.NoError(t, renderHTML(&buf, md))
	out := buf.String()
	require.Contains(t, out, "<h1>Title</h1>")
	require.Contains(t, out, "<em>Channel</em>")
	require.Contains(t, out, `<img src="https://img.youtube.com/vi/dQw4w9WgXcQ/mqdefault.jpg" alt="thumbnail">`)
	require.Contains(t, out, "<li>takeaway</li>")
}
