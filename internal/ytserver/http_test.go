package ytserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/anatolykoptev/go_ytsum/internal/engine/summary"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func requireCORS(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	require.Equal(t, "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestHandlerSummarize(t *testing.T) {
	h := NewHandler(offlineService())

	for _, path := range []string{"/", "/api/summarize"} {
		rec := do(t, h, http.MethodPost, path, `{"videoUrl":"https://youtu.be/dQw4w9WgXcQ"}`)

		require.Equal(t, http.StatusOK, rec.Code, path)
		requireCORS(t, rec)
		require.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

		var got map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Equal(t, map[string]any{
			"success":   true,
			"title":     "YouTube Video",
			"channel":   "YouTube Channel",
			"thumbnail": "https://img.youtube.com/vi/dQw4w9WgXcQ/mqdefault.jpg",
			"summary":   summary.MissingKeyMessage,
		}, got)
	}
}

func TestHandlerInvalidURL(t *testing.T) {
	rec := do(t, NewHandler(offlineService()), http.MethodPost, "/", `{"videoUrl":"not a real url"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	requireCORS(t, rec)
	require.JSONEq(t, `{"success":false,"error":"invalid YouTube URL"}`, rec.Body.String())
}

func TestHandlerBadBody(t *testing.T) {
	h := NewHandler(offlineService())

	rec := do(t, h, http.MethodPost, "/", `{"videoUrl":`)
	require.JSONEq(t, `{"success":false,"error":"invalid request body"}`, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/", `{}`)
	require.JSONEq(t, `{"success":false,"error":"invalid YouTube URL"}`, rec.Body.String())
}

func TestHandlerOptions(t *testing.T) {
	h := NewHandler(offlineService())

	// Plain OPTIONS, no preflight headers.
	rec := do(t, h, http.MethodOptions, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	requireCORS(t, rec)
	require.Empty(t, rec.Body.String())

	// Browser preflight.
	req := httptest.NewRequest(http.MethodOptions, "/api/summarize", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	pre := httptest.NewRecorder()
	h.ServeHTTP(pre, req)

	require.Equal(t, http.StatusOK, pre.Code)
	require.Equal(t, "*", pre.Header().Get("Access-Control-Allow-Origin"))
	require.Empty(t, pre.Body.String())
}

func TestHandlerMethodNotAllowed(t *testing.T) {
	rec := do(t, NewHandler(offlineService()), http.MethodGet, "/", "")

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	requireCORS(t, rec)
	require.JSONEq(t, `{"success":false,"error":"method not allowed"}`, rec.Body.String())
}

func TestHandlerRequestID(t *testing.T) {
	rec := do(t, NewHandler(offlineService()), http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
	id, err := uuid.Parse(rec.Header().Get("X-Request-Id"))
	require.NoError(t, err)
	require.Equal(t, uuid.Version(7), id.Version())
}

func TestHandlerMetrics(t *testing.T) {
	h := NewHandler(offlineService())
	do(t, h, http.MethodPost, "/", `{"videoUrl":"not a real url"}`)

	rec := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "summarize_requests ")
	require.Contains(t, rec.Body.String(), "invalid_requests ")
}

func TestHandlerUnknownPath(t *testing.T) {
	rec := do(t, NewHandler(offlineService()), http.MethodPost, "/other", `{}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
