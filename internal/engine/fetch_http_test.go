package engine

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFetchWithRetry(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, strings.Repeat("x", 100))
	}))
	defer srv.Close()

	body, err := FetchWithRetry(context.Background(), srv.Client(), srv.URL, "application/json", 3, 10)
	require.NoError(t, err)
	require.Equal(t, strings.Repeat("x", 10), string(body), "body capped at limit")
	require.Equal(t, int32(2), hits.Load())
}

func TestFetchWithRetryPermanent(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := FetchWithRetry(context.Background(), srv.Client(), srv.URL, "", 3, 1024)
	require.Error(t, err)
	require.Contains(t, err.Error(), "404")
	require.Equal(t, int32(1), hits.Load())
}

func TestFetchWithRetryExhausted(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := FetchWithRetry(context.Background(), srv.Client(), srv.URL, "", 2, 1024)
	require.Error(t, err)
	require.Equal(t, int32(2), hits.Load())
}
