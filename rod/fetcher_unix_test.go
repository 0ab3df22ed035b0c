//go:build integration && !windows

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"syscall"
	"testing"
	"time"

	"github.com/fwojciec/mdclip"
	"github.com/fwojciec/mdclip/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// processAlive reports whether pid exists. Signal 0 probes without delivering anything.
func processAlive(pid int) bool {
	return syscall.Kill(pid, syscall.Signal(0)) == nil
}

func TestFetcher_Close_StopsBrowserAfterRender(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><title>Clip</title></head><body><main><p>body</p></main></body></html>`))
	}))
	t.Cleanup(srv.Close)

	fetcher, err := rod.NewFetcher(rod.WithSettle(0))
	require.NoError(t, err)

	pid := fetcher.LauncherPID()
	require.NotZero(t, pid)

	page, err := fetcher.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, page.HTML, "<title>Clip</title>")
	require.True(t, processAlive(pid), "browser should outlive a single render")

	require.NoError(t, fetcher.Close())
	require.NoError(t, fetcher.Close())

	require.Eventually(t, func() bool { return !processAlive(pid) }, 2*time.Second, 50*time.Millisecond,
		"browser process should exit after Close")

	_, err = fetcher.Fetch(context.Background(), srv.URL)
	assert.Equal(t, mdclip.EINVALID, mdclip.ErrorCode(err))
}
