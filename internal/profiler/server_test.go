package profiler

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T, ctx context.Context) *Server {
	t.Helper()
	server := New(0)
	require.NoError(t, server.Start(ctx))
	t.Cleanup(func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	})
	return server
}

func TestServer_ListensOnLoopback(t *testing.T) {
	server := startServer(t, context.Background())
	assert.True(t, strings.HasPrefix(server.Addr(), "127.0.0.1:"), server.Addr())
}

func TestServer_AddrBeforeStart(t *testing.T) {
	assert.Empty(t, New(0).Addr())
}

func TestServer_PprofEndpoints(t *testing.T) {
	server := startServer(t, context.Background())
	baseURL := "http://" + server.Addr()

	for _, endpoint := range []string{"/debug/pprof/", "/debug/pprof/cmdline", "/debug/pprof/symbol"} {
		t.Run(endpoint, func(t *testing.T) {
			resp, err := http.Get(baseURL + endpoint)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		})
	}
}

func TestServer_StopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	server := startServer(t, ctx)
	addr := server.Addr()

	cancel()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/debug/pprof/")
		if err != nil {
			return true
		}
		_ = resp.Body.Close()
		return false
	}, 2*time.Second, 20*time.Millisecond)
}
