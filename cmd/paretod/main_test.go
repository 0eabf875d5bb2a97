package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Pareto/internal/config"
	"github.com/MikeSquared-Agency/Pareto/internal/store"
)

func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	return ln.Addr().(*net.TCPAddr).Port
}

func TestOpenStoreWithoutDatabase(t *testing.T) {
	cfg := config.Default()
	s, err := openStore(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	assert.IsType(t, &store.MemoryStore{}, s)
}

func TestRunServesUntilCancelled(t *testing.T) {
	apiPort, metricsPort := freePort(t), freePort(t)
	path := filepath.Join(t.TempDir(), "paretod.yaml")
	yaml := fmt.Sprintf(`server:
  port: %d
  metrics_port: %d
hermes:
  url: ""
logging:
  level: debug
  format: text
`, apiPort, metricsPort)
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, path, io.Discard) }()

	healthURL := fmt.Sprintf("http://127.0.0.1:%d/health", metricsPort)
	require.Eventually(t, func() bool {
		resp, err := http.Get(healthURL)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	body := `{"items":[{"name":"a","scores":[2,1]},{"name":"b","scores":[1,2]},{"name":"c","scores":[1,1]}]}`
	resp, err := http.Post(fmt.Sprintf("http://127.0.0.1:%d/api/v1/front", apiPort), "application/json", strings.NewReader(body))
	require.NoError(t, err)
	data, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), `"front":["a","b"]`)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("filter:\n  smoothness: 0\n"), 0o600))
	err := run(context.Background(), path, io.Discard)
	assert.ErrorContains(t, err, "invalid config")
}
