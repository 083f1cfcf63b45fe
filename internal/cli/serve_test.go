package cli

import (
	"context"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunServer_RefusesLockedDatabase(t *testing.T) {
	env := newTestEnv(t)
	env.app.Config.DBPath = filepath.Join(t.TempDir(), "data", "mangala.db")

	require.NoError(t, os.MkdirAll(filepath.Dir(env.app.Config.DBPath), 0o755))
	held := flock.New(env.app.Config.DBPath + ".lock")
	locked, err := held.TryLock()
	require.NoError(t, err)
	require.True(t, locked)
	t.Cleanup(func() { _ = held.Unlock() })

	err = runServer(context.Background(), env.app, "127.0.0.1:0", nil)
	assert.EqualError(t, err, "another mangala server is using "+env.app.Config.DBPath)
}

func TestRunServer_ServesUntilCancelled(t *testing.T) {
	env := newTestEnv(t)
	env.app.Config.DBPath = filepath.Join(t.TempDir(), "mangala.db")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	addrs := make(chan net.Addr, 1)
	done := make(chan error, 1)
	go func() {
		done <- runServer(ctx, env.app, "127.0.0.1:0", func(a net.Addr) { addrs <- a })
	}()

	var addr net.Addr
	select {
	case addr = <-addrs:
	case err := <-done:
		t.Fatalf("server exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}

	resp, err := http.Get("http://" + addr.String() + "/healthz")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}

	again := flock.New(env.app.Config.DBPath + ".lock")
	locked, err := again.TryLock()
	require.NoError(t, err)
	assert.True(t, locked, "lock is released on shutdown")
	_ = again.Unlock()
}
