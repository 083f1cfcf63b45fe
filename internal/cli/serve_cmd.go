package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alexanderramin/mangala/internal/api"
	"github.com/gofrs/flock"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(app *App) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the planning HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, app, addr, func(a net.Addr) {
				fmt.Fprintf(cmd.OutOrStdout(), "Listening on http://%s\n", a)
			})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", app.Config.Addr, "listen address")
	return cmd
}

// runServer serves the API until ctx is cancelled. Only one server may use
// a database file at a time.
func runServer(ctx context.Context, app *App, addr string, onListen func(net.Addr)) error {
	if path := app.Config.DBPath; path != "" && path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating data dir: %w", err)
		}
		lock := flock.New(path + ".lock")
		locked, err := lock.TryLock()
		if err != nil {
			return fmt.Errorf("locking %s: %w", path, err)
		}
		if !locked {
			return fmt.Errorf("another mangala server is using %s", path)
		}
		defer lock.Unlock()
	}

	srv := api.NewServer(app.Planning, app.Conflicts,
		api.WithLogger(app.Logger),
		api.WithMetrics(app.Metrics),
	)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	if onListen != nil {
		onListen(ln.Addr())
	}
	app.Logger.Info("server_started", "addr", ln.Addr().String(), "db", app.Config.DBPath)

	httpSrv := &http.Server{
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	app.Logger.Info("server_stopped")
	return err
}
