package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	syncsvc "github.com/iudanet/fitsync/internal/client/sync"
)

func newSyncCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Replay queued changes and push the current data now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app.io.Println("=== Synchronization ===")
			app.io.Println()

			if _, err := app.requireSession(ctx); err != nil {
				return err
			}

			res, err := app.sync.SyncNow(ctx)
			app.io.Printf("Replayed from queue: %d\n", res.Success)
			if res.Failed > 0 {
				app.io.Printf("Failed (will retry): %d\n", res.Failed)
			}
			if res.Skipped > 0 {
				app.io.Printf("Dropped:             %d\n", res.Skipped)
			}
			if res.Deferred > 0 {
				app.io.Printf("Other accounts:      %d\n", res.Deferred)
			}
			app.io.Println()

			if err != nil {
				return fmt.Errorf("push failed, changes are queued: %w", err)
			}
			app.io.Println("✓ Synchronization completed successfully!")
			return nil
		},
	}
}

func newWatchCommand(app *App) *cobra.Command {
	var interval time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stay running and sync queued changes whenever the server is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if _, err := app.requireSession(ctx); err != nil {
				return err
			}
			if interval <= 0 {
				interval = app.cfg.Sync.PollInterval
			}

			app.io.Printf("Watching %s every %s, press Ctrl+C to stop\n", app.cfg.ServerURL, interval)
			monitor := syncsvc.NewMonitor(app.api, app.sync.Recover, interval, app.logger)

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return monitor.Run(gctx)
			})
			g.Go(func() error {
				return reportQueue(gctx, app, interval)
			})
			return g.Wait()
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", 0, "Health check interval (default from config)")
	return cmd
}

// reportQueue печатает изменения длины очереди
func reportQueue(ctx context.Context, app *App, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := -1
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			n := app.sync.Status().Length
			if n != last {
				app.logger.Info("Queue length changed", slog.Int("pending", n))
				app.io.Printf("[%s] pending changes: %d\n", time.Now().Format(time.TimeOnly), n)
				last = n
			}
		}
	}
}
