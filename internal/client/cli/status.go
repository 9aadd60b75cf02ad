package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/fitsync/internal/client/auth"
)

func newStatusCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show session and sync status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app.io.Println("=== Status ===")
			app.io.Println()

			session, err := app.auth.Session(ctx)
			switch {
			case errors.Is(err, auth.ErrNotAuthenticated):
				app.io.Println("Status: Not authenticated")
				app.io.Println()
				app.io.Println("Run 'fitsync login' to authenticate.")
				return nil
			case errors.Is(err, auth.ErrSessionExpired):
				app.io.Println("Status: Session expired")
			case err != nil:
				return err
			default:
				app.io.Println("Status: Authenticated")
			}

			expiresAt := time.Unix(session.ExpiresAt, 0)
			app.io.Printf("Username: %s\n", session.Username)
			app.io.Printf("Server:   %s\n", app.cfg.ServerURL)
			app.io.Printf("Token expires: %s\n", expiresAt.Format(time.RFC3339))

			lastPush, err := app.storage.GetLastPush(ctx, session.UserID)
			app.io.Println()
			switch {
			case err != nil:
				app.io.Printf("Last push: unknown (%v)\n", err)
			case lastPush.IsZero():
				app.io.Println("Last push: never")
			default:
				app.io.Printf("Last push: %s\n", lastPush.Format(time.RFC3339))
			}

			st := app.sync.Status()
			if st.Length == 0 {
				app.io.Println("✓ All changes synchronized with server")
				return nil
			}

			app.io.Printf("⚠️  Pending sync: %d change(s) waiting\n", st.Length)
			if st.OldestEnqueuedAt != nil {
				app.io.Printf("Oldest change:  %s\n", st.OldestEnqueuedAt.Format(time.RFC3339))
			}
			if st.HasFailedOperations {
				app.io.Println("Some changes already failed to sync and will be retried.")
			}
			if st.LastPersistError != nil {
				app.io.Printf("⚠️  Queue could not be saved: %v\n", st.LastPersistError)
			}
			app.io.Println("Run 'fitsync sync' to retry now.")
			return nil
		},
	}
}
