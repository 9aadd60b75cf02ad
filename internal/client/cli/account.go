package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/fitsync/internal/client/auth"
	"github.com/iudanet/fitsync/internal/validation"
)

func newRegisterCommand(app *App) *cobra.Command {
	var username string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.io.Println("=== Registration ===")
			app.io.Println()

			username, err := promptIfEmpty(app, username, "Username: ")
			if err != nil {
				return err
			}
			password, err := app.io.ReadPassword(fmt.Sprintf("Password (min %d chars): ", validation.MinPasswordLen))
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			confirm, err := app.io.ReadPassword("Confirm password: ")
			if err != nil {
				return fmt.Errorf("failed to read confirmation: %w", err)
			}
			if password != confirm {
				return errors.New("passwords do not match")
			}

			userID, err := app.auth.Register(cmd.Context(), username, password)
			if err != nil {
				return err
			}

			app.io.Println()
			app.io.Println("✓ Registration successful!")
			app.io.Printf("User ID:  %s\n", userID)
			app.io.Printf("Username: %s\n", username)
			app.io.Println()
			app.io.Println("Please run 'fitsync login' to start syncing.")
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "Username")
	return cmd
}

func newLoginCommand(app *App) *cobra.Command {
	var username string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and download your data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app.io.Println("=== Login ===")
			app.io.Println()

			username, err := promptIfEmpty(app, username, "Username: ")
			if err != nil {
				return err
			}
			password, err := app.io.ReadPassword("Password: ")
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}

			session, err := app.auth.Login(ctx, username, password)
			if err != nil {
				return err
			}

			res := app.sync.OnLogin(ctx, session.UserID)

			app.io.Println()
			app.io.Println("✓ Login successful!")
			app.io.Printf("Username: %s\n", session.Username)
			app.io.Printf("Token expires: %s\n", time.Unix(session.ExpiresAt, 0).Format(time.RFC3339))
			switch {
			case res.Found:
				app.io.Printf("Downloaded: %d workout(s), %d exercise(s), %d nutrition day(s), %d weigh-in(s)\n",
					res.Sessions, res.CustomExercises, res.NutritionDays, res.BodyWeight)
			default:
				app.io.Println("No server data yet, working with local data.")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "Username")
	return cmd
}

func newLogoutCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and clear local data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app.io.Println("=== Logout ===")

			session, err := app.auth.Session(ctx)
			switch {
			case errors.Is(err, auth.ErrNotAuthenticated):
				app.io.Println("Not logged in.")
				return nil
			case err != nil && !errors.Is(err, auth.ErrSessionExpired):
				return err
			}
			app.sync.Resume(session.UserID)

			if err := app.sync.OnLogout(ctx); err != nil {
				return err
			}
			if err := app.auth.Logout(ctx); err != nil {
				return err
			}

			app.io.Println("✓ Logged out.")
			if n := app.sync.Status().Length; n > 0 {
				app.io.Printf("%d change(s) stay queued and will sync after the next login.\n", n)
			}
			return nil
		},
	}
}

func promptIfEmpty(app *App, value, prompt string) (string, error) {
	if value != "" {
		return value, nil
	}
	input, err := app.io.ReadInput(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return input, nil
}
