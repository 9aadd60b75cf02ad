package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/fitsync/internal/models"
)

func newWorkoutCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workout",
		Short: "Log and review workout sessions",
	}
	cmd.AddCommand(newWorkoutAddCommand(app), newWorkoutListCommand(app), newWorkoutDeleteCommand(app))
	return cmd
}

func newWorkoutAddCommand(app *App) *cobra.Command {
	var (
		name      string
		notes     string
		started   string
		duration  time.Duration
		exercises []string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a workout session",
		Example: `  fitsync workout add --name "Leg day" --exercise "Squat:5x5@100" --exercise "Lunge:3x12" --duration 1h
  fitsync workout add --name Run --started "2024-06-01 07:30" --duration 45m`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := app.requireSession(ctx); err != nil {
				return err
			}

			startedAt, err := parseTime(started, time.Now())
			if err != nil {
				return err
			}
			session := models.WorkoutSession{
				Name:      name,
				Notes:     notes,
				StartedAt: startedAt,
			}
			if duration > 0 {
				finished := startedAt.Add(duration)
				session.FinishedAt = &finished
			}
			for _, arg := range exercises {
				entry, err := parseExercise(arg)
				if err != nil {
					return err
				}
				session.Exercises = append(session.Exercises, entry)
			}

			saved, err := app.workouts.AddSession(ctx, session)
			if err != nil {
				return fmt.Errorf("failed to save workout: %w", err)
			}

			app.io.Println("✓ Workout saved")
			app.io.Printf("ID:     %s\n", saved.ID)
			app.io.Printf("Volume: %.1f kg\n", saved.TotalVolume())
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&name, "name", "n", "", "Workout name")
	f.StringVar(&notes, "notes", "", "Free-form notes")
	f.StringVar(&started, "started", "", "Start time (default now)")
	f.DurationVar(&duration, "duration", 0, "Duration, marks the workout finished")
	f.StringArrayVarP(&exercises, "exercise", "e", nil, "Exercise as NAME:SETSxREPS[@KG], repeatable")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newWorkoutListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List workout sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return workoutListTmpl.Execute(app.io, app.workouts.Sessions())
		},
	}
}

func newWorkoutDeleteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a workout session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := app.requireSession(ctx); err != nil {
				return err
			}
			if err := app.workouts.DeleteSession(ctx, args[0]); err != nil {
				return err
			}
			app.io.Printf("✓ Workout %s deleted\n", args[0])
			return nil
		},
	}
}

func newExerciseCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exercise",
		Short: "Manage custom exercises",
	}

	var muscle, equipment string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a custom exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := app.requireSession(ctx); err != nil {
				return err
			}
			ex, err := app.workouts.AddCustomExercise(ctx, models.CustomExercise{
				Name:        args[0],
				MuscleGroup: muscle,
				Equipment:   equipment,
			})
			if err != nil {
				return fmt.Errorf("failed to save exercise: %w", err)
			}
			app.io.Printf("✓ Exercise %q saved (ID: %s)\n", ex.Name, ex.ID)
			return nil
		},
	}
	add.Flags().StringVar(&muscle, "muscle", "", "Primary muscle group")
	add.Flags().StringVar(&equipment, "equipment", "", "Equipment")

	list := &cobra.Command{
		Use:   "list",
		Short: "List custom exercises",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return exerciseListTmpl.Execute(app.io, app.workouts.CustomExercises())
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a custom exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := app.requireSession(ctx); err != nil {
				return err
			}
			if err := app.workouts.DeleteCustomExercise(ctx, args[0]); err != nil {
				return err
			}
			app.io.Printf("✓ Exercise %s deleted\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(add, list, del)
	return cmd
}
