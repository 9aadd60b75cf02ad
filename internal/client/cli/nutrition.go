package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/fitsync/internal/models"
)

func newMealCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meal",
		Short: "Log meals and review daily nutrition",
	}

	var (
		date     string
		mealType string
		meal     models.MealEntry
	)
	add := &cobra.Command{
		Use:     "add <name>",
		Short:   "Log a meal",
		Example: `  fitsync meal add "Chicken and rice" --calories 650 --protein 45 --carbs 70 --fat 15 --type lunch`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := app.requireSession(ctx); err != nil {
				return err
			}
			day, err := parseDay(date, time.Now())
			if err != nil {
				return err
			}

			entry := meal
			entry.Name = args[0]
			entry.MealType = mealType
			saved, err := app.nutrition.AddMeal(ctx, day, entry)
			if err != nil {
				return fmt.Errorf("failed to save meal: %w", err)
			}

			totals := models.NutritionDay{}
			if d, ok := app.nutrition.Day(day); ok {
				totals = d
			}
			app.io.Printf("✓ Meal saved (ID: %s)\n", saved.ID)
			app.io.Printf("Today so far: %.0f kcal\n", totals.Totals().Calories)
			return nil
		},
	}
	f := add.Flags()
	f.StringVar(&date, "date", "", "Day as YYYY-MM-DD (default today)")
	f.StringVar(&mealType, "type", "", "breakfast, lunch, dinner or snack")
	f.Float64Var(&meal.Calories, "calories", 0, "Calories, kcal")
	f.Float64Var(&meal.ProteinG, "protein", 0, "Protein, g")
	f.Float64Var(&meal.CarbsG, "carbs", 0, "Carbohydrates, g")
	f.Float64Var(&meal.FatG, "fat", 0, "Fat, g")

	var listDate string
	list := &cobra.Command{
		Use:   "list",
		Short: "Show meals and totals for a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(listDate, time.Now())
			if err != nil {
				return err
			}
			view := mealListView{Date: day, Goals: app.nutrition.State().Goals}
			if d, ok := app.nutrition.Day(day); ok {
				view.Day = d
			}
			view.Totals = view.Day.Totals()
			return mealListTmpl.Execute(app.io, view)
		},
	}
	list.Flags().StringVar(&listDate, "date", "", "Day as YYYY-MM-DD (default today)")

	var goals models.MacroGoals
	setGoals := &cobra.Command{
		Use:   "goals",
		Short: "Set daily nutrition goals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := app.requireSession(ctx); err != nil {
				return err
			}
			if err := app.nutrition.SetGoals(ctx, goals); err != nil {
				return err
			}
			app.io.Println("✓ Goals updated")
			return nil
		},
	}
	gf := setGoals.Flags()
	gf.Float64Var(&goals.Calories, "calories", 0, "Calories, kcal")
	gf.Float64Var(&goals.ProteinG, "protein", 0, "Protein, g")
	gf.Float64Var(&goals.CarbsG, "carbs", 0, "Carbohydrates, g")
	gf.Float64Var(&goals.FatG, "fat", 0, "Fat, g")
	gf.IntVar(&goals.WaterMl, "water", 0, "Water, ml")

	cmd.AddCommand(add, list, setGoals)
	return cmd
}

func newWaterCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "water",
		Short: "Track water intake",
	}

	var date string
	add := &cobra.Command{
		Use:   "add <ml>",
		Short: "Add water in milliliters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ml, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("bad amount %q: %w", args[0], err)
			}
			if _, err := app.requireSession(ctx); err != nil {
				return err
			}
			day, err := parseDay(date, time.Now())
			if err != nil {
				return err
			}
			if err := app.nutrition.AddWater(ctx, day, ml); err != nil {
				return err
			}
			d, _ := app.nutrition.Day(day)
			app.io.Printf("✓ Water logged, %d ml on %s\n", d.WaterMl, day)
			return nil
		},
	}
	add.Flags().StringVar(&date, "date", "", "Day as YYYY-MM-DD (default today)")

	cmd.AddCommand(add)
	return cmd
}

func newWeightCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weight",
		Short: "Track body weight",
	}

	var note, recorded string
	add := &cobra.Command{
		Use:   "add <kg>",
		Short: "Log a weigh-in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			kg, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("bad weight %q: %w", args[0], err)
			}
			if _, err := app.requireSession(ctx); err != nil {
				return err
			}
			recordedAt, err := parseTime(recorded, time.Now())
			if err != nil {
				return err
			}
			entry, err := app.nutrition.AddBodyWeight(ctx, models.BodyWeightEntry{
				WeightKg:   kg,
				Note:       note,
				RecordedAt: recordedAt,
			})
			if err != nil {
				return fmt.Errorf("failed to save weigh-in: %w", err)
			}
			app.io.Printf("✓ Weigh-in saved (ID: %s)\n", entry.ID)
			return nil
		},
	}
	add.Flags().StringVar(&note, "note", "", "Note")
	add.Flags().StringVar(&recorded, "at", "", "Time of the weigh-in (default now)")

	list := &cobra.Command{
		Use:   "list",
		Short: "List weigh-ins, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return weightListTmpl.Execute(app.io, app.nutrition.BodyWeight())
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a weigh-in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := app.requireSession(ctx); err != nil {
				return err
			}
			if err := app.nutrition.DeleteBodyWeight(ctx, args[0]); err != nil {
				return err
			}
			app.io.Printf("✓ Weigh-in %s deleted\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(add, list, del)
	return cmd
}
