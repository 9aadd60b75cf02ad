package cli

import (
	"fmt"
	"text/template"

	"github.com/iudanet/fitsync/internal/models"
)

var templateFuncs = template.FuncMap{
	"kg": func(v float64) string { return fmt.Sprintf("%.1f kg", v) },
	"when": func(t interface{ Format(string) string }) string {
		return t.Format("2006-01-02 15:04")
	},
	"macros": func(g models.MacroGoals) string {
		return fmt.Sprintf("%.0f kcal  P %.0fg  C %.0fg  F %.0fg", g.Calories, g.ProteinG, g.CarbsG, g.FatG)
	},
}

const workoutListTemplate = `=== Workouts ===
{{ if eq (len .) 0 }}
No workouts yet.

Use 'fitsync workout add' to log your first session.
{{ else }}
Found {{ len . }} workout(s):
{{ range . }}
- {{ .Name }} ({{ when .StartedAt }})
   ID:        {{ .ID }}
   Exercises: {{ len .Exercises }}
   Volume:    {{ kg .TotalVolume }}
{{- if .FinishedAt }}
   Finished:  {{ when .FinishedAt }}
{{- end }}
{{- if .Notes }}
   Notes:     {{ .Notes }}
{{- end }}
{{ end }}
{{- end }}`

const exerciseListTemplate = `=== Custom Exercises ===
{{ if eq (len .) 0 }}
No custom exercises.
{{ else }}
{{ range . }}
- {{ .Name }}{{ if .MuscleGroup }} [{{ .MuscleGroup }}]{{ end }}{{ if .Equipment }} ({{ .Equipment }}){{ end }}
   ID: {{ .ID }}
{{- end }}
{{ end }}`

const mealListTemplate = `=== Nutrition {{ .Date }} ===
{{ if eq (len .Day.Meals) 0 }}
No meals logged.
{{ else }}
{{ range .Day.Meals }}
- {{ .Name }}{{ if .MealType }} [{{ .MealType }}]{{ end }}
   ID:     {{ .ID }}
   Macros: {{ macros (mealMacros .) }}
{{- end }}
{{ end }}
Total:  {{ macros .Totals }}
Water:  {{ .Day.WaterMl }} ml
{{- if not .Goals.IsZero }}
Goals:  {{ macros .Goals }}, water {{ .Goals.WaterMl }} ml
{{- end }}
`

const weightListTemplate = `=== Body Weight ===
{{ if eq (len .) 0 }}
No weigh-ins yet.
{{ else }}
{{ range . }}
- {{ when .RecordedAt }}  {{ kg .WeightKg }}{{ if .Note }}  {{ .Note }}{{ end }}
   ID: {{ .ID }}
{{- end }}
{{ end }}`

// mealListView данные шаблона дня питания
type mealListView struct {
	Date   string
	Day    models.NutritionDay
	Totals models.MacroGoals
	Goals  models.MacroGoals
}

func mealMacros(m models.MealEntry) models.MacroGoals {
	return models.MacroGoals{Calories: m.Calories, ProteinG: m.ProteinG, CarbsG: m.CarbsG, FatG: m.FatG}
}

var (
	workoutListTmpl  = template.Must(template.New("workouts").Funcs(templateFuncs).Parse(workoutListTemplate))
	exerciseListTmpl = template.Must(template.New("exercises").Funcs(templateFuncs).Parse(exerciseListTemplate))
	mealListTmpl     = template.Must(template.New("meals").Funcs(templateFuncs).Funcs(template.FuncMap{"mealMacros": mealMacros}).Parse(mealListTemplate))
	weightListTmpl   = template.Must(template.New("weight").Funcs(templateFuncs).Parse(weightListTemplate))
)
