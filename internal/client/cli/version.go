package cli

import "github.com/spf13/cobra"

func newVersionCommand(app *App, v VersionInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		// локальная база не нужна
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			app.io.Println("fitsync client")
			app.io.Printf("Version:    %s\n", v.Version)
			app.io.Printf("Build Date: %s\n", v.BuildDate)
			app.io.Printf("Git Commit: %s\n", v.GitCommit)
		},
	}
}
