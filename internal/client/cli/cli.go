// Package cli implements the fitsync client commands on top of cobra.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/iudanet/fitsync/internal/client/api"
	"github.com/iudanet/fitsync/internal/client/auth"
	"github.com/iudanet/fitsync/internal/client/iocli"
	"github.com/iudanet/fitsync/internal/client/queue"
	"github.com/iudanet/fitsync/internal/client/remote"
	"github.com/iudanet/fitsync/internal/client/storage"
	"github.com/iudanet/fitsync/internal/client/storage/boltdb"
	"github.com/iudanet/fitsync/internal/client/store"
	syncsvc "github.com/iudanet/fitsync/internal/client/sync"
	"github.com/iudanet/fitsync/internal/config"
	"github.com/iudanet/fitsync/internal/logging"
)

// VersionInfo данные сборки, задаются через ldflags
type VersionInfo struct {
	Version   string
	BuildDate string
	GitCommit string
}

// rootFlags глобальные флаги
type rootFlags struct {
	configPath string
	serverURL  string
	dbPath     string
	verbose    bool
}

// App зависимости команд; создаются один раз на процесс
type App struct {
	cfg       *config.ClientConfig
	io        iocli.IO
	logger    *slog.Logger
	storage   *boltdb.Storage
	api       *api.Client
	auth      *auth.Service
	queue     *queue.Queue
	workouts  *store.WorkoutStore
	nutrition *store.NutritionStore
	sync      *syncsvc.Service
	flags     rootFlags
}

// Execute выполняет команду и всегда закрывает локальную базу. Отложенный
// push отправляется перед выходом.
func Execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer, version VersionInfo) error {
	app := &App{io: iocli.NewConsole(in, out)}
	root := newRootCommand(app, version)
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.ExecuteContext(ctx)
	if closeErr := app.close(context.WithoutCancel(ctx)); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

func newRootCommand(app *App, version VersionInfo) *cobra.Command {
	root := &cobra.Command{
		Use:           "fitsync",
		Short:         "Offline-first workout and nutrition journal",
		Long:          "fitsync keeps your workouts, meals and body weight locally and syncs them with the server when it is reachable.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.open(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&app.flags.configPath, "config", "", "Path to TOML config file")
	pf.StringVar(&app.flags.serverURL, "server", "", "Server URL (overrides config)")
	pf.StringVar(&app.flags.dbPath, "db", "", "Path to local database (overrides config)")
	pf.BoolVarP(&app.flags.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newRegisterCommand(app),
		newLoginCommand(app),
		newLogoutCommand(app),
		newStatusCommand(app),
		newSyncCommand(app),
		newWatchCommand(app),
		newWorkoutCommand(app),
		newExerciseCommand(app),
		newMealCommand(app),
		newWaterCommand(app),
		newWeightCommand(app),
		newVersionCommand(app, version),
	)
	return root
}

// open загружает конфигурацию и открывает локальную базу
func (a *App) open(cmd *cobra.Command) error {
	cfg, err := config.LoadClient(a.flags.configPath)
	if err != nil {
		return err
	}
	if a.flags.serverURL != "" {
		cfg.ServerURL = a.flags.serverURL
	}
	if a.flags.dbPath != "" {
		cfg.DBPath = a.flags.dbPath
	}
	if a.flags.verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	a.logger = logger

	ctx := cmd.Context()
	boltStorage, err := boltdb.New(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	a.storage = boltStorage

	a.api = api.NewClient(cfg.ServerURL)
	a.auth = auth.NewService(a.api, boltStorage)
	a.queue = queue.New(ctx, boltStorage, logger,
		queue.WithMaxRetries(cfg.Sync.MaxRetries),
		queue.WithReplayTimeout(cfg.Sync.ReplayTimeout))
	a.workouts = store.NewWorkoutStore(ctx, boltStorage, logger)
	a.nutrition = store.NewNutritionStore(ctx, boltStorage, logger)
	a.sync = syncsvc.NewService(syncsvc.Deps{
		Remote:    remote.NewClient(a.api, a.auth, logger),
		Queue:     a.queue,
		Workouts:  a.workouts,
		Nutrition: a.nutrition,
		Metadata:  boltStorage,
	}, syncsvc.Config{
		Debounce:           cfg.Sync.Debounce,
		PushTimeout:        cfg.Sync.PushTimeout,
		ClearQueueOnLogout: cfg.Queue.ClearOnLogout,
	}, logger)
	return nil
}

// close отправляет отложенный push и закрывает базу; повторный вызов безопасен
func (a *App) close(ctx context.Context) error {
	var errs []error
	if a.sync != nil {
		if err := a.sync.Close(ctx); err != nil {
			// изменение уже в очереди, ошибка не критична
			a.logger.Debug("Pending push failed on exit", slog.Any("error", err))
		}
		a.sync = nil
	}
	if a.storage != nil {
		if err := a.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
		a.storage = nil
	}
	return errors.Join(errs...)
}

// requireSession возвращает сессию и подключает синхронизацию. Истекшая
// сессия допускается: изменения сохранятся локально и уйдут в очередь.
func (a *App) requireSession(ctx context.Context) (*storage.AuthData, error) {
	session, err := a.auth.Session(ctx)
	if err != nil && !errors.Is(err, auth.ErrSessionExpired) {
		return nil, err
	}
	if errors.Is(err, auth.ErrSessionExpired) {
		a.io.Println("⚠️  Session expired: changes are saved locally and will sync after 'fitsync login'.")
	}
	a.sync.Resume(session.UserID)
	return session, nil
}
