package main

import (
	"io"
	"log"
	"os"

	"github.com/rivo/tview"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lowaak/wod-timer/internal/config"
	"github.com/lowaak/wod-timer/internal/logging"
	"github.com/lowaak/wod-timer/internal/session"
	"github.com/lowaak/wod-timer/internal/storage"
	"github.com/lowaak/wod-timer/internal/tui"
	"github.com/lowaak/wod-timer/internal/workout"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wodtimer",
		Short: "Workout timer for AMRAP, For Time, EMOM, Tabata and open sessions",
		Long: `wodtimer runs workouts block by block in the terminal and keeps a history
of every session. Without a subcommand it opens the workout selection screen.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, nil)
		},
	}
	config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newWorkoutCmd())
	rootCmd.AddCommand(newHistoryCmd())
	return rootCmd
}

// app holds what every subcommand needs once the configuration is resolved
type app struct {
	cfg    config.Config
	logger *log.Logger
	closer io.Closer
	store  *storage.Store
}

// newApp resolves the configuration and opens the store. Log lines go to the
// configured file and to logOut.
func newApp(cmd *cobra.Command, logOut io.Writer) (*app, error) {
	cfg, err := config.Load(viper.New(), cmd.Flags())
	if err != nil {
		return nil, err
	}
	logger, closer := logging.New(cfg.Log, logOut)

	store, err := storage.New(cfg.Storage.Dir, logger)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}
	return &app{cfg: cfg, logger: logger, closer: closer, store: store}, nil
}

func (a *app) Close() {
	_ = a.closer.Close()
}

// selectableWorkouts returns the stored workouts followed by the presets
func (a *app) selectableWorkouts() []workout.Workout {
	stored, err := a.store.List()
	if err != nil {
		a.logger.Printf("App: failed to list workouts: %v", err)
	}
	return append(stored, workout.Presets...)
}

// runTUI opens the terminal UI. A non-nil preload is loaded and shown right away.
func runTUI(cmd *cobra.Command, preload *workout.Workout) error {
	uiLogChan, logWriter := tui.NewLogChannel()
	a, err := newApp(cmd, logWriter)
	if err != nil {
		return err
	}
	defer a.Close()

	a.logger.Printf("App: starting, data in %s", a.store.Dir())

	manager := session.NewManager(session.ManagerArgs{
		Logger:         a.logger,
		SampleInterval: a.cfg.Timer.SampleInterval,
		AutoAdvance:    a.cfg.Session.AutoAdvance,
		Sink:           a.store,
	})

	model := tui.NewUIModel(a.logger, uiLogChan, a.selectableWorkouts(), a.store.Dir())
	controller := tui.NewUIController(model, manager, a.logger)
	view := tui.NewCursesUIView(a.logger, tview.NewApplication(), model)
	base := tui.NewBaseUIView(tui.NewBaseUIViewArg{
		UIViewImpl:     view,
		UIModel:        model,
		UIController:   controller,
		Session:        manager,
		DisplayRefresh: a.cfg.Timer.DisplayRefresh,
		Logger:         a.logger,
	})

	if preload != nil {
		if err := manager.Load(preload); err != nil {
			base.Shutdown()
			controller.Shutdown()
			model.Shutdown()
			return err
		}
		model.SetMode(tui.UIModeTimer)
	}

	runErr := base.Run()

	base.Shutdown()
	controller.Shutdown()
	model.Shutdown()
	a.logger.Println("App: exited")
	return runErr
}
