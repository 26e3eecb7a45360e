package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/sadopc/peak/internal/config"
	"github.com/sadopc/peak/internal/logging"
	"github.com/sadopc/peak/internal/platform"
	"github.com/sadopc/peak/internal/service"
	"github.com/sadopc/peak/internal/state"
	"github.com/sadopc/peak/internal/store"
	"github.com/sadopc/peak/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	defaultPath, err := config.Path()
	if err != nil {
		return err
	}
	configPath := flag.String("config", defaultPath, "path to the config file")
	reset := flag.Bool("reset", false, "discard the saved timer, tasks and settings before starting")
	initConfig := flag.Bool("init-config", false, "write the default config file and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *initConfig {
		if err := config.Save(*configPath, cfg); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", *configPath)
		return nil
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("peak needs an interactive terminal")
	}

	logger, err := logging.New(cfg.LogPath)
	if err != nil {
		return err
	}
	defer logger.Close()

	db, err := store.New(cfg.DBPath, store.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	if *reset {
		if err := db.Clear(ctx); err != nil {
			return err
		}
	}

	initial, err := db.Load(ctx)
	if err != nil {
		return err
	}
	appStore := state.NewStore(initial)
	// Time spent closed is not counted; a session restored as running waits
	// for the user instead.
	if appStore.GetState().Timer.State.IsRunning {
		appStore.Dispatch(state.TimerPause{})
	}

	var audio service.Audio = platform.Silent{}
	if cfg.Bell {
		audio = platform.NewBell(os.Stdout)
	}
	svc := service.New(service.Deps{
		Store:    appStore,
		Clock:    platform.RealClock{},
		IDs:      platform.UUIDGenerator{},
		Audio:    audio,
		Notifier: platform.NewNotifier(cfg.NotifyCommand, logger),
		Logger:   logger,
	})

	saveCtx, stopSaving := context.WithCancel(ctx)
	saver := store.NewAutosaver(db, cfg.AutosaveDelay, logger)
	go saver.Run(saveCtx)
	unsubscribe := appStore.Subscribe(func() {
		saver.Offer(appStore.GetState())
	})

	presence := db.NewPresence(uuid.NewString(), cfg.PresenceTTL)

	exportDir, err := os.UserHomeDir()
	if err != nil {
		exportDir = "."
	}

	app := tui.NewApp(svc, tui.Options{
		TickInterval:     cfg.TickInterval,
		PresenceInterval: cfg.PresenceInterval,
		Presence:         presence,
		ExportDir:        exportDir,
		Logger:           logger,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	_, runErr := p.Run()

	unsubscribe()
	saver.Offer(appStore.GetState())
	stopSaving()
	<-saver.Done()
	svc.Wait()
	if err := presence.Leave(ctx); err != nil {
		logger.Printf("presence leave: %v", err)
	}

	return runErr
}
