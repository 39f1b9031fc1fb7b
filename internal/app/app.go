package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/modlight/internal/config"
	"github.com/dshills/modlight/internal/modifier"
	"github.com/dshills/modlight/internal/modstate"
	"github.com/dshills/modlight/internal/osd"
	"github.com/dshills/modlight/internal/script"
	"github.com/dshills/modlight/internal/tui"
)

// Options configures the application.
type Options struct {
	// ConfigPath overrides the default settings file location.
	ConfigPath string

	// ScriptPath is an optional Lua hook that rewrites the indicator line.
	ScriptPath string

	// LogLevel is the minimum log level (debug, info, warn, error).
	LogLevel string

	// NoOSD disables desktop notifications for lock changes.
	NoOSD bool

	// PollInterval overrides the lock-state polling interval.
	PollInterval time.Duration
}

// Application owns the long-lived components and their lifecycle.
type Application struct {
	opts   Options
	logger *Logger

	store     *config.Store
	formatter *script.Formatter
	notifier  *osd.Notifier
	monitor   *modstate.Monitor

	screen tcell.Screen
	prefs  *tui.Preferences

	mu       sync.Mutex
	running  bool
	shutdown bool
}

// New creates the application: store loaded, monitor and notifier
// constructed, script hook compiled. The screen is not touched until Run.
func New(opts Options) (*Application, error) {
	logger := NewLogger(LoggerConfig{
		Level:  ParseLogLevel(opts.LogLevel),
		Output: nil,
		Prefix: "modlight",
	})

	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}

	store := config.New(
		config.WithPath(path),
		config.WithWatcher(true),
	)
	if err := store.Load(); err != nil {
		return nil, fmt.Errorf("loading settings from %s: %w", path, err)
	}
	logger.WithComponent("config").Info("settings loaded from %s", path)

	app := &Application{
		opts:     opts,
		logger:   logger,
		store:    store,
		notifier: osd.New(),
	}

	if opts.ScriptPath != "" {
		formatter, err := script.Load(opts.ScriptPath)
		if err != nil {
			// A broken hook never blocks startup.
			logger.WithComponent("script").Warn("format hook disabled: %v", err)
		} else {
			app.formatter = formatter
		}
	}

	var monitorOpts []modstate.MonitorOption
	if opts.PollInterval > 0 {
		monitorOpts = append(monitorOpts, modstate.WithInterval(opts.PollInterval))
	}
	app.monitor = modstate.NewMonitor(modstate.NewReader(), monitorOpts...)

	return app, nil
}

// Logger returns the application logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

// Run initializes the terminal, starts the lock monitor, and drives the
// preferences surface until the user quits. It returns ErrQuit on a normal
// exit.
func (app *Application) Run() error {
	app.mu.Lock()
	if app.running {
		app.mu.Unlock()
		return ErrAlreadyRunning
	}
	app.running = true
	app.mu.Unlock()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}

	app.mu.Lock()
	app.screen = screen
	app.mu.Unlock()
	defer screen.Fini()

	prefs, err := tui.NewPreferences(screen, app.store)
	if err != nil {
		return err
	}
	if app.formatter != nil {
		prefs.SetFormatter(app.formatter.Format)
	}

	app.mu.Lock()
	app.prefs = prefs
	app.mu.Unlock()

	prefs.SetLockState(app.monitor.Current())
	app.monitor.Start()
	go app.watchLocks(prefs)

	app.logger.Info("preferences surface up")
	prefs.Run()

	app.mu.Lock()
	app.running = false
	app.mu.Unlock()
	return ErrQuit
}

// watchLocks forwards lock transitions to the OSD and the indicator line.
// It exits when the monitor stops.
func (app *Application) watchLocks(prefs *tui.Preferences) {
	log := app.logger.WithComponent("modstate")
	for change := range app.monitor.Changes() {
		state := app.monitor.Current()
		prefs.Loop().Post(func() {
			prefs.SetLockState(state)
		})

		if app.opts.NoOSD {
			continue
		}
		id, err := app.notifier.LockChanged(change.Lock, change.On, app.fieldFor(change.Lock))
		if err != nil {
			log.Warn("notification failed: %v", err)
			continue
		}
		if id != "" {
			log.Debug("notified %s=%v id=%s", change.Lock, change.On, id)
		}
	}
}

// fieldFor snapshots the configured display field for one modifier.
func (app *Application) fieldFor(id modifier.ID) modifier.Field {
	symbol, _ := app.store.GetString(id.SymbolKey())
	iconPath, _ := app.store.GetString(id.IconPathKey())
	useIcon, _ := app.store.GetBool(id.UseIconKey())
	return modifier.Field{
		ID:       id,
		Symbol:   symbol,
		IconPath: iconPath,
		UseIcon:  useIcon,
	}
}

// Shutdown releases every component. It is safe to call more than once and
// from any goroutine; a running surface is asked to quit first.
func (app *Application) Shutdown() {
	app.mu.Lock()
	if app.shutdown {
		app.mu.Unlock()
		return
	}
	app.shutdown = true
	prefs := app.prefs
	screen := app.screen
	app.mu.Unlock()

	app.monitor.Stop()

	if prefs != nil {
		prefs.Loop().Post(prefs.Quit)
	}
	if screen != nil {
		// Unblocks PollEvent so the surface loop can exit.
		screen.Fini()
	}

	if app.formatter != nil {
		app.formatter.Close()
	}
	app.store.Close()
	app.logger.Info("shutdown complete")
}
