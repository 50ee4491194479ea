package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"gridkeys/internal/config"
	"gridkeys/internal/eventbus"
	"gridkeys/internal/pointer"
	"gridkeys/internal/session"
	"gridkeys/internal/ui"
)

var version = "dev"

type options struct {
	configPath  string
	backend     string
	logPath     string
	keys        string
	oneshot     bool
	bindings    bool
	writeConfig bool
	version     bool
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := pflag.NewFlagSet("gridkeys", pflag.ContinueOnError)
	fs.StringVarP(&o.configPath, "config", "c", "", "config file (default $GRIDKEYS_CONFIG or the user config dir)")
	fs.StringVarP(&o.backend, "backend", "b", defaultBackend(), "pointer backend: x11 or dryrun")
	fs.StringVar(&o.logPath, "log", defaultLogPath(), "log file")
	fs.StringVarP(&o.keys, "keys", "k", "", `run headless with a key script, e.g. "f f space"`)
	fs.BoolVar(&o.oneshot, "oneshot", false, "quit after the first click")
	fs.BoolVar(&o.bindings, "bindings", false, "show the key bindings in a pager and exit")
	fs.BoolVar(&o.writeConfig, "write-config", false, "write the effective config to the config path and exit")
	fs.BoolVarP(&o.version, "version", "v", false, "print version and exit")
	err := fs.Parse(args)
	return o, err
}

func defaultBackend() string {
	if os.Getenv("DISPLAY") != "" {
		return pointer.BackendX11
	}
	return pointer.BackendDryRun
}

func defaultLogPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "gridkeys", "gridkeys.log")
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if opts.version {
		fmt.Println("gridkeys", version)
		return 0
	}

	// Set up logging
	if err := os.MkdirAll(filepath.Dir(opts.logPath), 0o755); err == nil {
		logFile, err := os.OpenFile(opts.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Printf("Could not open log file: %v", err)
		} else {
			defer logFile.Close()
			log.SetOutput(logFile)
		}
	}

	configPath := config.ResolvePath(opts.configPath)
	file, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gridkeys: %v\n", err)
		return 1
	}

	if opts.writeConfig {
		if err := config.Save(configPath, file); err != nil {
			fmt.Fprintf(os.Stderr, "gridkeys: %v\n", err)
			return 1
		}
		fmt.Println("wrote", configPath)
		return 0
	}

	backend, err := pointer.Open(opts.backend, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gridkeys: %v\n", err)
		return 1
	}
	defer backend.Close()

	cfg, err := file.Build(backend.Screen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gridkeys: invalid config %s: %v\n", configPath, err)
		return 1
	}
	log.Printf("Starting gridkeys %s: backend %s, area %s, %d levels", version, opts.backend, cfg.Bounds, cfg.Depth())

	if opts.bindings {
		if err := ui.ShowBindingsInPager(nil, ui.BindingsText(cfg)); err != nil {
			fmt.Fprintf(os.Stderr, "gridkeys: %v\n", err)
			return 1
		}
		return 0
	}

	if opts.keys != "" {
		c := session.New(cfg, backend.Pointer, nil)
		if err := session.Run(c, session.ParseKeys(opts.keys), os.Stdout); err != nil {
			return 1
		}
		return 0
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := eventbus.New()
	defer bus.Close()
	subscribeLogging(bus)

	controller := session.New(cfg, backend.Pointer, session.NewBusObserver(bus))
	model := ui.NewModel(controller, ui.Options{Oneshot: opts.oneshot})

	p := tea.NewProgram(model, tea.WithAltScreen())
	model.SetProgram(p)

	unforward := ui.Forward(bus, p.Send)
	defer unforward()

	if err := config.Watch(ctx, configPath, func(f config.File, err error) {
		if err == nil {
			next, berr := f.Build(backend.Screen)
			if berr == nil {
				bus.Publish(eventbus.ConfigReloadedEvent{Path: configPath, Config: next})
				return
			}
			err = berr
		}
		bus.Publish(eventbus.ConfigRejectedEvent{Path: configPath, Err: err})
	}); err != nil {
		log.Printf("Config watcher disabled: %v", err)
	}

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			p.Quit()
		case <-ctx.Done():
		}
	}()

	if _, err := p.Run(); err != nil {
		log.Printf("Error running program: %v", err)
		fmt.Fprintf(os.Stderr, "gridkeys: %v\n", err)
		return 1
	}
	log.Printf("gridkeys exiting")
	return 0
}

func subscribeLogging(bus eventbus.EventBus) {
	bus.Subscribe(eventbus.EventPointerDispatched, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.PointerDispatchedEvent); ok {
			log.Printf("Event: session %s key %q dispatched %s", ev.SessionID, ev.Key, ev.Command)
		}
	})
	bus.Subscribe(eventbus.EventDispatchFailed, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.DispatchFailedEvent); ok {
			log.Printf("Event: session %s key %q failed: %v", ev.SessionID, ev.Key, ev.Err)
		}
	})
	bus.Subscribe(eventbus.EventConfigReloaded, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.ConfigReloadedEvent); ok {
			log.Printf("Event: config %s reloaded", ev.Path)
		}
	})
	bus.Subscribe(eventbus.EventConfigRejected, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.ConfigRejectedEvent); ok {
			log.Printf("Event: config %s rejected: %v", ev.Path, ev.Err)
		}
	})
}
