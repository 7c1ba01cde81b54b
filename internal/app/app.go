package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/dshills/promptline/internal/config"
	"github.com/dshills/promptline/internal/history"
	"github.com/dshills/promptline/internal/input/key"
	"github.com/dshills/promptline/internal/logging"
	"github.com/dshills/promptline/internal/prompt"
	"github.com/dshills/promptline/internal/terminal"
)

// Options configures the application. Command line flags map onto it.
type Options struct {
	// ConfigPath is the path to the configuration file.
	ConfigPath string

	// LogLevel and LogFile override the configuration.
	LogLevel string
	LogFile  string

	// HistoryBackend overrides history.backend.
	HistoryBackend string

	// Watch reloads the theme when the configuration file changes.
	Watch bool

	// LookupEnv reads the environment. Defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)

	// Handle is called with every submitted entry; its result is printed
	// below the prompt. Defaults to echoing the entry.
	Handle func(entry string) string
}

// Application is the promptline REPL.
type Application struct {
	opts       Options
	cfg        *config.Config
	logger     *logging.Logger
	history    *history.Log
	promptOpts prompt.Options

	// theme is set by the config watcher and applied before the next read.
	theme   atomic.Pointer[prompt.Theme]
	watcher *config.Watcher

	running  atomic.Bool
	closers  []func() error
	shutdown sync.Once
}

// New creates an application: configuration, logging, history and the
// prompt's callbacks.
func New(ctx context.Context, opts Options) (*Application, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	if opts.Handle == nil {
		opts.Handle = func(entry string) string { return entry }
	}
	a := &Application{opts: opts, cfg: cfg}
	if err := a.bootstrap(ctx); err != nil {
		a.Shutdown()
		return nil, err
	}
	if opts.Watch && opts.ConfigPath != "" {
		if err := a.watchConfig(); err != nil {
			a.logger.Warn("config watch disabled: %v", err)
		}
	}
	return a, nil
}

// Config returns the loaded configuration.
func (a *Application) Config() *config.Config {
	return a.cfg
}

func (a *Application) watchConfig() error {
	w, err := config.Watch(a.opts.ConfigPath, 0, func(cfg *config.Config, err error) {
		if err != nil {
			a.logger.Warn("config reload failed: %v", err)
			return
		}
		theme, err := cfg.Theme.Theme()
		if err != nil {
			a.logger.Warn("config reload failed: %v", err)
			return
		}
		a.theme.Store(&theme)
		a.logger.Info("theme reloaded from %s", a.opts.ConfigPath)
	})
	if err != nil {
		return err
	}
	a.watcher = w
	return nil
}

// Run opens the terminal on stdin and stdout and reads entries until end
// of input.
func (a *Application) Run(ctx context.Context) error {
	t, err := terminal.Open(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	defer t.Close()
	a.promptOpts.WindowsNewlines = t.WindowsNewlines()
	return a.Serve(ctx, t, t.Keys())
}

// Serve runs the read loop on console. Ctrl+C abandons the current
// entry; end of input ends the loop.
func (a *Application) Serve(ctx context.Context, console prompt.Console, keys key.Source) error {
	if !a.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer a.running.Store(false)

	p := prompt.New(console, keys, a.promptOpts)
	a.logger.Info("started")
	for {
		if t := a.theme.Swap(nil); t != nil {
			p.SetTheme(*t)
		}
		res, err := p.ReadLine(ctx)
		switch {
		case errors.Is(err, prompt.ErrEOF):
			a.logger.Info("end of input")
			return nil
		case err != nil:
			return err
		case res.Cancelled():
			continue
		}
		if out := a.opts.Handle(res.Text); out != "" {
			if _, err := io.WriteString(console, out+"\n"); err != nil {
				return fmt.Errorf("write console: %w", err)
			}
		}
	}
}

// Shutdown stops the config watcher and closes history, script and log
// file. It is safe to call more than once.
func (a *Application) Shutdown() {
	a.shutdown.Do(func() {
		if a.watcher != nil {
			a.watcher.Close()
		}
		for i := len(a.closers) - 1; i >= 0; i-- {
			if err := a.closers[i](); err != nil && a.logger != nil {
				a.logger.Warn("shutdown: %v", err)
			}
		}
	})
}
