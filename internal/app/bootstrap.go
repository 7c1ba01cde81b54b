package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/promptline/internal/config"
	"github.com/dshills/promptline/internal/highlight"
	"github.com/dshills/promptline/internal/history"
	"github.com/dshills/promptline/internal/logging"
	"github.com/dshills/promptline/internal/prompt"
	"github.com/dshills/promptline/internal/script"
)

// loadConfig reads the configuration file, if any, then the environment
// and the command line overrides.
func loadConfig(opts Options) (*config.Config, error) {
	cfg := config.Default()
	if opts.ConfigPath != "" {
		loaded, err := config.Load(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, err
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}
	if opts.LogFile != "" {
		cfg.Logging.File = opts.LogFile
	}
	if opts.HistoryBackend != "" {
		cfg.History.Backend = opts.HistoryBackend
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openLogger logs to the configured file. Without one nothing is logged,
// since the terminal belongs to the prompt.
func (a *Application) openLogger() error {
	path := a.cfg.Logging.File
	if path == "" {
		a.logger = logging.Null()
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return NewComponentError("logging", "create directory", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return NewComponentError("logging", "open "+path, err)
	}
	a.closers = append(a.closers, f.Close)
	a.logger = logging.New(logging.Config{
		Level:  logging.ParseLevel(a.cfg.Logging.Level),
		Output: f,
		Prefix: "promptline",
	})
	return nil
}

// openHistory opens the configured store and starts loading it.
func (a *Application) openHistory(ctx context.Context) error {
	hc := a.cfg.History
	logger := a.logger.WithComponent("history")
	var store history.Store
	switch hc.Backend {
	case config.HistoryNone:
		return nil
	case config.HistoryMemory:
		store = history.NewMemoryStore()
	case config.HistoryFile, config.HistorySQLite:
		path, err := historyPath(hc)
		if err != nil {
			return NewComponentError("history", "resolve path", err)
		}
		if hc.Backend == config.HistoryFile {
			store = history.NewFileStore(path, history.WithFileLogger(logger))
		} else if store, err = history.OpenSQLite(path); err != nil {
			return NewComponentError("history", "open "+path, err)
		}
	}
	a.history = history.NewLog(ctx, store, hc.MaxEntries, logger)
	a.closers = append(a.closers, a.history.Close)
	a.logger.Debug("history backend %s", hc.Backend)
	return nil
}

// historyPath returns the configured path or one under the user's
// config directory.
func historyPath(hc config.HistoryConfig) (string, error) {
	if hc.Path != "" {
		return hc.Path, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	name := "history"
	if hc.Backend == config.HistorySQLite {
		name = "history.db"
	}
	return filepath.Join(dir, "promptline", name), nil
}

// promptOptions builds the prompt's options. Callbacks come from the
// script, then highlighting, then the built-in history completer.
func (a *Application) promptOptions() (prompt.Options, error) {
	opts, err := a.cfg.PromptOptions()
	if err != nil {
		return prompt.Options{}, err
	}
	opts.History = a.history
	opts.Logger = a.logger

	if path := a.cfg.Script.Path; path != "" {
		s, err := script.Load(path, script.WithLogger(a.logger.WithComponent("script")))
		if err != nil {
			return prompt.Options{}, NewComponentError("script", "load", err)
		}
		a.closers = append(a.closers, s.Close)
		s.Apply(&opts)
	}

	if hl := a.cfg.Highlight; hl.Language != "" && opts.Highlight == nil {
		h, err := highlight.New(highlight.Options{
			Language:  hl.Language,
			Style:     hl.Style,
			TrueColor: hl.TrueColor,
		})
		if err != nil {
			return prompt.Options{}, NewComponentError("highlight", "", err)
		}
		opts.Highlight = h.Highlight
	}

	switch {
	case !a.cfg.Completion.Enabled:
		opts.Completion = nil
	case opts.Completion == nil && a.history != nil:
		opts.Completion = historyCompleter(a.history)
	}
	return opts, nil
}

func (a *Application) bootstrap(ctx context.Context) error {
	if err := a.openLogger(); err != nil {
		return fmt.Errorf("%w: %w", ErrInitialization, err)
	}
	if err := a.openHistory(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrInitialization, err)
	}
	opts, err := a.promptOptions()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInitialization, err)
	}
	a.promptOpts = opts
	return nil
}
