package history

import (
	"bufio"
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dshills/promptline/internal/logging"
)

// FileStore stores one base64 encoded entry per line, so entries may
// contain newlines. The file is only ever appended to while a session
// runs; Load rewrites it when it has grown past twice the load bound.
type FileStore struct {
	path   string
	mu     sync.Mutex
	closed bool
	logger *logging.Logger

	// trim replaces the file's lines; swapped in tests.
	trim func(lines []string) error
}

// FileOption configures a FileStore.
type FileOption func(*FileStore)

// WithFileLogger sets the logger that reports trim failures.
func WithFileLogger(logger *logging.Logger) FileOption {
	return func(s *FileStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewFileStore creates a store backed by the file at path. The file and
// its directory are created on the first Append.
func NewFileStore(path string, opts ...FileOption) *FileStore {
	s := &FileStore{path: path, logger: logging.Null()}
	s.trim = s.rewrite
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load returns up to limit of the most recent entries. A missing file is an
// empty history. Lines that do not decode are skipped. A failed trim is
// logged and the entries are still returned.
func (s *FileStore) Load(ctx context.Context, limit int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrStoreClosed
	}

	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	defer f.Close()

	var lines, entries []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		decoded, err := base64.StdEncoding.DecodeString(line)
		if err != nil {
			continue
		}
		lines = append(lines, line)
		entries = append(entries, string(decoded))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	if limit > 0 && len(lines) > 2*limit {
		if err := s.trim(lines[len(lines)-limit:]); err != nil {
			s.logger.Warn("keeping untrimmed history file %s: %v", s.path, err)
		}
	}
	return tail(entries, limit), nil
}

// rewrite atomically replaces the file with lines.
func (s *FileStore) rewrite(lines []string) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("trim history: %w", err)
	}
	w := bufio.NewWriter(tmp)
	for _, l := range lines {
		w.WriteString(l)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("trim history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("trim history: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("trim history: %w", err)
	}
	return nil
}

// Append writes entry as a new line.
func (s *FileStore) Append(_ context.Context, entry string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	line := base64.StdEncoding.EncodeToString([]byte(entry)) + "\n"
	if _, err := f.WriteString(line); err != nil {
		f.Close()
		return fmt.Errorf("append history: %w", err)
	}
	return f.Close()
}

// Close marks the store closed.
func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
