package history

import (
	"context"
	"strings"
	"sync"

	"github.com/dshills/promptline/internal/logging"
)

// Log is the session history. Loading starts at construction and is
// awaited on first use. Adding an entry updates memory immediately and
// queues it for a single background writer, so entries reach the store
// in submission order. Persistence failures are logged and otherwise
// ignored.
//
// Navigation keeps an index into the entries. The index equals the
// number of entries while the user is editing a fresh line.
type Log struct {
	store  Store
	limit  int
	logger *logging.Logger

	loaded  chan struct{}
	entries []string
	index   int

	mu      sync.Mutex
	closed  bool
	appends chan string
	written chan struct{}
}

// appendQueue is how many entries may wait for the writer before Add
// blocks.
const appendQueue = 64

// NewLog starts loading up to limit entries from store. A nil store gives
// an in-memory history.
func NewLog(ctx context.Context, store Store, limit int, logger *logging.Logger) *Log {
	if store == nil {
		store = NewMemoryStore()
	}
	if limit <= 0 {
		limit = DefaultMaxEntries
	}
	if logger == nil {
		logger = logging.Null()
	}
	l := &Log{
		store:   store,
		limit:   limit,
		logger:  logger.WithComponent("history"),
		loaded:  make(chan struct{}),
		appends: make(chan string, appendQueue),
		written: make(chan struct{}),
	}
	go l.load(ctx)
	go l.persist()
	return l
}

// persist writes queued entries in order until the queue is closed.
func (l *Log) persist() {
	defer close(l.written)
	for entry := range l.appends {
		if err := l.store.Append(context.Background(), entry); err != nil {
			l.logger.Warn("append failed: %v", err)
		}
	}
}

func (l *Log) load(ctx context.Context) {
	defer close(l.loaded)
	entries, err := l.store.Load(ctx, l.limit)
	if err != nil {
		l.logger.Warn("load failed, continuing without history: %v", err)
		return
	}
	l.entries = entries
	l.index = len(entries)
	l.logger.Debug("loaded %d entries", len(entries))
}

// Wait blocks until loading has finished or ctx is done.
func (l *Log) Wait(ctx context.Context) error {
	select {
	case <-l.loaded:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Log) ready() {
	<-l.loaded
}

// Len returns the number of entries.
func (l *Log) Len() int {
	l.ready()
	return len(l.entries)
}

// Entries returns a copy of the entries, oldest first.
func (l *Log) Entries() []string {
	l.ready()
	return append([]string(nil), l.entries...)
}

// Add records a submitted entry and resets navigation. Blank entries and
// repeats of the newest entry are not recorded.
func (l *Log) Add(entry string) {
	l.ready()
	defer l.Reset()

	if strings.TrimSpace(entry) == "" {
		return
	}
	if n := len(l.entries); n > 0 && l.entries[n-1] == entry {
		return
	}
	l.entries = append(l.entries, entry)
	if len(l.entries) > l.limit {
		l.entries = append([]string(nil), l.entries[len(l.entries)-l.limit:]...)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		l.logger.Warn("append after close dropped")
		return
	}
	l.appends <- entry
}

// Reset moves navigation back past the newest entry.
func (l *Log) Reset() {
	l.ready()
	l.index = len(l.entries)
}

// Navigating reports whether an entry is currently recalled.
func (l *Log) Navigating() bool {
	l.ready()
	return l.index < len(l.entries)
}

// Previous recalls the closest older entry starting with prefix.
func (l *Log) Previous(prefix string) (string, bool) {
	l.ready()
	for i := l.index - 1; i >= 0; i-- {
		if strings.HasPrefix(l.entries[i], prefix) {
			l.index = i
			return l.entries[i], true
		}
	}
	return "", false
}

// Next recalls the closest newer entry starting with prefix. When there
// is none, navigation ends and Next returns false.
func (l *Log) Next(prefix string) (string, bool) {
	l.ready()
	for i := l.index + 1; i < len(l.entries); i++ {
		if strings.HasPrefix(l.entries[i], prefix) {
			l.index = i
			return l.entries[i], true
		}
	}
	l.index = len(l.entries)
	return "", false
}

// Close waits for queued appends and closes the store.
func (l *Log) Close() error {
	l.ready()
	l.mu.Lock()
	if !l.closed {
		l.closed = true
		close(l.appends)
	}
	l.mu.Unlock()
	<-l.written
	return l.store.Close()
}
