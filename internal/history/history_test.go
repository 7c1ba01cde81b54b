package history

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/promptline/internal/logging"
)

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sub", "history")
	s := NewFileStore(path)

	entries := []string{"ls", "for x in y:\n    print(x)", "écho ✓"}
	for _, e := range entries {
		if err := s.Append(ctx, e); err != nil {
			t.Fatalf("Append(%q) error = %v", e, err)
		}
	}

	got, err := s.Load(ctx, 10)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if strings.Join(got, "|") != strings.Join(entries, "|") {
		t.Errorf("Load() = %q, want %q", got, entries)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(data), "\n"); n != len(entries) {
		t.Errorf("file has %d lines, want %d", n, len(entries))
	}
}

func TestFileStoreMissingFile(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "none"))
	got, err := s.Load(context.Background(), 10)
	if err != nil || len(got) != 0 {
		t.Errorf("Load() = %v, %v; want empty, nil", got, err)
	}
}

func TestFileStoreSkipsCorruptLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")
	content := base64.StdEncoding.EncodeToString([]byte("good")) + "\n%%%not base64\n\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := NewFileStore(path).Load(context.Background(), 10)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != 1 || got[0] != "good" {
		t.Errorf("Load() = %q, want [good]", got)
	}
}

func TestFileStoreTrimsAtLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history")
	s := NewFileStore(path)
	for i := range 7 {
		if err := s.Append(ctx, fmt.Sprintf("e%d", i)); err != nil {
			t.Fatal(err)
		}
	}

	// Seven lines is under twice the bound of four: no rewrite.
	if _, err := s.Load(ctx, 4); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if n := strings.Count(string(data), "\n"); n != 7 {
		t.Fatalf("file trimmed early to %d lines", n)
	}

	got, err := s.Load(ctx, 3)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(got, ",") != "e4,e5,e6" {
		t.Errorf("Load() = %q", got)
	}
	data, _ = os.ReadFile(path)
	if n := strings.Count(string(data), "\n"); n != 3 {
		t.Errorf("file has %d lines after trim, want 3", n)
	}
}

func TestFileStoreKeepsEntriesWhenTrimFails(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history")
	var logged bytes.Buffer
	s := NewFileStore(path, WithFileLogger(logging.New(logging.Config{Level: logging.LevelDebug, Output: &logged})))
	for i := range 5 {
		if err := s.Append(ctx, fmt.Sprintf("e%d", i)); err != nil {
			t.Fatal(err)
		}
	}
	s.trim = func([]string) error { return errors.New("read-only file system") }

	got, err := s.Load(ctx, 2)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if strings.Join(got, ",") != "e3,e4" {
		t.Errorf("Load() = %q, want e3,e4", got)
	}
	if !strings.Contains(logged.String(), "read-only file system") {
		t.Errorf("trim failure not logged: %q", logged.String())
	}
	data, _ := os.ReadFile(path)
	if n := strings.Count(string(data), "\n"); n != 5 {
		t.Errorf("file has %d lines, want the untouched 5", n)
	}
}

func TestFileStoreClosed(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "history"))
	s.Close()
	if err := s.Append(context.Background(), "x"); !errors.Is(err, ErrStoreClosed) {
		t.Errorf("Append() error = %v, want ErrStoreClosed", err)
	}
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	defer s.Close()

	for i := range 7 {
		if err := s.Append(ctx, fmt.Sprintf("line %d\nsecond", i)); err != nil {
			t.Fatal(err)
		}
	}
	got, err := s.Load(ctx, 3)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := []string{"line 4\nsecond", "line 5\nsecond", "line 6\nsecond"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("Load() = %q, want %q", got, want)
	}

	all, err := s.Load(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Errorf("table holds %d rows after trim, want 3", len(all))
	}

	s.Close()
	if _, err := s.Load(ctx, 3); !errors.Is(err, ErrStoreClosed) {
		t.Errorf("Load() after Close error = %v", err)
	}
}

func TestLogNavigation(t *testing.T) {
	l := NewLog(context.Background(), NewMemoryStore("git status", "ls", "git log"), 0, nil)

	steps := []struct {
		name   string
		up     bool
		prefix string
		want   string
		ok     bool
	}{
		{"newest", true, "", "git log", true},
		{"older", true, "", "ls", true},
		{"oldest", true, "", "git status", true},
		{"nothing older", true, "", "", false},
		{"newer", false, "", "ls", true},
		{"newest again", false, "", "git log", true},
		{"back to draft", false, "", "", false},
		{"prefix", true, "git", "git log", true},
		{"prefix skips", true, "git", "git status", true},
	}
	for _, s := range steps {
		var got string
		var ok bool
		if s.up {
			got, ok = l.Previous(s.prefix)
		} else {
			got, ok = l.Next(s.prefix)
		}
		if got != s.want || ok != s.ok {
			t.Errorf("%s: got (%q, %v), want (%q, %v)", s.name, got, ok, s.want, s.ok)
		}
	}
}

func TestLogEmptyHistory(t *testing.T) {
	l := NewLog(context.Background(), nil, 0, nil)
	if _, ok := l.Previous(""); ok {
		t.Error("Previous() on empty history should report false")
	}
	if l.Navigating() {
		t.Error("empty history should not be navigating")
	}
}

func TestLogAddPersists(t *testing.T) {
	store := NewMemoryStore()
	l := NewLog(context.Background(), store, 2, nil)

	l.Add("one")
	l.Add("one")
	l.Add("   ")
	l.Add("two")
	l.Add("three")

	if got := strings.Join(l.Entries(), ","); got != "two,three" {
		t.Errorf("Entries() = %q, want two,three", got)
	}
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}
	if got := len(store.Entries()); got != 3 {
		t.Errorf("store received %d entries, want 3", got)
	}
}

// slowStore delays the first append so a racing writer would reorder.
type slowStore struct {
	MemoryStore
	calls int
}

func (s *slowStore) Append(ctx context.Context, entry string) error {
	s.calls++
	if s.calls == 1 {
		time.Sleep(20 * time.Millisecond)
	}
	return s.MemoryStore.Append(ctx, entry)
}

func TestLogPersistsInOrder(t *testing.T) {
	store := &slowStore{}
	l := NewLog(context.Background(), store, 10, nil)
	for _, e := range []string{"first", "second", "third"} {
		l.Add(e)
	}
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(store.Entries(), ","); got != "first,second,third" {
		t.Errorf("store order = %q, want first,second,third", got)
	}
}

func TestLogAddAfterClose(t *testing.T) {
	store := NewMemoryStore()
	l := NewLog(context.Background(), store, 10, nil)
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}
	l.Add("late")
	if got := len(store.Entries()); got != 0 {
		t.Errorf("store received %d entries after close", got)
	}
	if got := strings.Join(l.Entries(), ","); got != "late" {
		t.Errorf("Entries() = %q, want late", got)
	}
}

type failingStore struct{ MemoryStore }

func (*failingStore) Load(context.Context, int) ([]string, error) {
	return nil, errors.New("permission denied")
}

func (*failingStore) Append(context.Context, string) error {
	return errors.New("permission denied")
}

func TestLogSurvivesStoreFailures(t *testing.T) {
	l := NewLog(context.Background(), &failingStore{}, 10, nil)
	l.Add("still works")
	if got, ok := l.Previous(""); !ok || got != "still works" {
		t.Errorf("Previous() = %q, %v", got, ok)
	}
	if err := l.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
