package terminal

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestCRLFWriter(t *testing.T) {
	tests := []struct {
		name   string
		writes []string
		want   string
	}{
		{"bare newline", []string{"a\nb"}, "a\r\nb"},
		{"already crlf", []string{"a\r\nb"}, "a\r\nb"},
		{"several", []string{"\n\n"}, "\r\n\r\n"},
		{"cr at end of previous write", []string{"a\r", "\nb"}, "a\r\nb"},
		{"newline at start of write", []string{"a", "\n"}, "a\r\n"},
		{"no newline", []string{"\x1b[2A"}, "\x1b[2A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b bytes.Buffer
			w := &crlfWriter{w: &b}
			for _, s := range tt.writes {
				n, err := w.Write([]byte(s))
				if err != nil || n != len(s) {
					t.Fatalf("Write(%q) = %d, %v", s, n, err)
				}
			}
			if b.String() != tt.want {
				t.Errorf("wrote %q, want %q", b.String(), tt.want)
			}
		})
	}
}

func TestOpenRejectsNonTerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "input"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := Open(f, f); !errors.Is(err, ErrNotTerminal) {
		t.Errorf("Open() error = %v, want ErrNotTerminal", err)
	}
}

func TestNotifyDoesNotBlock(t *testing.T) {
	ch := make(chan struct{}, 1)
	notify(ch)
	notify(ch)
	if len(ch) != 1 {
		t.Errorf("pending = %d, want 1", len(ch))
	}
}
