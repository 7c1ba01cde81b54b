package key

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

func TestSliceSource(t *testing.T) {
	ctx := context.Background()
	src := NewSliceSource(Type("ab")...)
	for _, want := range "ab" {
		p, err := src.Next(ctx)
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		if p.Rune != want {
			t.Errorf("Next() = %v, want %c", p, want)
		}
	}
	if _, err := src.Next(ctx); !errors.Is(err, io.EOF) {
		t.Errorf("exhausted Next() error = %v, want io.EOF", err)
	}
}

func TestReaderSourceSingleKeys(t *testing.T) {
	src := NewReaderSource(strings.NewReader("ab"))
	ctx := context.Background()

	var got []Press
	for {
		p, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		got = append(got, p)
	}
	if len(got) != 2 || got[0].Rune != 'a' || got[1].Rune != 'b' {
		t.Errorf("presses = %v, want a b", got)
	}
}

func TestReaderSourceBatchesPaste(t *testing.T) {
	src := NewReaderSource(strings.NewReader("hello\rworld"))
	p, err := src.Next(context.Background())
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if p.Key != KeyPaste || p.Text != "hello\nworld" {
		t.Errorf("Next() = %v, want one paste", p)
	}
}

func TestReaderSourceKeepsControlKeys(t *testing.T) {
	// A read containing a control key is typing, not a paste.
	src := NewReaderSource(strings.NewReader("abcd\x1b[D"))
	p, err := src.Next(context.Background())
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if p.Key != KeyRune || p.Rune != 'a' {
		t.Errorf("Next() = %v, want a", p)
	}
}

func TestReaderSourceResize(t *testing.T) {
	resize := make(chan struct{}, 1)
	pr, pw := io.Pipe()
	defer pw.Close()

	src := NewReaderSource(pr, WithResize(resize))
	resize <- struct{}{}
	p, err := src.Next(context.Background())
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if p.Key != KeyResize {
		t.Errorf("Next() = %v, want Resize", p)
	}
}

func TestReaderSourceContextCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	src := NewReaderSource(pr)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := src.Next(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Next() error = %v, want deadline exceeded", err)
	}
}

func TestBatch(t *testing.T) {
	tests := []struct {
		name  string
		input []Press
		want  int
	}{
		{"short typing", Type("abc"), 3},
		{"paste threshold", Type("abcd"), 1},
		{"with newline", Type("ab\ncd"), 1},
		{"single paste", []Press{NewPaste("x")}, 1},
		{"modified key", append(Type("abcd"), NewRune('c', ModCtrl)), 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := batch(tt.input); len(got) != tt.want {
				t.Errorf("batch() returned %d presses, want %d", len(got), tt.want)
			}
		})
	}
}
