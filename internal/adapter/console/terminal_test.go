package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

func TestTerminalReadLine(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader("first\r\nsecond\nlast"), &out)
	ctx := context.Background()

	for _, want := range []string{"first", "second", "last"} {
		got, err := term.ReadLine(ctx, "> ")
		if err != nil {
			t.Fatalf("ReadLine() error = %v", err)
		}
		if got != want {
			t.Fatalf("ReadLine() = %q, want %q", got, want)
		}
	}
	if _, err := term.ReadLine(ctx, "> "); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
	if out.String() != "> > > > " {
		t.Fatalf("prompts = %q", out.String())
	}
}

func TestTerminalCancelKeepsPendingLine(t *testing.T) {
	pr, pw := io.Pipe()
	term := NewTerminal(pr, io.Discard)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := term.ReadLine(ctx, ""); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
	if !term.busy() {
		t.Fatal("abandoned read should stay pending")
	}

	go func() {
		_, _ = pw.Write([]byte("late line\n"))
	}()
	got, err := term.ReadLine(context.Background(), "")
	if err != nil || got != "late line" {
		t.Fatalf("ReadLine() = %q, %v", got, err)
	}
	if term.busy() {
		t.Fatal("read should be complete")
	}
}
