package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

type lineResult struct {
	line string
	err  error
}

// Terminal reads input one line per request. The reader goroutine only
// touches the input while a request is outstanding, so other consumers of
// the same input (the file picker) are safe between prompts. A prompt that
// is abandoned through ctx keeps its request open and the next ReadLine
// picks up that line.
type Terminal struct {
	out      io.Writer
	requests chan struct{}
	lines    chan lineResult
	pending  bool
}

func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	t := &Terminal{
		out:      out,
		requests: make(chan struct{}),
		lines:    make(chan lineResult),
	}
	go t.run(bufio.NewReader(in))
	return t
}

func (t *Terminal) run(r *bufio.Reader) {
	for range t.requests {
		line, err := r.ReadString('\n')
		if err != nil && line != "" {
			err = nil
		}
		t.lines <- lineResult{line: strings.TrimRight(line, "\r\n"), err: err}
	}
}

// ReadLine prints prompt and waits for one line. It returns ctx.Err() if ctx
// ends first and io.EOF once input is exhausted.
func (t *Terminal) ReadLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(t.out, prompt)
	if !t.pending {
		select {
		case t.requests <- struct{}{}:
			t.pending = true
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	select {
	case res := <-t.lines:
		t.pending = false
		return res.line, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// busy reports whether a read is still waiting on the input.
func (t *Terminal) busy() bool {
	return t.pending
}

func (t *Terminal) Write(p []byte) (int, error) {
	return t.out.Write(p)
}
