package console

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"docassist/internal/adapter/memory"
	"docassist/internal/config"
	"docassist/internal/domain"
	"docassist/internal/usecase/chat"
	"docassist/internal/usecase/extract"
	"docassist/internal/usecase/session"
)

type oneShotStream struct {
	text string
	done bool
}

func (s *oneShotStream) Recv() (string, error) {
	if s.done {
		return "", io.EOF
	}
	s.done = true
	return s.text, nil
}

func (s *oneShotStream) Close() error { return nil }

type recordingClient struct {
	requests []chat.CompletionRequest
}

func (c *recordingClient) Stream(ctx context.Context, req chat.CompletionRequest) (chat.Stream, error) {
	c.requests = append(c.requests, req)
	return &oneShotStream{text: "The total is $10."}, nil
}

// contentRecognizer treats the file bytes as the recognized text.
type contentRecognizer struct {
	langs []string
}

func (r *contentRecognizer) Recognize(ctx context.Context, png []byte, lang string) (string, error) {
	r.langs = append(r.langs, lang)
	return string(png), nil
}

type readLoader struct{}

func (readLoader) Load(path string) ([]byte, error) { return os.ReadFile(path) }

type pagesRasterizer struct{}

func (pagesRasterizer) Rasterize(ctx context.Context, path string) ([][]byte, error) {
	return [][]byte{[]byte("page one"), []byte("page two")}, nil
}

type stubPicker struct {
	paths []string
	kinds []domain.SourceKind
}

func (p *stubPicker) Pick(kind domain.SourceKind) ([]string, error) {
	p.kinds = append(p.kinds, kind)
	return p.paths, nil
}

type harness struct {
	shell  *Shell
	out    *bytes.Buffer
	client *recordingClient
	ocr    *contentRecognizer
	store  *memory.Store
	picker *stubPicker
}

func newHarness(t *testing.T, input string) *harness {
	t.Helper()
	out := &bytes.Buffer{}
	h := &harness{
		out:    out,
		client: &recordingClient{},
		ocr:    &contentRecognizer{},
		store:  memory.NewStore(),
		picker: &stubPicker{},
	}
	cfg := config.Default()
	term := NewTerminal(strings.NewReader(input), out)
	ex := extract.NewService(h.ocr, pagesRasterizer{}, readLoader{})
	sessions := session.NewService(ex, h.store, cfg)
	loop := chat.NewLoop(chat.NewService(h.client, cfg), h.store, term, out)
	h.shell = NewShell(cfg, term, out, sessions, loop, h.picker)
	return h
}

func writeDoc(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestShellNewSessionScenario(t *testing.T) {
	doc := writeDoc(t, "invoice.png", "Invoice #42\nTotal: $10")
	h := newHarness(t, strings.Join([]string{"1", "1", " " + doc + " ", "2", "What is the total?", "exit", "3"}, "\n")+"\n")

	if err := h.shell.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(h.client.requests) != 1 {
		t.Fatalf("expected one model call, got %d", len(h.client.requests))
	}
	msgs := h.client.requests[0].Messages
	if len(msgs) != 2 || msgs[0].Role != domain.RoleSystem || msgs[1].Role != domain.RoleUser {
		t.Fatalf("unexpected messages sent: %+v", msgs)
	}
	if !strings.Contains(msgs[0].Content, "--- CONTENT FROM invoice.png ---\nInvoice #42\nTotal: $10") {
		t.Fatalf("system prompt = %q", msgs[0].Content)
	}
	if msgs[1].Content != "What is the total?" {
		t.Fatalf("user message = %q", msgs[1].Content)
	}
	if len(h.ocr.langs) != 1 || h.ocr.langs[0] != "ita" {
		t.Fatalf("recognizer languages = %v", h.ocr.langs)
	}
	out := h.out.String()
	for _, want := range []string{"Text extracted successfully.", "AI: The total is $10.", "Exiting..."} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestShellNothingExtractedReturnsToMenu(t *testing.T) {
	h := newHarness(t, "1\n1\n/definitely/missing.png\n\n3\n")

	if err := h.shell.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	out := h.out.String()
	if !strings.Contains(out, "File not found: /definitely/missing.png") {
		t.Errorf("missing diagnostic in %q", out)
	}
	if !strings.Contains(out, "No text extracted. Aborting session.") {
		t.Errorf("missing abort message in %q", out)
	}
	if strings.Count(out, "=== AI DOCUMENT ASSISTANT ===") != 2 {
		t.Errorf("menu should be shown again after abort")
	}
	if len(h.client.requests) != 0 {
		t.Errorf("no chat should have started")
	}
}

func TestShellUsesPickerForPDF(t *testing.T) {
	doc := writeDoc(t, "scan.pdf", "%PDF")
	h := newHarness(t, "1\n2\n\n\nexit\n3\n")
	h.picker.paths = []string{doc}

	if err := h.shell.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(h.picker.kinds) != 1 || h.picker.kinds[0] != domain.SourcePDF {
		t.Fatalf("picker kinds = %v", h.picker.kinds)
	}
	out := h.out.String()
	if !strings.Contains(out, "Processed: "+doc+" (page 2)") {
		t.Fatalf("missing page report in %q", out)
	}
	if len(h.ocr.langs) != 2 || h.ocr.langs[0] != "eng" {
		t.Fatalf("expected two english page recognitions, got %v", h.ocr.langs)
	}
}

func TestShellLoadSession(t *testing.T) {
	h := newHarness(t, "2\n1\nhello again\nexit\n3\n")
	conv := domain.NewConversation("saved ctx")
	_ = conv.Append(domain.Message{Role: domain.RoleUser, Content: "old question"})
	if _, err := h.store.Save("notes", conv); err != nil {
		t.Fatal(err)
	}

	if err := h.shell.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(h.out.String(), "1. notes.json") {
		t.Fatalf("saved session not listed: %q", h.out.String())
	}
	if len(h.client.requests) != 1 || len(h.client.requests[0].Messages) != 3 {
		t.Fatalf("resumed chat should send 3 messages, got %+v", h.client.requests)
	}
}

func TestShellMenuErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"invalid menu choice", "9\n3\n", "Invalid choice. Try again."},
		{"no saved chats", "2\n3\n", "No saved chats found."},
		{"invalid kind", "1\nword\n3\n", "Invalid choice."},
		{"no files", "1\n1\n\n3\n", "No files selected."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, tt.input)
			if err := h.shell.Run(context.Background()); err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(h.out.String(), tt.want) {
				t.Fatalf("output %q missing %q", h.out.String(), tt.want)
			}
		})
	}
}

func TestShellLoadSelectionErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2\n7\n3\n", "Invalid selection."},
		{"2\nabc\n3\n", "Invalid input."},
	}
	for _, tt := range tests {
		h := newHarness(t, tt.input)
		if _, err := h.store.Save("only", domain.NewConversation("x")); err != nil {
			t.Fatal(err)
		}
		if err := h.shell.Run(context.Background()); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(h.out.String(), tt.want) {
			t.Errorf("input %q: output missing %q", tt.input, tt.want)
		}
	}
}

func TestShellExitsOnEOFAndInterrupt(t *testing.T) {
	h := newHarness(t, "")
	if err := h.shell.Run(context.Background()); err != nil {
		t.Fatalf("Run() on EOF = %v", err)
	}

	h = newHarness(t, "1\n")
	h.shell.notify = func(ctx context.Context) (context.Context, context.CancelFunc) {
		ctx, cancel := context.WithCancel(ctx)
		cancel()
		return ctx, cancel
	}
	if err := h.shell.Run(context.Background()); err != nil {
		t.Fatalf("Run() on interrupt = %v", err)
	}
	if !strings.Contains(h.out.String(), "Exiting...") {
		t.Fatalf("expected exit message, got %q", h.out.String())
	}
}

func TestResumeSessionMissing(t *testing.T) {
	h := newHarness(t, "")
	if err := h.shell.ResumeSession(context.Background(), "ghost"); err == nil {
		t.Fatal("expected error for missing session")
	}
	if !strings.Contains(h.out.String(), "Error loading chat") {
		t.Fatalf("missing error output: %q", h.out.String())
	}
}
