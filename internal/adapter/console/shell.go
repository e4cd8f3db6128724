package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"docassist/internal/config"
	"docassist/internal/domain"
	"docassist/internal/usecase/chat"
	"docassist/internal/usecase/extract"
	"docassist/internal/usecase/session"
)

// Picker lets the user browse for input files of the given kind. An empty
// result with a nil error means the user backed out.
type Picker interface {
	Pick(kind domain.SourceKind) ([]string, error)
}

// Shell is the text menu in front of the session controller.
type Shell struct {
	cfg      config.Config
	term     *Terminal
	out      io.Writer
	sessions *session.Service
	loop     *chat.Loop
	picker   Picker
	styles   styles
	notify   func(context.Context) (context.Context, context.CancelFunc)
}

func NewShell(cfg config.Config, term *Terminal, out io.Writer, sessions *session.Service, loop *chat.Loop, picker Picker) *Shell {
	return &Shell{
		cfg:      cfg,
		term:     term,
		out:      out,
		sessions: sessions,
		loop:     loop,
		picker:   picker,
		styles:   newStyles(out),
		notify: func(ctx context.Context) (context.Context, context.CancelFunc) {
			return signal.NotifyContext(ctx, os.Interrupt)
		},
	}
}

// Run shows the menu until the user exits, input ends or an interrupt
// arrives while the menu is waiting. Interrupts inside a session only end
// that session.
func (s *Shell) Run(ctx context.Context) error {
	for {
		s.header()

		mctx, stop := s.notify(ctx)
		choice, err := s.term.ReadLine(mctx, "Select an option: ")
		stop()
		if err != nil {
			fmt.Fprintln(s.out, "\nExiting...")
			return nil
		}

		switch strings.TrimSpace(choice) {
		case "1":
			s.NewSession(ctx)
		case "2":
			s.LoadSession(ctx)
		case "3":
			fmt.Fprintln(s.out, "Exiting...")
			return nil
		default:
			s.errorf("Invalid choice. Try again.")
		}
	}
}

func (s *Shell) header() {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, s.styles.title.Render("=== AI DOCUMENT ASSISTANT ==="))
	fmt.Fprintln(s.out, s.styles.dim.Render("Model: "+s.cfg.Model))
	fmt.Fprintln(s.out, "1. New Session (Scan Documents)")
	fmt.Fprintln(s.out, "2. Load Saved Session")
	fmt.Fprintln(s.out, "3. Exit")
}

// NewSession asks for documents and a language, then chats over them.
func (s *Shell) NewSession(ctx context.Context) {
	ctx, stop := s.notify(ctx)
	defer stop()

	kindIn, err := s.term.ReadLine(ctx, "Source type (1. Images, 2. PDF): ")
	if err != nil {
		return
	}
	kind, ok := domain.ParseSourceKind(kindIn)
	if !ok {
		s.errorf("Invalid choice.")
		return
	}

	fmt.Fprintln(s.out, "Enter paths separated by comma (e.g., img1.png, /path/to/img2.jpg),")
	raw, err := s.term.ReadLine(ctx, "or leave empty to browse: ")
	if err != nil {
		return
	}
	paths := session.ParsePaths(raw)
	if len(paths) == 0 && s.picker != nil {
		paths, err = s.picker.Pick(kind)
		if err != nil {
			s.errorf("File picker failed: %v", err)
			return
		}
	}
	if len(paths) == 0 {
		s.errorf("No files selected.")
		return
	}

	fmt.Fprintln(s.out, "Recognition language:")
	for i, l := range domain.Languages {
		fmt.Fprintf(s.out, "%d. %s\n", i+1, l.Label)
	}
	langIn, err := s.term.ReadLine(ctx, "Select a language [1]: ")
	if err != nil {
		return
	}

	s.start(ctx, session.StartInput{
		Paths:    paths,
		Language: domain.LookupLanguage(langIn),
		Kind:     kind,
	})
}

// StartSession runs extraction for already chosen files and enters the chat.
func (s *Shell) StartSession(ctx context.Context, in session.StartInput) error {
	ctx, stop := s.notify(ctx)
	defer stop()
	if !s.start(ctx, in) {
		return session.ErrNothingExtracted
	}
	return nil
}

func (s *Shell) start(ctx context.Context, in session.StartInput) bool {
	fmt.Fprintf(s.out, "Starting OCR processing (%s)...\n", in.Language.Label)
	conv, report, err := s.sessions.Start(ctx, in)
	s.printReport(report)
	if err != nil {
		if errors.Is(err, session.ErrNothingExtracted) {
			s.errorf("No text extracted. Aborting session.")
		} else {
			s.errorf("Could not start session: %v", err)
		}
		return false
	}

	fmt.Fprintln(s.out, s.styles.ok.Render("Text extracted successfully."))
	s.chat(ctx, conv)
	return true
}

func (s *Shell) printReport(report extract.Report) {
	for _, it := range report.Items {
		name := it.Path
		if it.Page > 0 {
			name = fmt.Sprintf("%s (page %d)", it.Path, it.Page)
		}
		switch {
		case errors.Is(it.Err, extract.ErrFileNotFound):
			s.errorf("File not found: %s", it.Path)
		case it.Err != nil:
			s.errorf("Error processing %s: %v", name, it.Err)
		default:
			fmt.Fprintf(s.out, "Processed: %s\n", name)
		}
	}
}

// LoadSession lists saved sessions and resumes the chosen one.
func (s *Shell) LoadSession(ctx context.Context) {
	ctx, stop := s.notify(ctx)
	defer stop()

	names, err := s.sessions.Saved("")
	if err != nil {
		s.errorf("Error listing chats: %v", err)
		return
	}
	if len(names) == 0 {
		fmt.Fprintln(s.out, "No saved chats found.")
		return
	}

	fmt.Fprintln(s.out, "Available chats:")
	for i, n := range names {
		fmt.Fprintf(s.out, "%d. %s\n", i+1, n)
	}
	in, err := s.term.ReadLine(ctx, "Select a number: ")
	if err != nil {
		return
	}
	choice, err := strconv.Atoi(strings.TrimSpace(in))
	if err != nil {
		s.errorf("Invalid input.")
		return
	}
	if choice < 1 || choice > len(names) {
		s.errorf("Invalid selection.")
		return
	}
	s.resume(ctx, names[choice-1])
}

// ResumeSession loads a saved session by name and enters the chat.
func (s *Shell) ResumeSession(ctx context.Context, name string) error {
	ctx, stop := s.notify(ctx)
	defer stop()
	if !s.resume(ctx, name) {
		return fmt.Errorf("could not load %s", name)
	}
	return nil
}

func (s *Shell) resume(ctx context.Context, name string) bool {
	conv, err := s.sessions.Resume(name)
	if err != nil {
		s.errorf("Error loading chat: %v", err)
		return false
	}
	fmt.Fprintf(s.out, "Loaded %s (%d messages).\n", filepath.Base(name), conv.Len())
	s.chat(ctx, conv)
	return true
}

func (s *Shell) chat(ctx context.Context, conv *domain.Conversation) {
	err := s.loop.Run(ctx, conv)
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(s.out, "\nChat interrupted, returning to menu.")
	}
}

func (s *Shell) errorf(format string, args ...any) {
	fmt.Fprintln(s.out, s.styles.errText.Render(fmt.Sprintf(format, args...)))
}
