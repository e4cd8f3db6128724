package chat

import (
	"context"
	"fmt"
	"io"
	"strings"

	"docassist/internal/domain"
	"docassist/internal/observability"
)

// Prompter reads one line of user input. It returns ctx.Err() when ctx is
// cancelled while waiting and io.EOF when input is closed.
type Prompter interface {
	ReadLine(ctx context.Context, prompt string) (string, error)
}

type Saver interface {
	Save(name string, conv *domain.Conversation) (string, error)
}

// Loop drives one interactive conversation until the user types exit, input
// ends, or ctx is cancelled.
type Loop struct {
	chat  *Service
	store Saver
	in    Prompter
	out   io.Writer
}

func NewLoop(chat *Service, store Saver, in Prompter, out io.Writer) *Loop {
	return &Loop{
		chat:  chat,
		store: store,
		in:    in,
		out:   out,
	}
}

// Run returns nil on exit, ctx.Err() on interrupt and io.EOF when input
// ends. It never saves on its own.
func (l *Loop) Run(ctx context.Context, conv *domain.Conversation) error {
	fmt.Fprintln(l.out, "\n--- CHAT SESSION STARTED ---")
	fmt.Fprintln(l.out, "Type 'save' to save the chat.")
	fmt.Fprintln(l.out, "Type 'exit' to return to menu.")

	for {
		line, err := l.in.ReadLine(ctx, "\nYou: ")
		if err != nil {
			return err
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "":
			continue
		case "exit":
			return nil
		case "save":
			if err := l.save(ctx, conv); err != nil {
				return err
			}
			continue
		}

		fmt.Fprintln(l.out, "AI is thinking...")
		fmt.Fprint(l.out, "AI: ")
		_, err = l.chat.Reply(ctx, conv, line, l.out)
		fmt.Fprintln(l.out)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fmt.Fprintf(l.out, "Error communicating with the model: %v\n", err)
		}
	}
}

// save only returns an error when the name prompt was interrupted; store
// failures are reported and the session carries on.
func (l *Loop) save(ctx context.Context, conv *domain.Conversation) error {
	name, err := l.in.ReadLine(ctx, "Enter filename to save: ")
	if err != nil {
		return err
	}
	stored, err := l.store.Save(name, conv)
	if err != nil {
		observability.WithFields("session", name).Warn("save failed", "err", err)
		fmt.Fprintf(l.out, "Error saving chat: %v\n", err)
		return nil
	}
	fmt.Fprintf(l.out, "Chat saved successfully to %s\n", stored)
	return nil
}
