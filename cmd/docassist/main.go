package main

import (
	"context"
	"os/signal"
	"syscall"

	"docassist/internal/cli"
)

// SIGINT is left to the shell: it ends a chat or, at the menu, the program.
func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer cancel()

	cli.Execute(ctx)
}
