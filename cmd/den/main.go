// Package main is the entry point for the den CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/den/cmd/den/commands"
	"go.trai.ch/den/internal/app"
	"go.trai.ch/den/internal/core/domain"
	_ "go.trai.ch/den/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Context with signal handling: Ctrl-C cancels in-flight work through the
	// dispatcher rather than killing the process mid-write.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	application, _, err := graft.ExecuteFor[*app.App](ctx)
	if err != nil {
		// Logger is not available yet if initialization failed.
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}

	cli := commands.New(application)
	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, domain.ErrCancelled) || errors.Is(err, context.Canceled) {
			_, _ = os.Stderr.WriteString("operation was aborted\n")
			return 130
		}
		// zerr prints a report with stack trace and metadata when using %+v.
		_, _ = fmt.Fprintf(os.Stderr, "%+v\n", err)
		return 1
	}
	return 0
}
