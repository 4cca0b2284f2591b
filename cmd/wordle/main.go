// Command wordle plays Wordle in the terminal and serves the HTTP backend.
//
//	wordle               play a round (same as "wordle play")
//	wordle play --daily  start with today's daily word
//	wordle stats         print saved statistics
//	wordle stats reset   zero saved statistics
//	wordle serve         run the HTTP API
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "wordle:", err)
		stop()
		os.Exit(1)
	}
}
