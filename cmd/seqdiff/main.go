// Command seqdiff compares two nucleotide reads and reports where they
// disagree.
//
// Usage:
//
//	seqdiff [command] [options]
//
// Commands:
//
//	diff        Align two sequences and report offsets, errors and diffs
//	score       Print the minimum alignment penalty only
//	revcomp     Reverse complement every record of a file
//	version     Show version information
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
