// pageorder checks page updates against ordering rules and sums the middle
// page of every update that satisfies them.
//
// Installation:
//
//	go build -o pageorder ./cmd/pageorder
//
// Usage:
//
//	pageorder check puzzle.txt
//	pageorder check --explain --workers 4 puzzle.yaml
//	pageorder validate puzzle.cue
//	pageorder record --db runs.db puzzle.txt
//	pageorder history --db runs.db
//	pageorder test ./testdata/scenarios
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/roach88/pageorder/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(cli.GetExitCode(err))
	}
}
