package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/christianwhocodes/create-olyv-app/internal/cli"
	"github.com/christianwhocodes/create-olyv-app/internal/output"
)

// version, commit, and date are set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := cli.Execute(ctx, version, commit, date)
	return output.GetExitCode(err)
}
