// Package main provides the entry point for the councilvotes CLI.
package main

import (
	"context"
	"os"

	"github.com/agentstation/councilvotes/cmd/councilvotes/app"
)

// Version information set with -ldflags at release build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	application, err := app.New(version, commit, date, builtBy)
	if err != nil {
		app.ExitOnError(err)
	}

	ctx, cancel := app.ContextWithSignals(context.Background())
	defer cancel()

	if err := application.Execute(ctx, os.Args[1:]); err != nil {
		cancel()
		app.ExitOnError(err)
	}
}
