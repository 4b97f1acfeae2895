package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sokinpui/dogs/internal/app"
	"github.com/sokinpui/dogs/internal/cli"
	"github.com/sokinpui/dogs/internal/ui"
)

func main() {
	cfg, err := cli.ParseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, cli.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if cfg.Quiet {
		ui.SetOutput(io.Discard)
	}

	application, err := app.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	summary, err := application.Execute()
	if err != nil {
		var detailedErr *app.DetailedError
		if errors.As(err, &detailedErr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n\n%s\n", detailedErr.Err, detailedErr.Stack)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}

	ui.PrintSummary(summary)
}
