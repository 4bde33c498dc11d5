package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/dirlock/tpm2-dict-setup/internal/config"
	"github.com/dirlock/tpm2-dict-setup/internal/core"
)

const UsageLine = "Usage: tpm2-dict-setup [-n] [-v] <max-tries> <recovery-time>"

// Options configure one DictSetup run
type Options struct {
	Module  core.Module
	Config  config.Config
	DryRun  bool
	Verbose bool
	// Color enables ANSI colours in the dry run preview
	Color  bool
	Stdout io.Writer
	Stderr io.Writer
}

// DictSetup validates args, applies them to the TPM and returns the
// process exit status
func DictSetup(args []string, opts Options) int {
	params, err := core.ParseParams(args)
	if err != nil {
		return handleArgumentError(opts.Stderr, args, err)
	}

	setup := &core.Setup{
		Module: opts.Module,
		TCTI:   opts.Config.TCTI,
		DryRun: opts.DryRun,
		Warn:   opts.Stderr,
	}
	if opts.Verbose {
		setup.Log = opts.Stderr
	}

	plan, err := setup.Run(params)
	if err != nil {
		if opts.Verbose {
			fmt.Fprintf(opts.Stderr, "%s\n", err)
		}
		return Report(opts.Stdout, err)
	}

	if opts.DryRun {
		fmt.Fprint(opts.Stdout, core.RenderDiff(plan.Current, plan.Planned, opts.Color))
	}
	return Report(opts.Stdout, nil)
}

func handleArgumentError(w io.Writer, args []string, err error) int {
	if len(args) != 2 {
		fmt.Fprintln(w, UsageLine)
		return 1
	}

	var e *core.Error
	if errors.As(err, &e) && e.Err != nil {
		err = e.Err
	}
	fmt.Fprintf(w, "Error: %s\n", err)
	return 1
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
