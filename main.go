package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dirlock/tpm2-dict-setup/cmd"
	"github.com/dirlock/tpm2-dict-setup/internal/config"
	"github.com/dirlock/tpm2-dict-setup/internal/core"
	"github.com/dirlock/tpm2-dict-setup/internal/tpm"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, core.DeviceModule{}))
}

func run(args []string, stdout, stderr io.Writer, module core.Module) int {
	fs := flag.NewFlagSet("tpm2-dict-setup", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dryRun := fs.Bool("n", false, "Show the change without applying it")
	verbose := fs.Bool("v", false, "Print progress to stderr")
	fs.Usage = func() { printUsage(fs) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 1
	}

	color := false
	if f, ok := stdout.(*os.File); ok {
		color = cmd.IsTerminal(f)
	}

	return cmd.DictSetup(fs.Args(), cmd.Options{
		Module:  module,
		Config:  cfg,
		DryRun:  *dryRun,
		Verbose: *verbose,
		Color:   color,
		Stdout:  stdout,
		Stderr:  stderr,
	})
}

func printUsage(fs *flag.FlagSet) {
	w := fs.Output()
	fmt.Fprintln(w, "tpm2-dict-setup - Change the TPM dictionary attack lockout parameters")
	fmt.Fprintln(w)
	fmt.Fprintln(w, cmd.UsageLine)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Sets the number of failed authorizations allowed before lockout")
	fmt.Fprintln(w, "(max-tries) and the seconds before one failure is forgotten")
	fmt.Fprintln(w, "(recovery-time). The lockout recovery time set on the TPM is kept.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "The lockout hierarchy must not have a password. This tool is meant")
	fmt.Fprintln(w, "for test machines and does not protect the lockout hierarchy.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintf(w, "  %-6s TPM to use (default %q)\n", config.TCTIEnv, tpm.DefaultTCTI)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  tpm2-dict-setup 32 600                       # 32 tries, forget one every 10 minutes")
	fmt.Fprintln(w, "  tpm2-dict-setup -n 32 600                    # Show the change only")
	fmt.Fprintln(w, "  TCTI=device:/dev/tpmrm0 tpm2-dict-setup 32 600")
}
