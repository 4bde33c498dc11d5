package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/dirlock/tpm2-dict-setup/internal/core"
	"github.com/dirlock/tpm2-dict-setup/internal/tpm"
)

// Report prints the outcome of a run and returns its exit status. Success
// prints nothing. Failures print one "Error: ..." line, decoding the TPM
// response code when there is one.
func Report(w io.Writer, err error) int {
	if err == nil {
		return 0
	}

	msg := err.Error()
	var e *core.Error
	if errors.As(err, &e) && e.Code != 0 {
		msg = tpm.Describe(e.Code)
	}

	fmt.Fprintf(w, "Error: %s\n", msg)
	return 1
}
