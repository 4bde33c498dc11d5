package core

import (
	"errors"

	"github.com/dirlock/tpm2-dict-setup/internal/tpm"
)

var (
	ErrArgument      = errors.New("invalid argument")
	ErrTransport     = errors.New("cannot open TPM transport")
	ErrSession       = errors.New("cannot initialize TPM context")
	ErrQuery         = errors.New("cannot read TPM properties")
	ErrAuthProtected = errors.New("dictionary attack lockout is protected by lockoutAuth")
	ErrCommit        = errors.New("cannot set dictionary attack parameters")
)

// Error is a failure of one step of a run. Kind is one of the sentinels
// above; Code is the TPM response code, or zero when there is none.
type Error struct {
	Kind error
	Code uint32
	Err  error
}

func fail(kind error, err error) *Error {
	code, _ := tpm.ResponseCode(err)
	return &Error{Kind: kind, Code: code, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
