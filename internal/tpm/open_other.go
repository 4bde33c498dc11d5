//go:build !linux

package tpm

import (
	"errors"

	"github.com/google/go-tpm/tpm2/transport"
)

func openDevice(string) (transport.TPMCloser, error) {
	return nil, errors.New("TPM character devices are only supported on Linux")
}
