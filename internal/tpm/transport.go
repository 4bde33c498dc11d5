package tpm

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/go-tpm/tpm2/transport"

	"github.com/dirlock/tpm2-dict-setup/internal/security"
)

const (
	// tpm2-tss reads this; keep any tss tooling sharing our environment quiet
	logEnv   = "TSS2_LOG"
	logQuiet = "all+NONE"
)

var ErrTransportClosed = errors.New("transport closed")

// Transport owns the channel to the TPM
type Transport struct {
	tpm    transport.TPMCloser
	target Target
	closed bool
}

// Open parses tcti and opens the channel it names.
func Open(tcti string) (*Transport, error) {
	os.Setenv(logEnv, logQuiet)

	target, err := ParseTCTI(tcti)
	if err != nil {
		return nil, err
	}

	var t transport.TPMCloser
	switch target.Kind {
	case KindDevice:
		if err := security.ValidateDevice(target.Path); err != nil {
			return nil, fmt.Errorf("open %s: %w", target, err)
		}
		t, err = openDevice(target.Path)
	case KindSocket:
		if err := security.ValidateSocket(target.Path); err != nil {
			return nil, fmt.Errorf("open %s: %w", target, err)
		}
		t, err = dialSocket(target.Path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedTCTI, target)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", target, err)
	}

	return NewTransport(t, target), nil
}

// NewTransport wraps an already open go-tpm transport
func NewTransport(t transport.TPMCloser, target Target) *Transport {
	return &Transport{tpm: t, target: target}
}

// Target returns the channel this transport was opened on
func (t *Transport) Target() Target {
	return t.target
}

func (t *Transport) usable() bool {
	return t != nil && t.tpm != nil && !t.closed
}

// Close releases the channel. Closing a nil or closed Transport is a no-op.
func (t *Transport) Close() error {
	if !t.usable() {
		return nil
	}
	t.closed = true
	return t.tpm.Close()
}
