package core

import (
	"errors"
	"io"

	"github.com/dirlock/tpm2-dict-setup/internal/tpm"
)

// Transport is an open channel to the TPM
type Transport interface {
	io.Closer
}

// Session issues the two commands a run needs
type Session interface {
	VariableProperties() (tpm.CapabilitySet, error)
	SetDictionaryAttackParameters(maxTries, recoveryTime, lockoutRecovery uint32) error
	io.Closer
}

// Module opens transports and sessions
type Module interface {
	OpenTransport(tcti string) (Transport, error)
	NewSession(t Transport) (Session, error)
}

// DeviceModule is the Module backed by package tpm
type DeviceModule struct{}

func (DeviceModule) OpenTransport(tcti string) (Transport, error) {
	t, err := tpm.Open(tcti)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (DeviceModule) NewSession(t Transport) (Session, error) {
	dev, ok := t.(*tpm.Transport)
	if !ok {
		return nil, errors.New("transport was not opened by DeviceModule")
	}
	ctx, err := tpm.NewContext(dev)
	if err != nil {
		return nil, err
	}
	return ctx, nil
}
