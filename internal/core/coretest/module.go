// Package coretest provides an in-memory core.Module for tests.
package coretest

import (
	"errors"

	"github.com/dirlock/tpm2-dict-setup/internal/core"
	"github.com/dirlock/tpm2-dict-setup/internal/tpm"
)

// Commit records one SetDictionaryAttackParameters call
type Commit struct {
	MaxTries        uint32
	RecoveryTime    uint32
	LockoutRecovery uint32
}

// Module is a scripted TPM. Set the *Err fields to make a step fail.
type Module struct {
	Caps tpm.CapabilitySet

	OpenErr    error
	SessionErr error
	QueryErr   error
	CommitErr  error

	TransportCloseErr error
	SessionCloseErr   error

	TCTI    string
	Opened  int
	Started int
	Queries int
	Commits []Commit

	TransportCloses int
	SessionCloses   int
}

type transport struct {
	m      *Module
	closed bool
}

func (t *transport) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	t.m.TransportCloses++
	return t.m.TransportCloseErr
}

type session struct {
	m      *Module
	closed bool
}

func (s *session) VariableProperties() (tpm.CapabilitySet, error) {
	s.m.Queries++
	if s.m.QueryErr != nil {
		return nil, s.m.QueryErr
	}
	return append(tpm.CapabilitySet(nil), s.m.Caps...), nil
}

func (s *session) SetDictionaryAttackParameters(maxTries, recoveryTime, lockoutRecovery uint32) error {
	s.m.Commits = append(s.m.Commits, Commit{maxTries, recoveryTime, lockoutRecovery})
	return s.m.CommitErr
}

func (s *session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.m.SessionCloses++
	return s.m.SessionCloseErr
}

func (m *Module) OpenTransport(tcti string) (core.Transport, error) {
	m.TCTI = tcti
	m.Opened++
	if m.OpenErr != nil {
		return nil, m.OpenErr
	}
	return &transport{m: m}, nil
}

func (m *Module) NewSession(t core.Transport) (core.Session, error) {
	tr, ok := t.(*transport)
	if !ok || tr.closed {
		return nil, errors.New("unusable transport")
	}
	if m.SessionErr != nil {
		return nil, m.SessionErr
	}
	m.Started++
	return &session{m: m}, nil
}

// Contacted reports whether anything tried to reach the TPM
func (m *Module) Contacted() bool {
	return m.Opened > 0
}
