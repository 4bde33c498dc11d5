package core

import (
	"fmt"
	"io"
	"os"

	"github.com/dirlock/tpm2-dict-setup/internal/tpm"
)

// Setup changes the TPM dictionary attack parameters
type Setup struct {
	Module Module
	TCTI   string
	// DryRun stops after the policy check
	DryRun bool
	// Log receives progress lines; nil discards them
	Log io.Writer
	// Warn receives warnings that do not change the outcome; nil means
	// os.Stderr
	Warn io.Writer
}

// Plan describes a run: what the TPM reported and what was (or would be) set
type Plan struct {
	Current   Parameters
	Planned   Parameters
	Committed bool
}

// Run opens the TPM, reads its variable properties, checks that lockoutAuth
// is not set and commits p together with the TPM's current lockout recovery
// time. The session and the transport are closed before Run returns,
// whatever the outcome.
func (s *Setup) Run(p Params) (*Plan, error) {
	s.logf("opening %s", s.TCTI)
	t, err := s.Module.OpenTransport(s.TCTI)
	if err != nil {
		return nil, fail(ErrTransport, err)
	}
	defer s.release("transport", t)

	session, err := s.Module.NewSession(t)
	if err != nil {
		return nil, fail(ErrSession, err)
	}
	defer s.release("session", session)

	caps, err := session.VariableProperties()
	if err != nil {
		return nil, fail(ErrQuery, err)
	}
	s.logf("read %d variable properties", len(caps))

	state, err := Evaluate(caps)
	if err != nil {
		return nil, err
	}

	plan := &Plan{
		Current: CurrentParameters(caps),
		Planned: Parameters{
			MaxTries:        p.MaxTries,
			RecoveryTime:    p.RecoveryTime,
			LockoutRecovery: state.LockoutRecovery,
		},
	}
	if s.DryRun {
		s.logf("dry run, not committing")
		return plan, nil
	}

	s.logf("setting max-tries=%d recovery-time=%d lockout-recovery=%d",
		plan.Planned.MaxTries, plan.Planned.RecoveryTime, plan.Planned.LockoutRecovery)
	err = session.SetDictionaryAttackParameters(
		plan.Planned.MaxTries, plan.Planned.RecoveryTime, plan.Planned.LockoutRecovery)
	if err != nil {
		return nil, fail(ErrCommit, err)
	}
	plan.Committed = true

	return plan, nil
}

func (s *Setup) release(name string, c io.Closer) {
	if err := c.Close(); err != nil {
		w := s.Warn
		if w == nil {
			w = os.Stderr
		}
		fmt.Fprintf(w, "warning: closing %s: %v\n", name, err)
	}
}

func (s *Setup) logf(format string, args ...any) {
	if s.Log == nil {
		return
	}
	fmt.Fprintf(s.Log, format+"\n", args...)
}

// CurrentParameters picks the dictionary attack parameters out of caps.
// Missing properties read as zero.
func CurrentParameters(caps tpm.CapabilitySet) Parameters {
	var p Parameters
	p.MaxTries, _ = caps.Lookup(tpm.PTMaxAuthFail)
	p.RecoveryTime, _ = caps.Lookup(tpm.PTLockoutInterval)
	p.LockoutRecovery, _ = caps.Lookup(tpm.PTLockoutRecovery)
	return p
}
