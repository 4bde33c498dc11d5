package core

import (
	"github.com/dirlock/tpm2-dict-setup/internal/tpm"
)

// DefaultLockoutRecovery is used when the TPM does not report
// TPM_PT_LOCKOUT_RECOVERY
const DefaultLockoutRecovery uint32 = 1000

// State is what the TPM's variable properties say about the lockout policy
type State struct {
	AuthSet         bool
	LockoutRecovery uint32
}

// Evaluate scans caps for lockoutAuthSet and the current lockout recovery
// time. It fails with ErrAuthProtected when lockoutAuthSet is set in the
// TPM_PT_PERMANENT value, since changing the parameters would then need the
// lockout password.
func Evaluate(caps tpm.CapabilitySet) (State, error) {
	state := State{LockoutRecovery: DefaultLockoutRecovery}

	for _, p := range caps {
		switch p.Tag {
		case tpm.PTPermanent:
			if p.Value&tpm.PermanentLockoutAuthSet != 0 {
				state.AuthSet = true
				return state, &Error{Kind: ErrAuthProtected, Code: tpm.RCAuthMissing}
			}
		case tpm.PTLockoutRecovery:
			state.LockoutRecovery = p.Value
		}
	}

	return state, nil
}
