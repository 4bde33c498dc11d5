// Package core implements the tpm2-dict-setup run.
//
// A run goes through these steps, stopping at the first failure:
//   - ParseParams: validate <max-tries> and <recovery-time>
//   - Module.OpenTransport / Module.NewSession: acquire the TPM
//   - Session.VariableProperties: read the PT_VAR property group
//   - Evaluate: refuse if lockoutAuth is set, keep the lockout recovery time
//   - Session.SetDictionaryAttackParameters: commit
//
// The session and the transport are closed on every path. Failures are
// *Error values whose Kind is one of ErrArgument, ErrTransport, ErrSession,
// ErrQuery, ErrAuthProtected or ErrCommit.
package core
