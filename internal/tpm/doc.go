// Package tpm talks to a TPM 2.0 device for tpm2-dict-setup.
//
// Resources are layered:
//   - Transport: the channel to the TPM (character device or swtpm socket),
//     selected with a tpm2-tss style TCTI string
//   - Context: a command context that takes over a Transport; closing the
//     Context closes the Transport
//
// Commands issued through a Context:
//   - VariableProperties: TPM2_GetCapability for the PT_VAR property group
//   - SetDictionaryAttackParameters: TPM2_DictionaryAttackParameters on the
//     lockout hierarchy, authorized with an empty password
//
// Both Transport.Close and Context.Close are idempotent and accept a nil
// receiver, so callers can defer both right after acquisition.
package tpm
