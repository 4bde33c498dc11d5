// Package security validates the TPM channel paths tpm2-dict-setup opens.
//
// A path is rejected when it is:
//   - empty or relative
//   - not in clean form (contains . or .. elements)
//   - missing, or not the expected file type (character device or socket)
package security
