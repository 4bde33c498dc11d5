package tpm

import (
	"errors"
	"fmt"

	"github.com/google/go-tpm/tpm2"
)

// RCAuthMissing is TPM_RC_AUTH_MISSING
const RCAuthMissing uint32 = 0x125

// ResponseCode extracts the TPM response code carried by err, if any
func ResponseCode(err error) (uint32, bool) {
	var rc tpm2.TPMRC
	if errors.As(err, &rc) && rc != tpm2.TPMRCSuccess {
		return uint32(rc), true
	}
	return 0, false
}

// Describe decodes a TPM response code into a readable message
func Describe(code uint32) string {
	if code == 0 {
		return "success"
	}
	msg := tpm2.TPMRC(code).Error()
	if msg == "" {
		return fmt.Sprintf("TPM error 0x%x", code)
	}
	return msg
}
