package tpm

import (
	"encoding/binary"
	"fmt"

	"github.com/google/go-tpm/tpm2"
)

const (
	tagSessions                  = 0x8002
	ccDictionaryAttackParameters = 0x0000013A
	handleLockout                = 0x4000000A
	handlePassword               = 0x40000009
)

// SetDictionaryAttackParameters runs TPM2_DictionaryAttackParameters on the
// lockout hierarchy with an empty password. It fails with
// TPM_RC_BAD_AUTH or TPM_RC_LOCKOUT when lockoutAuth has been set.
//
// This is only meant for test machines: it leaves the lockout hierarchy
// unprotected.
func (c *Context) SetDictionaryAttackParameters(maxTries, recoveryTime, lockoutRecovery uint32) error {
	t, err := c.tpm()
	if err != nil {
		return err
	}

	rsp, err := t.Send(dictionaryAttackParametersCommand(maxTries, recoveryTime, lockoutRecovery))
	if err != nil {
		return fmt.Errorf("dictionary attack parameters: %w", err)
	}
	if len(rsp) < headerSize {
		return fmt.Errorf("dictionary attack parameters: short response (%d bytes)", len(rsp))
	}
	if rc := binary.BigEndian.Uint32(rsp[6:10]); rc != 0 {
		return fmt.Errorf("dictionary attack parameters: %w", tpm2.TPMRC(rc))
	}
	return nil
}

// dictionaryAttackParametersCommand frames the command: header, the
// TPM_RH_LOCKOUT handle, a TPM_RS_PW auth area with an empty nonce,
// no attributes and an empty password, then the three parameters.
func dictionaryAttackParametersCommand(maxTries, recoveryTime, lockoutRecovery uint32) []byte {
	auth := binary.BigEndian.AppendUint32(nil, handlePassword)
	auth = binary.BigEndian.AppendUint16(auth, 0) // nonceCaller
	auth = append(auth, 0)                        // sessionAttributes
	auth = binary.BigEndian.AppendUint16(auth, 0) // hmac

	cmd := make([]byte, headerSize)
	cmd = binary.BigEndian.AppendUint32(cmd, handleLockout)
	cmd = binary.BigEndian.AppendUint32(cmd, uint32(len(auth)))
	cmd = append(cmd, auth...)
	cmd = binary.BigEndian.AppendUint32(cmd, maxTries)
	cmd = binary.BigEndian.AppendUint32(cmd, recoveryTime)
	cmd = binary.BigEndian.AppendUint32(cmd, lockoutRecovery)

	binary.BigEndian.PutUint16(cmd[0:2], tagSessions)
	binary.BigEndian.PutUint32(cmd[2:6], uint32(len(cmd)))
	binary.BigEndian.PutUint32(cmd[6:10], ccDictionaryAttackParameters)
	return cmd
}
