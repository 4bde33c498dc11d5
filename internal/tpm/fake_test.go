package tpm

import (
	"encoding/binary"
	"errors"
)

const (
	ccGetCapability = 0x0000017A

	stNoSessions = 0x8001
	stSessions   = 0x8002

	rcCommandCode = 0x143
)

// fakeTPM answers commands with canned responses keyed by command code
type fakeTPM struct {
	responses map[uint32][]byte
	commands  [][]byte
	closes    int
	sendErr   error
}

func newFakeTPM() *fakeTPM {
	return &fakeTPM{responses: make(map[uint32][]byte)}
}

func (f *fakeTPM) Send(cmd []byte) ([]byte, error) {
	f.commands = append(f.commands, append([]byte(nil), cmd...))
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	if len(cmd) < headerSize {
		return nil, errors.New("short command")
	}
	rsp, ok := f.responses[binary.BigEndian.Uint32(cmd[6:10])]
	if !ok {
		return errorResponse(rcCommandCode), nil
	}
	return rsp, nil
}

func (f *fakeTPM) Close() error {
	f.closes++
	return nil
}

func (f *fakeTPM) lastCommand() []byte {
	if len(f.commands) == 0 {
		return nil
	}
	return f.commands[len(f.commands)-1]
}

func response(tag uint16, rc uint32, body []byte) []byte {
	rsp := make([]byte, headerSize, headerSize+len(body))
	binary.BigEndian.PutUint16(rsp[0:2], tag)
	binary.BigEndian.PutUint32(rsp[2:6], uint32(headerSize+len(body)))
	binary.BigEndian.PutUint32(rsp[6:10], rc)
	return append(rsp, body...)
}

func errorResponse(rc uint32) []byte {
	return response(stNoSessions, rc, nil)
}

// capabilityResponse encodes TPMS_CAPABILITY_DATA for TPM_CAP_TPM_PROPERTIES
func capabilityResponse(props ...Property) []byte {
	body := []byte{0} // moreData
	body = binary.BigEndian.AppendUint32(body, 6)
	body = binary.BigEndian.AppendUint32(body, uint32(len(props)))
	for _, p := range props {
		body = binary.BigEndian.AppendUint32(body, uint32(p.Tag))
		body = binary.BigEndian.AppendUint32(body, p.Value)
	}
	return response(stNoSessions, 0, body)
}

// passwordResponse is a successful reply with no parameters to a command
// authorized by a single password session
func passwordResponse() []byte {
	body := binary.BigEndian.AppendUint32(nil, 0) // parameterSize
	body = binary.BigEndian.AppendUint16(body, 0) // nonceTPM
	body = append(body, 0x01)                     // continueSession
	body = binary.BigEndian.AppendUint16(body, 0) // hmac
	return response(stSessions, 0, body)
}

// trailingUint32s decodes the last n uint32 values of a command
func trailingUint32s(cmd []byte, n int) []uint32 {
	out := make([]uint32, n)
	start := len(cmd) - 4*n
	for i := range out {
		out[i] = binary.BigEndian.Uint32(cmd[start+4*i:])
	}
	return out
}
