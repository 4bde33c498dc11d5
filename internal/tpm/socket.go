package tpm

import (
	"encoding/binary"
	"fmt"
	"io"
	"net"

	"github.com/google/go-tpm/tpm2/transport"
)

const (
	headerSize      = 10
	maxResponseSize = 4096
)

// socketTPM speaks raw TPM commands over a stream socket, as swtpm does with
// --server type=unixio. Responses are framed by the size in their header.
type socketTPM struct {
	conn net.Conn
}

func dialSocket(path string) (transport.TPMCloser, error) {
	conn, err := net.Dial("unix", path)
	if err != nil {
		return nil, err
	}
	return &socketTPM{conn: conn}, nil
}

func (s *socketTPM) Send(cmd []byte) ([]byte, error) {
	if _, err := s.conn.Write(cmd); err != nil {
		return nil, fmt.Errorf("write command: %w", err)
	}

	rsp := make([]byte, headerSize)
	if _, err := io.ReadFull(s.conn, rsp); err != nil {
		return nil, fmt.Errorf("read response header: %w", err)
	}

	size := binary.BigEndian.Uint32(rsp[2:6])
	if size < headerSize || size > maxResponseSize {
		return nil, fmt.Errorf("invalid response size %d", size)
	}

	rsp = append(rsp, make([]byte, size-headerSize)...)
	if _, err := io.ReadFull(s.conn, rsp[headerSize:]); err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return rsp, nil
}

func (s *socketTPM) Close() error {
	return s.conn.Close()
}
