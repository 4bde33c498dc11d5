package tpm

import (
	"errors"
	"fmt"
	"strings"
)

const (
	DefaultDevice = "/dev/tpm0"
	DefaultTCTI   = "device:" + DefaultDevice
)

var ErrUnsupportedTCTI = errors.New("unsupported TCTI")

// Kind is the type of channel a TCTI string selects
type Kind int

const (
	KindDevice Kind = iota
	KindSocket
)

func (k Kind) String() string {
	switch k {
	case KindDevice:
		return "device"
	case KindSocket:
		return "swtpm"
	default:
		return "unknown"
	}
}

// Target is a parsed TCTI string
type Target struct {
	Kind Kind
	Path string
}

// ParseTCTI parses a tpm2-tss style TCTI configuration string.
//
// Accepted forms:
//   - "device" or "device:" (default device)
//   - "device:/dev/tpmrm0"
//   - "/dev/tpmrm0"
//   - "swtpm:path=/run/swtpm.sock" or "unix:/run/swtpm.sock"
func ParseTCTI(conf string) (Target, error) {
	conf = strings.TrimSpace(conf)
	if conf == "" {
		return Target{}, fmt.Errorf("%w: empty string", ErrUnsupportedTCTI)
	}

	if strings.HasPrefix(conf, "/") {
		return Target{Kind: KindDevice, Path: conf}, nil
	}

	name, opts, _ := strings.Cut(conf, ":")
	switch name {
	case "device":
		if opts == "" {
			opts = DefaultDevice
		}
		return Target{Kind: KindDevice, Path: opts}, nil
	case "unix":
		if opts == "" {
			return Target{}, fmt.Errorf("%w: %q has no socket path", ErrUnsupportedTCTI, conf)
		}
		return Target{Kind: KindSocket, Path: opts}, nil
	case "swtpm":
		path, err := socketPath(opts)
		if err != nil {
			return Target{}, fmt.Errorf("%w: %q: %v", ErrUnsupportedTCTI, conf, err)
		}
		return Target{Kind: KindSocket, Path: path}, nil
	default:
		return Target{}, fmt.Errorf("%w: %q", ErrUnsupportedTCTI, conf)
	}
}

// socketPath extracts path=... from swtpm options. TCP (host=, port=) is
// not supported.
func socketPath(opts string) (string, error) {
	for _, kv := range strings.Split(opts, ",") {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		switch strings.TrimSpace(key) {
		case "path":
			if value == "" {
				return "", errors.New("empty socket path")
			}
			return value, nil
		case "host", "port":
			return "", errors.New("TCP connections are not supported")
		}
	}
	return "", errors.New("no socket path")
}

func (t Target) String() string {
	return t.Kind.String() + ":" + t.Path
}
