package tpm

import (
	"errors"

	"github.com/google/go-tpm/tpm2/transport"
)

var ErrContextClosed = errors.New("context closed")

// Context issues commands over a Transport and owns it from then on:
// closing the Context closes the Transport too.
type Context struct {
	t      *Transport
	closed bool
}

// NewContext binds a command context to t
func NewContext(t *Transport) (*Context, error) {
	if t == nil || t.tpm == nil {
		return nil, errors.New("no transport")
	}
	if t.closed {
		return nil, ErrTransportClosed
	}
	return &Context{t: t}, nil
}

// tpm returns the transport to send on, or an error once either layer is closed
func (c *Context) tpm() (transport.TPM, error) {
	if c == nil || c.closed {
		return nil, ErrContextClosed
	}
	if !c.t.usable() {
		return nil, ErrTransportClosed
	}
	return c.t.tpm, nil
}

// Close releases the context and its transport. Closing a nil or closed
// Context is a no-op.
func (c *Context) Close() error {
	if c == nil || c.closed {
		return nil
	}
	c.closed = true
	t := c.t
	c.t = nil
	return t.Close()
}
