package transport

import (
	"errors"
	"fmt"
)

var (
	ErrTimeout       = errors.New("transport: no response before deadline")
	ErrAlreadyBound  = errors.New("transport: server already bound")
	ErrNotBound      = errors.New("transport: server not bound")
	ErrUnrenderable  = errors.New("transport: request could not be rendered")
	ErrNoBindings    = errors.New("transport: no socket bindings configured")
	ErrSocketFailing = errors.New("transport: socket keeps failing")
)

// TransportError records a failed socket operation.
type TransportError struct {
	Op   string
	Addr string
	Err  error
}

func (e *TransportError) Error() string {
	if e.Addr == "" {
		return fmt.Sprintf("transport: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("transport: %s %s: %v", e.Op, e.Addr, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
