// Package transport delivers position updates to the remote peer and
// receives them on the peer's side. Delivery is best-effort: nothing is
// acknowledged or retransmitted.
package transport

import (
	"errors"
	"fmt"
)

var (
	// ErrQueueFull is returned when the outgoing queue has no room. The
	// update is dropped rather than blocking the caller.
	ErrQueueFull = errors.New("send queue full")
	// ErrClosed is returned for sends after Close
	ErrClosed = errors.New("transport closed")
)

// TransportError describes a failed send or receive
type TransportError struct {
	Op   string // "enqueue", "write", "dial", ...
	Peer string
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s %s: %v", e.Op, e.Peer, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
