// Package transport wires the mac.MAC codec to a radio, in the style of
// the teacher's Transmitter/Receiver pairing around a RadioDriver: the
// MAC layer never touches bytes on the wire directly, it hands fixed
// frames to a driver and receives fixed frames back.
package transport

import (
	"errors"
	"time"
)

// RadioDriver is the interface a radio (or test double) implements to
// exchange fixed mac/frame.Size-byte frames. Unlike the teacher's
// RadioDriver, there is no StartHFCLK/Configure/SetChannel: this module
// does not own the radio hardware, only the bytes it carries.
type RadioDriver interface {
	// Tx transmits one frame. data is always exactly mac/frame.Size
	// bytes.
	Tx(data []byte) error

	// Rx blocks for up to timeout waiting for one frame, returning
	// ErrTimeout if none arrives.
	Rx(timeout time.Duration) ([]byte, error)
}

// ErrTimeout is returned by RadioDriver.Rx when no frame arrives before
// the timeout expires.
var ErrTimeout = errors.New("transport: receive timed out")
