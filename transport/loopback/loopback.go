// Package loopback provides an in-process transport.RadioDriver for
// host-side testing and the demo CLIs, adapted from the teacher's
// driver/stub.Driver: a bounded queue standing in for the radio medium
// instead of real hardware.
package loopback

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ex2-sdr/uhfmac/transport"
)

// queueDepth mirrors spec.md §5's "bounded, 2-slot, non-blocking
// producer" receive queue.
const queueDepth = 2

// Driver is a loopback transport.RadioDriver: frames transmitted on one
// end are enqueued for the other end to receive. Two Drivers created
// by Pair share a pair of channels and model a point-to-point link (the
// demo CLIs use this); a single Driver created by New loops its own
// frames back to itself.
type Driver struct {
	log *zap.SugaredLogger
	out chan []byte
	in  chan []byte
}

// New creates a standalone loopback driver: frames sent with Tx are
// immediately available to Rx on the same Driver.
func New(log *zap.SugaredLogger) *Driver {
	ch := make(chan []byte, queueDepth)
	return &Driver{log: log, out: ch, in: ch}
}

// Pair creates two Drivers wired so that a sent on one side arrives on
// the other, modeling a two-node link over the loopback medium.
func Pair(log *zap.SugaredLogger) (a, b *Driver) {
	ab := make(chan []byte, queueDepth)
	ba := make(chan []byte, queueDepth)
	return &Driver{log: log, out: ab, in: ba}, &Driver{log: log, out: ba, in: ab}
}

// Tx enqueues a frame for delivery. It drops the oldest queued frame
// rather than blocking when the queue is full, matching the spec's
// non-blocking producer.
func (d *Driver) Tx(data []byte) error {
	frame := make([]byte, len(data))
	copy(frame, data)

	select {
	case d.out <- frame:
	default:
		select {
		case <-d.out:
		default:
		}
		d.out <- frame
	}

	if d.log != nil {
		d.log.Debugw("loopback tx", "bytes", len(frame))
	}
	return nil
}

// Rx blocks for up to timeout waiting for a frame.
func (d *Driver) Rx(timeout time.Duration) ([]byte, error) {
	select {
	case frame := <-d.in:
		if d.log != nil {
			d.log.Debugw("loopback rx", "bytes", len(frame))
		}
		return frame, nil
	case <-time.After(timeout):
		return nil, transport.ErrTimeout
	}
}

// RxContext is the cancellable variant of Rx. Host-side demo code
// benefits from being able to cancel a blocked receive on shutdown; the
// bare-metal radio driver this was adapted from has no such need, so
// this method exists only on the loopback driver, not the RadioDriver
// interface.
func (d *Driver) RxContext(ctx context.Context, timeout time.Duration) ([]byte, error) {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	select {
	case frame := <-d.in:
		if d.log != nil {
			d.log.Debugw("loopback rx", "bytes", len(frame))
		}
		return frame, nil
	case <-deadline.C:
		return nil, transport.ErrTimeout
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
