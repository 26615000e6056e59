package transport

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ex2-sdr/uhfmac/fec"
	"github.com/ex2-sdr/uhfmac/mac"
)

// Receiver pairs a mac.MAC decoder with a RadioDriver and a background
// pump goroutine, grounded on the teacher's Receiver.Listen(): frames
// pulled off the driver are fed through mac.MAC.ProcessFrame, and a
// completed packet is delivered to the registered callback.
type Receiver struct {
	m      *mac.MAC
	driver RadioDriver
	log    *zap.SugaredLogger

	mu          sync.Mutex
	onPacket    func([]byte)
	isListening bool
	stop        chan struct{}
}

// NewReceiver constructs a Receiver using scheme/modulation for the
// underlying MAC codec.
func NewReceiver(driver RadioDriver, scheme fec.Scheme, modulation uint8, log *zap.SugaredLogger) (*Receiver, error) {
	m, err := mac.New(scheme, modulation)
	if err != nil {
		return nil, err
	}
	return &Receiver{m: m, driver: driver, log: log}, nil
}

// OnPacket registers the callback invoked with a reassembled packet
// (header prefix included) whenever ProcessFrame reports PacketReady.
func (r *Receiver) OnPacket(cb func([]byte)) {
	r.mu.Lock()
	r.onPacket = cb
	r.mu.Unlock()
}

// ProcessFrame feeds a single received frame through the MAC decoder,
// invoking the registered callback on PacketReady. Exposed directly so
// callers that already own their own receive loop (e.g. tests) can
// drive the decoder without Listen's goroutine.
func (r *Receiver) ProcessFrame(raw []byte) (mac.Status, error) {
	status, err := r.m.ProcessFrame(raw)
	if err != nil {
		if r.log != nil {
			r.log.Warnw("process frame failed", "err", err)
		}
		return status, err
	}
	if status == mac.PacketReady {
		r.mu.Lock()
		cb := r.onPacket
		r.mu.Unlock()
		if cb != nil {
			cb(r.m.PacketBuffer())
		}
	}
	return status, nil
}

// Listen starts the background pump: it repeatedly calls driver.Rx and
// feeds whatever arrives to ProcessFrame, until StopListening is
// called. Calling Listen while already listening is a no-op.
func (r *Receiver) Listen(pollTimeout time.Duration) {
	r.mu.Lock()
	if r.isListening {
		r.mu.Unlock()
		return
	}
	r.isListening = true
	stop := make(chan struct{})
	r.stop = stop
	r.mu.Unlock()

	go func() {
		for {
			select {
			case <-stop:
				return
			default:
			}
			raw, err := r.driver.Rx(pollTimeout)
			if err != nil {
				continue
			}
			if _, err := r.ProcessFrame(raw); err != nil {
				continue
			}
		}
	}()
}

// StopListening halts the background pump started by Listen.
func (r *Receiver) StopListening() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.isListening {
		return
	}
	close(r.stop)
	r.isListening = false
}
