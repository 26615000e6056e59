// Package uhfmac provides a façade over the MAC/FEC data-link core:
// re-exported types and constructors so callers can depend on the root
// package alone instead of reaching into mac/fec/transport directly,
// the same "thin facade over subpackages" shape as the teacher's
// facade.go.
package uhfmac

import (
	"go.uber.org/zap"

	"github.com/ex2-sdr/uhfmac/fec"
	"github.com/ex2-sdr/uhfmac/mac"
	"github.com/ex2-sdr/uhfmac/transport"
)

// Re-exported types for callers that only need the common surface.
type (
	Scheme      = fec.Scheme
	MAC         = mac.MAC
	Status      = mac.Status
	Transmitter = transport.Transmitter
	Receiver    = transport.Receiver
	RadioDriver = transport.RadioDriver
)

// Re-exported status constants.
const (
	PacketReady = mac.PacketReady
	NeedMore    = mac.NeedMore
	BadContext  = mac.BadContext
)

// Re-exported errors.
var (
	ErrPacketTooLarge  = mac.ErrPacketTooLarge
	ErrFecEncodeFailed = mac.ErrFecEncodeFailed
	ErrTimeout         = transport.ErrTimeout
)

// NewMAC constructs a MAC configured for scheme and modulation.
func NewMAC(scheme fec.Scheme, modulation uint8) (*mac.MAC, error) {
	return mac.New(scheme, modulation)
}

// NewTransmitter constructs a Transmitter over driver.
func NewTransmitter(driver transport.RadioDriver, scheme fec.Scheme, modulation uint8, log *zap.SugaredLogger) (*transport.Transmitter, error) {
	return transport.NewTransmitter(driver, scheme, modulation, log)
}

// NewReceiver constructs a Receiver over driver.
func NewReceiver(driver transport.RadioDriver, scheme fec.Scheme, modulation uint8, log *zap.SugaredLogger) (*transport.Receiver, error) {
	return transport.NewReceiver(driver, scheme, modulation, log)
}
