package transport

import (
	"go.uber.org/zap"

	"github.com/ex2-sdr/uhfmac/fec"
	"github.com/ex2-sdr/uhfmac/mac"
)

// Transmitter pairs a mac.MAC encoder with a RadioDriver, in the style
// of the teacher's Transmitter pairing a protocol.Device with one.
type Transmitter struct {
	m      *mac.MAC
	driver RadioDriver
	log    *zap.SugaredLogger
}

// NewTransmitter constructs a Transmitter using scheme/modulation for
// the underlying MAC codec.
func NewTransmitter(driver RadioDriver, scheme fec.Scheme, modulation uint8, log *zap.SugaredLogger) (*Transmitter, error) {
	m, err := mac.New(scheme, modulation)
	if err != nil {
		return nil, err
	}
	return &Transmitter{m: m, driver: driver, log: log}, nil
}

// SetRoutingID sets the header-prefix routing id attached to every
// subsequently sent packet.
func (t *Transmitter) SetRoutingID(id uint32) { t.m.SetRoutingID(id) }

// SendPacket fragments data into frames under the configured FEC scheme
// and transmits them in order over the driver.
func (t *Transmitter) SendPacket(data []byte) error {
	if err := t.m.EncodePacket(data); err != nil {
		return err
	}
	raw := t.m.FrameBuffer()
	frameLen := t.m.RawFrameLength()
	for off := 0; off < len(raw); off += frameLen {
		if err := t.driver.Tx(raw[off : off+frameLen]); err != nil {
			return err
		}
	}
	if t.log != nil {
		t.log.Infow("packet sent", "bytes", len(data), "frames", len(raw)/frameLen)
	}
	return nil
}
