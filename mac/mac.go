// Package mac implements the MAC+FEC+header data-link layer: packet
// fragmentation and FEC encoding on transmit, frame reassembly and FEC
// decoding on receive. Grounded on
// original_source/lib/mac_layer/mac.cpp (MAC class: receiveCSPPacket,
// processUHFPacket/m_decodeCSPPacket), structured as a Go type in the
// style of the teacher's transport.Transmitter/transport.Receiver
// (stateful struct wrapping a device/driver with an exported method
// set).
package mac

import (
	"github.com/ex2-sdr/uhfmac/fec"
	"github.com/ex2-sdr/uhfmac/mac/frame"
)

// MAC bundles the transmit and receive paths, the configured FEC
// scheme/modulation, and the single receive-assembly state described
// in spec.md §3's Lifecycles. It is single-threaded and cooperative:
// callers must serialize calls to EncodePacket and ProcessFrame.
type MAC struct {
	fecScheme  fec.Scheme
	modulation uint8
	codec      fec.Codec
	routingID  uint32

	decodeState  decodeState
	packetBuffer []byte
	frameBuffer  []byte
}

// New constructs a MAC configured for scheme and modulation, using
// fec.DefaultMaxContinuousCodewordLen to size continuous schemes.
func New(scheme fec.Scheme, modulation uint8) (*MAC, error) {
	codec, err := fec.NewCodec(scheme, fec.DefaultMaxContinuousCodewordLen)
	if err != nil {
		return nil, err
	}
	return &MAC{fecScheme: scheme, modulation: modulation, codec: codec}, nil
}

// FECScheme returns the currently configured FEC scheme.
func (m *MAC) FECScheme() fec.Scheme { return m.fecScheme }

// SetFECScheme replaces the FEC codec and resets internal buffers,
// including any in-progress receive assembly, per spec.md §4.9.
func (m *MAC) SetFECScheme(scheme fec.Scheme) error {
	codec, err := fec.NewCodec(scheme, fec.DefaultMaxContinuousCodewordLen)
	if err != nil {
		return err
	}
	m.fecScheme = scheme
	m.codec = codec
	m.decodeState.reset()
	m.frameBuffer = nil
	m.packetBuffer = nil
	return nil
}

// Modulation returns the currently configured radio modulation id.
func (m *MAC) Modulation() uint8 { return m.modulation }

// SetModulation changes the radio modulation id, discarding any
// in-progress receive assembly per spec.md §4.9.
func (m *MAC) SetModulation(modulation uint8) {
	m.modulation = modulation
	m.decodeState.reset()
}

// RoutingID returns the 4-byte id placed in the header prefix on
// transmit (see HeaderPrefix).
func (m *MAC) RoutingID() uint32 { return m.routingID }

// SetRoutingID sets the header-prefix routing id used by EncodePacket.
func (m *MAC) SetRoutingID(id uint32) { m.routingID = id }

// EncodePacket fragments data (with the header prefix prepended) into
// frames under the current FEC scheme and modulation, storing the
// concatenated 128-byte-aligned result for retrieval via FrameBuffer.
func (m *MAC) EncodePacket(data []byte) error {
	prefix := HeaderPrefix{DataLength: uint16(len(data)), RoutingID: m.routingID}
	frames, err := encodePacket(prefix, data, m.codec, m.fecScheme, m.modulation)
	if err != nil {
		return err
	}
	buf := make([]byte, 0, len(frames)*frame.Size)
	for _, f := range frames {
		raw := f.Encode()
		buf = append(buf, raw[:]...)
	}
	m.frameBuffer = buf
	return nil
}

// FrameBuffer returns the frame bytes produced by the most recent
// EncodePacket call: always a length that is an integer multiple of
// RawFrameLength.
func (m *MAC) FrameBuffer() []byte { return m.frameBuffer }

// RawFrameLength returns the fixed wire length of one frame (128).
func (m *MAC) RawFrameLength() int { return frame.Size }

// ProcessFrame feeds one received 128-byte frame through the receive
// assembly state machine (spec.md §4.8). On PacketReady, the
// reassembled packet (header prefix + data, truncated to its declared
// length) is available from PacketBuffer.
func (m *MAC) ProcessFrame(raw []byte) (Status, error) {
	status, packet, err := processFrame(raw, &m.decodeState, m.fecScheme, m.codec)
	if err != nil {
		return status, err
	}
	if status == PacketReady {
		m.packetBuffer = packet
	}
	return status, nil
}

// PacketBuffer returns the most recently reassembled packet, still
// including the header prefix at its front.
func (m *MAC) PacketBuffer() []byte { return m.packetBuffer }

// NumFramesFor returns the number of 128-byte frames required to
// carry byteCount bytes of packet data (prefix included) under
// scheme's default-sized codec.
func NumFramesFor(byteCount uint32, scheme fec.Scheme) (uint32, error) {
	info, err := fec.SchemeInfo(scheme, fec.DefaultMaxContinuousCodewordLen)
	if err != nil {
		return 0, err
	}
	return frame.NumFramesFor(byteCount, info.MessageLenBits/8, info.CodewordLenBits/8), nil
}
