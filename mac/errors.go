package mac

import "errors"

// Errors returned by the MAC encoder/decoder, per spec's validation
// and codec error kinds. Header- and frame-integrity errors are defined
// in the header and frame packages (header.ErrBadHeader,
// frame.ErrBadFrameLength); ProcessFrame absorbs them into its Status
// result instead of returning them.
var (
	// ErrPacketTooLarge is returned when a packet's data length (the
	// header prefix not counted) exceeds what the 12-bit payload-length
	// header field can express (4095 bytes).
	ErrPacketTooLarge = errors.New("mac: packet too large for 12-bit length field")

	// ErrFecEncodeFailed is returned when the configured FEC codec
	// fails to encode a message chunk.
	ErrFecEncodeFailed = errors.New("mac: fec encode failed")
)

// MaxUserPacketPayloadLength is the largest value the header's 12-bit
// user-packet-payload-length field can hold.
const MaxUserPacketPayloadLength = 4095
