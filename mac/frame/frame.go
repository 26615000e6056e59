// Package frame implements the 128-byte MPDU: a 9-byte Golay-protected
// header followed by a 119-byte payload region. Grounded on
// original_source/lib/mac_layer/pdu/mpdu.cpp.
package frame

import (
	"errors"

	"github.com/ex2-sdr/uhfmac/mac/header"
)

// Size is the fixed wire length of one frame.
const Size = 128

// MTU is the payload region size: Size - header.Size.
const MTU = Size - header.Size

// ErrFrameOverflow is returned by New when the payload exceeds MTU bytes.
var ErrFrameOverflow = errors.New("frame: payload exceeds MTU")

// ErrBadFrameLength is returned by Parse when raw is not exactly Size bytes.
var ErrBadFrameLength = errors.New("frame: length is not 128 bytes")

// Frame is one 128-byte transparent-mode radio frame.
type Frame struct {
	Header  header.Header
	Payload [MTU]byte
}

// New builds a Frame from a header and a payload of at most MTU bytes,
// zero-padding a short payload to MTU. Longer payloads are rejected
// with ErrFrameOverflow.
func New(h header.Header, payload []byte) (Frame, error) {
	if len(payload) > MTU {
		return Frame{}, ErrFrameOverflow
	}
	f := Frame{Header: h}
	copy(f.Payload[:], payload)
	return f, nil
}

// Encode serializes f to exactly Size bytes: header followed by payload.
func (f Frame) Encode() [Size]byte {
	var out [Size]byte
	h := header.Encode(f.Header)
	copy(out[:header.Size], h[:])
	copy(out[header.Size:], f.Payload[:])
	return out
}

// Parse decodes raw into a Frame. raw must be exactly Size bytes;
// otherwise ErrBadFrameLength. A bad header propagates header.ErrBadHeader.
func Parse(raw []byte) (Frame, error) {
	if len(raw) != Size {
		return Frame{}, ErrBadFrameLength
	}
	h, err := header.Decode(raw[:header.Size])
	if err != nil {
		return Frame{}, err
	}
	f := Frame{Header: h}
	copy(f.Payload[:], raw[header.Size:])
	return f, nil
}

// NumFramesFor returns the number of 128-byte frames required to carry
// B bytes of packet data under the given FEC (message, codeword)
// lengths in bytes, matching mpdu.cpp's mpdusPerCSPPacket /
// mpdusPerCodeword family: codewords are ceil-divided across B, and
// each codeword's bytes are ceil-divided across MTU-sized frames.
func NumFramesFor(b, messageLenBytes, codewordLenBytes uint32) uint32 {
	if messageLenBytes == 0 {
		return 0
	}
	numCodewords := ceilDiv(b, messageLenBytes)
	framesPerCodeword := ceilDiv(codewordLenBytes, MTU)
	return numCodewords * framesPerCodeword
}

func ceilDiv(a, b uint32) uint32 {
	if b == 0 {
		return 0
	}
	return (a + b - 1) / b
}
