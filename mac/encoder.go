package mac

import (
	"github.com/ex2-sdr/uhfmac/fec"
	"github.com/ex2-sdr/uhfmac/mac/frame"
	"github.com/ex2-sdr/uhfmac/mac/header"
)

// encodePacket implements spec.md §4.7's transmit path: prepend the
// header prefix to data, split the result into FEC message chunks,
// encode each to a codeword, concatenate the codeword stream, and
// pack it into 128-byte frames with contiguous fragment indices
// starting at 0. The first frame always carries the authoritative
// data length.
func encodePacket(prefix HeaderPrefix, data []byte, codec fec.Codec, scheme fec.Scheme, modulation uint8) ([]frame.Frame, error) {
	if len(data) > MaxUserPacketPayloadLength {
		return nil, ErrPacketTooLarge
	}

	info := codec.SchemeInfo()
	msgLen := int(info.MessageLenBits / 8)
	cwLen := int(info.CodewordLenBits / 8)
	if msgLen == 0 || cwLen == 0 {
		return nil, ErrFecEncodeFailed
	}

	rawPrefix := prefix.Encode()
	stream := make([]byte, 0, PrefixSize+len(data))
	stream = append(stream, rawPrefix[:]...)
	stream = append(stream, data...)

	codewords := make([]byte, 0, cwLen*(len(stream)/msgLen+1))
	for off := 0; off < len(stream); off += msgLen {
		end := off + msgLen
		msg := make([]byte, msgLen)
		if end <= len(stream) {
			copy(msg, stream[off:end])
		} else {
			copy(msg, stream[off:])
		}
		cw, err := codec.Encode(msg)
		if err != nil || len(cw) != cwLen {
			return nil, ErrFecEncodeFailed
		}
		codewords = append(codewords, cw...)
	}

	frames := make([]frame.Frame, 0, len(codewords)/frame.MTU+1)
	for off, idx := 0, 0; off < len(codewords); off, idx = off+frame.MTU, idx+1 {
		end := off + frame.MTU
		var chunk []byte
		if end <= len(codewords) {
			chunk = codewords[off:end]
		} else {
			chunk = codewords[off:]
		}
		f, err := newFrame(modulation, scheme, idx, len(data), chunk)
		if err != nil {
			return nil, err
		}
		frames = append(frames, f)
	}

	if len(frames) == 0 {
		f, err := newFrame(modulation, scheme, 0, len(data), nil)
		if err != nil {
			return nil, err
		}
		frames = append(frames, f)
	}

	return frames, nil
}

func newFrame(modulation uint8, scheme fec.Scheme, fragmentIndex, dataLen int, payload []byte) (frame.Frame, error) {
	h := header.Header{
		Modulation:              modulation,
		FECScheme:               scheme,
		CodewordFragmentIndex:   uint8(fragmentIndex),
		UserPacketPayloadLength: uint16(dataLen),
		UserPacketFragmentIndex: 0,
	}
	return frame.New(h, payload)
}
