// Package header implements the 9-byte per-frame MPDU header: three
// independent 24-bit Golay codewords carrying 12 data bits + 12 parity
// bits each, tolerating up to 3 bit errors per word. Grounded on
// original_source/lib/mac_layer/pdu/mpduHeader.cpp.
package header

import (
	"errors"

	"github.com/ex2-sdr/uhfmac/fec"
	"github.com/ex2-sdr/uhfmac/golay"
)

// Size is the encoded header length in bytes: three 24-bit Golay words.
const Size = 9

// ErrBadHeader is returned when a Golay word is uncorrectable or the
// parsed FEC scheme tag is not a member of the registry. A successful
// parse is still best-effort: an undetected 4+-bit error pattern can
// produce a false-positive valid header.
var ErrBadHeader = errors.New("header: uncorrectable or invalid")

// Header is the per-frame metadata protected by the three Golay words.
type Header struct {
	Modulation              uint8 // 3 bits, 0..7
	FECScheme               fec.Scheme
	CodewordFragmentIndex   uint8  // 7 bits, 0..127
	UserPacketPayloadLength uint16 // 12 bits, 0..4095
	UserPacketFragmentIndex uint8
}

// Encode serializes h into exactly Size bytes via three Golay-encoded
// 12-bit words, MSB first, each word's 24 bits occupying 3 bytes
// big-endian.
func Encode(h Header) [Size]byte {
	var out [Size]byte

	word1 := (uint16(h.Modulation)<<9)&0x0E00 |
		(uint16(h.FECScheme)<<3)&0x01F8 |
		(uint16(h.CodewordFragmentIndex)>>4)&0x0007
	putCodeword(out[0:3], golay.Encode(word1))

	word2 := (uint16(h.CodewordFragmentIndex)<<8)&0x0F00 |
		(h.UserPacketPayloadLength>>4)&0x00FF
	putCodeword(out[3:6], golay.Encode(word2))

	word3 := (h.UserPacketPayloadLength<<8)&0x0F00 |
		uint16(h.UserPacketFragmentIndex)&0x00FF
	putCodeword(out[6:9], golay.Encode(word3))

	return out
}

// Decode parses Size bytes back into a Header, correcting up to 3 bit
// errors per Golay word. Returns ErrBadHeader if any word is
// uncorrectable or the parsed FEC scheme is unknown.
func Decode(raw []byte) (Header, error) {
	if len(raw) < Size {
		return Header{}, ErrBadHeader
	}

	w1, err := golay.Decode(getCodeword(raw[0:3]))
	if err != nil {
		return Header{}, ErrBadHeader
	}
	w2, err := golay.Decode(getCodeword(raw[3:6]))
	if err != nil {
		return Header{}, ErrBadHeader
	}
	w3, err := golay.Decode(getCodeword(raw[6:9]))
	if err != nil {
		return Header{}, ErrBadHeader
	}

	scheme := fec.Scheme((w1 >> 3) & 0x003F)
	if scheme >= fec.Last {
		return Header{}, ErrBadHeader
	}

	h := Header{
		Modulation: uint8((w1 >> 9) & 0x0007),
		FECScheme:  scheme,
	}
	h.CodewordFragmentIndex = uint8(w1&0x0007) << 4
	h.CodewordFragmentIndex |= uint8((w2 >> 8) & 0x000F)
	h.UserPacketPayloadLength = (w2 & 0x00FF) << 4
	h.UserPacketPayloadLength |= (w3 >> 8) & 0x000F
	h.UserPacketFragmentIndex = uint8(w3 & 0x00FF)

	return h, nil
}

func putCodeword(dst []byte, cw uint32) {
	dst[0] = byte(cw >> 16)
	dst[1] = byte(cw >> 8)
	dst[2] = byte(cw)
}

func getCodeword(src []byte) uint32 {
	return uint32(src[0])<<16 | uint32(src[1])<<8 | uint32(src[2])
}
