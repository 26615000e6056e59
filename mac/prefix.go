package mac

import "encoding/binary"

// PrefixSize is the fixed byte count of the packet-layer framing
// prefix the MAC prepends on transmit and leaves at the front of the
// reassembled packet on receive (see PacketBuffer): 4 padding
// bytes, a 2-byte little-endian data length, and a 4-byte
// little-endian routing id. Grounded on
// original_source/lib/mac_layer/mac.cpp's receiveCSPPacket, which
// assembles cspPacket->padding + cspPacket->length + cspPacket->id.ext
// in that order, all little-endian.
const PrefixSize = 10

const paddingBytes = 4

// HeaderPrefix is the packet-layer framing prefix: opaque as far as
// the MAC's FEC/fragmentation logic is concerned, but sized and laid
// out exactly so DataLength can be recovered on receive.
type HeaderPrefix struct {
	Padding    [paddingBytes]byte
	DataLength uint16
	RoutingID  uint32
}

// Encode serializes p to exactly PrefixSize bytes.
func (p HeaderPrefix) Encode() [PrefixSize]byte {
	var out [PrefixSize]byte
	copy(out[0:paddingBytes], p.Padding[:])
	binary.LittleEndian.PutUint16(out[paddingBytes:paddingBytes+2], p.DataLength)
	binary.LittleEndian.PutUint32(out[paddingBytes+2:], p.RoutingID)
	return out
}

// DecodePrefix parses the first PrefixSize bytes of raw into a HeaderPrefix.
func DecodePrefix(raw []byte) HeaderPrefix {
	var p HeaderPrefix
	copy(p.Padding[:], raw[0:paddingBytes])
	p.DataLength = binary.LittleEndian.Uint16(raw[paddingBytes : paddingBytes+2])
	p.RoutingID = binary.LittleEndian.Uint32(raw[paddingBytes+2:])
	return p
}
