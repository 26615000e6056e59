package mac

import (
	"github.com/ex2-sdr/uhfmac/fec"
	"github.com/ex2-sdr/uhfmac/mac/frame"
)

// decodeState is the MAC's single receive-assembly state, per
// spec.md §4.8.
type decodeState struct {
	firstFragmentSeen   bool
	expectedFrames      uint32
	framesReceived      uint32
	currentPacketLength uint32
	codewordAccumulator []byte
	declaredFECScheme   fec.Scheme
}

func (s *decodeState) reset() {
	s.firstFragmentSeen = false
	s.expectedFrames = 0
	s.framesReceived = 0
	s.currentPacketLength = 0
	s.codewordAccumulator = s.codewordAccumulator[:0]
}

// processFrame implements spec.md §4.8's per-frame receive operation.
// codec and scheme are the MAC's currently configured FEC codec/tag;
// finalize, on completing a packet, returns the truncated reassembled
// byte stream (header prefix + packet data).
func processFrame(raw []byte, st *decodeState, scheme fec.Scheme, codec fec.Codec) (Status, []byte, error) {
	f, parseErr := frame.Parse(raw)
	if parseErr != nil {
		if st.firstFragmentSeen && st.framesReceived+1 == st.expectedFrames {
			st.codewordAccumulator = append(st.codewordAccumulator, make([]byte, frame.MTU)...)
			st.framesReceived++
			return finalize(st, codec)
		}
		return NeedMore, nil, nil
	}

	if !st.firstFragmentSeen {
		if f.Header.CodewordFragmentIndex != 0 {
			return NeedMore, nil, nil
		}
		if f.Header.FECScheme != scheme {
			return NeedMore, nil, nil
		}
		st.currentPacketLength = uint32(f.Header.UserPacketPayloadLength) + PrefixSize
		st.declaredFECScheme = f.Header.FECScheme
		info := codec.SchemeInfo()
		msgLen := info.MessageLenBits / 8
		cwLen := info.CodewordLenBits / 8
		st.expectedFrames = frame.NumFramesFor(st.currentPacketLength, msgLen, cwLen)
		st.framesReceived = 1
		st.codewordAccumulator = append(st.codewordAccumulator[:0], f.Payload[:]...)
		st.firstFragmentSeen = true
		if st.framesReceived == st.expectedFrames {
			return finalize(st, codec)
		}
		return NeedMore, nil, nil
	}

	parsed := uint32(f.Header.CodewordFragmentIndex)
	switch {
	case parsed == st.framesReceived:
		st.codewordAccumulator = append(st.codewordAccumulator, f.Payload[:]...)
		st.framesReceived++
	case parsed > st.framesReceived:
		gap := parsed - st.framesReceived
		st.codewordAccumulator = append(st.codewordAccumulator, make([]byte, gap*frame.MTU)...)
		st.codewordAccumulator = append(st.codewordAccumulator, f.Payload[:]...)
		st.framesReceived = parsed + 1
	default:
		st.reset()
		return NeedMore, nil, nil
	}

	if st.framesReceived == st.expectedFrames {
		return finalize(st, codec)
	}
	return NeedMore, nil, nil
}

// finalize splits the codeword accumulator into codec.SchemeInfo
// codeword-sized chunks, FEC-decodes each, concatenates the messages,
// and truncates the result to currentPacketLength.
func finalize(st *decodeState, codec fec.Codec) (Status, []byte, error) {
	info := codec.SchemeInfo()
	cwLen := int(info.CodewordLenBits / 8)

	var packet []byte
	if cwLen > 0 {
		for off := 0; off < len(st.codewordAccumulator); off += cwLen {
			end := off + cwLen
			var cw []byte
			if end <= len(st.codewordAccumulator) {
				cw = st.codewordAccumulator[off:end]
			} else {
				cw = make([]byte, cwLen)
				copy(cw, st.codewordAccumulator[off:])
			}
			msg, _, err := codec.Decode(cw, 0)
			if err != nil {
				st.reset()
				return NeedMore, nil, err
			}
			packet = append(packet, msg...)
		}
	}

	if len(packet) > int(st.currentPacketLength) {
		packet = packet[:st.currentPacketLength]
	} else if len(packet) < int(st.currentPacketLength) {
		packet = append(packet, make([]byte, int(st.currentPacketLength)-len(packet))...)
	}

	st.reset()
	return PacketReady, packet, nil
}
