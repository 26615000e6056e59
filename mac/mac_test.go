package mac

import (
	"bytes"
	"testing"

	"github.com/ex2-sdr/uhfmac/fec"
	"github.com/ex2-sdr/uhfmac/mac/frame"
)

func samplePacket(n int) []byte {
	p := make([]byte, n)
	for i := range p {
		p[i] = byte((i % 79) + 0x30)
	}
	return p
}

func feedFrames(t *testing.T, decoder *MAC, raw []byte) (Status, error) {
	t.Helper()
	var last Status
	for off := 0; off < len(raw); off += frame.Size {
		var err error
		last, err = decoder.ProcessFrame(raw[off : off+frame.Size])
		if err != nil {
			return last, err
		}
	}
	return last, nil
}

func TestMACRoundTrip(t *testing.T) {
	lengths := []int{0, 10, 103, 358, 4095}
	schemes := []fec.Scheme{fec.NoFEC, fec.CCSDSConvolutionalCodingR12}

	for _, scheme := range schemes {
		for _, l := range lengths {
			enc, err := New(scheme, 1)
			if err != nil {
				t.Fatalf("New(encoder): %v", err)
			}
			data := samplePacket(l)
			if err := enc.EncodePacket(data); err != nil {
				t.Fatalf("scheme=%v len=%d EncodePacket: %v", scheme, l, err)
			}
			raw := enc.FrameBuffer()
			if len(raw)%frame.Size != 0 {
				t.Fatalf("frame buffer length %d not a multiple of %d", len(raw), frame.Size)
			}

			wantFrames, err := NumFramesFor(uint32(PrefixSize+l), scheme)
			if err != nil {
				t.Fatalf("NumFramesFor: %v", err)
			}
			if uint32(len(raw)/frame.Size) != wantFrames {
				t.Fatalf("scheme=%v len=%d frame count = %d, want %d", scheme, l, len(raw)/frame.Size, wantFrames)
			}

			dec, err := New(scheme, 1)
			if err != nil {
				t.Fatalf("New(decoder): %v", err)
			}
			status, err := feedFrames(t, dec, raw)
			if err != nil {
				t.Fatalf("scheme=%v len=%d ProcessFrame: %v", scheme, l, err)
			}
			if status != PacketReady {
				t.Fatalf("scheme=%v len=%d final status = %v, want PacketReady", scheme, l, status)
			}

			got := dec.PacketBuffer()
			if len(got) < PrefixSize {
				t.Fatalf("packet buffer too short: %d", len(got))
			}
			if !bytes.Equal(got[PrefixSize:], data) {
				t.Fatalf("scheme=%v len=%d round trip mismatch", scheme, l)
			}
		}
	}
}

func TestMACLossToleranceNonFirstFrame(t *testing.T) {
	enc, _ := New(fec.CCSDSConvolutionalCodingR12, 1)
	data := samplePacket(358)
	if err := enc.EncodePacket(data); err != nil {
		t.Fatalf("EncodePacket: %v", err)
	}
	raw := enc.FrameBuffer()
	numFrames := len(raw) / frame.Size
	if numFrames < 2 {
		t.Fatalf("need at least 2 frames for this test, got %d", numFrames)
	}

	// Drop the second frame (index 1); the declared length is still
	// recoverable from frame 0, and content in the lost region is
	// undefined per spec.
	lossy := append(append([]byte{}, raw[:frame.Size]...), raw[2*frame.Size:]...)

	dec, _ := New(fec.CCSDSConvolutionalCodingR12, 1)
	var status Status
	var err error
	for off := 0; off < len(lossy); off += frame.Size {
		status, err = dec.ProcessFrame(lossy[off : off+frame.Size])
		if err != nil {
			t.Fatalf("ProcessFrame: %v", err)
		}
	}
	if status != PacketReady {
		t.Fatalf("status = %v, want PacketReady", status)
	}
	if len(dec.PacketBuffer()) != PrefixSize+len(data) {
		t.Fatalf("packet length = %d, want %d", len(dec.PacketBuffer()), PrefixSize+len(data))
	}
}

func TestMACDroppingFirstFrameYieldsNoPacketReady(t *testing.T) {
	enc, _ := New(fec.NoFEC, 1)
	data := samplePacket(358)
	if err := enc.EncodePacket(data); err != nil {
		t.Fatalf("EncodePacket: %v", err)
	}
	raw := enc.FrameBuffer()
	if len(raw)/frame.Size < 2 {
		t.Fatalf("need at least 2 frames")
	}

	dec, _ := New(fec.NoFEC, 1)
	for off := frame.Size; off < len(raw); off += frame.Size {
		status, err := dec.ProcessFrame(raw[off : off+frame.Size])
		if err != nil {
			t.Fatalf("ProcessFrame: %v", err)
		}
		if status == PacketReady {
			t.Fatalf("got PacketReady without the first fragment")
		}
	}
}

func TestMACReorderTriggersSilentReset(t *testing.T) {
	enc, _ := New(fec.NoFEC, 1)
	data := samplePacket(358)
	if err := enc.EncodePacket(data); err != nil {
		t.Fatalf("EncodePacket: %v", err)
	}
	raw := enc.FrameBuffer()
	numFrames := len(raw) / frame.Size
	if numFrames < 3 {
		t.Fatalf("need at least 3 frames, got %d", numFrames)
	}

	// Swap frames 1 and 2 so the index sequence decreases mid-stream.
	reordered := append([]byte{}, raw...)
	copy(reordered[1*frame.Size:2*frame.Size], raw[2*frame.Size:3*frame.Size])
	copy(reordered[2*frame.Size:3*frame.Size], raw[1*frame.Size:2*frame.Size])

	dec, _ := New(fec.NoFEC, 1)
	sawPacketReady := false
	for off := 0; off < len(reordered); off += frame.Size {
		status, err := dec.ProcessFrame(reordered[off : off+frame.Size])
		if err != nil {
			continue
		}
		if status == PacketReady {
			sawPacketReady = true
		}
	}
	if sawPacketReady {
		t.Fatalf("reordered sequence unexpectedly produced PacketReady")
	}
}

func TestMACLostFrameReplacedByZeros(t *testing.T) {
	// Test seed 6: MAC receive of a stream where frame 3 of 7 is
	// replaced by 128 zero bytes.
	enc, _ := New(fec.CCSDSConvolutionalCodingR12, 1)
	data := samplePacket(358)
	if err := enc.EncodePacket(data); err != nil {
		t.Fatalf("EncodePacket: %v", err)
	}
	raw := enc.FrameBuffer()
	numFrames := len(raw) / frame.Size
	if numFrames != 7 {
		t.Fatalf("expected 7 frames for this scenario, got %d", numFrames)
	}

	zeroed := append([]byte{}, raw...)
	for i := range zeroed[2*frame.Size : 3*frame.Size] {
		zeroed[2*frame.Size+i] = 0
	}

	dec, _ := New(fec.CCSDSConvolutionalCodingR12, 1)
	status, err := feedFrames(t, dec, zeroed)
	if err != nil {
		t.Fatalf("ProcessFrame: %v", err)
	}
	if status != PacketReady {
		t.Fatalf("status = %v, want PacketReady", status)
	}
	if len(dec.PacketBuffer()) != PrefixSize+len(data) {
		t.Fatalf("packet length = %d, want %d", len(dec.PacketBuffer()), PrefixSize+len(data))
	}
}

func TestMACSetFECSchemeResetsReceiveState(t *testing.T) {
	enc, _ := New(fec.NoFEC, 1)
	// 358 bytes span several frames, so an assembly is still in progress
	// after the first one.
	data := samplePacket(358)
	if err := enc.EncodePacket(data); err != nil {
		t.Fatalf("EncodePacket: %v", err)
	}
	raw := enc.FrameBuffer()

	dec, _ := New(fec.NoFEC, 1)
	if _, err := dec.ProcessFrame(raw[:frame.Size]); err != nil {
		t.Fatalf("ProcessFrame: %v", err)
	}
	if err := dec.SetFECScheme(fec.CCSDSConvolutionalCodingR12); err != nil {
		t.Fatalf("SetFECScheme: %v", err)
	}
	if dec.decodeState.firstFragmentSeen {
		t.Fatalf("expected receive state reset after FEC scheme change")
	}
}
