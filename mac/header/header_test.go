package header

import (
	"testing"

	"github.com/ex2-sdr/uhfmac/fec"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []Header{
		{Modulation: 0, FECScheme: fec.NoFEC, CodewordFragmentIndex: 0, UserPacketPayloadLength: 0, UserPacketFragmentIndex: 0},
		{Modulation: 7, FECScheme: fec.CCSDSConvolutionalCodingR12, CodewordFragmentIndex: 127, UserPacketPayloadLength: 4095, UserPacketFragmentIndex: 255},
		{Modulation: 3, FECScheme: fec.CCSDSTurbo7136R14, CodewordFragmentIndex: 64, UserPacketPayloadLength: 2048, UserPacketFragmentIndex: 17},
	}

	for _, h := range cases {
		raw := Encode(h)
		if len(raw) != Size {
			t.Fatalf("Encode length = %d, want %d", len(raw), Size)
		}
		got, err := Decode(raw[:])
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if got != h {
			t.Fatalf("round trip = %+v, want %+v", got, h)
		}
	}
}

func TestDecodeTooShort(t *testing.T) {
	if _, err := Decode(make([]byte, Size-1)); err != ErrBadHeader {
		t.Fatalf("Decode(short) = %v, want ErrBadHeader", err)
	}
}

func TestDecodeCorrectsBitErrors(t *testing.T) {
	h := Header{Modulation: 5, FECScheme: fec.CCSDSConvolutionalCodingR12, CodewordFragmentIndex: 42, UserPacketPayloadLength: 1000, UserPacketFragmentIndex: 9}
	raw := Encode(h)

	// Flip up to 3 bits within the first Golay word (bytes 0..2); the
	// header must still decode correctly.
	corrupted := raw
	corrupted[0] ^= 0x01
	corrupted[1] ^= 0x80
	corrupted[2] ^= 0x02

	got, err := Decode(corrupted[:])
	if err != nil {
		t.Fatalf("Decode with 3 bit errors: %v", err)
	}
	if got != h {
		t.Fatalf("decoded = %+v, want %+v", got, h)
	}
}

// TestEncodeDecodeFieldSpace exercises parse(serialize(x)) == x across
// the full valid field space. A dense stride keeps the case count
// small while still touching every field's low, middle, and high bits
// independently.
func TestEncodeDecodeFieldSpace(t *testing.T) {
	schemes := []fec.Scheme{fec.CCSDSConvolutionalCodingR12, fec.CCSDSTurbo7136R14, fec.NoFEC}

	for mod := uint8(0); mod < 8; mod++ {
		for _, scheme := range schemes {
			for _, cwfi := range []uint8{0, 1, 63, 64, 126, 127} {
				for _, upl := range []uint16{0, 1, 2047, 2048, 4094, 4095} {
					for _, upfi := range []uint8{0, 1, 128, 254, 255} {
						h := Header{
							Modulation:              mod,
							FECScheme:               scheme,
							CodewordFragmentIndex:   cwfi,
							UserPacketPayloadLength: upl,
							UserPacketFragmentIndex: upfi,
						}
						raw := Encode(h)
						got, err := Decode(raw[:])
						if err != nil {
							t.Fatalf("Decode(%+v): %v", h, err)
						}
						if got != h {
							t.Fatalf("round trip %+v = %+v", h, got)
						}
					}
				}
			}
		}
	}
}

func TestDecodeRejectsUnknownScheme(t *testing.T) {
	h := Header{Modulation: 1, FECScheme: fec.Last, CodewordFragmentIndex: 0, UserPacketPayloadLength: 0, UserPacketFragmentIndex: 0}
	raw := Encode(h)
	if _, err := Decode(raw[:]); err != ErrBadHeader {
		t.Fatalf("Decode(unknown scheme) = %v, want ErrBadHeader", err)
	}
}
