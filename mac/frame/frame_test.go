package frame

import (
	"bytes"
	"testing"

	"github.com/ex2-sdr/uhfmac/fec"
	"github.com/ex2-sdr/uhfmac/mac/header"
)

func sampleHeader() header.Header {
	return header.Header{
		Modulation:              2,
		FECScheme:               fec.CCSDSConvolutionalCodingR12,
		CodewordFragmentIndex:   3,
		UserPacketPayloadLength: 500,
		UserPacketFragmentIndex: 0,
	}
}

func TestNewZeroPadsShortPayload(t *testing.T) {
	payload := []byte{1, 2, 3}
	f, err := New(sampleHeader(), payload)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !bytes.Equal(f.Payload[:len(payload)], payload) {
		t.Fatalf("payload prefix mismatch")
	}
	for _, b := range f.Payload[len(payload):] {
		if b != 0 {
			t.Fatalf("expected zero padding beyond payload")
		}
	}
}

func TestNewRejectsOverflow(t *testing.T) {
	payload := make([]byte, MTU+1)
	if _, err := New(sampleHeader(), payload); err != ErrFrameOverflow {
		t.Fatalf("New(overflow) = %v, want ErrFrameOverflow", err)
	}
}

func TestEncodeParseRoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte{0xAB}, MTU)
	f, err := New(sampleHeader(), payload)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	raw := f.Encode()
	if len(raw) != Size {
		t.Fatalf("Encode length = %d, want %d", len(raw), Size)
	}

	parsed, err := Parse(raw[:])
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if parsed.Header != f.Header {
		t.Fatalf("header mismatch: got %+v, want %+v", parsed.Header, f.Header)
	}
	if parsed.Payload != f.Payload {
		t.Fatalf("payload mismatch")
	}
}

func TestParseRejectsBadLength(t *testing.T) {
	if _, err := Parse(make([]byte, Size-1)); err != ErrBadFrameLength {
		t.Fatalf("Parse(short) = %v, want ErrBadFrameLength", err)
	}
	if _, err := Parse(make([]byte, Size+1)); err != ErrBadFrameLength {
		t.Fatalf("Parse(long) = %v, want ErrBadFrameLength", err)
	}
}

func TestNumFramesFor(t *testing.T) {
	cases := []struct {
		b, msgLen, cwLen uint32
		want             uint32
	}{
		{0, 59, 118, 0},
		{1, 59, 118, 1},
		{59, 59, 118, 1},
		{60, 59, 118, 2},
		{4105, 59, 118, 70},
	}
	for _, c := range cases {
		got := NumFramesFor(c.b, c.msgLen, c.cwLen)
		if got != c.want {
			t.Fatalf("NumFramesFor(%d,%d,%d) = %d, want %d", c.b, c.msgLen, c.cwLen, got, c.want)
		}
	}
}
