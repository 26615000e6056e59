package bitpack

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestRepackIdentity(t *testing.T) {
	in := []byte{0x12, 0x34, 0x56}
	out := Repack(in, 8, 8)
	if !bytes.Equal(in, out) {
		t.Fatalf("identity repack changed data: %x -> %x", in, out)
	}
}

func TestRepack8to1(t *testing.T) {
	in := []byte{0xA5}
	want := []byte{1, 0, 1, 0, 0, 1, 0, 1}
	got := Repack(in, 8, 1)
	if !bytes.Equal(got, want) {
		t.Fatalf("8->1 repack = %v, want %v", got, want)
	}
}

func TestRepack1to8(t *testing.T) {
	in := []byte{1, 0, 1, 0, 0, 1, 0, 1}
	want := []byte{0xA5}
	got := Repack(in, 1, 8)
	if !bytes.Equal(got, want) {
		t.Fatalf("1->8 repack = %x, want %x", got, want)
	}
}

func TestRepackRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 200; trial++ {
		bps := 1 + rng.Intn(8)
		// pick a byte length such that 8*len is a multiple of bps
		n := 0
		for n == 0 || (n*8)%bps != 0 {
			n++
		}
		in := make([]byte, n)
		rng.Read(in)

		mid := Repack(in, 8, bps)
		out := Repack(mid, bps, 8)

		if !bytes.Equal(in, out) {
			t.Fatalf("round trip at bps=%d failed: in=%x mid=%x out=%x", bps, in, mid, out)
		}
	}
}

func TestReverseByteLevel(t *testing.T) {
	in := []byte{0x01, 0x02, 0x03}
	want := []byte{0x03, 0x02, 0x01}
	got := Reverse(in, 8, true)
	if !bytes.Equal(got, want) {
		t.Fatalf("byte-level reverse = %x, want %x", got, want)
	}
}

func TestReverseTwiceIsIdentity(t *testing.T) {
	in := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	for _, bps := range []int{1, 2, 4, 8} {
		// Keep only the low bps bits of each byte: those are the symbol bits.
		sym := make([]byte, len(in))
		for i, b := range in {
			sym[i] = b & byte((1<<uint(bps))-1)
		}
		once := Reverse(sym, bps, false)
		twice := Reverse(once, bps, false)
		if !bytes.Equal(sym, twice) {
			t.Fatalf("reverse twice at bps=%d not identity: in=%x twice=%x", bps, sym, twice)
		}
	}
}

func TestRollThenUnrollIsIdentity(t *testing.T) {
	in := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	for _, bps := range []int{1, 2, 4, 8} {
		// Keep only the low bps bits of each byte: those are the symbol bits.
		sym := make([]byte, len(in))
		for i, b := range in {
			sym[i] = b & byte((1<<uint(bps))-1)
		}
		for _, n := range []uint32{1, 3, 7, 15, 31} {
			rolled := Roll(sym, bps, n, true)
			back := Roll(rolled, bps, n, false)
			if !bytes.Equal(sym, back) {
				t.Fatalf("roll/unroll at bps=%d n=%d not identity: in=%x back=%x", bps, n, sym, back)
			}
		}
	}
}

func TestRollZeroIsIdentity(t *testing.T) {
	in := []byte{0x01, 0x02}
	got := Roll(in, 8, 0, true)
	if !bytes.Equal(in, got) {
		t.Fatalf("roll by 0 changed data")
	}
}
