package fec

import (
	"math/bits"

	"github.com/ex2-sdr/uhfmac/bitpack"
)

// ConvProfile parameterizes the hard-decision Viterbi codec: a
// constraint length K and a set of generator polynomials, each less
// than 2^K and non-zero. Grounded on
// original_source/third_party/viterbi/viterbi.cpp's ViterbiCodec
// constructor.
type ConvProfile struct {
	K    int
	Poly []int
}

// ConvProfileProduction is the CCSDS rate-1/2 convolutional profile
// (K=7, octal generators 171/133), the production scheme referenced
// by original_source/include/error_control/ConvolutionalCodecHD.hpp
// (commented out in favor of ConvProfileDevTest in that file, per
// SPEC_FULL.md's supplemented Open Question note).
var ConvProfileProduction = ConvProfile{K: 7, Poly: []int{0o171, 0o133}}

// ConvProfileDevTest is the reduced-memory K=3 profile
// original_source/lib/error_control/ConvolutionalCodecHD.cpp actually
// instantiates in place of ConvProfileProduction, per its own comment
// ("for dev of memory-reduced algorithm").
var ConvProfileDevTest = ConvProfile{K: 3, Poly: []int{7, 5}}

// viterbiCodec implements encode/decode for one ConvProfile, operating
// on one-bit-per-byte bit slices (the same representation
// bitpack.Repack produces for bps=1). Ported from
// original_source/third_party/viterbi/viterbi.cpp.
type viterbiCodec struct {
	profile    ConvProfile
	numStates  int
	outputBits int            // bits emitted per input bit = len(profile.Poly)
	outputs    [][2]uint32     // outputs[state][input] = outputBits-wide output, MSB-first across polynomials
}

func newViterbiCodec(p ConvProfile) *viterbiCodec {
	numStates := 1 << uint(p.K-1)
	c := &viterbiCodec{
		profile:    p,
		numStates:  numStates,
		outputBits: len(p.Poly),
		outputs:    make([][2]uint32, numStates),
	}
	reversedPoly := make([]uint32, len(p.Poly))
	for i, poly := range p.Poly {
		reversedPoly[i] = reverseBits(p.K, uint32(poly))
	}
	for state := 0; state < numStates; state++ {
		for input := 0; input <= 1; input++ {
			reg := uint32(input<<uint(p.K-1)) | uint32(state)
			var out uint32
			for _, poly := range reversedPoly {
				out = (out << 1) | uint32(bits.OnesCount32(reg&poly)&1)
			}
			c.outputs[state][input] = out
		}
	}
	return c
}

func reverseBits(numBits int, v uint32) uint32 {
	var out uint32
	for i := 0; i < numBits; i++ {
		out = (out << 1) | (v & 1)
		v >>= 1
	}
	return out
}

func (c *viterbiCodec) nextState(state, input int) int {
	return (state >> 1) | (input << uint(c.profile.K-2))
}

// encode maps a 1-bit-per-byte message to a 1-bit-per-byte output
// stream of len(message)*outputBits bits.
func (c *viterbiCodec) encode(message []byte) []byte {
	out := make([]byte, 0, len(message)*c.outputBits)
	state := 0
	for _, mb := range message {
		input := int(mb & 1)
		outBits := c.outputs[state][input]
		for i := c.outputBits - 1; i >= 0; i-- {
			out = append(out, byte((outBits>>uint(i))&1))
		}
		state = c.nextState(state, input)
	}
	return out
}

const metricInf = int(^uint(0) >> 1)

// decode performs hard-decision Viterbi decoding of a 1-bit-per-byte
// received stream, returning one decoded message bit per group of
// outputBits received bits (the trailing partial group, if any, is
// zero-padded before decoding, per viterbi.cpp's decode()).
func (c *viterbiCodec) decode(received []byte) []byte {
	groups := len(received) / c.outputBits
	if len(received)%c.outputBits != 0 {
		groups++
	}
	padded := received
	if rem := len(received) % c.outputBits; rem != 0 {
		padded = make([]byte, groups*c.outputBits)
		copy(padded, received)
	}

	pathMetric := make([]int, c.numStates)
	for i := range pathMetric {
		pathMetric[i] = metricInf
	}
	pathMetric[0] = 0

	type trellisEntry struct {
		prevState int
		input     int
	}
	trellis := make([][]trellisEntry, groups)

	for g := 0; g < groups; g++ {
		var received32 uint32
		for i := 0; i < c.outputBits; i++ {
			received32 = (received32 << 1) | uint32(padded[g*c.outputBits+i]&1)
		}

		newMetric := make([]int, c.numStates)
		for i := range newMetric {
			newMetric[i] = metricInf
		}
		column := make([]trellisEntry, c.numStates)
		for s := range column {
			column[s] = trellisEntry{prevState: -1}
		}

		for prev := 0; prev < c.numStates; prev++ {
			if pathMetric[prev] == metricInf {
				continue
			}
			for input := 0; input <= 1; input++ {
				next := c.nextState(prev, input)
				outBits := c.outputs[prev][input]
				dist := bits.OnesCount32(outBits ^ received32)
				metric := pathMetric[prev] + dist

				better := metric < newMetric[next]
				tie := metric == newMetric[next] && (column[next].prevState == -1 || prev < column[next].prevState)
				if better || tie {
					newMetric[next] = metric
					column[next] = trellisEntry{prevState: prev, input: input}
				}
			}
		}

		trellis[g] = column
		pathMetric = newMetric
	}

	best := 0
	for s := 1; s < c.numStates; s++ {
		if pathMetric[s] < pathMetric[best] {
			best = s
		}
	}

	decoded := make([]byte, groups)
	state := best
	for g := groups - 1; g >= 0; g-- {
		entry := trellis[g][state]
		decoded[g] = byte(entry.input)
		state = entry.prevState
	}

	return decoded
}

// convolutionalHD adapts viterbiCodec to operate on byte-packed
// messages/codewords (8 bits per symbol), matching
// original_source/lib/error_control/ConvolutionalCodecHD.cpp, which
// repacks 8bps<->1bps around the raw bit-level codec.
type convolutionalHD struct {
	codec *viterbiCodec
	info  Info
}

func newConvolutionalHD(profile ConvProfile, info Info) *convolutionalHD {
	return &convolutionalHD{codec: newViterbiCodec(profile), info: info}
}

func (c *convolutionalHD) SchemeInfo() Info { return c.info }

func (c *convolutionalHD) Encode(message []byte) ([]byte, error) {
	bits1 := bitpack.Repack(message, 8, 1)
	encoded1 := c.codec.encode(bits1)
	return bitpack.Repack(encoded1, 1, 8), nil
}

// Decode always reports zero bit errors on success: hard-decision
// Viterbi decoding cannot estimate how many channel bit errors it
// corrected, per original_source's ConvolutionalCodecHD.cpp and
// SPEC_FULL.md §4.4.
func (c *convolutionalHD) Decode(codeword []byte, _ float64) ([]byte, uint32, error) {
	bits1 := bitpack.Repack(codeword, 8, 1)
	decoded1 := c.codec.decode(bits1)
	return bitpack.Repack(decoded1, 1, 8), 0, nil
}
