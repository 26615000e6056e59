package fec

// blockSchemeInfo returns the fixed (codeword, message, rate) tuple for
// block-coded schemes (Reed-Solomon, Turbo, LDPC Orange Book,
// QC-LDPC), reproducing the constants from error_correction.cpp's
// m_codewordLength/m_messageLength tables. None of these schemes have
// a working Codec in this module (see Implemented) — only their
// metadata is reproduced, per SPEC_FULL.md's supplemented tables
// section.
func blockSchemeInfo(s Scheme) (Info, bool) {
	if info, ok := reedSolomonInfo(s); ok {
		return info, true
	}
	if info, ok := turboInfo(s); ok {
		return info, true
	}
	if info, ok := ldpcOrangeBookInfo(s); ok {
		return info, true
	}
	if info, ok := qcldpcInfo(s); ok {
		return info, true
	}
	return Info{}, false
}

func reedSolomonInfo(s Scheme) (Info, bool) {
	type rs struct {
		message    int
		interleave int
	}
	table := map[Scheme]rs{
		CCSDSReedSolomon255_239Interleaving1: {239, 1},
		CCSDSReedSolomon255_239Interleaving2: {239, 2},
		CCSDSReedSolomon255_239Interleaving3: {239, 3},
		CCSDSReedSolomon255_239Interleaving4: {239, 4},
		CCSDSReedSolomon255_239Interleaving5: {239, 5},
		CCSDSReedSolomon255_239Interleaving8: {239, 8},
		CCSDSReedSolomon255_223Interleaving1: {223, 1},
		CCSDSReedSolomon255_223Interleaving2: {223, 2},
		CCSDSReedSolomon255_223Interleaving3: {223, 3},
		CCSDSReedSolomon255_223Interleaving4: {223, 4},
		CCSDSReedSolomon255_223Interleaving5: {223, 5},
		CCSDSReedSolomon255_223Interleaving8: {223, 8},
	}
	e, ok := table[s]
	if !ok {
		return Info{}, false
	}
	n := uint32(255 * 8 * e.interleave)
	k := uint32(e.message * 8 * e.interleave)
	return Info{CodewordLenBits: n, MessageLenBits: k, Rate: float64(k) / float64(n)}, true
}

func turboInfo(s Scheme) (Info, bool) {
	type turbo struct {
		k           int
		denominator int // codeword = k * denominator, for rate 1/denominator
	}
	// error_correction.hpp names each scheme only by (k, rate); the
	// codeword length follows directly from codeword = k/rate since
	// CCSDS 131.0-B-3 turbo codes carry no additional framing bits.
	table := map[Scheme]turbo{
		CCSDSTurbo1784R12: {1784, 2},
		CCSDSTurbo1784R13: {1784, 3},
		CCSDSTurbo1784R14: {1784, 4},
		CCSDSTurbo1784R16: {1784, 6},
		CCSDSTurbo3568R12: {3568, 2},
		CCSDSTurbo3568R13: {3568, 3},
		CCSDSTurbo3568R14: {3568, 4},
		CCSDSTurbo3568R16: {3568, 6},
		CCSDSTurbo7136R12: {7136, 2},
		CCSDSTurbo7136R13: {7136, 3},
		CCSDSTurbo7136R14: {7136, 4},
		CCSDSTurbo7136R16: {7136, 6},
		CCSDSTurbo8920R12: {8920, 2},
		CCSDSTurbo8920R13: {8920, 3},
		CCSDSTurbo8920R14: {8920, 4},
		CCSDSTurbo8920R16: {8920, 6},
	}
	e, ok := table[s]
	if !ok {
		return Info{}, false
	}
	codeword := e.k * e.denominator
	return Info{
		CodewordLenBits: uint32(codeword),
		MessageLenBits:  uint32(e.k),
		Rate:            float64(e.k) / float64(codeword),
	}, true
}

func ldpcOrangeBookInfo(s Scheme) (Info, bool) {
	table := map[Scheme]int{
		CCSDSLDPCOrangeBook1280: 1280,
		CCSDSLDPCOrangeBook1536: 1536,
		CCSDSLDPCOrangeBook2048: 2048,
	}
	n, ok := table[s]
	if !ok {
		return Info{}, false
	}
	const k = 1024
	return Info{CodewordLenBits: uint32(n), MessageLenBits: k, Rate: float64(k) / float64(n)}, true
}

func qcldpcInfo(s Scheme) (Info, bool) {
	// p/q is the rate as an exact reduced fraction, not a float64: n is
	// always a multiple of q for every tabulated (n, rate) pair here, so
	// k = n*p/q divides evenly and matches Rate = k/n exactly instead of
	// drifting from floating-point truncation (e.g. 648*(2.0/3.0) as a
	// float evaluates to just under 432).
	type qc struct {
		n    int
		p, q int
	}
	table := map[Scheme]qc{
		IEEE80211nQCLDPC648R12:  {648, 1, 2},
		IEEE80211nQCLDPC648R23:  {648, 2, 3},
		IEEE80211nQCLDPC648R34:  {648, 3, 4},
		IEEE80211nQCLDPC648R56:  {648, 5, 6},
		IEEE80211nQCLDPC1296R12: {1296, 1, 2},
		IEEE80211nQCLDPC1296R23: {1296, 2, 3},
		IEEE80211nQCLDPC1296R34: {1296, 3, 4},
		IEEE80211nQCLDPC1296R56: {1296, 5, 6},
		IEEE80211nQCLDPC1944R12: {1944, 1, 2},
		IEEE80211nQCLDPC1944R23: {1944, 2, 3},
		IEEE80211nQCLDPC1944R34: {1944, 3, 4},
		IEEE80211nQCLDPC1944R56: {1944, 5, 6},
	}
	e, ok := table[s]
	if !ok {
		return Info{}, false
	}
	k := uint32(e.n * e.p / e.q)
	return Info{CodewordLenBits: uint32(e.n), MessageLenBits: k, Rate: float64(k) / float64(e.n)}, true
}
