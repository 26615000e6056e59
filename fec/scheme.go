// Package fec provides a registry of forward-error-correction schemes
// (the CCSDS/IEEE catalog used by the UHF data-link layer) and the
// Codec capability set implementations are expected to satisfy. Two
// schemes have working codecs: NoFEC (pass-through) and the CCSDS
// rate-1/2 convolutional code (hard-decision Viterbi). All other
// catalog entries are accepted for metadata queries but have no codec.
package fec

import "errors"

// Scheme identifies one entry of the FEC catalog.
type Scheme uint16

// The FEC catalog, mirroring the CCSDS/IEEE scheme enumeration bit for
// bit: convolutional codes, Reed-Solomon, CCSDS Turbo, CCSDS LDPC
// Orange Book, and IEEE 802.11n QC-LDPC, followed by the explicit
// no-FEC value and a sentinel last value.
const (
	CCSDSConvolutionalCodingR12 Scheme = 0x0000
	CCSDSConvolutionalCodingR23 Scheme = 0x0001
	CCSDSConvolutionalCodingR34 Scheme = 0x0002
	CCSDSConvolutionalCodingR56 Scheme = 0x0003
	CCSDSConvolutionalCodingR78 Scheme = 0x0004

	CCSDSReedSolomon255_239Interleaving1 Scheme = 0x0005
	CCSDSReedSolomon255_239Interleaving2 Scheme = 0x0006
	CCSDSReedSolomon255_239Interleaving3 Scheme = 0x0007
	CCSDSReedSolomon255_239Interleaving4 Scheme = 0x0008
	CCSDSReedSolomon255_239Interleaving5 Scheme = 0x0009
	CCSDSReedSolomon255_239Interleaving8 Scheme = 0x000A
	CCSDSReedSolomon255_223Interleaving1 Scheme = 0x000B
	CCSDSReedSolomon255_223Interleaving2 Scheme = 0x000C
	CCSDSReedSolomon255_223Interleaving3 Scheme = 0x000D
	CCSDSReedSolomon255_223Interleaving4 Scheme = 0x000E
	CCSDSReedSolomon255_223Interleaving5 Scheme = 0x000F
	CCSDSReedSolomon255_223Interleaving8 Scheme = 0x0010

	CCSDSTurbo1784R12 Scheme = 0x0011
	CCSDSTurbo1784R13 Scheme = 0x0012
	CCSDSTurbo1784R14 Scheme = 0x0013
	CCSDSTurbo1784R16 Scheme = 0x0014
	CCSDSTurbo3568R12 Scheme = 0x0015
	CCSDSTurbo3568R13 Scheme = 0x0016
	CCSDSTurbo3568R14 Scheme = 0x0017
	CCSDSTurbo3568R16 Scheme = 0x0018
	CCSDSTurbo7136R12 Scheme = 0x0019
	CCSDSTurbo7136R13 Scheme = 0x001A
	CCSDSTurbo7136R14 Scheme = 0x001B
	CCSDSTurbo7136R16 Scheme = 0x001C
	CCSDSTurbo8920R12 Scheme = 0x001D
	CCSDSTurbo8920R13 Scheme = 0x001E
	CCSDSTurbo8920R14 Scheme = 0x001F
	CCSDSTurbo8920R16 Scheme = 0x0020

	CCSDSLDPCOrangeBook1280 Scheme = 0x0021
	CCSDSLDPCOrangeBook1536 Scheme = 0x0022
	CCSDSLDPCOrangeBook2048 Scheme = 0x0023

	IEEE80211nQCLDPC648R12  Scheme = 0x0024
	IEEE80211nQCLDPC648R23  Scheme = 0x0025
	IEEE80211nQCLDPC648R34  Scheme = 0x0026
	IEEE80211nQCLDPC648R56  Scheme = 0x0027
	IEEE80211nQCLDPC1296R12 Scheme = 0x0028
	IEEE80211nQCLDPC1296R23 Scheme = 0x0029
	IEEE80211nQCLDPC1296R34 Scheme = 0x002A
	IEEE80211nQCLDPC1296R56 Scheme = 0x002B
	IEEE80211nQCLDPC1944R12 Scheme = 0x002C
	IEEE80211nQCLDPC1944R23 Scheme = 0x002D
	IEEE80211nQCLDPC1944R34 Scheme = 0x002E
	IEEE80211nQCLDPC1944R56 Scheme = 0x002F

	NoFEC Scheme = 0x0030
	Last  Scheme = 0x0031
)

// Rate is one of the fixed coding rates a Scheme may map to.
type Rate uint16

const (
	RateStart Rate = 0x0000
	Rate16    Rate = 0x0001
	Rate15    Rate = 0x0002
	Rate14    Rate = 0x0003
	Rate13    Rate = 0x0004
	Rate12    Rate = 0x0005
	Rate23    Rate = 0x0006
	Rate34    Rate = 0x0007
	Rate45    Rate = 0x0008
	Rate56    Rate = 0x0009
	Rate78    Rate = 0x000A
	Rate89    Rate = 0x0010
	Rate1     Rate = 0x0011 // used for NoFEC
	RateNA    Rate = 0x0012
	RateBad   Rate = 0x0013
	RateLast  Rate = 0x0014
)

// fractionalRate returns the rate expressed as k/n, matching
// error_correction.cpp's m_codingRateToFractionalRate table.
func fractionalRate(r Rate) float64 {
	p, q, ok := rateFraction(r)
	if !ok {
		return 0
	}
	return float64(p) / float64(q)
}

// rateFraction returns the rate as a reduced integer fraction p/q, the
// same table as fractionalRate but kept exact so SchemeInfo can size
// convolutional codewords without rounding error.
func rateFraction(r Rate) (p, q uint32, ok bool) {
	switch r {
	case Rate16:
		return 1, 6, true
	case Rate15:
		return 1, 5, true
	case Rate14:
		return 1, 4, true
	case Rate13:
		return 1, 3, true
	case Rate12:
		return 1, 2, true
	case Rate23:
		return 2, 3, true
	case Rate34:
		return 3, 4, true
	case Rate45:
		return 4, 5, true
	case Rate56:
		return 5, 6, true
	case Rate78:
		return 7, 8, true
	case Rate89:
		return 8, 9, true
	case Rate1:
		return 1, 1, true
	default:
		return 0, 0, false
	}
}

// Errors returned by the registry and codec constructors.
var (
	ErrInvalidScheme      = errors.New("fec: invalid scheme")
	ErrNoRateForScheme    = errors.New("fec: scheme has no defined rate")
	ErrUnimplementedCodec = errors.New("fec: codec not implemented for scheme")
	ErrFecEncodeFailed    = errors.New("fec: encode failed")
)

// MaxMTU is the payload region of one 128-byte MPDU frame, per the
// header codec's fixed 9-byte size: 128 - 9 = 119 bytes.
const MaxMTU = 119

// DefaultMaxContinuousCodewordLen is the default maximum continuous
// (convolutional) codeword length in bits, matching the MPDU MTU:
// 119 * 8 = 952 bits.
const DefaultMaxContinuousCodewordLen = MaxMTU * 8

// UnimplementedBitErrors is the sentinel bit-error count reported by
// the decode of an unimplemented scheme.
const UnimplementedBitErrors = ^uint32(0)

// Info holds the metadata the registry exposes for a scheme:
// codeword length and message length in bits, and the coding rate.
type Info struct {
	CodewordLenBits uint32
	MessageLenBits  uint32
	Rate            float64
}

// rate returns the CodingRate a scheme maps to, per
// error_correction.cpp's m_getCodingRate table.
func rate(s Scheme) (Rate, bool) {
	switch s {
	case CCSDSConvolutionalCodingR12:
		return Rate12, true
	case CCSDSConvolutionalCodingR23:
		return Rate23, true
	case CCSDSConvolutionalCodingR34:
		return Rate34, true
	case CCSDSConvolutionalCodingR56:
		return Rate56, true
	case CCSDSConvolutionalCodingR78:
		return Rate78, true
	case CCSDSReedSolomon255_239Interleaving1, CCSDSReedSolomon255_239Interleaving2,
		CCSDSReedSolomon255_239Interleaving3, CCSDSReedSolomon255_239Interleaving4,
		CCSDSReedSolomon255_239Interleaving5, CCSDSReedSolomon255_239Interleaving8:
		return rsRate(239), true
	case CCSDSReedSolomon255_223Interleaving1, CCSDSReedSolomon255_223Interleaving2,
		CCSDSReedSolomon255_223Interleaving3, CCSDSReedSolomon255_223Interleaving4,
		CCSDSReedSolomon255_223Interleaving5, CCSDSReedSolomon255_223Interleaving8:
		return rsRate(223), true
	case CCSDSTurbo1784R12, CCSDSTurbo3568R12, CCSDSTurbo7136R12, CCSDSTurbo8920R12:
		return Rate12, true
	case CCSDSTurbo1784R13, CCSDSTurbo3568R13, CCSDSTurbo7136R13, CCSDSTurbo8920R13:
		return Rate13, true
	case CCSDSTurbo1784R14, CCSDSTurbo3568R14, CCSDSTurbo7136R14, CCSDSTurbo8920R14:
		return Rate14, true
	case CCSDSTurbo1784R16, CCSDSTurbo3568R16, CCSDSTurbo7136R16, CCSDSTurbo8920R16:
		return Rate16, true
	case CCSDSLDPCOrangeBook1280, CCSDSLDPCOrangeBook1536, CCSDSLDPCOrangeBook2048:
		return RateNA, false // fixed k/n below; rate computed from lengths, not looked up
	case IEEE80211nQCLDPC648R12, IEEE80211nQCLDPC1296R12, IEEE80211nQCLDPC1944R12:
		return Rate12, true
	case IEEE80211nQCLDPC648R23, IEEE80211nQCLDPC1296R23, IEEE80211nQCLDPC1944R23:
		return Rate23, true
	case IEEE80211nQCLDPC648R34, IEEE80211nQCLDPC1296R34, IEEE80211nQCLDPC1944R34:
		return Rate34, true
	case IEEE80211nQCLDPC648R56, IEEE80211nQCLDPC1296R56, IEEE80211nQCLDPC1944R56:
		return Rate56, true
	case NoFEC:
		return Rate1, true
	default:
		return RateBad, false
	}
}

// rsRate returns a placeholder unused by callers; Reed-Solomon rate is
// computed directly from (n,k) in SchemeInfo rather than the fixed
// rate table, since 239/255 and 223/255 are not members of the fixed
// rate enumeration.
func rsRate(_ int) Rate { return RateNA }

// SchemeInfo returns the codeword length, message length (both in
// bits) and rate for scheme s. max_continuous_cw_len configures
// continuous (convolutional) schemes; pass 0 to use
// DefaultMaxContinuousCodewordLen. Every catalog tag including the 47
// schemes with no working Codec is accepted here (metadata is always
// available); only codec construction is restricted to implemented
// schemes, see Implemented and NewCodec.
func SchemeInfo(s Scheme, maxContinuousCwLen uint32) (Info, error) {
	if s >= Last {
		return Info{}, ErrInvalidScheme
	}
	if maxContinuousCwLen == 0 {
		maxContinuousCwLen = DefaultMaxContinuousCodewordLen
	}

	if s == NoFEC {
		return Info{
			CodewordLenBits: maxContinuousCwLen,
			MessageLenBits:  maxContinuousCwLen,
			Rate:            1.0,
		}, nil
	}

	if isConvolutional(s) {
		r, ok := rate(s)
		if !ok {
			return Info{}, ErrNoRateForScheme
		}
		p, q, ok := rateFraction(r)
		if !ok {
			return Info{}, ErrNoRateForScheme
		}
		// maxContinuousCwLen bounds the codeword length n. Scaling by
		// t=8*q keeps n a multiple of 8 (byte alignment) and k=8*p*t
		// an exact multiple of p, so n=k*q/p divides evenly.
		t := maxContinuousCwLen / (8 * q)
		if t == 0 {
			t = 1
		}
		k := 8 * p * t
		n := 8 * q * t
		return Info{CodewordLenBits: n, MessageLenBits: k, Rate: float64(p) / float64(q)}, nil
	}

	if info, ok := blockSchemeInfo(s); ok {
		return info, nil
	}

	return Info{}, ErrNoRateForScheme
}

func isConvolutional(s Scheme) bool {
	switch s {
	case CCSDSConvolutionalCodingR12, CCSDSConvolutionalCodingR23, CCSDSConvolutionalCodingR34,
		CCSDSConvolutionalCodingR56, CCSDSConvolutionalCodingR78:
		return true
	default:
		return false
	}
}

// Implemented reports whether the registry can construct a working
// Codec for scheme s. Every other catalog tag is metadata-only.
func Implemented(s Scheme) bool {
	return s == NoFEC || s == CCSDSConvolutionalCodingR12
}
