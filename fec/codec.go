package fec

// Codec is the capability set an FEC scheme implementation exposes:
// encode a message to a codeword, and decode a (possibly corrupted)
// codeword back to a message along with a bit-error estimate. This
// mirrors original_source's FEC abstract base
// (include/error_control/FEC.hpp) as a small Go interface rather than
// a class hierarchy, per the teacher's own preference for narrow
// interfaces (transport.RadioDriver) over inheritance.
type Codec interface {
	// Encode maps a message of exactly Info.MessageLenBits/8 bytes to
	// a codeword of exactly Info.CodewordLenBits/8 bytes.
	Encode(message []byte) ([]byte, error)

	// Decode maps a codeword of exactly Info.CodewordLenBits/8 bytes
	// back to a message of exactly Info.MessageLenBits/8 bytes, along
	// with an estimate of the number of bit errors corrected. Both
	// implemented codecs report 0: NoFEC corrects nothing, and the
	// hard-decision Viterbi codec cannot estimate the count.
	Decode(codeword []byte, snrEstimate float64) ([]byte, uint32, error)

	// SchemeInfo returns this codec's (codeword, message, rate) metadata.
	SchemeInfo() Info
}

// NewCodec constructs a Codec for scheme s. maxContinuousCwLen
// configures continuous (convolutional) schemes; pass 0 for
// DefaultMaxContinuousCodewordLen. Only NO_FEC and
// CCSDS_CONVOLUTIONAL_CODING_R_1_2 (see Implemented) return a working
// codec; all other catalog tags return ErrUnimplementedCodec even
// though SchemeInfo succeeds for them.
func NewCodec(s Scheme, maxContinuousCwLen uint32) (Codec, error) {
	info, err := SchemeInfo(s, maxContinuousCwLen)
	if err != nil {
		return nil, err
	}

	switch s {
	case NoFEC:
		return newNoFec(info), nil
	case CCSDSConvolutionalCodingR12:
		return newConvolutionalHD(ConvProfileProduction, info), nil
	default:
		return nil, ErrUnimplementedCodec
	}
}
