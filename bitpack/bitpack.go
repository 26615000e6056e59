// Package bitpack repacks byte-encoded symbol streams between arbitrary
// bits-per-symbol representations, and provides bit-level reverse and
// rotate operations on the same logical stream.
package bitpack

// Repack converts payload, interpreted as a sequence of symbols of
// currentBps bits each (symbol bits right-justified within each byte),
// into the equivalent stream of symbols of newBps bits each. Bits are
// read most-significant-first within each input symbol and packed
// most-significant-first into output symbols; if the total bit count
// is not a multiple of newBps, the final output symbol is left-justified
// and zero-padded on the right.
//
// currentBps and newBps must be in [1, 8]; Repack panics otherwise.
func Repack(payload []byte, currentBps, newBps int) []byte {
	checkBps(currentBps)
	checkBps(newBps)

	if currentBps == newBps {
		out := make([]byte, len(payload))
		copy(out, payload)
		return out
	}

	if currentBps == 8 && newBps == 1 {
		return unpack(payload)
	}
	if currentBps == 1 && newBps == 8 {
		return pack(payload)
	}

	packedBitsCount := len(payload) * currentBps
	repackedCount := packedBitsCount / newBps
	if packedBitsCount%newBps != 0 {
		repackedCount++
	}

	out := make([]byte, repackedCount)

	var (
		packedSymb             byte
		repackedSymb           byte
		packedSymbsProcessed   int
		packedBitsProcessed    int
		repackedSymbsProcessed int
		repackedBitsProcessed  int
	)

	for bits := 0; bits < packedBitsCount; bits++ {
		repackedSymb <<= 1

		if packedBitsProcessed == 0 {
			packedSymb = payload[packedSymbsProcessed]
			packedSymbsProcessed++
		}

		mask := uint(currentBps - packedBitsProcessed - 1)
		repackedSymb |= (packedSymb >> mask) & 0x01

		if repackedBitsProcessed == newBps-1 {
			out[repackedSymbsProcessed] = repackedSymb
			repackedSymbsProcessed++
			repackedSymb = 0
		}

		packedBitsProcessed = (packedBitsProcessed + 1) % currentBps
		repackedBitsProcessed = (repackedBitsProcessed + 1) % newBps
	}

	if repackedSymbsProcessed < repackedCount {
		repackedSymb <<= uint(newBps - repackedBitsProcessed)
		out[repackedSymbsProcessed] = repackedSymb
	}

	return out
}

// pack folds 8 one-bit-per-byte symbols into each output byte, MSB first.
// The final partial group, if any, is left-justified and zero-padded.
func pack(payload []byte) []byte {
	packedCount := len(payload) / 8
	if len(payload)%8 != 0 {
		packedCount++
	}
	out := make([]byte, packedCount)

	var packing byte
	bIdx := 0
	pIdx := 0
	for uIdx := 0; uIdx < len(payload); uIdx++ {
		packing |= payload[uIdx] & 0x01
		bIdx++
		if bIdx == 8 {
			out[pIdx] = packing
			pIdx++
			packing = 0
			bIdx = 0
		} else {
			packing <<= 1
		}
	}

	if rem := len(payload) % 8; rem > 0 {
		out[pIdx] = packing << uint(7-rem)
	}

	return out
}

// unpack expands each input byte into 8 one-bit-per-byte symbols, MSB first.
func unpack(payload []byte) []byte {
	out := make([]byte, len(payload)*8)
	uIdx := 0
	for _, b := range payload {
		out[uIdx] = (b >> 7) & 0x01
		out[uIdx+1] = (b >> 6) & 0x01
		out[uIdx+2] = (b >> 5) & 0x01
		out[uIdx+3] = (b >> 4) & 0x01
		out[uIdx+4] = (b >> 3) & 0x01
		out[uIdx+5] = (b >> 2) & 0x01
		out[uIdx+6] = (b >> 1) & 0x01
		out[uIdx+7] = b & 0x01
		uIdx += 8
	}
	return out
}

// Reverse returns payload with its logical bit stream reversed. If
// byteLevel is true, only the octet order is reversed; otherwise the
// entire bit stream (at currentBps granularity) is reversed.
func Reverse(payload []byte, currentBps int, byteLevel bool) []byte {
	checkBps(currentBps)

	out := make([]byte, len(payload))
	copy(out, payload)

	if byteLevel {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
		return out
	}

	bits := out
	if currentBps != 1 {
		bits = Repack(out, currentBps, 1)
	}
	for i, j := 0, len(bits)-1; i < j; i, j = i+1, j-1 {
		bits[i], bits[j] = bits[j], bits[i]
	}
	if currentBps != 1 {
		bits = Repack(bits, 1, currentBps)
	}
	return bits
}

// Roll rotates the logical bit stream of payload (at currentBps
// granularity) by numBits mod total-bits positions. left=true rotates
// toward lower indices (the first bit moves to the end); left=false
// rotates toward higher indices.
func Roll(payload []byte, currentBps int, numBits uint32, left bool) []byte {
	checkBps(currentBps)

	out := make([]byte, len(payload))
	copy(out, payload)

	if numBits == 0 {
		return out
	}

	bits := Repack(out, currentBps, 1)
	shift := int(numBits) % len(bits)
	if shift == 0 {
		return Repack(bits, 1, currentBps)
	}

	rotated := make([]byte, len(bits))
	if left {
		copy(rotated, bits[shift:])
		copy(rotated[len(bits)-shift:], bits[:shift])
	} else {
		copy(rotated, bits[len(bits)-shift:])
		copy(rotated[shift:], bits[:len(bits)-shift])
	}

	return Repack(rotated, 1, currentBps)
}

func checkBps(bps int) {
	if bps < 1 || bps > 8 {
		panic("bitpack: bits-per-symbol must be in [1, 8]")
	}
}
