package vc2decode

// componentPlane holds one colour component's padded transform coefficient
// plane, decoded subband-by-subband from slice data before the inverse
// wavelet transform is applied.
type componentPlane struct {
	data         [][]int32 // dequantised transform coefficients (mutated into samples in place by the inverse transform)
	raw          [][]int32 // quantised indices as read from the bitstream, before inverseQuantise
	paddedHeight int
	paddedWidth  int
	depth        int
}

func newComponentPlane(paddedHeight, paddedWidth, depth int) *componentPlane {
	data := make([][]int32, paddedHeight)
	raw := make([][]int32, paddedHeight)
	for y := range data {
		data[y] = make([]int32, paddedWidth)
		raw[y] = make([]int32, paddedWidth)
	}
	return &componentPlane{data: data, raw: raw, paddedHeight: paddedHeight, paddedWidth: paddedWidth, depth: depth}
}

// skipBits discards up to n residual bits, used to pad a slice component's
// bitstream position out to its declared byte budget once its coefficients
// have all been read (or the budget has been exhausted).
func skipBits(r *bitReader, n int) {
	for range n {
		if _, err := r.ReadBit(); err != nil {
			return
		}
	}
}

// bitsNeeded returns ceil(log2(n)), the field width required to encode any
// value in [0, n) — 0 for n <= 1. Used for Low Delay's slice_y_length field,
// whose own width depends on the slice's total bit budget (spec §4.5).
func bitsNeeded(n int) int {
	bits := 0
	for (1 << uint(bits)) < n {
		bits++
	}
	return bits
}

// fillComponentSlice reads one slice's share of coefficients for a single
// component across every subband (DC band included), in subbandTraversal
// order, zero-filling any coefficients left unread once budgetBits is
// exhausted. This is the VC-2 rule that a corrupt or truncated slice
// degrades to zero AC/DC energy in its share rather than aborting the whole
// picture (spec §4.5, scenario S4).
//
// pad controls whether the reader is forced out to budgetBits once real
// decoding stops short of it. High Quality components and Low Delay's luma
// and final chroma component each own an exact byte budget and must pad
// (pad=true); Low Delay's first chroma component shares its budget with the
// second and must leave the reader exactly where its real codewords ended,
// so the second component can continue from there (pad=false).
func fillComponentSlice(r *bitReader, plane *componentPlane, sx, sy, slicesX, slicesY int, qMatrix []int, sliceQIndex, budgetBits int, pad bool) {
	startBit := r.BitPosition()
	exhausted := false

	for b, sb := range subbandTraversal(plane.paddedHeight, plane.paddedWidth, plane.depth) {
		rowLo, rowHi := sliceShare(sy, slicesY, sb.height)
		colLo, colHi := sliceShare(sx, slicesX, sb.width)
		rowOff, colOff := subbandOrigin(plane.paddedHeight, plane.paddedWidth, plane.depth, sb)
		q := effectiveQIndex(sliceQIndex, qMatrix, b)

		for y := rowLo; y < rowHi; y++ {
			for x := colLo; x < colHi; x++ {
				absY, absX := rowOff+y, colOff+x
				if exhausted || r.BitPosition()-startBit >= budgetBits {
					exhausted = true
					plane.data[absY][absX] = 0
					plane.raw[absY][absX] = 0
					continue
				}
				v, err := r.ReadSint()
				if err != nil {
					exhausted = true
					plane.data[absY][absX] = 0
					plane.raw[absY][absX] = 0
					continue
				}
				plane.raw[absY][absX] = v
				plane.data[absY][absX] = inverseQuantise(v, q)
			}
		}
	}

	if !pad {
		return
	}
	consumed := r.BitPosition() - startBit
	if consumed < budgetBits {
		skipBits(r, budgetBits-consumed)
	}
}

// sliceTriple holds the three component planes a picture decodes into.
type sliceTriple struct {
	y, c1, c2 *componentPlane
}

func newSliceTriple(fmt PictureFormat, depth int) *sliceTriple {
	lumaH := paddedSize(fmt.Height, depth)
	lumaW := paddedSize(fmt.Width, depth)
	chromaH, chromaW := fmt.ChromaExtent()
	chromaH = paddedSize(chromaH, depth)
	chromaW = paddedSize(chromaW, depth)
	return &sliceTriple{
		y:  newComponentPlane(lumaH, lumaW, depth),
		c1: newComponentPlane(chromaH, chromaW, depth),
		c2: newComponentPlane(chromaH, chromaW, depth),
	}
}

// decodeLowDelaySlice reads one Low Delay slice: a 7-bit qindex, a
// slice_y_length field whose own width is ceil(log2(8*sliceBytes-7)) bits
// giving luma's exact bit budget, then luma's codewords padded out to that
// budget, then chroma's two components sharing one continuous remaining
// budget — C1's real codewords end wherever they naturally do, and C2
// continues immediately from there, with final padding landing the whole
// slice at exactly sliceBytes bytes (spec §4.5's constant-bit-rate profile).
func decodeLowDelaySlice(r *bitReader, planes *sliceTriple, sx, sy, slicesX, slicesY int, qMatrix []int, sliceBytes int) (int, error) {
	qIdxBits, err := r.ReadBits(7)
	if err != nil {
		return 0, err
	}
	qIndex := int(qIdxBits)

	totalBits := sliceBytes*8 - 7
	if totalBits < 0 {
		totalBits = 0
	}

	lyFieldBits := bitsNeeded(totalBits)
	var lyBits int
	if lyFieldBits > 0 {
		v, err := r.ReadBits(lyFieldBits)
		if err != nil {
			return qIndex, err
		}
		lyBits = int(v)
	}
	if max := totalBits - lyFieldBits; lyBits > max {
		lyBits = max
	}
	if lyBits < 0 {
		lyBits = 0
	}

	fillComponentSlice(r, planes.y, sx, sy, slicesX, slicesY, qMatrix, qIndex, lyBits, true)

	chromaBudget := totalBits - lyFieldBits - lyBits
	if chromaBudget < 0 {
		chromaBudget = 0
	}

	c1Start := r.BitPosition()
	fillComponentSlice(r, planes.c1, sx, sy, slicesX, slicesY, qMatrix, qIndex, chromaBudget, false)
	c1Consumed := r.BitPosition() - c1Start

	c2Bits := chromaBudget - c1Consumed
	if c2Bits < 0 {
		c2Bits = 0
	}
	fillComponentSlice(r, planes.c2, sx, sy, slicesX, slicesY, qMatrix, qIndex, c2Bits, true)
	return qIndex, nil
}

// decodeHighQualitySlice reads one High Quality slice: slice_prefix_bytes of
// skipped auxiliary data, then the three components' lengths (each a count
// of slice_size_scalar-byte units), then the qindex byte, then each
// component's byte-aligned coefficient data up to its declared length, in
// order Y, C1, C2 (spec §4.5's variable-bit-rate profile). The length
// fields precede qindex in the bitstream even though qindex is logically
// "read first" in a naive top-down telling of the format; this decode
// follows the bitstream's actual field order rather than that telling.
func decodeHighQualitySlice(r *bitReader, planes *sliceTriple, sx, sy, slicesX, slicesY int, qMatrix []int, prefixBytes, sizeScalar int) (int, error) {
	if err := r.Skip(prefixBytes); err != nil {
		return 0, err
	}

	lengths := make([]int, 3)
	for i := range lengths {
		lenByte, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		lengths[i] = int(lenByte) * sizeScalar
	}

	qIdxByte, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	qIndex := int(qIdxByte)

	for i, plane := range []*componentPlane{planes.y, planes.c1, planes.c2} {
		r.ByteAlign()
		fillComponentSlice(r, plane, sx, sy, slicesX, slicesY, qMatrix, qIndex, lengths[i]*8, true)
	}
	return qIndex, nil
}
