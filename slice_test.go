package vc2decode

import "testing"

func TestFillComponentSlice_ExactBudget(t *testing.T) {
	b := &bitBuilder{}
	b.WriteSint(5)
	b.WriteSint(-3)
	b.WriteSint(0)
	b.WriteSint(7)
	b.ByteAlign()
	data := b.Bytes()

	r := newBitReader(data)
	plane := newComponentPlane(2, 2, 0) // depth 0: single DC-only subband, 2x2
	qMatrix := quantMatrix(KernelLeGall53, 0)
	fillComponentSlice(r, plane, 0, 0, 1, 1, qMatrix, 0, len(data)*8, true)

	want := [][]int32{{5, -3}, {0, 7}}
	for y := range want {
		for x := range want[y] {
			if got := plane.data[y][x]; got != want[y][x] {
				t.Errorf("(%d,%d) = %d, want %d", y, x, got, want[y][x])
			}
		}
	}
	if r.BitPosition() != len(data)*8 {
		t.Errorf("reader ended at bit %d, want exactly %d", r.BitPosition(), len(data)*8)
	}
}

func TestFillComponentSlice_ZeroFillOnExhaustion(t *testing.T) {
	b := &bitBuilder{}
	b.WriteSint(9) // one codeword then the budget runs out
	b.ByteAlign()
	data := b.Bytes()

	r := newBitReader(data)
	plane := newComponentPlane(2, 2, 0)
	qMatrix := quantMatrix(KernelLeGall53, 0)
	// Budget only covers the first byte: remaining coefficients must
	// zero-fill rather than read past the exhausted share.
	fillComponentSlice(r, plane, 0, 0, 1, 1, qMatrix, 0, 8, true)

	if plane.data[0][1] != 0 || plane.data[1][0] != 0 || plane.data[1][1] != 0 {
		t.Errorf("expected zero-fill past budget exhaustion, got %+v", plane.data)
	}
}

func TestFillComponentSlice_NoPadLeavesReaderAtRealData(t *testing.T) {
	b := &bitBuilder{}
	b.WriteSint(0) // a single-bit codeword ('1'): the plane's only coefficient
	data := b.Bytes()

	r := newBitReader(data)
	plane := newComponentPlane(1, 1, 0) // one subband, one coefficient
	qMatrix := quantMatrix(KernelLeGall53, 0)
	// pad=false: even though budgetBits is much larger than the single
	// coefficient needed, the reader must stop right after that one bit
	// rather than being forced out to the budget.
	fillComponentSlice(r, plane, 0, 0, 1, 1, qMatrix, 0, 64, false)

	if r.BitPosition() != 1 {
		t.Errorf("reader ended at bit %d, want 1 (no forced padding)", r.BitPosition())
	}
}

func TestDecodeLowDelaySlice_BudgetExact(t *testing.T) {
	const sliceBytes = 16
	totalBits := sliceBytes*8 - 7 // 121
	lyFieldBits := bitsNeeded(totalBits)
	lyBits := 64
	chromaBudget := totalBits - lyFieldBits - lyBits

	b := &bitBuilder{}
	b.WriteBits(0, 7) // qindex
	b.WriteBits(uint32(lyBits), lyFieldBits)

	// Luma: a 4x4 picture at depth 1 decomposes into 4 subbands of 2x2 = 16
	// coefficients, each a single-bit zero codeword; the pad=true call then
	// skips the rest of lyBits regardless of content.
	for range 16 {
		b.WriteSint(0)
	}
	b.WriteBits(0, lyBits-16)

	// Chroma (4:2:0, depth 1): C1 and C2 are each a 2x2 plane with 4
	// subbands of 1x1 = 4 coefficients. C1 (pad=false) stops right after
	// its 4 real bits, leaving the rest of chromaBudget for C2 to consume.
	for range 4 {
		b.WriteSint(0)
	}
	for range 4 {
		b.WriteSint(0)
	}
	b.WriteBits(0, chromaBudget-8)

	data := b.Bytes()
	if len(data) != sliceBytes {
		t.Fatalf("test data is %d bytes, want %d", len(data), sliceBytes)
	}

	r := newBitReader(data)
	fmtPic := PictureFormat{Height: 4, Width: 4, Format: Format420}
	planes := newSliceTriple(fmtPic, 1)
	qMatrix := quantMatrix(KernelLeGall53, 1)

	if gotQ, err := decodeLowDelaySlice(r, planes, 0, 0, 1, 1, qMatrix, sliceBytes); err != nil {
		t.Fatalf("decodeLowDelaySlice: %v", err)
	} else if gotQ != 0 {
		t.Errorf("qIndex = %d, want 0", gotQ)
	}
	if r.Position() != sliceBytes {
		t.Errorf("reader at byte %d, want %d (exact slice budget)", r.Position(), sliceBytes)
	}
}

func TestDecodeHighQualitySlice_LengthPrefixedComponents(t *testing.T) {
	y := &bitBuilder{}
	y.WriteSint(3)
	y.ByteAlign()
	yBytes := y.Bytes()

	c := &bitBuilder{}
	c.WriteSint(0)
	c.ByteAlign()
	cBytes := c.Bytes()

	b := &bitBuilder{}
	b.WriteByte_(byte(len(yBytes)))
	b.WriteByte_(byte(len(cBytes)))
	b.WriteByte_(byte(len(cBytes)))
	b.WriteByte_(10) // qindex
	for _, by := range yBytes {
		b.WriteBits(uint32(by), 8)
	}
	for _, by := range cBytes {
		b.WriteBits(uint32(by), 8)
	}
	for _, by := range cBytes {
		b.WriteBits(uint32(by), 8)
	}
	data := b.Bytes()

	r := newBitReader(data)
	fmtPic := PictureFormat{Height: 2, Width: 2, Format: Format444}
	planes := newSliceTriple(fmtPic, 0)
	qMatrix := quantMatrix(KernelLeGall53, 0)

	if gotQ, err := decodeHighQualitySlice(r, planes, 0, 0, 1, 1, qMatrix, 0, 1); err != nil {
		t.Fatalf("decodeHighQualitySlice: %v", err)
	} else if gotQ != 10 {
		t.Errorf("qIndex = %d, want 10", gotQ)
	}
	if planes.y.data[0][0] == 0 && planes.y.data[0][1] == 0 {
		t.Errorf("expected nonzero luma coefficient to survive decode")
	}
}
