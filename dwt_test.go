package vc2decode

import "testing"

func TestReflect(t *testing.T) {
	tests := []struct {
		i, n, want int
	}{
		{0, 5, 0},
		{4, 5, 4},
		{-1, 5, 1},
		{-2, 5, 2},
		{5, 5, 3},
		{6, 5, 2},
		{0, 1, 0},
		{5, 1, 0},
	}
	for _, tt := range tests {
		if got := reflect(tt.i, tt.n); got != tt.want {
			t.Errorf("reflect(%d, %d) = %d, want %d", tt.i, tt.n, got, tt.want)
		}
	}
}

// forwardHaarNoShift computes the textbook analysis-side Haar lifting
// (predict then update) so inverseLift1D's synthesis direction can be
// checked against a known-correct forward transform. The even/odd sample
// split that feeds the lifting steps is inherent to the transform itself;
// the coefficients are then written back in VC-2's quadrant-separated
// layout (low contiguous, then high), matching what synthesize1DLine reads.
func forwardHaarNoShift(data []int32) {
	n := len(data)
	if n <= 1 {
		return
	}
	sn := (n + 1) / 2
	dn := n - sn
	low := make([]int32, sn)
	high := make([]int32, dn)
	for i := 0; i < sn; i++ {
		low[i] = data[2*i]
	}
	for i := 0; i < dn; i++ {
		high[i] = data[2*i+1]
	}
	for i := range high {
		lo := low[reflect(i, sn)]
		high[i] -= lo
	}
	for i := range low {
		hi := high[reflect(i, dn)]
		low[i] += (hi + 1) >> 1
	}
	copy(data[:sn], low)
	copy(data[sn:], high)
}

func TestSynthesize1DLine_HaarRoundTrip(t *testing.T) {
	cases := [][]int32{
		{1, 2, 3, 4, 5, 6, 7, 8},
		{1, 2, 3, 4, 5, 6, 7},
		{42},
		{10, 20},
		{0, 0, 0, 0},
		{1, -1, 1, -1, 1, -1},
	}
	for _, original := range cases {
		data := make([]int32, len(original))
		copy(data, original)
		forwardHaarNoShift(data)
		synthesize1DLine(KernelHaarNoShift, data)
		for i := range original {
			if data[i] != original[i] {
				t.Errorf("%v: at index %d got %d want %d", original, i, data[i], original[i])
			}
		}
	}
}

func TestSynthesize1DLine_ConstantSignalIsIdentity(t *testing.T) {
	// A constant line has no AC energy: every kernel's synthesis of an
	// all-DC, zero-AC line (low half constant, high half zero, in the
	// quadrant layout synthesize1DLine reads) must reproduce the constant.
	for kernel := KernelDeslauriersDubuc97; kernel <= KernelDaubechies97; kernel++ {
		data := make([]int32, 16)
		for i := range data[:8] {
			data[i] = 100
		}
		synthesize1DLine(kernel, data)
		for i, v := range data {
			if v < 99 || v > 101 {
				t.Errorf("kernel %d: index %d: got %d, want ~100", kernel, i, v)
			}
		}
	}
}

func TestInverseTransform2D_NoopAtZeroDepth(t *testing.T) {
	coeffs := [][]int32{{1, 2}, {3, 4}}
	e := waveletEngine{kernel: KernelLeGall53, depth: 0}
	e.InverseTransform2D(coeffs, 2, 2)
	want := [][]int32{{1, 2}, {3, 4}}
	for y := range coeffs {
		for x := range coeffs[y] {
			if coeffs[y][x] != want[y][x] {
				t.Fatalf("depth 0 mutated coeffs at (%d,%d)", y, x)
			}
		}
	}
}

func TestInverseTransform2D_Runs(t *testing.T) {
	const n = 8
	coeffs := make([][]int32, n)
	for y := range coeffs {
		coeffs[y] = make([]int32, n)
		if y < n>>2 {
			coeffs[y][0] = 200 // all energy in the DC band
		}
	}
	e := waveletEngine{kernel: KernelLeGall53, depth: 2}
	e.InverseTransform2D(coeffs, n, n)
	for y := range coeffs {
		for x := range coeffs[y] {
			if coeffs[y][x] < 0 || coeffs[y][x] > 255 {
				t.Errorf("unexpected magnitude at (%d,%d): %d", y, x, coeffs[y][x])
			}
		}
	}
}
