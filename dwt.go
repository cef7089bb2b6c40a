package vc2decode

import (
	"github.com/ajroetker/go-highway/hwy/contrib/wavelet"
)

// Lifting coefficients for the Daubechies (9,7) kernel (the classical CDF
// 9/7 filter), shared with irreversible JPEG2000 transforms.
const (
	lift97Alpha float64 = -1.586134342059924
	lift97Beta  float64 = -0.052980118572961
	lift97Gamma float64 = 0.882911075530934
	lift97Delta float64 = 0.443506852043971
	lift97K     float64 = 1.230174104914001
)

// reflect maps an out-of-range index into [0, n) by whole-sample symmetric
// extension without repeating the edge value, per spec §4.5's edge
// handling: extended[-1] == original[1], extended[n] == original[n-2].
func reflect(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i
		}
		if i >= n {
			i = 2*(n-1) - i
		}
	}
	return i
}

// applyLiftStage runs one integer lifting stage in place over the
// (low, high) pair, reading the opposite array with reflected indexing.
// In analysis polarity a predict stage (liftHigh) subtracts its delta and
// an update stage (liftLow) adds it; invert selects synthesis polarity,
// which flips both signs: a kernel's stages are specified in analysis
// order and polarity, so inverting the transform means running them in
// reverse order with the opposite sign (the standard lifting-scheme
// invertibility argument).
func applyLiftStage(stage liftStage, low, high []int32, invert bool) {
	target, other := high, low
	if stage.target == liftLow {
		target, other = low, high
	}
	n := len(other)
	var round int32
	if stage.shift > 0 {
		round = 1 << (stage.shift - 1)
	}
	for i := range target {
		var sum int32
		for _, tap := range stage.taps {
			sum += tap.weight * other[reflect(i+tap.offset, n)]
		}
		delta := (sum + round) >> stage.shift
		if invert != (stage.target == liftLow) {
			target[i] += delta
		} else {
			target[i] -= delta
		}
	}
}

// inverseLift1D reconstructs one line of length sn+dn from its deinterleaved
// low-pass (low, length sn) and high-pass (high, length dn) halves, applying
// the kernel's lifting stages in reverse order with inverted polarity
// (synthesis undoes analysis).
func inverseLift1D(kernel waveletKernelID, low, high []int32) {
	spec := kernelSpecs[kernel]
	for i := len(spec.stages) - 1; i >= 0; i-- {
		applyLiftStage(spec.stages[i], low, high, true)
	}
}

// inverseLift1DFloat97 reconstructs one line using the Daubechies 9/7
// kernel's float64 CDF 9/7 lifting, reusing the wavelet package's generic
// lifting and scaling primitives directly.
func inverseLift1DFloat97(lowI, highI []int32) {
	sn, dn := len(lowI), len(highI)
	low := make([]float64, sn)
	high := make([]float64, dn)
	for i, v := range lowI {
		low[i] = float64(v)
	}
	for i, v := range highI {
		high[i] = float64(v)
	}

	wavelet.BaseScaleSlice(low, sn, lift97K)
	wavelet.BaseScaleSlice(high, dn, 1/lift97K)

	wavelet.BaseLiftStep97(low, sn, high, dn, lift97Delta, 1)
	wavelet.BaseLiftStep97(high, dn, low, sn, lift97Gamma, 0)
	wavelet.BaseLiftStep97(low, sn, high, dn, lift97Beta, 1)
	wavelet.BaseLiftStep97(high, dn, low, sn, lift97Alpha, 0)

	for i, v := range low {
		lowI[i] = int32(v + 0.5)
	}
	for i, v := range high {
		highI[i] = int32(v + 0.5)
	}
}

// synthesize1DLine performs one full 1D inverse transform of a line stored
// in VC-2's quadrant layout: the low-pass half occupies data[:sn] and the
// high-pass half data[sn:] contiguously, not sample-interleaved (each level
// of the coefficient plane stores its LL/HL/LH/HH subbands as distinct
// spatial regions, never interleaved samples). The line is copied out,
// inverse-lifted, then interleaved back into data in natural sample order —
// this is what turns the level's two subband halves into the higher-
// resolution reconstructed line the next, finer level reads as its own
// contiguous low-pass half.
func synthesize1DLine(kernel waveletKernelID, data []int32) {
	n := len(data)
	if n <= 1 {
		return
	}
	sn := (n + 1) / 2
	dn := n - sn
	low := make([]int32, sn)
	high := make([]int32, dn)
	copy(low, data[:sn])
	copy(high, data[sn:])

	if kernelSpecs[kernel].isFloat {
		inverseLift1DFloat97(low, high)
	} else {
		inverseLift1D(kernel, low, high)
	}

	wavelet.BaseInterleave(data, low, sn, high, dn, 0)
}

// waveletEngine applies VC-2's inverse discrete wavelet transform to a
// single component's padded coefficient plane.
type waveletEngine struct {
	kernel waveletKernelID
	depth  int
}

// InverseTransform2D reconstructs coeffs (a paddedHeight x paddedWidth
// plane holding the subband-partitioned transform coefficients, row
// major) in place, working from the coarsest level outward per spec §4.5.
// Each level synthesises vertically (columns) then horizontally (rows),
// matching VC-2's defined inverse order (the reverse of its forward
// transform's horizontal-then-vertical analysis).
func (e waveletEngine) InverseTransform2D(coeffs [][]int32, paddedHeight, paddedWidth int) {
	if e.depth < 1 {
		return
	}
	col := make([]int32, paddedHeight)

	for level := e.depth; level >= 1; level-- {
		levelHeight := paddedHeight >> uint(level-1)
		levelWidth := paddedWidth >> uint(level-1)

		for x := range levelWidth {
			for y := range levelHeight {
				col[y] = coeffs[y][x]
			}
			synthesize1DLine(e.kernel, col[:levelHeight])
			for y := range levelHeight {
				coeffs[y][x] = col[y]
			}
		}

		for y := range levelHeight {
			synthesize1DLine(e.kernel, coeffs[y][:levelWidth])
		}

		// KernelHaarSingleShift's extra bit of gain is removed once per
		// level, over that level's own extent, not once globally at the
		// end: at depth > 1 the two are not equivalent.
		if e.kernel == KernelHaarSingleShift {
			for y := range levelHeight {
				for x := range levelWidth {
					coeffs[y][x] >>= haarSingleShiftBits
				}
			}
		}
	}
}
