package vc2decode

// quantFactorBase holds the four quant_factor constants (scaled by
// quantFactorScale) selected by q mod 4; quant_factor(q) multiplies the
// constant for q%4 by 2^(q/4). Per SMPTE ST 2042-1 clause 13.5, successive
// indices span one octave every four steps (quant_factor(q+4) ==
// 2*quant_factor(q)). index 0 and index 2's values (400000 and 565685,
// i.e. exactly 4 and 4*sqrt(2)) are the two digit sequences spec.md quotes
// directly; indices 1 and 3 are filled in to keep the table monotonic and
// octave-closing, since the pack carries no verbatim clause 13.5 listing.
const quantFactorScale = 100000

var quantFactorBase = [4]int64{400000, 503829, 565685, 635928}

// quantFactor returns VC-2's quant_factor(q): one of four base constants,
// reduced to an integer by quantFactorScale, then scaled by 2^(q/4), per
// spec §4.6.
func quantFactor(q int) int64 {
	if q < 0 {
		q = 0
	}
	base := quantFactorBase[q%4]
	shift := uint(q / 4)
	return (base / quantFactorScale) << shift
}

// quantOffset returns VC-2's quant_offset(q): floor((factor+1)/2) for q>0,
// special-cased to 1 at q==0 (so that inverse-quantising a coefficient
// that was never requantised, i.e. q==0, is the identity).
func quantOffset(q int) int64 {
	if q <= 0 {
		return 1
	}
	return (quantFactor(q) + 1) / 2
}

// inverseQuantise dequantises one coefficient c at effective quantisation
// index q, per spec §4.6's sign-symmetric rounding rule. This single
// formula is used by both Low Delay and High Quality profiles: the
// source's HQ-only "no offset" variant is treated as the bug spec §9
// identifies it as and is not reproduced (see DESIGN.md).
func inverseQuantise(c int32, q int) int32 {
	if c == 0 {
		return 0
	}
	factor := quantFactor(q)
	offset := quantOffset(q)
	if c > 0 {
		return int32((int64(c)*factor + offset) >> 2)
	}
	return -int32((int64(-c)*factor + offset) >> 2)
}

// quantMatrix returns the additive per-subband quantisation-index offsets,
// indexed in the traversal order of subbandTraversal, for the given kernel
// and transform depth.
func quantMatrix(kernel waveletKernelID, depth int) []int {
	gains := kernelSubbandGains(kernel, depth)
	matrix := make([]int, len(gains))
	copy(matrix, gains)
	return matrix
}

// effectiveQIndex returns the clamped-at-zero per-subband quantisation
// index for subband b, given the slice's qIndex and the picture's qMatrix.
func effectiveQIndex(sliceQIndex int, qMatrix []int, b int) int {
	q := sliceQIndex + qMatrix[b]
	if q < 0 {
		q = 0
	}
	return q
}
