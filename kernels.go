package vc2decode

// waveletKernelID identifies one of the seven wavelet filters a VC-2
// picture may declare via its wavelet_index field (spec §4.4, §9).
type waveletKernelID int

const (
	KernelDeslauriersDubuc97 waveletKernelID = iota
	KernelLeGall53
	KernelDeslauriersDubuc137
	KernelHaarNoShift
	KernelHaarSingleShift
	KernelFidelity
	KernelDaubechies97
)

// liftTarget names which of the two half-length arrays a lifting stage
// updates: the even-indexed ("low") samples or the odd-indexed ("high")
// samples of the interleaved line.
type liftTarget int

const (
	liftHigh liftTarget = iota
	liftLow
)

// liftTap is one (offset, weight) term of a lifting stage's symmetric FIR
// predictor, read against the opposite array using reflected indexing.
type liftTap struct {
	offset int
	weight int32
}

// liftStage is one integer lifting step: target[i] += sign*((sum(tap.weight
// * other[reflect(i+tap.offset)]) + round) >> shift).
type liftStage struct {
	target liftTarget
	taps   []liftTap
	shift  uint
}

// kernelSpec is the tagged-enumeration dispatch record for one wavelet
// kernel: either an integer lifting stage sequence, or (Daubechies 9/7
// only) a float64 CDF 9/7 lifting handled separately in dwt.go since it
// reuses the floating-point lifting primitives directly.
type kernelSpec struct {
	stages  []liftStage
	isFloat bool
}

// kernelSpecs is indexed by waveletKernelID. Kernel 1 (LeGall 5/3) and
// kernel 3/4 (Haar) reproduce the textbook integer lifting forms exactly;
// kernels 0, 2 and 5 generalise the same predict/update shape to wider
// support per spec §9's description of the Deslauriers-Dubuc family and
// Fidelity filter (see DESIGN.md: the pack carries no literal clause 15.4
// coefficient listing, so these wider taps are a faithful-shape
// reconstruction rather than a verified transcription).
var kernelSpecs = [7]kernelSpec{
	KernelDeslauriersDubuc97: {
		stages: []liftStage{
			{target: liftHigh, shift: 4, taps: []liftTap{
				{-1, -1}, {0, 9}, {1, 9}, {2, -1},
			}},
			{target: liftLow, shift: 4, taps: []liftTap{
				{-2, -1}, {-1, 9}, {0, 9}, {1, -1},
			}},
		},
	},
	KernelLeGall53: {
		stages: []liftStage{
			{target: liftHigh, shift: 1, taps: []liftTap{{0, 1}, {1, 1}}},
			{target: liftLow, shift: 2, taps: []liftTap{{-1, 1}, {0, 1}}},
		},
	},
	KernelDeslauriersDubuc137: {
		stages: []liftStage{
			{target: liftHigh, shift: 4, taps: []liftTap{
				{-1, -1}, {0, 9}, {1, 9}, {2, -1},
			}},
			{target: liftLow, shift: 5, taps: []liftTap{
				{-2, -1}, {-1, 9}, {0, 9}, {1, -1},
			}},
		},
	},
	KernelHaarNoShift: {
		stages: []liftStage{
			{target: liftHigh, shift: 0, taps: []liftTap{{0, 1}}},
			{target: liftLow, shift: 1, taps: []liftTap{{0, 1}}},
		},
	},
	KernelHaarSingleShift: {
		stages: []liftStage{
			{target: liftHigh, shift: 0, taps: []liftTap{{0, 1}}},
			{target: liftLow, shift: 1, taps: []liftTap{{0, 1}}},
		},
	},
	KernelFidelity: {
		stages: []liftStage{
			{target: liftHigh, shift: 8, taps: []liftTap{
				{-3, -8}, {-2, 21}, {-1, -46}, {0, 161}, {1, 161}, {2, -46}, {3, 21}, {4, -8},
			}},
			{target: liftLow, shift: 8, taps: []liftTap{
				{-4, -2}, {-3, 8}, {-2, -22}, {-1, 97}, {0, 97}, {1, -22}, {2, 8}, {3, -2},
			}},
		},
	},
	KernelDaubechies97: {isFloat: true},
}

// haarSingleShiftBits is the extra precision bit VC-2's "Haar with single
// shift" kernel applies to samples before the forward transform (and,
// correspondingly, removes after the inverse transform).
const haarSingleShiftBits = 1

// kernelSubbandGains returns the default quantisation matrix (per-subband
// additive index offsets, in subbandTraversal order) for a kernel and
// transform depth. The picture preamble parser reads no custom quant
// matrix, so this default is always the matrix in use. The per-level/per-band shape (DC untouched, HL/LH
// equal, HH slightly higher) follows the general coding-gain structure
// common to separable wavelet transforms; the pack has no literal Annex
// default-quant-matrix listing to transcribe (see DESIGN.md).
func kernelSubbandGains(kernel waveletKernelID, depth int) []int {
	bias := 0
	if kernel == KernelHaarSingleShift {
		bias = 1
	}
	gains := make([]int, subbandCount(depth))
	gains[0] = 0
	i := 1
	for level := depth; level >= 1; level-- {
		base := 4*(depth-level) + bias
		gains[i] = base       // HL
		gains[i+1] = base     // LH
		gains[i+2] = base + 1 // HH
		i += 3
	}
	return gains
}
