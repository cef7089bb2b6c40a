package vc2decode

// ColourFormat identifies the chroma subsampling scheme of a picture.
type ColourFormat int

const (
	Format444 ColourFormat = iota // 4:4:4
	Format422                     // 4:2:2
	Format420                     // 4:2:0
	FormatRGB                     // RGB, planar 4:4:4, no chroma subsampling
)

// chromaRatio returns (hRatio, vRatio): the luma-to-chroma sampling ratio
// along each axis. A ratio of 2 means the chroma plane has half the luma
// plane's extent on that axis.
func (c ColourFormat) chromaRatio() (hRatio, vRatio int) {
	switch c {
	case Format444, FormatRGB:
		return 1, 1
	case Format422:
		return 2, 1
	case Format420:
		return 2, 2
	default:
		return 1, 1
	}
}

// numComponents returns the number of planes a picture of this format
// carries (always 3: luma/Cb/Cr or R/G/B style triples for VC-2).
func (c ColourFormat) numComponents() int {
	return 3
}

// PictureFormat describes the extent and colour layout of a picture: the
// luma plane is (Height, Width); chroma planes are divided by the format's
// chroma ratios.
type PictureFormat struct {
	Height int
	Width  int
	Format ColourFormat
}

// ChromaExtent returns the height and width of a chroma plane for this
// picture format.
func (p PictureFormat) ChromaExtent() (height, width int) {
	hRatio, vRatio := p.Format.chromaRatio()
	return p.Height / vRatio, p.Width / hRatio
}

// paddedSize rounds n up to the nearest multiple of 2^depth.
func paddedSize(n, depth int) int {
	unit := 1 << uint(depth)
	return ((n + unit - 1) / unit) * unit
}

// subbandCount returns the number of subbands (3*depth + 1) a transform of
// the given depth decomposes a component into.
func subbandCount(depth int) int {
	return 3*depth + 1
}

// subbandLevel and subbandBand identify one entry in the traversal order
// {LL_D} then for L = D down to 1: {HL_L, LH_L, HH_L}.
type subbandBand int

const (
	bandLL subbandBand = iota
	bandHL
	bandLH
	bandHH
)

type subbandInfo struct {
	level  int // 0 for the DC band, else 1..depth
	band   subbandBand
	height int
	width  int
}

// subbandTraversal returns the subband descriptors, in VC-2 traversal
// order, for a padded picture of (paddedHeight, paddedWidth) decomposed to
// the given transform depth.
func subbandTraversal(paddedHeight, paddedWidth, depth int) []subbandInfo {
	bands := make([]subbandInfo, 0, subbandCount(depth))
	llHeight := paddedHeight >> uint(depth)
	llWidth := paddedWidth >> uint(depth)
	bands = append(bands, subbandInfo{level: 0, band: bandLL, height: llHeight, width: llWidth})
	for level := depth; level >= 1; level-- {
		h := paddedHeight >> uint(level)
		w := paddedWidth >> uint(level)
		bands = append(bands,
			subbandInfo{level: level, band: bandHL, height: h, width: w},
			subbandInfo{level: level, band: bandLH, height: h, width: w},
			subbandInfo{level: level, band: bandHH, height: h, width: w},
		)
	}
	return bands
}

// sliceShare returns the row range [r0, r1) or column range [c0, c1) that
// slice index si (of sliceCount total) contributes to a subband extent of
// size n, per spec §3: rows floor(si*n/sliceCount)..floor((si+1)*n/sliceCount).
func sliceShare(si, sliceCount, n int) (lo, hi int) {
	lo = si * n / sliceCount
	hi = (si + 1) * n / sliceCount
	return lo, hi
}
