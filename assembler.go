package vc2decode

import (
	"runtime"
	"sync"
)

// sliceByteLength returns the exact byte count owed to slice index idx (of
// total slices) under a rational byte schedule, per spec §4.4's Low Delay
// constant-bit-rate rule: floor((idx+1)*num/den) - floor(idx*num/den). This
// closed form needs no information from any other slice, which is what
// lets Low Delay slices decode in parallel.
func sliceByteLength(idx, num, den uint32) int {
	if den == 0 {
		return 0
	}
	a := uint64(idx) * uint64(num) / uint64(den)
	b := uint64(idx+1) * uint64(num) / uint64(den)
	return int(b - a)
}

// decodeLowDelayPicture decodes every slice of a Low Delay picture,
// parallelised across a bounded worker pool since each slice's byte range
// is known in advance and slices write disjoint coefficient regions.
func decodeLowDelayPicture(payload []byte, offset int, planes *sliceTriple, preamble picturePreamble, qMatrix []int, qIndices [][]int) {
	total := preamble.slicesX * preamble.slicesY
	offsets := make([]int, total+1)
	offsets[0] = offset
	for i := 0; i < total; i++ {
		offsets[i+1] = offsets[i] + sliceByteLength(uint32(i), preamble.sliceBytesNumerator, preamble.sliceBytesDenominator)
	}

	numWorkers := min(runtime.GOMAXPROCS(0), total)
	if numWorkers < 1 {
		numWorkers = 1
	}
	work := make(chan int, total)
	for i := range total {
		work <- i
	}
	close(work)

	var wg sync.WaitGroup
	for range numWorkers {
		wg.Go(func() {
			for idx := range work {
				sy, sx := idx/preamble.slicesX, idx%preamble.slicesX
				start, end := offsets[idx], offsets[idx+1]
				if start > len(payload) {
					continue
				}
				if end > len(payload) {
					end = len(payload)
				}
				r := newBitReader(payload[start:end])
				// Each worker only ever touches its own (sy, sx) cell, so
				// concurrent writes into qIndices need no further guard.
				q, _ := decodeLowDelaySlice(r, planes, sx, sy, preamble.slicesX, preamble.slicesY, qMatrix, end-start)
				qIndices[sy][sx] = q
			}
		})
	}
	wg.Wait()
}

// decodeHighQualityPicture decodes every slice of a High Quality picture
// sequentially: each slice's byte length is self-described inside its own
// data (length-prefixed per component), so the next slice's start is only
// known after the previous slice has been read.
func decodeHighQualityPicture(r *bitReader, planes *sliceTriple, preamble picturePreamble, qMatrix []int, qIndices [][]int) error {
	for sy := range preamble.slicesY {
		for sx := range preamble.slicesX {
			q, err := decodeHighQualitySlice(r, planes, sx, sy, preamble.slicesX, preamble.slicesY, qMatrix, preamble.slicePrefixBytes, preamble.sliceSizeScalar)
			if err != nil {
				return err
			}
			qIndices[sy][sx] = q
		}
	}
	return nil
}

// inverseTransformComponents runs the inverse wavelet transform over the
// three planes of a picture in parallel: VC-2's components are decoded
// and transformed entirely independently of one another (spec §5), so
// there is no shared state to guard.
func inverseTransformComponents(planes *sliceTriple, kernel waveletKernelID, depth int) {
	engine := waveletEngine{kernel: kernel, depth: depth}
	var wg sync.WaitGroup
	for _, plane := range []*componentPlane{planes.y, planes.c1, planes.c2} {
		wg.Go(func() {
			engine.InverseTransform2D(plane.data, plane.paddedHeight, plane.paddedWidth)
		})
	}
	wg.Wait()
}

// decodedPicture is one fully reconstructed picture (a whole frame, or
// one field of an interlaced frame), cropped back to its natural extent.
type decodedPicture struct {
	pictureNumber uint32
	format        PictureFormat
	lumaDepth     int
	chromaDepth   int
	y, c1, c2     [][]int32

	// kernel and depth identify the wavelet transform applied; transform
	// is the padded, pre-transform snapshot of each plane's dequantised
	// coefficients (componentPlane.data) and raw quantised indices
	// (componentPlane.raw), kept only to serve the debug output modes.
	kernel    waveletKernelID
	depth     int
	transform *sliceTriple

	// qIndices is the slicesY x slicesX matrix of each slice's decoded
	// quantisation index, in raster order, kept only to serve OutputIndices.
	qIndices [][]int
}

// newQIndexMatrix allocates a slicesY x slicesX matrix to hold each slice's
// decoded quantisation index.
func newQIndexMatrix(slicesY, slicesX int) [][]int {
	m := make([][]int, slicesY)
	for y := range m {
		m[y] = make([]int, slicesX)
	}
	return m
}

// snapshotPlanes deep-copies a sliceTriple's current data into a fresh
// sliceTriple, used to preserve a pre-transform view before the in-place
// inverse wavelet transform overwrites componentPlane.data with samples.
func snapshotPlanes(src *sliceTriple) *sliceTriple {
	copyPlane := func(p *componentPlane) *componentPlane {
		cp := newComponentPlane(p.paddedHeight, p.paddedWidth, p.depth)
		for y := range p.data {
			copy(cp.data[y], p.data[y])
			copy(cp.raw[y], p.raw[y])
		}
		return cp
	}
	return &sliceTriple{y: copyPlane(src.y), c1: copyPlane(src.c1), c2: copyPlane(src.c2)}
}

// cropPlane extracts the top-left (height, width) region of a padded
// plane, undoing the edge padding applied before the wavelet transform.
func cropPlane(plane *componentPlane, height, width int) [][]int32 {
	out := make([][]int32, height)
	for y := range out {
		row := make([]int32, width)
		copy(row, plane.data[y][:width])
		out[y] = row
	}
	return out
}

// decodePicture fully decodes one LD_PICTURE or HQ_PICTURE data unit's
// payload: preamble, every slice, then the per-component inverse
// transform, producing a cropped decoded picture.
func decodePicture(payload []byte, seq SequenceState, profile pictureProfile) (*decodedPicture, error) {
	r := newBitReader(payload)
	preamble, err := parsePicturePreamble(r, profile)
	if err != nil {
		return nil, err
	}

	pictureHeight := seq.Height
	if seq.Interlaced {
		pictureHeight = seq.Height / 2
	}
	fmtPic := PictureFormat{Height: pictureHeight, Width: seq.Width, Format: seq.Format}
	chromaHeight, chromaWidth := fmtPic.ChromaExtent()

	kernel := waveletKernelID(preamble.waveletIndex)
	if kernel < 0 || int(kernel) >= len(kernelSpecs) {
		return nil, ErrUnsupportedWavelet
	}
	planes := newSliceTriple(fmtPic, preamble.depth)
	qMatrix := quantMatrix(kernel, preamble.depth)
	qIndices := newQIndexMatrix(preamble.slicesY, preamble.slicesX)

	switch profile {
	case profileLowDelay:
		decodeLowDelayPicture(payload, r.Position(), planes, preamble, qMatrix, qIndices)
	case profileHighQuality:
		if err := decodeHighQualityPicture(r, planes, preamble, qMatrix, qIndices); err != nil {
			return nil, err
		}
	}

	preTransform := snapshotPlanes(planes)
	inverseTransformComponents(planes, kernel, preamble.depth)

	return &decodedPicture{
		pictureNumber: preamble.pictureNumber,
		format:        fmtPic,
		lumaDepth:     seq.LumaDepth,
		chromaDepth:   seq.ChromaDepth,
		y:             cropPlane(planes.y, pictureHeight, seq.Width),
		c1:            cropPlane(planes.c1, chromaHeight, chromaWidth),
		c2:            cropPlane(planes.c2, chromaHeight, chromaWidth),
		kernel:        kernel,
		depth:         preamble.depth,
		transform:     preTransform,
		qIndices:      qIndices,
	}, nil
}

// fieldAssembler reassembles two coded field pictures of an interlaced
// sequence into one interleaved frame, per spec §4.7. It holds at most
// one pending field: the first field of a pair waits here until its
// partner arrives.
type fieldAssembler struct {
	pending *decodedPicture
}

// interlaceRows returns the frame's plane built by interleaving topRows
// and bottomRows by row parity, doubling the field height.
func interlaceRows(topRows, bottomRows [][]int32) [][]int32 {
	fieldHeight := len(topRows)
	out := make([][]int32, fieldHeight*2)
	for i := range fieldHeight {
		out[2*i] = topRows[i]
		out[2*i+1] = bottomRows[i]
	}
	return out
}

// interlaceComponentPlane merges two fields' pre-transform snapshots of one
// component into the frame's own padded plane, row-interleaving both the
// dequantised coefficients and the raw quantised indices the same way
// interlaceRows merges reconstructed samples.
func interlaceComponentPlane(top, bottom *componentPlane) *componentPlane {
	return &componentPlane{
		data:         interlaceRows(top.data, bottom.data),
		raw:          interlaceRows(top.raw, bottom.raw),
		paddedHeight: top.paddedHeight + bottom.paddedHeight,
		paddedWidth:  top.paddedWidth,
		depth:        top.depth,
	}
}

// interlaceQIndices stacks two fields' slice quantisation-index matrices,
// top field first, since each field owns its own independent slice grid
// rather than sharing one interleaved by row.
func interlaceQIndices(top, bottom [][]int) [][]int {
	out := make([][]int, 0, len(top)+len(bottom))
	out = append(out, top...)
	out = append(out, bottom...)
	return out
}

// Push submits a decoded field picture. It returns a completed frame once
// two fields have been paired (the second Push call of each pair), and nil
// otherwise.
func (a *fieldAssembler) Push(pic *decodedPicture, topFieldFirst bool) *decodedPicture {
	if a.pending == nil {
		a.pending = pic
		return nil
	}

	first, second := a.pending, pic
	a.pending = nil

	top, bottom := first, second
	if !topFieldFirst {
		top, bottom = second, first
	}

	frame := &decodedPicture{
		pictureNumber: first.pictureNumber,
		lumaDepth:     first.lumaDepth,
		chromaDepth:   first.chromaDepth,
		format: PictureFormat{
			Height: top.format.Height * 2,
			Width:  top.format.Width,
			Format: top.format.Format,
		},
		y:        interlaceRows(top.y, bottom.y),
		c1:       interlaceRows(top.c1, bottom.c1),
		c2:       interlaceRows(top.c2, bottom.c2),
		kernel:   first.kernel,
		depth:    first.depth,
		qIndices: interlaceQIndices(top.qIndices, bottom.qIndices),
	}
	if top.transform != nil && bottom.transform != nil {
		frame.transform = &sliceTriple{
			y:  interlaceComponentPlane(top.transform.y, bottom.transform.y),
			c1: interlaceComponentPlane(top.transform.c1, bottom.transform.c1),
			c2: interlaceComponentPlane(top.transform.c2, bottom.transform.c2),
		}
	}
	return frame
}
