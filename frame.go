package vc2decode

import (
	"encoding/binary"
	"io"

	"github.com/ajroetker/go-highway/hwy"
)

// OutputMode selects what a Frame serializes: the final decoded samples,
// or one of three debug views into the decode pipeline (spec §8's S3 and
// introspection scenarios).
type OutputMode int

const (
	OutputDecoded OutputMode = iota
	OutputTransform
	OutputQuantised
	OutputIndices
)

// clipPlane clamps every sample in rows to the signed range [minVal, maxVal]
// in place, processing each row in MaxLanes-wide chunks via the SIMD
// min/max primitives (spec §4.6's final clip step, applied once per
// component after the inverse transform, ahead of writeSample's
// offset-binary bias).
func clipPlane(rows [][]int32, minVal, maxVal int32) {
	lo := hwy.Set(minVal)
	hi := hwy.Set(maxVal)
	lanes := hwy.MaxLanes[int32]()

	for _, row := range rows {
		i := 0
		for ; i+lanes <= len(row); i += lanes {
			v := hwy.Load(row[i : i+lanes])
			v = hwy.Max(v, lo)
			v = hwy.Min(v, hi)
			hwy.Store(v, row[i:i+lanes])
		}
		for ; i < len(row); i++ {
			if row[i] < minVal {
				row[i] = minVal
			} else if row[i] > maxVal {
				row[i] = maxVal
			}
		}
	}
}

// signedRange returns the clip bounds [-2^(d-1), 2^(d-1)-1] a depth-d
// reconstructed component's samples must fall within before the
// offset-binary bias is applied (spec §4.9).
func signedRange(depth int) (minVal, maxVal int32) {
	half := int32(1) << uint(depth-1)
	return -half, half - 1
}

// Frame is a fully reconstructed, clipped VC-2 picture ready for output.
type Frame struct {
	PictureNumber uint32
	Format        PictureFormat
	LumaDepth     int
	ChromaDepth   int
	Y, C1, C2     [][]int32

	pic *decodedPicture
}

// newFrame clips a decoded picture's samples to their legal signal range
// and wraps it for serialization.
func newFrame(pic *decodedPicture) *Frame {
	lumaMin, lumaMax := signedRange(pic.lumaDepth)
	chromaMin, chromaMax := signedRange(pic.chromaDepth)
	clipPlane(pic.y, lumaMin, lumaMax)
	clipPlane(pic.c1, chromaMin, chromaMax)
	clipPlane(pic.c2, chromaMin, chromaMax)
	return &Frame{
		PictureNumber: pic.pictureNumber,
		Format:        pic.format,
		LumaDepth:     pic.lumaDepth,
		ChromaDepth:   pic.chromaDepth,
		Y:             pic.y,
		C1:            pic.c1,
		C2:            pic.c2,
		pic:           pic,
	}
}

// writeSample writes one sample as an offset-binary, left-justified value
// occupying bytesPerSample bytes: v (already clipped to the signed range
// [-2^(depth-1), 2^(depth-1)-1]) is biased by 2^(depth-1) into an unsigned
// word, then shifted so its most significant bit sits in the most
// significant bit of the output word, matching VC-2's defined pixel output
// format (spec §4.9).
func writeSample(w io.Writer, v int32, depth, bytesPerSample int) error {
	bias := int32(1) << uint(depth-1)
	shift := uint(bytesPerSample*8 - depth)
	word := uint32(v+bias) << shift
	switch bytesPerSample {
	case 1:
		_, err := w.Write([]byte{byte(word)})
		return err
	default:
		buf := make([]byte, 2)
		binary.BigEndian.PutUint16(buf, uint16(word))
		_, err := w.Write(buf)
		return err
	}
}

// writeSampleS32 writes one raw transform/quantised coefficient as a plain
// signed two's-complement 32-bit little-endian word: unlike writeSample,
// there is no offset-binary bias and no depth-dependent shift, since these
// are coefficient magnitudes (routinely exceeding any pixel depth's signed
// range), not reconstructed samples.
func writeSampleS32(w io.Writer, v int32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(v))
	_, err := w.Write(buf[:])
	return err
}

func writePlaneS32(w io.Writer, rows [][]int32) error {
	for _, row := range rows {
		for _, v := range row {
			if err := writeSampleS32(w, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeQIndices serialises a slicesY x slicesX matrix of per-slice
// quantisation indices as one unsigned byte per slice, in (sy, sx) raster
// order, for OutputIndices.
func writeQIndices(w io.Writer, qIndices [][]int) error {
	for _, row := range qIndices {
		buf := make([]byte, len(row))
		for x, q := range row {
			buf[x] = byte(q)
		}
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

func writePlane(w io.Writer, rows [][]int32, depth int) error {
	bps := bytesPerSample(depth)
	for _, row := range rows {
		for _, v := range row {
			if err := writeSample(w, v, depth, bps); err != nil {
				return err
			}
		}
	}
	return nil
}

// subbandOrigin returns the top-left corner, in the padded plane's pixel
// grid, at which a subband's own (height x width) coefficient grid sits.
func subbandOrigin(paddedHeight, paddedWidth, depth int, sb subbandInfo) (rowOff, colOff int) {
	if sb.band == bandLL {
		return 0, 0
	}
	rowOff, colOff = 0, 0
	if sb.band == bandHL || sb.band == bandHH {
		colOff = paddedWidth >> uint(sb.level)
	}
	if sb.band == bandLH || sb.band == bandHH {
		rowOff = paddedHeight >> uint(sb.level)
	}
	return rowOff, colOff
}

// WriteTo serializes the frame in the given output mode, components in
// planar Y, C1, C2 order.
func (f *Frame) WriteTo(w io.Writer, mode OutputMode) error {
	switch mode {
	case OutputDecoded:
		if err := writePlane(w, f.Y, f.LumaDepth); err != nil {
			return err
		}
		if err := writePlane(w, f.C1, f.ChromaDepth); err != nil {
			return err
		}
		return writePlane(w, f.C2, f.ChromaDepth)
	case OutputTransform:
		return f.writeDebugPlanes(w, func(p *componentPlane) [][]int32 { return p.data })
	case OutputQuantised:
		return f.writeDebugPlanes(w, func(p *componentPlane) [][]int32 { return p.raw })
	case OutputIndices:
		if f.pic.qIndices == nil {
			return ErrDecodeFailed
		}
		return writeQIndices(w, f.pic.qIndices)
	}
	return ErrDecodeFailed
}

func (f *Frame) writeDebugPlanes(w io.Writer, pick func(*componentPlane) [][]int32) error {
	if f.pic.transform == nil {
		return ErrDecodeFailed
	}
	for _, p := range []*componentPlane{f.pic.transform.y, f.pic.transform.c1, f.pic.transform.c2} {
		if err := writePlaneS32(w, pick(p)); err != nil {
			return err
		}
	}
	return nil
}
