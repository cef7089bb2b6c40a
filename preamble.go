package vc2decode

// pictureProfile distinguishes the two VC-2 picture carriage profiles.
type pictureProfile int

const (
	profileLowDelay pictureProfile = iota
	profileHighQuality
)

// picturePreamble carries the fields common to both carriage profiles plus
// the profile-specific rate-control fields (spec §3, §4.4).
type picturePreamble struct {
	pictureNumber uint32
	waveletIndex  int
	depth         int
	slicesX       int
	slicesY       int

	// Low Delay
	sliceBytesNumerator   uint32
	sliceBytesDenominator uint32

	// High Quality
	slicePrefixBytes int
	sliceSizeScalar  int
}

// parsePicturePreamble reads the fields common to LD_PICTURE and
// HQ_PICTURE data units, per spec §4.4. The caller must have already
// byte-aligned r following the parse_info block.
func parsePicturePreamble(r *bitReader, profile pictureProfile) (picturePreamble, error) {
	var p picturePreamble

	num, err := r.ReadUint32()
	if err != nil {
		return p, err
	}
	p.pictureNumber = num

	waveletIdx, err := r.ReadUint()
	if err != nil {
		return p, err
	}
	p.waveletIndex = int(waveletIdx)

	depth, err := r.ReadUint()
	if err != nil {
		return p, err
	}
	p.depth = int(depth)

	slicesX, err := r.ReadUint()
	if err != nil {
		return p, err
	}
	p.slicesX = int(slicesX)

	slicesY, err := r.ReadUint()
	if err != nil {
		return p, err
	}
	p.slicesY = int(slicesY)

	switch profile {
	case profileLowDelay:
		num, err := r.ReadUint()
		if err != nil {
			return p, err
		}
		den, err := r.ReadUint()
		if err != nil {
			return p, err
		}
		p.sliceBytesNumerator = num
		p.sliceBytesDenominator = den
	case profileHighQuality:
		prefix, err := r.ReadUint()
		if err != nil {
			return p, err
		}
		scalar, err := r.ReadUint()
		if err != nil {
			return p, err
		}
		p.slicePrefixBytes = int(prefix)
		p.sliceSizeScalar = int(scalar)
	}

	r.ByteAlign()
	return p, nil
}

// compressedPictureBytes returns the total compressed payload size in
// bytes for a Low Delay picture, per spec §4.4: exact by construction.
func (p picturePreamble) compressedPictureBytes() int {
	if p.sliceBytesDenominator == 0 {
		return 0
	}
	total := uint64(p.sliceBytesNumerator) * uint64(p.slicesY) * uint64(p.slicesX)
	return int(total / uint64(p.sliceBytesDenominator))
}
