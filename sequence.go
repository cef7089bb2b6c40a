package vc2decode

// frameRate is a rational frames-per-second descriptor.
type frameRate struct {
	Numerator   uint32
	Denominator uint32
}

// SequenceState is the mutable per-stream state established by the most
// recently parsed SEQUENCE_HEADER data unit. It is uninitialised until the
// first sequence header is seen.
type SequenceState struct {
	valid bool

	Height         int
	Width          int
	Format         ColourFormat
	Interlaced     bool
	TopFieldFirst  bool
	LumaDepth      int
	ChromaDepth    int
	BytesPerSample int
	FrameRate      frameRate

	// baseVideoFormat is retained only because the original decoder logs
	// it at verbose; no operation in this module consumes it further.
	baseVideoFormat int
}

// bytesPerSample returns 1 for depth <= 8, else 2, per spec §3.
func bytesPerSample(depth int) int {
	if depth <= 8 {
		return 1
	}
	return 2
}

// baseVideoFormatPreset holds the SMPTE ST 2042-1 Table 12 preset values seeded
// by a sequence header's base_video_format index before custom overrides
// are applied.
type baseVideoFormatPreset struct {
	width, height     int
	format            ColourFormat
	interlaced        bool
	topFieldFirst     bool
	frameRateNum      uint32
	frameRateDen      uint32
	lumaDepth         int
	chromaDepth       int
}

// baseVideoFormats is the SMPTE ST 2042-1 Table 12 preset table, reproduced
// verbatim per spec §4.3. Index 0 is the fully-custom format (every field
// must be overridden by the stream).
var baseVideoFormats = [...]baseVideoFormatPreset{
	0:  {0, 0, Format420, false, true, 0, 0, 8, 8},
	1:  {176, 120, Format420, false, true, 15, 1, 8, 8},
	2:  {176, 144, Format420, false, true, 25, 2, 8, 8},
	3:  {352, 240, Format420, false, true, 15, 1, 8, 8},
	4:  {352, 288, Format420, false, true, 25, 2, 8, 8},
	5:  {704, 480, Format420, false, true, 15, 1, 8, 8},
	6:  {704, 576, Format420, false, true, 25, 2, 8, 8},
	7:  {720, 480, Format422, true, false, 30000, 1001, 8, 8},
	8:  {720, 576, Format422, true, true, 25, 1, 8, 8},
	9:  {1280, 720, Format422, false, true, 60000, 1001, 8, 8},
	10: {1280, 720, Format422, false, true, 50, 1, 8, 8},
	11: {1920, 1080, Format422, true, false, 30000, 1001, 8, 8},
	12: {1920, 1080, Format422, true, true, 25, 1, 8, 8},
	13: {1920, 1080, Format422, false, true, 60000, 1001, 8, 8},
	14: {1920, 1080, Format422, false, true, 50, 1, 8, 8},
	15: {2048, 1080, Format444, false, true, 24, 1, 12, 12},
	16: {4096, 2160, Format444, false, true, 24, 1, 12, 12},
	17: {3840, 2160, Format422, false, true, 60000, 1001, 10, 10},
	18: {3840, 2160, Format422, false, true, 50, 1, 10, 10},
	19: {7680, 4320, Format422, false, true, 60000, 1001, 10, 10},
	20: {7680, 4320, Format422, false, true, 50, 1, 10, 10},
}

// colourDiffFormats maps a custom colour-differencing preset index to its
// ColourFormat.
var colourDiffFormats = [...]ColourFormat{0: Format444, 1: Format444, 2: Format422, 3: Format420}

// signalRangeDepths maps a custom signal-range preset index to (lumaDepth,
// chromaDepth) per SMPTE ST 2042-1 Table 14.
var signalRangeDepths = [...][2]int{
	0: {8, 8},
	1: {8, 8},
	2: {8, 8},
	3: {10, 10},
	4: {12, 12},
}

// frameRatePresets maps a custom frame-rate preset index to (numerator,
// denominator) per SMPTE ST 2042-1 Table 13.
var frameRatePresets = [...][2]uint32{
	0:  {0, 0},
	1:  {24000, 1001},
	2:  {24, 1},
	3:  {25, 1},
	4:  {30000, 1001},
	5:  {30, 1},
	6:  {50, 1},
	7:  {60000, 1001},
	8:  {60, 1},
	9:  {15, 1},
	10: {25, 2},
}

// parseSequenceHeader reads a SEQUENCE_HEADER data unit per spec §4.3,
// seeding defaults from the base_video_format table and applying any
// custom-overrides groups present in the stream.
func parseSequenceHeader(r *bitReader) (SequenceState, error) {
	if _, err := r.ReadUint(); err != nil { // major_version
		return SequenceState{}, err
	}
	if _, err := r.ReadUint(); err != nil { // minor_version
		return SequenceState{}, err
	}
	if _, err := r.ReadUint(); err != nil { // profile
		return SequenceState{}, err
	}
	if _, err := r.ReadUint(); err != nil { // level
		return SequenceState{}, err
	}

	baseIdx64, err := r.ReadUint()
	if err != nil {
		return SequenceState{}, err
	}
	baseIdx := int(baseIdx64)
	if baseIdx < 0 || baseIdx >= len(baseVideoFormats) {
		baseIdx = 0
	}
	preset := baseVideoFormats[baseIdx]

	state := SequenceState{
		valid:           true,
		Height:          preset.height,
		Width:           preset.width,
		Format:          preset.format,
		Interlaced:      preset.interlaced,
		TopFieldFirst:   preset.topFieldFirst,
		LumaDepth:       preset.lumaDepth,
		ChromaDepth:     preset.chromaDepth,
		FrameRate:       frameRate{preset.frameRateNum, preset.frameRateDen},
		baseVideoFormat: baseIdx,
	}

	// Frame dimensions custom override.
	customDims, err := r.ReadBool()
	if err != nil {
		return SequenceState{}, err
	}
	if customDims {
		w, err := r.ReadUint()
		if err != nil {
			return SequenceState{}, err
		}
		h, err := r.ReadUint()
		if err != nil {
			return SequenceState{}, err
		}
		state.Width, state.Height = int(w), int(h)
	}

	// Colour differencing format custom override.
	customColourDiff, err := r.ReadBool()
	if err != nil {
		return SequenceState{}, err
	}
	if customColourDiff {
		idx, err := r.ReadUint()
		if err != nil {
			return SequenceState{}, err
		}
		if int(idx) < len(colourDiffFormats) {
			state.Format = colourDiffFormats[idx]
		}
	}

	// Scan format (progressive/interlace, top-field-first) custom override.
	customScan, err := r.ReadBool()
	if err != nil {
		return SequenceState{}, err
	}
	if customScan {
		idx, err := r.ReadUint()
		if err != nil {
			return SequenceState{}, err
		}
		state.Interlaced = idx != 0
		if state.Interlaced {
			tff, err := r.ReadBool()
			if err != nil {
				return SequenceState{}, err
			}
			state.TopFieldFirst = tff
		}
	}

	// Frame rate custom override.
	customRate, err := r.ReadBool()
	if err != nil {
		return SequenceState{}, err
	}
	if customRate {
		idx, err := r.ReadUint()
		if err != nil {
			return SequenceState{}, err
		}
		if idx == 0 {
			num, err := r.ReadUint()
			if err != nil {
				return SequenceState{}, err
			}
			den, err := r.ReadUint()
			if err != nil {
				return SequenceState{}, err
			}
			state.FrameRate = frameRate{num, den}
		} else if int(idx) < len(frameRatePresets) {
			preset := frameRatePresets[idx]
			state.FrameRate = frameRate{preset[0], preset[1]}
		}
	}

	// Pixel aspect ratio custom override: parsed and discarded (not part
	// of SequenceState per spec §3).
	customAspect, err := r.ReadBool()
	if err != nil {
		return SequenceState{}, err
	}
	if customAspect {
		idx, err := r.ReadUint()
		if err != nil {
			return SequenceState{}, err
		}
		if idx == 0 {
			if _, err := r.ReadUint(); err != nil { // numerator
				return SequenceState{}, err
			}
			if _, err := r.ReadUint(); err != nil { // denominator
				return SequenceState{}, err
			}
		}
	}

	// Clean area custom override: parsed and discarded.
	customClean, err := r.ReadBool()
	if err != nil {
		return SequenceState{}, err
	}
	if customClean {
		for range 4 { // clean_width, clean_height, left_offset, top_offset
			if _, err := r.ReadUint(); err != nil {
				return SequenceState{}, err
			}
		}
	}

	// Signal range custom override.
	customRange, err := r.ReadBool()
	if err != nil {
		return SequenceState{}, err
	}
	if customRange {
		idx, err := r.ReadUint()
		if err != nil {
			return SequenceState{}, err
		}
		if idx == 0 {
			for range 4 { // luma_offset, luma_excursion, chroma_offset, chroma_excursion
				if _, err := r.ReadUint(); err != nil {
					return SequenceState{}, err
				}
			}
			// Custom ranges don't name a bit depth directly; keep the preset.
		} else if int(idx) < len(signalRangeDepths) {
			depths := signalRangeDepths[idx]
			state.LumaDepth, state.ChromaDepth = depths[0], depths[1]
		}
	}

	// Colour spec custom override: primaries/matrix/transfer sub-groups,
	// parsed and discarded (not part of SequenceState per spec §3).
	customColourSpec, err := r.ReadBool()
	if err != nil {
		return SequenceState{}, err
	}
	if customColourSpec {
		idx, err := r.ReadUint()
		if err != nil {
			return SequenceState{}, err
		}
		if idx == 0 {
			customPrimaries, err := r.ReadBool()
			if err != nil {
				return SequenceState{}, err
			}
			if customPrimaries {
				if _, err := r.ReadUint(); err != nil {
					return SequenceState{}, err
				}
			}
			customMatrix, err := r.ReadBool()
			if err != nil {
				return SequenceState{}, err
			}
			if customMatrix {
				if _, err := r.ReadUint(); err != nil {
					return SequenceState{}, err
				}
			}
			customTransfer, err := r.ReadBool()
			if err != nil {
				return SequenceState{}, err
			}
			if customTransfer {
				if _, err := r.ReadUint(); err != nil {
					return SequenceState{}, err
				}
			}
		}
	}

	if state.Width <= 0 || state.Height <= 0 {
		return SequenceState{}, ErrInvalidHeader
	}

	state.BytesPerSample = bytesPerSample(state.LumaDepth)
	return state, nil
}
