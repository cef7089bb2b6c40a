package vc2decode

import "testing"

func TestParseSequenceHeader_BaseFormatNoCustom(t *testing.T) {
	b := &bitBuilder{}
	b.WriteUint(2) // major_version
	b.WriteUint(0) // minor_version
	b.WriteUint(0) // profile
	b.WriteUint(0) // level
	b.WriteUint(10) // base_video_format: HD720p/50
	for range 8 {
		b.WriteBool(false) // no custom overrides
	}

	r := newBitReader(b.Bytes())
	state, err := parseSequenceHeader(r)
	if err != nil {
		t.Fatalf("parseSequenceHeader: %v", err)
	}
	want := baseVideoFormats[10]
	if state.Width != want.width || state.Height != want.height {
		t.Errorf("dims = %dx%d, want %dx%d", state.Width, state.Height, want.width, want.height)
	}
	if state.Format != want.format {
		t.Errorf("format = %v, want %v", state.Format, want.format)
	}
	if state.LumaDepth != want.lumaDepth || state.ChromaDepth != want.chromaDepth {
		t.Errorf("depths = (%d,%d), want (%d,%d)", state.LumaDepth, state.ChromaDepth, want.lumaDepth, want.chromaDepth)
	}
	if state.BytesPerSample != bytesPerSample(want.lumaDepth) {
		t.Errorf("BytesPerSample = %d, want %d", state.BytesPerSample, bytesPerSample(want.lumaDepth))
	}
}

func TestParseSequenceHeader_CustomDimensions(t *testing.T) {
	b := &bitBuilder{}
	b.WriteUint(2)
	b.WriteUint(0)
	b.WriteUint(0)
	b.WriteUint(0)
	b.WriteUint(0) // base_video_format: fully custom
	b.WriteBool(true)
	b.WriteUint(1920)
	b.WriteUint(1080)
	for range 7 {
		b.WriteBool(false)
	}

	r := newBitReader(b.Bytes())
	state, err := parseSequenceHeader(r)
	if err != nil {
		t.Fatalf("parseSequenceHeader: %v", err)
	}
	if state.Width != 1920 || state.Height != 1080 {
		t.Errorf("dims = %dx%d, want 1920x1080", state.Width, state.Height)
	}
}

func TestParseSequenceHeader_CustomFrameRateExplicit(t *testing.T) {
	b := &bitBuilder{}
	b.WriteUint(2)
	b.WriteUint(0)
	b.WriteUint(0)
	b.WriteUint(0)
	b.WriteUint(9) // base_video_format: 1280x720/60000:1001, non-custom dims
	b.WriteBool(false) // dims
	b.WriteBool(false) // colour diff
	b.WriteBool(false) // scan format
	b.WriteBool(true)  // frame rate custom
	b.WriteUint(0)     // index 0: explicit
	b.WriteUint(24000)
	b.WriteUint(1001)
	for range 4 {
		b.WriteBool(false)
	}

	r := newBitReader(b.Bytes())
	state, err := parseSequenceHeader(r)
	if err != nil {
		t.Fatalf("parseSequenceHeader: %v", err)
	}
	if state.FrameRate.Numerator != 24000 || state.FrameRate.Denominator != 1001 {
		t.Errorf("frame rate = %d/%d, want 24000/1001", state.FrameRate.Numerator, state.FrameRate.Denominator)
	}
}

func TestParseSequenceHeader_CustomSignalRangePreset(t *testing.T) {
	b := &bitBuilder{}
	b.WriteUint(2)
	b.WriteUint(0)
	b.WriteUint(0)
	b.WriteUint(0)
	b.WriteUint(9) // base_video_format: 1280x720/60000:1001, non-custom dims
	for range 5 {
		b.WriteBool(false) // dims, colour diff, scan, rate, aspect
	}
	b.WriteBool(false) // clean area
	b.WriteBool(true)  // signal range custom
	b.WriteUint(4)     // preset index 4: 12-bit
	b.WriteBool(false) // colour spec

	r := newBitReader(b.Bytes())
	state, err := parseSequenceHeader(r)
	if err != nil {
		t.Fatalf("parseSequenceHeader: %v", err)
	}
	if state.LumaDepth != 12 || state.ChromaDepth != 12 {
		t.Errorf("depths = (%d,%d), want (12,12)", state.LumaDepth, state.ChromaDepth)
	}
	if state.BytesPerSample != 2 {
		t.Errorf("BytesPerSample = %d, want 2", state.BytesPerSample)
	}
}

func TestBytesPerSample(t *testing.T) {
	cases := map[int]int{8: 1, 10: 2, 12: 2, 16: 2}
	for depth, want := range cases {
		if got := bytesPerSample(depth); got != want {
			t.Errorf("bytesPerSample(%d) = %d, want %d", depth, got, want)
		}
	}
}
