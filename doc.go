// Package vc2decode implements the decode-side core of a SMPTE VC-2
// (ST 2042) video stream decoder: data-unit framing, Low Delay and High
// Quality slice decoding, inverse quantisation, inverse wavelet synthesis
// across the seven VC-2 wavelet kernels, and interlaced field reassembly.
//
// Decoding a stream:
//
//	dec := vc2decode.NewDriver(vc2decode.Config{
//	    Input:  reader,
//	    Output: writer,
//	    Mode:   vc2decode.OutputDecoded,
//	})
//	if err := dec.Run(); err != nil {
//	    log.Fatal(err)
//	}
//
// The package does not parse command-line flags, open files, or manage
// container formats; callers construct a Config from whatever external
// configuration source they use.
package vc2decode
