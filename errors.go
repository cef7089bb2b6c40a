package vc2decode

import "errors"

var (
	ErrInvalidHeader      = errors.New("vc2decode: invalid header")
	ErrTruncatedData      = errors.New("vc2decode: truncated data")
	ErrFramingLost        = errors.New("vc2decode: lost parse_info synchronisation")
	ErrUnsupportedWavelet = errors.New("vc2decode: unsupported wavelet kernel")
	ErrDecodeFailed       = errors.New("vc2decode: decode failed")
)
