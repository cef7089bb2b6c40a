package vc2decode

import (
	"errors"
	"io"
	"log/slog"
)

// Config configures a DecoderDriver run.
type Config struct {
	Input   io.Reader
	Output  io.Writer
	Mode    OutputMode
	Verbose bool
}

// DecoderDriver drives a VC-2 byte stream end to end: framing, sequence
// and picture parsing, slice decode, wavelet synthesis, interlace
// reassembly, and serialization.
type DecoderDriver struct {
	cfg     Config
	framer  *streamFramer
	seq     SequenceState
	fields  fieldAssembler
	frames  int
}

// NewDriver constructs a DecoderDriver over cfg.Input, writing decoded
// output to cfg.Output as data units are processed.
func NewDriver(cfg Config) *DecoderDriver {
	return &DecoderDriver{
		cfg:    cfg,
		framer: newStreamFramer(cfg.Input),
	}
}

func (d *DecoderDriver) logf(msg string, args ...any) {
	if d.cfg.Verbose {
		slog.Info("vc2decode: "+msg, args...)
	}
}

// Run processes the configured input to completion, returning nil on a
// clean end of stream. Per spec §9, END_OF_SEQUENCE always terminates the
// run cleanly regardless of Verbose: the original reference decoder only
// took this path when verbose logging was enabled, silently falling
// through to decode subsequent bytes as data units otherwise.
func (d *DecoderDriver) Run() error {
	for {
		du, err := d.framer.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		switch du.kind {
		case parseCodeSequenceHeader:
			seq, err := parseSequenceHeader(newBitReader(du.payload))
			if err != nil {
				return err
			}
			d.seq = seq
			d.logf("sequence header", "width", seq.Width, "height", seq.Height, "interlaced", seq.Interlaced)

		case parseCodeEndOfSequence:
			d.logf("end of sequence", "frames", d.frames)
			return nil

		case parseCodeAuxiliaryData, parseCodePaddingData:
			// Not part of the decoded picture stream; skip.

		case parseCodeLDPicture, parseCodeHQPicture:
			if !d.seq.valid {
				d.logf("dropping picture data unit: no sequence header yet")
				continue
			}
			if err := d.decodePicture(du); err != nil {
				d.logf("dropping picture data unit: decode failed", "error", err)
				continue
			}

		default:
			d.logf("dropping unrecognized data unit", "parse_code", du.kind)
		}
	}
}

func (d *DecoderDriver) decodePicture(du dataUnit) error {
	profile := profileLowDelay
	if du.kind == parseCodeHQPicture {
		profile = profileHighQuality
	}

	pic, err := decodePicture(du.payload, d.seq, profile)
	if err != nil {
		return err
	}
	d.logf("picture decoded", "number", pic.pictureNumber, "profile", profile)

	if !d.seq.Interlaced {
		return d.emit(pic)
	}

	if frame := d.fields.Push(pic, d.seq.TopFieldFirst); frame != nil {
		return d.emit(frame)
	}
	return nil
}

func (d *DecoderDriver) emit(pic *decodedPicture) error {
	frame := newFrame(pic)
	d.frames++
	if d.cfg.Output == nil {
		return nil
	}
	return frame.WriteTo(d.cfg.Output, d.cfg.Mode)
}
