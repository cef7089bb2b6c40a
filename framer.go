package vc2decode

import (
	"encoding/binary"
	"errors"
	"io"
)

// parseCode identifies the type of a VC-2 data unit, taken from the
// parse_info block's parse_code byte.
type parseCode byte

const (
	parseCodeSequenceHeader parseCode = 0x00
	parseCodeEndOfSequence  parseCode = 0x10
	parseCodeAuxiliaryData parseCode = 0x20
	parseCodePaddingData    parseCode = 0x30
	parseCodeLDPicture      parseCode = 0xC8
	parseCodeHQPicture      parseCode = 0xE8
)

// parseInfoPrefix is the 4-byte "BBCD" prefix that opens every parse_info
// block.
var parseInfoPrefix = [4]byte{0x42, 0x42, 0x43, 0x44}

const parseInfoLen = 13

// dataUnit is one framed VC-2 message: its type and its payload bytes
// (the bytes strictly between the parse_info block and the next one).
type dataUnit struct {
	kind    parseCode
	payload []byte
}

// streamFramer scans an underlying byte source for parse_info blocks and
// yields the DataUnits between them. It tracks a running byte cursor and
// resynchronises (rescans for the prefix) whenever a parse_info block is
// not found at the expected next_parse_offset.
type streamFramer struct {
	r      io.Reader
	buf    []byte // all bytes read so far
	cursor int    // byte offset of the next unread parse_info candidate
	synced bool
}

func newStreamFramer(r io.Reader) *streamFramer {
	return &streamFramer{r: r}
}

// fill reads from the underlying reader until buf holds at least upto bytes,
// returning io.EOF (undecorated) only when the underlying reader is
// genuinely exhausted.
func (f *streamFramer) fill(upto int) error {
	for len(f.buf) < upto {
		chunk := make([]byte, 4096)
		n, err := f.r.Read(chunk)
		if n > 0 {
			f.buf = append(f.buf, chunk[:n]...)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return io.EOF
			}
			return err
		}
		if n == 0 {
			return io.EOF
		}
	}
	return nil
}

// synchronise scans byte-by-byte from the current cursor until the 4-byte
// parse_info prefix is matched, leaving the cursor at the start of the
// matched prefix. Returns io.EOF if the prefix never appears.
func (f *streamFramer) synchronise() error {
	for {
		if err := f.fill(f.cursor + 4); err != nil {
			return err
		}
		for f.cursor+4 <= len(f.buf) {
			if f.buf[f.cursor] == parseInfoPrefix[0] &&
				f.buf[f.cursor+1] == parseInfoPrefix[1] &&
				f.buf[f.cursor+2] == parseInfoPrefix[2] &&
				f.buf[f.cursor+3] == parseInfoPrefix[3] {
				f.synced = true
				return nil
			}
			f.cursor++
		}
	}
}

// Next reads the next data unit, resynchronising if the parse_info at the
// expected position is missing or malformed. Returns io.EOF once the
// stream is exhausted cleanly at a parse_info boundary.
func (f *streamFramer) Next() (dataUnit, error) {
	if !f.synced {
		if err := f.synchronise(); err != nil {
			return dataUnit{}, err
		}
	}

	if err := f.fill(f.cursor + parseInfoLen); err != nil {
		return dataUnit{}, err
	}

	header := f.buf[f.cursor : f.cursor+parseInfoLen]
	code := parseCode(header[4])
	nextOffset := binary.BigEndian.Uint32(header[5:9])

	payloadStart := f.cursor + parseInfoLen
	var payloadEnd int
	if nextOffset == 0 {
		// 0 is only valid for END_OF_SEQUENCE and certain auxiliary types;
		// payload runs to the next discovered parse_info or EOF.
		f.cursor = payloadStart
		if err := f.synchronise(); err != nil {
			if errors.Is(err, io.EOF) {
				payloadEnd = len(f.buf)
				f.synced = false
			} else {
				return dataUnit{}, err
			}
		} else {
			payloadEnd = f.cursor
		}
	} else {
		payloadEnd = f.cursor + int(nextOffset)
		if err := f.fill(payloadEnd); err != nil {
			// Truncated payload: never yield a data unit extending past EOF.
			return dataUnit{}, io.EOF
		}
		// Verify a parse_info actually sits at the declared offset; if not,
		// the frame is corrupt and we must resynchronise instead of trusting
		// the offset.
		if payloadEnd+4 <= len(f.buf) &&
			!(f.buf[payloadEnd] == parseInfoPrefix[0] &&
				f.buf[payloadEnd+1] == parseInfoPrefix[1] &&
				f.buf[payloadEnd+2] == parseInfoPrefix[2] &&
				f.buf[payloadEnd+3] == parseInfoPrefix[3]) {
			f.cursor = payloadStart
			f.synced = false
			if err := f.synchronise(); err != nil {
				if errors.Is(err, io.EOF) {
					// Corruption was detected and no further parse_info ever
					// appears: unlike the legitimate nextOffset==0 case above,
					// this was supposed to be a well-framed data unit.
					return dataUnit{}, ErrFramingLost
				}
				return dataUnit{}, err
			}
			payloadEnd = f.cursor
		} else {
			f.cursor = payloadEnd
		}
	}

	du := dataUnit{kind: code, payload: f.buf[payloadStart:payloadEnd]}
	return du, nil
}
