// Package gdsii implements a minimal reader for the GDSII stream format:
// record framing, the numeric encodings (including the excess-64 real8
// format) and a structure-level parser for the mask elements the layout
// database consumes.
package gdsii

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"
)

// Record types used by the parser. Values are the stream-format record type
// bytes.
const (
	RecHeader   = 0x00
	RecBgnLib   = 0x01
	RecLibName  = 0x02
	RecUnits    = 0x03
	RecEndLib   = 0x04
	RecBgnStr   = 0x05
	RecStrName  = 0x06
	RecEndStr   = 0x07
	RecBoundary = 0x08
	RecPath     = 0x09
	RecSRef     = 0x0a
	RecARef     = 0x0b
	RecText     = 0x0c
	RecLayer    = 0x0d
	RecDatatype = 0x0e
	RecXY       = 0x10
	RecEndEl    = 0x11
	RecSName    = 0x12
	RecBox      = 0x2d
	RecBoxType  = 0x2e
)

// Data types carried by a record.
const (
	DataNone     = 0x00
	DataBitArray = 0x01
	DataInt16    = 0x02
	DataInt32    = 0x03
	DataReal4    = 0x04
	DataReal8    = 0x05
	DataASCII    = 0x06
)

// A Record is one framed stream record: its record type, the declared data
// type and the raw payload.
//
type Record struct {
	Type byte
	Data byte
	Body []byte
}

// Int16s decodes the payload as big-endian 16-bit integers.
//
func (r *Record) Int16s() ([]int16, error) {
	if r.Data != DataInt16 || len(r.Body)%2 != 0 {
		return nil, errors.Errorf("record %#02x: not an int16 payload", r.Type)
	}
	out := make([]int16, len(r.Body)/2)
	for i := range out {
		out[i] = int16(binary.BigEndian.Uint16(r.Body[2*i:]))
	}
	return out, nil
}

// Int32s decodes the payload as big-endian 32-bit integers.
//
func (r *Record) Int32s() ([]int32, error) {
	if r.Data != DataInt32 || len(r.Body)%4 != 0 {
		return nil, errors.Errorf("record %#02x: not an int32 payload", r.Type)
	}
	out := make([]int32, len(r.Body)/4)
	for i := range out {
		out[i] = int32(binary.BigEndian.Uint32(r.Body[4*i:]))
	}
	return out, nil
}

// Real8s decodes the payload as excess-64 base-16 8-byte reals.
//
func (r *Record) Real8s() ([]float64, error) {
	if r.Data != DataReal8 || len(r.Body)%8 != 0 {
		return nil, errors.Errorf("record %#02x: not a real8 payload", r.Type)
	}
	out := make([]float64, len(r.Body)/8)
	for i := range out {
		out[i] = decodeReal8(binary.BigEndian.Uint64(r.Body[8*i:]))
	}
	return out, nil
}

// Str decodes the payload as an ASCII string, dropping the padding NUL the
// format adds to odd-length strings.
//
func (r *Record) Str() (string, error) {
	if r.Data != DataASCII {
		return "", errors.Errorf("record %#02x: not an ASCII payload", r.Type)
	}
	b := r.Body
	if n := len(b); n > 0 && b[n-1] == 0 {
		b = b[:n-1]
	}
	return string(b), nil
}

// decodeReal8 converts the stream real8 encoding: a sign bit, a 7-bit
// excess-64 exponent of 16, and a 56-bit mantissa scaled by 2^-56.
func decodeReal8(bits uint64) float64 {
	mantissa := float64(bits&(1<<56-1)) / (1 << 56)
	exp := int(bits>>56&0x7f) - 64
	v := mantissa * math.Pow(16, float64(exp))
	if bits&(1<<63) != 0 {
		return -v
	}
	return v
}

// A Reader reads framed records from a stream.
//
type Reader struct {
	r io.Reader
}

// NewReader returns a record reader over r.
//
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Next reads the next record. It returns io.EOF at a clean record boundary
// and an error for truncated or malformed framing.
//
func (r *Reader) Next() (Record, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(r.r, hdr[:2]); err != nil {
		if err == io.EOF {
			return Record{}, io.EOF
		}
		return Record{}, errors.Wrap(err, "read record length")
	}
	size := int(binary.BigEndian.Uint16(hdr[:2]))
	if size < 4 || size%2 != 0 {
		return Record{}, errors.Errorf("invalid record length %d", size)
	}
	if _, err := io.ReadFull(r.r, hdr[2:]); err != nil {
		return Record{}, errors.Wrap(err, "read record header")
	}
	rec := Record{Type: hdr[2], Data: hdr[3]}
	if size > 4 {
		rec.Body = make([]byte, size-4)
		if _, err := io.ReadFull(r.r, rec.Body); err != nil {
			return Record{}, errors.Wrapf(err, "read record %#02x body", rec.Type)
		}
	}
	return rec, nil
}
