package gdsii

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(typ, dtype byte, body ...byte) []byte {
	n := len(body) + 4
	out := []byte{byte(n >> 8), byte(n), typ, dtype}
	return append(out, body...)
}

func i16(vals ...int16) []byte {
	out := make([]byte, 2*len(vals))
	for i, v := range vals {
		binary.BigEndian.PutUint16(out[2*i:], uint16(v))
	}
	return out
}

func i32(vals ...int32) []byte {
	out := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.BigEndian.PutUint32(out[4*i:], uint32(v))
	}
	return out
}

func str(s string) []byte {
	b := []byte(s)
	if len(b)%2 != 0 {
		b = append(b, 0)
	}
	return b
}

// encodeReal8 is the inverse of decodeReal8, used to build test streams.
func encodeReal8(v float64) []byte {
	var bits uint64
	if v != 0 {
		if v < 0 {
			bits = 1 << 63
			v = -v
		}
		exp := 64
		for v >= 1 {
			v /= 16
			exp++
		}
		for v < 1.0/16 {
			v *= 16
			exp--
		}
		bits |= uint64(exp)<<56 | uint64(math.Round(v*(1<<56)))
	}
	out := make([]byte, 8)
	binary.BigEndian.PutUint64(out, bits)
	return out
}

func Test_real8_decode(t *testing.T) {
	td := []struct {
		bits uint64
		want float64
	}{
		{0x0000000000000000, 0},
		{0x4110000000000000, 1},
		{0x4120000000000000, 2},
		{0xc080000000000000, -0.5},
	}
	for _, d := range td {
		assert.Equal(t, d.want, decodeReal8(d.bits))
	}
}

func Test_real8_roundtrip(t *testing.T) {
	for _, v := range []float64{1, -0.5, 0.001, 1e-9, 2.5e-3, 12345.678} {
		bits := binary.BigEndian.Uint64(encodeReal8(v))
		require.InEpsilon(t, v, decodeReal8(bits), 1e-12)
	}
}

func Test_reader_framing(t *testing.T) {
	// clean EOF at a record boundary
	r := NewReader(bytes.NewReader(rec(RecEndLib, DataNone)))
	record, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, byte(RecEndLib), record.Type)
	_, err = r.Next()
	assert.Equal(t, io.EOF, err)

	// odd record length
	r = NewReader(bytes.NewReader([]byte{0x00, 0x05, RecHeader, DataInt16, 0x00}))
	_, err = r.Next()
	require.Error(t, err)

	// length below the header size
	r = NewReader(bytes.NewReader([]byte{0x00, 0x02, RecHeader, DataNone}))
	_, err = r.Next()
	require.Error(t, err)

	// truncated body
	r = NewReader(bytes.NewReader([]byte{0x00, 0x08, RecHeader, DataInt16, 0x02}))
	_, err = r.Next()
	require.Error(t, err)
}

func Test_record_payloads(t *testing.T) {
	rd := Record{Type: RecLayer, Data: DataInt16, Body: i16(6, -1)}
	v16, err := rd.Int16s()
	require.NoError(t, err)
	assert.Equal(t, []int16{6, -1}, v16)
	_, err = rd.Int32s()
	require.Error(t, err)

	rd = Record{Type: RecXY, Data: DataInt32, Body: i32(0, -100, 2000, 300)}
	v32, err := rd.Int32s()
	require.NoError(t, err)
	assert.Equal(t, []int32{0, -100, 2000, 300}, v32)

	rd = Record{Type: RecStrName, Data: DataASCII, Body: str("AMP")}
	s, err := rd.Str()
	require.NoError(t, err)
	assert.Equal(t, "AMP", s)

	rd = Record{Type: RecStrName, Data: DataInt16, Body: i16(1)}
	_, err = rd.Str()
	require.Error(t, err)
}

func testStream() []byte {
	var buf bytes.Buffer
	buf.Write(rec(RecHeader, DataInt16, i16(600)...))
	buf.Write(rec(RecBgnLib, DataInt16, i16(0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0)...))
	buf.Write(rec(RecLibName, DataASCII, str("TESTLIB")...))
	units := append(encodeReal8(0.001), encodeReal8(1e-9)...)
	buf.Write(rec(RecUnits, DataReal8, units...))

	buf.Write(rec(RecBgnStr, DataInt16, i16(0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0)...))
	buf.Write(rec(RecStrName, DataASCII, str("AMP")...))
	// a boundary on layer 6
	buf.Write(rec(RecBoundary, DataNone))
	buf.Write(rec(RecLayer, DataInt16, i16(6)...))
	buf.Write(rec(RecDatatype, DataInt16, i16(0)...))
	buf.Write(rec(RecXY, DataInt32, i32(0, 0, 1000, 0, 1000, 2000, 0, 2000, 0, 0)...))
	buf.Write(rec(RecEndEl, DataNone))
	// a box on layer 99
	buf.Write(rec(RecBox, DataNone))
	buf.Write(rec(RecLayer, DataInt16, i16(99)...))
	buf.Write(rec(RecBoxType, DataInt16, i16(0)...))
	buf.Write(rec(RecXY, DataInt32, i32(-5, -5, 5, -5, 5, 5, -5, 5, -5, -5)...))
	buf.Write(rec(RecEndEl, DataNone))
	// a reference, skipped by the parser
	buf.Write(rec(RecSRef, DataNone))
	buf.Write(rec(RecSName, DataASCII, str("SUB")...))
	buf.Write(rec(RecXY, DataInt32, i32(0, 0)...))
	buf.Write(rec(RecEndEl, DataNone))
	buf.Write(rec(RecEndStr, DataNone))

	buf.Write(rec(RecEndLib, DataNone))
	return buf.Bytes()
}

func Test_parse(t *testing.T) {
	lib, err := Parse(bytes.NewReader(testStream()))
	require.NoError(t, err)

	assert.Equal(t, "TESTLIB", lib.Name)
	assert.InEpsilon(t, 0.001, lib.UserUnit, 1e-12)
	assert.InEpsilon(t, 1e-9, lib.DBUnit, 1e-12)

	require.Len(t, lib.Cells, 1)
	cell := lib.Cell("AMP")
	require.NotNil(t, cell)
	require.Len(t, cell.Elements, 2)

	b := cell.Elements[0]
	assert.Equal(t, int16(6), b.Layer)
	assert.Equal(t, int16(0), b.Datatype)
	assert.Equal(t, []int32{0, 0, 1000, 0, 1000, 2000, 0, 2000, 0, 0}, b.XY)
	assert.Equal(t, int16(99), cell.Elements[1].Layer)

	assert.Nil(t, lib.Cell("SUB"))
}

func Test_parse_errors(t *testing.T) {
	// not a stream file
	_, err := Parse(bytes.NewReader(rec(RecBgnLib, DataInt16, i16(0, 0)...)))
	require.Error(t, err)

	// missing ENDLIB
	_, err = Parse(bytes.NewReader(rec(RecHeader, DataInt16, i16(600)...)))
	require.Error(t, err)

	// degenerate boundary outline
	var buf bytes.Buffer
	buf.Write(rec(RecHeader, DataInt16, i16(600)...))
	buf.Write(rec(RecBgnStr, DataInt16, i16(0, 0)...))
	buf.Write(rec(RecStrName, DataASCII, str("BAD")...))
	buf.Write(rec(RecBoundary, DataNone))
	buf.Write(rec(RecLayer, DataInt16, i16(1)...))
	buf.Write(rec(RecXY, DataInt32, i32(0, 0, 1, 1)...))
	buf.Write(rec(RecEndEl, DataNone))
	buf.Write(rec(RecEndStr, DataNone))
	buf.Write(rec(RecEndLib, DataNone))
	_, err = Parse(bytes.NewReader(buf.Bytes()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "degenerate")
}
