package flowdb_test

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	db "github.com/cktlab/flowdb"
)

// stream record/payload builders, enough to synthesize a small GDSII file.

func gdsRec(typ, dtype byte, body ...byte) []byte {
	n := len(body) + 4
	out := []byte{byte(n >> 8), byte(n), typ, dtype}
	return append(out, body...)
}

func gdsI16(vals ...int16) []byte {
	out := make([]byte, 2*len(vals))
	for i, v := range vals {
		binary.BigEndian.PutUint16(out[2*i:], uint16(v))
	}
	return out
}

func gdsI32(vals ...int32) []byte {
	out := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.BigEndian.PutUint32(out[4*i:], uint32(v))
	}
	return out
}

func gdsStr(s string) []byte {
	b := []byte(s)
	if len(b)%2 != 0 {
		b = append(b, 0)
	}
	return b
}

func gdsReal8(v float64) []byte {
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

const (
	recHeader   = 0x00
	recBgnLib   = 0x01
	recLibName  = 0x02
	recUnits    = 0x03
	recEndLib   = 0x04
	recBgnStr   = 0x05
	recStrName  = 0x06
	recEndStr   = 0x07
	recBoundary = 0x08
	recLayer    = 0x0d
	recDatatype = 0x0e
	recXY       = 0x10
	recEndEl    = 0x11
	dtNone      = 0x00
	dtInt16     = 0x02
	dtInt32     = 0x03
	dtReal8     = 0x05
	dtASCII     = 0x06
)

func boundary(layer, datatype int16, xy ...int32) []byte {
	var buf bytes.Buffer
	buf.Write(gdsRec(recBoundary, dtNone))
	buf.Write(gdsRec(recLayer, dtInt16, gdsI16(layer)...))
	buf.Write(gdsRec(recDatatype, dtInt16, gdsI16(datatype)...))
	buf.Write(gdsRec(recXY, dtInt32, gdsI32(xy...)...))
	buf.Write(gdsRec(recEndEl, dtNone))
	return buf.Bytes()
}

func writeStream(t *testing.T, cellName string, elements ...[]byte) string {
	t.Helper()
	var buf bytes.Buffer
	buf.Write(gdsRec(recHeader, dtInt16, gdsI16(600)...))
	buf.Write(gdsRec(recBgnLib, dtInt16, gdsI16(0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0)...))
	buf.Write(gdsRec(recLibName, dtASCII, gdsStr("LIB")...))
	buf.Write(gdsRec(recUnits, dtReal8, append(gdsReal8(0.001), gdsReal8(1e-9)...)...))
	buf.Write(gdsRec(recBgnStr, dtInt16, gdsI16(0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0)...))
	buf.Write(gdsRec(recStrName, dtASCII, gdsStr(cellName)...))
	for _, el := range elements {
		buf.Write(el)
	}
	buf.Write(gdsRec(recEndStr, dtNone))
	buf.Write(gdsRec(recEndLib, dtNone))

	path := filepath.Join(t.TempDir(), "cell.gds")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func Test_parse_gds(t *testing.T) {
	tech, err := db.LoadTechDB(writeTech(t, techYAML))
	require.NoError(t, err)

	path := writeStream(t, "AMP",
		boundary(6, 0, 0, 0, 1000, 0, 1000, 2000, 0, 2000, 0, 0),
		boundary(31, 0, 100, 100, 200, 100, 200, 400, 100, 400, 100, 100),
		boundary(99, 0, 0, 0, 1, 0, 1, 1, 0, 1, 0, 0), // unmapped layer
	)

	g := db.NewGraph()
	g.SetTechDB(tech)
	g.SetName("AMP")
	require.NoError(t, g.ParseGDS(path))

	data := g.GdsData()
	assert.Equal(t, "AMP", data.CellName())
	assert.InEpsilon(t, 1e-9, data.DBUnit(), 1e-12)
	assert.InEpsilon(t, 0.001, data.UserUnit(), 1e-12)

	// the unmapped layer 99 polygon is filtered out
	require.Equal(t, 2, data.NumPolys())
	od, _ := tech.LayerID("OD")
	m1, _ := tech.LayerID("M1")
	assert.Equal(t, od, data.Poly(0).Layer)
	assert.Equal(t, m1, data.Poly(1).Layer)

	odShapes := g.Layout().Shapes(od)
	require.Len(t, odShapes, 1)
	assert.Equal(t, db.Rect{XLo: 0, YLo: 0, XHi: 1000, YHi: 2000}, odShapes[0])
	m1Shapes := g.Layout().Shapes(m1)
	require.Len(t, m1Shapes, 1)
	assert.Equal(t, db.Rect{XLo: 100, YLo: 100, XHi: 200, YHi: 400}, m1Shapes[0])
}

func Test_parse_gds_fallback_cell(t *testing.T) {
	tech, err := db.LoadTechDB(writeTech(t, techYAML))
	require.NoError(t, err)

	path := writeStream(t, "OTHER", boundary(6, 0, 0, 0, 10, 0, 10, 10, 0, 10, 0, 0))

	// no structure matches the ref name, the first one is used
	g := db.NewGraph()
	g.SetTechDB(tech)
	g.SetName("AMP")
	require.NoError(t, g.ParseGDS(path))
	assert.Equal(t, "OTHER", g.GdsData().CellName())
}

func Test_parse_gds_errors(t *testing.T) {
	tech, err := db.LoadTechDB(writeTech(t, techYAML))
	require.NoError(t, err)

	g := db.NewGraph()
	g.SetTechDB(tech)

	require.Error(t, g.ParseGDS(filepath.Join(t.TempDir(), "missing.gds")))

	bad := filepath.Join(t.TempDir(), "bad.gds")
	require.NoError(t, os.WriteFile(bad, []byte("not a stream"), 0o644))
	require.Error(t, g.ParseGDS(bad))

	// a failed parse leaves the payload untouched
	assert.Equal(t, "", g.GdsData().CellName())
	assert.Equal(t, 0, g.GdsData().NumPolys())
	assert.Equal(t, 0, g.Layout().NumShapes())
}
