package gdsii

import (
	"io"

	"github.com/pkg/errors"
)

// An Element is one mask polygon (BOUNDARY or BOX) of a structure. XY holds
// the outline as alternating x,y pairs; the stream format repeats the first
// vertex as the last one to close the outline.
//
type Element struct {
	Layer    int16
	Datatype int16
	XY       []int32
}

// A Cell is one structure of a stream library.
//
type Cell struct {
	Name     string
	Elements []Element
}

// A Library is the parsed content of a stream file.
//
type Library struct {
	Name     string
	UserUnit float64 // database units per user unit
	DBUnit   float64 // meters per database unit
	Cells    []Cell
}

// Cell returns the named structure, or nil.
//
func (l *Library) Cell(name string) *Cell {
	for i := range l.Cells {
		if l.Cells[i].Name == name {
			return &l.Cells[i]
		}
	}
	return nil
}

// Parse reads a whole stream library. Elements other than BOUNDARY and BOX
// (paths, references, text) are skipped; the hierarchy levels consuming the
// data only care about mask polygons.
//
func Parse(r io.Reader) (*Library, error) {
	rd := NewReader(r)

	rec, err := rd.Next()
	if err != nil {
		return nil, errors.Wrap(err, "read stream header")
	}
	if rec.Type != RecHeader {
		return nil, errors.Errorf("not a stream file: first record is %#02x", rec.Type)
	}

	lib := &Library{}
	for {
		rec, err = rd.Next()
		if err == io.EOF {
			return nil, errors.New("unexpected end of stream before ENDLIB")
		}
		if err != nil {
			return nil, err
		}
		switch rec.Type {
		case RecEndLib:
			return lib, nil
		case RecLibName:
			if lib.Name, err = rec.Str(); err != nil {
				return nil, err
			}
		case RecUnits:
			u, err := rec.Real8s()
			if err != nil {
				return nil, err
			}
			if len(u) != 2 {
				return nil, errors.Errorf("UNITS record carries %d values, want 2", len(u))
			}
			lib.UserUnit, lib.DBUnit = u[0], u[1]
		case RecBgnStr:
			cell, err := parseCell(rd)
			if err != nil {
				return nil, err
			}
			lib.Cells = append(lib.Cells, *cell)
		}
	}
}

func parseCell(rd *Reader) (*Cell, error) {
	cell := &Cell{}
	for {
		rec, err := rd.Next()
		if err == io.EOF {
			return nil, errors.New("unexpected end of stream inside structure")
		}
		if err != nil {
			return nil, err
		}
		switch rec.Type {
		case RecEndStr:
			return cell, nil
		case RecStrName:
			if cell.Name, err = rec.Str(); err != nil {
				return nil, err
			}
		case RecBoundary, RecBox:
			el, err := parseElement(rd)
			if err != nil {
				return nil, errors.Wrapf(err, "structure %s", cell.Name)
			}
			cell.Elements = append(cell.Elements, *el)
		case RecPath, RecSRef, RecARef, RecText:
			if err := skipElement(rd); err != nil {
				return nil, errors.Wrapf(err, "structure %s", cell.Name)
			}
		}
	}
}

func parseElement(rd *Reader) (*Element, error) {
	el := &Element{}
	for {
		rec, err := rd.Next()
		if err == io.EOF {
			return nil, errors.New("unexpected end of stream inside element")
		}
		if err != nil {
			return nil, err
		}
		switch rec.Type {
		case RecEndEl:
			if len(el.XY) < 8 || len(el.XY)%2 != 0 {
				return nil, errors.Errorf("element on layer %d has a degenerate outline (%d coordinates)", el.Layer, len(el.XY))
			}
			return el, nil
		case RecLayer:
			v, err := rec.Int16s()
			if err != nil || len(v) != 1 {
				return nil, errors.New("bad LAYER record")
			}
			el.Layer = v[0]
		case RecDatatype, RecBoxType:
			v, err := rec.Int16s()
			if err != nil || len(v) != 1 {
				return nil, errors.New("bad DATATYPE record")
			}
			el.Datatype = v[0]
		case RecXY:
			if el.XY, err = rec.Int32s(); err != nil {
				return nil, err
			}
		}
	}
}

func skipElement(rd *Reader) error {
	for {
		rec, err := rd.Next()
		if err == io.EOF {
			return errors.New("unexpected end of stream inside element")
		}
		if err != nil {
			return err
		}
		if rec.Type == RecEndEl {
			return nil
		}
	}
}
