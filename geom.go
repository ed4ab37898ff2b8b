package flowdb

// Coord is a location in database units. GDSII streams carry coordinates as
// signed 32-bit integers, so the database uses the same width throughout.
//
type Coord int32

// CoordUnset is the reserved sentinel for a coordinate that has not been
// computed yet. A freshly constructed layout boundary carries it on every
// coordinate; Restore checks for it on the lower-x coordinate.
//
const CoordUnset Coord = 1<<31 - 1

// IndexUnset is the reserved sentinel for an unassigned handle.
//
const IndexUnset = int(^uint(0) >> 1)

// A Point is a location on the layout grid.
//
type Point struct {
	X, Y Coord
}

// FlipVert returns p mirrored about the vertical axis x=axis.
//
func (p Point) FlipVert(axis Coord) Point {
	return Point{X: 2*axis - p.X, Y: p.Y}
}

// A Rect is an axis-aligned rectangle. The zero value is an empty rectangle
// at the origin; use UnsetRect for a "not yet computed" rectangle.
//
type Rect struct {
	XLo, YLo, XHi, YHi Coord
}

// UnsetRect returns a rectangle with every coordinate set to CoordUnset.
//
func UnsetRect() Rect {
	return Rect{XLo: CoordUnset, YLo: CoordUnset, XHi: CoordUnset, YHi: CoordUnset}
}

// IsUnset reports whether the rectangle still carries the unset sentinel on
// its lower-x coordinate.
//
func (r Rect) IsUnset() bool {
	return r.XLo == CoordUnset
}

// Width returns the horizontal extent of the rectangle.
//
func (r Rect) Width() Coord {
	return r.XHi - r.XLo
}

// Height returns the vertical extent of the rectangle.
//
func (r Rect) Height() Coord {
	return r.YHi - r.YLo
}

// FlipVert returns r mirrored about the vertical axis x=axis. The result is
// normalized so that XLo <= XHi still holds.
//
func (r Rect) FlipVert(axis Coord) Rect {
	return Rect{
		XLo: 2*axis - r.XHi,
		YLo: r.YLo,
		XHi: 2*axis - r.XLo,
		YHi: r.YHi,
	}
}

// Union returns the bounding rectangle of r and o. An unset rectangle acts
// as the identity.
//
func (r Rect) Union(o Rect) Rect {
	if r.IsUnset() {
		return o
	}
	if o.IsUnset() {
		return r
	}
	u := r
	if o.XLo < u.XLo {
		u.XLo = o.XLo
	}
	if o.YLo < u.YLo {
		u.YLo = o.YLo
	}
	if o.XHi > u.XHi {
		u.XHi = o.XHi
	}
	if o.YHi > u.YHi {
		u.YHi = o.YHi
	}
	return u
}

// A Polygon is a closed outline given as its vertex list. The closing edge
// from the last vertex back to the first is implicit.
//
type Polygon []Point

// FlipVert mirrors the polygon in place about the vertical axis x=axis.
//
func (p Polygon) FlipVert(axis Coord) {
	for i := range p {
		p[i] = p[i].FlipVert(axis)
	}
}

// Bounds returns the bounding rectangle of the polygon, or an unset
// rectangle for an empty vertex list.
//
func (p Polygon) Bounds() Rect {
	if len(p) == 0 {
		return UnsetRect()
	}
	b := Rect{XLo: p[0].X, YLo: p[0].Y, XHi: p[0].X, YHi: p[0].Y}
	for _, v := range p[1:] {
		if v.X < b.XLo {
			b.XLo = v.X
		}
		if v.Y < b.YLo {
			b.YLo = v.Y
		}
		if v.X > b.XHi {
			b.XHi = v.X
		}
		if v.Y > b.YHi {
			b.YHi = v.Y
		}
	}
	return b
}
