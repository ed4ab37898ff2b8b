package flowdb

// Layout is the physical layout payload of one hierarchy level. It is
// populated and consumed by the layout kernel; the database only stores it
// and checkpoints it with the rest of the graph state.
//
// The boundary starts out unset (CoordUnset on every coordinate) and is only
// meaningful once a layout computation has run.
//
type Layout struct {
	boundary Rect
	shapes   map[int][]Rect // tech layer id -> rectangles
}

func newLayout() Layout {
	return Layout{boundary: UnsetRect()}
}

// Boundary returns the computed boundary of the layout. It is unset until a
// layout computation has stored one.
//
func (l *Layout) Boundary() Rect { return l.boundary }

// SetBoundary stores the computed boundary.
//
func (l *Layout) SetBoundary(r Rect) { l.boundary = r }

// ClearBoundary resets the boundary to the unset sentinel.
//
func (l *Layout) ClearBoundary() { l.boundary = UnsetRect() }

// AddShape records a rectangle on the given tech layer.
//
func (l *Layout) AddShape(layer int, r Rect) {
	if l.shapes == nil {
		l.shapes = make(map[int][]Rect)
	}
	l.shapes[layer] = append(l.shapes[layer], r)
}

// Shapes returns the rectangles recorded on the given tech layer. The
// returned slice shares its backing array with the layout.
//
func (l *Layout) Shapes(layer int) []Rect { return l.shapes[layer] }

// NumShapes returns the total number of rectangles across all layers.
//
func (l *Layout) NumShapes() int {
	n := 0
	for _, s := range l.shapes {
		n += len(s)
	}
	return n
}

// clone returns a deep copy of the layout for the backup slot.
func (l *Layout) clone() Layout {
	c := Layout{boundary: l.boundary}
	if l.shapes != nil {
		c.shapes = make(map[int][]Rect, len(l.shapes))
		for layer, s := range l.shapes {
			c.shapes[layer] = append([]Rect(nil), s...)
		}
	}
	return c
}

// A GdsPoly is one mask polygon read from a GDSII stream, tagged with the
// tech layer it maps to.
//
type GdsPoly struct {
	Layer  int
	Points Polygon
}

// GdsData holds the mask data parsed from a GDSII stream for one hierarchy
// level.
//
type GdsData struct {
	cellName string
	dbUnit   float64 // meters per database unit
	userUnit float64 // database units per user unit
	polys    []GdsPoly
}

// CellName returns the name of the parsed stream structure.
//
func (g *GdsData) CellName() string { return g.cellName }

// SetCellName sets the name of the parsed stream structure.
//
func (g *GdsData) SetCellName(name string) { g.cellName = name }

// DBUnit returns the size of one database unit in meters.
//
func (g *GdsData) DBUnit() float64 { return g.dbUnit }

// UserUnit returns the number of database units per user unit.
//
func (g *GdsData) UserUnit() float64 { return g.userUnit }

// SetUnits stores the stream units.
//
func (g *GdsData) SetUnits(userUnit, dbUnit float64) {
	g.userUnit = userUnit
	g.dbUnit = dbUnit
}

// AddPoly records a parsed mask polygon.
//
func (g *GdsData) AddPoly(p GdsPoly) { g.polys = append(g.polys, p) }

// NumPolys returns the number of parsed mask polygons.
//
func (g *GdsData) NumPolys() int { return len(g.polys) }

// Poly returns the parsed mask polygon at position i.
// It panics if i is out of range.
//
func (g *GdsData) Poly(i int) GdsPoly {
	if i >= len(g.polys) {
		panic(outOfRange("gds polygon", i, len(g.polys)))
	}
	return g.polys[i]
}

// clone returns a deep copy of the parsed mask data for the backup slot.
func (g *GdsData) clone() GdsData {
	c := GdsData{cellName: g.cellName, dbUnit: g.dbUnit, userUnit: g.userUnit}
	if g.polys != nil {
		c.polys = make([]GdsPoly, len(g.polys))
		for i, p := range g.polys {
			c.polys[i] = GdsPoly{Layer: p.Layer, Points: append(Polygon(nil), p.Points...)}
		}
	}
	return c
}
