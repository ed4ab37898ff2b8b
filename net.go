package flowdb

// A Net is a named set of electrically connected pins. Nets are addressed by
// their handle in the owning graph; a net holds the handles of its pins and
// the IO shapes exported for routing.
//
type Net struct {
	name     string
	pins     []int
	ioShapes []Rect
}

// Name returns the net name.
//
func (n *Net) Name() string { return n.name }

// SetName sets the net name.
//
func (n *Net) SetName(name string) { n.name = name }

// AddPin records a pin handle on this net.
//
func (n *Net) AddPin(pinIdx int) { n.pins = append(n.pins, pinIdx) }

// NumPins returns the number of pins on this net.
//
func (n *Net) NumPins() int { return len(n.pins) }

// PinIdx returns the pin handle at position i on this net.
// It panics if i is out of range.
//
func (n *Net) PinIdx(i int) int {
	if i >= len(n.pins) {
		panic(outOfRange("net pin", i, len(n.pins)))
	}
	return n.pins[i]
}

// Pins returns the pin handles of this net. The returned slice shares its
// backing array with the net.
//
func (n *Net) Pins() []int { return n.pins }

// AddIOShape records an IO shape exported for routing.
//
func (n *Net) AddIOShape(r Rect) { n.ioShapes = append(n.ioShapes, r) }

// NumIOShapes returns the number of IO shapes on this net.
//
func (n *Net) NumIOShapes() int { return len(n.ioShapes) }

// IOShape returns the IO shape at position i.
// It panics if i is out of range.
//
func (n *Net) IOShape(i int) Rect {
	if i >= len(n.ioShapes) {
		panic(outOfRange("net IO shape", i, len(n.ioShapes)))
	}
	return n.ioShapes[i]
}

// FlipVert mirrors every IO shape of the net about the vertical axis x=axis.
// Applying the same axis twice restores the original shapes.
//
func (n *Net) FlipVert(axis Coord) {
	for i := range n.ioShapes {
		n.ioShapes[i] = n.ioShapes[i].FlipVert(axis)
	}
}

// clone returns a deep copy of the net for the backup slot.
func (n *Net) clone() Net {
	c := Net{name: n.name}
	c.pins = append([]int(nil), n.pins...)
	c.ioShapes = append([]Rect(nil), n.ioShapes...)
	return c
}
