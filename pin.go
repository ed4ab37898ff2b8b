package flowdb

// A Pin is a connection point between a net and a node (or the hierarchy
// level's own interface when it has no owning node). Pins are addressed by
// their handle in the owning graph.
//
type Pin struct {
	nodeIdx   int // owning node handle
	intNetIdx int // net handle inside the node's subgraph
	netIdx    int // net handle in the owning graph
}

// newPin returns a pin with all handles unset.
func newPin() Pin {
	return Pin{nodeIdx: IndexUnset, intNetIdx: IndexUnset, netIdx: IndexUnset}
}

// NodeIdx returns the handle of the node this pin belongs to, or IndexUnset
// for a hierarchy-level interface pin.
//
func (p *Pin) NodeIdx() int { return p.nodeIdx }

// SetNodeIdx sets the owning node handle.
//
func (p *Pin) SetNodeIdx(idx int) { p.nodeIdx = idx }

// IntNetIdx returns the handle of the net inside the owning node's subgraph
// that this pin connects through, or IndexUnset for a leaf device pin.
//
func (p *Pin) IntNetIdx() int { return p.intNetIdx }

// SetIntNetIdx sets the internal net handle.
//
func (p *Pin) SetIntNetIdx(idx int) { p.intNetIdx = idx }

// NetIdx returns the handle of the net this pin belongs to, or IndexUnset
// when the pin is not connected yet.
//
func (p *Pin) NetIdx() int { return p.netIdx }

// SetNetIdx sets the net handle.
//
func (p *Pin) SetNetIdx(idx int) { p.netIdx = idx }
