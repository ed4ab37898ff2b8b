package flowdb

import "fmt"

// ImplType tags how a hierarchy level is implemented.
//
type ImplType uint8

// Implementation types.
const (
	ImplUnset   ImplType = iota // not decided yet
	ImplLibCell                 // instantiated from a library cell
	ImplDevice                  // generated leaf device
)

// A Graph is one level of hierarchy of the circuit: the devices and
// sub-blocks it contains (nodes), their connectivity (pins, nets), the
// floorplan constraints for this level, and the layout payload produced by
// the downstream tools.
//
// Every structural element is addressed by a dense zero-based handle.
// Handles are issued by the Alloc methods only, so a handle, once issued,
// stays valid as long as the collection is not truncated below it.
//
type Graph struct {
	techDB TechDB

	nodes    []Node
	pins     []Pin
	nets     []Net
	psubIdx  []int // handles of substrate nets in nets
	nwellIdx []int // handles of well nets in nets

	name    string
	refName string

	layout       Layout
	implType     ImplType
	implIdx      int
	isImpl       bool
	flipVertFlag bool
	fpData       FloorplanData
	gdsData      GdsData

	backup *graphBackup
}

// graphBackup shadows the mutable graph state for one level of undo.
// Identity (name, ref name, impl type/idx) and the floorplan data are
// deliberately not checkpointed.
type graphBackup struct {
	nodes        []Node
	pins         []Pin
	nets         []Net
	psubIdx      []int
	nwellIdx     []int
	layout       Layout
	isImpl       bool
	flipVertFlag bool
	gdsData      GdsData
}

// NewGraph returns an empty hierarchy level.
//
func NewGraph() *Graph {
	return &Graph{layout: newLayout(), implIdx: IndexUnset}
}

// SetTechDB injects the technology database consulted during stream parsing.
//
func (g *Graph) SetTechDB(t TechDB) { g.techDB = t }

// TechDB returns the technology database of this graph.
//
func (g *Graph) TechDB() *TechDB { return &g.techDB }

func outOfRange(what string, i, n int) string {
	return fmt.Sprintf("%s handle %d out of range (size %d)", what, i, n)
}

/* Allocation */

// AllocNode appends a new node and returns its handle.
//
func (g *Graph) AllocNode() int {
	g.nodes = append(g.nodes, newNode())
	return len(g.nodes) - 1
}

// AllocPin appends a new pin and returns its handle.
//
func (g *Graph) AllocPin() int {
	g.pins = append(g.pins, newPin())
	return len(g.pins) - 1
}

// AllocNet appends a new net and returns its handle.
//
func (g *Graph) AllocNet() int {
	g.nets = append(g.nets, Net{})
	return len(g.nets) - 1
}

// AllocPsub allocates a new net, registers it as a substrate net and returns
// its net handle.
//
func (g *Graph) AllocPsub() int {
	netIdx := g.AllocNet()
	g.psubIdx = append(g.psubIdx, netIdx)
	return netIdx
}

// AddPsubIdx registers an existing net handle as a substrate net. The caller
// is responsible for the handle being valid and not already registered.
//
func (g *Graph) AddPsubIdx(netIdx int) { g.psubIdx = append(g.psubIdx, netIdx) }

// AllocNwell allocates a new net, registers it as a well net and returns its
// net handle.
//
func (g *Graph) AllocNwell() int {
	netIdx := g.AllocNet()
	g.nwellIdx = append(g.nwellIdx, netIdx)
	return netIdx
}

// AddNwellIdx registers an existing net handle as a well net. The caller is
// responsible for the handle being valid and not already registered.
//
func (g *Graph) AddNwellIdx(netIdx int) { g.nwellIdx = append(g.nwellIdx, netIdx) }

/* Resize */

// ResizeNodes truncates the node collection to n elements. Growth must go
// through AllocNode; n greater than the current size panics.
//
func (g *Graph) ResizeNodes(n int) {
	if n > len(g.nodes) {
		panic(fmt.Sprintf("resize nodes from %d to %d: growth must go through AllocNode", len(g.nodes), n))
	}
	g.nodes = g.nodes[:n]
}

// ResizePins truncates the pin collection to n elements. Growth must go
// through AllocPin; n greater than the current size panics.
//
func (g *Graph) ResizePins(n int) {
	if n > len(g.pins) {
		panic(fmt.Sprintf("resize pins from %d to %d: growth must go through AllocPin", len(g.pins), n))
	}
	g.pins = g.pins[:n]
}

// ResizeNets truncates the net collection to n elements. Growth must go
// through AllocNet; n greater than the current size panics.
//
func (g *Graph) ResizeNets(n int) {
	if n > len(g.nets) {
		panic(fmt.Sprintf("resize nets from %d to %d: growth must go through AllocNet", len(g.nets), n))
	}
	g.nets = g.nets[:n]
}

/* Accessors */

// NumNodes returns the number of nodes in this graph.
//
func (g *Graph) NumNodes() int { return len(g.nodes) }

// Node returns the node with the given handle.
// It panics if the handle is out of range.
//
func (g *Graph) Node(nodeIdx int) *Node {
	if nodeIdx >= len(g.nodes) {
		panic(outOfRange("node", nodeIdx, len(g.nodes)))
	}
	return &g.nodes[nodeIdx]
}

// Nodes returns the node collection. The returned slice shares its backing
// array with the graph; grow it through AllocNode only.
//
func (g *Graph) Nodes() []Node { return g.nodes }

// NumPins returns the number of pins in this graph.
//
func (g *Graph) NumPins() int { return len(g.pins) }

// Pin returns the pin with the given handle.
// It panics if the handle is out of range.
//
func (g *Graph) Pin(pinIdx int) *Pin {
	if pinIdx >= len(g.pins) {
		panic(outOfRange("pin", pinIdx, len(g.pins)))
	}
	return &g.pins[pinIdx]
}

// Pins returns the pin collection. The returned slice shares its backing
// array with the graph; grow it through AllocPin only.
//
func (g *Graph) Pins() []Pin { return g.pins }

// NumNets returns the number of nets in this graph.
//
func (g *Graph) NumNets() int { return len(g.nets) }

// Net returns the net with the given handle.
// It panics if the handle is out of range.
//
func (g *Graph) Net(netIdx int) *Net {
	if netIdx >= len(g.nets) {
		panic(outOfRange("net", netIdx, len(g.nets)))
	}
	return &g.nets[netIdx]
}

// Nets returns the net collection. The returned slice shares its backing
// array with the graph; grow it through AllocNet only.
//
func (g *Graph) Nets() []Net { return g.nets }

// NumPsubs returns the number of registered substrate nets.
//
func (g *Graph) NumPsubs() int { return len(g.psubIdx) }

// PsubIdx returns the net handle registered as the i-th substrate net.
// It panics if i is out of range.
//
func (g *Graph) PsubIdx(i int) int {
	if i >= len(g.psubIdx) {
		panic(outOfRange("psub", i, len(g.psubIdx)))
	}
	return g.psubIdx[i]
}

// Psub returns the i-th substrate net. It panics if i is out of range or if
// the registered net handle is stale.
//
func (g *Graph) Psub(i int) *Net { return g.Net(g.PsubIdx(i)) }

// NumNwells returns the number of registered well nets.
//
func (g *Graph) NumNwells() int { return len(g.nwellIdx) }

// NwellIdx returns the net handle registered as the i-th well net.
// It panics if i is out of range.
//
func (g *Graph) NwellIdx(i int) int {
	if i >= len(g.nwellIdx) {
		panic(outOfRange("nwell", i, len(g.nwellIdx)))
	}
	return g.nwellIdx[i]
}

// Nwell returns the i-th well net. It panics if i is out of range or if the
// registered net handle is stale.
//
func (g *Graph) Nwell(i int) *Net { return g.Net(g.NwellIdx(i)) }

/* Identity */

// Name returns the display name of this hierarchy level.
//
func (g *Graph) Name() string { return g.name }

// SetName sets the display name and initializes the ref name to the same
// value. Use SetRefName afterwards to track a different library identity.
//
func (g *Graph) SetName(name string) {
	g.name = name
	g.refName = name
}

// RefName returns the reference name used for library lookups.
//
func (g *Graph) RefName() string { return g.refName }

// SetRefName sets the reference name independently of the display name.
//
func (g *Graph) SetRefName(refName string) { g.refName = refName }

// ImplType returns the implementation type of this hierarchy level.
//
func (g *Graph) ImplType() ImplType { return g.implType }

// SetImplType sets the implementation type.
//
func (g *Graph) SetImplType(t ImplType) { g.implType = t }

// ImplIdx returns the handle of the implementation configuration in the
// design database, or IndexUnset.
//
func (g *Graph) ImplIdx() int { return g.implIdx }

// SetImplIdx sets the implementation configuration handle.
//
func (g *Graph) SetImplIdx(idx int) { g.implIdx = idx }

// IsImpl reports whether this hierarchy level has been implemented.
//
func (g *Graph) IsImpl() bool { return g.isImpl }

// SetIsImpl marks this hierarchy level implemented or not.
//
func (g *Graph) SetIsImpl(impl bool) { g.isImpl = impl }

/* Payload */

// Layout returns the layout payload of this hierarchy level.
//
func (g *Graph) Layout() *Layout { return &g.layout }

// GdsData returns the parsed mask data of this hierarchy level.
//
func (g *Graph) GdsData() *GdsData { return &g.gdsData }

// FpData returns the floorplan constraint data of this hierarchy level.
//
func (g *Graph) FpData() *FloorplanData { return &g.fpData }

// FlipVertFlag reports whether the net IO shapes are currently flipped.
//
func (g *Graph) FlipVertFlag() bool { return g.flipVertFlag }

// FlipVert toggles the flip flag and mirrors every net's IO shapes about the
// vertical axis x=axis. Calling it twice with the same axis restores the
// original orientation.
//
func (g *Graph) FlipVert(axis Coord) {
	g.flipVertFlag = !g.flipVertFlag
	for i := range g.nets {
		g.nets[i].FlipVert(axis)
	}
}

/* Checkpoint */

// Backup captures the mutable state of the graph into its single backup
// slot, overwriting any previous snapshot. Identity and floorplan data are
// not checkpointed.
//
func (g *Graph) Backup() {
	b := &graphBackup{
		nodes:        append([]Node(nil), g.nodes...),
		pins:         append([]Pin(nil), g.pins...),
		psubIdx:      append([]int(nil), g.psubIdx...),
		nwellIdx:     append([]int(nil), g.nwellIdx...),
		layout:       g.layout.clone(),
		isImpl:       g.isImpl,
		flipVertFlag: g.flipVertFlag,
		gdsData:      g.gdsData.clone(),
	}
	b.nets = make([]Net, len(g.nets))
	for i := range g.nets {
		b.nets[i] = g.nets[i].clone()
	}
	g.backup = b
}

// Restore exchanges the checkpointed state with the backup slot. Because it
// is an exchange, a second Restore returns the graph to the state it had
// right after the first one.
//
// Restore is only meant to undo a single layout-computation attempt since
// the last Backup: it panics if no backup exists, and it panics if the
// restored layout boundary is not unset afterwards (the attempt being undone
// must have started from a pre-computation state).
//
func (g *Graph) Restore() {
	b := g.backup
	if b == nil {
		panic("restore without a prior backup")
	}
	g.nodes, b.nodes = b.nodes, g.nodes
	g.pins, b.pins = b.pins, g.pins
	g.nets, b.nets = b.nets, g.nets
	g.psubIdx, b.psubIdx = b.psubIdx, g.psubIdx
	g.nwellIdx, b.nwellIdx = b.nwellIdx, g.nwellIdx
	g.layout, b.layout = b.layout, g.layout
	g.isImpl, b.isImpl = b.isImpl, g.isImpl
	g.flipVertFlag, b.flipVertFlag = b.flipVertFlag, g.flipVertFlag
	g.gdsData, b.gdsData = b.gdsData, g.gdsData
	if !g.layout.Boundary().IsUnset() {
		panic("restore: layout boundary already computed, backup/restore called out of sequence")
	}
}
