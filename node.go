package flowdb

// Orient is the placement orientation of a node.
//
type Orient uint8

// Placement orientations. N is the default; F variants are mirrored about
// the vertical axis.
const (
	OrientN Orient = iota
	OrientS
	OrientFN
	OrientFS
)

// A Node is a device instance or a nested sub-block reference within one
// hierarchy level. Nodes are addressed by their handle in the owning graph.
//
type Node struct {
	name        string
	refName     string
	subGraphIdx int
	offset      Point
	orient      Orient
}

// newNode returns a node with no subgraph bound yet.
func newNode() Node {
	return Node{subGraphIdx: IndexUnset}
}

// Name returns the instance name of the node.
//
func (n *Node) Name() string { return n.name }

// SetName sets the instance name of the node.
//
func (n *Node) SetName(name string) { n.name = name }

// RefName returns the name of the master cell this node instantiates.
//
func (n *Node) RefName() string { return n.refName }

// SetRefName sets the master cell name.
//
func (n *Node) SetRefName(refName string) { n.refName = refName }

// SubGraphIdx returns the handle of the subgraph implementing this node in
// the design database, or IndexUnset for a leaf device.
//
func (n *Node) SubGraphIdx() int { return n.subGraphIdx }

// SetSubGraphIdx binds the node to a subgraph handle.
//
func (n *Node) SetSubGraphIdx(idx int) { n.subGraphIdx = idx }

// IsLeaf reports whether the node has no subgraph, i.e. it is a device
// rather than a nested hierarchy level.
//
func (n *Node) IsLeaf() bool { return n.subGraphIdx == IndexUnset }

// Offset returns the placement offset of the node.
//
func (n *Node) Offset() Point { return n.offset }

// SetOffset sets the placement offset of the node.
//
func (n *Node) SetOffset(p Point) { n.offset = p }

// Orient returns the placement orientation of the node.
//
func (n *Node) Orient() Orient { return n.orient }

// SetOrient sets the placement orientation of the node.
//
func (n *Node) SetOrient(o Orient) { n.orient = o }
