package flowdb

// DesignDB owns the full hierarchical decomposition of a design: one Graph
// per hierarchy level, addressed by handle, plus the shared technology
// database and the handle of the root level.
//
type DesignDB struct {
	graphs  []*Graph
	rootIdx int
	techDB  TechDB
}

// NewDesignDB returns an empty design database.
//
func NewDesignDB() *DesignDB {
	return &DesignDB{rootIdx: IndexUnset}
}

// SetTechDB stores the shared technology database. Graphs allocated
// afterwards receive it on allocation.
//
func (d *DesignDB) SetTechDB(t TechDB) { d.techDB = t }

// TechDB returns the shared technology database.
//
func (d *DesignDB) TechDB() *TechDB { return &d.techDB }

// AllocGraph appends a new empty hierarchy level and returns its handle.
//
func (d *DesignDB) AllocGraph() int {
	g := NewGraph()
	g.SetTechDB(d.techDB)
	d.graphs = append(d.graphs, g)
	return len(d.graphs) - 1
}

// NumGraphs returns the number of hierarchy levels.
//
func (d *DesignDB) NumGraphs() int { return len(d.graphs) }

// Graph returns the hierarchy level with the given handle.
// It panics if the handle is out of range.
//
func (d *DesignDB) Graph(idx int) *Graph {
	if idx >= len(d.graphs) {
		panic(outOfRange("graph", idx, len(d.graphs)))
	}
	return d.graphs[idx]
}

// RootIdx returns the handle of the root hierarchy level, or IndexUnset.
//
func (d *DesignDB) RootIdx() int { return d.rootIdx }

// SetRootIdx sets the handle of the root hierarchy level.
//
func (d *DesignDB) SetRootIdx(idx int) { d.rootIdx = idx }

// Root returns the root hierarchy level.
// It panics if no root has been set.
//
func (d *DesignDB) Root() *Graph {
	if d.rootIdx == IndexUnset {
		panic("design has no root graph")
	}
	return d.Graph(d.rootIdx)
}

// SubGraph resolves the hierarchy level implementing the given node.
// It panics if the node is a leaf device.
//
func (d *DesignDB) SubGraph(n *Node) *Graph {
	if n.IsLeaf() {
		panic("subgraph lookup on a leaf node")
	}
	return d.Graph(n.SubGraphIdx())
}
