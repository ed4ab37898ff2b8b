package flowdb

// AssignStatus is the left/right IO assignment of a net in the floorplan.
//
type AssignStatus int

// Net assignment states. AssignUnset is returned for nets that were never
// assigned.
const (
	AssignLeft  AssignStatus = 0
	AssignRight AssignStatus = 1
	AssignUnset AssignStatus = -1
)

// FloorplanData holds the floorplanning constraints of one hierarchy level:
// an optional boundary preset and an optional net-to-IO-side assignment.
//
// Both carry an aggregate "is set" flag that is distinct from the stored
// values: clearing drops the flag but retains the values, so a later
// re-enable sees the previous data. The flag is a coarse hint for whether to
// trust the data at all, not a per-entry gate.
//
type FloorplanData struct {
	boundary       Rect
	isBoundarySet  bool
	netAssign      map[string]AssignStatus
	isNetAssignSet bool
}

// SetBoundary stores the preset boundary rectangle and marks it set.
// Coordinates are not validated; the caller is responsible for xLo <= xHi
// and yLo <= yHi.
//
func (f *FloorplanData) SetBoundary(xLo, yLo, xHi, yHi Coord) {
	f.isBoundarySet = true
	f.boundary = Rect{XLo: xLo, YLo: yLo, XHi: xHi, YHi: yHi}
}

// ClearBoundary unmarks the boundary. The stored rectangle is retained.
//
func (f *FloorplanData) ClearBoundary() { f.isBoundarySet = false }

// IsBoundarySet reports whether a boundary preset is in effect.
//
func (f *FloorplanData) IsBoundarySet() bool { return f.isBoundarySet }

// Boundary returns the stored boundary rectangle, which is meaningful only
// while IsBoundarySet reports true.
//
func (f *FloorplanData) Boundary() Rect { return f.boundary }

// SetNetAssignment assigns a net to the left or right IO side and marks the
// assignment map configured.
//
func (f *FloorplanData) SetNetAssignment(netName string, status AssignStatus) {
	f.isNetAssignSet = true
	if f.netAssign == nil {
		f.netAssign = make(map[string]AssignStatus)
	}
	f.netAssign[netName] = status
}

// ClearNetAssignment unmarks the assignment map as a whole. Individual
// entries are retained.
//
func (f *FloorplanData) ClearNetAssignment() { f.isNetAssignSet = false }

// IsNetAssignmentSet reports whether the net assignment map is configured.
//
func (f *FloorplanData) IsNetAssignmentSet() bool { return f.isNetAssignSet }

// NetAssignment returns the assignment of the given net, or AssignUnset if
// the net was never assigned. The aggregate configured flag is not
// consulted.
//
func (f *FloorplanData) NetAssignment(netName string) AssignStatus {
	s, ok := f.netAssign[netName]
	if !ok {
		return AssignUnset
	}
	return s
}
