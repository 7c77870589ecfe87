package board

// NodeID identifies a tile corner where settlements and cities may be
// built. IDs are assigned incrementally during map construction and
// are stable for a given map type and construction order.
type NodeID uint16

// EdgeID identifies a tile side by its two endpoint nodes.
type EdgeID struct {
	A, B NodeID
}

// Normalized returns the edge with endpoints in ascending order, so
// that the same physical edge always compares equal.
func (e EdgeID) Normalized() EdgeID {
	if e.A <= e.B {
		return e
	}
	return EdgeID{A: e.B, B: e.A}
}

// Contains reports whether n is one of the edge's endpoints.
func (e EdgeID) Contains(n NodeID) bool {
	return e.A == n || e.B == n
}

// Resource is one of the five tradable resource kinds. NoResource is
// used where a resource slot is legitimately empty: desert tiles,
// water, and generic 3:1 ports.
type Resource uint8

const (
	Wood Resource = iota
	Brick
	Sheep
	Wheat
	Ore

	NoResource Resource = 0xFF
)

// Resources lists the resource kinds in their canonical order.
var Resources = [5]Resource{Wood, Brick, Sheep, Wheat, Ore}

var resourceNames = [...]string{"WOOD", "BRICK", "SHEEP", "WHEAT", "ORE"}

func (r Resource) String() string {
	if r == NoResource {
		return "NONE"
	}
	return resourceNames[r]
}

// Index returns the canonical position of r in Resources.
func (r Resource) Index() int {
	return int(r)
}

// NodeRef names one of the six corners of a hex tile.
type NodeRef uint8

const (
	NodeNorth NodeRef = iota
	NodeNorthEast
	NodeSouthEast
	NodeSouth
	NodeSouthWest
	NodeNorthWest
)

// EdgeRef names one of the six sides of a hex tile.
type EdgeRef uint8

const (
	EdgeEast EdgeRef = iota
	EdgeSouthEast
	EdgeSouthWest
	EdgeWest
	EdgeNorthWest
	EdgeNorthEast
)

// edgeNodes maps each tile side to the two corners it connects.
var edgeNodes = [6][2]NodeRef{
	EdgeEast:      {NodeNorthEast, NodeSouthEast},
	EdgeSouthEast: {NodeSouthEast, NodeSouth},
	EdgeSouthWest: {NodeSouth, NodeSouthWest},
	EdgeWest:      {NodeSouthWest, NodeNorthWest},
	EdgeNorthWest: {NodeNorthWest, NodeNorth},
	EdgeNorthEast: {NodeNorth, NodeNorthEast},
}

// portDirectionNodes maps a port's facing direction to the two corners
// that grant the port's trade rate.
var portDirectionNodes = [6][2]NodeRef{
	West:      {NodeNorthWest, NodeSouthWest},
	NorthWest: {NodeNorth, NodeNorthWest},
	NorthEast: {NodeNorthEast, NodeNorth},
	East:      {NodeSouthEast, NodeNorthEast},
	SouthEast: {NodeSouth, NodeSouthEast},
	SouthWest: {NodeSouthWest, NodeSouth},
}
