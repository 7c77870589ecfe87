package board

// Direction identifies one of the six hex neighbors.
type Direction uint8

const (
	East Direction = iota
	SouthEast
	SouthWest
	West
	NorthWest
	NorthEast
)

var directionNames = [...]string{"EAST", "SOUTH_EAST", "SOUTH_WEST", "WEST", "NORTH_WEST", "NORTH_EAST"}

func (d Direction) String() string {
	return directionNames[d]
}

// Directions lists all six directions in a fixed order so that map
// construction visits neighbors deterministically.
var Directions = [6]Direction{East, SouthEast, SouthWest, West, NorthWest, NorthEast}

// CubeCoord is a cube hex coordinate. X+Y+Z is always zero.
type CubeCoord struct {
	X, Y, Z int
}

func Cube(x, y, z int) CubeCoord {
	return CubeCoord{X: x, Y: y, Z: z}
}

func (c CubeCoord) Add(o CubeCoord) CubeCoord {
	return CubeCoord{X: c.X + o.X, Y: c.Y + o.Y, Z: c.Z + o.Z}
}

var unitVectors = [6]CubeCoord{
	East:      {1, -1, 0},
	SouthEast: {0, -1, 1},
	SouthWest: {-1, 0, 1},
	West:      {-1, 1, 0},
	NorthWest: {0, 1, -1},
	NorthEast: {1, 0, -1},
}

// Vector returns the unit offset for a direction.
func (d Direction) Vector() CubeCoord {
	return unitVectors[d]
}

// Neighbor returns the coordinate of the adjacent hex in direction d.
func (c CubeCoord) Neighbor(d Direction) CubeCoord {
	return c.Add(unitVectors[d])
}

func CubeToAxial(c CubeCoord) (int, int) {
	return c.X, c.Z
}

func CubeToOffset(c CubeCoord) (int, int) {
	col := c.X + (c.Z-(c.Z&1))/2
	return col, c.Z
}

func OffsetToCube(col, row int) CubeCoord {
	x := col - (row-(row&1))/2
	z := row
	return CubeCoord{X: x, Y: -x - z, Z: z}
}
