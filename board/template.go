package board

// MapType selects one of the built-in map layouts.
type MapType uint8

const (
	// Base is the standard 19-land-tile map with 9 ports.
	Base MapType = iota
	// Tournament is the base layout with a fixed, non-shuffled setup.
	Tournament
	// Mini is a 7-land-tile map with no ports, handy for fast games
	// and tests.
	Mini
)

func (t MapType) String() string {
	switch t {
	case Base:
		return "BASE"
	case Tournament:
		return "TOURNAMENT"
	case Mini:
		return "MINI"
	default:
		return "UNKNOWN"
	}
}

type tileKindTemplate uint8

const (
	templateLand tileKindTemplate = iota
	templateWater
	templatePort
)

type topologyEntry struct {
	coord   CubeCoord
	kind    tileKindTemplate
	portDir Direction
}

func land(x, y, z int) topologyEntry {
	return topologyEntry{coord: Cube(x, y, z), kind: templateLand}
}

func water(x, y, z int) topologyEntry {
	return topologyEntry{coord: Cube(x, y, z), kind: templateWater}
}

func port(x, y, z int, dir Direction) topologyEntry {
	return topologyEntry{coord: Cube(x, y, z), kind: templatePort, portDir: dir}
}

// mapTemplate holds the static description of a map layout: the pool
// of roll numbers, port resources and tile resources to distribute,
// and the hex topology in construction order. The construction order
// determines node and edge ID assignment, so it must never change for
// a released template.
type mapTemplate struct {
	numbers       []int
	portResources []Resource
	tileResources []Resource
	topology      []topologyEntry
}

var baseTemplate = mapTemplate{
	numbers: []int{2, 3, 3, 4, 4, 5, 5, 6, 6, 8, 8, 9, 9, 10, 10, 11, 11, 12},
	portResources: []Resource{
		Wood, Brick, Sheep, Wheat, Ore,
		NoResource, NoResource, NoResource, NoResource,
	},
	tileResources: []Resource{
		Wood, Wood, Wood, Wood,
		Brick, Brick, Brick,
		Sheep, Sheep, Sheep, Sheep,
		Wheat, Wheat, Wheat, Wheat,
		Ore, Ore, Ore,
		NoResource, // desert
	},
	topology: []topologyEntry{
		land(0, 0, 0),
		land(1, -1, 0),
		land(0, -1, 1),
		land(-1, 0, 1),
		land(-1, 1, 0),
		land(0, 1, -1),
		land(1, 0, -1),
		land(2, -2, 0),
		land(1, -2, 1),
		land(0, -2, 2),
		land(-1, -1, 2),
		land(-2, 0, 2),
		land(-2, 1, 1),
		land(-2, 2, 0),
		land(-1, 2, -1),
		land(0, 2, -2),
		land(1, 1, -2),
		land(2, 0, -2),
		land(2, -1, -1),
		port(3, -3, 0, West),
		water(2, -3, 1),
		port(1, -3, 2, NorthWest),
		water(0, -3, 3),
		port(-1, -2, 3, NorthWest),
		water(-2, -1, 3),
		port(-3, 0, 3, NorthEast),
		water(-3, 1, 2),
		port(-3, 2, 1, East),
		water(-3, 3, 0),
		port(-2, 3, -1, East),
		water(-1, 3, -2),
		port(0, 3, -3, SouthEast),
		water(1, 2, -3),
		port(2, 1, -3, SouthWest),
		water(3, 0, -3),
		port(3, -1, -2, SouthWest),
		water(3, -2, -1),
	},
}

var miniTemplate = mapTemplate{
	numbers:       []int{3, 4, 5, 6, 8, 9, 10},
	portResources: []Resource{},
	tileResources: []Resource{
		Wood, NoResource, Brick, Sheep, Wheat, Wheat, Ore,
	},
	topology: []topologyEntry{
		land(0, 0, 0),
		land(1, -1, 0),
		land(0, -1, 1),
		land(-1, 0, 1),
		land(-1, 1, 0),
		land(0, 1, -1),
		land(1, 0, -1),
		water(2, -2, 0),
		water(1, -2, 1),
		water(0, -2, 2),
		water(-1, -1, 2),
		water(-2, 0, 2),
		water(-2, 1, 1),
		water(-2, 2, 0),
		water(-1, 2, -1),
		water(0, 2, -2),
		water(1, 1, -2),
		water(2, 0, -2),
		water(2, -1, -1),
	},
}

// Tournament overrides: a fixed competitive layout on the base
// topology, applied in place of shuffling.
var tournamentNumbers = []int{10, 8, 3, 6, 2, 5, 10, 8, 4, 11, 12, 9, 5, 4, 9, 11, 3, 6}

var tournamentPorts = []Resource{
	NoResource, Sheep, NoResource, Ore, Wheat, NoResource, Wood, Brick, NoResource,
}

var tournamentTiles = []Resource{
	Wood, Sheep, Sheep, Wood, Wheat, Wood, Wheat, Brick, Sheep,
	Brick, Sheep, Wheat, Wheat, Ore, Brick, Ore, Wood, Ore, NoResource,
}
