package board

import (
	"fmt"
	"sort"

	"golang.org/x/exp/rand"
)

// TileKind discriminates the three tile variants.
type TileKind uint8

const (
	TileLand TileKind = iota
	TileWater
	TilePort
)

const unassignedNode = NodeID(0xFFFF)

// Tile is one hex cell of the map. Land tiles carry a resource and a
// roll number (desert excepted); port tiles carry a trade resource
// (NoResource for generic 3:1 ports) and a facing direction. Nodes and
// Edges are indexed by NodeRef/EdgeRef.
type Tile struct {
	Kind     TileKind
	Coord    CubeCoord
	ID       uint16 // land and port tiles number independently
	Resource Resource
	Number   int
	PortDir  Direction
	Nodes    [6]NodeID
	Edges    [6]EdgeID
}

// HasProduction reports whether the tile yields resources on a roll.
func (t *Tile) HasProduction() bool {
	return t.Kind == TileLand && t.Resource != NoResource
}

// Map is the immutable game board: the tile graph plus every derived
// lookup table the engine needs. Built once per game, never mutated
// afterwards. All slice-valued tables are sorted so that iteration is
// reproducible across runs.
type Map struct {
	Type  MapType
	Tiles []*Tile // construction order

	TilesByID   map[uint16]*Tile // land tiles only
	LandTileIDs []uint16         // sorted
	PortsByID   map[uint16]*Tile

	// PortNodes maps a port resource (NoResource = generic 3:1) to the
	// nodes granting that rate.
	PortNodes map[Resource]map[NodeID]bool

	LandNodes   []NodeID // sorted
	landNodeSet map[NodeID]bool

	AdjacentTiles  map[NodeID][]uint16
	NodeNeighbors  map[NodeID][]NodeID
	NodeEdges      map[NodeID][]EdgeID
	NodeProduction map[NodeID]map[Resource]float64

	// Edges holds every distinct normalized edge, sorted.
	Edges []EdgeID

	NumNodes int
}

// Build constructs a map of the given type, shuffling tile resources,
// numbers and ports with rng. The same type and rng state always
// produce an identical map.
func Build(mapType MapType, rng *rand.Rand) *Map {
	switch mapType {
	case Base:
		return fromTemplate(mapType, &baseTemplate, nil, rng)
	case Mini:
		return fromTemplate(mapType, &miniTemplate, nil, rng)
	case Tournament:
		return fromTemplate(mapType, &baseTemplate, &shuffleOverrides{
			numbers:       tournamentNumbers,
			portResources: tournamentPorts,
			tileResources: tournamentTiles,
		}, rng)
	default:
		panic(fmt.Sprintf("unknown map type %d", mapType))
	}
}

// shuffleOverrides pins the resource/number pools to a fixed order
// instead of shuffling them.
type shuffleOverrides struct {
	numbers       []int
	portResources []Resource
	tileResources []Resource
}

func fromTemplate(mapType MapType, template *mapTemplate, overrides *shuffleOverrides, rng *rand.Rand) *Map {
	numbers := poolFrom(template.numbers, overrides == nil, rng, func(o *shuffleOverrides) []int { return o.numbers }, overrides)
	portResources := poolFrom(template.portResources, overrides == nil, rng, func(o *shuffleOverrides) []Resource { return o.portResources }, overrides)
	tileResources := poolFrom(template.tileResources, overrides == nil, rng, func(o *shuffleOverrides) []Resource { return o.tileResources }, overrides)

	b := &builder{
		tiles:   make([]*Tile, 0, len(template.topology)),
		byCoord: make(map[CubeCoord]*Tile, len(template.topology)),
	}

	var landAutoinc, portAutoinc uint16
	for _, entry := range template.topology {
		nodes, edges := b.nodesAndEdges(entry.coord)
		tile := &Tile{Coord: entry.coord, Nodes: nodes, Edges: edges}
		switch entry.kind {
		case templateLand:
			tile.Kind = TileLand
			tile.ID = landAutoinc
			landAutoinc++
			tile.Resource = pop(&tileResources)
			if tile.Resource != NoResource {
				tile.Number = pop(&numbers)
			}
		case templateWater:
			tile.Kind = TileWater
			tile.Resource = NoResource
		case templatePort:
			tile.Kind = TilePort
			tile.ID = portAutoinc
			portAutoinc++
			tile.Resource = pop(&portResources)
			tile.PortDir = entry.portDir
		}
		b.tiles = append(b.tiles, tile)
		b.byCoord[entry.coord] = tile
	}

	return finalize(mapType, b)
}

func poolFrom[T any](base []T, shuffle bool, rng *rand.Rand, pick func(*shuffleOverrides) []T, overrides *shuffleOverrides) []T {
	src := base
	if overrides != nil {
		src = pick(overrides)
	}
	pool := make([]T, len(src))
	copy(pool, src)
	if shuffle {
		rng.Shuffle(len(pool), func(i, j int) {
			pool[i], pool[j] = pool[j], pool[i]
		})
	}
	return pool
}

func pop[T any](pool *[]T) T {
	p := *pool
	if len(p) == 0 {
		panic("map template pool exhausted")
	}
	v := p[len(p)-1]
	*pool = p[:len(p)-1]
	return v
}

type builder struct {
	tiles       []*Tile
	byCoord     map[CubeCoord]*Tile
	nodeAutoinc NodeID
}

// nodesAndEdges resolves the six corners and sides of a tile at coord,
// sharing IDs with already-placed neighbor tiles and allocating fresh
// IDs for corners no neighbor has claimed.
func (b *builder) nodesAndEdges(coord CubeCoord) ([6]NodeID, [6]EdgeID) {
	var nodes [6]NodeID
	for i := range nodes {
		nodes[i] = unassignedNode
	}

	adopt := func(ref NodeRef, neighbor *Tile, neighborRef NodeRef) {
		nodes[ref] = neighbor.Nodes[neighborRef]
	}

	for _, dir := range Directions {
		neighbor, ok := b.byCoord[coord.Neighbor(dir)]
		if !ok {
			continue
		}
		switch dir {
		case East:
			adopt(NodeNorthEast, neighbor, NodeNorthWest)
			adopt(NodeSouthEast, neighbor, NodeSouthWest)
		case SouthEast:
			adopt(NodeSouth, neighbor, NodeNorthWest)
			adopt(NodeSouthEast, neighbor, NodeNorth)
		case SouthWest:
			adopt(NodeSouth, neighbor, NodeNorthEast)
			adopt(NodeSouthWest, neighbor, NodeNorth)
		case West:
			adopt(NodeNorthWest, neighbor, NodeNorthEast)
			adopt(NodeSouthWest, neighbor, NodeSouthEast)
		case NorthWest:
			adopt(NodeNorth, neighbor, NodeSouthEast)
			adopt(NodeNorthWest, neighbor, NodeSouth)
		case NorthEast:
			adopt(NodeNorth, neighbor, NodeSouthWest)
			adopt(NodeNorthEast, neighbor, NodeSouth)
		}
	}

	for ref := range nodes {
		if nodes[ref] == unassignedNode {
			nodes[ref] = b.nodeAutoinc
			b.nodeAutoinc++
		}
	}

	var edges [6]EdgeID
	for ref, pair := range edgeNodes {
		edges[ref] = EdgeID{A: nodes[pair[0]], B: nodes[pair[1]]}.Normalized()
	}
	return nodes, edges
}

func finalize(mapType MapType, b *builder) *Map {
	m := &Map{
		Type:           mapType,
		Tiles:          b.tiles,
		TilesByID:      make(map[uint16]*Tile),
		PortsByID:      make(map[uint16]*Tile),
		PortNodes:      make(map[Resource]map[NodeID]bool),
		landNodeSet:    make(map[NodeID]bool),
		AdjacentTiles:  make(map[NodeID][]uint16),
		NodeNeighbors:  make(map[NodeID][]NodeID),
		NodeEdges:      make(map[NodeID][]EdgeID),
		NodeProduction: make(map[NodeID]map[Resource]float64),
		NumNodes:       int(b.nodeAutoinc),
	}

	neighborSets := make(map[NodeID]map[NodeID]bool)
	edgeSet := make(map[EdgeID]bool)

	for _, tile := range b.tiles {
		switch tile.Kind {
		case TileLand:
			// Only land tile edges carry roads; sea edges stay out of
			// the graph.
			for _, edge := range tile.Edges {
				edgeSet[edge] = true
				for _, end := range [2]NodeID{edge.A, edge.B} {
					if neighborSets[end] == nil {
						neighborSets[end] = make(map[NodeID]bool)
					}
				}
				neighborSets[edge.A][edge.B] = true
				neighborSets[edge.B][edge.A] = true
			}
			m.TilesByID[tile.ID] = tile
			m.LandTileIDs = append(m.LandTileIDs, tile.ID)
			for _, node := range tile.Nodes {
				if !m.landNodeSet[node] {
					m.landNodeSet[node] = true
					m.LandNodes = append(m.LandNodes, node)
				}
				m.AdjacentTiles[node] = append(m.AdjacentTiles[node], tile.ID)
			}
		case TilePort:
			m.PortsByID[tile.ID] = tile
			refs := portDirectionNodes[tile.PortDir]
			if m.PortNodes[tile.Resource] == nil {
				m.PortNodes[tile.Resource] = make(map[NodeID]bool)
			}
			m.PortNodes[tile.Resource][tile.Nodes[refs[0]]] = true
			m.PortNodes[tile.Resource][tile.Nodes[refs[1]]] = true
		}
	}

	for node, set := range neighborSets {
		neighbors := make([]NodeID, 0, len(set))
		for n := range set {
			neighbors = append(neighbors, n)
		}
		sort.Slice(neighbors, func(i, j int) bool { return neighbors[i] < neighbors[j] })
		m.NodeNeighbors[node] = neighbors
		edges := make([]EdgeID, 0, len(neighbors))
		for _, n := range neighbors {
			edges = append(edges, EdgeID{A: node, B: n}.Normalized())
		}
		m.NodeEdges[node] = edges
	}

	m.Edges = make([]EdgeID, 0, len(edgeSet))
	for edge := range edgeSet {
		m.Edges = append(m.Edges, edge)
	}
	sort.Slice(m.Edges, func(i, j int) bool {
		if m.Edges[i].A != m.Edges[j].A {
			return m.Edges[i].A < m.Edges[j].A
		}
		return m.Edges[i].B < m.Edges[j].B
	})

	sort.Slice(m.LandNodes, func(i, j int) bool { return m.LandNodes[i] < m.LandNodes[j] })
	sort.Slice(m.LandTileIDs, func(i, j int) bool { return m.LandTileIDs[i] < m.LandTileIDs[j] })
	for node := range m.AdjacentTiles {
		ids := m.AdjacentTiles[node]
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	}

	for node, tileIDs := range m.AdjacentTiles {
		production := make(map[Resource]float64)
		for _, id := range tileIDs {
			tile := m.TilesByID[id]
			if tile.HasProduction() {
				production[tile.Resource] += NumberProbability(tile.Number)
			}
		}
		m.NodeProduction[node] = production
	}

	return m
}

// IsLandNode reports whether settlements may ever be built on n.
func (m *Map) IsLandNode(n NodeID) bool {
	return m.landNodeSet[n]
}

// HasEdge reports whether the normalized edge exists on the board.
func (m *Map) HasEdge(e EdgeID) bool {
	e = e.Normalized()
	for _, candidate := range m.NodeEdges[e.A] {
		if candidate == e {
			return true
		}
	}
	return false
}

// diceProbabilities[sum] is the chance of rolling sum with two dice.
var diceProbabilities = func() [13]float64 {
	var probas [13]float64
	for i := 1; i <= 6; i++ {
		for j := 1; j <= 6; j++ {
			probas[i+j] += 1.0 / 36.0
		}
	}
	return probas
}()

// NumberProbability returns the chance of rolling the given sum with
// two dice, or 0 for sums outside 2..12.
func NumberProbability(sum int) float64 {
	if sum < 2 || sum > 12 {
		return 0
	}
	return diceProbabilities[sum]
}
