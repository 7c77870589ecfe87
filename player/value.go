package player

import (
	"golang.org/x/exp/rand"

	"catan/board"
	"catan/game"
)

// ValueWeights are the linear coefficients of the hand-tuned value
// function. The magnitudes enforce a lexicographic preference: points
// dominate production, production dominates everything else.
type ValueWeights struct {
	PublicVps       float64
	Production      float64
	EnemyProduction float64
	NumTiles        float64
	BuildableNodes  float64
	LongestRoad     float64
	HandSynergy     float64
	HandResources   float64
	DiscardPenalty  float64
	HandDevs        float64
	ArmySize        float64
}

// DefaultValueWeights is the tuned weight set.
func DefaultValueWeights() ValueWeights {
	return ValueWeights{
		PublicVps:       3e14,
		Production:      1e8,
		EnemyProduction: -1e8,
		NumTiles:        1.0,
		BuildableNodes:  1e3,
		LongestRoad:     10.0,
		HandSynergy:     1e2,
		HandResources:   1.0,
		DiscardPenalty:  -5.0,
		HandDevs:        10.0,
		ArmySize:        10.1,
	}
}

// ValuePlayer greedily picks the action whose resulting state scores
// highest under a linear value function, exploring a random action
// with probability Epsilon.
type ValuePlayer struct {
	color   game.Color
	weights ValueWeights
	epsilon float64
	rng     *rand.Rand
}

// NewValuePlayer seats a value function agent. epsilon 0 plays fully
// greedy.
func NewValuePlayer(color game.Color, epsilon float64, seed uint64) *ValuePlayer {
	return &ValuePlayer{
		color:   color,
		weights: DefaultValueWeights(),
		epsilon: epsilon,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

func (p *ValuePlayer) Color() game.Color { return p.color }

func (p *ValuePlayer) Decide(state *game.State, actions []game.GameAction) *game.GameAction {
	if len(actions) == 1 {
		action := actions[0]
		return &action
	}
	if p.epsilon > 0 && p.rng.Float64() < p.epsilon {
		action := actions[p.rng.Intn(len(actions))]
		return &action
	}

	best := actions[0]
	bestScore := 0.0
	first := true
	for _, action := range actions {
		next := state.Copy()
		if _, err := next.Step(action); err != nil {
			continue
		}
		score := Evaluate(next, p.color, p.weights)
		if first || score > bestScore {
			best = action
			bestScore = score
			first = false
		}
	}
	return &best
}

// Evaluate scores a state from color's perspective with the given
// weights. Larger is better.
func Evaluate(state *game.State, color game.Color, w ValueWeights) float64 {
	me := state.Players[color]

	production := ownedProduction(state, color)
	enemyProduction := 0.0
	for _, other := range state.Players {
		if other.Color != color {
			enemyProduction += ownedProduction(state, other.Color)
		}
	}

	buildable := buildableNodeCount(state, color)
	longestFactor := 1.0
	if buildable > 0 {
		// Chasing road length matters less while expansion spots
		// remain.
		longestFactor = 0.1
	}

	handTotal := float64(me.Hand.Total())
	discard := 0.0
	if me.Hand.Total() > state.Config.DiscardLimit {
		discard = 1.0
	}

	score := w.PublicVps * float64(me.PublicPoints())
	score += w.Production * production
	score += w.EnemyProduction * enemyProduction
	score += w.NumTiles * float64(touchedTiles(state, color))
	score += w.BuildableNodes * float64(buildable)
	score += w.LongestRoad * longestFactor * float64(me.LongestRoadLen)
	score += w.HandSynergy * handSynergy(me.Hand)
	score += w.HandResources * handTotal
	score += w.DiscardPenalty * discard
	score += w.HandDevs * float64(me.TotalDevCards())
	score += w.ArmySize * float64(me.KnightsPlayed)
	return score
}

// ownedProduction is color's expected cards per roll, cities counting
// double.
func ownedProduction(state *game.State, color game.Color) float64 {
	me := state.Players[color]
	total := 0.0
	for _, node := range me.Settlements {
		for _, p := range state.Map.NodeProduction[node] {
			total += p
		}
	}
	for _, node := range me.Cities {
		for _, p := range state.Map.NodeProduction[node] {
			total += 2 * p
		}
	}
	return total
}

// touchedTiles counts the distinct land tiles color's buildings sit
// on.
func touchedTiles(state *game.State, color game.Color) int {
	me := state.Players[color]
	tiles := make(map[uint16]bool)
	nodes := make([]board.NodeID, 0, len(me.Settlements)+len(me.Cities))
	nodes = append(nodes, me.Settlements...)
	nodes = append(nodes, me.Cities...)
	for _, node := range nodes {
		for _, tileID := range state.Map.AdjacentTiles[node] {
			tiles[tileID] = true
		}
	}
	return len(tiles)
}

// buildableNodeCount counts open settlement sites on color's road
// network.
func buildableNodeCount(state *game.State, color game.Color) int {
	count := 0
	for _, node := range state.Map.LandNodes {
		if !settleable(state, node) {
			continue
		}
		if touchesOwnRoad(state, node, color) {
			count++
		}
	}
	return count
}

func settleable(state *game.State, node board.NodeID) bool {
	if _, taken := state.NodeOccupancy[node]; taken {
		return false
	}
	for _, neighbor := range state.Map.NodeNeighbors[node] {
		if _, taken := state.NodeOccupancy[neighbor]; taken {
			return false
		}
	}
	return true
}

func touchesOwnRoad(state *game.State, node board.NodeID, color game.Color) bool {
	for _, edge := range state.Map.NodeEdges[node] {
		if owner, ok := state.RoadOccupancy[edge]; ok && owner == color {
			return true
		}
	}
	return false
}

// handSynergy measures how close the hand is to the next purchase:
// the best fraction of any cost already covered.
func handSynergy(hand game.ResourceBundle) float64 {
	best := 0.0
	for _, cost := range []game.ResourceBundle{
		game.CostRoad, game.CostSettlement, game.CostCity, game.CostDevelopment,
	} {
		covered := 0
		for _, r := range game.Resources {
			have := int(hand.Count(r))
			need := int(cost.Count(r))
			if have > need {
				have = need
			}
			covered += have
		}
		if fraction := float64(covered) / float64(cost.Total()); fraction > best {
			best = fraction
		}
	}
	return best
}
