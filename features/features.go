// Package features turns game states into flat numeric records for
// analysis and learned players.
package features

import (
	"fmt"
	"sort"

	"catan/game"
)

// Vector is an ordered feature mapping. Names returns keys in a fixed
// order so rows line up across states.
type Vector struct {
	values map[string]float64
	names  []string
}

func newVector() *Vector {
	return &Vector{values: make(map[string]float64)}
}

func (v *Vector) set(name string, value float64) {
	if _, exists := v.values[name]; !exists {
		v.names = append(v.names, name)
	}
	v.values[name] = value
}

// Get returns the value for name, 0 when absent.
func (v *Vector) Get(name string) float64 {
	return v.values[name]
}

// Names lists the feature names in insertion order.
func (v *Vector) Names() []string {
	return v.names
}

// Values lists values aligned with Names.
func (v *Vector) Values() []float64 {
	out := make([]float64, len(v.names))
	for i, name := range v.names {
		out[i] = v.values[name]
	}
	return out
}

// Extract computes the feature vector for color's view of state:
// per-player scoring and hand summaries plus board production, always
// ordered with color first so the perspective is normalized.
func Extract(state *game.State, color game.Color) *Vector {
	v := newVector()

	order := perspectiveOrder(state, color)
	for seat, c := range order {
		player := state.Players[c]
		prefix := fmt.Sprintf("p%d", seat)

		v.set(prefix+"_public_vps", float64(player.PublicPoints()))
		v.set(prefix+"_settlements", float64(len(player.Settlements)))
		v.set(prefix+"_cities", float64(len(player.Cities)))
		v.set(prefix+"_roads", float64(len(player.Roads)))
		v.set(prefix+"_longest_road", float64(player.LongestRoadLen))
		v.set(prefix+"_knights_played", float64(player.KnightsPlayed))
		v.set(prefix+"_has_longest_road", boolFeature(player.HasLongestRoad))
		v.set(prefix+"_has_largest_army", boolFeature(player.HasLargestArmy))
		v.set(prefix+"_hand_size", float64(player.Hand.Total()))
		v.set(prefix+"_dev_cards", float64(player.TotalDevCards()))
		v.set(prefix+"_production", production(state, c))

		// Own hand is visible in full; opponents only by size.
		if c == color {
			for _, r := range game.Resources {
				v.set(fmt.Sprintf("%s_hand_%s", prefix, r), float64(player.Hand.Count(r)))
			}
			v.set(prefix+"_actual_vps", float64(player.TotalPoints()))
		}
	}

	v.set("bank_dev_cards", float64(len(state.Bank.DevDeck)))
	for _, r := range game.Resources {
		v.set(fmt.Sprintf("bank_%s", r), float64(state.Bank.Resources.Count(r)))
	}
	v.set("turn", float64(state.Turn))
	v.set("robber_tile", float64(state.RobberTile))
	return v
}

func perspectiveOrder(state *game.State, color game.Color) []game.Color {
	order := []game.Color{color}
	rest := make([]game.Color, 0, len(state.Players)-1)
	for _, player := range state.Players {
		if player.Color != color {
			rest = append(rest, player.Color)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	return append(order, rest...)
}

func production(state *game.State, color game.Color) float64 {
	player := state.Players[color]
	total := 0.0
	for _, node := range player.Settlements {
		for _, p := range state.Map.NodeProduction[node] {
			total += p
		}
	}
	for _, node := range player.Cities {
		for _, p := range state.Map.NodeProduction[node] {
			total += 2 * p
		}
	}
	return total
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
