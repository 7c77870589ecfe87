// Package player provides the built-in agents: a uniform random
// baseline and a one-ply value function player.
package player

import (
	"golang.org/x/exp/rand"

	"catan/game"
)

// RandomPlayer picks uniformly among the legal actions. It is the
// baseline opponent and the rollout policy for search.
type RandomPlayer struct {
	color game.Color
	rng   *rand.Rand
}

// NewRandomPlayer seats a random agent with its own seeded stream.
func NewRandomPlayer(color game.Color, seed uint64) *RandomPlayer {
	return &RandomPlayer{color: color, rng: rand.New(rand.NewSource(seed))}
}

func (p *RandomPlayer) Color() game.Color { return p.color }

func (p *RandomPlayer) Decide(_ *game.State, actions []game.GameAction) *game.GameAction {
	action := actions[p.rng.Intn(len(actions))]
	return &action
}
