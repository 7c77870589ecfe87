// Package experiments runs batches of self-play games and aggregates
// their results.
package experiments

import (
	"catan/features"
	"catan/game"
)

// GameStats aggregates results over a batch of games.
type GameStats struct {
	Games      int
	Draws      int
	Wins       map[game.Color]int
	TotalTurns int
	TotalTicks int

	// Samples holds one terminal-state observation per game when the
	// batch collects features.
	Samples []*features.Vector
}

// NewGameStats creates an empty aggregate.
func NewGameStats() *GameStats {
	return &GameStats{Wins: make(map[game.Color]int)}
}

// Record adds one finished game.
func (s *GameStats) Record(winner game.Color, won bool, turns, ticks int) {
	s.Games++
	if won {
		s.Wins[winner]++
	} else {
		s.Draws++
	}
	s.TotalTurns += turns
	s.TotalTicks += ticks
}

// RecordSample stores one observation row.
func (s *GameStats) RecordSample(v *features.Vector) {
	s.Samples = append(s.Samples, v)
}

// Merge folds other into s. Used to combine per-worker aggregates.
func (s *GameStats) Merge(other *GameStats) {
	s.Games += other.Games
	s.Draws += other.Draws
	for color, wins := range other.Wins {
		s.Wins[color] += wins
	}
	s.TotalTurns += other.TotalTurns
	s.TotalTicks += other.TotalTicks
	s.Samples = append(s.Samples, other.Samples...)
}

// WinRate is color's share of all games, draws counting against.
func (s *GameStats) WinRate(color game.Color) float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins[color]) / float64(s.Games)
}

// AvgTurns is the mean game length in turns.
func (s *GameStats) AvgTurns() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.TotalTurns) / float64(s.Games)
}
