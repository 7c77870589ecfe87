package player

import (
	"testing"

	"github.com/stretchr/testify/require"

	"catan/game"
)

func playedOutState(t *testing.T, seed uint64, steps int) *game.State {
	t.Helper()
	s := game.NewState(game.Config{Seed: seed})
	random := NewRandomPlayer(game.Red, seed)
	for i := 0; i < steps && s.Phase != game.PhaseFinished; i++ {
		actions := s.LegalActions()
		require.NotEmpty(t, actions)
		action := *random.Decide(s, actions)
		action.Color = s.CurrentPlayer
		_, err := s.Step(action)
		require.NoError(t, err)
	}
	return s
}

func TestRandomPlayerPicksLegalActions(t *testing.T) {
	s := game.NewState(game.Config{Seed: 1})
	p := NewRandomPlayer(game.Red, 1)

	actions := s.LegalActions()
	for i := 0; i < 50; i++ {
		require.Contains(t, actions, *p.Decide(s, actions))
	}
}

func TestRandomPlayerIsSeeded(t *testing.T) {
	s := game.NewState(game.Config{Seed: 2})
	actions := s.LegalActions()

	a := NewRandomPlayer(game.Red, 7)
	b := NewRandomPlayer(game.Red, 7)
	for i := 0; i < 20; i++ {
		require.Equal(t, *a.Decide(s, actions), *b.Decide(s, actions))
	}
}

func TestValuePlayerPicksLegalAction(t *testing.T) {
	s := playedOutState(t, 3, 40)
	p := NewValuePlayer(s.CurrentPlayer, 0, 3)

	actions := s.LegalActions()
	require.Contains(t, actions, *p.Decide(s, actions))
}

func TestValuePlayerDoesNotMutateState(t *testing.T) {
	s := playedOutState(t, 4, 40)
	p := NewValuePlayer(s.CurrentPlayer, 0, 4)

	prompt := s.Prompt
	turn := s.Turn
	bank := s.Bank.Resources
	hands := make([]game.ResourceBundle, len(s.Players))
	for i, pl := range s.Players {
		hands[i] = pl.Hand
	}

	p.Decide(s, s.LegalActions())

	require.Equal(t, prompt, s.Prompt)
	require.Equal(t, turn, s.Turn)
	require.Equal(t, bank, s.Bank.Resources)
	for i, pl := range s.Players {
		require.Equal(t, hands[i], pl.Hand)
	}
}

func TestEvaluatePrefersPoints(t *testing.T) {
	s := playedOutState(t, 5, 24) // through setup
	require.Equal(t, game.PhasePlay, s.Phase)

	w := DefaultValueWeights()
	base := Evaluate(s, game.Red, w)

	// Upgrading a settlement to a city raises the public score, which
	// must dominate every other feature.
	richer := s.Copy()
	red := richer.Players[game.Red]
	node := red.Settlements[0]
	richer.NodeOccupancy[node] = game.Building{Color: game.Red, Kind: game.City}
	red.Settlements = red.Settlements[1:]
	red.Cities = append(red.Cities, node)

	require.Greater(t, Evaluate(richer, game.Red, w), base)
}

func TestEvaluatePenalizesEnemyProduction(t *testing.T) {
	s := playedOutState(t, 6, 24)
	require.Equal(t, game.PhasePlay, s.Phase)

	w := DefaultValueWeights()
	base := Evaluate(s, game.Red, w)

	// Removing an opponent settlement can only help Red.
	weaker := s.Copy()
	blue := weaker.Players[game.Blue]
	require.NotEmpty(t, blue.Settlements)
	node := blue.Settlements[0]
	delete(weaker.NodeOccupancy, node)
	blue.Settlements = blue.Settlements[1:]

	require.GreaterOrEqual(t, Evaluate(weaker, game.Red, w), base)
}

func TestValuePlayerEpsilonZeroIsDeterministic(t *testing.T) {
	s := playedOutState(t, 7, 40)
	a := NewValuePlayer(s.CurrentPlayer, 0, 1)
	b := NewValuePlayer(s.CurrentPlayer, 0, 2)

	actions := s.LegalActions()
	require.Equal(t, *a.Decide(s, actions), *b.Decide(s, actions),
		"greedy play should not depend on the seed")
}

func TestHandSynergy(t *testing.T) {
	require.Zero(t, handSynergy(game.ResourceBundle{}))
	require.Equal(t, 1.0, handSynergy(game.CostRoad), "a full road cost is fully covered")
	require.Equal(t, 1.0, handSynergy(game.CostCity))
	require.Greater(t, handSynergy(game.NewBundle(1, 0, 0, 0, 0)), 0.0)
	require.Less(t, handSynergy(game.NewBundle(1, 0, 0, 0, 0)), 1.0)
}
