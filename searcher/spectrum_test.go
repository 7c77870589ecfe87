package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"catan/game"
)

// advance plays random legal actions until the predicate holds or
// steps run out.
func advance(t *testing.T, s *game.State, rng *rand.Rand, steps int, until func(*game.State) bool) bool {
	t.Helper()
	for i := 0; i < steps; i++ {
		if until(s) {
			return true
		}
		if s.Phase == game.PhaseFinished {
			return false
		}
		actions := s.LegalActions()
		require.NotEmpty(t, actions)
		_, err := s.Step(actions[rng.Intn(len(actions))])
		require.NoError(t, err)
	}
	return until(s)
}

func setupDone(s *game.State) bool { return s.Phase == game.PhasePlay }

func TestExecuteSpectrumDeterministicAction(t *testing.T) {
	s := game.NewState(game.Config{Seed: 1})
	action := s.LegalActions()[0]

	outcomes := ExecuteSpectrum(s, action)
	require.Len(t, outcomes, 1)
	require.Equal(t, 1.0, outcomes[0].Proba)

	t.Run("does not touch the input state", func(t *testing.T) {
		require.Equal(t, game.PromptBuildInitialSettlement, s.Prompt)
		require.NotSame(t, s, outcomes[0].State)
	})
}

func TestExecuteSpectrumRoll(t *testing.T) {
	s := game.NewState(game.Config{Seed: 2})
	rng := rand.New(rand.NewSource(2))
	require.True(t, advance(t, s, rng, 50, setupDone))
	require.True(t, s.AwaitingRoll())

	roll := game.GameAction{Color: s.CurrentPlayer, Type: game.Roll}
	outcomes := ExecuteSpectrum(s, roll)

	require.Len(t, outcomes, 11, "one branch per dice sum")

	total := 0.0
	for _, outcome := range outcomes {
		total += outcome.Proba
		require.False(t, outcome.State.AwaitingRoll(), "each branch has rolled")
	}
	require.InDelta(t, 1.0, total, 1e-9)

	t.Run("branch probabilities follow the dice", func(t *testing.T) {
		require.InDelta(t, 1.0/36.0, outcomes[0].Proba, 1e-9)  // sum 2
		require.InDelta(t, 6.0/36.0, outcomes[5].Proba, 1e-9)  // sum 7
		require.InDelta(t, 1.0/36.0, outcomes[10].Proba, 1e-9) // sum 12
	})
}

func TestExecuteSpectrumSteal(t *testing.T) {
	s := game.NewState(game.Config{Seed: 3})
	rng := rand.New(rand.NewSource(3))
	require.True(t, advance(t, s, rng, 50, setupDone))

	// Force a robber prompt with a stealable victim.
	victim := s.Players[1]
	give := game.NewBundle(1, 1, 0, 1, 0)
	require.True(t, s.Bank.Give(give))
	victim.Hand = victim.Hand.Add(give)

	_, err := s.Step(game.GameAction{
		Color: s.CurrentPlayer, Type: game.Roll, Payload: game.DicePayload(3, 4),
	})
	require.NoError(t, err)
	if s.Prompt != game.PromptMoveRobber {
		t.Skipf("discards pending on this layout")
	}

	var steal *game.GameAction
	for _, action := range s.LegalActions() {
		if action.Payload.Steal && action.Payload.Victim == victim.Color {
			steal = &action
			break
		}
	}
	if steal == nil {
		t.Skipf("victim not reachable by the robber on this layout")
	}

	distinct := 0
	for _, r := range game.Resources {
		if victim.Hand.Count(r) > 0 {
			distinct++
		}
	}

	outcomes := ExecuteSpectrum(s, *steal)
	require.Len(t, outcomes, distinct, "one branch per distinct resource held")

	total := 0.0
	seen := make(map[game.ResourceBundle]bool)
	for _, outcome := range outcomes {
		total += outcome.Proba
		thief := outcome.State.Players[steal.Color]
		handAfter := thief.Hand
		require.Equal(t, s.Players[steal.Color].Hand.Total()+1, handAfter.Total(),
			"each branch transfers exactly one card")
		seen[handAfter] = true
	}
	require.InDelta(t, 1.0, total, 1e-9)
	require.Len(t, seen, distinct, "branches end in distinct hands")
}

func TestExecuteSpectrumDropsIllegalAction(t *testing.T) {
	s := game.NewState(game.Config{Seed: 4})
	bogus := game.GameAction{Color: game.Blue, Type: game.EndTurn}
	require.Empty(t, ExecuteSpectrum(s, bogus))
}
