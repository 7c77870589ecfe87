// Package searcher implements lookahead play over the game state
// machine: stochastic outcome expansion, action pruning and Monte
// Carlo tree search.
package searcher

import (
	"catan/board"
	"catan/game"
)

// Outcome is one possible resulting state of an action together with
// its probability. Probabilities of one action's outcomes sum to 1.
type Outcome struct {
	State *game.State
	Proba float64
}

// ExecuteSpectrum applies action to a copy of state and enumerates
// every stochastic outcome. Rolls branch over the eleven dice sums;
// robber steals branch uniformly over the victim's distinct resource
// types; everything else is deterministic. Outcomes whose step fails
// are dropped.
func ExecuteSpectrum(state *game.State, action game.GameAction) []Outcome {
	switch {
	case action.Type == game.Roll && action.Payload.Kind == game.PayloadNone:
		return rollSpectrum(state, action)
	case action.Type == game.MoveRobber && action.Payload.Steal:
		return stealSpectrum(state, action)
	default:
		next := state.Copy()
		if _, err := next.Step(action); err != nil {
			return nil
		}
		return []Outcome{{State: next, Proba: 1}}
	}
}

func rollSpectrum(state *game.State, action game.GameAction) []Outcome {
	outcomes := make([]Outcome, 0, 11)
	for sum := 2; sum <= 12; sum++ {
		d1 := uint8(sum / 2)
		d2 := uint8(sum) - d1
		forced := action
		forced.Payload = game.DicePayload(d1, d2)
		next := state.Copy()
		if _, err := next.Step(forced); err != nil {
			continue
		}
		outcomes = append(outcomes, Outcome{State: next, Proba: board.NumberProbability(sum)})
	}
	return outcomes
}

// stealSpectrum branches one outcome per distinct resource in the
// victim's hand. The engine steals a uniformly random card; each
// branch rewrites the transfer to the wanted resource, weighting by
// the count of distinct types.
func stealSpectrum(state *game.State, action game.GameAction) []Outcome {
	victimHand := state.Players[action.Payload.Victim].Hand
	var present []game.Resource
	for _, r := range game.Resources {
		if victimHand.Count(r) > 0 {
			present = append(present, r)
		}
	}
	if len(present) == 0 {
		next := state.Copy()
		if _, err := next.Step(action); err != nil {
			return nil
		}
		return []Outcome{{State: next, Proba: 1}}
	}

	proba := 1.0 / float64(len(present))
	outcomes := make([]Outcome, 0, len(present))
	for _, wanted := range present {
		next := state.Copy()
		result, err := next.Step(action)
		if err != nil {
			continue
		}
		rewriteSteal(next, result, action, wanted)
		outcomes = append(outcomes, Outcome{State: next, Proba: proba})
	}
	return outcomes
}

// rewriteSteal swaps the randomly stolen card for the wanted one so
// the branch is deterministic.
func rewriteSteal(state *game.State, result game.StepOutcome, action game.GameAction, wanted game.Resource) {
	for _, event := range result.Events {
		if event.Kind != game.EventStolen {
			continue
		}
		stolen := game.NoResource
		for _, r := range game.Resources {
			if event.Bundle.Count(r) > 0 {
				stolen = r
				break
			}
		}
		if stolen == wanted || stolen == game.NoResource {
			return
		}
		thief := state.Players[action.Color]
		victim := state.Players[action.Payload.Victim]
		thief.Hand, _ = thief.Hand.Subtract(game.Single(stolen, 1))
		thief.Hand = thief.Hand.Add(game.Single(wanted, 1))
		victim.Hand = victim.Hand.Add(game.Single(stolen, 1))
		victim.Hand, _ = victim.Hand.Subtract(game.Single(wanted, 1))
		if recorded := state.ActionLog(); len(recorded) > 0 {
			recorded[len(recorded)-1].Payload.Take = wanted
		}
		return
	}
}
