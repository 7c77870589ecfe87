package game

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// TurnsLimit caps a session so degenerate matchups between weak
// agents still terminate.
const TurnsLimit = 1000

// Agent decides one action among the legal ones. Implementations must
// not mutate the state.
type Agent interface {
	// Decide picks one of actions for state, or returns nil to let
	// the tick pass without acting. actions is never empty.
	Decide(state *State, actions []GameAction) *GameAction
	// Color is the seat this agent plays.
	Color() Color
}

// Game is one playable session: a state plus the agents seated at it.
type Game struct {
	ID     uuid.UUID
	State  *State
	Agents map[Color]Agent
}

// NewGame seats agents around a fresh state. Agents are keyed by
// their color; every seat needs one.
func NewGame(config Config, agents []Agent) (*Game, error) {
	config = config.withDefaults()
	if len(agents) != config.NumPlayers {
		return nil, fmt.Errorf("need %d agents, got %d", config.NumPlayers, len(agents))
	}
	seated := make(map[Color]Agent, len(agents))
	for _, agent := range agents {
		if _, dup := seated[agent.Color()]; dup {
			return nil, fmt.Errorf("duplicate agent for %s", agent.Color())
		}
		seated[agent.Color()] = agent
	}
	for i := 0; i < config.NumPlayers; i++ {
		if _, ok := seated[Color(i)]; !ok {
			return nil, fmt.Errorf("no agent for %s", Color(i))
		}
	}
	return &Game{
		ID:     uuid.New(),
		State:  NewState(config),
		Agents: seated,
	}, nil
}

// PlayTick runs one decision: ask the prompted agent for an action and
// step the state. It reports whether the game is over.
func (g *Game) PlayTick() (bool, error) {
	state := g.State
	if state.Phase == PhaseFinished {
		return true, nil
	}
	actions := state.LegalActions()
	if len(actions) == 0 {
		return false, fmt.Errorf("no legal actions for %s at prompt %s", state.CurrentPlayer, state.Prompt)
	}
	agent := g.Agents[state.CurrentPlayer]
	action := agent.Decide(state, actions)
	if action == nil {
		// An unresponsive agent passes the tick without mutation.
		return false, nil
	}
	outcome, err := state.Step(*action)
	if err != nil {
		return false, fmt.Errorf("agent %s chose illegal action %s: %w", agent.Color(), *action, err)
	}
	return outcome.Done, nil
}

// Play runs the session to completion or the turn limit. It returns
// the winner, or ok=false on a turn-limit draw.
func (g *Game) Play() (Color, bool, error) {
	for g.State.Turn < TurnsLimit {
		done, err := g.PlayTick()
		if err != nil {
			return 0, false, err
		}
		if done {
			winner, _ := g.State.Winner()
			log.Debug().
				Str("game", g.ID.String()).
				Stringer("winner", winner).
				Int("turns", g.State.Turn).
				Msg("game decided")
			return winner, true, nil
		}
	}
	log.Debug().Str("game", g.ID.String()).Msg("turn limit reached")
	return 0, false, nil
}

// Copy clones the session under a new ID for lookahead play. Agents
// are shared; the state is deep-copied.
func (g *Game) Copy() *Game {
	return &Game{
		ID:     uuid.New(),
		State:  g.State.Copy(),
		Agents: g.Agents,
	}
}
