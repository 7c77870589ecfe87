package searcher

import (
	"math"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"catan/game"
)

const (
	defaultSimulations = 100
	explorationC       = math.Sqrt2
	// epsilon keeps the UCT score finite for unvisited nodes.
	epsilon = 1e-8
	// rolloutTurnLimit caps playouts that fail to terminate.
	rolloutTurnLimit = 1000
)

// MCTSPlayer plays by Monte Carlo tree search over the stochastic
// action spectrum: each action's children are its possible outcome
// states weighted by probability.
type MCTSPlayer struct {
	color       game.Color
	simulations int
	prune       bool
	rng         *rand.Rand
}

// Option configures an MCTSPlayer.
type Option func(*MCTSPlayer)

// WithSimulations sets the episode count per decision.
func WithSimulations(n int) Option {
	return func(p *MCTSPlayer) {
		p.simulations = n
	}
}

// WithPruning toggles dominated-action pruning during search.
func WithPruning(prune bool) Option {
	return func(p *MCTSPlayer) {
		p.prune = prune
	}
}

// WithSeed fixes the search RNG for reproducible play.
func WithSeed(seed uint64) Option {
	return func(p *MCTSPlayer) {
		p.rng = rand.New(rand.NewSource(seed))
	}
}

// NewMCTSPlayer seats an MCTS agent with the given options.
func NewMCTSPlayer(color game.Color, options ...Option) *MCTSPlayer {
	p := &MCTSPlayer{
		color:       color,
		simulations: defaultSimulations,
		prune:       true,
		rng:         rand.New(rand.NewSource(uint64(color) + 1)),
	}
	for _, option := range options {
		option(p)
	}
	return p
}

func (p *MCTSPlayer) Color() game.Color { return p.color }

// weightedChild is one stochastic outcome of an action.
type weightedChild struct {
	node  *stateNode
	proba float64
}

// stateNode is one node of the search tree. order fixes the action
// iteration so tie breaks are deterministic under a seed.
type stateNode struct {
	state    *game.State
	visits   int
	wins     float64
	order    []game.GameAction
	children map[game.GameAction][]weightedChild
}

func (p *MCTSPlayer) Decide(state *game.State, actions []game.GameAction) *game.GameAction {
	if len(actions) == 1 {
		action := actions[0]
		return &action
	}
	candidates := actions
	if p.prune {
		candidates = ListPrunedActions(state, actions)
	}
	if len(candidates) == 1 {
		action := candidates[0]
		return &action
	}

	root := &stateNode{state: state}
	p.expand(root, candidates)
	if len(root.order) == 0 {
		action := candidates[0]
		return &action
	}
	for i := 0; i < p.simulations; i++ {
		p.runEpisode(root)
	}

	// The final pick maximizes the same weighted score as selection.
	best := p.selectAction(root)
	log.Trace().
		Stringer("action", best).
		Int("simulations", p.simulations).
		Int("candidates", len(candidates)).
		Msg("search decided")
	return &best
}

// runEpisode runs one select-expand-rollout-backpropagate pass and
// returns the playout winrate for the searcher's color.
func (p *MCTSPlayer) runEpisode(node *stateNode) float64 {
	if winner, done := node.state.Winner(); done {
		node.visits++
		value := 0.0
		if winner == p.color {
			value = 1.0
		}
		node.wins += value
		return value
	}

	if node.children == nil {
		if node.visits == 0 {
			// First touch: evaluate by playout, expand next time.
			value := p.rollout(node.state)
			node.visits++
			node.wins += value
			return value
		}
		actions := node.state.LegalActions()
		if p.prune {
			actions = ListPrunedActions(node.state, actions)
		}
		p.expand(node, actions)
	}

	if len(node.children) == 0 {
		value := p.rollout(node.state)
		node.visits++
		node.wins += value
		return value
	}

	action := p.selectAction(node)
	child := p.sampleOutcome(node.children[action])
	value := p.runEpisode(child)
	node.visits++
	node.wins += value
	return value
}

func (p *MCTSPlayer) expand(node *stateNode, actions []game.GameAction) {
	node.children = make(map[game.GameAction][]weightedChild, len(actions))
	for _, action := range actions {
		outcomes := ExecuteSpectrum(node.state, action)
		if len(outcomes) == 0 {
			continue
		}
		children := make([]weightedChild, 0, len(outcomes))
		for _, outcome := range outcomes {
			children = append(children, weightedChild{
				node:  &stateNode{state: outcome.State},
				proba: outcome.Proba,
			})
		}
		node.order = append(node.order, action)
		node.children[action] = children
	}
}

// selectAction picks the action maximizing the probability-weighted
// UCT score of its outcome children. The +1 keeps the log term
// non-negative on a node that has not been visited yet.
func (p *MCTSPlayer) selectAction(node *stateNode) game.GameAction {
	var best game.GameAction
	found := false
	bestScore := math.Inf(-1)
	logVisits := math.Log(float64(node.visits) + 1)
	for _, action := range node.order {
		children := node.children[action]
		score := 0.0
		for _, child := range children {
			visits := float64(child.node.visits)
			winrate := 0.0
			if child.node.visits > 0 {
				winrate = child.node.wins / visits
			}
			score += child.proba * (winrate + explorationC*math.Sqrt(logVisits/(visits+epsilon)))
		}
		if !found || score > bestScore {
			best = action
			bestScore = score
			found = true
		}
	}
	return best
}

// sampleOutcome draws one outcome child by its probability.
func (p *MCTSPlayer) sampleOutcome(children []weightedChild) *stateNode {
	draw := p.rng.Float64()
	acc := 0.0
	for _, child := range children {
		acc += child.proba
		if draw < acc {
			return child.node
		}
	}
	return children[len(children)-1].node
}

// rollout plays uniformly random moves until the game ends and
// returns 1 for a win, 0.5 for a turn-limit draw, 0 for a loss.
func (p *MCTSPlayer) rollout(state *game.State) float64 {
	playout := state.Copy()
	for playout.Turn < rolloutTurnLimit {
		if winner, done := playout.Winner(); done {
			if winner == p.color {
				return 1
			}
			return 0
		}
		actions := playout.LegalActions()
		if len(actions) == 0 {
			return 0.5
		}
		action := actions[p.rng.Intn(len(actions))]
		if _, err := playout.Step(action); err != nil {
			return 0.5
		}
	}
	return 0.5
}
