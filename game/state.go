package game

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"catan/board"
)

// Config parametrizes a new game.
type Config struct {
	NumPlayers   int
	VpsToWin     int
	MapType      board.MapType
	DiscardLimit int
	Seed         uint64
}

// withDefaults fills unset fields with the standard game values.
func (c Config) withDefaults() Config {
	if c.NumPlayers == 0 {
		c.NumPlayers = 2
	}
	if c.VpsToWin == 0 {
		c.VpsToWin = 10
	}
	if c.DiscardLimit == 0 {
		c.DiscardLimit = 7
	}
	return c
}

// Building is a settlement or city on a node.
type Building struct {
	Color Color
	Kind  BuildingKind
}

// EventKind tags the entries of a step's event log.
type EventKind uint8

const (
	EventRolled EventKind = iota
	EventResourcesGained
	EventPayoutForfeited
	EventDiscarded
	EventRobberMoved
	EventStolen
	EventBuilt
	EventDevCardBought
	EventDevCardPlayed
	EventTradeExecuted
	EventLongestRoad
	EventLargestArmy
	EventTurnEnded
	EventGameWon
)

// Event is one observable consequence of a step.
type Event struct {
	Kind     EventKind
	Color    Color
	Other    Color
	Roll     int
	Tile     uint16
	Node     board.NodeID
	Edge     board.EdgeID
	Bundle   ResourceBundle
	Card     DevelopmentCard
	Building BuildingKind
}

// StepOutcome reports what a step did. Rewards is indexed by color and
// only populated on the terminal step: +1 for the winner, -1 for the
// rest.
type StepOutcome struct {
	Events  []Event
	Rewards []float64
	Done    bool
}

// setupState tracks the snake-order placement script.
type setupState struct {
	script         []Color
	index          int
	lastSettlement board.NodeID
}

func (s *setupState) current() Color { return s.script[s.index] }

func (s *setupState) secondRound() bool { return s.index >= len(s.script)/2 }

// tradeState is a pending domestic trade offer.
type tradeState struct {
	offerer  Color
	offering ResourceBundle
	asking   ResourceBundle
	accepted map[Color]bool
	queue    []Color // players yet to decide
}

// State is the full game state machine. All mutation goes through
// Step; LegalActions enumerates the actions offered at the current
// prompt, every one of which Step accepts.
type State struct {
	Config Config
	Map    *board.Map

	Players []*PlayerState // indexed by Color
	Bank    *Bank

	Phase         GamePhase
	Prompt        ActionPrompt
	CurrentPlayer Color // who the prompt addresses
	Turn          int

	RobberTile uint16
	LastRoll   [2]uint8

	NodeOccupancy map[board.NodeID]Building
	RoadOccupancy map[board.EdgeID]Color

	winner       int // -1 until decided
	turnOwner    Color
	awaitingRoll bool

	setup *setupState

	discardQueue   []Color
	discardTargets map[Color]int

	roadBuildingPlayer    int // -1 when inactive
	roadBuildingFreeRoads int

	trade *tradeState

	rng       *gameRNG
	actionLog []GameAction // accepted actions, randomness resolved
	actions   []GameAction // legal action cache
}

// NewState creates a fresh game in the setup phase. The whole game,
// board layout included, is a pure function of the config.
func NewState(config Config) *State {
	config = config.withDefaults()
	if config.NumPlayers < 2 || config.NumPlayers > 4 {
		panic(fmt.Sprintf("unsupported player count %d", config.NumPlayers))
	}

	rng := newGameRNG(config.Seed)
	gameMap := board.Build(config.MapType, rng.Rand)

	players := make([]*PlayerState, config.NumPlayers)
	script := make([]Color, 0, 2*config.NumPlayers)
	for i := 0; i < config.NumPlayers; i++ {
		players[i] = NewPlayerState(Color(i))
		script = append(script, Color(i))
	}
	for i := config.NumPlayers - 1; i >= 0; i-- {
		script = append(script, Color(i))
	}

	s := &State{
		Config:             config,
		Map:                gameMap,
		Players:            players,
		Bank:               NewBank(rng.Rand),
		Phase:              PhaseSetup,
		Prompt:             PromptBuildInitialSettlement,
		CurrentPlayer:      script[0],
		RobberTile:         desertTile(gameMap),
		NodeOccupancy:      make(map[board.NodeID]Building),
		RoadOccupancy:      make(map[board.EdgeID]Color),
		winner:             -1,
		turnOwner:          script[0],
		roadBuildingPlayer: -1,
		setup:              &setupState{script: script},
		discardTargets:     make(map[Color]int),
		rng:                rng,
	}
	return s
}

func desertTile(m *board.Map) uint16 {
	for _, id := range m.LandTileIDs {
		if !m.TilesByID[id].HasProduction() {
			return id
		}
	}
	return m.LandTileIDs[0]
}

// Winner returns the winning color once the game is decided.
func (s *State) Winner() (Color, bool) {
	if s.winner < 0 {
		return 0, false
	}
	return Color(s.winner), true
}

// TurnOwner is the player whose turn is in progress, even while
// another seat resolves a discard or trade decision.
func (s *State) TurnOwner() Color { return s.turnOwner }

// AwaitingRoll reports whether the turn owner still has to roll.
func (s *State) AwaitingRoll() bool { return s.awaitingRoll }

func (s *State) player(c Color) *PlayerState { return s.Players[c] }

func (s *State) invalidateActions() { s.actions = nil }

// Step validates and applies one action, advancing the state machine.
// On error the state is unchanged.
func (s *State) Step(action GameAction) (StepOutcome, error) {
	if s.Phase == PhaseFinished {
		return StepOutcome{}, fmt.Errorf("%w: winner already decided", ErrGameFinished)
	}
	if int(action.Color) >= len(s.Players) {
		return StepOutcome{}, fmt.Errorf("%w: %s", ErrInvalidPlayer, action.Color)
	}
	if action.Color != s.CurrentPlayer {
		return StepOutcome{}, fmt.Errorf("%w: %s acted on %s's prompt", ErrActionOutOfTurn, action.Color, s.CurrentPlayer)
	}

	var outcome StepOutcome
	var err error
	switch s.Prompt {
	case PromptBuildInitialSettlement:
		outcome, err = s.handleInitialSettlement(action)
	case PromptBuildInitialRoad:
		outcome, err = s.handleInitialRoad(action)
	case PromptDiscard:
		outcome, err = s.handleDiscard(action)
	case PromptMoveRobber:
		outcome, err = s.handleMoveRobber(action)
	case PromptDecideTrade:
		outcome, err = s.handleDecideTrade(action)
	case PromptDecideAcceptees:
		outcome, err = s.handleDecideAcceptees(action)
	case PromptPlayTurn:
		outcome, err = s.handlePlayTurn(action)
	default:
		err = fmt.Errorf("%w: %s", ErrInvalidPrompt, s.Prompt)
	}
	if err != nil {
		return StepOutcome{}, err
	}

	s.recordAction(action, outcome)
	s.invalidateActions()
	s.checkVictory(&outcome)

	log.Trace().
		Stringer("action", action).
		Stringer("prompt", s.Prompt).
		Int("turn", s.Turn).
		Msg("applied action")
	return outcome, nil
}

// recordAction appends the accepted action to the log with its
// randomness resolved: rolls carry the dice that fell, steals the card
// that moved.
func (s *State) recordAction(action GameAction, outcome StepOutcome) {
	resolved := action
	if action.Type == Roll {
		resolved.Payload = DicePayload(s.LastRoll[0], s.LastRoll[1])
	}
	if action.Payload.Steal {
		for _, event := range outcome.Events {
			if event.Kind == EventStolen {
				resolved.Payload.Take = singleResource(event.Bundle)
			}
		}
	}
	s.actionLog = append(s.actionLog, resolved)
}

// singleResource is the resource of a one-card bundle.
func singleResource(bundle ResourceBundle) Resource {
	for _, r := range Resources {
		if bundle.Count(r) > 0 {
			return r
		}
	}
	return NoResource
}

// ActionLog is the ordered record of every accepted action, with
// randomness resolved in place. It replays the game deterministically.
func (s *State) ActionLog() []GameAction { return s.actionLog }

// checkVictory ends the game as soon as any player's true score
// reaches the target, the turn owner scanned first.
func (s *State) checkVictory(outcome *StepOutcome) {
	winner := -1
	for i := 0; i < len(s.Players); i++ {
		seat := (int(s.turnOwner) + i) % len(s.Players)
		if s.Players[seat].TotalPoints() >= s.Config.VpsToWin {
			winner = seat
			break
		}
	}
	if winner < 0 {
		return
	}
	s.winner = winner
	s.Phase = PhaseFinished
	outcome.Done = true
	outcome.Rewards = make([]float64, len(s.Players))
	for i := range outcome.Rewards {
		if i == s.winner {
			outcome.Rewards[i] = 1
		} else {
			outcome.Rewards[i] = -1
		}
	}
	outcome.Events = append(outcome.Events, Event{Kind: EventGameWon, Color: Color(winner)})
}

// Setup phase.

func (s *State) handleInitialSettlement(action GameAction) (StepOutcome, error) {
	if action.Type != BuildSettlement {
		return StepOutcome{}, fmt.Errorf("%w: want BuildSettlement, got %s", ErrInvalidPrompt, action.Type)
	}
	if action.Payload.Kind != PayloadNode {
		return StepOutcome{}, fmt.Errorf("%w: settlement needs a node", ErrInvalidPayload)
	}
	node := action.Payload.Node
	if err := s.checkSettlementSite(node); err != nil {
		return StepOutcome{}, err
	}

	player := s.player(action.Color)
	s.NodeOccupancy[node] = Building{Color: action.Color, Kind: Settlement}
	player.Settlements = append(player.Settlements, node)

	outcome := StepOutcome{Events: []Event{{
		Kind: EventBuilt, Color: action.Color, Node: node, Building: Settlement,
	}}}

	// Second-round settlements collect one card per adjacent
	// producing tile, whole payout forfeited if the bank is short.
	if s.setup.secondRound() {
		var gained ResourceBundle
		for _, tileID := range s.Map.AdjacentTiles[node] {
			tile := s.Map.TilesByID[tileID]
			if tile.HasProduction() {
				gained = gained.Add(Single(tile.Resource, 1))
			}
		}
		if !gained.IsEmpty() {
			if s.Bank.Give(gained) {
				player.Hand = player.Hand.Add(gained)
				outcome.Events = append(outcome.Events, Event{
					Kind: EventResourcesGained, Color: action.Color, Bundle: gained,
				})
			} else {
				outcome.Events = append(outcome.Events, Event{
					Kind: EventPayoutForfeited, Color: action.Color, Bundle: gained,
				})
			}
		}
	}

	s.setup.lastSettlement = node
	s.Prompt = PromptBuildInitialRoad
	return outcome, nil
}

func (s *State) handleInitialRoad(action GameAction) (StepOutcome, error) {
	if action.Type != BuildRoad {
		return StepOutcome{}, fmt.Errorf("%w: want BuildRoad, got %s", ErrInvalidPrompt, action.Type)
	}
	if action.Payload.Kind != PayloadEdge {
		return StepOutcome{}, fmt.Errorf("%w: road needs an edge", ErrInvalidPayload)
	}
	edge := action.Payload.Edge.Normalized()
	if !s.Map.HasEdge(edge) {
		return StepOutcome{}, fmt.Errorf("%w: %d-%d", ErrEdgeNotFound, edge.A, edge.B)
	}
	if _, taken := s.RoadOccupancy[edge]; taken {
		return StepOutcome{}, fmt.Errorf("%w: %d-%d", ErrEdgeOccupied, edge.A, edge.B)
	}
	if !edge.Contains(s.setup.lastSettlement) {
		return StepOutcome{}, fmt.Errorf("%w: setup road must touch the new settlement", ErrMustConnect)
	}

	player := s.player(action.Color)
	s.RoadOccupancy[edge] = action.Color
	player.Roads = append(player.Roads, edge)
	s.recomputeLongestRoad(nil)

	outcome := StepOutcome{Events: []Event{{
		Kind: EventBuilt, Color: action.Color, Edge: edge,
	}}}

	s.setup.index++
	if s.setup.index < len(s.setup.script) {
		s.CurrentPlayer = s.setup.current()
		s.Prompt = PromptBuildInitialSettlement
		return outcome, nil
	}

	// Setup complete.
	s.setup = nil
	s.Phase = PhasePlay
	s.turnOwner = s.Players[0].Color
	s.CurrentPlayer = s.turnOwner
	s.Prompt = PromptPlayTurn
	s.awaitingRoll = true
	return outcome, nil
}

// Play phase dispatch.

func (s *State) handlePlayTurn(action GameAction) (StepOutcome, error) {
	switch action.Type {
	case Roll:
		return s.handleRoll(action)
	case EndTurn:
		return s.handleEndTurn(action)
	case BuildRoad:
		return s.handleBuildRoad(action)
	case BuildSettlement:
		return s.handleBuildSettlement(action)
	case BuildCity:
		return s.handleBuildCity(action)
	case BuyDevelopmentCard:
		return s.handleBuyDevCard(action)
	case PlayKnightCard:
		return s.handlePlayKnight(action)
	case PlayYearOfPlenty:
		return s.handleYearOfPlenty(action)
	case PlayMonopoly:
		return s.handleMonopoly(action)
	case PlayRoadBuilding:
		return s.handlePlayRoadBuilding(action)
	case MaritimeTrade:
		return s.handleMaritimeTrade(action)
	case OfferTrade:
		return s.handleOfferTrade(action)
	}
	return StepOutcome{}, fmt.Errorf("%w: %s during PlayTurn", ErrInvalidPrompt, action.Type)
}

func (s *State) handleRoll(action GameAction) (StepOutcome, error) {
	if !s.awaitingRoll {
		return StepOutcome{}, fmt.Errorf("%w: already rolled this turn", ErrIllegalAction)
	}

	var d1, d2 uint8
	switch action.Payload.Kind {
	case PayloadNone:
		d1 = uint8(s.rng.Intn(6)) + 1
		d2 = uint8(s.rng.Intn(6)) + 1
	case PayloadDice:
		d1, d2 = clampDie(action.Payload.Die1), clampDie(action.Payload.Die2)
	default:
		return StepOutcome{}, fmt.Errorf("%w: roll takes no payload or dice", ErrInvalidPayload)
	}

	s.LastRoll = [2]uint8{d1, d2}
	s.awaitingRoll = false
	sum := int(d1) + int(d2)
	outcome := StepOutcome{Events: []Event{{Kind: EventRolled, Color: action.Color, Roll: sum}}}

	if sum == 7 {
		s.queueDiscards()
		if len(s.discardQueue) > 0 {
			s.Prompt = PromptDiscard
			s.CurrentPlayer = s.discardQueue[0]
		} else {
			s.Prompt = PromptMoveRobber
			s.CurrentPlayer = s.turnOwner
		}
		return outcome, nil
	}

	s.distributeResources(sum, &outcome)
	return outcome, nil
}

// queueDiscards lines up every player over the hand limit, in seat
// order. Each owes half their hand, rounded down.
func (s *State) queueDiscards() {
	s.discardQueue = s.discardQueue[:0]
	for _, player := range s.Players {
		total := player.Hand.Total()
		if total > s.Config.DiscardLimit {
			s.discardQueue = append(s.discardQueue, player.Color)
			s.discardTargets[player.Color] = total / 2
		}
	}
}

// distributeResources pays out one tile at a time. A tile whose full
// payout the bank cannot cover pays nobody.
func (s *State) distributeResources(sum int, outcome *StepOutcome) {
	gains := make(map[Color]ResourceBundle)
	for _, tileID := range s.Map.LandTileIDs {
		tile := s.Map.TilesByID[tileID]
		if !tile.HasProduction() || tile.Number != sum || tileID == s.RobberTile {
			continue
		}
		var tileTotal ResourceBundle
		tileGains := make(map[Color]uint8)
		for _, node := range tile.Nodes {
			building, ok := s.NodeOccupancy[node]
			if !ok {
				continue
			}
			n := uint8(1)
			if building.Kind == City {
				n = 2
			}
			tileGains[building.Color] += n
			tileTotal = tileTotal.Add(Single(tile.Resource, n))
		}
		if len(tileGains) == 0 {
			continue
		}
		if !s.Bank.Give(tileTotal) {
			outcome.Events = append(outcome.Events, Event{
				Kind: EventPayoutForfeited, Tile: tileID, Bundle: tileTotal,
			})
			continue
		}
		for color, n := range tileGains {
			gains[color] = gains[color].Add(Single(tile.Resource, n))
		}
	}

	for _, player := range s.Players {
		gained, ok := gains[player.Color]
		if !ok || gained.IsEmpty() {
			continue
		}
		player.Hand = player.Hand.Add(gained)
		outcome.Events = append(outcome.Events, Event{
			Kind: EventResourcesGained, Color: player.Color, Bundle: gained,
		})
	}
}

func (s *State) handleDiscard(action GameAction) (StepOutcome, error) {
	if action.Type != Discard {
		return StepOutcome{}, fmt.Errorf("%w: want Discard, got %s", ErrInvalidPrompt, action.Type)
	}
	if action.Payload.Kind != PayloadResource {
		return StepOutcome{}, fmt.Errorf("%w: discard names one resource", ErrInvalidPayload)
	}
	player := s.player(action.Color)
	card := Single(action.Payload.Give, 1)
	hand, ok := player.Hand.Subtract(card)
	if !ok {
		return StepOutcome{}, fmt.Errorf("%w: no %s to discard", ErrInsufficientResources, action.Payload.Give)
	}
	player.Hand = hand
	s.Bank.Receive(card)
	s.discardTargets[action.Color]--

	outcome := StepOutcome{Events: []Event{{Kind: EventDiscarded, Color: action.Color, Bundle: card}}}

	if s.discardTargets[action.Color] == 0 {
		delete(s.discardTargets, action.Color)
		s.discardQueue = s.discardQueue[1:]
		if len(s.discardQueue) > 0 {
			s.CurrentPlayer = s.discardQueue[0]
		} else {
			s.Prompt = PromptMoveRobber
			s.CurrentPlayer = s.turnOwner
		}
	}
	return outcome, nil
}

func (s *State) handleMoveRobber(action GameAction) (StepOutcome, error) {
	if action.Type != MoveRobber {
		return StepOutcome{}, fmt.Errorf("%w: want MoveRobber, got %s", ErrInvalidPrompt, action.Type)
	}
	if action.Payload.Kind != PayloadRobber {
		return StepOutcome{}, fmt.Errorf("%w: robber needs a tile", ErrInvalidPayload)
	}
	tile := action.Payload.Tile
	if _, ok := s.Map.TilesByID[tile]; !ok {
		return StepOutcome{}, fmt.Errorf("%w: no land tile %d", ErrInvalidPayload, tile)
	}
	if tile == s.RobberTile {
		return StepOutcome{}, fmt.Errorf("%w: robber must move to a new tile", ErrIllegalAction)
	}

	// Validate the whole payload before touching the state.
	if action.Payload.Steal {
		victim := action.Payload.Victim
		if int(victim) >= len(s.Players) || victim == action.Color {
			return StepOutcome{}, fmt.Errorf("%w: invalid steal victim", ErrInvalidPayload)
		}
		if !s.robberVictims(tile)[victim] {
			return StepOutcome{}, fmt.Errorf("%w: %s has no building on tile %d", ErrIllegalAction, victim, tile)
		}
	}

	s.RobberTile = tile
	outcome := StepOutcome{Events: []Event{{Kind: EventRobberMoved, Color: action.Color, Tile: tile}}}

	if action.Payload.Steal {
		if stolen, ok := s.stealRandomCard(action.Payload.Victim, action.Color); ok {
			outcome.Events = append(outcome.Events, Event{
				Kind: EventStolen, Color: action.Color, Other: action.Payload.Victim, Bundle: stolen,
			})
		}
	}

	s.Prompt = PromptPlayTurn
	s.CurrentPlayer = s.turnOwner
	return outcome, nil
}

// robberVictims lists opponents with a building on tile and at least
// one card to lose.
func (s *State) robberVictims(tile uint16) map[Color]bool {
	victims := make(map[Color]bool)
	for _, node := range s.Map.TilesByID[tile].Nodes {
		building, ok := s.NodeOccupancy[node]
		if !ok || building.Color == s.turnOwner {
			continue
		}
		if !s.player(building.Color).Hand.IsEmpty() {
			victims[building.Color] = true
		}
	}
	return victims
}

// stealRandomCard transfers one uniformly chosen card from victim to
// thief.
func (s *State) stealRandomCard(victim, thief Color) (ResourceBundle, bool) {
	hand := s.player(victim).Hand
	total := hand.Total()
	if total == 0 {
		return ResourceBundle{}, false
	}
	pick := s.rng.Intn(total)
	for _, r := range Resources {
		pick -= int(hand.Count(r))
		if pick < 0 {
			card := Single(r, 1)
			s.player(victim).Hand, _ = hand.Subtract(card)
			s.player(thief).Hand = s.player(thief).Hand.Add(card)
			return card, true
		}
	}
	return ResourceBundle{}, false
}

// Building actions.

func (s *State) checkSettlementSite(node board.NodeID) error {
	if !s.Map.IsLandNode(node) {
		return fmt.Errorf("%w: node %d is not buildable land", ErrInvalidPayload, node)
	}
	if _, taken := s.NodeOccupancy[node]; taken {
		return fmt.Errorf("%w: node %d", ErrNodeOccupied, node)
	}
	for _, neighbor := range s.Map.NodeNeighbors[node] {
		if _, taken := s.NodeOccupancy[neighbor]; taken {
			return fmt.Errorf("%w: node %d touches node %d", ErrDistanceRule, node, neighbor)
		}
	}
	return nil
}

func (s *State) handleBuildRoad(action GameAction) (StepOutcome, error) {
	if s.awaitingRoll {
		return StepOutcome{}, fmt.Errorf("%w: roll before building", ErrIllegalAction)
	}
	if action.Payload.Kind != PayloadEdge {
		return StepOutcome{}, fmt.Errorf("%w: road needs an edge", ErrInvalidPayload)
	}
	edge := action.Payload.Edge.Normalized()
	if !s.Map.HasEdge(edge) {
		return StepOutcome{}, fmt.Errorf("%w: %d-%d", ErrEdgeNotFound, edge.A, edge.B)
	}
	if _, taken := s.RoadOccupancy[edge]; taken {
		return StepOutcome{}, fmt.Errorf("%w: %d-%d", ErrEdgeOccupied, edge.A, edge.B)
	}
	player := s.player(action.Color)
	if player.RoadsLeft() == 0 {
		return StepOutcome{}, fmt.Errorf("%w: no road pieces left", ErrIllegalAction)
	}
	if !s.edgeConnects(edge, action.Color) {
		return StepOutcome{}, fmt.Errorf("%w: edge %d-%d", ErrMustConnect, edge.A, edge.B)
	}

	free := s.roadBuildingPlayer == int(action.Color) && s.roadBuildingFreeRoads > 0
	if !free {
		hand, ok := player.Hand.Subtract(CostRoad)
		if !ok {
			return StepOutcome{}, fmt.Errorf("%w: road costs 1 wood 1 brick", ErrInsufficientResources)
		}
		player.Hand = hand
		s.Bank.Receive(CostRoad)
	} else {
		s.roadBuildingFreeRoads--
		if s.roadBuildingFreeRoads == 0 {
			s.roadBuildingPlayer = -1
		}
	}

	s.RoadOccupancy[edge] = action.Color
	player.Roads = append(player.Roads, edge)

	outcome := StepOutcome{Events: []Event{{Kind: EventBuilt, Color: action.Color, Edge: edge}}}
	s.recomputeLongestRoad(&outcome)
	return outcome, nil
}

// edgeConnects reports whether edge touches color's network: one of
// its own buildings, or an own road through a node not blocked by an
// opponent building.
func (s *State) edgeConnects(edge board.EdgeID, color Color) bool {
	for _, node := range [2]board.NodeID{edge.A, edge.B} {
		if building, ok := s.NodeOccupancy[node]; ok {
			if building.Color == color {
				return true
			}
			continue // opponent building cuts the road through
		}
		for _, adjacent := range s.Map.NodeEdges[node] {
			if adjacent == edge {
				continue
			}
			if owner, ok := s.RoadOccupancy[adjacent]; ok && owner == color {
				return true
			}
		}
	}
	return false
}

func (s *State) handleBuildSettlement(action GameAction) (StepOutcome, error) {
	if s.awaitingRoll {
		return StepOutcome{}, fmt.Errorf("%w: roll before building", ErrIllegalAction)
	}
	if action.Payload.Kind != PayloadNode {
		return StepOutcome{}, fmt.Errorf("%w: settlement needs a node", ErrInvalidPayload)
	}
	node := action.Payload.Node
	if err := s.checkSettlementSite(node); err != nil {
		return StepOutcome{}, err
	}
	player := s.player(action.Color)
	if player.SettlementsLeft() == 0 {
		return StepOutcome{}, fmt.Errorf("%w: no settlement pieces left", ErrIllegalAction)
	}
	if !s.nodeTouchesOwnRoad(node, action.Color) {
		return StepOutcome{}, fmt.Errorf("%w: node %d", ErrMustConnect, node)
	}
	hand, ok := player.Hand.Subtract(CostSettlement)
	if !ok {
		return StepOutcome{}, fmt.Errorf("%w: settlement costs 1 wood 1 brick 1 sheep 1 wheat", ErrInsufficientResources)
	}
	player.Hand = hand
	s.Bank.Receive(CostSettlement)

	s.NodeOccupancy[node] = Building{Color: action.Color, Kind: Settlement}
	player.Settlements = append(player.Settlements, node)

	outcome := StepOutcome{Events: []Event{{
		Kind: EventBuilt, Color: action.Color, Node: node, Building: Settlement,
	}}}
	// A settlement can sever an opponent's road run.
	s.recomputeLongestRoad(&outcome)
	return outcome, nil
}

func (s *State) nodeTouchesOwnRoad(node board.NodeID, color Color) bool {
	for _, edge := range s.Map.NodeEdges[node] {
		if owner, ok := s.RoadOccupancy[edge]; ok && owner == color {
			return true
		}
	}
	return false
}

func (s *State) handleBuildCity(action GameAction) (StepOutcome, error) {
	if s.awaitingRoll {
		return StepOutcome{}, fmt.Errorf("%w: roll before building", ErrIllegalAction)
	}
	if action.Payload.Kind != PayloadNode {
		return StepOutcome{}, fmt.Errorf("%w: city needs a node", ErrInvalidPayload)
	}
	node := action.Payload.Node
	building, ok := s.NodeOccupancy[node]
	if !ok || building.Color != action.Color || building.Kind != Settlement {
		return StepOutcome{}, fmt.Errorf("%w: need own settlement on node %d", ErrIllegalAction, node)
	}
	player := s.player(action.Color)
	if player.CitiesLeft() == 0 {
		return StepOutcome{}, fmt.Errorf("%w: no city pieces left", ErrIllegalAction)
	}
	hand, okPay := player.Hand.Subtract(CostCity)
	if !okPay {
		return StepOutcome{}, fmt.Errorf("%w: city costs 2 wheat 3 ore", ErrInsufficientResources)
	}
	player.Hand = hand
	s.Bank.Receive(CostCity)

	s.NodeOccupancy[node] = Building{Color: action.Color, Kind: City}
	for i, settled := range player.Settlements {
		if settled == node {
			player.Settlements = append(player.Settlements[:i], player.Settlements[i+1:]...)
			break
		}
	}
	player.Cities = append(player.Cities, node)

	return StepOutcome{Events: []Event{{
		Kind: EventBuilt, Color: action.Color, Node: node, Building: City,
	}}}, nil
}

// Development cards.

func (s *State) handleBuyDevCard(action GameAction) (StepOutcome, error) {
	if s.awaitingRoll {
		return StepOutcome{}, fmt.Errorf("%w: roll before buying", ErrIllegalAction)
	}
	player := s.player(action.Color)
	card, hand, err := s.Bank.BuyDevelopmentCard(player.Hand, s.rng.Rand)
	if err != nil {
		return StepOutcome{}, err
	}
	player.Hand = hand
	player.FreshDevCards[card]++

	return StepOutcome{Events: []Event{{Kind: EventDevCardBought, Color: action.Color, Card: card}}}, nil
}

func (s *State) playDevCard(player *PlayerState, card DevelopmentCard) error {
	if !player.CanPlayDevCard(card) {
		return fmt.Errorf("%w: no playable %s", ErrIllegalAction, card)
	}
	player.DevCards[card]--
	player.HasPlayedDevCard = true
	return nil
}

func (s *State) handlePlayKnight(action GameAction) (StepOutcome, error) {
	player := s.player(action.Color)
	if err := s.playDevCard(player, Knight); err != nil {
		return StepOutcome{}, err
	}
	player.KnightsPlayed++

	outcome := StepOutcome{Events: []Event{{Kind: EventDevCardPlayed, Color: action.Color, Card: Knight}}}
	s.updateLargestArmy(&outcome)

	s.Prompt = PromptMoveRobber
	return outcome, nil
}

func (s *State) handleYearOfPlenty(action GameAction) (StepOutcome, error) {
	if action.Payload.Kind != PayloadResourcePair {
		return StepOutcome{}, fmt.Errorf("%w: year of plenty picks two resources", ErrInvalidPayload)
	}
	wanted := Single(action.Payload.Give, 1).Add(Single(action.Payload.Take, 1))
	if !s.Bank.CanGive(wanted) {
		return StepOutcome{}, fmt.Errorf("%w: bank cannot supply both picks", ErrBankOutOfResources)
	}
	player := s.player(action.Color)
	if err := s.playDevCard(player, YearOfPlenty); err != nil {
		return StepOutcome{}, err
	}
	s.Bank.Give(wanted)
	player.Hand = player.Hand.Add(wanted)

	return StepOutcome{Events: []Event{
		{Kind: EventDevCardPlayed, Color: action.Color, Card: YearOfPlenty},
		{Kind: EventResourcesGained, Color: action.Color, Bundle: wanted},
	}}, nil
}

func (s *State) handleMonopoly(action GameAction) (StepOutcome, error) {
	if action.Payload.Kind != PayloadResource {
		return StepOutcome{}, fmt.Errorf("%w: monopoly names one resource", ErrInvalidPayload)
	}
	player := s.player(action.Color)
	if err := s.playDevCard(player, Monopoly); err != nil {
		return StepOutcome{}, err
	}

	target := action.Payload.Give
	var taken ResourceBundle
	for _, other := range s.Players {
		if other.Color == action.Color {
			continue
		}
		n := other.Hand.Count(target)
		if n == 0 {
			continue
		}
		lost := Single(target, n)
		other.Hand, _ = other.Hand.Subtract(lost)
		taken = taken.Add(lost)
	}
	player.Hand = player.Hand.Add(taken)

	return StepOutcome{Events: []Event{
		{Kind: EventDevCardPlayed, Color: action.Color, Card: Monopoly},
		{Kind: EventResourcesGained, Color: action.Color, Bundle: taken},
	}}, nil
}

func (s *State) handlePlayRoadBuilding(action GameAction) (StepOutcome, error) {
	player := s.player(action.Color)
	if player.RoadsLeft() == 0 {
		return StepOutcome{}, fmt.Errorf("%w: no road pieces left", ErrIllegalAction)
	}
	if err := s.playDevCard(player, RoadBuilding); err != nil {
		return StepOutcome{}, err
	}
	s.roadBuildingPlayer = int(action.Color)
	s.roadBuildingFreeRoads = 2
	if player.RoadsLeft() < 2 {
		s.roadBuildingFreeRoads = player.RoadsLeft()
	}
	return StepOutcome{Events: []Event{{Kind: EventDevCardPlayed, Color: action.Color, Card: RoadBuilding}}}, nil
}

// Trades.

func (s *State) handleMaritimeTrade(action GameAction) (StepOutcome, error) {
	if s.awaitingRoll {
		return StepOutcome{}, fmt.Errorf("%w: roll first", ErrIllegalAction)
	}
	if action.Payload.Kind != PayloadTradeOffer || action.Payload.MaritimeRate == 0 {
		return StepOutcome{}, fmt.Errorf("%w: maritime trade needs rate, give and take", ErrInvalidPayload)
	}
	rate := action.Payload.MaritimeRate
	give, take := action.Payload.Give, action.Payload.Take
	if give == take {
		return StepOutcome{}, fmt.Errorf("%w: cannot trade a resource for itself", ErrInvalidPayload)
	}
	if rate < s.maritimeRate(action.Color, give) {
		return StepOutcome{}, fmt.Errorf("%w: no %d:1 port access for %s", ErrIllegalAction, rate, give)
	}

	player := s.player(action.Color)
	cost := Single(give, rate)
	hand, ok := player.Hand.Subtract(cost)
	if !ok {
		return StepOutcome{}, fmt.Errorf("%w: need %d %s", ErrInsufficientResources, rate, give)
	}
	gain := Single(take, 1)
	if !s.Bank.CanGive(gain) {
		return StepOutcome{}, fmt.Errorf("%w: no %s in the bank", ErrBankOutOfResources, take)
	}
	player.Hand = hand
	s.Bank.Receive(cost)
	s.Bank.Give(gain)
	player.Hand = player.Hand.Add(gain)

	return StepOutcome{Events: []Event{{
		Kind: EventTradeExecuted, Color: action.Color, Bundle: gain,
	}}}, nil
}

// maritimeRate is the best exchange rate color has for giving r: 2
// with the matching port, 3 with a generic port, 4 otherwise.
func (s *State) maritimeRate(color Color, r Resource) uint8 {
	player := s.player(color)
	nodes := make([]board.NodeID, 0, len(player.Settlements)+len(player.Cities))
	nodes = append(nodes, player.Settlements...)
	nodes = append(nodes, player.Cities...)

	rate := uint8(4)
	for _, node := range nodes {
		if s.Map.PortNodes[r][node] {
			return 2
		}
		if s.Map.PortNodes[NoResource][node] {
			rate = 3
		}
	}
	return rate
}

func (s *State) handleOfferTrade(action GameAction) (StepOutcome, error) {
	if s.awaitingRoll {
		return StepOutcome{}, fmt.Errorf("%w: roll first", ErrIllegalAction)
	}
	if action.Payload.Kind != PayloadTradeOffer || action.Payload.MaritimeRate != 0 {
		return StepOutcome{}, fmt.Errorf("%w: trade offer needs offering and asking bundles", ErrInvalidPayload)
	}
	offering, asking := action.Payload.Offering, action.Payload.Asking
	if offering.IsEmpty() || asking.IsEmpty() {
		return StepOutcome{}, fmt.Errorf("%w: both sides of a trade must be non-empty", ErrInvalidPayload)
	}
	player := s.player(action.Color)
	if !player.Hand.Contains(offering) {
		return StepOutcome{}, fmt.Errorf("%w: offering cards not held", ErrInsufficientResources)
	}

	trade := &tradeState{
		offerer:  action.Color,
		offering: offering,
		asking:   asking,
		accepted: make(map[Color]bool),
	}
	for _, other := range s.Players {
		if other.Color != action.Color {
			trade.queue = append(trade.queue, other.Color)
		}
	}
	s.trade = trade
	s.Prompt = PromptDecideTrade
	s.CurrentPlayer = trade.queue[0]
	return StepOutcome{}, nil
}

func (s *State) handleDecideTrade(action GameAction) (StepOutcome, error) {
	if action.Type != AcceptTrade && action.Type != RejectTrade {
		return StepOutcome{}, fmt.Errorf("%w: want AcceptTrade or RejectTrade, got %s", ErrInvalidPrompt, action.Type)
	}
	if action.Type == AcceptTrade {
		// Accepting requires holding the asked cards.
		if !s.player(action.Color).Hand.Contains(s.trade.asking) {
			return StepOutcome{}, fmt.Errorf("%w: cannot cover the asked cards", ErrInsufficientResources)
		}
		s.trade.accepted[action.Color] = true
	}

	s.trade.queue = s.trade.queue[1:]
	if len(s.trade.queue) > 0 {
		s.CurrentPlayer = s.trade.queue[0]
		return StepOutcome{}, nil
	}

	s.CurrentPlayer = s.trade.offerer
	if len(s.trade.accepted) > 0 {
		s.Prompt = PromptDecideAcceptees
	} else {
		s.trade = nil
		s.Prompt = PromptPlayTurn
	}
	return StepOutcome{}, nil
}

func (s *State) handleDecideAcceptees(action GameAction) (StepOutcome, error) {
	switch action.Type {
	case CancelTrade:
		s.trade = nil
		s.Prompt = PromptPlayTurn
		return StepOutcome{}, nil
	case ConfirmTrade:
	default:
		return StepOutcome{}, fmt.Errorf("%w: want ConfirmTrade or CancelTrade, got %s", ErrInvalidPrompt, action.Type)
	}
	if action.Payload.Kind != PayloadAcceptee {
		return StepOutcome{}, fmt.Errorf("%w: confirm names the trade partner", ErrInvalidPayload)
	}
	acceptee := action.Payload.Acceptee
	if !s.trade.accepted[acceptee] {
		return StepOutcome{}, fmt.Errorf("%w: %s did not accept", ErrIllegalAction, acceptee)
	}

	offerer := s.player(s.trade.offerer)
	partner := s.player(acceptee)
	offererHand, ok := offerer.Hand.Subtract(s.trade.offering)
	if !ok {
		return StepOutcome{}, fmt.Errorf("%w: offering no longer held", ErrInsufficientResources)
	}
	partnerHand, ok := partner.Hand.Subtract(s.trade.asking)
	if !ok {
		return StepOutcome{}, fmt.Errorf("%w: %s no longer covers the trade", ErrInsufficientResources, acceptee)
	}
	offerer.Hand = offererHand.Add(s.trade.asking)
	partner.Hand = partnerHand.Add(s.trade.offering)

	outcome := StepOutcome{Events: []Event{{
		Kind: EventTradeExecuted, Color: s.trade.offerer, Other: acceptee, Bundle: s.trade.offering,
	}}}
	s.trade = nil
	s.Prompt = PromptPlayTurn
	return outcome, nil
}

func (s *State) handleEndTurn(action GameAction) (StepOutcome, error) {
	if s.awaitingRoll {
		return StepOutcome{}, fmt.Errorf("%w: must roll before ending the turn", ErrIllegalAction)
	}
	player := s.player(action.Color)
	player.matureDevCards()
	player.HasPlayedDevCard = false
	s.roadBuildingPlayer = -1
	s.roadBuildingFreeRoads = 0

	s.turnOwner = Color((int(s.turnOwner) + 1) % len(s.Players))
	s.CurrentPlayer = s.turnOwner
	s.Turn++
	s.awaitingRoll = true
	s.Prompt = PromptPlayTurn

	return StepOutcome{Events: []Event{{Kind: EventTurnEnded, Color: action.Color}}}, nil
}

// Copy deep-copies the state, RNG stream included. The map is shared
// since it is immutable after construction.
func (s *State) Copy() *State {
	out := *s
	out.Players = make([]*PlayerState, len(s.Players))
	for i, player := range s.Players {
		out.Players[i] = player.Copy()
	}
	out.Bank = s.Bank.Copy()
	out.NodeOccupancy = make(map[board.NodeID]Building, len(s.NodeOccupancy))
	for node, building := range s.NodeOccupancy {
		out.NodeOccupancy[node] = building
	}
	out.RoadOccupancy = make(map[board.EdgeID]Color, len(s.RoadOccupancy))
	for edge, color := range s.RoadOccupancy {
		out.RoadOccupancy[edge] = color
	}
	if s.setup != nil {
		setupCopy := *s.setup
		setupCopy.script = append([]Color(nil), s.setup.script...)
		out.setup = &setupCopy
	}
	out.discardQueue = append([]Color(nil), s.discardQueue...)
	out.discardTargets = make(map[Color]int, len(s.discardTargets))
	for color, n := range s.discardTargets {
		out.discardTargets[color] = n
	}
	if s.trade != nil {
		tradeCopy := *s.trade
		tradeCopy.accepted = make(map[Color]bool, len(s.trade.accepted))
		for color, ok := range s.trade.accepted {
			tradeCopy.accepted[color] = ok
		}
		tradeCopy.queue = append([]Color(nil), s.trade.queue...)
		out.trade = &tradeCopy
	}
	out.rng = s.rng.Copy()
	out.actionLog = append([]GameAction(nil), s.actionLog...)
	out.actions = nil
	return &out
}
