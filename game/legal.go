package game

import "catan/board"

// LegalActions enumerates every action Step would currently accept,
// in a deterministic order. The result is cached until the next
// successful Step.
func (s *State) LegalActions() []GameAction {
	if s.actions != nil {
		return s.actions
	}
	if s.Phase == PhaseFinished {
		s.actions = []GameAction{}
		return s.actions
	}

	var actions []GameAction
	switch s.Prompt {
	case PromptBuildInitialSettlement:
		actions = s.initialSettlementActions()
	case PromptBuildInitialRoad:
		actions = s.initialRoadActions()
	case PromptDiscard:
		actions = s.discardActions()
	case PromptMoveRobber:
		actions = s.robberActions()
	case PromptDecideTrade:
		actions = s.decideTradeActions()
	case PromptDecideAcceptees:
		actions = s.decideAccepteesActions()
	case PromptPlayTurn:
		actions = s.playTurnActions()
	}
	s.actions = actions
	return actions
}

func (s *State) initialSettlementActions() []GameAction {
	var actions []GameAction
	for _, node := range s.Map.LandNodes {
		if s.checkSettlementSite(node) == nil {
			actions = append(actions, GameAction{
				Color: s.CurrentPlayer, Type: BuildSettlement, Payload: NodePayload(node),
			})
		}
	}
	return actions
}

func (s *State) initialRoadActions() []GameAction {
	var actions []GameAction
	for _, edge := range s.Map.NodeEdges[s.setup.lastSettlement] {
		if _, taken := s.RoadOccupancy[edge]; taken {
			continue
		}
		actions = append(actions, GameAction{
			Color: s.CurrentPlayer, Type: BuildRoad, Payload: EdgePayload(edge),
		})
	}
	return actions
}

func (s *State) discardActions() []GameAction {
	hand := s.player(s.CurrentPlayer).Hand
	var actions []GameAction
	for _, r := range Resources {
		if hand.Count(r) > 0 {
			actions = append(actions, GameAction{
				Color: s.CurrentPlayer, Type: Discard, Payload: ResourcePayload(r),
			})
		}
	}
	return actions
}

func (s *State) robberActions() []GameAction {
	var actions []GameAction
	for _, tileID := range s.Map.LandTileIDs {
		if tileID == s.RobberTile {
			continue
		}
		victims := s.robberVictims(tileID)
		if len(victims) == 0 {
			actions = append(actions, GameAction{
				Color: s.CurrentPlayer, Type: MoveRobber, Payload: RobberPayload(tileID),
			})
			continue
		}
		for i := 0; i < len(s.Players); i++ {
			if victims[Color(i)] {
				actions = append(actions, GameAction{
					Color: s.CurrentPlayer, Type: MoveRobber,
					Payload: RobberStealPayload(tileID, Color(i)),
				})
			}
		}
	}
	return actions
}

func (s *State) decideTradeActions() []GameAction {
	actions := []GameAction{
		{Color: s.CurrentPlayer, Type: RejectTrade},
	}
	if s.player(s.CurrentPlayer).Hand.Contains(s.trade.asking) {
		actions = append(actions, GameAction{Color: s.CurrentPlayer, Type: AcceptTrade})
	}
	return actions
}

func (s *State) decideAccepteesActions() []GameAction {
	actions := []GameAction{
		{Color: s.CurrentPlayer, Type: CancelTrade},
	}
	for i := 0; i < len(s.Players); i++ {
		if s.trade.accepted[Color(i)] {
			actions = append(actions, GameAction{
				Color: s.CurrentPlayer, Type: ConfirmTrade, Payload: AccepteePayload(Color(i)),
			})
		}
	}
	return actions
}

func (s *State) playTurnActions() []GameAction {
	me := s.CurrentPlayer
	player := s.player(me)

	if s.awaitingRoll {
		actions := []GameAction{{Color: me, Type: Roll}}
		if player.CanPlayDevCard(Knight) {
			actions = append(actions, GameAction{Color: me, Type: PlayKnightCard})
		}
		return actions
	}

	roadSites := s.buildableEdges(me)

	// Road building in progress: only free road placements until the
	// grant is used up or no placement remains.
	if s.roadBuildingPlayer == int(me) && s.roadBuildingFreeRoads > 0 && len(roadSites) > 0 {
		actions := make([]GameAction, 0, len(roadSites))
		for _, edge := range roadSites {
			actions = append(actions, GameAction{Color: me, Type: BuildRoad, Payload: EdgePayload(edge)})
		}
		return actions
	}

	actions := []GameAction{{Color: me, Type: EndTurn}}

	if player.RoadsLeft() > 0 && player.Hand.Contains(CostRoad) {
		for _, edge := range roadSites {
			actions = append(actions, GameAction{Color: me, Type: BuildRoad, Payload: EdgePayload(edge)})
		}
	}
	if player.SettlementsLeft() > 0 && player.Hand.Contains(CostSettlement) {
		for _, node := range s.buildableNodes(me) {
			actions = append(actions, GameAction{Color: me, Type: BuildSettlement, Payload: NodePayload(node)})
		}
	}
	if player.CitiesLeft() > 0 && player.Hand.Contains(CostCity) {
		for _, node := range player.Settlements {
			actions = append(actions, GameAction{Color: me, Type: BuildCity, Payload: NodePayload(node)})
		}
	}
	if len(s.Bank.DevDeck) > 0 && player.Hand.Contains(CostDevelopment) {
		actions = append(actions, GameAction{Color: me, Type: BuyDevelopmentCard})
	}

	actions = append(actions, s.devCardActions(player)...)
	actions = append(actions, s.maritimeTradeActions(player)...)
	actions = append(actions, s.tradeOfferActions(player)...)
	return actions
}

// buildableEdges lists unoccupied edges connected to color's network.
func (s *State) buildableEdges(color Color) []board.EdgeID {
	var edges []board.EdgeID
	for _, edge := range s.Map.Edges {
		if _, taken := s.RoadOccupancy[edge]; taken {
			continue
		}
		if s.edgeConnects(edge, color) {
			edges = append(edges, edge)
		}
	}
	return edges
}

// buildableNodes lists settlement sites on color's road network.
func (s *State) buildableNodes(color Color) []board.NodeID {
	var nodes []board.NodeID
	for _, node := range s.Map.LandNodes {
		if s.checkSettlementSite(node) != nil {
			continue
		}
		if s.nodeTouchesOwnRoad(node, color) {
			nodes = append(nodes, node)
		}
	}
	return nodes
}

func (s *State) devCardActions(player *PlayerState) []GameAction {
	me := player.Color
	var actions []GameAction
	if player.CanPlayDevCard(Knight) {
		actions = append(actions, GameAction{Color: me, Type: PlayKnightCard})
	}
	if player.CanPlayDevCard(YearOfPlenty) {
		for i, first := range Resources {
			for _, second := range Resources[i:] {
				wanted := Single(first, 1).Add(Single(second, 1))
				if s.Bank.CanGive(wanted) {
					actions = append(actions, GameAction{
						Color: me, Type: PlayYearOfPlenty, Payload: ResourcePairPayload(first, second),
					})
				}
			}
		}
	}
	if player.CanPlayDevCard(Monopoly) {
		for _, r := range Resources {
			actions = append(actions, GameAction{Color: me, Type: PlayMonopoly, Payload: ResourcePayload(r)})
		}
	}
	if player.CanPlayDevCard(RoadBuilding) && player.RoadsLeft() > 0 && len(s.buildableEdges(me)) > 0 {
		actions = append(actions, GameAction{Color: me, Type: PlayRoadBuilding})
	}
	return actions
}

func (s *State) maritimeTradeActions(player *PlayerState) []GameAction {
	me := player.Color
	var actions []GameAction
	for _, give := range Resources {
		rate := s.maritimeRate(me, give)
		if player.Hand.Count(give) < rate {
			continue
		}
		for _, take := range Resources {
			if take == give || !s.Bank.CanGive(Single(take, 1)) {
				continue
			}
			actions = append(actions, GameAction{
				Color: me, Type: MaritimeTrade, Payload: MaritimePayload(rate, give, take),
			})
		}
	}
	return actions
}

// tradeOfferActions proposes simple 1:1 offers for each held resource
// against each wanted one. Richer offers go through Step directly.
func (s *State) tradeOfferActions(player *PlayerState) []GameAction {
	me := player.Color
	var actions []GameAction
	for _, give := range Resources {
		if player.Hand.Count(give) == 0 {
			continue
		}
		for _, take := range Resources {
			if take == give {
				continue
			}
			actions = append(actions, GameAction{
				Color: me, Type: OfferTrade,
				Payload: TradeOfferPayload(Single(give, 1), Single(take, 1)),
			})
		}
	}
	return actions
}
