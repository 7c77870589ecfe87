package searcher

import "catan/game"

// ListPrunedActions filters clearly dominated actions out of the
// legal set to keep the search tree narrow. The result is never
// empty: when every action of a class would be pruned, the class is
// kept as-is.
func ListPrunedActions(state *game.State, actions []game.GameAction) []game.GameAction {
	switch state.Prompt {
	case game.PromptBuildInitialSettlement:
		return pruneInitialSettlements(state, actions)
	case game.PromptPlayTurn:
		return prunePlayTurn(state, actions)
	}
	return actions
}

// pruneInitialSettlements drops starting spots touching fewer than
// two producing tiles.
func pruneInitialSettlements(state *game.State, actions []game.GameAction) []game.GameAction {
	kept := make([]game.GameAction, 0, len(actions))
	for _, action := range actions {
		producing := 0
		for _, tileID := range state.Map.AdjacentTiles[action.Payload.Node] {
			if state.Map.TilesByID[tileID].HasProduction() {
				producing++
			}
		}
		if producing >= 2 {
			kept = append(kept, action)
		}
	}
	if len(kept) == 0 {
		return actions
	}
	return kept
}

// prunePlayTurn drops 4:1 maritime trades when the player holds any
// port, and domestic trade offers entirely. Offers multiply the
// branching factor for marginal value in self-play.
func prunePlayTurn(state *game.State, actions []game.GameAction) []game.GameAction {
	kept := make([]game.GameAction, 0, len(actions))
	for _, action := range actions {
		switch action.Type {
		case game.OfferTrade:
			continue
		case game.MaritimeTrade:
			if action.Payload.MaritimeRate == 4 && hasAnyPort(state, action.Color) {
				continue
			}
		}
		kept = append(kept, action)
	}
	if len(kept) == 0 {
		return actions
	}
	return kept
}

func hasAnyPort(state *game.State, color game.Color) bool {
	me := state.Players[color]
	for resource := range state.Map.PortNodes {
		for _, node := range me.Settlements {
			if state.Map.PortNodes[resource][node] {
				return true
			}
		}
		for _, node := range me.Cities {
			if state.Map.PortNodes[resource][node] {
				return true
			}
		}
	}
	return false
}
