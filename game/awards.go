package game

import "catan/board"

// longestRoadMinimum and largestArmyMinimum are the smallest holdings
// that can earn each award.
const (
	longestRoadMinimum = 5
	largestArmyMinimum = 3
)

// recomputeLongestRoad refreshes every player's road length and moves
// the longest road award. The holder is the unique player at the
// maximum; a tie at the maximum withholds the award from everyone.
// outcome may be nil when no event log is wanted.
func (s *State) recomputeLongestRoad(outcome *StepOutcome) {
	for _, player := range s.Players {
		player.LongestRoadLen = s.longestRoadFrom(player.Color)
	}

	best := -1
	bestLen := longestRoadMinimum - 1
	tie := false
	for i, player := range s.Players {
		switch {
		case player.LongestRoadLen > bestLen:
			best = i
			bestLen = player.LongestRoadLen
			tie = false
		case player.LongestRoadLen == bestLen && best >= 0:
			tie = true
		}
	}
	if tie {
		best = -1
	}

	for i, player := range s.Players {
		held := player.HasLongestRoad
		player.HasLongestRoad = i == best
		if i == best && !held && outcome != nil {
			outcome.Events = append(outcome.Events, Event{Kind: EventLongestRoad, Color: Color(best)})
		}
	}
}

// longestRoadFrom is the longest simple road trail for color. Opponent
// buildings block continuation through their node.
func (s *State) longestRoadFrom(color Color) int {
	player := s.player(color)
	if len(player.Roads) == 0 {
		return 0
	}

	used := make(map[board.EdgeID]bool, len(player.Roads))
	best := 0
	for _, edge := range player.Roads {
		for _, start := range [2]board.NodeID{edge.A, edge.B} {
			if length := s.walkRoads(color, start, used); length > best {
				best = length
			}
		}
	}
	return best
}

// walkRoads extends a trail from node. An opponent building blocks
// continuing through its node but a trail may still end there.
func (s *State) walkRoads(color Color, node board.NodeID, used map[board.EdgeID]bool) int {
	best := 0
	for _, edge := range s.Map.NodeEdges[node] {
		if used[edge] {
			continue
		}
		if owner, ok := s.RoadOccupancy[edge]; !ok || owner != color {
			continue
		}
		used[edge] = true
		next := edge.A
		if next == node {
			next = edge.B
		}
		length := 1
		if building, ok := s.NodeOccupancy[next]; !ok || building.Color == color {
			length += s.walkRoads(color, next, used)
		}
		if length > best {
			best = length
		}
		delete(used, edge)
	}
	return best
}

// updateLargestArmy moves the largest army award to the unique player
// with the most knights played. A tie at the maximum withholds the
// award from everyone.
func (s *State) updateLargestArmy(outcome *StepOutcome) {
	best := -1
	bestKnights := largestArmyMinimum - 1
	tie := false
	for i, player := range s.Players {
		switch {
		case player.KnightsPlayed > bestKnights:
			best = i
			bestKnights = player.KnightsPlayed
			tie = false
		case player.KnightsPlayed == bestKnights && best >= 0:
			tie = true
		}
	}
	if tie {
		best = -1
	}

	for i, player := range s.Players {
		held := player.HasLargestArmy
		player.HasLargestArmy = i == best
		if i == best && !held && outcome != nil {
			outcome.Events = append(outcome.Events, Event{Kind: EventLargestArmy, Color: Color(best)})
		}
	}
}
