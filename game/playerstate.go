package game

import "catan/board"

// Per-player piece limits.
const (
	MaxSettlements = 5
	MaxCities      = 4
	MaxRoads       = 15
)

// PlayerState is everything one seat owns: hand, pieces on the board,
// development cards and scoring. Development cards bought this turn
// sit in FreshDevCards and only become playable next turn.
type PlayerState struct {
	Color Color

	Hand          ResourceBundle
	DevCards      map[DevelopmentCard]int
	FreshDevCards map[DevelopmentCard]int

	Settlements []board.NodeID
	Cities      []board.NodeID
	Roads       []board.EdgeID

	KnightsPlayed    int
	HasPlayedDevCard bool // reset each turn

	HasLongestRoad bool
	HasLargestArmy bool
	LongestRoadLen int
}

// NewPlayerState creates an empty seat for color.
func NewPlayerState(color Color) *PlayerState {
	return &PlayerState{
		Color:         color,
		DevCards:      make(map[DevelopmentCard]int),
		FreshDevCards: make(map[DevelopmentCard]int),
	}
}

// SettlementsLeft is how many settlement pieces remain unplaced.
func (p *PlayerState) SettlementsLeft() int {
	return MaxSettlements - len(p.Settlements)
}

// CitiesLeft is how many city pieces remain unplaced.
func (p *PlayerState) CitiesLeft() int {
	return MaxCities - len(p.Cities)
}

// RoadsLeft is how many road pieces remain unplaced.
func (p *PlayerState) RoadsLeft() int {
	return MaxRoads - len(p.Roads)
}

// DevCardCount counts held copies of card, played or not, mature and
// fresh.
func (p *PlayerState) DevCardCount(card DevelopmentCard) int {
	return p.DevCards[card] + p.FreshDevCards[card]
}

// TotalDevCards is the full hidden dev hand size.
func (p *PlayerState) TotalDevCards() int {
	total := 0
	for _, n := range p.DevCards {
		total += n
	}
	for _, n := range p.FreshDevCards {
		total += n
	}
	return total
}

// CanPlayDevCard reports whether card can be played this turn: one
// mature copy held and no other dev card played yet.
func (p *PlayerState) CanPlayDevCard(card DevelopmentCard) bool {
	return !p.HasPlayedDevCard && p.DevCards[card] > 0
}

// matureDevCards moves this turn's purchases into the playable pool.
// Called at turn end.
func (p *PlayerState) matureDevCards() {
	for card, n := range p.FreshDevCards {
		p.DevCards[card] += n
		delete(p.FreshDevCards, card)
	}
}

// BonusPoints is the award score: 2 per held road/army title.
func (p *PlayerState) BonusPoints() int {
	points := 0
	if p.HasLongestRoad {
		points += 2
	}
	if p.HasLargestArmy {
		points += 2
	}
	return points
}

// PublicPoints is the score visible to opponents: buildings plus
// awards, excluding hidden victory point cards.
func (p *PlayerState) PublicPoints() int {
	return len(p.Settlements) + 2*len(p.Cities) + p.BonusPoints()
}

// TotalPoints is the true score including victory point cards.
func (p *PlayerState) TotalPoints() int {
	return p.PublicPoints() + p.DevCardCount(VictoryPoint)
}

// Copy deep-copies the player state.
func (p *PlayerState) Copy() *PlayerState {
	out := *p
	out.DevCards = make(map[DevelopmentCard]int, len(p.DevCards))
	for card, n := range p.DevCards {
		out.DevCards[card] = n
	}
	out.FreshDevCards = make(map[DevelopmentCard]int, len(p.FreshDevCards))
	for card, n := range p.FreshDevCards {
		out.FreshDevCards[card] = n
	}
	out.Settlements = append([]board.NodeID(nil), p.Settlements...)
	out.Cities = append([]board.NodeID(nil), p.Cities...)
	out.Roads = append([]board.EdgeID(nil), p.Roads...)
	return &out
}
