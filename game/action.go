package game

import (
	"fmt"

	"catan/board"
)

// PayloadKind tags which payload fields of ActionPayload are live.
type PayloadKind uint8

const (
	PayloadNone PayloadKind = iota
	PayloadNode
	PayloadEdge
	PayloadRobber
	PayloadResource
	PayloadResourcePair
	PayloadTradeOffer
	PayloadAcceptee
	PayloadDice
)

// ActionPayload carries an action's parameters. It is a flat tagged
// struct rather than an interface so GameAction stays comparable and
// can key maps in search code.
type ActionPayload struct {
	Kind PayloadKind

	Node board.NodeID
	Edge board.EdgeID

	Tile   uint16 // robber destination
	Victim Color
	Steal  bool

	Give Resource // also monopoly target and discard card
	Take Resource // year of plenty second pick, maritime ask, resolved steal

	Offering     ResourceBundle
	Asking       ResourceBundle
	MaritimeRate uint8

	Acceptee Color

	Die1 uint8
	Die2 uint8
}

// GameAction is one submitted move: who, what, and with which
// parameters. The zero Payload means the action takes none.
type GameAction struct {
	Color   Color
	Type    ActionType
	Payload ActionPayload
}

func (a GameAction) String() string {
	switch a.Payload.Kind {
	case PayloadNone:
		return fmt.Sprintf("%s %s", a.Color, a.Type)
	case PayloadNode:
		return fmt.Sprintf("%s %s node=%d", a.Color, a.Type, a.Payload.Node)
	case PayloadEdge:
		return fmt.Sprintf("%s %s edge=%d-%d", a.Color, a.Type, a.Payload.Edge.A, a.Payload.Edge.B)
	case PayloadRobber:
		if a.Payload.Steal {
			return fmt.Sprintf("%s %s tile=%d victim=%s", a.Color, a.Type, a.Payload.Tile, a.Payload.Victim)
		}
		return fmt.Sprintf("%s %s tile=%d", a.Color, a.Type, a.Payload.Tile)
	case PayloadResource:
		return fmt.Sprintf("%s %s resource=%s", a.Color, a.Type, a.Payload.Give)
	case PayloadResourcePair:
		return fmt.Sprintf("%s %s %s+%s", a.Color, a.Type, a.Payload.Give, a.Payload.Take)
	case PayloadTradeOffer:
		if a.Type == MaritimeTrade {
			return fmt.Sprintf("%s %s %d:%s for %s", a.Color, a.Type, a.Payload.MaritimeRate, a.Payload.Give, a.Payload.Take)
		}
		return fmt.Sprintf("%s %s offering=%v asking=%v", a.Color, a.Type, a.Payload.Offering, a.Payload.Asking)
	case PayloadAcceptee:
		return fmt.Sprintf("%s %s with=%s", a.Color, a.Type, a.Payload.Acceptee)
	case PayloadDice:
		return fmt.Sprintf("%s %s %d+%d", a.Color, a.Type, a.Payload.Die1, a.Payload.Die2)
	}
	return fmt.Sprintf("%s %s", a.Color, a.Type)
}

// Payload constructors.

func NodePayload(node board.NodeID) ActionPayload {
	return ActionPayload{Kind: PayloadNode, Node: node}
}

func EdgePayload(edge board.EdgeID) ActionPayload {
	return ActionPayload{Kind: PayloadEdge, Edge: edge.Normalized()}
}

func RobberPayload(tile uint16) ActionPayload {
	return ActionPayload{Kind: PayloadRobber, Tile: tile}
}

func RobberStealPayload(tile uint16, victim Color) ActionPayload {
	return ActionPayload{Kind: PayloadRobber, Tile: tile, Victim: victim, Steal: true}
}

func ResourcePayload(r Resource) ActionPayload {
	return ActionPayload{Kind: PayloadResource, Give: r}
}

func ResourcePairPayload(first, second Resource) ActionPayload {
	return ActionPayload{Kind: PayloadResourcePair, Give: first, Take: second}
}

func MaritimePayload(rate uint8, give, take Resource) ActionPayload {
	return ActionPayload{Kind: PayloadTradeOffer, MaritimeRate: rate, Give: give, Take: take}
}

func TradeOfferPayload(offering, asking ResourceBundle) ActionPayload {
	return ActionPayload{Kind: PayloadTradeOffer, Offering: offering, Asking: asking}
}

func AccepteePayload(acceptee Color) ActionPayload {
	return ActionPayload{Kind: PayloadAcceptee, Acceptee: acceptee}
}

// DicePayload forces a roll outcome. Values are clamped to 1..6 so an
// injected roll is always a legal pair of dice.
func DicePayload(d1, d2 uint8) ActionPayload {
	return ActionPayload{Kind: PayloadDice, Die1: clampDie(d1), Die2: clampDie(d2)}
}

func clampDie(d uint8) uint8 {
	if d < 1 {
		return 1
	}
	if d > 6 {
		return 6
	}
	return d
}
