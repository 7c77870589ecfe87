package game

import "catan/board"

// Resource is re-exported from board so callers only import one
// package for game-facing types.
type Resource = board.Resource

const (
	Wood       = board.Wood
	Brick      = board.Brick
	Sheep      = board.Sheep
	Wheat      = board.Wheat
	Ore        = board.Ore
	NoResource = board.NoResource
)

// Resources lists the five tradeable resources in index order.
var Resources = board.Resources

// DevelopmentCard enumerates the purchasable development cards.
type DevelopmentCard uint8

const (
	Knight DevelopmentCard = iota
	YearOfPlenty
	Monopoly
	RoadBuilding
	VictoryPoint
)

// DevelopmentCards lists all card kinds in index order.
var DevelopmentCards = [5]DevelopmentCard{Knight, YearOfPlenty, Monopoly, RoadBuilding, VictoryPoint}

func (d DevelopmentCard) String() string {
	switch d {
	case Knight:
		return "Knight"
	case YearOfPlenty:
		return "YearOfPlenty"
	case Monopoly:
		return "Monopoly"
	case RoadBuilding:
		return "RoadBuilding"
	case VictoryPoint:
		return "VictoryPoint"
	}
	return "Unknown"
}

// Color identifies a seat at the table. Seats act in index order.
type Color uint8

const (
	Red Color = iota
	Blue
	Orange
	White
)

func (c Color) String() string {
	switch c {
	case Red:
		return "Red"
	case Blue:
		return "Blue"
	case Orange:
		return "Orange"
	case White:
		return "White"
	}
	return "Unknown"
}

// BuildingKind distinguishes node structures.
type BuildingKind uint8

const (
	Settlement BuildingKind = iota
	City
)

// ActionType names every move a player can submit.
type ActionType uint8

const (
	Roll ActionType = iota
	MoveRobber
	Discard
	BuildRoad
	BuildSettlement
	BuildCity
	BuyDevelopmentCard
	PlayKnightCard
	PlayYearOfPlenty
	PlayMonopoly
	PlayRoadBuilding
	MaritimeTrade
	OfferTrade
	AcceptTrade
	RejectTrade
	ConfirmTrade
	CancelTrade
	EndTurn
)

func (a ActionType) String() string {
	switch a {
	case Roll:
		return "Roll"
	case MoveRobber:
		return "MoveRobber"
	case Discard:
		return "Discard"
	case BuildRoad:
		return "BuildRoad"
	case BuildSettlement:
		return "BuildSettlement"
	case BuildCity:
		return "BuildCity"
	case BuyDevelopmentCard:
		return "BuyDevelopmentCard"
	case PlayKnightCard:
		return "PlayKnightCard"
	case PlayYearOfPlenty:
		return "PlayYearOfPlenty"
	case PlayMonopoly:
		return "PlayMonopoly"
	case PlayRoadBuilding:
		return "PlayRoadBuilding"
	case MaritimeTrade:
		return "MaritimeTrade"
	case OfferTrade:
		return "OfferTrade"
	case AcceptTrade:
		return "AcceptTrade"
	case RejectTrade:
		return "RejectTrade"
	case ConfirmTrade:
		return "ConfirmTrade"
	case CancelTrade:
		return "CancelTrade"
	case EndTurn:
		return "EndTurn"
	}
	return "Unknown"
}

// ActionPrompt tells the current player what class of action the state
// machine expects next.
type ActionPrompt uint8

const (
	PromptBuildInitialSettlement ActionPrompt = iota
	PromptBuildInitialRoad
	PromptPlayTurn
	PromptDiscard
	PromptMoveRobber
	PromptDecideTrade
	PromptDecideAcceptees
)

func (p ActionPrompt) String() string {
	switch p {
	case PromptBuildInitialSettlement:
		return "BuildInitialSettlement"
	case PromptBuildInitialRoad:
		return "BuildInitialRoad"
	case PromptPlayTurn:
		return "PlayTurn"
	case PromptDiscard:
		return "Discard"
	case PromptMoveRobber:
		return "MoveRobber"
	case PromptDecideTrade:
		return "DecideTrade"
	case PromptDecideAcceptees:
		return "DecideAcceptees"
	}
	return "Unknown"
}

// GamePhase is the coarse lifecycle of a game.
type GamePhase uint8

const (
	PhaseSetup GamePhase = iota
	PhasePlay
	PhaseFinished
)

func (p GamePhase) String() string {
	switch p {
	case PhaseSetup:
		return "Setup"
	case PhasePlay:
		return "Play"
	case PhaseFinished:
		return "Finished"
	}
	return "Unknown"
}
