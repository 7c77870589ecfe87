package game

import "errors"

// Sentinel errors returned by State.Step. Callers match them with
// errors.Is; messages carry the specific context.
var (
	ErrGameFinished          = errors.New("game already finished")
	ErrInvalidPlayer         = errors.New("unknown player color")
	ErrActionOutOfTurn       = errors.New("action out of turn")
	ErrInvalidPrompt         = errors.New("action does not match current prompt")
	ErrInvalidPayload        = errors.New("malformed action payload")
	ErrNodeOccupied          = errors.New("node already occupied")
	ErrDistanceRule          = errors.New("adjacent node occupied")
	ErrMustConnect           = errors.New("placement not connected to own network")
	ErrEdgeNotFound          = errors.New("edge does not exist on the board")
	ErrEdgeOccupied          = errors.New("edge already has a road")
	ErrInsufficientResources = errors.New("player cannot afford action")
	ErrBankOutOfResources    = errors.New("bank cannot supply trade")
	ErrIllegalAction         = errors.New("action not legal in this state")
)
