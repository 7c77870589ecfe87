package game

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// bankResourceCount is the per-resource supply in the standard game.
const bankResourceCount = 19

// devDeckComposition is the standard 25-card development deck.
var devDeckComposition = map[DevelopmentCard]int{
	Knight:       14,
	VictoryPoint: 5,
	RoadBuilding: 2,
	YearOfPlenty: 2,
	Monopoly:     2,
}

// Bank holds the shared resource supply and the shuffled development
// deck. Cards leave the deck from the end.
type Bank struct {
	Resources ResourceBundle
	DevDeck   []DevelopmentCard
}

// NewBank creates a full bank, shuffling the development deck with
// rng.
func NewBank(rng *rand.Rand) *Bank {
	deck := make([]DevelopmentCard, 0, 25)
	for _, card := range DevelopmentCards {
		for i := 0; i < devDeckComposition[card]; i++ {
			deck = append(deck, card)
		}
	}
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return &Bank{
		Resources: UniformBundle(bankResourceCount),
		DevDeck:   deck,
	}
}

// CanGive reports whether the bank can supply the whole bundle.
func (b *Bank) CanGive(bundle ResourceBundle) bool {
	return b.Resources.Contains(bundle)
}

// Give removes bundle from the bank. It fails atomically when any
// resource is short.
func (b *Bank) Give(bundle ResourceBundle) bool {
	out, ok := b.Resources.Subtract(bundle)
	if !ok {
		return false
	}
	b.Resources = out
	return true
}

// Receive returns bundle to the bank supply.
func (b *Bank) Receive(bundle ResourceBundle) {
	b.Resources = b.Resources.Add(bundle)
}

// BuyDevelopmentCard is the compound purchase: it charges the card
// cost from hand into the bank, reshuffles the remaining deck with rng
// and pops a card. hand comes back unchanged on error.
func (b *Bank) BuyDevelopmentCard(hand ResourceBundle, rng *rand.Rand) (DevelopmentCard, ResourceBundle, error) {
	if len(b.DevDeck) == 0 {
		return 0, hand, fmt.Errorf("%w: development deck is empty", ErrIllegalAction)
	}
	paid, ok := hand.Subtract(CostDevelopment)
	if !ok {
		return 0, hand, fmt.Errorf("%w: development card costs 1 sheep 1 wheat 1 ore", ErrInsufficientResources)
	}
	b.Resources = b.Resources.Add(CostDevelopment)
	rng.Shuffle(len(b.DevDeck), func(i, j int) {
		b.DevDeck[i], b.DevDeck[j] = b.DevDeck[j], b.DevDeck[i]
	})
	card, _ := b.DrawDevCard()
	return card, paid, nil
}

// DrawDevCard pops the top development card, or ok=false when the
// deck is empty.
func (b *Bank) DrawDevCard() (DevelopmentCard, bool) {
	if len(b.DevDeck) == 0 {
		return 0, false
	}
	card := b.DevDeck[len(b.DevDeck)-1]
	b.DevDeck = b.DevDeck[:len(b.DevDeck)-1]
	return card, true
}

// Copy deep-copies the bank.
func (b *Bank) Copy() *Bank {
	deck := make([]DevelopmentCard, len(b.DevDeck))
	copy(deck, b.DevDeck)
	return &Bank{Resources: b.Resources, DevDeck: deck}
}
