package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func newTestBank(seed uint64) *Bank {
	return NewBank(rand.New(rand.NewSource(seed)))
}

func TestNewBank(t *testing.T) {
	bank := newTestBank(1)

	require.Equal(t, UniformBundle(19), bank.Resources)
	require.Len(t, bank.DevDeck, 25)

	counts := make(map[DevelopmentCard]int)
	for _, card := range bank.DevDeck {
		counts[card]++
	}
	require.Equal(t, 14, counts[Knight])
	require.Equal(t, 5, counts[VictoryPoint])
	require.Equal(t, 2, counts[RoadBuilding])
	require.Equal(t, 2, counts[YearOfPlenty])
	require.Equal(t, 2, counts[Monopoly])
}

func TestBankGive(t *testing.T) {
	t.Run("succeeds within supply", func(t *testing.T) {
		bank := newTestBank(1)
		require.True(t, bank.Give(Single(Ore, 19)))
		require.Equal(t, uint8(0), bank.Resources.Count(Ore))
	})

	t.Run("fails atomically when short", func(t *testing.T) {
		bank := newTestBank(1)
		require.True(t, bank.Give(Single(Ore, 19)))
		before := bank.Resources
		require.False(t, bank.Give(NewBundle(1, 0, 0, 0, 1)))
		require.Equal(t, before, bank.Resources, "failed give should not touch the supply")
	})
}

func TestBankDrawDevCard(t *testing.T) {
	bank := newTestBank(2)
	for i := 0; i < 25; i++ {
		_, ok := bank.DrawDevCard()
		require.True(t, ok)
	}
	_, ok := bank.DrawDevCard()
	require.False(t, ok, "empty deck should not deal")
}

func TestBankBuyDevelopmentCard(t *testing.T) {
	t.Run("charges the cost and deals a card", func(t *testing.T) {
		bank := newTestBank(5)
		rng := rand.New(rand.NewSource(5))
		supplyBefore := bank.Resources

		_, hand, err := bank.BuyDevelopmentCard(CostDevelopment, rng)
		require.NoError(t, err)
		require.True(t, hand.IsEmpty())
		require.Len(t, bank.DevDeck, 24)
		require.Equal(t, supplyBefore.Add(CostDevelopment), bank.Resources)
	})

	t.Run("reshuffles the remaining deck on each purchase", func(t *testing.T) {
		a := newTestBank(6)
		b := newTestBank(6)
		rngA := rand.New(rand.NewSource(7))
		rngB := rand.New(rand.NewSource(7))

		cardA, _, errA := a.BuyDevelopmentCard(CostDevelopment, rngA)
		cardB, _, errB := b.BuyDevelopmentCard(CostDevelopment, rngB)
		require.NoError(t, errA)
		require.NoError(t, errB)
		require.Equal(t, cardA, cardB, "same streams must deal the same card")
		require.Equal(t, a.DevDeck, b.DevDeck)
	})

	t.Run("rejects a short hand untouched", func(t *testing.T) {
		bank := newTestBank(8)
		rng := rand.New(rand.NewSource(8))
		_, hand, err := bank.BuyDevelopmentCard(Single(Sheep, 1), rng)
		require.ErrorIs(t, err, ErrInsufficientResources)
		require.Equal(t, Single(Sheep, 1), hand)
		require.Len(t, bank.DevDeck, 25)
	})

	t.Run("rejects an empty deck", func(t *testing.T) {
		bank := newTestBank(9)
		bank.DevDeck = nil
		rng := rand.New(rand.NewSource(9))
		_, _, err := bank.BuyDevelopmentCard(CostDevelopment, rng)
		require.ErrorIs(t, err, ErrIllegalAction)
	})
}

func TestBankDeckShuffleIsSeeded(t *testing.T) {
	a := newTestBank(3)
	b := newTestBank(3)
	require.Equal(t, a.DevDeck, b.DevDeck)
}

func TestBankCopy(t *testing.T) {
	bank := newTestBank(4)
	clone := bank.Copy()

	clone.Give(Single(Wood, 5))
	clone.DrawDevCard()

	require.Equal(t, uint8(19), bank.Resources.Count(Wood))
	require.Len(t, bank.DevDeck, 25)
}
