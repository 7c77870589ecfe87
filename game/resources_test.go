package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBundleAdd(t *testing.T) {
	t.Run("adds per resource", func(t *testing.T) {
		a := NewBundle(1, 2, 0, 0, 0)
		b := NewBundle(0, 1, 3, 0, 0)
		require.Equal(t, NewBundle(1, 3, 3, 0, 0), a.Add(b))
	})

	t.Run("saturates at 255", func(t *testing.T) {
		a := UniformBundle(200)
		b := UniformBundle(100)
		require.Equal(t, UniformBundle(255), a.Add(b))
	})
}

func TestBundleSubtract(t *testing.T) {
	t.Run("subtracts when covered", func(t *testing.T) {
		a := NewBundle(2, 2, 1, 0, 0)
		out, ok := a.Subtract(CostRoad)
		require.True(t, ok)
		require.Equal(t, NewBundle(1, 1, 1, 0, 0), out)
	})

	t.Run("fails atomically when any count is short", func(t *testing.T) {
		a := NewBundle(5, 0, 5, 5, 5)
		out, ok := a.Subtract(CostRoad)
		require.False(t, ok)
		require.Equal(t, a, out, "failed subtraction should leave the bundle unchanged")
	})
}

func TestBundleCounts(t *testing.T) {
	b := NewBundle(1, 0, 2, 0, 3)
	require.Equal(t, uint8(1), b.Count(Wood))
	require.Equal(t, uint8(2), b.Count(Sheep))
	require.Equal(t, 6, b.Total())
	require.False(t, b.IsEmpty())
	require.True(t, ResourceBundle{}.IsEmpty())
}

func TestBundleContains(t *testing.T) {
	hand := NewBundle(1, 1, 1, 1, 0)
	require.True(t, hand.Contains(CostSettlement))
	require.True(t, hand.Contains(CostRoad))
	require.False(t, hand.Contains(CostCity))
	require.False(t, hand.Contains(CostDevelopment))
}

func TestSingle(t *testing.T) {
	require.Equal(t, NewBundle(0, 0, 0, 4, 0), Single(Wheat, 4))
}

func TestCosts(t *testing.T) {
	require.Equal(t, 2, CostRoad.Total())
	require.Equal(t, 4, CostSettlement.Total())
	require.Equal(t, 5, CostCity.Total())
	require.Equal(t, 3, CostDevelopment.Total())
}
