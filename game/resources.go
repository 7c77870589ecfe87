package game

// ResourceBundle is a fixed-size multiset of resource cards, indexed
// by Resource. Counts saturate at 255 on addition; subtraction is
// all-or-nothing.
type ResourceBundle [5]uint8

// NewBundle builds a bundle from explicit per-resource counts in
// Wood, Brick, Sheep, Wheat, Ore order.
func NewBundle(wood, brick, sheep, wheat, ore uint8) ResourceBundle {
	return ResourceBundle{wood, brick, sheep, wheat, ore}
}

// UniformBundle gives every resource the same count.
func UniformBundle(n uint8) ResourceBundle {
	return ResourceBundle{n, n, n, n, n}
}

// Count returns the stored count for r.
func (b ResourceBundle) Count(r Resource) uint8 {
	return b[r.Index()]
}

// Total is the number of cards in the bundle.
func (b ResourceBundle) Total() int {
	total := 0
	for _, n := range b {
		total += int(n)
	}
	return total
}

// IsEmpty reports whether the bundle holds no cards.
func (b ResourceBundle) IsEmpty() bool {
	return b.Total() == 0
}

// Contains reports whether b has at least other's count of every
// resource.
func (b ResourceBundle) Contains(other ResourceBundle) bool {
	for i := range b {
		if b[i] < other[i] {
			return false
		}
	}
	return true
}

// Add returns b plus other, saturating each count at 255.
func (b ResourceBundle) Add(other ResourceBundle) ResourceBundle {
	var out ResourceBundle
	for i := range b {
		sum := uint16(b[i]) + uint16(other[i])
		if sum > 255 {
			sum = 255
		}
		out[i] = uint8(sum)
	}
	return out
}

// Subtract returns b minus other. The subtraction is atomic: if any
// count would go negative, b is returned unchanged and ok is false.
func (b ResourceBundle) Subtract(other ResourceBundle) (ResourceBundle, bool) {
	if !b.Contains(other) {
		return b, false
	}
	var out ResourceBundle
	for i := range b {
		out[i] = b[i] - other[i]
	}
	return out, true
}

// Single returns a bundle holding n cards of r.
func Single(r Resource, n uint8) ResourceBundle {
	var b ResourceBundle
	b[r.Index()] = n
	return b
}

// Building and purchase costs.
var (
	CostRoad        = NewBundle(1, 1, 0, 0, 0)
	CostSettlement  = NewBundle(1, 1, 1, 1, 0)
	CostCity        = NewBundle(0, 0, 0, 2, 3)
	CostDevelopment = NewBundle(0, 0, 1, 1, 1)
)
