package game

import "golang.org/x/exp/rand"

// gameRNG is a deterministic PRNG whose full state can be deep-copied,
// so cloned states replay identically. PCGSource supports binary
// round-tripping of its internal state.
type gameRNG struct {
	src *rand.PCGSource
	*rand.Rand
}

func newGameRNG(seed uint64) *gameRNG {
	src := &rand.PCGSource{}
	src.Seed(seed)
	return &gameRNG{src: src, Rand: rand.New(src)}
}

// Copy clones the generator mid-stream.
func (g *gameRNG) Copy() *gameRNG {
	state, err := g.src.MarshalBinary()
	if err != nil {
		panic(err)
	}
	src := &rand.PCGSource{}
	if err := src.UnmarshalBinary(state); err != nil {
		panic(err)
	}
	return &gameRNG{src: src, Rand: rand.New(src)}
}
