// Package randutil holds the seeded randomness behind playouts. The walk,
// sample and play commands derive every random choice from one seed per hand,
// so a seed replays the same private hands and the same line of play.
package randutil

import rand "math/rand/v2"

// Weyl increment separating the two PCG words derived from one seed.
const streamOffset = 0x9e3779b97f4a7c15

// New returns the generator for one hand. Nearby seeds such as seed and
// seed+1, which sample hands out in order, still give unrelated streams.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(scramble(u), scramble(u+streamOffset)))
}

// Pick returns a uniformly chosen element of items. It panics if items is
// empty.
func Pick[T any](r *rand.Rand, items []T) T {
	if len(items) == 0 {
		panic("randutil: pick from empty slice")
	}
	return items[r.IntN(len(items))]
}

// Deal draws n distinct cards from a deck of deckSize, one private hand per
// player. It panics if the deck is too small.
func Deal(r *rand.Rand, deckSize, n int) []int {
	if n < 0 || n > deckSize {
		panic("randutil: cannot deal more cards than the deck holds")
	}
	deck := make([]int, deckSize)
	for i := range deck {
		deck[i] = i
	}
	for i := range n {
		j := i + r.IntN(deckSize-i)
		deck[i], deck[j] = deck[j], deck[i]
	}
	return deck[:n:n]
}

// scramble is the splitmix64 output function.
func scramble(x uint64) uint64 {
	x = (x ^ x>>30) * 0xbf58476d1ce4e5b9
	x = (x ^ x>>27) * 0x94d049bb133111eb
	return x ^ x>>31
}
