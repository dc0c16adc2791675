package engine

import "math/rand"

// HazardSet is an occupancy set of unique cells used for both food and traps.
// Positions keep insertion order so that iteration is deterministic for a
// given seed.
type HazardSet struct {
	Positions []Position
}

// NewHazardSet returns an empty set
func NewHazardSet() *HazardSet {
	return &HazardSet{}
}

// Len returns the number of occupied cells
func (h *HazardSet) Len() int {
	return len(h.Positions)
}

// Contains reports whether p is in the set
func (h *HazardSet) Contains(p Position) bool {
	for _, pos := range h.Positions {
		if pos == p {
			return true
		}
	}
	return false
}

// ConsumeAt removes p from the set and reports whether a removal happened.
// Score, growth, and shield effects are applied by the collision resolver,
// not here.
func (h *HazardSet) ConsumeAt(p Position) bool {
	for i, pos := range h.Positions {
		if pos == p {
			h.Positions = append(h.Positions[:i], h.Positions[i+1:]...)
			return true
		}
	}
	return false
}

// SpawnMultiple fills up to n new unique cells chosen uniformly at random
// from free cells inside the one-cell wall margin. Excluded lists must cover
// everything the new cells may not overlap: snake segments, the other hazard
// set, and this set itself is always excluded. When fewer than n free cells
// exist it spawns as many as possible.
func (h *HazardSet) SpawnMultiple(n int, rng *rand.Rand, cfg *MatchConfig, excluded ...[]Position) int {
	if n <= 0 {
		return 0
	}

	occupied := make(map[Position]struct{}, len(h.Positions))
	for _, p := range h.Positions {
		occupied[p] = struct{}{}
	}
	for _, list := range excluded {
		for _, p := range list {
			occupied[p] = struct{}{}
		}
	}

	// Collect free cells in row-major order so the rng draw is the only
	// source of variation.
	available := make([]Position, 0, cfg.GridWidth*cfg.GridHeight)
	for y := 1; y < cfg.GridHeight-1; y++ {
		for x := 1; x < cfg.GridWidth-1; x++ {
			p := Position{X: x, Y: y}
			if _, ok := occupied[p]; ok {
				continue
			}
			available = append(available, p)
		}
	}

	spawned := 0
	for spawned < n && len(available) > 0 {
		i := rng.Intn(len(available))
		h.Positions = append(h.Positions, available[i])
		available[i] = available[len(available)-1]
		available = available[:len(available)-1]
		spawned++
	}
	return spawned
}

// SpawnStartPositions picks two snake start cells with the configured minimum
// separation. Start cells keep min_snake_length columns of room to the left
// for the initial body. If separation cannot be satisfied after a bounded
// number of attempts the last candidate pair is used; validation guarantees
// this only happens on extremely crowded boards.
func SpawnStartPositions(rng *rand.Rand, cfg *MatchConfig) (Position, Position) {
	minX := cfg.MinSnakeLength // leaves [minX-minLen+1, minX] inside the grid
	if minX < 1 {
		minX = 1
	}

	pick := func() Position {
		return Position{
			X: minX + rng.Intn(cfg.GridWidth-1-minX),
			Y: 1 + rng.Intn(cfg.GridHeight-2),
		}
	}

	// The initial bodies extend leftward from the heads; a candidate pair
	// is rejected when they would overlap, not just when the heads are
	// closer than the separation floor.
	conflict := func(a, b Position) bool {
		if Distance(a, b) < cfg.MinSpawnSeparation {
			return true
		}
		if a.Y != b.Y {
			return false
		}
		lo, hi := a.X, b.X
		if lo > hi {
			lo, hi = hi, lo
		}
		return hi-lo < cfg.MinSnakeLength
	}

	a := pick()
	b := pick()
	for attempts := 0; conflict(a, b) && attempts < 100; attempts++ {
		b = pick()
	}
	return a, b
}
