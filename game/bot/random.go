package bot

import (
	"math/rand"

	"github.com/wricardo/snake-showdown/game/engine"
)

// Random picks uniformly among the safe moves, falling back to any legal
// move when every option is fatal. It is the baseline opponent.
type Random struct {
	rng *rand.Rand
}

// NewRandom builds a random policy over the given source
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

// Name implements Policy
func (r *Random) Name() string {
	return RandomName
}

// Decide implements Policy
func (r *Random) Decide(snap *engine.RoundSnapshot, slot int) engine.Direction {
	view := snap.View(slot)
	b := newBoard(snap)

	moves := candidateMoves(view)
	safe := make([]engine.Direction, 0, len(moves))
	head := view.Segments[0]
	for _, d := range moves {
		if b.safe(head.Add(d)) {
			safe = append(safe, d)
		}
	}
	if len(safe) > 0 {
		return safe[r.rng.Intn(len(safe))]
	}
	if len(moves) > 0 {
		return moves[r.rng.Intn(len(moves))]
	}
	heading, _ := engine.ParseDirection(view.Direction)
	return heading
}
