package bot

import "github.com/wricardo/snake-showdown/game/engine"

// mobilityCap bounds the flood fill per candidate move. Beyond this much
// open space the mobility term saturates anyway.
const mobilityCap = 60

// Greedy chases the nearest food while keeping out of immediate danger. It
// is fully deterministic: candidate moves are scored in the fixed direction
// order and the first best score wins.
type Greedy struct {
	weights Weights
}

// NewGreedy builds a greedy policy with the given tuning
func NewGreedy(w Weights) *Greedy {
	return &Greedy{weights: w}
}

// Name implements Policy
func (g *Greedy) Name() string {
	return GreedyName
}

// Decide implements Policy
func (g *Greedy) Decide(snap *engine.RoundSnapshot, slot int) engine.Direction {
	view := snap.View(slot)
	b := newBoard(snap)

	best := fallbackMove(view)
	bestScore := -1e18
	head := view.Segments[0]
	for _, d := range candidateMoves(view) {
		next := head.Add(d)
		if !b.safe(next) {
			continue
		}
		score := g.scoreMove(b, next)
		if score > bestScore {
			bestScore = score
			best = d
		}
	}
	return best
}

// scoreMove rates a landing cell: attraction to the nearest food, mobility
// from the reachable free space, and a flat penalty for stepping onto a trap.
func (g *Greedy) scoreMove(b *board, next engine.Position) float64 {
	score := g.weights.Food * foodAttraction(b.food, next)
	score += g.weights.Mobility * float64(b.freeSpace(next, mobilityCap))
	if b.traps[next] {
		score -= g.weights.Danger
	}
	return score
}

// foodAttraction returns the inverse distance to the nearest food, in (0,1].
// An empty board attracts nothing.
func foodAttraction(food []engine.Position, from engine.Position) float64 {
	if len(food) == 0 {
		return 0
	}
	nearest := engine.Distance(from, food[0])
	for _, p := range food[1:] {
		if d := engine.Distance(from, p); d < nearest {
			nearest = d
		}
	}
	return 1.0 / (nearest + 1.0)
}

// fallbackMove returns the current heading, used when every candidate is
// fatal and the snake may as well keep going straight.
func fallbackMove(view *engine.SnakeView) engine.Direction {
	heading, ok := engine.ParseDirection(view.Direction)
	if !ok {
		return engine.Right
	}
	return heading
}
