package bot

import "github.com/wricardo/snake-showdown/game/engine"

// strategicMobilityCap gives the strategic policy a wider view of open space
// than the greedy one, so it avoids steering into large dead pockets.
const strategicMobilityCap = 120

// Strategic extends the greedy heuristic with opponent awareness: food is
// only worth chasing when this snake can plausibly reach it first, and cells
// on the opponent's predicted path are penalized. The opponent is predicted
// by simulating it greedily for a few steps.
type Strategic struct {
	weights Weights
	inner   *Greedy
}

// NewStrategic builds a strategic policy with the given tuning
func NewStrategic(w Weights) *Strategic {
	return &Strategic{weights: w, inner: NewGreedy(w)}
}

// Name implements Policy
func (s *Strategic) Name() string {
	return StrategicName
}

// Decide implements Policy
func (s *Strategic) Decide(snap *engine.RoundSnapshot, slot int) engine.Direction {
	view := snap.View(slot)
	opponent := snap.View(1 - slot)
	b := newBoard(snap)

	predicted := s.predictOpponent(b, opponent)

	best := fallbackMove(view)
	bestScore := -1e18
	found := false
	head := view.Segments[0]
	for _, d := range candidateMoves(view) {
		next := head.Add(d)
		if !b.safe(next) {
			continue
		}
		score := s.scoreMove(b, next, view, opponent, predicted)
		if score > bestScore {
			bestScore = score
			best = d
			found = true
		}
	}
	if !found {
		// Every candidate is fatal; defer to the greedy fallback so both
		// policies die the same way.
		return s.inner.Decide(snap, slot)
	}
	return best
}

// scoreMove rates a landing cell with opponent-aware terms
func (s *Strategic) scoreMove(b *board, next engine.Position, view, opponent *engine.SnakeView, predicted map[engine.Position]int) float64 {
	score := s.weights.Food * s.contestedFoodAttraction(b, next, opponent)
	score += s.weights.Mobility * float64(b.freeSpace(next, strategicMobilityCap))
	score -= s.weights.Danger * s.dangerAt(b, next, view, opponent)

	if b.traps[next] {
		score -= s.weights.Danger
	}
	// Cells the opponent is predicted to reach soon are risky in proportion
	// to how soon.
	if step, ok := predicted[next]; ok {
		score -= s.weights.Danger / float64(step)
	}
	return score
}

// oppDangerRadius is how close a longer opponent's head must be before it
// counts as a cutoff threat.
const oppDangerRadius = 4.0

// dangerAt aggregates the positional risks of a landing cell: proximity to
// the walls, to this snake's own body, and to the opponent's head and body.
// Each term lands in [0,1]; the caller scales the sum by Weights.Danger.
func (s *Strategic) dangerAt(b *board, next engine.Position, view, opponent *engine.SnakeView) float64 {
	// Walls: full risk on border cells, half one cell in, none farther out.
	wallDist := next.X
	for _, d := range []int{next.Y, b.width - 1 - next.X, b.height - 1 - next.Y} {
		if d < wallDist {
			wallDist = d
		}
	}
	danger := 0.0
	if wallDist < 2 {
		danger = float64(2-wallDist) / 2.0
	}

	// Own body cells next to the landing cell close off escape routes. The
	// head is skipped, it vacates on the same step.
	ownAdjacent := 0
	for _, seg := range view.Segments[1:] {
		if adjacent(next, seg) {
			ownAdjacent++
		}
	}
	danger += float64(ownAdjacent) / 3.0

	if opponent.Alive {
		// A longer opponent's head nearby can cut this snake off.
		if len(opponent.Segments) >= len(view.Segments) {
			if d := engine.Distance(next, opponent.Segments[0]); d < oppDangerRadius {
				danger += (oppDangerRadius - d) / oppDangerRadius
			}
		}
		oppAdjacent := 0
		for _, seg := range opponent.Segments {
			if adjacent(next, seg) {
				oppAdjacent++
			}
		}
		danger += float64(oppAdjacent) / 3.0
	}
	return danger
}

// contestedFoodAttraction values each food by inverse distance, but only
// when this snake is at least as close to it as the opponent. Food the
// opponent will win is worthless.
func (s *Strategic) contestedFoodAttraction(b *board, from engine.Position, opponent *engine.SnakeView) float64 {
	if len(b.food) == 0 {
		return 0
	}
	oppHead := opponent.Segments[0]
	oppAlive := opponent.Alive

	best := 0.0
	for _, p := range b.food {
		mine := engine.Distance(from, p)
		if oppAlive && engine.Distance(oppHead, p) < mine {
			continue
		}
		if v := 1.0 / (mine + 1.0); v > best {
			best = v
		}
	}
	return best
}

// predictOpponent runs a short greedy rollout of the opponent's head and
// returns the cells it is expected to occupy, mapped to the step (1-based)
// it reaches them.
func (s *Strategic) predictOpponent(b *board, opponent *engine.SnakeView) map[engine.Position]int {
	predicted := make(map[engine.Position]int)
	if !opponent.Alive || s.weights.PredictionDepth <= 0 {
		return predicted
	}

	head := opponent.Segments[0]
	heading, ok := engine.ParseDirection(opponent.Direction)
	if !ok {
		heading = engine.Right
	}

	for step := 1; step <= s.weights.PredictionDepth; step++ {
		bestScore := -1e18
		var bestNext engine.Position
		var bestDir engine.Direction
		found := false
		for _, d := range engine.Directions {
			if d == heading.Opposite() {
				continue
			}
			next := head.Add(d)
			if !b.safe(next) {
				continue
			}
			if _, seen := predicted[next]; seen {
				continue
			}
			score := s.weights.Food * foodAttraction(b.food, next)
			score += s.weights.Mobility * float64(b.freeSpace(next, mobilityCap))
			if score > bestScore {
				bestScore = score
				bestNext = next
				bestDir = d
				found = true
			}
		}
		if !found {
			break
		}
		predicted[bestNext] = step
		head = bestNext
		heading = bestDir
	}
	return predicted
}
