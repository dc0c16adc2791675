package bot

import "github.com/wricardo/snake-showdown/game/engine"

// board is a per-decision occupancy view built once from a snapshot and
// shared by the heuristic terms.
type board struct {
	width, height int
	blocked       map[engine.Position]bool
	traps         map[engine.Position]bool
	food          []engine.Position
}

// newBoard indexes the snapshot. Both snakes' full bodies count as blocked;
// tails are treated as solid because whether a tail vacates depends on
// pending growth, which the snapshot caller cannot see one step ahead.
func newBoard(snap *engine.RoundSnapshot) *board {
	b := &board{
		width:   snap.GridWidth,
		height:  snap.GridHeight,
		blocked: make(map[engine.Position]bool),
		traps:   make(map[engine.Position]bool, len(snap.Traps)),
		food:    snap.Food,
	}
	for i := range snap.Snakes {
		if !snap.Snakes[i].Alive {
			continue
		}
		for _, seg := range snap.Snakes[i].Segments {
			b.blocked[seg] = true
		}
	}
	for _, p := range snap.Traps {
		b.traps[p] = true
	}
	return b
}

func (b *board) inBounds(p engine.Position) bool {
	return p.X >= 0 && p.X < b.width && p.Y >= 0 && p.Y < b.height
}

// safe reports whether a head can step onto p without dying
func (b *board) safe(p engine.Position) bool {
	return b.inBounds(p) && !b.blocked[p]
}

// freeSpace flood-fills from p and returns the number of reachable free
// cells, capped at limit to bound the work per decision. p itself is counted
// when free.
func (b *board) freeSpace(p engine.Position, limit int) int {
	if !b.safe(p) {
		return 0
	}
	visited := map[engine.Position]bool{p: true}
	queue := []engine.Position{p}
	count := 0
	for len(queue) > 0 && count < limit {
		cur := queue[0]
		queue = queue[1:]
		count++
		for _, d := range engine.Directions {
			next := cur.Add(d)
			if visited[next] || !b.safe(next) {
				continue
			}
			visited[next] = true
			queue = append(queue, next)
		}
	}
	return count
}

// adjacent reports whether two cells share an edge
func adjacent(a, b engine.Position) bool {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return dx+dy == 1
}

// candidateMoves returns the directions a snake may steer to this step in
// the fixed priority order, excluding only the illegal reversal.
func candidateMoves(view *engine.SnakeView) []engine.Direction {
	heading, _ := engine.ParseDirection(view.Direction)
	moves := make([]engine.Direction, 0, 4)
	for _, d := range engine.Directions {
		if len(view.Segments) > 1 && d == heading.Opposite() {
			continue
		}
		moves = append(moves, d)
	}
	return moves
}
