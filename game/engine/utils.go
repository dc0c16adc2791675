package engine

import "math"

// Distance returns the euclidean distance between two cells
func Distance(a, b Position) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}

// abs returns the absolute value of x
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// InBounds reports whether p lies inside the configured grid
func (c *MatchConfig) InBounds(p Position) bool {
	return p.X >= 0 && p.X < c.GridWidth && p.Y >= 0 && p.Y < c.GridHeight
}

// copyPositions returns an independent copy of a position slice. Snapshots
// hand these out so callers can never alias live round state.
func copyPositions(src []Position) []Position {
	out := make([]Position, len(src))
	copy(out, src)
	return out
}
