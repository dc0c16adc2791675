package engine

// Snake is one agent's body on the grid. Segments are ordered head-first;
// growth appends at the tail by skipping the tail pop for a step. A snake is
// marked dead exactly once and every operation on a dead snake is a no-op.
type Snake struct {
	Name          string
	Segments      []Position
	Direction     Direction
	NextDirection Direction
	Score         int
	Alive         bool
	DeathCause    DeathCause
	ShieldTicks   int
	PendingGrowth int

	// Per-round counters picked up by the round result.
	TrapsHit   int
	Collisions int
}

// NewSnake creates a snake that has not yet been placed; call Reset before
// the first step.
func NewSnake(name string) *Snake {
	return &Snake{Name: name}
}

// Reset places the snake at the given head position for a fresh round. The
// initial body extends opposite the default heading so that the live length
// already satisfies the configured minimum; the spawn allocator guarantees
// the room for it.
func (s *Snake) Reset(start Position, cfg *MatchConfig) {
	s.Direction = Right
	s.NextDirection = Right
	s.Segments = make([]Position, cfg.MinSnakeLength)
	for i := range s.Segments {
		s.Segments[i] = Position{X: start.X - i*s.Direction.DX, Y: start.Y - i*s.Direction.DY}
	}
	s.Score = 0
	s.Alive = true
	s.DeathCause = DeathNone
	s.ShieldTicks = 0
	s.PendingGrowth = 0
	s.TrapsHit = 0
	s.Collisions = 0
}

// Head returns the head position by value
func (s *Snake) Head() Position {
	return s.Segments[0]
}

// Len returns the current body length
func (s *Snake) Len() int {
	return len(s.Segments)
}

// ChangeDirection buffers the direction for the next step. A 180-degree turn
// is rejected while the snake is longer than one segment: the call is a no-op
// and the previously buffered value is kept.
func (s *Snake) ChangeDirection(d Direction) {
	if !s.Alive {
		return
	}
	if d != Up && d != Down && d != Left && d != Right {
		return
	}
	if d == s.Direction.Opposite() && s.Len() > 1 {
		return
	}
	s.NextDirection = d
}

// Step advances the snake one discrete cell. It commits the buffered
// direction, applies wall and self collision, and handles growth. The caller
// (the round controller) owns tick accumulation; this is a pure step.
func (s *Snake) Step(cfg *MatchConfig) {
	if !s.Alive {
		return
	}

	s.Direction = s.NextDirection
	next := s.Head().Add(s.Direction)

	if !cfg.InBounds(next) {
		s.Alive = false
		s.DeathCause = DeathWall
		return
	}

	// The tail cell is about to be vacated unless the snake grows this
	// step, so it does not count as a self collision.
	occupied := s.Len()
	if s.PendingGrowth == 0 {
		occupied--
	}
	for i := 0; i < occupied; i++ {
		if s.Segments[i] == next {
			s.Alive = false
			s.DeathCause = DeathSelf
			return
		}
	}

	s.Segments = append([]Position{next}, s.Segments...)
	if s.PendingGrowth > 0 {
		s.PendingGrowth--
	} else {
		s.Segments = s.Segments[:s.Len()-1]
	}
}

// tickShield decrements the shield window by one step
func (s *Snake) tickShield() {
	if s.ShieldTicks > 0 {
		s.ShieldTicks--
	}
}

// applyScorePenalty lowers the score by the given amount, flooring at zero
// unless negative scores are allowed.
func (s *Snake) applyScorePenalty(points int, cfg *MatchConfig) {
	s.Score -= points
	if s.Score < 0 && !cfg.AllowNegativeScore {
		s.Score = 0
	}
}

// shrink removes up to n segments from the tail end without going below the
// configured minimum length. Pending growth is consumed before live segments.
func (s *Snake) shrink(n int, cfg *MatchConfig) {
	for i := 0; i < n; i++ {
		if s.PendingGrowth > 0 {
			s.PendingGrowth--
			continue
		}
		if s.Len() <= cfg.MinSnakeLength {
			return
		}
		s.Segments = s.Segments[:s.Len()-1]
	}
}

// occupies reports whether any segment sits on p
func (s *Snake) occupies(p Position) bool {
	for _, seg := range s.Segments {
		if seg == p {
			return true
		}
	}
	return false
}

// bodyOccupies reports whether a non-head segment sits on p
func (s *Snake) bodyOccupies(p Position) bool {
	for _, seg := range s.Segments[1:] {
		if seg == p {
			return true
		}
	}
	return false
}
