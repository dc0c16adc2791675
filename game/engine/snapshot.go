package engine

// SnakeView is a read-only copy of one snake's public state
type SnakeView struct {
	Name          string     `json:"name"`
	Segments      []Position `json:"segments"`
	Direction     string     `json:"direction"`
	Score         int        `json:"score"`
	Length        int        `json:"length"`
	Alive         bool       `json:"alive"`
	DeathCause    DeathCause `json:"death_cause,omitempty"`
	ShieldActive  bool       `json:"shield_active"`
	ShieldSeconds float64    `json:"shield_seconds"`
	TrapsHit      int        `json:"traps_hit"`
	Collisions    int        `json:"collisions"`
}

// RoundSnapshot is a deep copy of the observable round state at one instant.
// It shares no memory with the live round, so spectators and bots can hold
// it across steps.
type RoundSnapshot struct {
	Round              int          `json:"round"`
	State              RoundState   `json:"state"`
	GridWidth          int          `json:"grid_width"`
	GridHeight         int          `json:"grid_height"`
	Snakes             [2]SnakeView `json:"snakes"`
	Food               []Position   `json:"food"`
	Traps              []Position   `json:"traps"`
	TimeRemaining      float64      `json:"time_remaining"`
	AdvantageRemaining float64      `json:"advantage_remaining,omitempty"`
	Result             *RoundResult `json:"result,omitempty"`
}

// Snapshot captures the round's observable state. The returned value owns
// all of its slices.
func (r *Round) Snapshot() *RoundSnapshot {
	snap := &RoundSnapshot{
		Round:              r.Number,
		State:              r.State,
		GridWidth:          r.cfg.GridWidth,
		GridHeight:         r.cfg.GridHeight,
		Food:               copyPositions(r.Food.Positions),
		Traps:              copyPositions(r.Traps.Positions),
		TimeRemaining:      r.TimeRemaining(),
		AdvantageRemaining: r.AdvantageRemaining(),
	}
	for i, s := range r.Snakes {
		snap.Snakes[i] = SnakeView{
			Name:          s.Name,
			Segments:      copyPositions(s.Segments),
			Direction:     s.Direction.String(),
			Score:         s.Score,
			Length:        s.Len(),
			Alive:         s.Alive,
			DeathCause:    s.DeathCause,
			ShieldActive:  s.ShieldTicks > 0,
			ShieldSeconds: float64(s.ShieldTicks) / float64(r.cfg.TicksPerSecond),
			TrapsHit:      s.TrapsHit,
			Collisions:    s.Collisions,
		}
	}
	if r.result != nil {
		res := *r.result
		snap.Result = &res
	}
	return snap
}

// View returns the snapshot slice index for the given slot's snake. Bots
// receive a snapshot plus their own slot and read the opponent with 1-slot.
func (s *RoundSnapshot) View(slot int) *SnakeView {
	return &s.Snakes[slot]
}
