package engine

import "math/rand"

// Round drives one round of play: two snakes, the hazard sets, the round
// timer, and the advantage countdown that starts when one snake dies. A
// Round is single-threaded; callers serialize access.
type Round struct {
	cfg *MatchConfig
	rng *rand.Rand

	Number int
	State  RoundState
	Snakes [2]*Snake
	Food   *HazardSet
	Traps  *HazardSet

	// Remaining simulation steps on the round clock.
	ticksLeft int

	// Advantage countdown. survivor is only meaningful while counting.
	advantageLeft int
	counting      bool
	survivor      int

	// Fractional step accumulator for variable-dt callers.
	accum float64

	cause  RoundCause
	result *RoundResult
}

// NewRound builds a round in the start state. Heads are placed at the given
// cells and the hazard sets are seeded from the shared rng, so the whole
// board layout is a pure function of the rng stream.
func NewRound(cfg *MatchConfig, rng *rand.Rand, number int, spawnA, spawnB Position) *Round {
	r := &Round{
		cfg:       cfg,
		rng:       rng,
		Number:    number,
		State:     StateStart,
		Food:      NewHazardSet(),
		Traps:     NewHazardSet(),
		ticksLeft: cfg.RoundTicks(),
	}
	r.Snakes[SlotA] = NewSnake(cfg.AgentAName)
	r.Snakes[SlotB] = NewSnake(cfg.AgentBName)
	r.Snakes[SlotA].Reset(spawnA, cfg)
	r.Snakes[SlotB].Reset(spawnB, cfg)

	r.Food.SpawnMultiple(cfg.InitialFood, rng, cfg,
		r.Snakes[SlotA].Segments, r.Snakes[SlotB].Segments)
	r.Traps.SpawnMultiple(cfg.TrapCount, rng, cfg,
		r.Snakes[SlotA].Segments, r.Snakes[SlotB].Segments, r.Food.Positions)
	return r
}

// Begin moves the round from start to playing. Begin on any other state is
// a no-op.
func (r *Round) Begin() {
	if r.State == StateStart {
		r.State = StatePlaying
	}
}

// Tick advances the round by dt wall-clock seconds, running zero or more
// discrete simulation steps. Direction intents apply to the first step of
// this call; a nil intent leaves the buffered direction untouched. Tick
// returns true while the round is still playing.
func (r *Round) Tick(dt float64, intentA, intentB *Direction) bool {
	if r.State != StatePlaying {
		return false
	}

	if intentA != nil {
		r.Snakes[SlotA].ChangeDirection(*intentA)
	}
	if intentB != nil {
		r.Snakes[SlotB].ChangeDirection(*intentB)
	}

	r.accum += dt
	interval := r.cfg.TickInterval()
	for r.accum >= interval && r.State == StatePlaying {
		r.accum -= interval
		r.step()
	}
	return r.State == StatePlaying
}

// Step runs exactly one simulation step, bypassing wall-clock accumulation.
// Batch drivers use this to run rounds as fast as possible.
func (r *Round) Step(intentA, intentB *Direction) bool {
	if r.State != StatePlaying {
		return false
	}
	if intentA != nil {
		r.Snakes[SlotA].ChangeDirection(*intentA)
	}
	if intentB != nil {
		r.Snakes[SlotB].ChangeDirection(*intentB)
	}
	r.step()
	return r.State == StatePlaying
}

// step is one discrete simulation step: shield decay, snake movement, the
// collision resolver, then the termination checks in fixed order.
func (r *Round) step() {
	aliveBefore := r.aliveCount()

	for _, s := range r.Snakes {
		s.tickShield()
	}
	for _, s := range r.Snakes {
		s.Step(r.cfg)
	}
	resolveTick(r.cfg, r.rng, r.Snakes, r.Food, r.Traps)

	r.ticksLeft--

	aliveAfter := r.aliveCount()

	// Death transitions this step.
	switch {
	case aliveAfter == 0:
		if r.counting {
			// The survivor died during its own countdown.
			r.finish(CauseMutualDestruction)
		} else {
			r.finish(CauseMutualDeath)
		}
		return
	case aliveAfter == 1 && aliveBefore == 2:
		r.counting = true
		r.advantageLeft = r.cfg.AdvantageTicks()
		if r.Snakes[SlotA].Alive {
			r.survivor = SlotA
		} else {
			r.survivor = SlotB
		}
	}

	if r.counting {
		r.advantageLeft--
		if r.advantageLeft <= 0 {
			r.finish(CauseSingleDeath)
			return
		}
	}

	if r.cfg.EndWhenCleared && r.Food.Len() == 0 && r.Traps.Len() == 0 {
		r.finish(CauseBoardCleared)
		return
	}

	if r.ticksLeft <= 0 {
		r.finish(CauseTimeout)
	}
}

func (r *Round) aliveCount() int {
	n := 0
	for _, s := range r.Snakes {
		if s.Alive {
			n++
		}
	}
	return n
}

// TimeRemaining returns the round clock in seconds, never negative
func (r *Round) TimeRemaining() float64 {
	if r.ticksLeft <= 0 {
		return 0
	}
	return float64(r.ticksLeft) / float64(r.cfg.TicksPerSecond)
}

// AdvantageRemaining returns the advantage countdown in seconds, or zero
// when no countdown is running.
func (r *Round) AdvantageRemaining() float64 {
	if !r.counting || r.advantageLeft <= 0 {
		return 0
	}
	return float64(r.advantageLeft) / float64(r.cfg.TicksPerSecond)
}

// Result returns the finalized outcome, or nil while the round is playing
func (r *Round) Result() *RoundResult {
	return r.result
}

// finish freezes the round and adjudicates the winner from the terminal
// cause and final state.
func (r *Round) finish(cause RoundCause) {
	r.State = StateRoundOver
	r.cause = cause

	a, b := r.Snakes[SlotA], r.Snakes[SlotB]
	res := &RoundResult{
		Round:         r.Number,
		Cause:         cause,
		TimeRemaining: r.TimeRemaining(),
	}
	res.Agents[SlotA] = statsOf(a)
	res.Agents[SlotB] = statsOf(b)

	switch cause {
	case CauseSingleDeath:
		res.Winner = r.Snakes[r.survivor].Name
	case CauseMutualDestruction:
		res.Draw = true
	case CauseMutualDeath:
		// Both died on the same step: scores at the moment of death decide,
		// a tie is a draw.
		switch {
		case a.Score > b.Score:
			res.Winner = a.Name
		case b.Score > a.Score:
			res.Winner = b.Name
		default:
			res.Draw = true
		}
	default:
		// Timeout and board-cleared resolve on survival first, score second.
		switch {
		case a.Alive && !b.Alive:
			res.Winner = a.Name
		case b.Alive && !a.Alive:
			res.Winner = b.Name
		case a.Score > b.Score:
			res.Winner = a.Name
		case b.Score > a.Score:
			res.Winner = b.Name
		default:
			res.Draw = true
		}
	}
	r.result = res
}

func statsOf(s *Snake) AgentStats {
	return AgentStats{
		Name:       s.Name,
		Score:      s.Score,
		Length:     s.Len(),
		TrapsHit:   s.TrapsHit,
		Collisions: s.Collisions,
		Alive:      s.Alive,
	}
}
