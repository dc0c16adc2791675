package engine

import "math/rand"

// resolveTick adjudicates all cross-entity interactions after both snakes
// have stepped. The order is fixed and slot-symmetric: food consumption,
// then trap consumption, then snake-vs-snake contact. Given identical
// pre-tick state and intents the outcome is bit-identical, and swapping the
// two agent slots only relabels it.
func resolveTick(cfg *MatchConfig, rng *rand.Rand, snakes [2]*Snake, food, traps *HazardSet) {
	resolveFood(cfg, rng, snakes, food, traps)
	resolveTraps(cfg, snakes, traps)
	resolveContact(cfg, snakes)
}

// resolveFood feeds every snake whose head sits on a food cell. The eaten
// set is collected before any effect is applied so that two heads on the
// same cell are credited symmetrically, then one replacement is spawned per
// cell actually removed.
func resolveFood(cfg *MatchConfig, rng *rand.Rand, snakes [2]*Snake, food, traps *HazardSet) {
	eaten := make([]Position, 0, 2)
	for _, s := range snakes {
		if !s.Alive {
			continue
		}
		head := s.Head()
		if !food.Contains(head) {
			continue
		}
		s.Score += cfg.FoodValue
		s.PendingGrowth += cfg.GrowthPerFood
		already := false
		for _, p := range eaten {
			if p == head {
				already = true
				break
			}
		}
		if !already {
			eaten = append(eaten, head)
		}
	}

	if len(eaten) == 0 {
		return
	}
	for _, p := range eaten {
		food.ConsumeAt(p)
	}
	// In finite-food mode the board is meant to empty out, so eaten cells
	// are not replaced.
	if cfg.EndWhenCleared {
		return
	}
	food.SpawnMultiple(len(eaten), rng, cfg, snakes[0].Segments, snakes[1].Segments, traps.Positions)
}

// resolveTraps applies the trap penalty to every snake whose head sits on a
// trap cell: score floored at zero, up to trap_segment_penalty segments lost
// (never below the minimum length), and a fresh shield. Traps are not
// replaced.
func resolveTraps(cfg *MatchConfig, snakes [2]*Snake, traps *HazardSet) {
	hit := make([]Position, 0, 2)
	for _, s := range snakes {
		if !s.Alive {
			continue
		}
		head := s.Head()
		if !traps.Contains(head) {
			continue
		}
		s.applyScorePenalty(cfg.TrapPenalty, cfg)
		s.shrink(cfg.TrapSegmentPenalty, cfg)
		s.ShieldTicks = cfg.ShieldTicks()
		s.TrapsHit++
		already := false
		for _, p := range hit {
			if p == head {
				already = true
				break
			}
		}
		if !already {
			hit = append(hit, head)
		}
	}
	for _, p := range hit {
		traps.ConsumeAt(p)
	}
}

// resolveContact adjudicates snake-vs-snake contact. Contact never kills;
// it costs score and segments and grants a shield. Shields suppress contact
// penalties only, never wall or self death.
func resolveContact(cfg *MatchConfig, snakes [2]*Snake) {
	a, b := snakes[SlotA], snakes[SlotB]
	if !a.Alive || !b.Alive {
		return
	}

	if a.Head() == b.Head() {
		// Head-to-head. An active shield on either side suppresses the
		// whole exchange.
		if a.ShieldTicks > 0 || b.ShieldTicks > 0 {
			return
		}
		switch {
		case cfg.HeadToHeadBias == BiasTrailing && a.Score > b.Score:
			applyContactPenalty(b, cfg.HeadCollisionPenalty, cfg)
		case cfg.HeadToHeadBias == BiasTrailing && b.Score > a.Score:
			applyContactPenalty(a, cfg.HeadCollisionPenalty, cfg)
		default:
			applyContactPenalty(a, cfg.HeadCollisionPenalty, cfg)
			applyContactPenalty(b, cfg.HeadCollisionPenalty, cfg)
		}
		return
	}

	// Head-to-body. Bodies are post-step, so cells vacated this tick are
	// already gone and never charged. Both strikes can land on the same
	// step; each is charged independently.
	if a.ShieldTicks == 0 && b.bodyOccupies(a.Head()) {
		applyContactPenalty(a, cfg.BodyCollisionPenalty, cfg)
	}
	if b.ShieldTicks == 0 && a.bodyOccupies(b.Head()) {
		applyContactPenalty(b, cfg.BodyCollisionPenalty, cfg)
	}
}

// applyContactPenalty charges one snake for a contact event and shields it
// for the configured window.
func applyContactPenalty(s *Snake, points int, cfg *MatchConfig) {
	s.applyScorePenalty(points, cfg)
	s.shrink(cfg.CollisionSegmentPenalty, cfg)
	s.ShieldTicks = cfg.ShieldTicks()
	s.Collisions++
}
