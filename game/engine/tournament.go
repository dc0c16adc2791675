package engine

// Tournament accumulates round results and decides the overall winner. It
// holds no board state; the round controller feeds it finalized results.
type Tournament struct {
	cfg    *MatchConfig
	rounds []RoundResult
	wins   [2]int
	draws  int
	totals [2]int
}

// NewTournament starts an empty tournament under the given configuration
func NewTournament(cfg *MatchConfig) *Tournament {
	return &Tournament{cfg: cfg}
}

// RecordRound folds one finished round into the standings
func (t *Tournament) RecordRound(res RoundResult) {
	t.rounds = append(t.rounds, res)
	t.totals[SlotA] += res.Agents[SlotA].Score
	t.totals[SlotB] += res.Agents[SlotB].Score

	switch res.Winner {
	case t.cfg.AgentAName:
		t.wins[SlotA]++
	case t.cfg.AgentBName:
		t.wins[SlotB]++
	default:
		t.draws++
	}
}

// RoundsPlayed returns the number of recorded rounds
func (t *Tournament) RoundsPlayed() int {
	return len(t.rounds)
}

// Wins returns the per-slot win counts
func (t *Tournament) Wins() [2]int {
	return t.wins
}

// TotalScores returns the per-slot cumulative scores across rounds
func (t *Tournament) TotalScores() [2]int {
	return t.totals
}

// IsOver reports whether the tournament has reached a terminal state: the
// round budget is spent, one side's win count can no longer be matched, or
// the early-victory score gap is met after the minimum round count.
func (t *Tournament) IsOver() bool {
	played := len(t.rounds)
	if played >= t.cfg.MaxRounds {
		return true
	}

	remaining := t.cfg.MaxRounds - played
	if t.wins[SlotA] > t.wins[SlotB]+remaining || t.wins[SlotB] > t.wins[SlotA]+remaining {
		return true
	}

	if t.cfg.EarlyVictoryDiff > 0 && played >= t.cfg.MinRoundsForEarlyVictory {
		diff := t.totals[SlotA] - t.totals[SlotB]
		if diff < 0 {
			diff = -diff
		}
		if diff >= t.cfg.EarlyVictoryDiff {
			return true
		}
	}
	return false
}

// Winner returns the winning agent name and whether the tournament was
// decided at all. Wins rank first, cumulative score breaks ties; a tie on
// both is an undecided (drawn) tournament.
func (t *Tournament) Winner() (string, bool) {
	switch {
	case t.wins[SlotA] > t.wins[SlotB]:
		return t.cfg.AgentAName, true
	case t.wins[SlotB] > t.wins[SlotA]:
		return t.cfg.AgentBName, true
	case t.totals[SlotA] > t.totals[SlotB]:
		return t.cfg.AgentAName, true
	case t.totals[SlotB] > t.totals[SlotA]:
		return t.cfg.AgentBName, true
	}
	return "", false
}

// Summary freezes the standings into a serializable form
func (t *Tournament) Summary() *Summary {
	winner, decided := t.Winner()
	rounds := make([]RoundResult, len(t.rounds))
	copy(rounds, t.rounds)
	return &Summary{
		Config:      t.cfg.Name,
		Agents:      [2]string{t.cfg.AgentAName, t.cfg.AgentBName},
		Rounds:      rounds,
		Wins:        t.wins,
		Draws:       t.draws,
		TotalScores: t.totals,
		Winner:      winner,
		Decided:     decided,
	}
}
