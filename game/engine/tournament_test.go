package engine

import "testing"

func roundWonBy(cfg *MatchConfig, round int, winner string, scoreA, scoreB int) RoundResult {
	res := RoundResult{
		Round:  round,
		Winner: winner,
		Draw:   winner == "",
		Cause:  CauseTimeout,
	}
	res.Agents[SlotA] = AgentStats{Name: cfg.AgentAName, Score: scoreA}
	res.Agents[SlotB] = AgentStats{Name: cfg.AgentBName, Score: scoreB}
	return res
}

func TestTournament_WinsDecide(t *testing.T) {
	cfg := createTestConfig()
	tm := NewTournament(cfg)

	tm.RecordRound(roundWonBy(cfg, 1, cfg.AgentAName, 5, 3))
	tm.RecordRound(roundWonBy(cfg, 2, cfg.AgentBName, 2, 6))
	tm.RecordRound(roundWonBy(cfg, 3, cfg.AgentAName, 4, 1))

	if !tm.IsOver() {
		t.Error("Tournament should be over at max rounds")
	}
	winner, decided := tm.Winner()
	if !decided || winner != cfg.AgentAName {
		t.Errorf("Expected %q to win, got %q (decided %v)", cfg.AgentAName, winner, decided)
	}
	if tm.Wins() != [2]int{2, 1} {
		t.Errorf("Expected wins 2-1, got %v", tm.Wins())
	}
}

func TestTournament_ScoreBreaksWinTie(t *testing.T) {
	cfg := createTestConfig()
	tm := NewTournament(cfg)

	tm.RecordRound(roundWonBy(cfg, 1, cfg.AgentAName, 5, 3))
	tm.RecordRound(roundWonBy(cfg, 2, cfg.AgentBName, 2, 9))
	tm.RecordRound(roundWonBy(cfg, 3, "", 4, 4))

	winner, decided := tm.Winner()
	if !decided || winner != cfg.AgentBName {
		t.Errorf("Expected score tiebreak for %q, got %q", cfg.AgentBName, winner)
	}
	if tm.TotalScores() != [2]int{11, 16} {
		t.Errorf("Expected totals 11-16, got %v", tm.TotalScores())
	}
}

func TestTournament_FullTie(t *testing.T) {
	cfg := createTestConfig()
	tm := NewTournament(cfg)

	tm.RecordRound(roundWonBy(cfg, 1, cfg.AgentAName, 5, 3))
	tm.RecordRound(roundWonBy(cfg, 2, cfg.AgentBName, 3, 5))
	tm.RecordRound(roundWonBy(cfg, 3, "", 2, 2))

	winner, decided := tm.Winner()
	if decided || winner != "" {
		t.Errorf("Expected an undecided tournament, got %q", winner)
	}
	sum := tm.Summary()
	if sum.Decided || sum.Winner != "" {
		t.Error("Summary should reflect the tie")
	}
	if sum.Draws != 1 {
		t.Errorf("Expected 1 draw, got %d", sum.Draws)
	}
}

func TestTournament_EndsEarlyWhenUnovertakeable(t *testing.T) {
	cfg := createTestConfig()
	cfg.MaxRounds = 3
	cfg.EarlyVictoryDiff = 0 // isolate the win-count rule
	tm := NewTournament(cfg)

	tm.RecordRound(roundWonBy(cfg, 1, cfg.AgentAName, 5, 3))
	if tm.IsOver() {
		t.Error("1-0 after one of three rounds is still overtakeable")
	}
	tm.RecordRound(roundWonBy(cfg, 2, cfg.AgentAName, 5, 3))
	if !tm.IsOver() {
		t.Error("2-0 with one round left cannot be overtaken")
	}
}

func TestTournament_EarlyVictoryByScoreGap(t *testing.T) {
	cfg := createTestConfig()
	cfg.MaxRounds = 5
	cfg.EarlyVictoryDiff = 20
	cfg.MinRoundsForEarlyVictory = 2
	tm := NewTournament(cfg)

	tm.RecordRound(roundWonBy(cfg, 1, cfg.AgentAName, 30, 2))
	if tm.IsOver() {
		t.Error("Score gap must not end the tournament before the minimum rounds")
	}
	tm.RecordRound(roundWonBy(cfg, 2, cfg.AgentAName, 10, 3))
	if !tm.IsOver() {
		t.Error("A 35-point gap after two rounds should end the tournament")
	}
	winner, _ := tm.Winner()
	if winner != cfg.AgentAName {
		t.Errorf("Expected %q, got %q", cfg.AgentAName, winner)
	}
}

func TestTournament_Summary(t *testing.T) {
	cfg := createTestConfig()
	tm := NewTournament(cfg)
	tm.RecordRound(roundWonBy(cfg, 1, cfg.AgentBName, 1, 7))

	sum := tm.Summary()
	if sum.Config != cfg.Name {
		t.Errorf("Expected config name %q, got %q", cfg.Name, sum.Config)
	}
	if sum.Agents != [2]string{cfg.AgentAName, cfg.AgentBName} {
		t.Errorf("Agent names wrong: %v", sum.Agents)
	}
	if len(sum.Rounds) != 1 || sum.Rounds[0].Winner != cfg.AgentBName {
		t.Error("Round history not recorded")
	}

	// The summary owns its round slice.
	sum.Rounds[0].Winner = "tampered"
	if tm.Summary().Rounds[0].Winner != cfg.AgentBName {
		t.Error("Summary aliases internal round history")
	}
}
