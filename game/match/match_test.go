package match

import (
	"testing"

	"github.com/wricardo/snake-showdown/game/engine"
)

func createTestConfig() *engine.MatchConfig {
	cfg := engine.DefaultMatchConfig()
	cfg.Name = "Match Test Config"
	cfg.Description = "Configuration for match tests"
	cfg.GridWidth = 20
	cfg.GridHeight = 15
	cfg.RoundTime = 5
	cfg.MaxRounds = 3
	cfg.InitialFood = 10
	cfg.TrapCount = 5
	cfg.EarlyVictoryDiff = 0
	return cfg
}

func createBotMatch(t *testing.T, cfg *engine.MatchConfig, seed int64) *Match {
	t.Helper()
	policies, err := BuildPolicies([2]string{"greedy", "random"}, seed)
	if err != nil {
		t.Fatalf("Failed to build policies: %v", err)
	}
	m, err := NewMatch("test", cfg, policies[0], policies[1], seed)
	if err != nil {
		t.Fatalf("Failed to create match: %v", err)
	}
	return m
}

func TestNewMatch(t *testing.T) {
	m := createBotMatch(t, createTestConfig(), 42)

	if m.Finished() {
		t.Error("A fresh match must not be finished")
	}
	if m.PolicyNames != [2]string{"greedy", "random"} {
		t.Errorf("Policy names wrong: %v", m.PolicyNames)
	}

	snap := m.Snapshot()
	if snap.State != engine.StatePlaying {
		t.Errorf("Expected a playing round, got %q", snap.State)
	}
	if snap.Round == nil {
		t.Fatal("Expected a round snapshot")
	}
	if snap.RoundsPlayed != 0 || snap.MaxRounds != 3 {
		t.Errorf("Standings header wrong: %d/%d", snap.RoundsPlayed, snap.MaxRounds)
	}
}

func TestNewMatch_InvalidConfig(t *testing.T) {
	cfg := createTestConfig()
	cfg.GridWidth = 2
	if _, err := NewMatch("bad", cfg, nil, nil, 1); err == nil {
		t.Error("Expected error for invalid config")
	}
}

func TestMatch_StepAndAdvance(t *testing.T) {
	m := createBotMatch(t, createTestConfig(), 42)

	if err := m.AdvanceRound(); err != ErrRoundRunning {
		t.Errorf("Expected ErrRoundRunning mid-round, got %v", err)
	}

	for {
		playing, err := m.Step()
		if err != nil {
			t.Fatalf("Step failed: %v", err)
		}
		if !playing {
			break
		}
	}

	snap := m.Snapshot()
	if snap.State != engine.StateRoundOver {
		t.Fatalf("Expected round over, got %q", snap.State)
	}
	if snap.Round.Result == nil {
		t.Error("Finished round snapshot should carry the result")
	}

	if err := m.AdvanceRound(); err != nil {
		t.Fatalf("AdvanceRound failed: %v", err)
	}
	snap = m.Snapshot()
	if snap.RoundsPlayed != 1 {
		t.Errorf("Expected 1 round recorded, got %d", snap.RoundsPlayed)
	}
	if snap.State != engine.StatePlaying {
		t.Errorf("Expected the next round to be playing, got %q", snap.State)
	}
	if snap.Round.Round != 2 {
		t.Errorf("Expected round number 2, got %d", snap.Round.Round)
	}
}

func TestMatch_RunToCompletion(t *testing.T) {
	m := createBotMatch(t, createTestConfig(), 42)

	sum, err := m.RunToCompletion()
	if err != nil {
		t.Fatalf("RunToCompletion failed: %v", err)
	}
	if !m.Finished() {
		t.Error("Match should be finished")
	}
	if len(sum.Rounds) < 1 || len(sum.Rounds) > 3 {
		t.Errorf("Expected 1 to 3 rounds, got %d", len(sum.Rounds))
	}

	snap := m.Snapshot()
	if snap.State != engine.StateTournamentEnd {
		t.Errorf("Expected tournament end, got %q", snap.State)
	}
	if snap.Summary == nil {
		t.Error("Final snapshot should carry the summary")
	}

	// Everything after the end fails fast.
	if _, err := m.Step(); err != ErrMatchFinished {
		t.Errorf("Expected ErrMatchFinished from Step, got %v", err)
	}
	if err := m.AdvanceRound(); err != ErrMatchFinished {
		t.Errorf("Expected ErrMatchFinished from AdvanceRound, got %v", err)
	}
}

func TestMatch_Deterministic(t *testing.T) {
	run := func() *engine.Summary {
		m := createBotMatch(t, createTestConfig(), 1234)
		sum, err := m.RunToCompletion()
		if err != nil {
			t.Fatalf("RunToCompletion failed: %v", err)
		}
		return sum
	}

	a := run()
	b := run()
	if a.Winner != b.Winner || a.Wins != b.Wins || a.TotalScores != b.TotalScores ||
		len(a.Rounds) != len(b.Rounds) {
		t.Errorf("Same seed produced different tournaments:\n%+v\n%+v", a, b)
	}
	for i := range a.Rounds {
		if a.Rounds[i].Cause != b.Rounds[i].Cause || a.Rounds[i].Winner != b.Rounds[i].Winner {
			t.Errorf("Round %d diverged: %+v vs %+v", i+1, a.Rounds[i], b.Rounds[i])
		}
	}
}

func TestMatch_SubmitIntent(t *testing.T) {
	cfg := createTestConfig()
	policies, err := BuildPolicies([2]string{ExternalPolicy, "greedy"}, 7)
	if err != nil {
		t.Fatal(err)
	}
	m, err := NewMatch("ext", cfg, policies[0], policies[1], 7)
	if err != nil {
		t.Fatal(err)
	}

	if m.PolicyNames[engine.SlotA] != ExternalPolicy {
		t.Errorf("Expected external slot A, got %q", m.PolicyNames[engine.SlotA])
	}

	if err := m.SubmitIntent(5, engine.Up); err != ErrInvalidSlot {
		t.Errorf("Expected ErrInvalidSlot for slot 5, got %v", err)
	}
	if err := m.SubmitIntent(engine.SlotB, engine.Up); err != ErrInvalidSlot {
		t.Errorf("Expected ErrInvalidSlot for a policy slot, got %v", err)
	}

	if err := m.SubmitIntent(engine.SlotA, engine.Up); err != nil {
		t.Fatalf("SubmitIntent failed: %v", err)
	}
	if _, err := m.Step(); err != nil {
		t.Fatal(err)
	}
	if dir := m.Snapshot().Round.Snakes[engine.SlotA].Direction; dir != "up" {
		t.Errorf("Expected the submitted intent applied, heading %q", dir)
	}

	// The intent is consumed; the next step holds the heading.
	if _, err := m.Step(); err != nil {
		t.Fatal(err)
	}
	if dir := m.Snapshot().Round.Snakes[engine.SlotA].Direction; dir != "up" {
		t.Errorf("Expected the heading held, got %q", dir)
	}
}

func TestMatch_SwapSpawns(t *testing.T) {
	cfg := createTestConfig()
	cfg.SwapSpawns = true
	m := createBotMatch(t, cfg, 99)

	for {
		playing, err := m.Step()
		if err != nil {
			t.Fatal(err)
		}
		if !playing {
			break
		}
	}
	if err := m.AdvanceRound(); err != nil {
		t.Fatal(err)
	}
	if m.Finished() {
		t.Skip("Tournament ended after one round")
	}

	// Round 2 draws the same seeded spawn pair but hands slot A the other
	// cell.
	_, swapped := engine.SpawnStartPositions(m.roundRNG(2), cfg)
	secondSpawn := m.Snapshot().Round.Snakes[engine.SlotA].Segments[0]
	if secondSpawn != swapped {
		t.Errorf("Expected slot A at the swapped spawn %v, got %v", swapped, secondSpawn)
	}
}
