package engine

import (
	"math/rand"
	"testing"
)

func TestHazardSet_Basics(t *testing.T) {
	h := NewHazardSet()
	if h.Len() != 0 {
		t.Fatalf("Expected empty set, got %d", h.Len())
	}

	h.Positions = append(h.Positions, Position{3, 4}, Position{5, 6})
	if !h.Contains(Position{3, 4}) {
		t.Error("Contains missed an inserted cell")
	}
	if h.Contains(Position{1, 1}) {
		t.Error("Contains reported a free cell")
	}

	if !h.ConsumeAt(Position{3, 4}) {
		t.Error("ConsumeAt should remove an occupied cell")
	}
	if h.ConsumeAt(Position{3, 4}) {
		t.Error("ConsumeAt should fail on an already consumed cell")
	}
	if h.Len() != 1 {
		t.Errorf("Expected 1 cell left, got %d", h.Len())
	}
}

func TestHazardSet_SpawnMultiple(t *testing.T) {
	cfg := createTestConfig()
	rng := rand.New(rand.NewSource(42))
	h := NewHazardSet()

	n := h.SpawnMultiple(10, rng, cfg)
	if n != 10 || h.Len() != 10 {
		t.Fatalf("Expected 10 spawned, got %d (len %d)", n, h.Len())
	}

	seen := make(map[Position]struct{})
	for _, p := range h.Positions {
		if p.X < 1 || p.X > cfg.GridWidth-2 || p.Y < 1 || p.Y > cfg.GridHeight-2 {
			t.Errorf("Cell %v outside the wall margin", p)
		}
		if _, dup := seen[p]; dup {
			t.Errorf("Duplicate cell %v", p)
		}
		seen[p] = struct{}{}
	}
}

func TestHazardSet_SpawnRespectsExclusions(t *testing.T) {
	cfg := createTestConfig()
	rng := rand.New(rand.NewSource(7))
	h := NewHazardSet()

	blocked := []Position{}
	for y := 1; y < cfg.GridHeight-1; y++ {
		for x := 1; x < cfg.GridWidth-1; x++ {
			if (x+y)%2 == 0 {
				blocked = append(blocked, Position{x, y})
			}
		}
	}

	h.SpawnMultiple(20, rng, cfg, blocked)
	for _, p := range h.Positions {
		for _, b := range blocked {
			if p == b {
				t.Fatalf("Spawned on excluded cell %v", p)
			}
		}
	}
}

func TestHazardSet_SpawnDegradesOnFullBoard(t *testing.T) {
	cfg := createTestConfig()
	rng := rand.New(rand.NewSource(1))
	h := NewHazardSet()

	interior := (cfg.GridWidth - 2) * (cfg.GridHeight - 2)
	n := h.SpawnMultiple(interior+50, rng, cfg)
	if n != interior {
		t.Errorf("Expected %d spawned on a full board, got %d", interior, n)
	}
	if got := h.SpawnMultiple(5, rng, cfg); got != 0 {
		t.Errorf("Expected 0 spawned with no free cells, got %d", got)
	}
}

func TestHazardSet_SpawnDeterministicPerSeed(t *testing.T) {
	cfg := createTestConfig()

	a := NewHazardSet()
	a.SpawnMultiple(15, rand.New(rand.NewSource(99)), cfg)
	b := NewHazardSet()
	b.SpawnMultiple(15, rand.New(rand.NewSource(99)), cfg)

	if len(a.Positions) != len(b.Positions) {
		t.Fatalf("Seeded spawns diverged in count: %d vs %d", len(a.Positions), len(b.Positions))
	}
	for i := range a.Positions {
		if a.Positions[i] != b.Positions[i] {
			t.Fatalf("Seeded spawns diverged at %d: %v vs %v", i, a.Positions[i], b.Positions[i])
		}
	}
}

func TestSpawnStartPositions(t *testing.T) {
	cfg := createTestConfig()
	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		a, b := SpawnStartPositions(rng, cfg)

		for _, p := range []Position{a, b} {
			if p.X < cfg.MinSnakeLength || p.X > cfg.GridWidth-2 {
				t.Errorf("seed %d: head %v leaves no room for the initial body", seed, p)
			}
			if p.Y < 1 || p.Y > cfg.GridHeight-2 {
				t.Errorf("seed %d: head %v outside the wall margin", seed, p)
			}
		}
		if Distance(a, b) < cfg.MinSpawnSeparation {
			t.Errorf("seed %d: heads %v and %v too close", seed, a, b)
		}
		if a.Y == b.Y {
			lo, hi := a.X, b.X
			if lo > hi {
				lo, hi = hi, lo
			}
			if hi-lo < cfg.MinSnakeLength {
				t.Errorf("seed %d: initial bodies at %v and %v would overlap", seed, a, b)
			}
		}
	}
}
