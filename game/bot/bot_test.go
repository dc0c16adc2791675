package bot

import (
	"math/rand"
	"testing"

	"github.com/wricardo/snake-showdown/game/engine"
)

// buildSnapshot makes a 20x15 snapshot with two straight rightward snakes
// and the given hazards.
func buildSnapshot(headA, headB engine.Position, food, traps []engine.Position) *engine.RoundSnapshot {
	makeView := func(name string, head engine.Position) engine.SnakeView {
		segs := make([]engine.Position, 4)
		for i := range segs {
			segs[i] = engine.Position{X: head.X - i, Y: head.Y}
		}
		return engine.SnakeView{
			Name:      name,
			Segments:  segs,
			Direction: "right",
			Length:    len(segs),
			Alive:     true,
		}
	}
	return &engine.RoundSnapshot{
		Round:      1,
		State:      engine.StatePlaying,
		GridWidth:  20,
		GridHeight: 15,
		Snakes: [2]engine.SnakeView{
			makeView("Agent 1", headA),
			makeView("Agent 2", headB),
		},
		Food:  food,
		Traps: traps,
	}
}

func TestNew(t *testing.T) {
	for _, name := range Names() {
		p, err := New(name, 1)
		if err != nil {
			t.Errorf("New(%q) failed: %v", name, err)
			continue
		}
		if p.Name() != name {
			t.Errorf("Expected name %q, got %q", name, p.Name())
		}
	}
	if _, err := New("minimax", 1); err == nil {
		t.Error("Expected error for unknown policy name")
	}
}

func TestCandidateMoves_ExcludesReversal(t *testing.T) {
	snap := buildSnapshot(engine.Position{X: 8, Y: 5}, engine.Position{X: 8, Y: 10}, nil, nil)
	moves := candidateMoves(snap.View(0))

	if len(moves) != 3 {
		t.Fatalf("Expected 3 candidates, got %d", len(moves))
	}
	for _, d := range moves {
		if d == engine.Left {
			t.Error("Reversal must not be a candidate for a rightward snake")
		}
	}
}

func TestBoard_SafeAndBlocked(t *testing.T) {
	snap := buildSnapshot(engine.Position{X: 8, Y: 5}, engine.Position{X: 8, Y: 10}, nil, nil)
	b := newBoard(snap)

	if b.safe(engine.Position{X: 7, Y: 5}) {
		t.Error("A body cell must not be safe")
	}
	if b.safe(engine.Position{X: -1, Y: 5}) || b.safe(engine.Position{X: 8, Y: 15}) {
		t.Error("Out-of-bounds cells must not be safe")
	}
	if !b.safe(engine.Position{X: 9, Y: 5}) {
		t.Error("The cell ahead should be safe")
	}
}

func TestBoard_FreeSpace(t *testing.T) {
	snap := buildSnapshot(engine.Position{X: 8, Y: 5}, engine.Position{X: 8, Y: 10}, nil, nil)
	b := newBoard(snap)

	if got := b.freeSpace(engine.Position{X: 9, Y: 5}, 50); got != 50 {
		t.Errorf("Open board should hit the cap, got %d", got)
	}
	if got := b.freeSpace(engine.Position{X: 7, Y: 5}, 50); got != 0 {
		t.Errorf("A blocked start has no free space, got %d", got)
	}

	// Wall off a 1-cell pocket and confirm the fill stays inside it.
	pocket := engine.Position{X: 0, Y: 0}
	snap.Snakes[0].Segments = []engine.Position{{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	b = newBoard(snap)
	if got := b.freeSpace(pocket, 50); got != 1 {
		t.Errorf("Expected a 1-cell pocket, got %d", got)
	}
}

func TestRandom_PrefersSafeMoves(t *testing.T) {
	// Top-right corner: up and right both leave the grid, down is the only
	// move that survives.
	snap := buildSnapshot(engine.Position{X: 19, Y: 0}, engine.Position{X: 8, Y: 10}, nil, nil)
	p, err := New(RandomName, 3)
	if err != nil {
		t.Fatal(err)
	}

	// Right exits the grid and up is out of bounds; down is the only safe
	// candidate every time.
	for i := 0; i < 20; i++ {
		if d := p.Decide(snap, 0); d != engine.Down {
			t.Fatalf("Expected the only safe move down, got %v", d)
		}
	}
}

func TestRandom_Deterministic(t *testing.T) {
	snap := buildSnapshot(engine.Position{X: 8, Y: 5}, engine.Position{X: 8, Y: 10}, nil, nil)

	run := func() []engine.Direction {
		p := NewRandom(rand.New(rand.NewSource(42)))
		out := make([]engine.Direction, 10)
		for i := range out {
			out[i] = p.Decide(snap, 0)
		}
		return out
	}

	a := run()
	b := run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Seeded random diverged at %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestGreedy_ChasesNearestFood(t *testing.T) {
	food := []engine.Position{{X: 8, Y: 2}, {X: 15, Y: 13}}
	snap := buildSnapshot(engine.Position{X: 8, Y: 5}, engine.Position{X: 2, Y: 12}, food, nil)
	g := NewGreedy(DefaultWeights())

	if d := g.Decide(snap, 0); d != engine.Up {
		t.Errorf("Expected up toward the nearest food, got %v", d)
	}
}

func TestGreedy_AvoidsTraps(t *testing.T) {
	// Food straight up, but the cell on the way is trapped.
	food := []engine.Position{{X: 8, Y: 2}}
	traps := []engine.Position{{X: 8, Y: 4}}
	snap := buildSnapshot(engine.Position{X: 8, Y: 5}, engine.Position{X: 2, Y: 12}, food, traps)
	g := NewGreedy(DefaultWeights())

	if d := g.Decide(snap, 0); d == engine.Up {
		t.Error("Greedy should route around a trapped cell")
	}
}

func TestGreedy_DeterministicTieBreak(t *testing.T) {
	// No food, open board: every safe move scores alike, so the fixed
	// order picks the first candidate.
	snap := buildSnapshot(engine.Position{X: 8, Y: 7}, engine.Position{X: 8, Y: 12}, nil, nil)
	g := NewGreedy(DefaultWeights())

	first := g.Decide(snap, 0)
	for i := 0; i < 5; i++ {
		if d := g.Decide(snap, 0); d != first {
			t.Fatalf("Tie-break not deterministic: %v vs %v", first, d)
		}
	}
}

func TestGreedy_NeverPicksFatalMoveWhenSafeExists(t *testing.T) {
	// Corner the snake so only one move survives.
	snap := buildSnapshot(engine.Position{X: 19, Y: 0}, engine.Position{X: 8, Y: 10}, nil, nil)
	g := NewGreedy(DefaultWeights())

	if d := g.Decide(snap, 0); d != engine.Down {
		t.Errorf("Expected the only safe move down, got %v", d)
	}
}

func TestStrategic_IgnoresContestedFood(t *testing.T) {
	// One food right next to the opponent, one a bit farther from us but
	// uncontested. Strategic goes for the winnable one.
	food := []engine.Position{{X: 9, Y: 10}, {X: 8, Y: 1}}
	snap := buildSnapshot(engine.Position{X: 8, Y: 5}, engine.Position{X: 8, Y: 10}, food, nil)
	s := NewStrategic(DefaultWeights())

	if d := s.Decide(snap, 0); d != engine.Up {
		t.Errorf("Expected up toward the uncontested food, got %v", d)
	}
}

func TestStrategic_AvoidsPredictedOpponentPath(t *testing.T) {
	w := DefaultWeights()
	s := NewStrategic(w)
	snap := buildSnapshot(engine.Position{X: 8, Y: 5}, engine.Position{X: 8, Y: 7}, nil, nil)
	b := newBoard(snap)

	predicted := s.predictOpponent(b, snap.View(1))
	if len(predicted) == 0 {
		t.Fatal("Expected a non-empty opponent prediction")
	}
	if len(predicted) > w.PredictionDepth {
		t.Errorf("Prediction longer than depth %d: %d cells", w.PredictionDepth, len(predicted))
	}
	for p, step := range predicted {
		if step < 1 || step > w.PredictionDepth {
			t.Errorf("Cell %v at invalid step %d", p, step)
		}
		if !b.safe(p) {
			t.Errorf("Predicted cell %v is not even safe", p)
		}
	}
}

func TestStrategic_DangerAggregation(t *testing.T) {
	snap := buildSnapshot(engine.Position{X: 8, Y: 7}, engine.Position{X: 12, Y: 11}, nil, nil)
	s := NewStrategic(DefaultWeights())
	b := newBoard(snap)
	view, opponent := snap.View(0), snap.View(1)

	if got := s.dangerAt(b, engine.Position{X: 8, Y: 6}, view, opponent); got != 0 {
		t.Errorf("Open center cell should carry no danger, got %f", got)
	}
	if got := s.dangerAt(b, engine.Position{X: 8, Y: 0}, view, opponent); got != 1.0 {
		t.Errorf("Border cell should carry full wall danger, got %f", got)
	}
	// One own body segment next to the cell closes an escape route.
	if got := s.dangerAt(b, engine.Position{X: 6, Y: 6}, view, opponent); got <= 0.3 || got >= 0.4 {
		t.Errorf("Cell beside own body should score about a third, got %f", got)
	}

	// Beside the head and body of an opponent that is at least as long.
	nearOpp := s.dangerAt(b, engine.Position{X: 11, Y: 10}, view, opponent)
	if nearOpp <= 0.5 {
		t.Errorf("Cell beside the opponent's head should be risky, got %f", nearOpp)
	}

	// A shorter opponent's head is not a cutoff threat; only its body counts.
	short := buildSnapshot(engine.Position{X: 8, Y: 7}, engine.Position{X: 12, Y: 11}, nil, nil)
	short.Snakes[1].Segments = short.Snakes[1].Segments[:2]
	short.Snakes[1].Length = 2
	nearShort := s.dangerAt(newBoard(short), engine.Position{X: 11, Y: 10}, short.View(0), short.View(1))
	if nearShort >= nearOpp {
		t.Errorf("Shorter opponent should be less dangerous: %f vs %f", nearShort, nearOpp)
	}
}

func TestStrategic_SteersAwayFromWalls(t *testing.T) {
	// No food anywhere, opponent far away: wall proximity is the only
	// differentiator between the candidates.
	snap := buildSnapshot(engine.Position{X: 8, Y: 1}, engine.Position{X: 15, Y: 12}, nil, nil)
	s := NewStrategic(DefaultWeights())

	if d := s.Decide(snap, 0); d != engine.Down {
		t.Errorf("Expected down away from the top wall, got %v", d)
	}
}

func TestStrategic_FallsBackWhenTrapped(t *testing.T) {
	// Box the snake in completely; strategic must still return a move.
	snap := buildSnapshot(engine.Position{X: 8, Y: 5}, engine.Position{X: 8, Y: 10}, nil, nil)
	snap.Snakes[0].Segments = []engine.Position{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}}
	snap.Snakes[0].Direction = "up"
	s := NewStrategic(DefaultWeights())

	d := s.Decide(snap, 0)
	if d != engine.Up && d != engine.Down && d != engine.Left && d != engine.Right {
		t.Errorf("Expected some direction even when trapped, got %v", d)
	}
}

func TestPoliciesDoNotMutateSnapshot(t *testing.T) {
	food := []engine.Position{{X: 4, Y: 4}}
	traps := []engine.Position{{X: 10, Y: 10}}
	snap := buildSnapshot(engine.Position{X: 8, Y: 5}, engine.Position{X: 8, Y: 10}, food, traps)
	headBefore := snap.Snakes[0].Segments[0]
	foodBefore := snap.Food[0]

	for _, name := range Names() {
		p, err := New(name, 9)
		if err != nil {
			t.Fatal(err)
		}
		p.Decide(snap, 0)
		p.Decide(snap, 1)
	}

	if snap.Snakes[0].Segments[0] != headBefore || snap.Food[0] != foodBefore {
		t.Error("A policy mutated the snapshot")
	}
}
