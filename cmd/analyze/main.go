// Command analyze prints quick, human-readable heuristics about match
// configuration files in the project's configs directory. It summarizes grid
// dimensions, hazard densities, pacing (round length in ticks) and the
// scoring ceiling, and flags settings that make rounds degenerate.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wricardo/snake-showdown/game/engine"
)

func main() {
	dir := "configs"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		fmt.Printf("Error reading config directory %s: %v\n", dir, err)
		os.Exit(1)
	}

	found := 0
	for _, entry := range entries {
		if filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		found++
		fmt.Printf("\n=== Analyzing %s ===\n", entry.Name())
		analyzeConfig(filepath.Join(dir, entry.Name()))
	}
	if found == 0 {
		fmt.Printf("No config files found in %s\n", dir)
		os.Exit(1)
	}
}

func analyzeConfig(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		return
	}

	var cfg engine.MatchConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		fmt.Printf("Error parsing JSON: %v\n", err)
		return
	}

	area := cfg.GridWidth * cfg.GridHeight
	fmt.Printf("Name: %s\n", cfg.Name)
	fmt.Printf("Description: %s\n", cfg.Description)
	fmt.Printf("Grid: %dx%d (%d cells)\n", cfg.GridWidth, cfg.GridHeight, area)
	fmt.Printf("Rounds: %d x %.0fs at %d ticks/s (%d ticks per round)\n",
		cfg.MaxRounds, cfg.RoundTime, cfg.TicksPerSecond,
		int(cfg.RoundTime*float64(cfg.TicksPerSecond)))

	if area > 0 {
		fmt.Printf("Food: %d cells (%.1f%% of board), %d point(s) each, +%d segments per bite\n",
			cfg.InitialFood, pct(cfg.InitialFood, area), cfg.FoodValue, cfg.GrowthPerFood)
		fmt.Printf("Traps: %d cells (%.1f%% of board), -%d points and -%d segments each\n",
			cfg.TrapCount, pct(cfg.TrapCount, area), cfg.TrapPenalty, cfg.TrapSegmentPenalty)
	}
	fmt.Printf("Shield: %.1fs after contact | Advantage window: %.0fs\n",
		cfg.ShieldDuration, cfg.AdvantageTime)
	fmt.Printf("Early victory: lead of %d after %d round(s)\n",
		cfg.EarlyVictoryDiff, cfg.MinRoundsForEarlyVictory)

	warnHazards(&cfg, area)
	warnPacing(&cfg)
}

func pct(n, total int) float64 {
	return 100 * float64(n) / float64(total)
}

// warnHazards flags hazard settings that crowd the board or make food
// irrelevant to the outcome.
func warnHazards(cfg *engine.MatchConfig, area int) {
	occupied := 2*cfg.MinSnakeLength + cfg.InitialFood + cfg.TrapCount
	if area > 0 && occupied*2 > area {
		fmt.Printf("WARNING: board over half full at spawn (%d of %d cells)\n", occupied, area)
	}
	if cfg.TrapCount > cfg.InitialFood {
		fmt.Println("WARNING: more traps than food, expect low-scoring rounds")
	}
	maxScore := cfg.InitialFood * cfg.FoodValue
	if !cfg.EndWhenCleared && cfg.EarlyVictoryDiff > 0 && maxScore < cfg.EarlyVictoryDiff {
		fmt.Printf("NOTE: early victory lead %d exceeds one board's worth of food (%d points)\n",
			cfg.EarlyVictoryDiff, maxScore)
	}
}

// warnPacing flags rounds too short for the snakes to meaningfully interact
func warnPacing(cfg *engine.MatchConfig) {
	ticks := int(cfg.RoundTime * float64(cfg.TicksPerSecond))
	crossing := cfg.GridWidth + cfg.GridHeight
	if ticks < crossing*2 {
		fmt.Printf("WARNING: round only %d ticks, crossing the board takes about %d\n",
			ticks, crossing)
	}
}
