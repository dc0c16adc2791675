// Command validate checks the match configuration JSON files in the
// ../configs directory (or the files given as arguments). It checks:
//   - JSON structure and required fields
//   - Grid bounds and snake length constraints
//   - Hazard counts against the board's free capacity
//   - Spawn separation feasibility on the configured grid
//   - Tournament settings (rounds, early victory thresholds)
package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/snake-showdown/game/engine"
)

func main() {
	paths := os.Args[1:]
	if len(paths) == 0 {
		dir := filepath.Join("..", "configs")
		if _, err := os.Stat("configs"); err == nil {
			dir = "configs"
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			fmt.Printf("Error reading config directory %s: %v\n", dir, err)
			os.Exit(1)
		}
		for _, entry := range entries {
			if strings.HasSuffix(entry.Name(), ".json") {
				paths = append(paths, filepath.Join(dir, entry.Name()))
			}
		}
	}

	if len(paths) == 0 {
		fmt.Println("No config files found")
		os.Exit(1)
	}

	failed := 0
	for _, path := range paths {
		fmt.Printf("Validating %s...\n", path)
		if errs := validateConfigFile(path); len(errs) > 0 {
			failed++
			for _, e := range errs {
				fmt.Printf("  ERROR: %v\n", e)
			}
		} else {
			fmt.Println("  OK")
		}
	}

	if failed > 0 {
		fmt.Printf("\n%d of %d config(s) failed validation\n", failed, len(paths))
		os.Exit(1)
	}
	fmt.Printf("\nAll %d config(s) valid\n", len(paths))
}

// validateConfigFile runs structural validation plus feasibility checks that
// the engine's own validator does not cover.
func validateConfigFile(path string) []error {
	var errs []error

	data, err := os.ReadFile(path)
	if err != nil {
		return []error{fmt.Errorf("reading file: %w", err)}
	}

	var cfg engine.MatchConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return []error{fmt.Errorf("parsing JSON: %w", err)}
	}

	if err := engine.ValidateMatchConfig(&cfg); err != nil {
		errs = append(errs, err)
	}

	errs = append(errs, checkCapacity(&cfg)...)
	errs = append(errs, checkSpawns(&cfg)...)
	return errs
}

// checkCapacity verifies the board can hold both snakes plus every food and
// trap cell at round start. Food, traps and snake bodies never share cells.
func checkCapacity(cfg *engine.MatchConfig) []error {
	var errs []error
	area := cfg.GridWidth * cfg.GridHeight
	occupied := 2*cfg.MinSnakeLength + cfg.InitialFood + cfg.TrapCount
	if occupied > area {
		errs = append(errs, fmt.Errorf(
			"board too small: %d cells needed at round start but grid has %d", occupied, area))
	} else if area > 0 && occupied*2 > area {
		errs = append(errs, fmt.Errorf(
			"board over half full at round start (%d of %d cells), snakes have little room to grow",
			occupied, area))
	}
	return errs
}

// checkSpawns verifies the spawn separation requirement is satisfiable.
// Separation is Euclidean, so the farthest two cells sit on the diagonal.
func checkSpawns(cfg *engine.MatchConfig) []error {
	var errs []error
	maxSeparation := math.Hypot(float64(cfg.GridWidth-1), float64(cfg.GridHeight-1))
	if cfg.MinSpawnSeparation > maxSeparation {
		errs = append(errs, fmt.Errorf(
			"min_spawn_separation %.1f exceeds the grid's diagonal %.1f",
			cfg.MinSpawnSeparation, maxSeparation))
	}
	return errs
}
