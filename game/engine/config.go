package engine

import (
	"encoding/json"
	"fmt"
	"os"
)

// MatchConfig is the flat, immutable parameter bundle supplied at tournament
// start. Durations are in seconds; the engine converts them to discrete ticks
// using TicksPerSecond.
type MatchConfig struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	GridWidth  int `json:"grid_width"`
	GridHeight int `json:"grid_height"`

	TicksPerSecond int     `json:"ticks_per_second"`
	RoundTime      float64 `json:"round_time"`
	MaxRounds      int     `json:"max_rounds"`

	InitialFood   int `json:"initial_food"`
	FoodValue     int `json:"food_value"`
	GrowthPerFood int `json:"growth_per_food"`

	TrapCount          int `json:"trap_count"`
	TrapPenalty        int `json:"trap_penalty"`
	TrapSegmentPenalty int `json:"trap_segment_penalty"`

	HeadCollisionPenalty    int     `json:"head_collision_penalty"`
	BodyCollisionPenalty    int     `json:"body_collision_penalty"`
	CollisionSegmentPenalty int     `json:"collision_segment_penalty"`
	ShieldDuration          float64 `json:"shield_duration"`

	AdvantageTime float64 `json:"advantage_time"`

	MinSnakeLength     int     `json:"min_snake_length"`
	MinSpawnSeparation float64 `json:"min_spawn_separation"`

	EarlyVictoryDiff         int `json:"early_victory_diff"`
	MinRoundsForEarlyVictory int `json:"min_rounds_for_early_victory"`

	// HeadToHeadBias selects how a head-to-head collision between snakes
	// with unequal scores is adjudicated: "trailing" penalizes only the
	// lower-scored snake, "both" penalizes both regardless of score.
	HeadToHeadBias string `json:"head_to_head_bias"`

	AllowNegativeScore bool `json:"allow_negative_score"`
	EndWhenCleared     bool `json:"end_when_cleared"`
	SwapSpawns         bool `json:"swap_spawns"`

	AgentAName string `json:"agent_a_name"`
	AgentBName string `json:"agent_b_name"`
}

// Head-to-head bias policies
const (
	BiasTrailing = "trailing"
	BiasBoth     = "both"
)

// DefaultMatchConfig returns the classic showdown parameters
func DefaultMatchConfig() *MatchConfig {
	return &MatchConfig{
		Name:                     "Classic Showdown",
		Description:              "Default two-snake tournament on a 40x30 grid",
		GridWidth:                40,
		GridHeight:               30,
		TicksPerSecond:           10,
		RoundTime:                55,
		MaxRounds:                3,
		InitialFood:              35,
		FoodValue:                1,
		GrowthPerFood:            2,
		TrapCount:                15,
		TrapPenalty:              2,
		TrapSegmentPenalty:       3,
		HeadCollisionPenalty:     4,
		BodyCollisionPenalty:     3,
		CollisionSegmentPenalty:  2,
		ShieldDuration:           2.0,
		AdvantageTime:            5,
		MinSnakeLength:           5,
		MinSpawnSeparation:       5,
		EarlyVictoryDiff:         20,
		MinRoundsForEarlyVictory: 2,
		HeadToHeadBias:           BiasTrailing,
		SwapSpawns:               true,
		AgentAName:               "Agent 1",
		AgentBName:               "Agent 2",
	}
}

// TickInterval returns the wall-clock seconds per simulation step
func (c *MatchConfig) TickInterval() float64 {
	return 1.0 / float64(c.TicksPerSecond)
}

// RoundTicks returns the round time limit in simulation steps
func (c *MatchConfig) RoundTicks() int {
	return int(c.RoundTime * float64(c.TicksPerSecond))
}

// ShieldTicks returns the shield duration in simulation steps
func (c *MatchConfig) ShieldTicks() int {
	return int(c.ShieldDuration * float64(c.TicksPerSecond))
}

// AdvantageTicks returns the advantage countdown in simulation steps
func (c *MatchConfig) AdvantageTicks() int {
	return int(c.AdvantageTime * float64(c.TicksPerSecond))
}

// ValidateMatchConfig validates a configuration for correctness and
// playability. It is the engine's only fatal-class error surface: an invalid
// configuration never reaches a live round.
func ValidateMatchConfig(c *MatchConfig) error {
	if c == nil {
		return fmt.Errorf("config validation: config is nil")
	}
	if c.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if c.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	if c.GridWidth < MinGridDimension || c.GridWidth > MaxGridDimension {
		return fmt.Errorf("config validation: grid_width must be between %d and %d, got %d", MinGridDimension, MaxGridDimension, c.GridWidth)
	}
	if c.GridHeight < MinGridDimension || c.GridHeight > MaxGridDimension {
		return fmt.Errorf("config validation: grid_height must be between %d and %d, got %d", MinGridDimension, MaxGridDimension, c.GridHeight)
	}

	if c.TicksPerSecond < 1 || c.TicksPerSecond > MaxTicksPerSecond {
		return fmt.Errorf("config validation: ticks_per_second must be between 1 and %d, got %d", MaxTicksPerSecond, c.TicksPerSecond)
	}
	if c.RoundTime <= 0 {
		return fmt.Errorf("config validation: round_time must be positive, got %v", c.RoundTime)
	}
	if c.MaxRounds < 1 {
		return fmt.Errorf("config validation: max_rounds must be at least 1, got %d", c.MaxRounds)
	}

	if c.InitialFood < 0 || c.TrapCount < 0 {
		return fmt.Errorf("config validation: initial_food and trap_count must not be negative")
	}
	if c.FoodValue < 1 {
		return fmt.Errorf("config validation: food_value must be at least 1, got %d", c.FoodValue)
	}
	if c.GrowthPerFood < 0 {
		return fmt.Errorf("config validation: growth_per_food must not be negative, got %d", c.GrowthPerFood)
	}
	if c.TrapPenalty < 0 || c.TrapSegmentPenalty < 0 {
		return fmt.Errorf("config validation: trap penalties must not be negative")
	}
	if c.HeadCollisionPenalty < 0 || c.BodyCollisionPenalty < 0 || c.CollisionSegmentPenalty < 0 {
		return fmt.Errorf("config validation: collision penalties must not be negative")
	}
	if c.ShieldDuration < 0 {
		return fmt.Errorf("config validation: shield_duration must not be negative, got %v", c.ShieldDuration)
	}
	if c.AdvantageTime < 0 {
		return fmt.Errorf("config validation: advantage_time must not be negative, got %v", c.AdvantageTime)
	}

	if c.MinSnakeLength < 1 {
		return fmt.Errorf("config validation: min_snake_length must be at least 1, got %d", c.MinSnakeLength)
	}
	if c.MinSpawnSeparation < 0 {
		return fmt.Errorf("config validation: min_spawn_separation must not be negative, got %v", c.MinSpawnSeparation)
	}

	if c.EarlyVictoryDiff < 0 {
		return fmt.Errorf("config validation: early_victory_diff must not be negative, got %d", c.EarlyVictoryDiff)
	}
	if c.MinRoundsForEarlyVictory < 0 {
		return fmt.Errorf("config validation: min_rounds_for_early_victory must not be negative, got %d", c.MinRoundsForEarlyVictory)
	}

	switch c.HeadToHeadBias {
	case BiasTrailing, BiasBoth:
	default:
		return fmt.Errorf("config validation: head_to_head_bias must be %q or %q, got %q", BiasTrailing, BiasBoth, c.HeadToHeadBias)
	}

	if c.AgentAName == "" || c.AgentBName == "" {
		return fmt.Errorf("config validation: agent_a_name and agent_b_name are required")
	}
	if c.AgentAName == c.AgentBName {
		return fmt.Errorf("config validation: agent names must differ, both are %q", c.AgentAName)
	}

	// The initial body extends opposite the default heading, so a spawn
	// column needs min_snake_length cells of horizontal room inside the
	// one-cell wall margin.
	if c.GridWidth-2 < c.MinSnakeLength {
		return fmt.Errorf("config validation: grid_width %d leaves no room for an initial body of %d segments", c.GridWidth, c.MinSnakeLength)
	}

	// Two snakes at minimum separation must fit inside the spawn area.
	maxSep := Distance(Position{1, 1}, Position{c.GridWidth - 2, c.GridHeight - 2})
	if c.MinSpawnSeparation > maxSep {
		return fmt.Errorf("config validation: min_spawn_separation %v exceeds the spawn area diagonal %.1f", c.MinSpawnSeparation, maxSep)
	}

	// Hazards plus both initial bodies must fit on the board.
	freeCells := c.GridWidth*c.GridHeight - 2*c.MinSnakeLength
	if c.InitialFood+c.TrapCount > freeCells {
		return fmt.Errorf("config validation: %d food and %d traps do not fit on a %dx%d grid with two snakes",
			c.InitialFood, c.TrapCount, c.GridWidth, c.GridHeight)
	}

	return nil
}

// LoadMatchConfig loads and validates a match configuration from a JSON file
func LoadMatchConfig(filename string) (*MatchConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var config MatchConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", filename, err)
	}

	if err := ValidateMatchConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filename, err)
	}

	return &config, nil
}
