package engine

import (
	"os"
	"path/filepath"
	"testing"
)

func createTestConfig() *MatchConfig {
	cfg := DefaultMatchConfig()
	cfg.Name = "Engine Test Config"
	cfg.Description = "Configuration for engine tests"
	cfg.GridWidth = 20
	cfg.GridHeight = 15
	cfg.InitialFood = 10
	cfg.TrapCount = 5
	return cfg
}

func TestDefaultMatchConfig(t *testing.T) {
	cfg := DefaultMatchConfig()
	if err := ValidateMatchConfig(cfg); err != nil {
		t.Fatalf("Default config should validate: %v", err)
	}
	if cfg.GridWidth != 40 || cfg.GridHeight != 30 {
		t.Errorf("Expected 40x30 grid, got %dx%d", cfg.GridWidth, cfg.GridHeight)
	}
	if cfg.MaxRounds != 3 {
		t.Errorf("Expected 3 rounds, got %d", cfg.MaxRounds)
	}
	if cfg.HeadToHeadBias != BiasTrailing {
		t.Errorf("Expected trailing bias, got %q", cfg.HeadToHeadBias)
	}
}

func TestMatchConfig_DerivedTicks(t *testing.T) {
	cfg := createTestConfig()
	cfg.TicksPerSecond = 10
	cfg.RoundTime = 55
	cfg.ShieldDuration = 2.0
	cfg.AdvantageTime = 5

	if got := cfg.RoundTicks(); got != 550 {
		t.Errorf("Expected 550 round ticks, got %d", got)
	}
	if got := cfg.ShieldTicks(); got != 20 {
		t.Errorf("Expected 20 shield ticks, got %d", got)
	}
	if got := cfg.AdvantageTicks(); got != 50 {
		t.Errorf("Expected 50 advantage ticks, got %d", got)
	}
	if got := cfg.TickInterval(); got != 0.1 {
		t.Errorf("Expected 0.1s tick interval, got %v", got)
	}
}

func TestValidateMatchConfig_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*MatchConfig)
	}{
		{"missing name", func(c *MatchConfig) { c.Name = "" }},
		{"missing description", func(c *MatchConfig) { c.Description = "" }},
		{"grid too small", func(c *MatchConfig) { c.GridWidth = 5 }},
		{"grid too large", func(c *MatchConfig) { c.GridHeight = 500 }},
		{"zero tick rate", func(c *MatchConfig) { c.TicksPerSecond = 0 }},
		{"negative round time", func(c *MatchConfig) { c.RoundTime = -1 }},
		{"zero rounds", func(c *MatchConfig) { c.MaxRounds = 0 }},
		{"negative food", func(c *MatchConfig) { c.InitialFood = -1 }},
		{"zero food value", func(c *MatchConfig) { c.FoodValue = 0 }},
		{"negative trap penalty", func(c *MatchConfig) { c.TrapPenalty = -1 }},
		{"negative shield", func(c *MatchConfig) { c.ShieldDuration = -0.5 }},
		{"zero min length", func(c *MatchConfig) { c.MinSnakeLength = 0 }},
		{"unknown bias", func(c *MatchConfig) { c.HeadToHeadBias = "leading" }},
		{"duplicate agent names", func(c *MatchConfig) { c.AgentBName = c.AgentAName }},
		{"empty agent name", func(c *MatchConfig) { c.AgentAName = "" }},
		{"no room for body", func(c *MatchConfig) { c.GridWidth = 10; c.MinSnakeLength = 9 }},
		{"separation exceeds board", func(c *MatchConfig) { c.MinSpawnSeparation = 1000 }},
		{"hazards exceed board", func(c *MatchConfig) { c.InitialFood = 1000; c.TrapCount = 1000 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := createTestConfig()
			tt.mutate(cfg)
			if err := ValidateMatchConfig(cfg); err == nil {
				t.Error("Expected validation error, got nil")
			}
		})
	}
}

func TestValidateMatchConfig_Nil(t *testing.T) {
	if err := ValidateMatchConfig(nil); err == nil {
		t.Error("Expected error for nil config")
	}
}

func TestLoadMatchConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.json")
	content := `{
		"name": "File Config",
		"description": "Loaded from disk",
		"grid_width": 20,
		"grid_height": 15,
		"ticks_per_second": 10,
		"round_time": 30,
		"max_rounds": 3,
		"initial_food": 10,
		"food_value": 1,
		"growth_per_food": 2,
		"trap_count": 5,
		"trap_penalty": 2,
		"trap_segment_penalty": 3,
		"head_collision_penalty": 4,
		"body_collision_penalty": 3,
		"collision_segment_penalty": 2,
		"shield_duration": 2.0,
		"advantage_time": 5,
		"min_snake_length": 5,
		"min_spawn_separation": 5,
		"early_victory_diff": 20,
		"min_rounds_for_early_victory": 2,
		"head_to_head_bias": "trailing",
		"agent_a_name": "Alpha",
		"agent_b_name": "Beta"
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write temp config: %v", err)
	}

	cfg, err := LoadMatchConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Name != "File Config" {
		t.Errorf("Expected name 'File Config', got %q", cfg.Name)
	}
	if cfg.AgentAName != "Alpha" || cfg.AgentBName != "Beta" {
		t.Errorf("Agent names not loaded: %q, %q", cfg.AgentAName, cfg.AgentBName)
	}
}

func TestLoadMatchConfig_Errors(t *testing.T) {
	if _, err := LoadMatchConfig("/nonexistent/path.json"); err == nil {
		t.Error("Expected error for missing file")
	}

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	if _, err := LoadMatchConfig(bad); err == nil {
		t.Error("Expected error for malformed JSON")
	}

	invalid := filepath.Join(dir, "invalid.json")
	if err := os.WriteFile(invalid, []byte(`{"name": "x"}`), 0o644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	if _, err := LoadMatchConfig(invalid); err == nil {
		t.Error("Expected validation error for incomplete config")
	}
}
