// Package config provides configuration management for the snake showdown.
//
// The config package handles:
//   - Loading match configurations from JSON files
//   - Configuration validation and verification
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Match configurations are stored as JSON files in the configs directory.
// Each configuration defines:
//   - Grid dimensions and simulation tick rate
//   - Round timing, round count, and early-victory thresholds
//   - Food, trap, and collision penalty parameters
//   - Shield and advantage windows
//
// Available Configurations:
//
// The package ships with several tournament styles:
//   - classic: the standard 40x30 three-round showdown
//   - blitz: a small fast board with short rounds
//   - endurance: a large sparse board with long rounds
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Load specific configuration
//	matchConfig, err := manager.LoadConfig("blitz")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Get default configuration
//	defaultConfig := manager.GetDefault()
//
//	// List available configurations
//	configs, err := manager.ListConfigs()
//
// Validation:
//
// All configurations are validated for:
//   - Grid dimensions within the engine's supported range
//   - Positive timing parameters and round counts
//   - Non-negative penalties and hazard counts
//   - Room for both initial snake bodies and all hazards
package config
