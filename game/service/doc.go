// Package service provides the business logic layer for the snake showdown.
//
// The service package implements:
//   - Multi-match tournament management
//   - Configuration management and loading
//   - Step, intent, and round advancement processing
//   - Match lifecycle management
//
// Core Interfaces:
//
// MatchService is the main service interface providing high-level match operations.
// MatchManager handles match creation, retrieval, and lifecycle.
// ConfigManager manages match configuration loading and validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine, providing match isolation, configuration management, and
// business logic orchestration. Each match owns its own round controller and
// tournament standings with independent state.
//
// Usage:
//
//	matchMgr := match.NewManager()
//	configMgr := config.NewManager("configs")
//	matchService := service.NewMatchService(matchMgr, configMgr)
//
//	// Create a new match
//	info, err := matchService.CreateMatch(ctx, service.CreateMatchRequest{
//		ConfigName: "classic",
//		PolicyA:    "greedy",
//		PolicyB:    "strategic",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Play it out
//	summary, err := matchService.RunMatch(ctx, info.ID)
//
// Match Management:
//
// Matches are identified by unique 4-character IDs and maintain independent
// tournament state. Multiple matches can run concurrently with different
// configurations. Matches track creation time and last access time so idle
// ones can be expired.
package service
