// Package mcp provides a Model Context Protocol server for the snake showdown.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for match operations
//   - Board rendering for text-based play
//   - Stdio and HTTP transport modes
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - create_match: Start a match with config, policy, and seed selection
//   - list_matches: List all active matches
//   - get_match: Get specific match details
//   - match_state: Current round state with an ASCII board rendering
//   - submit_intent: Queue a direction for an externally controlled snake
//   - step: Advance the simulation by whole steps
//   - advance_round: Record a finished round and start the next one
//   - run_match: Run a bot-vs-bot match to completion
//   - match_summary: Tournament standings and per-round results
//   - list_configs: List available match configurations
//   - game_instructions: Comprehensive rules and strategy notes
//
// Transport Modes:
//
// The server supports two transport modes:
//   - Stdio: Direct stdio communication for local MCP clients
//   - HTTP: HTTP endpoint for remote MCP integration
//
// External Control:
//
// A match created with an "external" policy slot is steered by the agent:
// submit_intent queues a direction, step applies it. The other slot can be
// a built-in bot, giving the agent a live opponent.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
//
// AI Integration:
//
// The MCP interface enables AI agents to:
//   - Play against the built-in bot policies
//   - Run and analyze bot-vs-bot tournaments
//   - Replay deterministic matches from a seed
//   - Manage multiple concurrent matches
package mcp
