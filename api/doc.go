// Package api provides HTTP REST API handlers for the snake showdown.
//
// The api package implements:
//   - RESTful endpoints for match operations
//   - Match management endpoints
//   - Configuration listing and creation
//   - WebSocket upgrade handling for spectators
//   - Static file serving
//
// Endpoints:
//
// Match Management:
//   - POST /api/matches - Create new match
//   - GET /api/matches - List all matches (sort, order, limit query params)
//   - GET /api/matches/{id} - Get specific match
//   - DELETE /api/matches/{id} - Delete match
//
// Match Operations:
//   - GET /api/matches/{id}/state - Current round snapshot
//   - POST /api/matches/{id}/step - Advance the round by whole steps
//   - POST /api/matches/{id}/tick - Advance the round clock by wall time
//   - POST /api/matches/{id}/intent - Submit a direction for an external slot
//   - POST /api/matches/{id}/advance - Record a finished round and start the next
//   - POST /api/matches/{id}/run - Run the match to completion
//   - GET /api/matches/{id}/summary - Tournament standings
//
// Configuration:
//   - GET /api/configs - List available configurations
//   - POST /api/configs - Save a new configuration
//   - GET /api/configs/{name} - Get a specific configuration
//
// WebSocket:
//   - GET /ws?match={id} - Spectate a match; state snapshots are pushed
//     after every step, tick, advance, and run
//
// Request/Response Format:
//
// All endpoints accept and return JSON. Match creation accepts:
//
//	{
//	  "config_name": "blitz",      // optional, defaults to the default config
//	  "policy_a": "greedy",        // optional bot policy or "external"
//	  "policy_b": "strategic",
//	  "seed": 42                   // optional, 0 draws a random seed
//	}
//
// Step requests accept {"steps": 50}; tick requests accept {"dt": 0.25};
// intent requests accept {"slot": 0, "direction": "up"}.
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
package api
