// Package websocket provides WebSocket transport for spectating matches.
//
// The websocket package implements:
//   - Real-time push of round snapshots to spectators
//   - Match-aware WebSocket connections
//   - Automatic state broadcasting on changes
//   - Connection lifecycle management
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a dedicated
// goroutine that manages reading, writing, and cleanup.
//
// Message Protocol:
//
// Messages are JSON-encoded with the following structure:
//   - State update: {match_id: "ab12", state: {...}, event: "state_update"}
//   - Custom event: {match_id: "ab12", event: "round_advanced", data: 2}
//
// Spectators are read-only. Incoming frames only keep the connection
// alive; match control flows through the REST API or MCP transport.
//
// Match Integration:
//
// Clients specify the match they spectate via query parameter (?match=ab12)
// when establishing the connection. State updates are broadcast only to
// clients connected to the same match.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// After every state change:
//	hub.BroadcastMatch(matchID, snapshot)
//
// Connection Lifecycle:
//
// 1. Client connects with a match ID
// 2. Connection registered with hub
// 3. Client receives state updates as the match progresses
// 4. Disconnection triggers cleanup
//
// Concurrency:
//
// All hub state is owned by the Run goroutine; registration, removal, and
// broadcasts arrive over channels. Multiple clients can connect, disconnect,
// and receive messages simultaneously without blocking each other.
package websocket
