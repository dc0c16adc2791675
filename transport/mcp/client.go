package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/snake-showdown/game/engine"
	"github.com/wricardo/snake-showdown/game/match"
	"github.com/wricardo/snake-showdown/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Snake Showdown",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Snake Showdown - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Two snakes compete on a grid over several rounds. Eat food (o) for points,
avoid traps (x) and walls, and outscore the opponent before the round bell.

AVAILABLE TOOLS:
- create_match: Start a new match between two policies (or external control)
- list_matches: List all active matches
- get_match: Get match details
- match_state: Get the current round state with a board rendering
- submit_intent: Queue a direction for an externally controlled snake
- step: Advance the simulation by whole steps
- advance_round: Record a finished round and start the next one
- run_match: Run the match to completion under bot control
- match_summary: Tournament standings and per-round results
- list_configs: List available match configurations
- game_instructions: Get comprehensive game instructions and rules

NOTE: The 'reasoning' parameter on submit_intent serves as rubber duck
debugging - explain your thinking before you commit to a direction!`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Match management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_match",
		Description: "Create a new match with optional config and policy selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_name": map[string]interface{}{
					"type":        "string",
					"description": "Name of the config to use (optional)",
				},
				"policy_a": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"random", "greedy", "strategic", "external"},
					"description": "Policy for the first snake (optional, defaults to greedy)",
				},
				"policy_b": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"random", "greedy", "strategic", "external"},
					"description": "Policy for the second snake (optional, defaults to strategic)",
				},
				"seed": map[string]interface{}{
					"type":        "integer",
					"description": "Deterministic seed (optional, 0 draws a random one)",
				},
			},
		},
	}, c.handleCreateMatch)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_matches",
		Description: "List all active matches",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListMatches)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_match",
		Description: "Get details of a specific match",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"match_id": map[string]interface{}{
					"type":        "string",
					"description": "Match ID to retrieve",
				},
			},
			Required: []string{"match_id"},
		},
	}, c.handleGetMatch)

	// Match operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "match_state",
		Description: "Get the current round state with a board rendering",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"match_id": map[string]interface{}{
					"type":        "string",
					"description": "Match ID",
				},
			},
			Required: []string{"match_id"},
		},
	}, c.handleMatchState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "submit_intent",
		Description: "Queue a direction for an externally controlled snake; it is applied on the next step",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"match_id": map[string]interface{}{
					"type":        "string",
					"description": "Match ID",
				},
				"slot": map[string]interface{}{
					"type":        "integer",
					"enum":        []int{0, 1},
					"description": "Snake slot (0 or 1); the slot must use the external policy",
				},
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"up", "down", "left", "right"},
					"description": "Direction to steer toward",
				},
				"reasoning": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this direction (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"match_id", "slot", "direction"},
		},
	}, c.handleSubmitIntent)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "step",
		Description: "Advance the simulation by whole steps; bot policies decide on every step",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"match_id": map[string]interface{}{
					"type":        "string",
					"description": "Match ID",
				},
				"steps": map[string]interface{}{
					"type":        "integer",
					"description": "Number of steps to execute (default 1)",
				},
			},
			Required: []string{"match_id"},
		},
	}, c.handleStep)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "advance_round",
		Description: "Record a finished round into the standings and start the next one",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"match_id": map[string]interface{}{
					"type":        "string",
					"description": "Match ID",
				},
			},
			Required: []string{"match_id"},
		},
	}, c.handleAdvanceRound)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "run_match",
		Description: "Run the match to completion; both slots must be bot policies",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"match_id": map[string]interface{}{
					"type":        "string",
					"description": "Match ID",
				},
			},
			Required: []string{"match_id"},
		},
	}, c.handleRunMatch)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "match_summary",
		Description: "Get the tournament standings and per-round results",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"match_id": map[string]interface{}{
					"type":        "string",
					"description": "Match ID",
				},
			},
			Required: []string{"match_id"},
		},
	}, c.handleMatchSummary)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available match configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreateMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	configName, _ := args["config_name"].(string)
	policyA, _ := args["policy_a"].(string)
	policyB, _ := args["policy_b"].(string)
	seed := 0.0
	if s, ok := args["seed"].(float64); ok {
		seed = s
	}

	body := map[string]interface{}{
		"config_name": configName,
		"policy_a":    policyA,
		"policy_b":    policyB,
		"seed":        int64(seed),
	}

	var info service.MatchInfo
	err := c.apiCall("POST", "/api/matches", body, &info)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created match: %s\nConfig: %s\nPolicies: %s vs %s\nSeed: %d\n\n%s",
		info.ID, info.ConfigName, info.Policies[0], info.Policies[1], info.Seed,
		formatMatchSnapshot(info.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListMatches(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count   int                 `json:"count"`
		Matches []service.MatchInfo `json:"matches"`
	}

	err := c.apiCall("GET", "/api/matches", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Matches (%d):\n\n", response.Count)
	for _, m := range response.Matches {
		result += fmt.Sprintf("- %s (Config: %s, %s vs %s, Created: %s)\n",
			m.ID, m.ConfigName, m.Policies[0], m.Policies[1], m.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	matchID, _ := args["match_id"].(string)

	var info service.MatchInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/matches/%s", matchID), nil, &info)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatMatchInfo(&info)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMatchState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	matchID, _ := args["match_id"].(string)

	var state match.Snapshot
	err := c.apiCall("GET", fmt.Sprintf("/api/matches/%s/state", matchID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatMatchSnapshot(&state)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleSubmitIntent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	matchID, _ := args["match_id"].(string)
	direction, _ := args["direction"].(string)
	reasoning, _ := args["reasoning"].(string)
	slot := 0
	if s, ok := args["slot"].(float64); ok {
		slot = int(s)
	}

	// Reasoning parameter serves as rubber duck debugging - we don't need to process it further
	_ = reasoning

	body := map[string]interface{}{
		"slot":      slot,
		"direction": direction,
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/matches/%s/intent", matchID), body, nil)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("✓ Intent accepted: slot %d will steer %s on the next step", slot, direction)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleStep(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	matchID, _ := args["match_id"].(string)
	steps := 1
	if s, ok := args["steps"].(float64); ok && s > 0 {
		steps = int(s)
	}

	body := map[string]interface{}{
		"steps": steps,
	}

	var result service.StepResult
	err := c.apiCall("POST", fmt.Sprintf("/api/matches/%s/step", matchID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatStepResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleAdvanceRound(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	matchID, _ := args["match_id"].(string)

	var state match.Snapshot
	err := c.apiCall("POST", fmt.Sprintf("/api/matches/%s/advance", matchID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Round recorded. Standings: %d-%d after %d/%d rounds.\n\n%s",
		state.Wins[0], state.Wins[1], state.RoundsPlayed, state.MaxRounds,
		formatMatchSnapshot(&state))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleRunMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	matchID, _ := args["match_id"].(string)

	var summary engine.Summary
	err := c.apiCall("POST", fmt.Sprintf("/api/matches/%s/run", matchID), nil, &summary)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSummary(&summary)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMatchSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	matchID, _ := args["match_id"].(string)

	var summary engine.Summary
	err := c.apiCall("GET", fmt.Sprintf("/api/matches/%s/summary", matchID), nil, &summary)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSummary(&summary)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	err := c.apiCall("GET", "/api/configs", nil, &configs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Configurations:\n\n"
	for _, config := range configs {
		result += fmt.Sprintf("• %s (%s)\n  %s\n  Grid: %dx%d, Rounds: %d\n\n",
			config.Name, config.ConfigID, config.Description,
			config.GridWidth, config.GridHeight, config.MaxRounds)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `🐍 Snake Showdown - Complete Instructions

GAME OBJECTIVE:
Two snakes compete on a grid across several rounds. Score points by eating
food, avoid traps, and survive to the round bell. The side with more round
wins takes the match; cumulative score breaks ties.

BOARD LEGEND:
• A - First snake's head, a - its body
• B - Second snake's head, b - its body
• o - Food (eat for points, grows the snake)
• x - Trap (score and length penalty, then a brief shield)
• . - Empty cell

GAME MECHANICS:
• Snakes move one cell per step and cannot reverse into themselves
• Hitting a wall or your own body kills the snake for the round
• Snake-vs-snake contact never kills - it costs points and body segments,
  then grants the struck snake a short shield
• When one snake dies, the survivor must outlast the advantage countdown
  to claim the round; dying inside it draws the round
• Rounds end on the timer, on death resolution, or when the board is
  cleared of food and traps (finite-food configs)

POLICIES:
• random - picks uniformly among safe moves
• greedy - chases the nearest food, weighing mobility and traps
• strategic - adds opponent prediction and contested-food avoidance
• external - the slot is steered via submit_intent between steps

EXTERNAL CONTROL LOOP:
1. create_match with policy_a or policy_b set to "external"
2. match_state to see the board
3. submit_intent with your chosen direction (use the reasoning parameter
   to explain your plan - it is your rubber duck)
4. step to advance the simulation by one step
5. Repeat from 2; advance_round when the round is over

🤖 AI AGENTS - STRATEGY NOTES:
• Never steer into the reverse of your current heading - it is ignored
• Watch shield_seconds: contact is free while your shield is active
• Track the opponent's length; longer snakes block more of the board
• In finite-food configs the round ends when the board clears, so the
  score at that instant decides the round
• Traps cost points AND segments - a short snake is a fragile snake

MATCH FLOW:
• Each round restarts both snakes at their spawn points
• Spawns may swap between rounds (config: swap_spawns)
• A match ends when the round budget is spent, one side is uncatchable,
  or the early-victory score gap is reached

SEEDS AND DETERMINISM:
• A match created with the same config, policies, and seed replays
  identically - useful for analyzing a specific round

Good luck in the arena! 🐍🏆`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatMatchInfo(info *service.MatchInfo) string {
	return fmt.Sprintf("Match: %s\nConfig: %s\nPolicies: %s vs %s\nSeed: %d\nCreated: %s\n\n%s",
		info.ID, info.ConfigName, info.Policies[0], info.Policies[1], info.Seed,
		info.CreatedAt.Format("2006-01-02 15:04:05"),
		formatMatchSnapshot(info.State))
}

func formatMatchSnapshot(state *match.Snapshot) string {
	if state == nil {
		return "No match state available"
	}

	var result strings.Builder

	result.WriteString(fmt.Sprintf("State: %s | Rounds: %d/%d | Wins: %d-%d | Scores: %d-%d\n",
		state.State, state.RoundsPlayed, state.MaxRounds,
		state.Wins[0], state.Wins[1],
		state.TotalScores[0], state.TotalScores[1]))

	if state.Round != nil {
		result.WriteString("\n")
		result.WriteString(formatRound(state.Round))
	}

	if state.Summary != nil {
		result.WriteString("\n")
		result.WriteString(formatSummary(state.Summary))
	}

	return result.String()
}

func formatRound(snap *engine.RoundSnapshot) string {
	var result strings.Builder

	result.WriteString(fmt.Sprintf("Round %d (%s) | Time left: %.1fs",
		snap.Round, snap.State, snap.TimeRemaining))
	if snap.AdvantageRemaining > 0 {
		result.WriteString(fmt.Sprintf(" | Advantage: %.1fs", snap.AdvantageRemaining))
	}
	result.WriteString("\n\n")

	for slot, s := range snap.Snakes {
		status := "alive"
		if !s.Alive {
			status = fmt.Sprintf("dead (%s)", s.DeathCause)
		}
		shield := ""
		if s.ShieldActive {
			shield = fmt.Sprintf(", shield %.1fs", s.ShieldSeconds)
		}
		result.WriteString(fmt.Sprintf("%s (slot %d): score=%d len=%d %s%s\n",
			s.Name, slot, s.Score, s.Length, status, shield))
	}
	result.WriteString("\n")

	result.WriteString(formatBoard(snap))

	if snap.Result != nil {
		r := snap.Result
		if r.Draw {
			result.WriteString(fmt.Sprintf("\nRound %d drawn (%s)\n", r.Round, r.Cause))
		} else {
			result.WriteString(fmt.Sprintf("\nRound %d won by %s (%s)\n", r.Round, r.Winner, r.Cause))
		}
	}

	return result.String()
}

// formatBoard renders the grid with heads uppercase and bodies lowercase
func formatBoard(snap *engine.RoundSnapshot) string {
	cells := make([][]byte, snap.GridHeight)
	for y := range cells {
		cells[y] = bytes.Repeat([]byte{'.'}, snap.GridWidth)
	}

	put := func(p engine.Position, ch byte) {
		if p.X >= 0 && p.X < snap.GridWidth && p.Y >= 0 && p.Y < snap.GridHeight {
			cells[p.Y][p.X] = ch
		}
	}

	for _, p := range snap.Food {
		put(p, 'o')
	}
	for _, p := range snap.Traps {
		put(p, 'x')
	}

	bodyChars := [2]byte{'a', 'b'}
	headChars := [2]byte{'A', 'B'}
	for slot, s := range snap.Snakes {
		if !s.Alive {
			continue
		}
		for i := len(s.Segments) - 1; i >= 1; i-- {
			put(s.Segments[i], bodyChars[slot])
		}
		if len(s.Segments) > 0 {
			put(s.Segments[0], headChars[slot])
		}
	}

	var b strings.Builder
	for y := 0; y < snap.GridHeight; y++ {
		b.Write(cells[y])
		b.WriteString("\n")
	}
	return b.String()
}

func formatStepResult(result *service.StepResult) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Executed %d/%d steps\n", result.StepsExecuted, result.RequestedSteps))
	if result.Truncated {
		b.WriteString(fmt.Sprintf("Truncated at the per-call limit of %d steps\n", result.Limit))
	}
	if result.RoundOver {
		b.WriteString("Round is over - call advance_round to record it\n")
	}
	if result.MatchOver {
		b.WriteString("Match is over - call match_summary for the standings\n")
	}

	b.WriteString("\n")
	b.WriteString(formatMatchSnapshot(result.State))
	return b.String()
}

func formatSummary(summary *engine.Summary) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Tournament: %s\n", summary.Config))
	b.WriteString(fmt.Sprintf("%s vs %s\n", summary.Agents[0], summary.Agents[1]))
	b.WriteString(fmt.Sprintf("Wins: %d-%d (draws: %d) | Total scores: %d-%d\n",
		summary.Wins[0], summary.Wins[1], summary.Draws,
		summary.TotalScores[0], summary.TotalScores[1]))

	if summary.Decided {
		b.WriteString(fmt.Sprintf("🏆 Winner: %s\n", summary.Winner))
	} else {
		b.WriteString("Result: drawn tournament\n")
	}

	if len(summary.Rounds) > 0 {
		b.WriteString("\nRounds:\n")
		for _, r := range summary.Rounds {
			outcome := "draw"
			if !r.Draw && r.Winner != "" {
				outcome = r.Winner
			}
			b.WriteString(fmt.Sprintf("%d. %s (%s) %d-%d\n",
				r.Round, outcome, r.Cause,
				r.Agents[0].Score, r.Agents[1].Score))
		}
	}

	return b.String()
}
