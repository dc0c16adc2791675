package service

import (
	"context"
	"time"

	"github.com/wricardo/snake-showdown/game/engine"
	"github.com/wricardo/snake-showdown/game/match"
)

// MatchService defines all match-related operations
type MatchService interface {
	// Match Management
	CreateMatch(ctx context.Context, req CreateMatchRequest) (*MatchInfo, error)
	GetMatch(ctx context.Context, matchID string) (*MatchInfo, error)
	ListMatches(ctx context.Context) ([]*MatchInfo, error)
	DeleteMatch(ctx context.Context, matchID string) error

	// Match Operations
	Tick(ctx context.Context, matchID string, dt float64) (*match.Snapshot, error)
	Step(ctx context.Context, matchID string, steps int) (*StepResult, error)
	SubmitIntent(ctx context.Context, matchID string, slot int, direction string) error
	AdvanceRound(ctx context.Context, matchID string) (*match.Snapshot, error)
	RunMatch(ctx context.Context, matchID string) (*engine.Summary, error)

	// Match State
	GetSnapshot(ctx context.Context, matchID string) (*match.Snapshot, error)
	GetSummary(ctx context.Context, matchID string) (*engine.Summary, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.MatchConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.MatchConfig) error
}

// MatchManager defines match storage operations
type MatchManager interface {
	Create(id string, config *engine.MatchConfig, policies [2]string, seed int64) (*match.Match, error)
	Get(id string) (*match.Match, error)
	List() []*match.Match
	Delete(id string) error
	Save(id string) error
}

// ConfigManager handles match configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.MatchConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.MatchConfig
	SaveConfig(name string, config *engine.MatchConfig) error
}

// CreateMatchRequest carries the parameters for a new match. Empty policy
// names default to built-in bots; a zero seed draws a random one.
type CreateMatchRequest struct {
	ConfigName string `json:"config_name"`
	PolicyA    string `json:"policy_a"`
	PolicyB    string `json:"policy_b"`
	Seed       int64  `json:"seed"`
}

// MatchInfo provides information about a match
type MatchInfo struct {
	ID             string          `json:"id"`
	ConfigName     string          `json:"config_name"`
	Policies       [2]string       `json:"policies"`
	Seed           int64           `json:"seed"`
	CreatedAt      time.Time       `json:"created_at"`
	LastAccessedAt time.Time       `json:"last_accessed_at"`
	State          *match.Snapshot `json:"state"`
}

// StepResult contains the result of a bulk step operation
type StepResult struct {
	StepsExecuted  int             `json:"steps_executed"`
	RequestedSteps int             `json:"requested_steps"`
	RoundOver      bool            `json:"round_over"`
	MatchOver      bool            `json:"match_over"`
	Truncated      bool            `json:"truncated,omitempty"`
	Limit          int             `json:"limit,omitempty"`
	State          *match.Snapshot `json:"state"`
}

// ConfigInfo provides information about a match configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for match creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	GridWidth   int    `json:"grid_width"`
	GridHeight  int    `json:"grid_height"`
	MaxRounds   int    `json:"max_rounds"`
}
