package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/wricardo/snake-showdown/game/bot"
	"github.com/wricardo/snake-showdown/game/engine"
	"github.com/wricardo/snake-showdown/game/match"
)

// maxStepsPerCall caps a single bulk step request so one call cannot hold a
// match lock for an unbounded stretch.
const maxStepsPerCall = 2000

// matchServiceImpl implements the MatchService interface
type matchServiceImpl struct {
	matches MatchManager
	configs ConfigManager
}

// NewMatchService creates a new match service instance
func NewMatchService(matches MatchManager, configs ConfigManager) MatchService {
	return &matchServiceImpl{
		matches: matches,
		configs: configs,
	}
}

// getConfigID returns the config_id for a given config display name, used
// for consistent API responses.
func (s *matchServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

// CreateMatch creates a new match
func (s *matchServiceImpl) CreateMatch(ctx context.Context, req CreateMatchRequest) (*MatchInfo, error) {
	var config *engine.MatchConfig
	var err error
	if req.ConfigName != "" {
		config, err = s.configs.LoadConfig(req.ConfigName)
		if err != nil {
			if strings.Contains(err.Error(), "configuration not found") {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v", req.ConfigName, configIDs)
				}
				return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations", req.ConfigName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", req.ConfigName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	policies, err := resolvePolicies(req.PolicyA, req.PolicyB)
	if err != nil {
		return nil, err
	}

	// Let the match manager generate a proper 4-character ID.
	mt, err := s.matches.Create("", config, policies, req.Seed)
	if err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	configID := req.ConfigName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	return s.matchInfo(mt, configID), nil
}

// resolvePolicies fills in defaults and rejects names the bot registry does
// not know. Validation happens here so the error surfaces before a match ID
// is burned.
func resolvePolicies(a, b string) ([2]string, error) {
	if a == "" {
		a = bot.GreedyName
	}
	if b == "" {
		b = bot.StrategicName
	}
	for _, name := range []string{a, b} {
		if name == match.ExternalPolicy {
			continue
		}
		if _, err := bot.New(name, 0); err != nil {
			return [2]string{}, fmt.Errorf("unknown policy %q. Available: %v or %q", name, bot.Names(), match.ExternalPolicy)
		}
	}
	return [2]string{a, b}, nil
}

// GetMatch retrieves match information
func (s *matchServiceImpl) GetMatch(ctx context.Context, matchID string) (*MatchInfo, error) {
	mt, err := s.matches.Get(matchID)
	if err != nil {
		return nil, fmt.Errorf("match not found: %w", err)
	}
	return s.matchInfo(mt, s.getConfigID(mt.Config.Name)), nil
}

// ListMatches returns all active matches
func (s *matchServiceImpl) ListMatches(ctx context.Context) ([]*MatchInfo, error) {
	matches := s.matches.List()
	infos := make([]*MatchInfo, 0, len(matches))
	for _, mt := range matches {
		infos = append(infos, s.matchInfo(mt, s.getConfigID(mt.Config.Name)))
	}
	return infos, nil
}

// DeleteMatch removes a match
func (s *matchServiceImpl) DeleteMatch(ctx context.Context, matchID string) error {
	if err := s.matches.Delete(matchID); err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}
	return nil
}

// Tick advances a match by dt wall-clock seconds
func (s *matchServiceImpl) Tick(ctx context.Context, matchID string, dt float64) (*match.Snapshot, error) {
	if dt < 0 {
		return nil, fmt.Errorf("dt must not be negative, got %v", dt)
	}

	mt, err := s.matches.Get(matchID)
	if err != nil {
		return nil, fmt.Errorf("match not found: %w", err)
	}

	if _, err := mt.Tick(dt); err != nil {
		return nil, err
	}
	return mt.Snapshot(), nil
}

// Step advances a match by up to the requested number of simulation steps,
// stopping early when the round ends.
func (s *matchServiceImpl) Step(ctx context.Context, matchID string, steps int) (*StepResult, error) {
	if steps < 1 {
		steps = 1
	}

	mt, err := s.matches.Get(matchID)
	if err != nil {
		return nil, fmt.Errorf("match not found: %w", err)
	}

	result := &StepResult{
		RequestedSteps: steps,
		Limit:          maxStepsPerCall,
	}
	if steps > maxStepsPerCall {
		steps = maxStepsPerCall
		result.Truncated = true
	}

	for i := 0; i < steps; i++ {
		playing, err := mt.Step()
		if err != nil {
			if err == match.ErrMatchFinished {
				result.MatchOver = true
				break
			}
			return nil, err
		}
		result.StepsExecuted++
		if !playing {
			result.RoundOver = true
			break
		}
	}

	result.MatchOver = result.MatchOver || mt.Finished()
	result.State = mt.Snapshot()
	return result, nil
}

// SubmitIntent buffers a direction for an externally controlled slot
func (s *matchServiceImpl) SubmitIntent(ctx context.Context, matchID string, slot int, direction string) error {
	d, ok := engine.ParseDirection(direction)
	if !ok {
		return fmt.Errorf("invalid direction %q: use up, down, left, or right", direction)
	}

	mt, err := s.matches.Get(matchID)
	if err != nil {
		return fmt.Errorf("match not found: %w", err)
	}

	if err := mt.SubmitIntent(slot, d); err != nil {
		if err == match.ErrInvalidSlot {
			return fmt.Errorf("slot %d is not externally controlled", slot)
		}
		return err
	}
	return nil
}

// AdvanceRound records a finished round and starts the next one
func (s *matchServiceImpl) AdvanceRound(ctx context.Context, matchID string) (*match.Snapshot, error) {
	mt, err := s.matches.Get(matchID)
	if err != nil {
		return nil, fmt.Errorf("match not found: %w", err)
	}

	if err := mt.AdvanceRound(); err != nil {
		return nil, err
	}

	// Standings changed; mirror them to storage.
	if err := s.matches.Save(matchID); err != nil {
		return nil, fmt.Errorf("failed to persist match: %w", err)
	}
	return mt.Snapshot(), nil
}

// RunMatch plays a match to completion and returns the summary
func (s *matchServiceImpl) RunMatch(ctx context.Context, matchID string) (*engine.Summary, error) {
	mt, err := s.matches.Get(matchID)
	if err != nil {
		return nil, fmt.Errorf("match not found: %w", err)
	}

	summary, err := mt.RunToCompletion()
	if err != nil {
		return nil, err
	}

	if err := s.matches.Save(matchID); err != nil {
		return nil, fmt.Errorf("failed to persist match: %w", err)
	}
	return summary, nil
}

// GetSnapshot returns the current match state
func (s *matchServiceImpl) GetSnapshot(ctx context.Context, matchID string) (*match.Snapshot, error) {
	mt, err := s.matches.Get(matchID)
	if err != nil {
		return nil, fmt.Errorf("match not found: %w", err)
	}
	return mt.Snapshot(), nil
}

// GetSummary returns the tournament summary recorded so far
func (s *matchServiceImpl) GetSummary(ctx context.Context, matchID string) (*engine.Summary, error) {
	mt, err := s.matches.Get(matchID)
	if err != nil {
		return nil, fmt.Errorf("match not found: %w", err)
	}
	return mt.Summary(), nil
}

// ListConfigs returns all available configurations
func (s *matchServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a configuration by name
func (s *matchServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.MatchConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a configuration
func (s *matchServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.MatchConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// matchInfo assembles the external view of a match
func (s *matchServiceImpl) matchInfo(mt *match.Match, configID string) *MatchInfo {
	return &MatchInfo{
		ID:             mt.ID,
		ConfigName:     configID,
		Policies:       mt.PolicyNames,
		Seed:           mt.Seed,
		CreatedAt:      mt.CreatedAt,
		LastAccessedAt: mt.Touched(),
		State:          mt.Snapshot(),
	}
}
