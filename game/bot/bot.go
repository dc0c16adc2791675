package bot

import (
	"fmt"
	"math/rand"

	"github.com/wricardo/snake-showdown/game/engine"
)

// Policy decides one direction intent per simulation step for the snake in
// the given slot.
type Policy interface {
	// Name returns the policy's registry name.
	Name() string
	// Decide returns the intent for this step. Implementations must not
	// retain or mutate the snapshot.
	Decide(snap *engine.RoundSnapshot, slot int) engine.Direction
}

// Weights tunes the heuristic terms shared by the greedy and strategic
// policies.
type Weights struct {
	Food            float64 `json:"food"`
	Mobility        float64 `json:"mobility"`
	Danger          float64 `json:"danger"`
	PredictionDepth int     `json:"prediction_depth"`
}

// DefaultWeights returns the tuning used by the built-in bots
func DefaultWeights() Weights {
	return Weights{
		Food:            100,
		Mobility:        20,
		Danger:          150,
		PredictionDepth: 3,
	}
}

// Policy registry names
const (
	RandomName    = "random"
	GreedyName    = "greedy"
	StrategicName = "strategic"
)

// Names lists the available policy names in registry order
func Names() []string {
	return []string{RandomName, GreedyName, StrategicName}
}

// New builds a policy by name. The seed only matters for the random policy;
// deterministic policies ignore it.
func New(name string, seed int64) (Policy, error) {
	switch name {
	case RandomName:
		return NewRandom(rand.New(rand.NewSource(seed))), nil
	case GreedyName:
		return NewGreedy(DefaultWeights()), nil
	case StrategicName:
		return NewStrategic(DefaultWeights()), nil
	}
	return nil, fmt.Errorf("unknown bot policy %q", name)
}
