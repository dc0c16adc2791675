package match

import (
	"time"

	"github.com/wricardo/snake-showdown/game/engine"
)

// ExternalPolicy is the policy name for a slot driven over a transport
// instead of a built-in bot.
const ExternalPolicy = "external"

// Persistence defines the interface for persisting matches
type Persistence interface {
	// Save persists a match to storage
	Save(m *Match) error

	// Load retrieves a match from storage by ID
	Load(id string) (*Match, error)

	// Delete removes a match from storage
	Delete(id string) error

	// ListAll returns all persisted match IDs
	ListAll() ([]string, error)

	// Exists checks if a match exists in storage
	Exists(id string) bool
}

// PersistedMatchData represents the JSON structure for persisted matches.
// The config is stored inline and the interrupted round is not: the
// per-round seed derivation restarts it from an identical board on load.
type PersistedMatchData struct {
	ID             string               `json:"id"`
	Config         *engine.MatchConfig  `json:"config"`
	Policies       [2]string            `json:"policies"`
	Seed           int64                `json:"seed"`
	CreatedAt      time.Time            `json:"created_at"`
	LastAccessedAt time.Time            `json:"last_accessed_at"`
	Rounds         []engine.RoundResult `json:"rounds"`
}
