package match

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/snake-showdown/game/bot"
)

// FilePersistence implements Persistence using one JSON file per match
type FilePersistence struct {
	matchesDir string
}

// NewFilePersistence creates a file-based match persistence layer
func NewFilePersistence(matchesDir string) (*FilePersistence, error) {
	if err := os.MkdirAll(matchesDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create matches directory: %w", err)
	}

	return &FilePersistence{matchesDir: matchesDir}, nil
}

// Save persists a match to a JSON file
func (fp *FilePersistence) Save(m *Match) error {
	if m == nil {
		return fmt.Errorf("match cannot be nil")
	}

	data := PersistedMatchData{
		ID:             m.ID,
		Config:         m.Config,
		Policies:       m.PolicyNames,
		Seed:           m.Seed,
		CreatedAt:      m.CreatedAt,
		LastAccessedAt: m.Touched(),
		Rounds:         m.Summary().Rounds,
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal match data: %w", err)
	}

	if err := os.WriteFile(fp.getFilePath(m.ID), jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write match file: %w", err)
	}

	return nil
}

// Load retrieves a match from a JSON file. Built-in policies are rebuilt by
// name; recorded rounds are replayed into fresh standings and the
// interrupted round restarts from the same seeded board.
func (fp *FilePersistence) Load(id string) (*Match, error) {
	filePath := fp.getFilePath(id)

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, ErrMatchNotFound
	}

	jsonData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read match file: %w", err)
	}

	var data PersistedMatchData
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match data: %w", err)
	}

	policies, err := BuildPolicies(data.Policies, data.Seed)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild policies: %w", err)
	}

	m, err := NewMatch(data.ID, data.Config, policies[0], policies[1], data.Seed)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild match: %w", err)
	}
	m.CreatedAt = data.CreatedAt
	m.LastAccessedAt = data.LastAccessedAt
	m.restoreRounds(data.Rounds)

	return m, nil
}

// Delete removes a match file
func (fp *FilePersistence) Delete(id string) error {
	if !fp.Exists(id) {
		return ErrMatchNotFound
	}

	if err := os.Remove(fp.getFilePath(id)); err != nil {
		return fmt.Errorf("failed to remove match file: %w", err)
	}

	return nil
}

// ListAll returns all persisted match IDs
func (fp *FilePersistence) ListAll() ([]string, error) {
	entries, err := os.ReadDir(fp.matchesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read matches directory: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".json") {
			ids = append(ids, strings.TrimSuffix(name, ".json"))
		}
	}

	return ids, nil
}

// Exists checks if a match file exists
func (fp *FilePersistence) Exists(id string) bool {
	_, err := os.Stat(fp.getFilePath(id))
	return err == nil
}

// getFilePath returns the full file path for a match ID
func (fp *FilePersistence) getFilePath(id string) string {
	return filepath.Join(fp.matchesDir, fmt.Sprintf("%s.json", id))
}

// BuildPolicies resolves two policy names into Policy values. The external
// name yields a nil policy, leaving that slot to transport-submitted
// intents. Slot B's random stream is offset so two random bots do not
// mirror each other.
func BuildPolicies(names [2]string, seed int64) ([2]bot.Policy, error) {
	var out [2]bot.Policy
	for slot, name := range names {
		if name == ExternalPolicy {
			continue
		}
		p, err := bot.New(name, seed+int64(slot)*7919)
		if err != nil {
			return out, err
		}
		out[slot] = p
	}
	return out, nil
}
