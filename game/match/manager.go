package match

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/wricardo/snake-showdown/game/engine"
)

var (
	ErrMatchNotFound      = errors.New("match not found")
	ErrMatchAlreadyExists = errors.New("match already exists")
)

// Manager handles match lifecycle
type Manager struct {
	matches     map[string]*Match
	persistence Persistence
	mu          sync.RWMutex
}

// NewManager creates a new match manager
func NewManager() *Manager {
	return &Manager{
		matches: make(map[string]*Match),
	}
}

// NewManagerWithPersistence creates a match manager that mirrors matches to
// storage.
func NewManagerWithPersistence(persistence Persistence) *Manager {
	return &Manager{
		matches:     make(map[string]*Match),
		persistence: persistence,
	}
}

// Create creates a new match with the given ID, configuration, and policy
// names. An empty ID gets a generated one; a zero seed gets a random one.
func (m *Manager) Create(id string, cfg *engine.MatchConfig, policies [2]string, seed int64) (*Match, error) {
	if id == "" {
		id = m.generateMatchID()
	}
	if seed == 0 {
		seed = randomSeed()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.matchExists(id) {
		return nil, ErrMatchAlreadyExists
	}

	built, err := BuildPolicies(policies, seed)
	if err != nil {
		return nil, err
	}

	mt, err := NewMatch(id, cfg, built[engine.SlotA], built[engine.SlotB], seed)
	if err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	m.matches[strings.ToLower(id)] = mt

	if m.persistence != nil {
		if err := m.persistence.Save(mt); err != nil {
			log.Printf("Warning: failed to persist match %s: %v", id, err)
		}
	}

	return mt, nil
}

// Get retrieves a match by ID (case-insensitive)
func (m *Manager) Get(id string) (*Match, error) {
	m.mu.RLock()
	mt, exists := m.matches[strings.ToLower(id)]
	m.mu.RUnlock()

	if exists {
		return mt, nil
	}

	// Fall back to storage for matches evicted from memory.
	if m.persistence != nil && m.persistence.Exists(id) {
		mt, err := m.persistence.Load(id)
		if err != nil {
			return nil, fmt.Errorf("failed to load persisted match: %w", err)
		}

		m.mu.Lock()
		m.matches[strings.ToLower(id)] = mt
		m.mu.Unlock()

		return mt, nil
	}

	return nil, ErrMatchNotFound
}

// List returns all active matches
func (m *Manager) List() []*Match {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*Match, 0, len(m.matches))
	for _, mt := range m.matches {
		result = append(result, mt)
	}

	return result
}

// Delete removes a match from memory and storage
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	lowerID := strings.ToLower(id)
	_, inMemory := m.matches[lowerID]
	if inMemory {
		delete(m.matches, lowerID)
	}

	if m.persistence != nil && m.persistence.Exists(id) {
		if err := m.persistence.Delete(id); err != nil {
			return fmt.Errorf("failed to delete persisted match: %w", err)
		}
		return nil
	}

	if !inMemory {
		return ErrMatchNotFound
	}

	return nil
}

// Save saves a specific match to persistence
func (m *Manager) Save(id string) error {
	if m.persistence == nil {
		return nil
	}

	m.mu.RLock()
	mt, exists := m.matches[strings.ToLower(id)]
	m.mu.RUnlock()

	if !exists {
		return ErrMatchNotFound
	}

	return m.persistence.Save(mt)
}

// Count returns the number of active matches
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.matches)
}

// CleanupExpired removes matches that have not been accessed in the given
// duration and returns how many were dropped.
func (m *Manager) CleanupExpired(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0

	for id, mt := range m.matches {
		if mt.Touched().Before(cutoff) {
			delete(m.matches, id)
			removed++
		}
	}

	return removed
}

// LoadPersisted loads all persisted matches into memory
func (m *Manager) LoadPersisted() error {
	if m.persistence == nil {
		return nil
	}

	ids, err := m.persistence.ListAll()
	if err != nil {
		return fmt.Errorf("failed to list persisted matches: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	loaded := 0
	for _, id := range ids {
		if _, exists := m.matches[strings.ToLower(id)]; exists {
			continue
		}

		mt, err := m.persistence.Load(id)
		if err != nil {
			log.Printf("Warning: failed to load persisted match %s: %v", id, err)
			continue
		}

		m.matches[strings.ToLower(id)] = mt
		loaded++
	}

	if loaded > 0 {
		log.Printf("Loaded %d persisted matches from storage", loaded)
	}

	return nil
}

// generateMatchID generates a random 4-character match ID
func (m *Manager) generateMatchID() string {
	bytes := make([]byte, 2)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// matchExists checks if a match exists (case-insensitive)
func (m *Manager) matchExists(id string) bool {
	_, exists := m.matches[strings.ToLower(id)]
	return exists
}

// randomSeed draws a non-zero tournament seed from the system entropy pool
func randomSeed() int64 {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	seed := int64(binary.LittleEndian.Uint64(bytes) >> 1)
	if seed == 0 {
		seed = 1
	}
	return seed
}
