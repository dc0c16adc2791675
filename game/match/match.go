package match

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/wricardo/snake-showdown/game/bot"
	"github.com/wricardo/snake-showdown/game/engine"
)

var (
	ErrMatchFinished = errors.New("match already finished")
	ErrRoundRunning  = errors.New("round still in progress")
	ErrInvalidSlot   = errors.New("invalid agent slot")
)

// runawayStepLimit aborts RunToCompletion if a round somehow never
// terminates; the round clock makes this unreachable in practice.
const runawayStepLimit = 1_000_000

// Match is one tournament between two agents. Either slot can be driven by
// a built-in policy or left nil for external control via SubmitIntent.
// All methods are safe for concurrent use.
type Match struct {
	ID          string
	Config      *engine.MatchConfig
	Seed        int64
	PolicyNames [2]string

	CreatedAt      time.Time
	LastAccessedAt time.Time

	mu         sync.Mutex
	policies   [2]bot.Policy
	tournament *engine.Tournament
	round      *engine.Round
	pending    [2]*engine.Direction
	finished   bool
}

// Snapshot is the externally visible state of a match at one instant
type Snapshot struct {
	ID           string                `json:"id"`
	State        engine.RoundState     `json:"state"`
	Policies     [2]string             `json:"policies"`
	RoundsPlayed int                   `json:"rounds_played"`
	MaxRounds    int                   `json:"max_rounds"`
	Wins         [2]int                `json:"wins"`
	TotalScores  [2]int                `json:"total_scores"`
	Round        *engine.RoundSnapshot `json:"round,omitempty"`
	Summary      *engine.Summary       `json:"summary,omitempty"`
}

// NewMatch builds a match and starts its first round. A nil policy leaves
// that slot under external control.
func NewMatch(id string, cfg *engine.MatchConfig, policyA, policyB bot.Policy, seed int64) (*Match, error) {
	if err := engine.ValidateMatchConfig(cfg); err != nil {
		return nil, err
	}

	m := &Match{
		ID:             id,
		Config:         cfg,
		Seed:           seed,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
		policies:       [2]bot.Policy{policyA, policyB},
		tournament:     engine.NewTournament(cfg),
	}
	m.PolicyNames[engine.SlotA] = policyName(policyA)
	m.PolicyNames[engine.SlotB] = policyName(policyB)
	m.startRound()
	return m, nil
}

func policyName(p bot.Policy) string {
	if p == nil {
		return "external"
	}
	return p.Name()
}

// roundRNG derives the rng for a round from the match seed. Each round gets
// its own stream so an interrupted round restarts bit-identically after a
// restore.
func (m *Match) roundRNG(number int) *rand.Rand {
	return rand.New(rand.NewSource(m.Seed + int64(number)))
}

// startRound spins up the next round. With SwapSpawns on, even rounds swap
// the two start cells so neither slot keeps a better corner across the
// tournament.
func (m *Match) startRound() {
	number := m.tournament.RoundsPlayed() + 1
	rng := m.roundRNG(number)
	spawnA, spawnB := engine.SpawnStartPositions(rng, m.Config)
	if m.Config.SwapSpawns && number%2 == 0 {
		spawnA, spawnB = spawnB, spawnA
	}
	m.round = engine.NewRound(m.Config, rng, number, spawnA, spawnB)
	m.pending = [2]*engine.Direction{}
	m.round.Begin()
}

// intents collects this step's intents: policy slots decide from the current
// snapshot, external slots consume the pending submission.
func (m *Match) intents() (intentA, intentB *engine.Direction) {
	var snap *engine.RoundSnapshot
	out := [2]*engine.Direction{}
	for slot := range m.policies {
		if m.policies[slot] == nil {
			out[slot] = m.pending[slot]
			m.pending[slot] = nil
			continue
		}
		if snap == nil {
			snap = m.round.Snapshot()
		}
		d := m.policies[slot].Decide(snap, slot)
		out[slot] = &d
	}
	return out[engine.SlotA], out[engine.SlotB]
}

// SubmitIntent buffers a direction for an externally controlled slot. The
// intent is consumed by the next step; a second submission before then
// overwrites the first. Policy-driven slots reject submissions.
func (m *Match) SubmitIntent(slot int, d engine.Direction) error {
	if slot != engine.SlotA && slot != engine.SlotB {
		return ErrInvalidSlot
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.finished {
		return ErrMatchFinished
	}
	if m.policies[slot] != nil {
		return ErrInvalidSlot
	}
	m.pending[slot] = &d
	return nil
}

// Tick advances the current round by dt wall-clock seconds. It returns true
// while the round keeps playing; once it returns false the caller decides
// when to AdvanceRound.
func (m *Match) Tick(dt float64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.finished {
		return false, ErrMatchFinished
	}
	m.LastAccessedAt = time.Now()

	ia, ib := m.intents()
	return m.round.Tick(dt, ia, ib), nil
}

// Step advances the current round exactly one simulation step
func (m *Match) Step() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.finished {
		return false, ErrMatchFinished
	}
	m.LastAccessedAt = time.Now()

	ia, ib := m.intents()
	return m.round.Step(ia, ib), nil
}

// AdvanceRound records a finished round and starts the next one, or ends
// the tournament when its terminal condition is met. It fails while the
// round is still playing.
func (m *Match) AdvanceRound() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.advanceRoundLocked()
}

func (m *Match) advanceRoundLocked() error {
	if m.finished {
		return ErrMatchFinished
	}
	res := m.round.Result()
	if res == nil {
		return ErrRoundRunning
	}
	m.LastAccessedAt = time.Now()

	m.tournament.RecordRound(*res)
	if m.tournament.IsOver() {
		m.finished = true
		m.round = nil
		return nil
	}
	m.startRound()
	return nil
}

// RunToCompletion plays the whole tournament as fast as possible and
// returns the summary. Externally controlled slots hold their heading
// unless intents arrive between steps, so this is intended for
// policy-vs-policy matches.
func (m *Match) RunToCompletion() (*engine.Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.finished {
		return m.tournament.Summary(), nil
	}
	m.LastAccessedAt = time.Now()

	steps := 0
	for !m.finished {
		ia, ib := m.intents()
		if !m.round.Step(ia, ib) {
			if err := m.advanceRoundLocked(); err != nil {
				return nil, err
			}
		}
		steps++
		if steps > runawayStepLimit {
			return nil, errors.New("round failed to terminate")
		}
	}
	return m.tournament.Summary(), nil
}

// Touched returns the last access time. Tick and Step update the timestamp
// under the match mutex, so readers outside it go through here.
func (m *Match) Touched() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.LastAccessedAt
}

// Finished reports whether the tournament is over
func (m *Match) Finished() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.finished
}

// Summary returns the tournament summary. Before the tournament ends it
// reflects the rounds recorded so far.
func (m *Match) Summary() *engine.Summary {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tournament.Summary()
}

// Snapshot captures the match state for transports and spectators
func (m *Match) Snapshot() *Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := &Snapshot{
		ID:           m.ID,
		Policies:     m.PolicyNames,
		RoundsPlayed: m.tournament.RoundsPlayed(),
		MaxRounds:    m.Config.MaxRounds,
		Wins:         m.tournament.Wins(),
		TotalScores:  m.tournament.TotalScores(),
	}
	if m.finished {
		snap.State = engine.StateTournamentEnd
		snap.Summary = m.tournament.Summary()
	} else {
		snap.State = m.round.State
		snap.Round = m.round.Snapshot()
	}
	return snap
}

// restoreRounds replays recorded results into the standings and starts the
// next round. Used by persistence when loading a match from disk.
func (m *Match) restoreRounds(rounds []engine.RoundResult) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tournament = engine.NewTournament(m.Config)
	for _, res := range rounds {
		m.tournament.RecordRound(res)
	}
	if m.tournament.IsOver() {
		m.finished = true
		m.round = nil
		return
	}
	m.startRound()
}
