package engine

// Position represents x,y grid coordinates
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the position shifted one cell in the given direction
func (p Position) Add(d Direction) Position {
	return Position{X: p.X + d.DX, Y: p.Y + d.DY}
}

// Direction is a unit vector on the grid. Y grows downward, matching the
// row-major board layout.
type Direction struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

var (
	Up    = Direction{0, -1}
	Down  = Direction{0, 1}
	Left  = Direction{-1, 0}
	Right = Direction{1, 0}
)

// Directions lists all four directions in the fixed priority order used for
// deterministic tie-breaking: Up, Down, Left, Right.
var Directions = [4]Direction{Up, Down, Left, Right}

// Opposite returns the reversed direction
func (d Direction) Opposite() Direction {
	return Direction{DX: -d.DX, DY: -d.DY}
}

// String returns the lowercase name of the direction, or "none" for the zero
// value and anything that is not a unit vector.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "none"
}

// ParseDirection converts a direction name ("up", "down", "left", "right")
// into its vector. ok is false for anything else.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "up":
		return Up, true
	case "down":
		return Down, true
	case "left":
		return Left, true
	case "right":
		return Right, true
	}
	return Direction{}, false
}

// RoundState represents the lifecycle state of a round
type RoundState string

const (
	StateStart         RoundState = "start"
	StatePlaying       RoundState = "playing"
	StateRoundOver     RoundState = "round_over"
	StateTournamentEnd RoundState = "tournament_end"
)

// RoundCause identifies why a round terminated
type RoundCause string

const (
	// CauseTimeout: the round timer expired.
	CauseTimeout RoundCause = "timeout"
	// CauseSingleDeath: one snake died and the survivor outlasted the
	// advantage countdown.
	CauseSingleDeath RoundCause = "single_death"
	// CauseMutualDeath: both snakes died on the same simulation step.
	CauseMutualDeath RoundCause = "mutual_death"
	// CauseMutualDestruction: the survivor died while the advantage
	// countdown was still running.
	CauseMutualDestruction RoundCause = "mutual_destruction"
	// CauseBoardCleared: both hazard sets emptied while EndWhenCleared is
	// enabled.
	CauseBoardCleared RoundCause = "board_cleared"
)

// DeathCause identifies how a snake died. Snake-vs-snake contact never kills;
// it is adjudicated as a penalty by the collision resolver.
type DeathCause string

const (
	DeathNone DeathCause = ""
	DeathWall DeathCause = "wall"
	DeathSelf DeathCause = "self"
)

// Agent slot indices. The engine is symmetric in the two slots; names are
// attached via MatchConfig.
const (
	SlotA = 0
	SlotB = 1
)

// Validation constants
const (
	MinGridDimension  = 10
	MaxGridDimension  = 200
	MaxTicksPerSecond = 120
)

// AgentStats captures one agent's per-round numbers, recorded into the
// RoundResult when the round ends.
type AgentStats struct {
	Name       string `json:"name"`
	Score      int    `json:"score"`
	Length     int    `json:"length"`
	TrapsHit   int    `json:"traps_hit"`
	Collisions int    `json:"collisions"`
	Alive      bool   `json:"alive"`
}

// RoundResult is the finalized outcome of a single round. Winner is the agent
// name, or empty when the round was drawn.
type RoundResult struct {
	Round         int           `json:"round"`
	Winner        string        `json:"winner,omitempty"`
	Draw          bool          `json:"draw"`
	Cause         RoundCause    `json:"cause"`
	TimeRemaining float64       `json:"time_remaining"`
	Agents        [2]AgentStats `json:"agents"`
}

// Summary is the finalized, serializable tournament outcome exposed for
// external writers. The engine does not define or depend on any persistence
// format.
type Summary struct {
	Config      string        `json:"config"`
	Agents      [2]string     `json:"agents"`
	Rounds      []RoundResult `json:"rounds"`
	Wins        [2]int        `json:"wins"`
	Draws       int           `json:"draws"`
	TotalScores [2]int        `json:"total_scores"`
	Winner      string        `json:"winner,omitempty"`
	Decided     bool          `json:"decided"`
}
