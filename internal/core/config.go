package core

// RuntimeConfig contains configuration passed to a game at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickSeconds returns the simulated duration of one tick.
func (c RuntimeConfig) TickSeconds() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// GameState is the snapshot a game reports to the platform after each tick.
type GameState struct {
	Score     int  // Coins collected, including the persisted carry-over
	Steps     int  // Available step balance (may be negative)
	Misses    int  // Coins missed this session
	LiveCoins int  // Coins currently in the scene
	GameOver  bool // Whether the session has ended
	Paused    bool // Whether the game is paused
}

// Signal is a one-shot notification a game emits for the platform to
// present: a sound, a flash, a banner.
type Signal int

const (
	SignalCollect      Signal = iota // A coin was bought with steps
	SignalInsufficient               // Contact with a coin the balance cannot cover
	SignalMiss                       // A coin timed out unclaimed
	SignalGameOver                   // The session ended
)

// String returns a human-readable name for the signal.
func (s Signal) String() string {
	switch s {
	case SignalCollect:
		return "collect"
	case SignalInsufficient:
		return "insufficient"
	case SignalMiss:
		return "miss"
	case SignalGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// StepResult is returned by a game's Step after each simulation tick.
type StepResult struct {
	State   GameState
	Signals []Signal
}
