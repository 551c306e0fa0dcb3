package core

// RuntimeConfig contains configuration passed to the game at initialization.
// The platform fills it from CLI flags and the terminal size.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frame callbacks per second (default 60)
	Seed     int64 // RNG seed for the spawner
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

// GameState is the platform-facing view of a session.
type GameState struct {
	Score    int  // Current score
	Level    int  // Current difficulty level
	TimeLeft int  // Seconds remaining
	GameOver bool // Whether the session has ended
}
