package core

// RuntimeConfig describes the terminal a view renders into and how the
// simulation behind it is driven.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // UI refreshes per second
	Seed     int64 // Piece sequence seed; 0 means pick one from the clock
}

// DefaultConfig returns an 80x24 terminal refreshed 30 times per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}
