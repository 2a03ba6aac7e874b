package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/bot.yaml
var defaultBotYAML []byte

func ptr(v float64) *float64 { return &v }

// DefaultBotConfig returns the hard-coded bot configuration.
// It mirrors defaults/bot.yaml and is used if the embedded file fails to parse.
func DefaultBotConfig() BotConfig {
	return BotConfig{
		Weights: Weights{
			Height:        -4.5,
			Holes:         -7.5,
			Bumpiness:     -2.0,
			CompleteLines: 5.0,
			EdgeTouch:     0.5,
			WellDepth:     -4.0,
			Overhang:      -3.0,
		},
		Profiles: ProfilesConfig{
			Easy: ProfileConfig{
				MoveDelay:  500 * time.Millisecond,
				ThinkDelay: 300 * time.Millisecond,
				ErrorRate:  0.30,
				LookAhead:  false,
				Weights: WeightOverrides{
					Height:        ptr(-3.0),
					Holes:         ptr(-4.0),
					CompleteLines: ptr(10.0),
				},
			},
			Medium: ProfileConfig{
				MoveDelay:  300 * time.Millisecond,
				ThinkDelay: 200 * time.Millisecond,
				ErrorRate:  0.15,
				LookAhead:  true,
			},
			Hard: ProfileConfig{
				MoveDelay:  100 * time.Millisecond,
				ThinkDelay: 100 * time.Millisecond,
				ErrorRate:  0.05,
				LookAhead:  true,
				Weights: WeightOverrides{
					Height:    ptr(-6.0),
					Holes:     ptr(-10.0),
					Bumpiness: ptr(-3.0),
					WellDepth: ptr(-5.0),
				},
			},
		},
		Arena: ArenaConfig{
			MaxPieces: 500,
			JunkEvery: 0,
			JunkLines: 1,
		},
	}
}

// DefaultYAML returns the embedded default bot.yaml.
func DefaultYAML() []byte {
	return defaultBotYAML
}
