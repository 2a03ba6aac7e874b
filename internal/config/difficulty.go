package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// Difficulty represents a named bot skill tier.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ErrUnknownDifficulty is returned for a tier name outside easy/medium/hard.
var ErrUnknownDifficulty = errors.New("config: unknown difficulty")

// Difficulties returns the three tiers from easiest to hardest.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// ParseDifficulty converts a user-supplied name into a Difficulty.
// An empty string selects medium.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case "", DifficultyMedium:
		return DifficultyMedium, nil
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyHard:
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("%w %q (want easy, medium or hard)", ErrUnknownDifficulty, s)
	}
}

// Profile is the resolved, validated parameter bundle for one tier.
// It is a plain value; holders get their own copy.
type Profile struct {
	Difficulty Difficulty
	MoveDelay  time.Duration
	ThinkDelay time.Duration
	ErrorRate  float64
	LookAhead  bool
	Weights    Weights
}

// Validate checks the invariants every tier must satisfy.
func (p Profile) Validate() error {
	if math.IsNaN(p.ErrorRate) || p.ErrorRate < 0 || p.ErrorRate > 1 {
		return fmt.Errorf("config: %s: error_rate %v outside [0, 1]", p.Difficulty, p.ErrorRate)
	}
	if p.MoveDelay < 0 || p.ThinkDelay < 0 {
		return fmt.Errorf("config: %s: delays must not be negative", p.Difficulty)
	}
	if p.Weights.Holes >= 0 {
		return fmt.Errorf("config: %s: holes weight %v must be negative", p.Difficulty, p.Weights.Holes)
	}
	return nil
}

// Profile resolves the tier d against the base weights.
func (c BotConfig) Profile(d Difficulty) (Profile, error) {
	var raw ProfileConfig
	switch d {
	case DifficultyEasy:
		raw = c.Profiles.Easy
	case DifficultyMedium:
		raw = c.Profiles.Medium
	case DifficultyHard:
		raw = c.Profiles.Hard
	default:
		return Profile{}, fmt.Errorf("%w %q", ErrUnknownDifficulty, d)
	}

	p := Profile{
		Difficulty: d,
		MoveDelay:  raw.MoveDelay,
		ThinkDelay: raw.ThinkDelay,
		ErrorRate:  raw.ErrorRate,
		LookAhead:  raw.LookAhead,
		Weights:    raw.Weights.apply(c.Weights),
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Validate resolves all three tiers and reports the first failure.
func (c BotConfig) Validate() error {
	for _, d := range Difficulties() {
		if _, err := c.Profile(d); err != nil {
			return err
		}
	}
	return nil
}

// ApplyFastPreset zeroes every delay so batch runs are CPU bound.
func ApplyFastPreset(cfg *BotConfig) {
	for _, p := range []*ProfileConfig{&cfg.Profiles.Easy, &cfg.Profiles.Medium, &cfg.Profiles.Hard} {
		p.MoveDelay = 0
		p.ThinkDelay = 0
	}
}
