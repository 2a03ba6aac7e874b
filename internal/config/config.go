// Package config provides YAML-based bot configuration loading and
// difficulty profile resolution.
package config

import "time"

// BotConfig is the root of bot.yaml.
type BotConfig struct {
	Weights  Weights        `yaml:"weights"`
	Profiles ProfilesConfig `yaml:"profiles"`
	Arena    ArenaConfig    `yaml:"arena"`
}

// Weights are the heuristic coefficients applied to each board metric.
// Negative values penalize, positive values reward.
type Weights struct {
	Height        float64 `yaml:"height"`
	Holes         float64 `yaml:"holes"`
	Bumpiness     float64 `yaml:"bumpiness"`
	CompleteLines float64 `yaml:"complete_lines"`
	EdgeTouch     float64 `yaml:"edge_touch"`
	WellDepth     float64 `yaml:"well_depth"`
	Overhang      float64 `yaml:"overhang"`
}

// WeightOverrides replaces individual base weights for one difficulty.
// Nil fields keep the base value.
type WeightOverrides struct {
	Height        *float64 `yaml:"height,omitempty"`
	Holes         *float64 `yaml:"holes,omitempty"`
	Bumpiness     *float64 `yaml:"bumpiness,omitempty"`
	CompleteLines *float64 `yaml:"complete_lines,omitempty"`
	EdgeTouch     *float64 `yaml:"edge_touch,omitempty"`
	WellDepth     *float64 `yaml:"well_depth,omitempty"`
	Overhang      *float64 `yaml:"overhang,omitempty"`
}

// ProfilesConfig holds the raw settings of the three difficulty tiers.
type ProfilesConfig struct {
	Easy   ProfileConfig `yaml:"easy"`
	Medium ProfileConfig `yaml:"medium"`
	Hard   ProfileConfig `yaml:"hard"`
}

// ProfileConfig is the YAML form of a difficulty tier.
type ProfileConfig struct {
	MoveDelay  time.Duration   `yaml:"move_delay"`  // Pause between decisions
	ThinkDelay time.Duration   `yaml:"think_delay"` // Deliberation cost per decision
	ErrorRate  float64         `yaml:"error_rate"`  // 0.0 = never blunders, 1.0 = always random
	LookAhead  bool            `yaml:"look_ahead"`  // Consider the next piece
	Weights    WeightOverrides `yaml:"weights"`
}

// ArenaConfig defines defaults for headless bot games.
type ArenaConfig struct {
	MaxPieces int `yaml:"max_pieces"` // Stop a game after this many pieces (0 = no limit)
	JunkEvery int `yaml:"junk_every"` // Insert junk every N pieces (0 = never)
	JunkLines int `yaml:"junk_lines"` // Junk rows inserted each time
}

// apply returns base with every non-nil override substituted.
func (o WeightOverrides) apply(base Weights) Weights {
	set := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	set(&base.Height, o.Height)
	set(&base.Holes, o.Holes)
	set(&base.Bumpiness, o.Bumpiness)
	set(&base.CompleteLines, o.CompleteLines)
	set(&base.EdgeTouch, o.EdgeTouch)
	set(&base.WellDepth, o.WellDepth)
	set(&base.Overhang, o.Overhang)
	return base
}
