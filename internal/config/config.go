// Package config provides YAML-based game configuration loading and
// difficulty management for the catcher.
package config

// CatcherConfig contains all configuration for the catcher game.
type CatcherConfig struct {
	Stabilizer StabilizerConfig `yaml:"stabilizer"`
	Controls   ControlsConfig   `yaml:"controls"`
	Field      FieldConfig      `yaml:"field"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Items      ItemsConfig      `yaml:"items"`
	Session    SessionConfig    `yaml:"session"`
}

// StabilizerConfig holds the two tunables of the prediction stabilizer.
type StabilizerConfig struct {
	Threshold       float64 `yaml:"threshold"`        // Minimum top probability for a frame to count
	SmoothingFrames int     `yaml:"smoothing_frames"` // Window size that must agree unanimously
}

// ControlsConfig maps classifier labels to lanes.
type ControlsConfig struct {
	Left   string `yaml:"left"`
	Center string `yaml:"center"`
	Right  string `yaml:"right"`
}

// Labels returns the label vocabulary in lane order.
func (c ControlsConfig) Labels() []string {
	return []string{c.Left, c.Center, c.Right}
}

// FieldConfig defines the play-field geometry in world units.
type FieldConfig struct {
	GroundY          float64 `yaml:"ground_y"`           // Bottom of the field; items past it are missed
	BasketHeight     float64 `yaml:"basket_height"`      // Height of the catch zone above the ground
	SpawnY           float64 `yaml:"spawn_y"`            // Where new items appear (above the field)
	ReferenceFrameMs float64 `yaml:"reference_frame_ms"` // Frame length that fall speeds are tuned for
}

// BasketTopY returns the top edge of the catch zone.
func (f FieldConfig) BasketTopY() float64 {
	return f.GroundY - f.BasketHeight
}

// SpawnConfig controls item kind selection and fall speed.
type SpawnConfig struct {
	HazardChance  float64 `yaml:"hazard_chance"`   // r < hazard_chance -> hazard
	HighChance    float64 `yaml:"high_chance"`     // next band -> high-value fruit
	BaseSpeed     float64 `yaml:"base_speed"`      // Speed at level 0
	SpeedPerLevel float64 `yaml:"speed_per_level"` // Added per level
}

// ItemConfig describes one fruit kind.
type ItemConfig struct {
	Points          int     `yaml:"points"`
	SpeedMultiplier float64 `yaml:"speed_multiplier"`
}

// ItemsConfig holds the per-kind settings.
type ItemsConfig struct {
	FruitLow  ItemConfig `yaml:"fruit_low"`
	FruitHigh ItemConfig `yaml:"fruit_high"`
	Hazard    ItemConfig `yaml:"hazard"` // Points unused; hazards zero the score
}

// SessionConfig defines session length and level progression.
type SessionConfig struct {
	Duration            int   `yaml:"duration"`               // Seconds per session
	LevelUpAt           []int `yaml:"level_up_at"`            // timeLeft values that trigger a level-up
	BaseSpawnIntervalMs int   `yaml:"base_spawn_interval_ms"` // Interval at level 1
	SpawnIntervalStepMs int   `yaml:"spawn_interval_step_ms"` // Reduction per level
	MinSpawnIntervalMs  int   `yaml:"min_spawn_interval_ms"`  // Floor
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficultyPreset maps a CLI value to a preset. Unknown values
// return an empty preset (use the config as loaded).
func ParseDifficultyPreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}
