package config

import (
	_ "embed"
)

//go:embed defaults/catcher.yaml
var defaultCatcherYAML []byte

// DefaultCatcherConfig returns the built-in catcher configuration.
func DefaultCatcherConfig() CatcherConfig {
	return CatcherConfig{
		Stabilizer: StabilizerConfig{
			Threshold:       0.85,
			SmoothingFrames: 5,
		},
		Controls: ControlsConfig{
			Left:   "left",
			Center: "center",
			Right:  "right",
		},
		Field: FieldConfig{
			GroundY:          500,
			BasketHeight:     60,
			SpawnY:           -50,
			ReferenceFrameMs: 16, // ~60 Hz
		},
		Spawn: SpawnConfig{
			HazardChance:  0.10,
			HighChance:    0.20,
			BaseSpeed:     3,
			SpeedPerLevel: 1.5,
		},
		Items: ItemsConfig{
			FruitLow:  ItemConfig{Points: 100, SpeedMultiplier: 1.0},
			FruitHigh: ItemConfig{Points: 200, SpeedMultiplier: 1.2},
			Hazard:    ItemConfig{Points: 0, SpeedMultiplier: 1.0},
		},
		Session: SessionConfig{
			Duration:            60,
			LevelUpAt:           []int{40, 20},
			BaseSpawnIntervalMs: 1500,
			SpawnIntervalStepMs: 400,
			MinSpawnIntervalMs:  400,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultCatcherYAML
}
