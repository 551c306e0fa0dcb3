package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadCatcher loads the catcher configuration.
// Search order: customPath -> ~/.catcher/configs/catcher.yaml -> ./configs/catcher.yaml -> embedded default
//
// Files are decoded over the built-in defaults, so a file only needs the
// keys it changes. The result is not validated; call Validate.
func LoadCatcher(customPath string) (CatcherConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultCatcherConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseCatcher(data)
		if err != nil {
			return DefaultCatcherConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("catcher.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseCatcher(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "catcher.yaml")); err == nil {
		if cfg, err := parseCatcher(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseCatcher(defaultCatcherYAML)
	if err != nil {
		return DefaultCatcherConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseCatcher decodes YAML over the hardcoded defaults.
func parseCatcher(data []byte) (CatcherConfig, error) {
	cfg := DefaultCatcherConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".catcher", "configs", filename)
}

// ApplyCatcherPreset modifies the config based on a difficulty preset.
// Normal keeps the loaded values.
func ApplyCatcherPreset(cfg *CatcherConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Spawn.HazardChance = 0.05
		cfg.Spawn.BaseSpeed = 2
		cfg.Session.MinSpawnIntervalMs = 700
	case DifficultyHard:
		cfg.Spawn.HazardChance = 0.15
		cfg.Spawn.BaseSpeed = 4
		cfg.Stabilizer.SmoothingFrames = max(cfg.Stabilizer.SmoothingFrames, 6)
	case DifficultyFixed:
		cfg.Session.LevelUpAt = nil
	}
}

// Validate replaces out-of-range values with defaults and returns a
// description of every field it corrected.
func (c *CatcherConfig) Validate() []string {
	def := DefaultCatcherConfig()
	var fixed []string
	fix := func(field string, got any) {
		fixed = append(fixed, fmt.Sprintf("%s=%v", field, got))
	}

	if c.Stabilizer.Threshold <= 0 || c.Stabilizer.Threshold > 1 {
		fix("stabilizer.threshold", c.Stabilizer.Threshold)
		c.Stabilizer.Threshold = def.Stabilizer.Threshold
	}
	if c.Stabilizer.SmoothingFrames < 1 {
		fix("stabilizer.smoothing_frames", c.Stabilizer.SmoothingFrames)
		c.Stabilizer.SmoothingFrames = def.Stabilizer.SmoothingFrames
	}

	if c.Controls.Left == "" || c.Controls.Center == "" || c.Controls.Right == "" {
		fix("controls", c.Controls)
		c.Controls = def.Controls
	}

	if c.Field.GroundY <= 0 {
		fix("field.ground_y", c.Field.GroundY)
		c.Field.GroundY = def.Field.GroundY
	}
	if c.Field.BasketHeight <= 0 || c.Field.BasketHeight > c.Field.GroundY {
		fix("field.basket_height", c.Field.BasketHeight)
		c.Field.BasketHeight = min(def.Field.BasketHeight, c.Field.GroundY)
	}
	if c.Field.SpawnY >= c.Field.BasketTopY() {
		fix("field.spawn_y", c.Field.SpawnY)
		c.Field.SpawnY = def.Field.SpawnY
	}
	if c.Field.ReferenceFrameMs <= 0 {
		fix("field.reference_frame_ms", c.Field.ReferenceFrameMs)
		c.Field.ReferenceFrameMs = def.Field.ReferenceFrameMs
	}

	if c.Spawn.HazardChance < 0 || c.Spawn.HazardChance > 1 {
		fix("spawn.hazard_chance", c.Spawn.HazardChance)
		c.Spawn.HazardChance = def.Spawn.HazardChance
	}
	if c.Spawn.HighChance < 0 || c.Spawn.HazardChance+c.Spawn.HighChance > 1 {
		fix("spawn.high_chance", c.Spawn.HighChance)
		c.Spawn.HighChance = max(0, min(def.Spawn.HighChance, 1-c.Spawn.HazardChance))
	}
	if c.Spawn.BaseSpeed <= 0 {
		fix("spawn.base_speed", c.Spawn.BaseSpeed)
		c.Spawn.BaseSpeed = def.Spawn.BaseSpeed
	}
	if c.Spawn.SpeedPerLevel < 0 {
		fix("spawn.speed_per_level", c.Spawn.SpeedPerLevel)
		c.Spawn.SpeedPerLevel = def.Spawn.SpeedPerLevel
	}

	for _, item := range []struct {
		name string
		cfg  *ItemConfig
		def  ItemConfig
	}{
		{"items.fruit_low", &c.Items.FruitLow, def.Items.FruitLow},
		{"items.fruit_high", &c.Items.FruitHigh, def.Items.FruitHigh},
		{"items.hazard", &c.Items.Hazard, def.Items.Hazard},
	} {
		if item.cfg.Points < 0 {
			fix(item.name+".points", item.cfg.Points)
			item.cfg.Points = item.def.Points
		}
		if item.cfg.SpeedMultiplier <= 0 {
			fix(item.name+".speed_multiplier", item.cfg.SpeedMultiplier)
			item.cfg.SpeedMultiplier = item.def.SpeedMultiplier
		}
	}

	if c.Session.Duration <= 0 {
		fix("session.duration", c.Session.Duration)
		c.Session.Duration = def.Session.Duration
	}
	if c.Session.BaseSpawnIntervalMs <= 0 {
		fix("session.base_spawn_interval_ms", c.Session.BaseSpawnIntervalMs)
		c.Session.BaseSpawnIntervalMs = def.Session.BaseSpawnIntervalMs
	}
	if c.Session.SpawnIntervalStepMs < 0 {
		fix("session.spawn_interval_step_ms", c.Session.SpawnIntervalStepMs)
		c.Session.SpawnIntervalStepMs = def.Session.SpawnIntervalStepMs
	}
	if c.Session.MinSpawnIntervalMs <= 0 || c.Session.MinSpawnIntervalMs > c.Session.BaseSpawnIntervalMs {
		fix("session.min_spawn_interval_ms", c.Session.MinSpawnIntervalMs)
		c.Session.MinSpawnIntervalMs = min(def.Session.MinSpawnIntervalMs, c.Session.BaseSpawnIntervalMs)
	}

	// Level-up points outside the countdown can never fire
	kept := c.Session.LevelUpAt[:0:0]
	for _, at := range c.Session.LevelUpAt {
		if at > 0 && at < c.Session.Duration {
			kept = append(kept, at)
		} else {
			fix("session.level_up_at", at)
		}
	}
	c.Session.LevelUpAt = kept

	return fixed
}
