package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parseCatcher(GetDefaultYAML())
	if err != nil {
		t.Fatalf("parseCatcher(embedded) failed: %v", err)
	}

	def := DefaultCatcherConfig()
	if cfg.Stabilizer != def.Stabilizer {
		t.Errorf("Stabilizer = %+v, expected %+v", cfg.Stabilizer, def.Stabilizer)
	}
	if cfg.Field != def.Field {
		t.Errorf("Field = %+v, expected %+v", cfg.Field, def.Field)
	}
	if cfg.Spawn != def.Spawn {
		t.Errorf("Spawn = %+v, expected %+v", cfg.Spawn, def.Spawn)
	}
	if cfg.Items != def.Items {
		t.Errorf("Items = %+v, expected %+v", cfg.Items, def.Items)
	}
	if !slices.Equal(cfg.Session.LevelUpAt, def.Session.LevelUpAt) {
		t.Errorf("LevelUpAt = %v, expected %v", cfg.Session.LevelUpAt, def.Session.LevelUpAt)
	}
	if fixed := cfg.Validate(); len(fixed) != 0 {
		t.Errorf("Embedded defaults should validate cleanly, fixed %v", fixed)
	}
}

func TestLoadCatcherCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catcher.yaml")
	data := []byte("stabilizer:\n  threshold: 0.9\n  smoothing_frames: 3\ncontrols:\n  left: \"lean_left\"\n  center: \"upright\"\n  right: \"lean_right\"\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadCatcher(path)
	if err != nil {
		t.Fatalf("LoadCatcher() failed: %v", err)
	}

	if cfg.Stabilizer.Threshold != 0.9 || cfg.Stabilizer.SmoothingFrames != 3 {
		t.Errorf("Stabilizer = %+v, expected threshold 0.9 and 3 frames", cfg.Stabilizer)
	}
	if cfg.Controls.Left != "lean_left" || cfg.Controls.Right != "lean_right" {
		t.Errorf("Controls = %+v, expected custom labels", cfg.Controls)
	}
	// Keys absent from the file keep their defaults
	if cfg.Field.GroundY != 500 {
		t.Errorf("Field.GroundY = %v, expected default 500", cfg.Field.GroundY)
	}
	if cfg.Session.Duration != 60 {
		t.Errorf("Session.Duration = %d, expected default 60", cfg.Session.Duration)
	}
}

func TestLoadCatcherErrors(t *testing.T) {
	if _, err := LoadCatcher(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadCatcher() should fail for a missing custom path")
	}

	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("stabilizer: [not, a, map"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadCatcher(path)
	if err == nil {
		t.Error("LoadCatcher() should fail for malformed YAML")
	}
	if cfg.Stabilizer.Threshold != 0.85 {
		t.Error("LoadCatcher() should return defaults alongside an error")
	}
}

func TestValidateClampsBadValues(t *testing.T) {
	cfg := DefaultCatcherConfig()
	cfg.Stabilizer.Threshold = 1.5
	cfg.Stabilizer.SmoothingFrames = 0
	cfg.Field.BasketHeight = -1
	cfg.Field.ReferenceFrameMs = 0
	cfg.Spawn.HazardChance = 0.7
	cfg.Spawn.HighChance = 0.5
	cfg.Items.FruitHigh.SpeedMultiplier = 0
	cfg.Session.MinSpawnIntervalMs = 0
	cfg.Session.LevelUpAt = []int{40, 60, 0, 20}

	fixed := cfg.Validate()
	if len(fixed) == 0 {
		t.Fatal("Validate() should report corrections")
	}

	if cfg.Stabilizer.Threshold != 0.85 {
		t.Errorf("Threshold = %v, expected 0.85", cfg.Stabilizer.Threshold)
	}
	if cfg.Stabilizer.SmoothingFrames != 5 {
		t.Errorf("SmoothingFrames = %d, expected 5", cfg.Stabilizer.SmoothingFrames)
	}
	if cfg.Field.BasketHeight != 60 {
		t.Errorf("BasketHeight = %v, expected 60", cfg.Field.BasketHeight)
	}
	if cfg.Field.ReferenceFrameMs != 16 {
		t.Errorf("ReferenceFrameMs = %v, expected 16", cfg.Field.ReferenceFrameMs)
	}
	if got := cfg.Spawn.HazardChance + cfg.Spawn.HighChance; got > 1 {
		t.Errorf("Kind chances sum to %v, expected <= 1", got)
	}
	if cfg.Items.FruitHigh.SpeedMultiplier != 1.2 {
		t.Errorf("FruitHigh.SpeedMultiplier = %v, expected 1.2", cfg.Items.FruitHigh.SpeedMultiplier)
	}
	if cfg.Session.MinSpawnIntervalMs != 400 {
		t.Errorf("MinSpawnIntervalMs = %d, expected 400", cfg.Session.MinSpawnIntervalMs)
	}
	if !slices.Equal(cfg.Session.LevelUpAt, []int{40, 20}) {
		t.Errorf("LevelUpAt = %v, expected [40 20]", cfg.Session.LevelUpAt)
	}
}

func TestApplyCatcherPreset(t *testing.T) {
	tests := []struct {
		preset       DifficultyPreset
		hazardChance float64
		levelUps     int
	}{
		{DifficultyEasy, 0.05, 2},
		{DifficultyNormal, 0.10, 2},
		{DifficultyHard, 0.15, 2},
		{DifficultyFixed, 0.10, 0},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultCatcherConfig()
			ApplyCatcherPreset(&cfg, tc.preset)

			if cfg.Spawn.HazardChance != tc.hazardChance {
				t.Errorf("HazardChance = %v, expected %v", cfg.Spawn.HazardChance, tc.hazardChance)
			}
			if len(cfg.Session.LevelUpAt) != tc.levelUps {
				t.Errorf("LevelUpAt = %v, expected %d entries", cfg.Session.LevelUpAt, tc.levelUps)
			}
			if fixed := cfg.Validate(); len(fixed) != 0 {
				t.Errorf("Preset %s should validate cleanly, fixed %v", tc.preset, fixed)
			}
		})
	}
}

func TestParseDifficultyPreset(t *testing.T) {
	if ParseDifficultyPreset("hard") != DifficultyHard {
		t.Error("ParseDifficultyPreset(hard) should return DifficultyHard")
	}
	if ParseDifficultyPreset("insane") != "" {
		t.Error("Unknown presets should map to the empty preset")
	}
}
