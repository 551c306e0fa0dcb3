package config

import "slices"

// LevelSchedule derives the level-dependent parameters of a session:
// when the level goes up, how often items spawn and how fast they fall.
type LevelSchedule struct {
	session SessionConfig
	spawn   SpawnConfig
}

// NewLevelSchedule creates a schedule from a validated config.
func NewLevelSchedule(cfg CatcherConfig) *LevelSchedule {
	return &LevelSchedule{
		session: cfg.Session,
		spawn:   cfg.Spawn,
	}
}

// IsLevelUp reports whether reaching timeLeft triggers a level-up.
// Only the configured countdown values qualify; there is no periodic rule.
func (d *LevelSchedule) IsLevelUp(timeLeft int) bool {
	return slices.Contains(d.session.LevelUpAt, timeLeft)
}

// MaxLevel returns the level reached at the end of a full session.
func (d *LevelSchedule) MaxLevel() int {
	return 1 + len(d.session.LevelUpAt)
}

// SpawnInterval returns the spawn interval in milliseconds for a level:
// max(min, base - (level-1)*step). Non-increasing in level.
func (d *LevelSchedule) SpawnInterval(level int) float64 {
	if level < 1 {
		level = 1
	}
	interval := d.session.BaseSpawnIntervalMs - (level-1)*d.session.SpawnIntervalStepMs
	return float64(max(d.session.MinSpawnIntervalMs, interval))
}

// FallSpeed returns the speed of an item spawned at the given level, in
// world units per reference frame.
func (d *LevelSchedule) FallSpeed(level int, multiplier float64) float64 {
	return (d.spawn.BaseSpeed + float64(level)*d.spawn.SpeedPerLevel) * multiplier
}
