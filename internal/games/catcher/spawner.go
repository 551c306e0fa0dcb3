package catcher

import "github.com/vovakirdan/pose-catcher/internal/config"

// Rand is the randomness the spawner needs. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Spawner creates items. Each spawn draws the lane first, then the kind.
type Spawner struct {
	rng      Rand
	schedule *config.LevelSchedule
	spawn    config.SpawnConfig
	items    config.ItemsConfig
	spawnY   float64
}

// NewSpawner creates a spawner from a validated config.
func NewSpawner(cfg config.CatcherConfig, rng Rand) *Spawner {
	return &Spawner{
		rng:      rng,
		schedule: config.NewLevelSchedule(cfg),
		spawn:    cfg.Spawn,
		items:    cfg.Items,
		spawnY:   cfg.Field.SpawnY,
	}
}

// KindFor maps a uniform draw r in [0,1) to an item kind:
// hazard below hazard_chance, high-value fruit in the next high_chance
// band, low-value fruit otherwise.
func (sp *Spawner) KindFor(r float64) Kind {
	switch {
	case r < sp.spawn.HazardChance:
		return KindHazard
	case r < sp.spawn.HazardChance+sp.spawn.HighChance:
		return KindFruitHigh
	default:
		return KindFruitLow
	}
}

// Spawn creates one item for the given level at the top of the field.
func (sp *Spawner) Spawn(level int) Item {
	lane := Lane(sp.rng.Intn(NumLanes))
	kind := sp.KindFor(sp.rng.Float64())

	ic := sp.itemConfig(kind)
	return Item{
		Lane:   lane,
		Kind:   kind,
		Y:      sp.spawnY,
		Speed:  sp.schedule.FallSpeed(level, ic.SpeedMultiplier),
		Points: ic.Points,
	}
}

func (sp *Spawner) itemConfig(k Kind) config.ItemConfig {
	switch k {
	case KindHazard:
		return sp.items.Hazard
	case KindFruitHigh:
		return sp.items.FruitHigh
	default:
		return sp.items.FruitLow
	}
}
