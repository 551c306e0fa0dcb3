package catcher

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/pose-catcher/internal/config"
)

func TestKindFor(t *testing.T) {
	sp := NewSpawner(config.DefaultCatcherConfig(), leftLowFruit())

	tests := []struct {
		r        float64
		expected Kind
	}{
		{0, KindHazard},
		{0.0999, KindHazard},
		{0.10, KindFruitHigh},
		{0.2999, KindFruitHigh},
		{0.30, KindFruitLow},
		{0.99, KindFruitLow},
	}

	for _, tc := range tests {
		if got := sp.KindFor(tc.r); got != tc.expected {
			t.Errorf("KindFor(%v) = %v, expected %v", tc.r, got, tc.expected)
		}
	}
}

func TestSpawnItem(t *testing.T) {
	tests := []struct {
		name   string
		lane   int
		r      float64
		level  int
		kind   Kind
		speed  float64
		points int
	}{
		{"low fruit level 1", 0, 0.5, 1, KindFruitLow, 4.5, 100},
		{"high fruit level 2", 2, 0.2, 2, KindFruitHigh, 7.2, 200},
		{"hazard level 3", 1, 0.05, 3, KindHazard, 7.5, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rng := &scriptedRand{floats: []float64{tc.r}, ints: []int{tc.lane}}
			sp := NewSpawner(config.DefaultCatcherConfig(), rng)

			item := sp.Spawn(tc.level)
			if item.Lane != Lane(tc.lane) {
				t.Errorf("Lane = %v, expected %v", item.Lane, Lane(tc.lane))
			}
			if item.Kind != tc.kind {
				t.Errorf("Kind = %v, expected %v", item.Kind, tc.kind)
			}
			if math.Abs(item.Speed-tc.speed) > 1e-9 {
				t.Errorf("Speed = %v, expected %v", item.Speed, tc.speed)
			}
			if item.Points != tc.points {
				t.Errorf("Points = %d, expected %d", item.Points, tc.points)
			}
			if item.Y != -50 {
				t.Errorf("Y = %v, expected spawn height -50", item.Y)
			}
		})
	}
}

func TestSpawnDistribution(t *testing.T) {
	sp := NewSpawner(config.DefaultCatcherConfig(), rand.New(rand.NewSource(1)))

	const n = 20000
	var lanes [NumLanes]int
	kinds := map[Kind]int{}
	for i := 0; i < n; i++ {
		item := sp.Spawn(1)
		lanes[item.Lane]++
		kinds[item.Kind]++
	}

	for l, count := range lanes {
		if frac := float64(count) / n; frac < 0.30 || frac > 0.37 {
			t.Errorf("lane %d share = %.3f, expected about 1/3", l, frac)
		}
	}

	expected := map[Kind]float64{KindHazard: 0.10, KindFruitHigh: 0.20, KindFruitLow: 0.70}
	for k, want := range expected {
		if frac := float64(kinds[k]) / n; math.Abs(frac-want) > 0.02 {
			t.Errorf("%v share = %.3f, expected about %.2f", k, frac, want)
		}
	}
}
