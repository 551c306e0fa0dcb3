package catcher

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pose-catcher/internal/clock"
	"github.com/vovakirdan/pose-catcher/internal/config"
)

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// scriptedRand returns queued values, then the fallbacks.
type scriptedRand struct {
	floats    []float64
	ints      []int
	fallbackF float64
	fallbackI int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return r.fallbackF
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return r.fallbackI % n
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

// leftLowFruit always spawns low-value fruit in the left lane, away from
// the basket's starting lane.
func leftLowFruit() *scriptedRand {
	return &scriptedRand{fallbackF: 0.99, fallbackI: 0}
}

// recorder collects events.
type recorder struct {
	events []Event
}

func (r *recorder) HandleEvent(e Event) error {
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) kinds() []EventKind {
	kinds := make([]EventKind, len(r.events))
	for i, e := range r.events {
		kinds[i] = e.Kind
	}
	return kinds
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

type fixture struct {
	loop    *clock.Loop
	session *Session
	events  *recorder
}

func newFixture(t *testing.T, rng Rand) *fixture {
	t.Helper()
	cfg := config.DefaultCatcherConfig()
	loop := clock.NewLoop(t0)
	bus := NewBus(quietLogger())
	rec := &recorder{}
	bus.Subscribe(rec)
	return &fixture{
		loop:    loop,
		session: NewSession(cfg, loop, bus, rng, quietLogger()),
		events:  rec,
	}
}

// advance moves the loop clock forward by d.
func (f *fixture) advance(d time.Duration) {
	f.loop.Advance(f.loop.Now().Add(d))
}
