package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Waveform maps a phase in [0,1) to a sample in [-1,1].
type Waveform func(phase float64) float64

// Sine is a sine wave.
func Sine(phase float64) float64 {
	return math.Sin(2 * math.Pi * phase)
}

// Sawtooth is a rising sawtooth wave.
func Sawtooth(phase float64) float64 {
	return 2*phase - 1
}

// silenceLevel is where the exponential decay ends.
const silenceLevel = 0.01

// SweepGenerator plays a tone whose frequency glides exponentially from
// startHz to endHz over sweep, while the amplitude decays exponentially
// to silence over the full duration.
type SweepGenerator struct {
	wave      Waveform
	startHz   float64
	endHz     float64
	sweep     int // samples
	total     int // samples
	amplitude float64
	sr        beep.SampleRate
	pos       int
	phase     float64
}

// NewSweepGenerator creates a sweep generator.
func NewSweepGenerator(sr beep.SampleRate, wave Waveform, startHz, endHz float64, sweep, duration time.Duration, amplitude float64) *SweepGenerator {
	return &SweepGenerator{
		wave:      wave,
		startHz:   startHz,
		endHz:     endHz,
		sweep:     max(1, sr.N(sweep)),
		total:     max(1, sr.N(duration)),
		amplitude: amplitude,
		sr:        sr,
	}
}

// Len returns the length in samples.
func (g *SweepGenerator) Len() int {
	return g.total
}

// frequency returns the instantaneous frequency at sample pos.
func (g *SweepGenerator) frequency(pos int) float64 {
	if pos >= g.sweep {
		return g.endHz
	}
	t := float64(pos) / float64(g.sweep)
	return g.startHz * math.Pow(g.endHz/g.startHz, t)
}

// envelope returns the amplitude at sample pos.
func (g *SweepGenerator) envelope(pos int) float64 {
	t := float64(pos) / float64(g.total)
	return g.amplitude * math.Pow(silenceLevel, t)
}

func (g *SweepGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.total {
		return 0, false
	}
	for i := range samples {
		if g.pos >= g.total {
			return i, true
		}
		v := g.wave(g.phase) * g.envelope(g.pos)
		samples[i][0] = v
		samples[i][1] = v

		g.phase += g.frequency(g.pos) / float64(g.sr)
		g.phase -= math.Floor(g.phase)
		g.pos++
	}
	return len(samples), true
}

func (g *SweepGenerator) Err() error {
	return nil
}
