// Package stabilizer turns a noisy stream of classifier predictions into
// debounced lane commands.
//
// A frame counts only when its best prediction reaches the threshold, and
// a label is emitted only while the whole window agrees on it. Requiring
// unanimity instead of a majority vote removes flicker at lane boundaries
// at the cost of smoothingFrames-1 frames of latency.
package stabilizer

import (
	"math"

	"github.com/vovakirdan/pose-catcher/internal/classifier"
)

// None is the output for frames that carry no command.
const None = ""

// Default tunables.
const (
	DefaultThreshold       = 0.85
	DefaultSmoothingFrames = 5
)

// Stabilizer holds the rolling label window. Not safe for concurrent use;
// call it from the goroutine that owns the session.
type Stabilizer struct {
	threshold float64
	window    []string // ring buffer, len == smoothingFrames
	next      int      // index of the slot to overwrite
	filled    int      // number of valid entries
	last      string   // last emitted label
}

// New creates a stabilizer. Out-of-range tunables fall back to the defaults.
func New(threshold float64, smoothingFrames int) *Stabilizer {
	if math.IsNaN(threshold) || threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	if smoothingFrames < 1 {
		smoothingFrames = DefaultSmoothingFrames
	}
	return &Stabilizer{
		threshold: threshold,
		window:    make([]string, smoothingFrames),
	}
}

// Threshold returns the confidence threshold.
func (s *Stabilizer) Threshold() float64 { return s.threshold }

// SmoothingFrames returns the window size.
func (s *Stabilizer) SmoothingFrames() int { return len(s.window) }

// Stabilize consumes one frame of predictions and returns the stable
// label, or None.
func (s *Stabilizer) Stabilize(preds []classifier.Prediction) string {
	s.push(s.frameLabel(preds))

	if s.filled < len(s.window) {
		return None
	}
	first := s.window[0]
	if first == None {
		return None
	}
	for _, label := range s.window[1:] {
		if label != first {
			return None
		}
	}
	s.last = first
	return first
}

// frameLabel picks the best prediction of a frame. Empty input or a best
// probability below the threshold gives None.
func (s *Stabilizer) frameLabel(preds []classifier.Prediction) string {
	best := None
	bestProb := -1.0
	for _, p := range preds {
		prob := p.Probability
		if math.IsNaN(prob) || prob < 0 {
			prob = 0
		}
		if prob > bestProb {
			best, bestProb = p.Label, prob
		}
	}
	if bestProb < s.threshold {
		return None
	}
	return best
}

func (s *Stabilizer) push(label string) {
	s.window[s.next] = label
	s.next = (s.next + 1) % len(s.window)
	if s.filled < len(s.window) {
		s.filled++
	}
}

// Reset clears the history. The next smoothingFrames-1 calls return None.
func (s *Stabilizer) Reset() {
	clear(s.window)
	s.next = 0
	s.filled = 0
	s.last = None
}

// LastStable returns the most recent label emitted since the last reset,
// or None.
func (s *Stabilizer) LastStable() string {
	return s.last
}
