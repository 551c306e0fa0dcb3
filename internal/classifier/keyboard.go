package classifier

import (
	"context"
	"math/rand"
	"sync"
)

// DefaultConfidence is the mean probability the keyboard classifier gives
// the held pose.
const DefaultConfidence = 0.95

// Keyboard is a synthetic classifier for playing without a camera. The
// held key selects a pose and every frame reports it with a jittered
// probability, so the stabilizer sees realistic noise.
type Keyboard struct {
	mu         sync.Mutex
	labels     []string
	held       string
	confidence float64
	jitter     float64
	rng        *rand.Rand
}

// NewKeyboard creates a keyboard classifier over a label vocabulary.
// No pose is held initially; frames before Hold report a uniform
// distribution.
func NewKeyboard(labels []string, seed int64) *Keyboard {
	return &Keyboard{
		labels:     append([]string(nil), labels...),
		confidence: DefaultConfidence,
		jitter:     0.08,
		rng:        rand.New(rand.NewSource(seed)),
	}
}

// SetNoise changes the mean confidence and the jitter amplitude.
func (k *Keyboard) SetNoise(confidence, jitter float64) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.confidence = min(max(confidence, 0), 1)
	k.jitter = max(jitter, 0)
}

// Hold selects the pose reported by the following frames. An unknown
// label releases the pose.
func (k *Keyboard) Hold(label string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.held = ""
	for _, l := range k.labels {
		if l == label {
			k.held = label
			return
		}
	}
}

// Held returns the current pose, or an empty string.
func (k *Keyboard) Held() string {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.held
}

// Predict returns one frame. The held label gets confidence±jitter and
// the remainder is split evenly among the other labels.
func (k *Keyboard) Predict(ctx context.Context) ([]Prediction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	n := len(k.labels)
	if n == 0 {
		return nil, nil
	}
	preds := make([]Prediction, n)

	if k.held == "" {
		for i, l := range k.labels {
			preds[i] = Prediction{Label: l, Probability: 1 / float64(n)}
		}
		return preds, nil
	}

	p := k.confidence + (k.rng.Float64()*2-1)*k.jitter
	p = min(max(p, 0), 1)
	rest := 0.0
	if n > 1 {
		rest = (1 - p) / float64(n-1)
	}
	for i, l := range k.labels {
		if l == k.held {
			preds[i] = Prediction{Label: l, Probability: p}
		} else {
			preds[i] = Prediction{Label: l, Probability: rest}
		}
	}
	return preds, nil
}
