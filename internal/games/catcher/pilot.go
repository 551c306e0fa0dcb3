package catcher

import (
	"github.com/vovakirdan/pose-catcher/internal/classifier"
	"github.com/vovakirdan/pose-catcher/internal/stabilizer"
)

// Pilot steers a session from raw classifier frames. Every frame goes
// through the stabilizer; stable labels become lane commands. The
// stabilizer is reset whenever a game starts or ends.
type Pilot struct {
	session *Session
	stab    *stabilizer.Stabilizer
	raw     []classifier.Prediction
}

// NewPilot creates a pilot and subscribes it to the session's bus.
func NewPilot(session *Session, stab *stabilizer.Stabilizer) *Pilot {
	p := &Pilot{session: session, stab: stab}
	session.Bus().Subscribe(p)
	return p
}

// Feed consumes one classifier frame and returns the stable label, or
// stabilizer.None.
func (p *Pilot) Feed(preds []classifier.Prediction) string {
	p.raw = append(p.raw[:0], preds...)
	label := p.stab.Stabilize(preds)
	if label != stabilizer.None {
		p.session.Command(label)
	}
	return label
}

// Pose returns the last stable label.
func (p *Pilot) Pose() string {
	return p.stab.LastStable()
}

// Raw returns the last frame fed to the pilot. The slice is reused by
// the next Feed.
func (p *Pilot) Raw() []classifier.Prediction {
	return p.raw
}

// HandleEvent resets the stabilizer at session boundaries.
func (p *Pilot) HandleEvent(e Event) error {
	if e.Kind == EventStarted || e.Kind == EventEnded {
		p.stab.Reset()
	}
	return nil
}
